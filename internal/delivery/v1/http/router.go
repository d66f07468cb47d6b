package http

import (
	_ "github.com/DRSN-tech/rawline/docs" // Регистрация swagger-документации
	"github.com/DRSN-tech/rawline/internal/usecase"
	"github.com/DRSN-tech/rawline/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router      *chi.Mux
	logger      logger.Logger
	swaggerHost string
}

func NewRouter(router *chi.Mux, swaggerHost string, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger, swaggerHost: swaggerHost}
}

// UseCases — набор сценариев, обслуживаемых HTTP API.
type UseCases struct {
	Catalog usecase.CatalogUC
	Content usecase.ContentUC
	Cart    usecase.CartUC
	Admin   usecase.AdminUC
	Auth    usecase.AuthUC
	Assets  usecase.AssetURLBuilder
}

func (r *Router) Init(uc UseCases) {
	r.router.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)

	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://"+r.swaggerHost+"/swagger/doc.json"),
	))

	r.router.Route("/api/v1", func(v1 chi.Router) {
		registerCatalogRoutes(v1, NewCatalogHandler(uc.Catalog, uc.Content, uc.Assets, r.logger))
		registerCartRoutes(v1, NewCartHandler(uc.Cart, uc.Assets, r.logger))
		registerAdminRoutes(v1, NewAdminHandler(uc.Admin, uc.Content, uc.Auth, uc.Assets, r.logger), uc.Auth, r.logger)
	})
}

func registerCatalogRoutes(router chi.Router, h *CatalogHandler) {
	router.Get("/content", h.getContent)
	router.Route("/products", func(pr chi.Router) {
		pr.Get("/", h.listProducts)
		pr.Get("/{handle}", h.getProduct)
		pr.Get("/{handle}/similar", h.similarProducts)
		pr.Post("/{handle}/advice", h.fitAdvice)
	})
}

func registerCartRoutes(router chi.Router, h *CartHandler) {
	router.Route("/cart", func(cr chi.Router) {
		cr.Use(withSession)
		cr.Get("/", h.getCart)
		cr.Delete("/", h.clearCart)
		cr.Post("/items", h.addItem)
		cr.Patch("/items/{index}", h.adjustItem)
		cr.Delete("/items/{index}", h.removeItem)
		cr.Patch("/lines/{key}", h.adjustLine)
		cr.Delete("/lines/{key}", h.removeLine)
	})
}

func registerAdminRoutes(router chi.Router, h *AdminHandler, auth usecase.AuthUC, log logger.Logger) {
	router.Route("/admin", func(ar chi.Router) {
		ar.Post("/login", h.login)

		ar.Group(func(protected chi.Router) {
			protected.Use(requireAdmin(auth, log))
			protected.Post("/logout", h.logout)
			protected.Get("/products", h.listProducts)
			protected.Post("/products", h.createProduct)
			protected.Put("/products/{id}", h.updateProduct)
			protected.Delete("/products/{id}", h.deleteProduct)
			protected.Post("/assets", h.uploadAssets)
			protected.Put("/content", h.updateContent)
		})
	})
}
