package http

import (
	"net/http"

	"github.com/DRSN-tech/rawline/internal/usecase"
	"github.com/DRSN-tech/rawline/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type CatalogHandler struct {
	catalogUC usecase.CatalogUC
	contentUC usecase.ContentUC
	view      presenter
	logger    logger.Logger
}

func NewCatalogHandler(catalogUC usecase.CatalogUC, contentUC usecase.ContentUC, assets usecase.AssetURLBuilder, logger logger.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogUC: catalogUC,
		contentUC: contentUC,
		view:      presenter{assets: assets},
		logger:    logger,
	}
}

// listProducts godoc
// @Summary      Список товаров
// @Description  Возвращает все товары каталога. При недоступности хранилища отдаёт пустой список.
// @Tags         products
// @Produce      json
// @Success      200  {array}   ProductResponse
// @Router       /api/v1/products [get]
func (h *CatalogHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, http.StatusOK, h.view.products(h.catalogUC.ListProducts(r.Context())))
}

// getProduct godoc
// @Summary      Карточка товара
// @Tags         products
// @Produce      json
// @Param        handle  path      string  true  "Handle товара"
// @Success      200     {object}  ProductResponse
// @Failure      404     {object}  ErrorResponse
// @Router       /api/v1/products/{handle} [get]
func (h *CatalogHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalogUC.GetProductByHandle(r.Context(), chi.URLParam(r, "handle"))
	if err != nil {
		h.logger.Warnf("%d %s: %v", http.StatusNotFound, r.URL.Path, err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, h.view.product(product))
}

// similarProducts godoc
// @Summary      Похожие товары
// @Tags         products
// @Produce      json
// @Param        handle  path      string  true  "Handle товара"
// @Success      200     {array}   ProductResponse
// @Failure      404     {object}  ErrorResponse
// @Router       /api/v1/products/{handle}/similar [get]
func (h *CatalogHandler) similarProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalogUC.SimilarProducts(r.Context(), chi.URLParam(r, "handle"))
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, h.view.products(products))
}

// fitAdvice godoc
// @Summary      Совет по посадке
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        handle  path      string            true  "Handle товара"
// @Param        body    body      FitAdviceRequest  true  "Рост, вес, предпочтения"
// @Success      200     {object}  FitAdviceResponse
// @Failure      400     {object}  ErrorResponse
// @Failure      404     {object}  ErrorResponse
// @Router       /api/v1/products/{handle}/advice [post]
func (h *CatalogHandler) fitAdvice(w http.ResponseWriter, r *http.Request) {
	var req FitAdviceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.Warnf("%d %s: %v", http.StatusBadRequest, r.URL.Path, err)
		WriteError(w, err)
		return
	}

	advice, err := h.catalogUC.GetFitAdvice(r.Context(), usecase.NewFitAdviceReq(chi.URLParam(r, "handle"), req.Details))
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, FitAdviceResponse{Advice: advice})
}

// getContent godoc
// @Summary      Контент сайта
// @Description  Главная и страница "О бренде". При отсутствии записи возвращаются значения по умолчанию.
// @Tags         content
// @Produce      json
// @Success      200  {object}  SiteContentDTO
// @Router       /api/v1/content [get]
func (h *CatalogHandler) getContent(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, http.StatusOK, h.view.content(h.contentUC.GetSiteContent(r.Context())))
}
