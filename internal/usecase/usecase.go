package usecase

import (
	"context"

	"github.com/DRSN-tech/rawline/internal/domain"
)

type CatalogUC interface {
	ListProducts(ctx context.Context) []domain.Product
	GetProductByHandle(ctx context.Context, handle string) (*domain.Product, error)
	SimilarProducts(ctx context.Context, handle string) ([]domain.Product, error)
	GetFitAdvice(ctx context.Context, req *FitAdviceReq) (string, error)
}

type ContentUC interface {
	GetSiteContent(ctx context.Context) domain.SiteContent
	UpdateSiteContent(ctx context.Context, content *domain.SiteContent) error
}

type CartUC interface {
	GetCart(ctx context.Context, sessionID string) (domain.Cart, error)
	AddItem(ctx context.Context, req *AddCartItemReq) (domain.Cart, error)
	RemoveItem(ctx context.Context, sessionID string, index int) (domain.Cart, error)
	AdjustItem(ctx context.Context, sessionID string, index int, delta int) (domain.Cart, error)
	RemoveLine(ctx context.Context, sessionID string, key string) (domain.Cart, error)
	AdjustLine(ctx context.Context, sessionID string, key string, delta int) (domain.Cart, error)
	Clear(ctx context.Context, sessionID string) error
}

type AdminUC interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	CreateProduct(ctx context.Context, form *ProductForm) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id string, form *ProductForm) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	UploadAssets(ctx context.Context, images []ProductImage) (*UploadImagesRes, error)
}

type AuthUC interface {
	Login(ctx context.Context, password string) (string, error)
	Logout(ctx context.Context, token string) error
	Authorize(ctx context.Context, token string) error
}
