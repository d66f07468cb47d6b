package http

import (
	"github.com/DRSN-tech/rawline/internal/domain"
	"github.com/DRSN-tech/rawline/internal/usecase"
)

const thumbnailWidth = 600

type ProductResponse struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Handle       string   `json:"handle"`
	Price        string   `json:"price"`
	Description  string   `json:"description"`
	Fabric       string   `json:"fabric"`
	Fit          string   `json:"fit"`
	Care         string   `json:"care"`
	Images       []string `json:"images"`
	ImageURLs    []string `json:"image_urls"`
	ThumbnailURL string   `json:"thumbnail_url"`
	Sizes        []string `json:"sizes"`
}

type CartItemResponse struct {
	Key          string `json:"key"`
	ProductID    string `json:"product_id"`
	Handle       string `json:"handle"`
	Title        string `json:"title"`
	Price        string `json:"price"`
	ThumbnailURL string `json:"thumbnail_url"`
	Size         string `json:"size"`
	Quantity     int    `json:"quantity"`
	LineTotal    string `json:"line_total"`
}

type CartResponse struct {
	Items    []CartItemResponse `json:"items"`
	Subtotal string             `json:"subtotal"`
	Total    string             `json:"total"`
	Count    int                `json:"count"`
}

type HomeContentDTO struct {
	Headline    string `json:"headline"`
	Subheadline string `json:"subheadline"`
	HeroImageID string `json:"hero_image_id"`
	HeroImage   string `json:"hero_image_url,omitempty"`
}

type AboutContentDTO struct {
	Heading       string   `json:"heading"`
	Paragraphs    []string `json:"paragraphs"`
	StudioImageID string   `json:"studio_image_id"`
	StudioImage   string   `json:"studio_image_url,omitempty"`
}

type SiteContentDTO struct {
	Home  HomeContentDTO  `json:"home"`
	About AboutContentDTO `json:"about"`
}

type AddCartItemRequest struct {
	Handle string `json:"handle"`
	Size   string `json:"size"`
}

type AdjustQuantityRequest struct {
	Delta int `json:"delta"`
}

type FitAdviceRequest struct {
	Details string `json:"details"`
}

type FitAdviceResponse struct {
	Advice string `json:"advice"`
}

type LoginRequest struct {
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type UploadAssetsResponse struct {
	AssetIDs []string `json:"asset_ids"`
	URLs     []string `json:"urls"`
}

// presenter переводит доменные сущности в ответы API, подставляя URL ассетов.
type presenter struct {
	assets usecase.AssetURLBuilder
}

func (p presenter) product(product *domain.Product) ProductResponse {
	urls := make([]string, 0, len(product.Images))
	for _, id := range product.Images {
		urls = append(urls, p.assets.URLFor(id, usecase.AssetURLOptions{}))
	}

	return ProductResponse{
		ID:           product.ID,
		Title:        product.Title,
		Handle:       product.Handle,
		Price:        product.Price.StringFixed(2),
		Description:  product.Description,
		Fabric:       product.Fabric,
		Fit:          product.Fit,
		Care:         product.Care,
		Images:       nonNilStrings(product.Images),
		ImageURLs:    urls,
		ThumbnailURL: p.thumbnail(product),
		Sizes:        nonNilStrings(product.Sizes),
	}
}

func (p presenter) products(products []domain.Product) []ProductResponse {
	result := make([]ProductResponse, 0, len(products))
	for i := range products {
		result = append(result, p.product(&products[i]))
	}
	return result
}

func (p presenter) cart(cart domain.Cart) CartResponse {
	items := make([]CartItemResponse, 0, len(cart))
	for i := range cart {
		entry := cart[i]
		items = append(items, CartItemResponse{
			Key:          entry.Key(),
			ProductID:    entry.Product.ID,
			Handle:       entry.Product.Handle,
			Title:        entry.Product.Title,
			Price:        entry.Product.Price.StringFixed(2),
			ThumbnailURL: p.thumbnail(&entry.Product),
			Size:         entry.Size,
			Quantity:     entry.Quantity,
			LineTotal:    entry.LineTotal().StringFixed(2),
		})
	}

	return CartResponse{
		Items:    items,
		Subtotal: cart.Subtotal().StringFixed(2),
		Total:    cart.Total().StringFixed(2),
		Count:    cart.Count(),
	}
}

func (p presenter) content(content domain.SiteContent) SiteContentDTO {
	return SiteContentDTO{
		Home: HomeContentDTO{
			Headline:    content.Home.Headline,
			Subheadline: content.Home.Subheadline,
			HeroImageID: content.Home.HeroImageID,
			HeroImage:   p.assets.URLFor(content.Home.HeroImageID, usecase.AssetURLOptions{}),
		},
		About: AboutContentDTO{
			Heading:       content.About.Heading,
			Paragraphs:    nonNilStrings(content.About.Paragraphs),
			StudioImageID: content.About.StudioImageID,
			StudioImage:   p.assets.URLFor(content.About.StudioImageID, usecase.AssetURLOptions{}),
		},
	}
}

func (p presenter) thumbnail(product *domain.Product) string {
	return p.assets.URLFor(product.Thumbnail(), usecase.AssetURLOptions{Width: thumbnailWidth})
}

func (dto SiteContentDTO) toDomain() *domain.SiteContent {
	return &domain.SiteContent{
		Home: domain.HomeContent{
			Headline:    dto.Home.Headline,
			Subheadline: dto.Home.Subheadline,
			HeroImageID: dto.Home.HeroImageID,
		},
		About: domain.AboutContent{
			Heading:       dto.About.Heading,
			Paragraphs:    nonNilStrings(dto.About.Paragraphs),
			StudioImageID: dto.About.StudioImageID,
		},
	}
}

func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
