package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product описывает товар каталога.
// Handle выводится из Title через Slug и используется для поиска и маршрутизации.
// Уникальность Handle не проверяется.
type Product struct {
	ID          string // uuid, назначается хранилищем при создании
	Title       string
	Handle      string
	Price       decimal.Decimal // неотрицательная, одна валюта
	Description string
	Fabric      string
	Fit         string
	Care        string
	Images      []string // идентификаторы ассетов, первый — превью
	Sizes       []string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// ProductPayload — сохраняемое представление товара без идентификатора.
type ProductPayload struct {
	Title       string
	Handle      string
	Price       decimal.Decimal
	Description string
	Fabric      string
	Fit         string
	Care        string
	Images      []string
	Sizes       []string
}

func NewProduct(id string, payload *ProductPayload) *Product {
	return &Product{
		ID:          id,
		Title:       payload.Title,
		Handle:      payload.Handle,
		Price:       payload.Price,
		Description: payload.Description,
		Fabric:      payload.Fabric,
		Fit:         payload.Fit,
		Care:        payload.Care,
		Images:      payload.Images,
		Sizes:       payload.Sizes,
	}
}

// Thumbnail возвращает ассет превью или пустую строку, если изображений нет.
func (p *Product) Thumbnail() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}
