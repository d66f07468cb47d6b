package usecase

import (
	"strings"

	"github.com/DRSN-tech/rawline/internal/domain"
	"github.com/DRSN-tech/rawline/pkg/e"
	"github.com/shopspring/decimal"
)

// ValidateProductForm проверяет обязательные поля формы до маппинга.
func ValidateProductForm(form *ProductForm) error {
	switch {
	case strings.TrimSpace(form.Title) == "":
		return e.ErrTitleRequired
	case strings.TrimSpace(form.Price) == "":
		return e.ErrPriceRequired
	case len(form.Images) == 0:
		return e.ErrNoImages
	}
	return nil
}

// MapProductForm превращает поля формы в сохраняемый ProductPayload.
// Handle выводится из Title, размеры разбираются из строки через запятую.
// Обязательность полей не проверяется, см. ValidateProductForm.
func MapProductForm(form *ProductForm) (*domain.ProductPayload, error) {
	const op = "MapProductForm"

	price, err := ParsePrice(form.Price)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	images := make([]string, len(form.Images))
	copy(images, form.Images)

	return &domain.ProductPayload{
		Title:       form.Title,
		Handle:      domain.Slug(form.Title),
		Price:       price,
		Description: form.Description,
		Fabric:      form.Fabric,
		Fit:         form.Fit,
		Care:        form.Care,
		Images:      images,
		Sizes:       ParseSizes(form.Sizes),
	}, nil
}

// maxPrice — первая цена, которая не помещается в NUMERIC(12,2).
var maxPrice = decimal.New(1, 10)

// ParsePrice разбирает неотрицательную десятичную цену не больше чем с двумя знаками
// после запятой и меньше maxPrice.
func ParsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, e.ErrInvalidPrice
	}

	switch {
	case price.IsNegative(),
		price.GreaterThanOrEqual(maxPrice),
		!price.Equal(price.Truncate(2)):
		return decimal.Zero, e.ErrInvalidPrice
	}
	return price, nil
}

// ParseSizes делит строку по запятым, обрезает пробелы и отбрасывает пустые токены.
// Порядок и дубликаты сохраняются.
func ParseSizes(raw string) []string {
	sizes := make([]string, 0)
	for _, token := range strings.Split(raw, ",") {
		if token = strings.TrimSpace(token); token != "" {
			sizes = append(sizes, token)
		}
	}
	return sizes
}
