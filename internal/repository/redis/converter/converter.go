package converter

import (
	"github.com/DRSN-tech/rawline/internal/domain"
	"github.com/shopspring/decimal"
)

// ProductConverter преобразует товары и корзины между domain и JSON-моделями Redis.
type ProductConverter interface {
	ToRedisModel(entity *domain.Product) *ProductRedisModel
	ToEntity(model *ProductRedisModel) (*domain.Product, error)
	ToArrRedisModel(entities []domain.Product) []ProductRedisModel
	ToArrEntity(models []ProductRedisModel) ([]domain.Product, error)
	CartToRedisModel(cart domain.Cart) []CartEntryRedisModel
	CartToEntity(models []CartEntryRedisModel) (domain.Cart, error)
}

type ProductConverterImpl struct{}

func (c *ProductConverterImpl) ToRedisModel(entity *domain.Product) *ProductRedisModel {
	if entity == nil {
		return nil
	}
	return &ProductRedisModel{
		ID:          entity.ID,
		Title:       entity.Title,
		Handle:      entity.Handle,
		Price:       entity.Price.String(),
		Description: entity.Description,
		Fabric:      entity.Fabric,
		Fit:         entity.Fit,
		Care:        entity.Care,
		Images:      entity.Images,
		Sizes:       entity.Sizes,
		CreatedAt:   entity.CreatedAt,
		UpdatedAt:   entity.UpdatedAt,
	}
}

func (c *ProductConverterImpl) ToEntity(model *ProductRedisModel) (*domain.Product, error) {
	if model == nil {
		return nil, nil
	}
	price, err := decimal.NewFromString(model.Price)
	if err != nil {
		return nil, err
	}
	return &domain.Product{
		ID:          model.ID,
		Title:       model.Title,
		Handle:      model.Handle,
		Price:       price,
		Description: model.Description,
		Fabric:      model.Fabric,
		Fit:         model.Fit,
		Care:        model.Care,
		Images:      model.Images,
		Sizes:       model.Sizes,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}, nil
}

func (c *ProductConverterImpl) ToArrRedisModel(entities []domain.Product) []ProductRedisModel {
	result := make([]ProductRedisModel, 0, len(entities))
	for i := range entities {
		result = append(result, *c.ToRedisModel(&entities[i]))
	}
	return result
}

func (c *ProductConverterImpl) ToArrEntity(models []ProductRedisModel) ([]domain.Product, error) {
	result := make([]domain.Product, 0, len(models))
	for i := range models {
		entity, err := c.ToEntity(&models[i])
		if err != nil {
			return nil, err
		}
		result = append(result, *entity)
	}
	return result, nil
}

func (c *ProductConverterImpl) CartToRedisModel(cart domain.Cart) []CartEntryRedisModel {
	result := make([]CartEntryRedisModel, 0, len(cart))
	for i := range cart {
		result = append(result, CartEntryRedisModel{
			Product:  *c.ToRedisModel(&cart[i].Product),
			Size:     cart[i].Size,
			Quantity: cart[i].Quantity,
		})
	}
	return result
}

func (c *ProductConverterImpl) CartToEntity(models []CartEntryRedisModel) (domain.Cart, error) {
	cart := make(domain.Cart, 0, len(models))
	for i := range models {
		product, err := c.ToEntity(&models[i].Product)
		if err != nil {
			return nil, err
		}
		cart = append(cart, domain.CartEntry{
			Product:  *product,
			Size:     models[i].Size,
			Quantity: models[i].Quantity,
		})
	}
	return cart, nil
}
