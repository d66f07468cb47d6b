package converter

import (
	"github.com/DRSN-tech/rawline/internal/domain"
	"github.com/DRSN-tech/rawline/internal/usecase"
)

// ProductConverter преобразует сущности Product между domain и моделью PostgreSQL.
type ProductConverter interface {
	ToModel(entity *domain.Product) *ProductModel
	ToEntity(model *ProductModel) (*domain.Product, error)
	ToArrEntity(models []*ProductModel) ([]domain.Product, error)
}

// SiteContentConverter преобразует SiteContent в JSONB-документ и обратно.
type SiteContentConverter interface {
	ToModel(entity *domain.SiteContent) *SiteContentModel
	ToEntity(model *SiteContentModel) *domain.SiteContent
}

// OutboxEventConverter преобразует сущности OutboxEvent между usecase и моделью PostgreSQL.
type OutboxEventConverter interface {
	ToModel(entity *usecase.OutboxEvent) *OutboxEventModel
	ToEntity(model *OutboxEventModel) *usecase.OutboxEvent
	ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent
}
