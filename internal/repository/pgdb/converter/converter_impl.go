package converter

import (
	"github.com/DRSN-tech/rawline/internal/domain"
	"github.com/DRSN-tech/rawline/internal/usecase"
	"github.com/DRSN-tech/rawline/pkg/e"
	"github.com/shopspring/decimal"
)

type ProductConverterImpl struct{}

func (c *ProductConverterImpl) ToModel(entity *domain.Product) *ProductModel {
	if entity == nil {
		return nil
	}
	return &ProductModel{
		ID:          entity.ID,
		Title:       entity.Title,
		Handle:      entity.Handle,
		Price:       entity.Price.String(),
		Description: entity.Description,
		Fabric:      entity.Fabric,
		Fit:         entity.Fit,
		Care:        entity.Care,
		Images:      copyStrings(entity.Images),
		Sizes:       copyStrings(entity.Sizes),
		CreatedAt:   entity.CreatedAt,
		UpdatedAt:   entity.UpdatedAt,
	}
}

func (c *ProductConverterImpl) ToEntity(model *ProductModel) (*domain.Product, error) {
	if model == nil {
		return nil, nil
	}
	price, err := decimal.NewFromString(model.Price)
	if err != nil {
		return nil, e.Wrap("ProductConverterImpl.ToEntity", err)
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
		Images:      copyStrings(model.Images),
		Sizes:       copyStrings(model.Sizes),
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}, nil
}

func (c *ProductConverterImpl) ToArrEntity(models []*ProductModel) ([]domain.Product, error) {
	result := make([]domain.Product, 0, len(models))
	for _, m := range models {
		entity, err := c.ToEntity(m)
		if err != nil {
			return nil, err
		}
		result = append(result, *entity)
	}
	return result, nil
}

type SiteContentConverterImpl struct{}

func (c *SiteContentConverterImpl) ToModel(entity *domain.SiteContent) *SiteContentModel {
	if entity == nil {
		return nil
	}
	return &SiteContentModel{
		Home: &HomeContentModel{
			Headline:    entity.Home.Headline,
			Subheadline: entity.Home.Subheadline,
			HeroImageID: entity.Home.HeroImageID,
		},
		About: &AboutContentModel{
			Heading:       entity.About.Heading,
			Paragraphs:    copyStrings(entity.About.Paragraphs),
			StudioImageID: entity.About.StudioImageID,
		},
	}
}

// ToEntity дополняет отсутствующие разделы документа значениями по умолчанию.
func (c *SiteContentConverterImpl) ToEntity(model *SiteContentModel) *domain.SiteContent {
	content := domain.DefaultSiteContent()
	if model == nil {
		return &content
	}
	if model.Home != nil {
		content.Home = domain.HomeContent{
			Headline:    model.Home.Headline,
			Subheadline: model.Home.Subheadline,
			HeroImageID: model.Home.HeroImageID,
		}
	}
	if model.About != nil {
		content.About = domain.AboutContent{
			Heading:       model.About.Heading,
			Paragraphs:    copyStrings(model.About.Paragraphs),
			StudioImageID: model.About.StudioImageID,
		}
	}
	return &content
}

type OutboxEventConverterImpl struct{}

func (c *OutboxEventConverterImpl) ToModel(entity *usecase.OutboxEvent) *OutboxEventModel {
	if entity == nil {
		return nil
	}
	return &OutboxEventModel{
		ID:          entity.ID,
		EventID:     entity.EventID,
		EventType:   string(entity.EventType),
		AggregateID: entity.AggregateID,
		Payload:     entity.Payload,
		Status:      string(entity.Status),
		CreatedAt:   entity.CreatedAt,
		ProcessedAt: entity.ProcessedAt,
	}
}

func (c *OutboxEventConverterImpl) ToEntity(model *OutboxEventModel) *usecase.OutboxEvent {
	if model == nil {
		return nil
	}
	return &usecase.OutboxEvent{
		ID:          model.ID,
		EventID:     model.EventID,
		EventType:   usecase.OutboxEventType(model.EventType),
		AggregateID: model.AggregateID,
		Payload:     model.Payload,
		Status:      usecase.OutboxStatus(model.Status),
		CreatedAt:   model.CreatedAt,
		ProcessedAt: model.ProcessedAt,
	}
}

func (c *OutboxEventConverterImpl) ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent {
	result := make([]*usecase.OutboxEvent, 0, len(models))
	for _, m := range models {
		result = append(result, c.ToEntity(m))
	}
	return result
}

func copyStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
