package usecase

import (
	"time"

	"github.com/DRSN-tech/rawline/internal/domain"
	"github.com/google/uuid"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

type OutboxStatus string

const (
	Pending    OutboxStatus = "pending"
	Processing OutboxStatus = "processing"
	Processed  OutboxStatus = "processed"
)

type OutboxEventType string

const (
	ProductCreated     OutboxEventType = "product.created"
	ProductUpdated     OutboxEventType = "product.updated"
	ProductDeleted     OutboxEventType = "product.deleted"
	SiteContentUpdated OutboxEventType = "site_content.updated"
)

// OutboxEvent — событие изменения каталога, записываемое в одной транзакции с изменением.
// Payload — сериализованный structpb.Struct.
type OutboxEvent struct {
	ID          int64
	EventID     string
	EventType   OutboxEventType
	AggregateID string
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

func NewOutboxEvent(eventType OutboxEventType, aggregateID string, payload []byte) *OutboxEvent {
	return &OutboxEvent{
		EventID:     uuid.NewString(),
		EventType:   eventType,
		AggregateID: aggregateID,
		Payload:     payload,
		Status:      Pending,
		CreatedAt:   time.Now().UTC(),
	}
}

// NewProductEvent собирает событие по товару. Для удаления в payload остаются только идентификаторы.
func NewProductEvent(eventType OutboxEventType, product *domain.Product) (*OutboxEvent, error) {
	fields := map[string]any{
		"id":     product.ID,
		"handle": product.Handle,
	}
	if eventType != ProductDeleted {
		fields["title"] = product.Title
		fields["price"] = product.Price.String()
		fields["description"] = product.Description
		fields["fabric"] = product.Fabric
		fields["fit"] = product.Fit
		fields["care"] = product.Care
		fields["images"] = toAnySlice(product.Images)
		fields["sizes"] = toAnySlice(product.Sizes)
	}

	event := NewOutboxEvent(eventType, product.ID, nil)
	payload, err := encodeEvent(event, fields)
	if err != nil {
		return nil, err
	}
	event.Payload = payload

	return event, nil
}

func NewSiteContentEvent(content *domain.SiteContent) (*OutboxEvent, error) {
	fields := map[string]any{
		"home": map[string]any{
			"headline":      content.Home.Headline,
			"subheadline":   content.Home.Subheadline,
			"hero_image_id": content.Home.HeroImageID,
		},
		"about": map[string]any{
			"heading":         content.About.Heading,
			"paragraphs":      toAnySlice(content.About.Paragraphs),
			"studio_image_id": content.About.StudioImageID,
		},
	}

	event := NewOutboxEvent(SiteContentUpdated, domain.SiteContentKey, nil)
	payload, err := encodeEvent(event, fields)
	if err != nil {
		return nil, err
	}
	event.Payload = payload

	return event, nil
}

func encodeEvent(event *OutboxEvent, data map[string]any) ([]byte, error) {
	msg, err := structpb.NewStruct(map[string]any{
		"event_id":        event.EventID,
		"event_type":      string(event.EventType),
		"aggregate_id":    event.AggregateID,
		"event_timestamp": float64(event.CreatedAt.UnixMilli()),
		"data":            data,
	})
	if err != nil {
		return nil, err
	}
	return proto.Marshal(msg)
}

func toAnySlice(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
