package usecase

import (
	"context"
	"time"

	"github.com/DRSN-tech/rawline/internal/domain"
)

type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByHandle(ctx context.Context, handle string) (*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetByIDs(ctx context.Context, ids []string) ([]domain.Product, error)
	Create(ctx context.Context, payload *domain.ProductPayload) (*domain.Product, error)
	Update(ctx context.Context, id string, payload *domain.ProductPayload) (*domain.Product, error)
	Delete(ctx context.Context, id string) (*domain.Product, error)
}

type SiteContentRepository interface {
	Get(ctx context.Context) (*domain.SiteContent, error)
	Put(ctx context.Context, content *domain.SiteContent) error
}

type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
	ReleaseProcessing(ctx context.Context, id int64) error
}

// CacheRepository кэширует витрину каталога. Set* принимают версию, прочитанную через
// CatalogVersion до чтения хранилища, и ничего не пишут, если с тех пор была Invalidate.
type CacheRepository interface {
	CatalogVersion(ctx context.Context) (int64, error)
	GetCatalog(ctx context.Context) ([]domain.Product, bool, error)
	SetCatalog(ctx context.Context, version int64, products []domain.Product) error
	GetProduct(ctx context.Context, handle string) (*domain.Product, bool, error)
	SetProduct(ctx context.Context, version int64, product *domain.Product) error
	Invalidate(ctx context.Context, handles ...string) error
}

type CartRepository interface {
	Get(ctx context.Context, sessionID string) (domain.Cart, error)
	Save(ctx context.Context, sessionID string, cart domain.Cart) error
	Delete(ctx context.Context, sessionID string) error
}

type AdminSessionRepository interface {
	Save(ctx context.Context, token string, ttl time.Duration) error
	Exists(ctx context.Context, token string) (bool, error)
	Delete(ctx context.Context, token string) error
}

type ImageRepository interface {
	Upload(ctx context.Context, image *domain.Image) (string, error)
	Delete(ctx context.Context, key string) error
}

type EmbeddingRepository interface {
	Upsert(ctx context.Context, embeddings []domain.Embedding) error
	Delete(ctx context.Context, ids []string) error
	Similar(ctx context.Context, id string, limit uint64) ([]string, error)
}

// TxManager выполняет fn в одной транзакции БД. Репозитории берут транзакцию из контекста.
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
