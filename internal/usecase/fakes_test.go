package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/DRSN-tech/rawline/internal/domain"
	"github.com/DRSN-tech/rawline/pkg/e"
	"github.com/google/uuid"
)

type fakeProductRepo struct {
	mu       sync.Mutex
	products []domain.Product
	err      error
}

func (f *fakeProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return append([]domain.Product(nil), f.products...), nil
}

func (f *fakeProductRepo) GetByHandle(ctx context.Context, handle string) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, p := range f.products {
		if p.Handle == handle {
			p := p
			return &p, nil
		}
	}
	return nil, e.ErrProductNotFound
}

func (f *fakeProductRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, p := range f.products {
		if p.ID == id {
			p := p
			return &p, nil
		}
	}
	return nil, e.ErrProductNotFound
}

func (f *fakeProductRepo) GetByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Product
	for _, p := range f.products {
		for _, id := range ids {
			if p.ID == id {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

func (f *fakeProductRepo) Create(ctx context.Context, payload *domain.ProductPayload) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	p := domain.NewProduct(uuid.NewString(), payload)
	p.CreatedAt = time.Now()
	f.products = append(f.products, *p)
	return p, nil
}

func (f *fakeProductRepo) Update(ctx context.Context, id string, payload *domain.ProductPayload) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, p := range f.products {
		if p.ID == id {
			updated := domain.NewProduct(id, payload)
			updated.CreatedAt = p.CreatedAt
			f.products[i] = *updated
			return updated, nil
		}
	}
	return nil, e.ErrProductNotFound
}

func (f *fakeProductRepo) Delete(ctx context.Context, id string) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, p := range f.products {
		if p.ID == id {
			f.products = append(f.products[:i], f.products[i+1:]...)
			return &p, nil
		}
	}
	return nil, e.ErrProductNotFound
}

type fakeCacheRepo struct {
	mu          sync.Mutex
	catalog     []domain.Product
	products    map[string]domain.Product
	invalidated []string
	version     int64
	err         error
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{products: make(map[string]domain.Product)}
}

func (f *fakeCacheRepo) GetCatalog(ctx context.Context) ([]domain.Product, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, false, f.err
	}
	return f.catalog, f.catalog != nil, nil
}

func (f *fakeCacheRepo) CatalogVersion(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	return f.version, nil
}

func (f *fakeCacheRepo) SetCatalog(ctx context.Context, version int64, products []domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if version == f.version {
		f.catalog = products
	}
	return nil
}

func (f *fakeCacheRepo) GetProduct(ctx context.Context, handle string) (*domain.Product, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, false, f.err
	}
	p, ok := f.products[handle]
	if !ok {
		return nil, false, nil
	}
	return &p, true, nil
}

func (f *fakeCacheRepo) SetProduct(ctx context.Context, version int64, product *domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if version == f.version {
		f.products[product.Handle] = *product
	}
	return nil
}

func (f *fakeCacheRepo) Invalidate(ctx context.Context, handles ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.version++
	f.catalog = nil
	for _, h := range handles {
		delete(f.products, h)
	}
	f.invalidated = append(f.invalidated, handles...)
	return nil
}

func (f *fakeCacheRepo) cachedCatalog() []domain.Product {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.catalog
}

type fakeEmbeddingRepo struct {
	mu       sync.Mutex
	upserted map[string]domain.Embedding
	deleted  []string
	similar  []string
	err      error
}

func newFakeEmbeddingRepo() *fakeEmbeddingRepo {
	return &fakeEmbeddingRepo{upserted: make(map[string]domain.Embedding)}
}

func (f *fakeEmbeddingRepo) Upsert(ctx context.Context, embeddings []domain.Embedding) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, emb := range embeddings {
		f.upserted[emb.ID] = emb
	}
	return nil
}

func (f *fakeEmbeddingRepo) Delete(ctx context.Context, ids []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, ids...)
	return nil
}

func (f *fakeEmbeddingRepo) Similar(ctx context.Context, id string, limit uint64) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.similar, nil
}

func (f *fakeEmbeddingRepo) has(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.upserted[id]
	return ok
}

type fakeOutboxRepo struct {
	mu     sync.Mutex
	events []*OutboxEvent
}

func (f *fakeOutboxRepo) Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	event.ID = int64(len(f.events) + 1)
	f.events = append(f.events, event)
	return event, nil
}

func (f *fakeOutboxRepo) GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepo) MarkAsProcessed(ctx context.Context, id int64) error { return nil }

func (f *fakeOutboxRepo) ReleaseProcessing(ctx context.Context, id int64) error { return nil }

func (f *fakeOutboxRepo) types() []OutboxEventType {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]OutboxEventType, 0, len(f.events))
	for _, ev := range f.events {
		out = append(out, ev.EventType)
	}
	return out
}

// fakeTxManager вызывает fn без транзакции и считает вызовы.
type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeAssetHost struct {
	mu      sync.Mutex
	cleaned []string
}

func (f *fakeAssetHost) UploadImages(ctx context.Context, req *UploadImagesReq) (*UploadImagesRes, error) {
	ids := make([]string, 0, len(req.Images))
	for _, img := range req.Images {
		ids = append(ids, req.Folder+"/"+img.Name)
	}
	return NewUploadImagesRes(ids), nil
}

func (f *fakeAssetHost) URLFor(assetID string, opts AssetURLOptions) string {
	return "https://cdn.test/" + assetID
}

func (f *fakeAssetHost) CleanupImages(keys []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cleaned = append(f.cleaned, keys...)
}

type fakeEmbedder struct{}

func (fakeEmbedder) Embed(ctx context.Context, text string) (*EmbedRes, error) {
	return NewEmbedRes([]float32{0.1, 0.2, 0.3}, "test-model"), nil
}

type fakeAdvisor struct {
	title   string
	details string
}

func (f *fakeAdvisor) GetAdvice(ctx context.Context, productTitle string, details string) string {
	f.title = productTitle
	f.details = details
	return "Size up."
}

type fakeCartRepo struct {
	mu    sync.Mutex
	carts map[string]domain.Cart
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: make(map[string]domain.Cart)}
}

func (f *fakeCartRepo) Get(ctx context.Context, sessionID string) (domain.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.carts[sessionID], nil
}

func (f *fakeCartRepo) Save(ctx context.Context, sessionID string, cart domain.Cart) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.carts[sessionID] = cart
	return nil
}

func (f *fakeCartRepo) Delete(ctx context.Context, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.carts, sessionID)
	return nil
}

type fakeSessionRepo struct {
	tokens map[string]time.Duration
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{tokens: make(map[string]time.Duration)}
}

func (f *fakeSessionRepo) Save(ctx context.Context, token string, ttl time.Duration) error {
	f.tokens[token] = ttl
	return nil
}

func (f *fakeSessionRepo) Exists(ctx context.Context, token string) (bool, error) {
	_, ok := f.tokens[token]
	return ok, nil
}

func (f *fakeSessionRepo) Delete(ctx context.Context, token string) error {
	delete(f.tokens, token)
	return nil
}

type fakeContentRepo struct {
	content *domain.SiteContent
	err     error
}

func (f *fakeContentRepo) Get(ctx context.Context) (*domain.SiteContent, error) {
	return f.content, f.err
}

func (f *fakeContentRepo) Put(ctx context.Context, content *domain.SiteContent) error {
	if f.err != nil {
		return f.err
	}
	f.content = content
	return nil
}

func sortedStrings(in []string) []string {
	out := append([]string(nil), in...)
	sort.Strings(out)
	return out
}
