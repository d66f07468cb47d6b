package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DRSN-tech/rawline/internal/domain"
	"github.com/DRSN-tech/rawline/pkg/e"
	"github.com/DRSN-tech/rawline/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProduct(id, title string) domain.Product {
	return domain.Product{
		ID:     id,
		Title:  title,
		Handle: domain.Slug(title),
		Price:  decimal.NewFromInt(40),
		Images: []string{"rawline/" + id},
		Sizes:  []string{"S", "M"},
	}
}

func newCatalog(repo *fakeProductRepo, cache *fakeCacheRepo, emb *fakeEmbeddingRepo, adv *fakeAdvisor) *CatalogUseCase {
	return NewCatalogUseCase(repo, cache, emb, adv, logger.NewNopLogger())
}

func TestCatalog_ListProductsFillsCache(t *testing.T) {
	repo := &fakeProductRepo{products: []domain.Product{sampleProduct("1", "Heavy Tee"), sampleProduct("2", "Work Jacket")}}
	cache := newFakeCacheRepo()
	uc := newCatalog(repo, cache, newFakeEmbeddingRepo(), &fakeAdvisor{})

	got := uc.ListProducts(context.Background())
	require.Len(t, got, 2)
	assert.Equal(t, "heavy-tee", got[0].Handle)

	assert.Eventually(t, func() bool { return len(cache.cachedCatalog()) == 2 }, time.Second, 10*time.Millisecond)
}

func TestCatalog_ListProductsCachesWithCurrentVersion(t *testing.T) {
	repo := &fakeProductRepo{products: []domain.Product{sampleProduct("1", "Heavy Tee")}}
	cache := newFakeCacheRepo()
	require.NoError(t, cache.Invalidate(context.Background()))
	require.NoError(t, cache.Invalidate(context.Background()))
	uc := newCatalog(repo, cache, newFakeEmbeddingRepo(), &fakeAdvisor{})

	uc.ListProducts(context.Background())
	assert.Eventually(t, func() bool { return len(cache.cachedCatalog()) == 1 }, time.Second, 10*time.Millisecond)

	_, err := uc.GetProductByHandle(context.Background(), "heavy-tee")
	require.NoError(t, err)
	assert.Eventually(t, func() bool {
		_, ok, _ := cache.GetProduct(context.Background(), "heavy-tee")
		return ok
	}, time.Second, 10*time.Millisecond)
}

func TestCatalog_ListProductsServesCache(t *testing.T) {
	repo := &fakeProductRepo{err: errors.New("db down")}
	cache := newFakeCacheRepo()
	cache.catalog = []domain.Product{sampleProduct("1", "Heavy Tee")}
	uc := newCatalog(repo, cache, newFakeEmbeddingRepo(), &fakeAdvisor{})

	got := uc.ListProducts(context.Background())
	assert.Len(t, got, 1)
}

func TestCatalog_ListProductsDegradesToEmpty(t *testing.T) {
	repo := &fakeProductRepo{err: errors.New("db down")}
	cache := newFakeCacheRepo()
	cache.err = errors.New("redis down")
	uc := newCatalog(repo, cache, newFakeEmbeddingRepo(), &fakeAdvisor{})

	got := uc.ListProducts(context.Background())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCatalog_GetProductByHandle(t *testing.T) {
	repo := &fakeProductRepo{products: []domain.Product{sampleProduct("1", "Heavy Tee")}}
	uc := newCatalog(repo, newFakeCacheRepo(), newFakeEmbeddingRepo(), &fakeAdvisor{})

	got, err := uc.GetProductByHandle(context.Background(), "heavy-tee")
	require.NoError(t, err)
	assert.Equal(t, "1", got.ID)

	_, err = uc.GetProductByHandle(context.Background(), "missing")
	assert.ErrorIs(t, err, e.ErrProductNotFound)

	_, err = uc.GetProductByHandle(context.Background(), " ")
	assert.ErrorIs(t, err, e.ErrProductNotFound)
}

func TestCatalog_GetProductByHandleReadFailureIsNotFound(t *testing.T) {
	repo := &fakeProductRepo{err: errors.New("db down")}
	uc := newCatalog(repo, newFakeCacheRepo(), newFakeEmbeddingRepo(), &fakeAdvisor{})

	_, err := uc.GetProductByHandle(context.Background(), "heavy-tee")
	assert.ErrorIs(t, err, e.ErrProductNotFound)
}

func TestCatalog_SimilarProductsKeepsNeighbourOrder(t *testing.T) {
	repo := &fakeProductRepo{products: []domain.Product{
		sampleProduct("1", "Heavy Tee"),
		sampleProduct("2", "Work Jacket"),
		sampleProduct("3", "Loop Hoodie"),
	}}
	emb := newFakeEmbeddingRepo()
	emb.similar = []string{"3", "1", "2"}
	uc := newCatalog(repo, newFakeCacheRepo(), emb, &fakeAdvisor{})

	got, err := uc.SimilarProducts(context.Background(), "heavy-tee")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "3", got[0].ID)
	assert.Equal(t, "2", got[1].ID)
}

func TestCatalog_SimilarProductsDegradesToEmpty(t *testing.T) {
	repo := &fakeProductRepo{products: []domain.Product{sampleProduct("1", "Heavy Tee")}}
	emb := newFakeEmbeddingRepo()
	emb.err = errors.New("qdrant down")
	uc := newCatalog(repo, newFakeCacheRepo(), emb, &fakeAdvisor{})

	got, err := uc.SimilarProducts(context.Background(), "heavy-tee")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCatalog_GetFitAdvice(t *testing.T) {
	repo := &fakeProductRepo{products: []domain.Product{sampleProduct("1", "Heavy Tee")}}
	adv := &fakeAdvisor{}
	uc := newCatalog(repo, newFakeCacheRepo(), newFakeEmbeddingRepo(), adv)

	text, err := uc.GetFitAdvice(context.Background(), NewFitAdviceReq("heavy-tee", "180cm, 75kg"))
	require.NoError(t, err)
	assert.Equal(t, "Size up.", text)
	assert.Equal(t, "Heavy Tee", adv.title)
	assert.Equal(t, "180cm, 75kg", adv.details)

	_, err = uc.GetFitAdvice(context.Background(), NewFitAdviceReq("heavy-tee", "  "))
	assert.ErrorIs(t, err, e.ErrDetailsRequired)

	_, err = uc.GetFitAdvice(context.Background(), NewFitAdviceReq("missing", "180cm"))
	assert.ErrorIs(t, err, e.ErrProductNotFound)
}
