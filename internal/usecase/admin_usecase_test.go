package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/DRSN-tech/rawline/internal/domain"
	"github.com/DRSN-tech/rawline/pkg/e"
	"github.com/DRSN-tech/rawline/pkg/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type adminFixture struct {
	uc     *AdminUseCase
	repo   *fakeProductRepo
	outbox *fakeOutboxRepo
	cache  *fakeCacheRepo
	emb    *fakeEmbeddingRepo
	assets *fakeAssetHost
	tx     *fakeTxManager
}

func newAdminFixture() *adminFixture {
	f := &adminFixture{
		repo:   &fakeProductRepo{},
		outbox: &fakeOutboxRepo{},
		cache:  newFakeCacheRepo(),
		emb:    newFakeEmbeddingRepo(),
		assets: &fakeAssetHost{},
		tx:     &fakeTxManager{},
	}
	f.uc = NewAdminUseCase(f.repo, f.outbox, f.cache, f.emb, fakeEmbedder{}, f.assets, f.tx, "rawline", logger.NewNopLogger())
	return f
}

func teeForm() *ProductForm {
	return &ProductForm{
		Title:  "Heavy Tee",
		Price:  "65.00",
		Sizes:  "S,M,L",
		Images: []string{"rawline/tee-front", "rawline/tee-back"},
	}
}

func TestAdmin_CreateProduct(t *testing.T) {
	f := newAdminFixture()
	f.cache.catalog = []domain.Product{}

	p, err := f.uc.CreateProduct(context.Background(), teeForm())
	require.NoError(t, err)

	assert.Equal(t, "heavy-tee", p.Handle)
	assert.Equal(t, []string{"S", "M", "L"}, p.Sizes)
	assert.Equal(t, 1, f.tx.calls)
	assert.Equal(t, []OutboxEventType{ProductCreated}, f.outbox.types())
	assert.Nil(t, f.cache.cachedCatalog())
	assert.Eventually(t, func() bool { return f.emb.has(p.ID) }, time.Second, 10*time.Millisecond)
}

func TestAdmin_CreateProductValidation(t *testing.T) {
	f := newAdminFixture()

	form := teeForm()
	form.Price = "abc"
	_, err := f.uc.CreateProduct(context.Background(), form)
	assert.ErrorIs(t, err, e.ErrInvalidPrice)

	form = teeForm()
	form.Images = nil
	_, err = f.uc.CreateProduct(context.Background(), form)
	assert.ErrorIs(t, err, e.ErrNoImages)

	assert.Zero(t, f.tx.calls)
	assert.Empty(t, f.outbox.types())
}

func TestAdmin_UpdateProductTracksTitle(t *testing.T) {
	f := newAdminFixture()
	created, err := f.uc.CreateProduct(context.Background(), teeForm())
	require.NoError(t, err)

	form := teeForm()
	form.Title = "Heavy Tee II"
	updated, err := f.uc.UpdateProduct(context.Background(), created.ID, form)
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "heavy-tee-ii", updated.Handle)
	assert.Equal(t, []OutboxEventType{ProductCreated, ProductUpdated}, f.outbox.types())
	assert.Contains(t, f.cache.invalidated, "heavy-tee")
	assert.Contains(t, f.cache.invalidated, "heavy-tee-ii")
}

func TestAdmin_UpdateProductErrors(t *testing.T) {
	f := newAdminFixture()

	_, err := f.uc.UpdateProduct(context.Background(), "not-a-uuid", teeForm())
	assert.ErrorIs(t, err, e.ErrInvalidProductID)

	_, err = f.uc.UpdateProduct(context.Background(), uuid.NewString(), teeForm())
	assert.ErrorIs(t, err, e.ErrProductNotFound)
}

func TestAdmin_DeleteProduct(t *testing.T) {
	f := newAdminFixture()
	created, err := f.uc.CreateProduct(context.Background(), teeForm())
	require.NoError(t, err)

	require.NoError(t, f.uc.DeleteProduct(context.Background(), created.ID))

	products, err := f.uc.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
	assert.Equal(t, []string{created.ID}, f.emb.deleted)
	assert.Equal(t, sortedStrings(created.Images), sortedStrings(f.assets.cleaned))
	assert.Equal(t, []OutboxEventType{ProductCreated, ProductDeleted}, f.outbox.types())

	err = f.uc.DeleteProduct(context.Background(), created.ID)
	assert.ErrorIs(t, err, e.ErrProductNotFound)
}

func TestAdmin_UploadAssets(t *testing.T) {
	f := newAdminFixture()

	res, err := f.uc.UploadAssets(context.Background(), []ProductImage{
		*NewProductImage([]byte{1}, "image/png", 1, "front"),
		*NewProductImage([]byte{2}, "image/png", 1, "back"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"rawline/front", "rawline/back"}, res.AssetIDs)

	_, err = f.uc.UploadAssets(context.Background(), nil)
	assert.ErrorIs(t, err, e.ErrNoImages)
}

type blockingEmbedder struct {
	release chan struct{}
}

func (b blockingEmbedder) Embed(ctx context.Context, text string) (*EmbedRes, error) {
	<-b.release
	return NewEmbedRes([]float32{0.1, 0.2, 0.3}, "test-model"), nil
}

func TestAdmin_WaitForIndexing(t *testing.T) {
	f := newAdminFixture()
	embedder := blockingEmbedder{release: make(chan struct{})}
	f.uc.embedder = embedder

	p, err := f.uc.CreateProduct(context.Background(), teeForm())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, f.uc.WaitForIndexing(ctx), context.DeadlineExceeded)

	close(embedder.release)
	require.NoError(t, f.uc.WaitForIndexing(context.Background()))
	assert.True(t, f.emb.has(p.ID))
}
