package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/DRSN-tech/rawline/internal/domain"
	"github.com/DRSN-tech/rawline/pkg/e"
	"github.com/DRSN-tech/rawline/pkg/logger"
	"github.com/google/uuid"
)

const indexTimeout = 10 * time.Second

// AdminUseCase реализует управление каталогом из админки.
// Запись товара и событие outbox фиксируются одной транзакцией.
// Кэш, векторный индекс и ассеты обновляются после коммита по принципу best-effort.
type AdminUseCase struct {
	productRepo   ProductRepository
	outboxRepo    OutboxRepository
	cacheRepo     CacheRepository
	embeddingRepo EmbeddingRepository
	embedder      Embedder
	assets        AssetHost
	txManager     TxManager
	assetsFolder  string
	logger        logger.Logger
	indexing      sync.WaitGroup
}

func NewAdminUseCase(
	productRepo ProductRepository,
	outboxRepo OutboxRepository,
	cacheRepo CacheRepository,
	embeddingRepo EmbeddingRepository,
	embedder Embedder,
	assets AssetHost,
	txManager TxManager,
	assetsFolder string,
	logger logger.Logger,
) *AdminUseCase {
	return &AdminUseCase{
		productRepo:   productRepo,
		outboxRepo:    outboxRepo,
		cacheRepo:     cacheRepo,
		embeddingRepo: embeddingRepo,
		embedder:      embedder,
		assets:        assets,
		txManager:     txManager,
		assetsFolder:  assetsFolder,
		logger:        logger,
	}
}

// ListProducts читает каталог напрямую из хранилища, минуя кэш.
func (a *AdminUseCase) ListProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "AdminUseCase.ListProducts"

	products, err := a.productRepo.List(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	return products, nil
}

func (a *AdminUseCase) CreateProduct(ctx context.Context, form *ProductForm) (*domain.Product, error) {
	const op = "AdminUseCase.CreateProduct"

	payload, err := a.mapForm(form)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	var product *domain.Product
	err = a.txManager.Do(ctx, func(ctx context.Context) error {
		product, err = a.productRepo.Create(ctx, payload)
		if err != nil {
			return err
		}
		return a.writeProductEvent(ctx, ProductCreated, product)
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	a.invalidateCache(ctx, product.Handle)
	a.indexProduct(product)

	return product, nil
}

// UpdateProduct заменяет поля товара. Handle пересчитывается из нового Title.
func (a *AdminUseCase) UpdateProduct(ctx context.Context, id string, form *ProductForm) (*domain.Product, error) {
	const op = "AdminUseCase.UpdateProduct"

	if err := validateProductID(id); err != nil {
		return nil, e.Wrap(op, err)
	}

	payload, err := a.mapForm(form)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	var previous, product *domain.Product
	err = a.txManager.Do(ctx, func(ctx context.Context) error {
		previous, err = a.productRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		product, err = a.productRepo.Update(ctx, id, payload)
		if err != nil {
			return err
		}
		return a.writeProductEvent(ctx, ProductUpdated, product)
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	a.invalidateCache(ctx, previous.Handle, product.Handle)
	a.indexProduct(product)

	return product, nil
}

// DeleteProduct удаляет товар, его вектор и ассеты.
func (a *AdminUseCase) DeleteProduct(ctx context.Context, id string) error {
	const op = "AdminUseCase.DeleteProduct"

	if err := validateProductID(id); err != nil {
		return e.Wrap(op, err)
	}

	var deleted *domain.Product
	err := a.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		deleted, err = a.productRepo.Delete(ctx, id)
		if err != nil {
			return err
		}
		return a.writeProductEvent(ctx, ProductDeleted, deleted)
	})
	if err != nil {
		return e.Wrap(op, err)
	}

	a.invalidateCache(ctx, deleted.Handle)

	if err := a.embeddingRepo.Delete(ctx, []string{deleted.ID}); err != nil {
		a.logger.Warnf("Failed to delete product embedding: %v", e.Wrap(op, err))
	}

	if len(deleted.Images) > 0 {
		a.assets.CleanupImages(deleted.Images)
	}

	return nil
}

// UploadAssets загружает изображения и возвращает идентификаторы ассетов в порядке запроса.
func (a *AdminUseCase) UploadAssets(ctx context.Context, images []ProductImage) (*UploadImagesRes, error) {
	const op = "AdminUseCase.UploadAssets"

	if len(images) == 0 {
		return nil, e.Wrap(op, e.ErrNoImages)
	}

	res, err := a.assets.UploadImages(ctx, NewUploadImagesReq(a.assetsFolder, images))
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	return res, nil
}

func (a *AdminUseCase) mapForm(form *ProductForm) (*domain.ProductPayload, error) {
	if err := ValidateProductForm(form); err != nil {
		return nil, err
	}
	return MapProductForm(form)
}

func (a *AdminUseCase) writeProductEvent(ctx context.Context, eventType OutboxEventType, product *domain.Product) error {
	event, err := NewProductEvent(eventType, product)
	if err != nil {
		return err
	}
	_, err = a.outboxRepo.Create(ctx, event)
	return err
}

func (a *AdminUseCase) invalidateCache(ctx context.Context, handles ...string) {
	if err := a.cacheRepo.Invalidate(ctx, handles...); err != nil {
		a.logger.Warnf("Failed to invalidate catalog cache: %v", e.Wrap("AdminUseCase.invalidateCache", err))
	}
}

// indexProduct строит эмбеддинг товара и сохраняет его в векторном индексе в фоне.
func (a *AdminUseCase) indexProduct(product *domain.Product) {
	const op = "AdminUseCase.indexProduct"

	snapshot := *product
	a.indexing.Add(1)
	go func() {
		defer a.indexing.Done()

		ctx, cancel := context.WithTimeout(context.Background(), indexTimeout)
		defer cancel()

		res, err := a.embedder.Embed(ctx, domain.EmbeddingText(&snapshot))
		if err != nil {
			a.logger.Warnf("Product %s not indexed: %v", snapshot.ID, e.Wrap(op, err))
			return
		}
		if len(res.Vector) == 0 {
			a.logger.Warnf("Product %s not indexed: %v", snapshot.ID, e.Wrap(op, e.ErrVectorEmbeddingEmpty))
			return
		}

		embedding := domain.NewEmbedding(snapshot.ID, res.Vector, domain.NewPayload(&snapshot, res.ModelVersion))
		if err := a.embeddingRepo.Upsert(ctx, []domain.Embedding{*embedding}); err != nil {
			a.logger.Warnf("Product %s not indexed: %v", snapshot.ID, e.Wrap(op, err))
		}
	}()
}

func validateProductID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return e.ErrInvalidProductID
	}
	return nil
}

// WaitForIndexing ждёт завершения фоновой индексации товаров или истечения ctx.
func (a *AdminUseCase) WaitForIndexing(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		a.indexing.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("product indexing timeout during shutdown: %w", ctx.Err())
	}
}
