package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/DRSN-tech/rawline/internal/domain"
	"github.com/DRSN-tech/rawline/pkg/e"
	"github.com/DRSN-tech/rawline/pkg/logger"
)

const (
	similarProductsLimit = 4
	cacheWriteTimeout    = 500 * time.Millisecond
)

// CatalogUseCase отдаёт витрину: список товаров, карточку, похожие товары и советы по посадке.
// Сбои чтения деградируют до пустого списка или NotFound и пишутся в лог.
type CatalogUseCase struct {
	productRepo   ProductRepository
	cacheRepo     CacheRepository
	embeddingRepo EmbeddingRepository
	advisor       Advisor
	logger        logger.Logger
}

func NewCatalogUseCase(
	productRepo ProductRepository,
	cacheRepo CacheRepository,
	embeddingRepo EmbeddingRepository,
	advisor Advisor,
	logger logger.Logger,
) *CatalogUseCase {
	return &CatalogUseCase{
		productRepo:   productRepo,
		cacheRepo:     cacheRepo,
		embeddingRepo: embeddingRepo,
		advisor:       advisor,
		logger:        logger,
	}
}

// ListProducts возвращает каталог в порядке хранилища. Ошибка чтения даёт пустой список.
func (c *CatalogUseCase) ListProducts(ctx context.Context) []domain.Product {
	const op = "CatalogUseCase.ListProducts"

	cached, ok, err := c.cacheRepo.GetCatalog(ctx)
	if err != nil {
		c.logger.Warnf("Catalog cache read failed: %v", e.Wrap(op, err))
	} else if ok {
		return cached
	}

	version, versionErr := c.cacheRepo.CatalogVersion(ctx)

	products, err := c.productRepo.List(ctx)
	if err != nil {
		c.logger.Warnf("Failed to fetch products, serving empty catalog: %v", e.Wrap(op, err))
		return []domain.Product{}
	}

	if versionErr != nil {
		c.logger.Warnf("Catalog cache version unavailable, skipping cache write: %v", e.Wrap(op, versionErr))
		return products
	}

	// Фоновое добавление каталога в кэш
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), cacheWriteTimeout)
		defer cancel()

		if err := c.cacheRepo.SetCatalog(bgCtx, version, products); err != nil {
			c.logger.Warnf("Failed to cache catalog in background: %v", e.Wrap(op, err))
		}
	}()

	return products
}

// GetProductByHandle ищет товар по handle. Отсутствие и ошибка чтения дают ErrProductNotFound.
func (c *CatalogUseCase) GetProductByHandle(ctx context.Context, handle string) (*domain.Product, error) {
	const op = "CatalogUseCase.GetProductByHandle"

	handle = strings.TrimSpace(handle)
	if handle == "" {
		return nil, e.Wrap(op, e.ErrProductNotFound)
	}

	cached, ok, err := c.cacheRepo.GetProduct(ctx, handle)
	if err != nil {
		c.logger.Warnf("Product cache read failed: %v", e.Wrap(op, err))
	} else if ok {
		return cached, nil
	}

	version, versionErr := c.cacheRepo.CatalogVersion(ctx)

	product, err := c.productRepo.GetByHandle(ctx, handle)
	if err != nil {
		if !errors.Is(err, e.ErrProductNotFound) {
			c.logger.Warnf("Failed to fetch product %q: %v", handle, e.Wrap(op, err))
		}
		return nil, e.Wrap(op, e.ErrProductNotFound)
	}

	if versionErr != nil {
		c.logger.Warnf("Catalog cache version unavailable, skipping cache write: %v", e.Wrap(op, versionErr))
		return product, nil
	}

	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), cacheWriteTimeout)
		defer cancel()

		if err := c.cacheRepo.SetProduct(bgCtx, version, product); err != nil {
			c.logger.Warnf("Failed to cache product in background: %v", e.Wrap(op, err))
		}
	}()

	return product, nil
}

// SimilarProducts возвращает ближайших соседей товара по текстовому эмбеддингу.
// Недоступность векторного поиска даёт пустой список.
func (c *CatalogUseCase) SimilarProducts(ctx context.Context, handle string) ([]domain.Product, error) {
	const op = "CatalogUseCase.SimilarProducts"

	product, err := c.GetProductByHandle(ctx, handle)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	ids, err := c.embeddingRepo.Similar(ctx, product.ID, similarProductsLimit)
	if err != nil {
		c.logger.Warnf("Similar products lookup failed: %v", e.Wrap(op, err))
		return []domain.Product{}, nil
	}
	if len(ids) == 0 {
		return []domain.Product{}, nil
	}

	products, err := c.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		c.logger.Warnf("Failed to fetch similar products: %v", e.Wrap(op, err))
		return []domain.Product{}, nil
	}

	// Порядок соседей задаёт векторный поиск
	byID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	result := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok && id != product.ID {
			result = append(result, p)
		}
	}

	return result, nil
}

// GetFitAdvice возвращает текст совета по посадке для товара.
func (c *CatalogUseCase) GetFitAdvice(ctx context.Context, req *FitAdviceReq) (string, error) {
	const op = "CatalogUseCase.GetFitAdvice"

	if strings.TrimSpace(req.Details) == "" {
		return "", e.Wrap(op, e.ErrDetailsRequired)
	}

	product, err := c.GetProductByHandle(ctx, req.Handle)
	if err != nil {
		return "", e.Wrap(op, err)
	}

	return c.advisor.GetAdvice(ctx, product.Title, req.Details), nil
}
