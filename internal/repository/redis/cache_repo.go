package redis

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/DRSN-tech/rawline/internal/cfg"
	"github.com/DRSN-tech/rawline/internal/domain"
	"github.com/DRSN-tech/rawline/internal/repository/redis/converter"
	"github.com/DRSN-tech/rawline/pkg/clients"
	"github.com/DRSN-tech/rawline/pkg/e"
	"github.com/DRSN-tech/rawline/pkg/logger"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

// setIfVersionScript пишет значение, только если версия каталога не менялась с момента чтения.
var setIfVersionScript = r.NewScript(`
local current = redis.call('GET', KEYS[1])
if not current then current = '0' end
if current ~= ARGV[1] then return 0 end
redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3])
return 1
`)

// CacheRepo кэширует каталог целиком и карточки товаров по handle.
// Каждая Invalidate увеличивает версию каталога, и запись, начатая до неё, отбрасывается.
type CacheRepo struct {
	client *clients.RedisClient
	conv   converter.ProductConverter
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewCacheRepo(client *clients.RedisClient, conv converter.ProductConverter,
	cfg *cfg.RedisCfg, logger logger.Logger) *CacheRepo {
	return &CacheRepo{
		client: client,
		conv:   conv,
		cfg:    cfg,
		logger: logger,
	}
}

// GetCatalog возвращает закэшированный каталог. Битая запись удаляется и считается промахом.
func (c *CacheRepo) GetCatalog(ctx context.Context) ([]domain.Product, bool, error) {
	data, err := c.get(ctx, catalogKey)
	if err != nil || data == nil {
		return nil, false, err
	}

	var models []converter.ProductRedisModel
	if err := json.Unmarshal(data, &models); err != nil {
		c.dropCorrupted(catalogKey, err)
		return nil, false, nil
	}

	products, err := c.conv.ToArrEntity(models)
	if err != nil {
		c.dropCorrupted(catalogKey, err)
		return nil, false, nil
	}

	return products, true, nil
}

// CatalogVersion возвращает текущую версию каталога. Её читают до похода в хранилище.
func (c *CacheRepo) CatalogVersion(ctx context.Context) (int64, error) {
	version, err := c.client.Client.Get(ctx, catalogVersionKey).Int64()
	if err != nil {
		if errors.Is(err, r.Nil) {
			return 0, nil
		}
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}
	return version, nil
}

func (c *CacheRepo) SetCatalog(ctx context.Context, version int64, products []domain.Product) error {
	data, err := json.Marshal(c.conv.ToArrRedisModel(products))
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	return c.setIfVersion(ctx, version, catalogKey, data)
}

func (c *CacheRepo) GetProduct(ctx context.Context, handle string) (*domain.Product, bool, error) {
	key := productKey(handle)

	data, err := c.get(ctx, key)
	if err != nil || data == nil {
		return nil, false, err
	}

	var model converter.ProductRedisModel
	if err := json.Unmarshal(data, &model); err != nil {
		c.dropCorrupted(key, err)
		return nil, false, nil
	}

	product, err := c.conv.ToEntity(&model)
	if err != nil {
		c.dropCorrupted(key, err)
		return nil, false, nil
	}

	if product.Handle != handle {
		c.logger.Warnf("Cache handle mismatch: key_handle: %s, model_handle: %s", handle, product.Handle)
		c.dropCorrupted(key, nil)
		return nil, false, nil
	}

	return product, true, nil
}

func (c *CacheRepo) SetProduct(ctx context.Context, version int64, product *domain.Product) error {
	data, err := json.Marshal(c.conv.ToRedisModel(product))
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	return c.setIfVersion(ctx, version, productKey(product.Handle), data)
}

// Invalidate увеличивает версию каталога и удаляет каталог и карточки по переданным handle.
func (c *CacheRepo) Invalidate(ctx context.Context, handles ...string) error {
	keys := make([]string, 0, len(handles)+1)
	keys = append(keys, catalogKey)
	for _, h := range handles {
		keys = append(keys, productKey(h))
	}

	_, err := c.client.Client.TxPipelined(ctx, func(pipe r.Pipeliner) error {
		pipe.Incr(ctx, catalogVersionKey)
		pipe.Del(ctx, keys...)
		return nil
	})
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	return nil
}

func (c *CacheRepo) setIfVersion(ctx context.Context, version int64, key string, data []byte) error {
	err := setIfVersionScript.Run(ctx, c.client.Client,
		[]string{catalogVersionKey, key},
		version, data, c.cfg.ProductTTL.Milliseconds(),
	).Err()
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	return nil
}

// get возвращает nil без ошибки при промахе.
func (c *CacheRepo) get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.client.Client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, r.Nil) {
			return nil, nil
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	return data, nil
}

func (c *CacheRepo) dropCorrupted(key string, cause error) {
	if cause != nil {
		c.logger.Warnf("Redis cache entry %s is corrupted: %v", key, e.Wrap(whereami.WhereAmI(), cause))
	}
	if err := c.client.Client.Del(context.Background(), key).Err(); err != nil {
		c.logger.Warnf("Redis del failed: %v", e.Wrap(whereami.WhereAmI(), err))
	}
}
