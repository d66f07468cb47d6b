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

// CartRepo хранит корзину сессии одним JSON-значением с TTL, продлеваемым при каждой записи.
type CartRepo struct {
	client *clients.RedisClient
	conv   converter.ProductConverter
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewCartRepo(client *clients.RedisClient, conv converter.ProductConverter,
	cfg *cfg.RedisCfg, logger logger.Logger) *CartRepo {
	return &CartRepo{
		client: client,
		conv:   conv,
		cfg:    cfg,
		logger: logger,
	}
}

// Get возвращает пустую корзину, если сессия новая или истекла.
func (c *CartRepo) Get(ctx context.Context, sessionID string) (domain.Cart, error) {
	data, err := c.client.Client.Get(ctx, cartKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, r.Nil) {
			return domain.Cart{}, nil
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var models []converter.CartEntryRedisModel
	if err := json.Unmarshal(data, &models); err != nil {
		c.logger.Warnf("Dropping unreadable cart for session %s: %v", sessionID, e.Wrap(whereami.WhereAmI(), err))
		return domain.Cart{}, nil
	}

	cart, err := c.conv.CartToEntity(models)
	if err != nil {
		c.logger.Warnf("Dropping unreadable cart for session %s: %v", sessionID, e.Wrap(whereami.WhereAmI(), err))
		return domain.Cart{}, nil
	}
	return cart, nil
}

// Save перезаписывает корзину. Пустая корзина удаляет ключ.
func (c *CartRepo) Save(ctx context.Context, sessionID string, cart domain.Cart) error {
	if len(cart) == 0 {
		return c.Delete(ctx, sessionID)
	}

	data, err := json.Marshal(c.conv.CartToRedisModel(cart))
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := c.client.Client.Set(ctx, cartKey(sessionID), data, c.cfg.CartTTL).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	return nil
}

func (c *CartRepo) Delete(ctx context.Context, sessionID string) error {
	if err := c.client.Client.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	return nil
}
