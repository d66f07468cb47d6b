package usecase

import (
	"context"
	"strings"

	"github.com/DRSN-tech/rawline/internal/domain"
	"github.com/DRSN-tech/rawline/pkg/e"
	"github.com/DRSN-tech/rawline/pkg/logger"
)

// CartUseCase хранит корзину сессии: загрузка, чистый редьюсер, сохранение.
// Параллельные правки одной сессии разрешаются по принципу last-write-wins.
type CartUseCase struct {
	cartRepo CartRepository
	catalog  CatalogUC
	logger   logger.Logger
}

func NewCartUseCase(cartRepo CartRepository, catalog CatalogUC, logger logger.Logger) *CartUseCase {
	return &CartUseCase{
		cartRepo: cartRepo,
		catalog:  catalog,
		logger:   logger,
	}
}

func (c *CartUseCase) GetCart(ctx context.Context, sessionID string) (domain.Cart, error) {
	const op = "CartUseCase.GetCart"

	cart, err := c.cartRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	return cart, nil
}

// AddItem добавляет одну единицу товара выбранного размера. Размер обязателен.
func (c *CartUseCase) AddItem(ctx context.Context, req *AddCartItemReq) (domain.Cart, error) {
	const op = "CartUseCase.AddItem"

	if strings.TrimSpace(req.Size) == "" {
		return nil, e.Wrap(op, e.ErrSizeRequired)
	}

	product, err := c.catalog.GetProductByHandle(ctx, req.Handle)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return c.apply(ctx, op, req.SessionID, func(cart domain.Cart) domain.Cart {
		return cart.Add(*product, req.Size)
	})
}

func (c *CartUseCase) RemoveItem(ctx context.Context, sessionID string, index int) (domain.Cart, error) {
	return c.apply(ctx, "CartUseCase.RemoveItem", sessionID, func(cart domain.Cart) domain.Cart {
		return cart.Remove(index)
	})
}

func (c *CartUseCase) AdjustItem(ctx context.Context, sessionID string, index int, delta int) (domain.Cart, error) {
	const op = "CartUseCase.AdjustItem"

	if delta == 0 {
		return nil, e.Wrap(op, e.ErrInvalidQuantityDelta)
	}
	return c.apply(ctx, op, sessionID, func(cart domain.Cart) domain.Cart {
		return cart.AdjustQuantity(index, delta)
	})
}

func (c *CartUseCase) RemoveLine(ctx context.Context, sessionID string, key string) (domain.Cart, error) {
	return c.apply(ctx, "CartUseCase.RemoveLine", sessionID, func(cart domain.Cart) domain.Cart {
		return cart.RemoveByKey(key)
	})
}

func (c *CartUseCase) AdjustLine(ctx context.Context, sessionID string, key string, delta int) (domain.Cart, error) {
	const op = "CartUseCase.AdjustLine"

	if delta == 0 {
		return nil, e.Wrap(op, e.ErrInvalidQuantityDelta)
	}
	return c.apply(ctx, op, sessionID, func(cart domain.Cart) domain.Cart {
		return cart.AdjustQuantityByKey(key, delta)
	})
}

func (c *CartUseCase) Clear(ctx context.Context, sessionID string) error {
	const op = "CartUseCase.Clear"

	if err := c.cartRepo.Delete(ctx, sessionID); err != nil {
		return e.Wrap(op, err)
	}
	return nil
}

func (c *CartUseCase) apply(ctx context.Context, op string, sessionID string, reduce func(domain.Cart) domain.Cart) (domain.Cart, error) {
	cart, err := c.cartRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	cart = reduce(cart)

	if err := c.cartRepo.Save(ctx, sessionID, cart); err != nil {
		return nil, e.Wrap(op, err)
	}
	return cart, nil
}
