package http

import (
	"net/http"

	"github.com/DRSN-tech/rawline/internal/domain"
	"github.com/DRSN-tech/rawline/internal/usecase"
	"github.com/DRSN-tech/rawline/pkg/logger"
)

type CartHandler struct {
	cartUC usecase.CartUC
	view   presenter
	logger logger.Logger
}

func NewCartHandler(cartUC usecase.CartUC, assets usecase.AssetURLBuilder, logger logger.Logger) *CartHandler {
	return &CartHandler{
		cartUC: cartUC,
		view:   presenter{assets: assets},
		logger: logger,
	}
}

// getCart godoc
// @Summary      Корзина сессии
// @Tags         cart
// @Produce      json
// @Param        X-Session-ID  header    string  false  "Идентификатор сессии"
// @Success      200           {object}  CartResponse
// @Router       /api/v1/cart [get]
func (h *CartHandler) getCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.cartUC.GetCart(r.Context(), sessionIDFromCtx(r.Context()))
	h.respond(w, r, cart, err)
}

// addItem godoc
// @Summary      Добавить товар в корзину
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        X-Session-ID  header    string              false  "Идентификатор сессии"
// @Param        body          body      AddCartItemRequest  true   "Handle и размер"
// @Success      200           {object}  CartResponse
// @Failure      400           {object}  ErrorResponse
// @Failure      404           {object}  ErrorResponse
// @Router       /api/v1/cart/items [post]
func (h *CartHandler) addItem(w http.ResponseWriter, r *http.Request) {
	var req AddCartItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.Warnf("%d %s: %v", http.StatusBadRequest, r.URL.Path, err)
		WriteError(w, err)
		return
	}

	cart, err := h.cartUC.AddItem(r.Context(), usecase.NewAddCartItemReq(sessionIDFromCtx(r.Context()), req.Handle, req.Size))
	h.respond(w, r, cart, err)
}

// adjustItem godoc
// @Summary      Изменить количество по позиции
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        index  path      int                    true  "Позиция в корзине"
// @Param        body   body      AdjustQuantityRequest  true  "Изменение количества"
// @Success      200    {object}  CartResponse
// @Failure      400    {object}  ErrorResponse
// @Router       /api/v1/cart/items/{index} [patch]
func (h *CartHandler) adjustItem(w http.ResponseWriter, r *http.Request) {
	index, err := parseIndexParam(r, "index")
	if err != nil {
		WriteError(w, err)
		return
	}

	var req AdjustQuantityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	cart, err := h.cartUC.AdjustItem(r.Context(), sessionIDFromCtx(r.Context()), index, req.Delta)
	h.respond(w, r, cart, err)
}

// removeItem godoc
// @Summary      Удалить позицию по индексу
// @Tags         cart
// @Produce      json
// @Param        index  path      int  true  "Позиция в корзине"
// @Success      200    {object}  CartResponse
// @Failure      400    {object}  ErrorResponse
// @Router       /api/v1/cart/items/{index} [delete]
func (h *CartHandler) removeItem(w http.ResponseWriter, r *http.Request) {
	index, err := parseIndexParam(r, "index")
	if err != nil {
		WriteError(w, err)
		return
	}

	cart, err := h.cartUC.RemoveItem(r.Context(), sessionIDFromCtx(r.Context()), index)
	h.respond(w, r, cart, err)
}

// adjustLine godoc
// @Summary      Изменить количество по ключу позиции
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        key   path      string                 true  "Ключ позиции <productID>:<size>, экранированный для пути"
// @Param        body  body      AdjustQuantityRequest  true  "Изменение количества"
// @Success      200   {object}  CartResponse
// @Failure      400   {object}  ErrorResponse
// @Router       /api/v1/cart/lines/{key} [patch]
func (h *CartHandler) adjustLine(w http.ResponseWriter, r *http.Request) {
	key, err := lineKeyParam(r, "key")
	if err != nil {
		WriteError(w, err)
		return
	}

	var req AdjustQuantityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	cart, err := h.cartUC.AdjustLine(r.Context(), sessionIDFromCtx(r.Context()), key, req.Delta)
	h.respond(w, r, cart, err)
}

// removeLine godoc
// @Summary      Удалить позицию по ключу
// @Tags         cart
// @Produce      json
// @Param        key  path      string  true  "Ключ позиции <productID>:<size>, экранированный для пути"
// @Success      200  {object}  CartResponse
// @Router       /api/v1/cart/lines/{key} [delete]
func (h *CartHandler) removeLine(w http.ResponseWriter, r *http.Request) {
	key, err := lineKeyParam(r, "key")
	if err != nil {
		WriteError(w, err)
		return
	}

	cart, err := h.cartUC.RemoveLine(r.Context(), sessionIDFromCtx(r.Context()), key)
	h.respond(w, r, cart, err)
}

// clearCart godoc
// @Summary      Очистить корзину
// @Tags         cart
// @Success      204
// @Router       /api/v1/cart [delete]
func (h *CartHandler) clearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.cartUC.Clear(r.Context(), sessionIDFromCtx(r.Context())); err != nil {
		h.logger.Errorf(err, "%s %s", r.Method, r.URL.Path)
		WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CartHandler) respond(w http.ResponseWriter, r *http.Request, cart domain.Cart, err error) {
	if err != nil {
		if code, _ := ToHTTPResponse(err); code == http.StatusInternalServerError {
			h.logger.Errorf(err, "%s %s", r.Method, r.URL.Path)
		} else {
			h.logger.Warnf("%d %s: %v", code, r.URL.Path, err)
		}
		WriteError(w, err)
		return
	}
	WriteSuccess(w, http.StatusOK, h.view.cart(cart))
}
