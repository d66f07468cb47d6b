package domain

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProduct(id string, price int64) Product {
	return Product{
		ID:     id,
		Title:  "RAWLINE " + id,
		Handle: "rawline-" + id,
		Price:  decimal.NewFromInt(price),
		Sizes:  []string{"S", "M", "L"},
	}
}

func TestCart_AddToEmpty(t *testing.T) {
	a := testProduct("a", 65)

	got := Cart{}.Add(a, "M")

	require.Len(t, got, 1)
	assert.Equal(t, CartEntry{Product: a, Size: "M", Quantity: 1}, got[0])
}

func TestCart_AddSameProductAndSizeMerges(t *testing.T) {
	a := testProduct("a", 65)
	cart := Cart{{Product: a, Size: "M", Quantity: 1}}

	got := cart.Add(a, "M")

	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Quantity)
	assert.Equal(t, 1, cart[0].Quantity, "source cart must not change")
}

func TestCart_AddDifferentSizeAppends(t *testing.T) {
	a := testProduct("a", 65)
	cart := Cart{{Product: a, Size: "M", Quantity: 1}}

	got := cart.Add(a, "L")

	require.Len(t, got, 2)
	assert.Equal(t, "M", got[0].Size)
	assert.Equal(t, "L", got[1].Size)
	assert.Equal(t, 1, got[1].Quantity)
}

func TestCart_RepeatedAddsAccumulateOneUnitEach(t *testing.T) {
	a := testProduct("a", 65)
	b := testProduct("b", 120)

	cart := Cart{}.Add(a, "M").Add(b, "L").Add(a, "M").Add(a, "M")

	require.Len(t, cart, 2)
	assert.Equal(t, "a", cart[0].Product.ID, "merge updates in place")
	assert.Equal(t, 3, cart[0].Quantity)
	assert.Equal(t, 1, cart[1].Quantity)
}

func TestCart_AddDoesNotAliasSource(t *testing.T) {
	a := testProduct("a", 65)
	b := testProduct("b", 120)

	base := make(Cart, 1, 8)
	base[0] = CartEntry{Product: a, Size: "M", Quantity: 1}

	first := base.Add(b, "S")
	second := base.Add(a, "L")

	assert.Equal(t, "b", first[1].Product.ID)
	assert.Equal(t, "a", second[1].Product.ID)
	assert.Len(t, base, 1)
}

func TestCart_AdjustQuantityFloorsAtOne(t *testing.T) {
	a := testProduct("a", 65)
	cart := Cart{{Product: a, Size: "M", Quantity: 1}}

	got := cart.AdjustQuantity(0, -5)
	assert.Equal(t, 1, got[0].Quantity)

	got = got.AdjustQuantity(0, 4).AdjustQuantity(0, -1)
	assert.Equal(t, 4, got[0].Quantity)
}

func TestCart_AdjustQuantityOutOfRangeIsNoop(t *testing.T) {
	a := testProduct("a", 65)
	cart := Cart{{Product: a, Size: "M", Quantity: 2}}

	assert.Equal(t, cart, cart.AdjustQuantity(1, 3))
	assert.Equal(t, cart, cart.AdjustQuantity(-1, 3))
}

func TestCart_RemoveByPosition(t *testing.T) {
	a := testProduct("a", 65)
	b := testProduct("b", 120)
	cart := Cart{{Product: a, Size: "M", Quantity: 1}, {Product: b, Size: "L", Quantity: 1}}

	got := cart.Remove(0)

	require.Len(t, got, 1)
	assert.Equal(t, CartEntry{Product: b, Size: "L", Quantity: 1}, got[0])
	assert.Len(t, cart, 2)
}

func TestCart_RemoveLength(t *testing.T) {
	a := testProduct("a", 65)
	b := testProduct("b", 120)
	c := testProduct("c", 95)
	cart := Cart{}.Add(a, "S").Add(b, "M").Add(c, "L")

	for i := -2; i <= len(cart)+1; i++ {
		want := len(cart)
		if i >= 0 && i < len(cart) {
			want--
		}
		assert.Len(t, cart.Remove(i), want, "index %d", i)
	}
}

func TestCart_RemoveKeepsOrder(t *testing.T) {
	a := testProduct("a", 65)
	b := testProduct("b", 120)
	c := testProduct("c", 95)
	cart := Cart{}.Add(a, "S").Add(b, "M").Add(c, "L")

	got := cart.Remove(1)

	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Product.ID)
	assert.Equal(t, "c", got[1].Product.ID)
}

func TestCart_KeyedOperations(t *testing.T) {
	a := testProduct("a", 65)
	b := testProduct("b", 120)
	cart := Cart{}.Add(a, "M").Add(b, "L")

	key := EntryKey("b", "L")
	assert.Equal(t, key, cart[1].Key())
	assert.Equal(t, 1, cart.IndexOfKey(key))

	got := cart.AdjustQuantityByKey(key, 2)
	assert.Equal(t, 3, got[1].Quantity)

	got = got.RemoveByKey(EntryKey("a", "M"))
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].Product.ID)

	assert.Equal(t, got, got.RemoveByKey("missing:XL"))
	assert.Equal(t, got, got.RemoveByKey("no-separator"))
	assert.Equal(t, -1, got.IndexOfKey("no-separator"))
}

func TestSplitEntryKeyKeepsColonsInSize(t *testing.T) {
	id, size, ok := SplitEntryKey(EntryKey("a", "EU:42"))
	require.True(t, ok)
	assert.Equal(t, "a", id)
	assert.Equal(t, "EU:42", size)
}

func TestCart_Totals(t *testing.T) {
	a := testProduct("a", 10)
	b := testProduct("b", 5)
	cart := Cart{{Product: a, Size: "M", Quantity: 2}, {Product: b, Size: "L", Quantity: 3}}

	assert.True(t, decimal.NewFromInt(35).Equal(cart.Subtotal()))
	assert.True(t, cart.Subtotal().Equal(cart.Total()))
	assert.Equal(t, 5, cart.Count())

	assert.True(t, cart.Subtotal().Equal(cart.Subtotal()), "totals are pure")
}

func TestCart_TotalsWithDecimalPrices(t *testing.T) {
	p := testProduct("p", 0)
	p.Price = decimal.RequireFromString("19.99")
	cart := Cart{{Product: p, Size: "S", Quantity: 3}}

	assert.Equal(t, "59.97", cart.Subtotal().StringFixed(2))
}

func TestCart_EmptyTotals(t *testing.T) {
	var cart Cart
	assert.True(t, cart.Subtotal().IsZero())
	assert.Zero(t, cart.Count())
}

func TestProduct_Thumbnail(t *testing.T) {
	p := testProduct("a", 1)
	assert.Empty(t, p.Thumbnail())

	p.Images = []string{"rawline/tee-front", "rawline/tee-back"}
	assert.Equal(t, "rawline/tee-front", p.Thumbnail())
}

func TestCart_AdjustQuantitySaturates(t *testing.T) {
	cart := Cart{{Product: testProduct("a", 10), Size: "M", Quantity: 5}}

	next := cart.AdjustQuantity(0, math.MaxInt)
	assert.Equal(t, math.MaxInt, next[0].Quantity)

	next = next.AdjustQuantity(0, 1)
	assert.Equal(t, math.MaxInt, next[0].Quantity)

	next = cart.AdjustQuantity(0, math.MinInt)
	assert.Equal(t, 1, next[0].Quantity)
}

func TestCart_KeyWithSlashInSize(t *testing.T) {
	cart := Cart{}.Add(testProduct("a", 10), "30/32")
	key := cart[0].Key()

	assert.Equal(t, 0, cart.IndexOfKey(key))
	assert.Empty(t, cart.RemoveByKey(key))
}
