package domain

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// CartEntry — позиция корзины. Две позиции совпадают, если совпадают Product.ID и Size.
type CartEntry struct {
	Product  Product
	Size     string
	Quantity int // не меньше 1
}

// EntryKey возвращает стабильный ключ позиции "<productID>:<size>".
func EntryKey(productID, size string) string {
	return productID + ":" + size
}

// SplitEntryKey разбирает ключ позиции. ID товара — uuid и не содержит двоеточий.
func SplitEntryKey(key string) (productID, size string, ok bool) {
	return strings.Cut(key, ":")
}

func (e CartEntry) Key() string {
	return EntryKey(e.Product.ID, e.Size)
}

// LineTotal — стоимость позиции: quantity × price.
func (e CartEntry) LineTotal() decimal.Decimal {
	return e.Product.Price.Mul(decimal.NewFromInt(int64(e.Quantity)))
}

// Cart — упорядоченная последовательность позиций в порядке первого добавления.
// Все операции возвращают новую корзину и не пишут в массив исходной.
type Cart []CartEntry

// Add добавляет единицу товара выбранного размера. Если позиция (product.ID, size)
// уже есть, её количество увеличивается на 1 на месте, иначе позиция с количеством 1
// добавляется в конец. Непустой size обеспечивает вызывающий код.
func (c Cart) Add(product Product, size string) Cart {
	if i := c.indexOf(product.ID, size); i >= 0 {
		next := c.clone(0)
		next[i].Quantity++
		return next
	}

	next := c.clone(1)
	return append(next, CartEntry{Product: product, Size: size, Quantity: 1})
}

// Remove исключает позицию по индексу, сохраняя порядок остальных.
// Индекс вне диапазона — no-op. Индекс действителен только для той корзины, из которой он прочитан.
func (c Cart) Remove(index int) Cart {
	if index < 0 || index >= len(c) {
		return c.clone(0)
	}

	next := make(Cart, 0, len(c)-1)
	next = append(next, c[:index]...)
	return append(next, c[index+1:]...)
}

// AdjustQuantity устанавливает количество позиции в max(1, quantity+delta).
// Сумма насыщается на math.MaxInt. Индекс вне диапазона — no-op.
func (c Cart) AdjustQuantity(index, delta int) Cart {
	next := c.clone(0)
	if index < 0 || index >= len(c) {
		return next
	}

	next[index].Quantity = addQuantity(next[index].Quantity, delta)
	return next
}

func addQuantity(quantity, delta int) int {
	if delta > 0 && quantity > math.MaxInt-delta {
		return math.MaxInt
	}
	return max(1, quantity+delta)
}

// IndexOfKey возвращает индекс позиции по ключу EntryKey или -1.
func (c Cart) IndexOfKey(key string) int {
	productID, size, ok := SplitEntryKey(key)
	if !ok {
		return -1
	}
	return c.indexOf(productID, size)
}

// RemoveByKey удаляет позицию по стабильному ключу. Неизвестный ключ — no-op.
func (c Cart) RemoveByKey(key string) Cart {
	return c.Remove(c.IndexOfKey(key))
}

// AdjustQuantityByKey меняет количество позиции по стабильному ключу. Неизвестный ключ — no-op.
func (c Cart) AdjustQuantityByKey(key string, delta int) Cart {
	return c.AdjustQuantity(c.IndexOfKey(key), delta)
}

// Subtotal — сумма quantity × price по всем позициям.
func (c Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, entry := range c {
		total = total.Add(entry.LineTotal())
	}
	return total
}

// Total равен Subtotal: налоги и доставка не считаются.
func (c Cart) Total() decimal.Decimal {
	return c.Subtotal()
}

// Count — общее количество единиц товара (счётчик в навигации).
func (c Cart) Count() int {
	count := 0
	for _, entry := range c {
		count += entry.Quantity
	}
	return count
}

func (c Cart) indexOf(productID, size string) int {
	for i, entry := range c {
		if entry.Product.ID == productID && entry.Size == size {
			return i
		}
	}
	return -1
}

// clone копирует позиции в новый массив с запасом extra под append.
func (c Cart) clone(extra int) Cart {
	next := make(Cart, len(c), len(c)+extra)
	copy(next, c)
	return next
}
