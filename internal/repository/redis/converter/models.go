package converter

import "time"

type ProductRedisModel struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Handle      string     `json:"handle"`
	Price       string     `json:"price"`
	Description string     `json:"description"`
	Fabric      string     `json:"fabric"`
	Fit         string     `json:"fit"`
	Care        string     `json:"care"`
	Images      []string   `json:"images"`
	Sizes       []string   `json:"sizes"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// CartEntryRedisModel хранит снимок товара на момент добавления в корзину.
type CartEntryRedisModel struct {
	Product  ProductRedisModel `json:"product"`
	Size     string            `json:"size"`
	Quantity int               `json:"quantity"`
}
