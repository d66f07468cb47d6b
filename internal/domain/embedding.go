package domain

import "time"

// Payload описывает дополнительную информацию вектора
type Payload map[string]any

// Embedding — текстовый эмбеддинг товара для поиска похожих товаров.
// ID совпадает с ID товара.
type Embedding struct {
	ID      string
	Vector  []float32
	Payload Payload
}

func NewEmbedding(id string, vector []float32, payload Payload) *Embedding {
	return &Embedding{
		ID:      id,
		Vector:  vector,
		Payload: payload,
	}
}

func NewPayload(product *Product, modelVersion string) Payload {
	return Payload{
		"product_id":    product.ID,
		"handle":        product.Handle,
		"title":         product.Title,
		"created_at":    time.Now().UTC().UnixNano(),
		"model_version": modelVersion,
	}
}

// EmbeddingText собирает текст товара, по которому строится эмбеддинг.
func EmbeddingText(p *Product) string {
	return p.Title + "\n" + p.Description + "\nFabric: " + p.Fabric + "\nFit: " + p.Fit
}
