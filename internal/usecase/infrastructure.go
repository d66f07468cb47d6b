package usecase

import "context"

// AssetHost — хостинг изображений (Cloudinary или MinIO).
type AssetHost interface {
	AssetURLBuilder
	UploadImages(ctx context.Context, req *UploadImagesReq) (*UploadImagesRes, error)
	CleanupImages(keys []string)
}

// AssetURLBuilder строит URL доставки ассета без сетевых вызовов.
type AssetURLBuilder interface {
	URLFor(assetID string, opts AssetURLOptions) string
}

// Advisor возвращает совет по посадке. Никогда не возвращает ошибку: при сбое отдаёт заглушку.
type Advisor interface {
	GetAdvice(ctx context.Context, productTitle string, details string) string
}

type Embedder interface {
	Embed(ctx context.Context, text string) (*EmbedRes, error)
}

type MessageProducer interface {
	WriteRawMessage(ctx context.Context, req *WriteRawMessageReq) error
}
