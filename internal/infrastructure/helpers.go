package infrastructure

import (
	"context"
	"fmt"

	"github.com/DRSN-tech/rawline/internal/usecase"
	"github.com/DRSN-tech/rawline/pkg/e"
	"golang.org/x/sync/errgroup"
)

// GetExtensionFromMIME возвращает расширение файла по MIME-типу изображения.
// Поддерживает jpeg, jpg, png, webp. Возвращает ошибку e.ErrUnsupportedMediaType для неподдерживаемых типов.
func GetExtensionFromMIME(mime string) (string, error) {
	switch mime {
	case "image/jpeg", "image/jpg":
		return "jpg", nil
	case "image/png":
		return "png", nil
	case "image/webp":
		return "webp", nil
	default:
		return "bin", e.ErrUnsupportedMediaType
	}
}

// UploadFunc загружает одно изображение и возвращает идентификатор ассета.
type UploadFunc func(ctx context.Context, image usecase.ProductImage) (string, error)

// UploadParallel загружает изображения параллельно, не более limit одновременно.
// Идентификаторы возвращаются в порядке images. При первой ошибке остальные загрузки отменяются,
// а уже загруженные ассеты возвращаются вторым значением для очистки.
func UploadParallel(ctx context.Context, images []usecase.ProductImage, limit int, upload UploadFunc) ([]string, []string, error) {
	if limit <= 0 {
		limit = 1
	}

	for _, image := range images {
		if _, err := GetExtensionFromMIME(image.MimeType); err != nil {
			return nil, nil, fmt.Errorf("invalid mime type %s for %s: %w", image.MimeType, image.Name, err)
		}
	}

	ids := make([]string, len(images))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(limit)

	for i, image := range images {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}

			id, err := upload(egCtx, image)
			if err != nil {
				return fmt.Errorf("upload %s failed: %w", image.Name, err)
			}
			ids[i] = id
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		uploaded := make([]string, 0, len(ids))
		for _, id := range ids {
			if id != "" {
				uploaded = append(uploaded, id)
			}
		}
		return nil, uploaded, err
	}

	return ids, nil, nil
}
