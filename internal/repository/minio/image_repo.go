package minio

import (
	"bytes"
	"context"

	"github.com/DRSN-tech/rawline/internal/cfg"
	"github.com/DRSN-tech/rawline/internal/domain"
	"github.com/DRSN-tech/rawline/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/minio/minio-go/v7"
)

// Ассеты неизменяемы: ключ объекта уникален для каждой загрузки.
const assetCacheControl = "public, max-age=31536000, immutable"

// ImageRepo реализует хранилище ассетов витрины поверх MinIO.
type ImageRepo struct {
	mc  *minio.Client
	cfg *cfg.MinIOCfg
}

func NewImageRepo(mc *minio.Client, cfg *cfg.MinIOCfg) *ImageRepo {
	return &ImageRepo{
		mc:  mc,
		cfg: cfg,
	}
}

// Upload кладёт изображение в бакет и возвращает ключ объекта, он же идентификатор ассета.
func (i *ImageRepo) Upload(ctx context.Context, image *domain.Image) (string, error) {
	reader := bytes.NewReader(image.Bytes)

	opts := minio.PutObjectOptions{
		CacheControl: assetCacheControl,
		UserMetadata: map[string]string{"asset-id": image.ID},
	}
	if image.MimeType != nil {
		opts.ContentType = *image.MimeType
	}
	size := int64(len(image.Bytes))
	if image.Size != nil {
		size = *image.Size
	}

	info, err := i.mc.PutObject(ctx, i.cfg.BucketName, image.ObjectKey, reader, size, opts)
	if err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	return info.Key, nil
}

// Delete удаляет объект. Отсутствующий объект считается уже удалённым.
func (i *ImageRepo) Delete(ctx context.Context, key string) error {
	err := i.mc.RemoveObject(ctx, i.cfg.BucketName, key, minio.RemoveObjectOptions{})
	if err != nil && minio.ToErrorResponse(err).Code != "NoSuchKey" {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}
