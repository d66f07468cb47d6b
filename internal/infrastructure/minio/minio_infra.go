package minio

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/DRSN-tech/rawline/internal/cfg"
	"github.com/DRSN-tech/rawline/internal/domain"
	"github.com/DRSN-tech/rawline/internal/infrastructure"
	"github.com/DRSN-tech/rawline/internal/usecase"
	"github.com/DRSN-tech/rawline/pkg/e"
	"github.com/DRSN-tech/rawline/pkg/logger"
	"github.com/google/uuid"
)

// MinioInfrastructure — хостинг ассетов витрины в MinIO. Трансформации не поддерживаются:
// URLFor отдаёт исходный объект.
type MinioInfrastructure struct {
	minioRepo         usecase.ImageRepository
	cfg               *cfg.MinIOCfg
	logger            logger.Logger
	cleaner           *infrastructure.Cleaner
	uploadImagesLimit int
}

func NewMinioInfrastructure(
	minioRepo usecase.ImageRepository,
	cfg *cfg.MinIOCfg,
	uploadImagesLimit int,
	logger logger.Logger,
	shutdownCtx context.Context,
) *MinioInfrastructure {
	return &MinioInfrastructure{
		minioRepo:         minioRepo,
		cfg:               cfg,
		logger:            logger,
		cleaner:           infrastructure.NewCleaner(minioRepo.Delete, logger, shutdownCtx),
		uploadImagesLimit: uploadImagesLimit,
	}
}

// UploadImages загружает изображения параллельно с ограничением одновременных операций.
// В случае ошибки запускает очистку уже загруженных объектов.
func (m *MinioInfrastructure) UploadImages(ctx context.Context, req *usecase.UploadImagesReq) (*usecase.UploadImagesRes, error) {
	const op = "MinioInfrastructure.UploadImages"

	keys, orphans, err := infrastructure.UploadParallel(ctx, req.Images, m.uploadImagesLimit,
		func(ctx context.Context, image usecase.ProductImage) (string, error) {
			imageID := uuid.NewString()
			ext, err := infrastructure.GetExtensionFromMIME(image.MimeType)
			if err != nil {
				return "", err
			}
			objKey := fmt.Sprintf("%s/%s-%s.%s", req.Folder, objectName(image.Name), imageID, ext)
			newImage := domain.NewImage(imageID, m.cfg.BucketName, objKey, image.Data, &image.Size, &image.MimeType)

			return m.minioRepo.Upload(ctx, newImage)
		})
	if err != nil {
		m.cleaner.Cleanup(orphans)
		return nil, e.Wrap(op, err)
	}

	return usecase.NewUploadImagesRes(keys), nil
}

// URLFor возвращает публичный URL объекта. Параметры трансформации игнорируются.
func (m *MinioInfrastructure) URLFor(assetID string, _ usecase.AssetURLOptions) string {
	if assetID == "" {
		return ""
	}
	scheme := "http"
	if m.cfg.MinioUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, m.cfg.MinioEndpoint, m.cfg.BucketName, assetID)
}

// CleanupImages запускает фоновую очистку указанных ключей MinIO
func (m *MinioInfrastructure) CleanupImages(keys []string) {
	m.cleaner.Cleanup(keys)
}

// WaitForCleanup ожидает завершения всех фоновых задач очистки с учётом таймаута завершения приложения.
func (m *MinioInfrastructure) WaitForCleanup(shutdownTimeoutCtx context.Context) error {
	return m.cleaner.WaitForCleanup(shutdownTimeoutCtx)
}

// objectName убирает расширение и разделители пути из имени файла.
func objectName(name string) string {
	base := strings.TrimSuffix(path.Base(name), path.Ext(name))
	base = domain.Slug(base)
	if base == "" || base == "." {
		return "image"
	}
	return base
}
