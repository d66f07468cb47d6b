package cloudinary

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/DRSN-tech/rawline/internal/infrastructure"
	"github.com/DRSN-tech/rawline/internal/usecase"
	"github.com/DRSN-tech/rawline/pkg/e"
	"github.com/DRSN-tech/rawline/pkg/logger"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/jimlawless/whereami"
)

const (
	deliveryHost = "https://res.cloudinary.com"
	defaultCrop  = "fill"
)

// CloudinaryInfrastructure — хостинг ассетов в Cloudinary. Идентификатор ассета — public id.
// Трансформации (формат, качество, размер, кадрирование) задаются в URL доставки.
type CloudinaryInfrastructure struct {
	cld               *cloudinary.Cloudinary
	cloudName         string
	logger            logger.Logger
	cleaner           *infrastructure.Cleaner
	uploadImagesLimit int
}

func NewCloudinaryInfrastructure(
	cld *cloudinary.Cloudinary,
	uploadImagesLimit int,
	logger logger.Logger,
	shutdownCtx context.Context,
) *CloudinaryInfrastructure {
	c := &CloudinaryInfrastructure{
		cld:               cld,
		cloudName:         cld.Config.Cloud.CloudName,
		logger:            logger,
		uploadImagesLimit: uploadImagesLimit,
	}
	c.cleaner = infrastructure.NewCleaner(c.destroy, logger, shutdownCtx)
	return c
}

func (c *CloudinaryInfrastructure) UploadImages(ctx context.Context, req *usecase.UploadImagesReq) (*usecase.UploadImagesRes, error) {
	const op = "CloudinaryInfrastructure.UploadImages"

	ids, orphans, err := infrastructure.UploadParallel(ctx, req.Images, c.uploadImagesLimit,
		func(ctx context.Context, image usecase.ProductImage) (string, error) {
			res, err := c.cld.Upload.Upload(ctx, bytes.NewReader(image.Data), uploadParams(req.Folder))
			if err != nil {
				return "", err
			}
			if res.Error.Message != "" {
				return "", fmt.Errorf("cloudinary: %s", res.Error.Message)
			}
			return res.PublicID, nil
		})
	if err != nil {
		c.cleaner.Cleanup(orphans)
		return nil, e.Wrap(op, err)
	}

	return usecase.NewUploadImagesRes(ids), nil
}

// URLFor строит URL доставки:
// https://res.cloudinary.com/<cloud>/image/upload/f_auto,q_auto[,w_N][,h_N][,c_<crop>]/<id>.
// Кадрирование добавляется только вместе с шириной или высотой.
func (c *CloudinaryInfrastructure) URLFor(assetID string, opts usecase.AssetURLOptions) string {
	if assetID == "" {
		return ""
	}

	transforms := []string{"f_auto", "q_auto"}
	if opts.Width > 0 {
		transforms = append(transforms, "w_"+strconv.Itoa(opts.Width))
	}
	if opts.Height > 0 {
		transforms = append(transforms, "h_"+strconv.Itoa(opts.Height))
	}
	if opts.Width > 0 || opts.Height > 0 {
		crop := opts.Crop
		if crop == "" {
			crop = defaultCrop
		}
		transforms = append(transforms, "c_"+crop)
	}

	return fmt.Sprintf("%s/%s/image/upload/%s/%s", deliveryHost, c.cloudName, strings.Join(transforms, ","), assetID)
}

func (c *CloudinaryInfrastructure) CleanupImages(keys []string) {
	c.cleaner.Cleanup(keys)
}

func (c *CloudinaryInfrastructure) WaitForCleanup(shutdownTimeoutCtx context.Context) error {
	return c.cleaner.WaitForCleanup(shutdownTimeoutCtx)
}

// destroy удаляет ассет. Ответ "not found" считается успехом.
func (c *CloudinaryInfrastructure) destroy(ctx context.Context, publicID string) error {
	res, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if res.Error.Message != "" {
		return e.Wrap(whereami.WhereAmI(), fmt.Errorf("cloudinary: %s", res.Error.Message))
	}
	return nil
}

func uploadParams(folder string) uploader.UploadParams {
	return uploader.UploadParams{
		Folder:         folder,
		UniqueFilename: api.Bool(true),
		Overwrite:      api.Bool(false),
		ResourceType:   "image",
	}
}
