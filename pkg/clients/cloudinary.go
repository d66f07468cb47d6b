package clients

import (
	config "github.com/DRSN-tech/rawline/internal/cfg"
	"github.com/DRSN-tech/rawline/pkg/e"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/jimlawless/whereami"
)

// NewCloudinaryClient создаёт клиент из CLOUDINARY_URL.
func NewCloudinaryClient(cfg *config.CloudinaryCfg) (*cloudinary.Cloudinary, error) {
	cld, err := cloudinary.NewFromURL(cfg.URL)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return cld, nil
}
