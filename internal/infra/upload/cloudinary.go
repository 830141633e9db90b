package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

const ProviderCloudinary = "cloudinary"

// Cloudinary sends files to a Cloudinary account configured by a
// cloudinary:// URL.
type Cloudinary struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinary(cloudinaryURL, folder string) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &Cloudinary{cld: cld, folder: folder}, nil
}

func (c *Cloudinary) Provider() string { return ProviderCloudinary }

func (c *Cloudinary) Upload(ctx context.Context, name string, r io.Reader) (string, error) {
	f, err := Read(name, r)
	if err != nil {
		return "", err
	}

	resourceType := "image"
	if strings.HasPrefix(f.MIME.String(), "video/") {
		resourceType = "video"
	}

	res, err := c.cld.Upload.Upload(ctx, bytes.NewReader(f.Data), uploader.UploadParams{
		PublicID:     uuid.NewString(),
		Folder:       c.folder,
		ResourceType: resourceType,
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if res.Error.Message != "" {
		return "", errors.New("cloudinary upload: " + res.Error.Message)
	}
	return res.SecureURL, nil
}
