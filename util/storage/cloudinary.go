package storage

import (
	"context"
	"io"
	"log"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/tgarmenliev/sofaccess-api/config"
)

type Cloudinary struct {
	CLD *cloudinary.Cloudinary
}

func NewCloudinary(cfg *config.Config) *Cloudinary {
	cld, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		log.Fatalf("Failed to initialize Cloudinary: %v", err)
	}

	return &Cloudinary{CLD: cld}
}

// UploadImage stores the image bytes under publicID and returns the
// public URL recorded on the report row.
func (c *Cloudinary) UploadImage(ctx context.Context, file io.Reader, publicID string) (string, error) {
	resp, err := c.CLD.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:       publicID,
		UseFilename:    api.Bool(false),
		UniqueFilename: api.Bool(false),
	})
	if err != nil {
		return "", err
	}
	return resp.SecureURL, nil
}

// DeleteImage removes the blob behind a previously returned URL.
func (c *Cloudinary) DeleteImage(ctx context.Context, imageURL string) error {
	publicID := PublicIDFromURL(imageURL)
	if publicID == "" {
		return nil
	}
	_, err := c.CLD.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	return err
}

// PublicIDFromURL recovers the public ID from a Cloudinary delivery
// URL: everything after the version segment, extension stripped.
func PublicIDFromURL(imageURL string) string {
	parts := strings.SplitN(imageURL, "/upload/", 2)
	if len(parts) != 2 {
		return ""
	}
	id := parts[1]
	// strip the version segment (v1712345678/)
	if strings.HasPrefix(id, "v") {
		if slash := strings.Index(id, "/"); slash > 0 {
			id = id[slash+1:]
		}
	}
	if dot := strings.LastIndex(id, "."); dot > 0 {
		id = id[:dot]
	}
	return id
}
