package storage

import (
	"context"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
)

// StorageService abstracts case attachment storage (photos, STL/OBJ scans).
type StorageService interface {
	// UploadFile uploads a local file into destFolder and returns its permanent identifier.
	UploadFile(ctx context.Context, localFilePath, destFolder string) (string, error)
	// DeleteFile removes a stored file by its public ID.
	DeleteFile(ctx context.Context, publicID string) error
	// GetDownloadURL returns a URL for a stored file.
	GetDownloadURL(ctx context.Context, resourceType, publicID string, expires time.Duration) (string, error)
}

// StorageServiceImpl is the Cloudinary-backed implementation.
type StorageServiceImpl struct {
	cld       *cloudinary.Cloudinary
	cloudName string
}
