package adapter

import (
	"context"
	"io"

	"github.com/MKhiriev/go-photo-share/models"
)

type disabledStorage struct{}

// NewDisabledStorage returns an [ObjectStorage] that rejects every upload
// with [ErrStorageDisabled].
func NewDisabledStorage() ObjectStorage {
	return disabledStorage{}
}

func (disabledStorage) Upload(context.Context, io.Reader, string, string) (models.UploadResult, error) {
	return models.UploadResult{}, ErrStorageDisabled
}

func (disabledStorage) Destroy(context.Context, string) error {
	return nil
}

func (disabledStorage) URL(result models.UploadResult, _ models.Transformation) string {
	return result.SecureURL
}
