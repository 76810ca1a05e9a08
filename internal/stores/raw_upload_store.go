package stores

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"weblog-analytics/internal/models"
	"weblog-analytics/internal/shared/filestorages"
)

var (
	ErrRawUploadAlreadyExist = errors.New("raw upload already exists")
)

// RawUploadStore keeps the uploaded log file behind each report. Put is create-if-not-exists,
// so two analyses can never share or clobber the same upload.
//
//go:generate mockgen -source=raw_upload_store.go -destination=./mocks/raw_upload_store_mock.go -package=mocks
type RawUploadStore interface {
	Put(ctx context.Context, reportID string, format models.SourceFormat, data []byte) error
	Delete(ctx context.Context, reportID string, format models.SourceFormat) error
}

type rawUploadStore struct {
	fileStorage filestorages.FileStorage
	dir         string
}

func NewRawUploadStore(fileStorage filestorages.FileStorage) RawUploadStore {
	return &rawUploadStore{fileStorage: fileStorage, dir: "raw-uploads"}
}

func (s *rawUploadStore) Put(ctx context.Context, reportID string, format models.SourceFormat, data []byte) error {
	_, err := s.fileStorage.Put(ctx, s.getKey(reportID, format), bytes.NewReader(data), filestorages.PutOptions{AllowOverwrite: false})
	if err != nil {
		if errors.Is(err, filestorages.ErrFileAlreadyExists) {
			return ErrRawUploadAlreadyExist
		}
		return fmt.Errorf("failed to put raw upload: %w", err)
	}
	return nil
}

func (s *rawUploadStore) Delete(ctx context.Context, reportID string, format models.SourceFormat) error {
	err := s.fileStorage.Delete(ctx, s.getKey(reportID, format))
	if err != nil && !errors.Is(err, filestorages.ErrFileNotFound) {
		return fmt.Errorf("failed to delete raw upload: %w", err)
	}
	return nil
}

func (s *rawUploadStore) getKey(reportID string, format models.SourceFormat) string {
	return fmt.Sprintf("%s/%s.%s.log", s.dir, reportID, format)
}
