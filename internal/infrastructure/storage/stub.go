package storage

import (
	"context"
	"errors"
	"sync"
	"time"

	accountingapp "github.com/simpleaccounting/backend/internal/application/accounting"
)

// Ensure StubObjectStorage implements ObjectStorageService
var _ accountingapp.ObjectStorageService = (*StubObjectStorage)(nil)

// StubObjectStorage is a development implementation of ObjectStorageService.
// It hands out fake URLs and treats every non-deleted key as present, so the
// upload confirmation flow works without a storage backend.
type StubObjectStorage struct {
	// BaseURL is the base URL for generated upload/download URLs
	BaseURL string

	mu      sync.Mutex
	deleted map[string]bool
}

// NewStubObjectStorage creates a new StubObjectStorage
func NewStubObjectStorage() *StubObjectStorage {
	return &StubObjectStorage{
		BaseURL: "https://storage.invalid",
		deleted: make(map[string]bool),
	}
}

// GenerateUploadURL generates a fake presigned URL for uploading a file
func (s *StubObjectStorage) GenerateUploadURL(
	ctx context.Context,
	storageKey, contentType string,
	expiresIn time.Duration,
) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}

	expiresAt := time.Now().Add(expiresIn)
	url := s.BaseURL + "/upload/" + storageKey + "?expires=" + expiresAt.Format(time.RFC3339)

	return url, expiresAt, nil
}

// GenerateDownloadURL generates a fake presigned URL for downloading a file
func (s *StubObjectStorage) GenerateDownloadURL(
	ctx context.Context,
	storageKey string,
	expiresIn time.Duration,
) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}

	expiresAt := time.Now().Add(expiresIn)
	url := s.BaseURL + "/download/" + storageKey + "?expires=" + expiresAt.Format(time.RFC3339)

	return url, expiresAt, nil
}

// DeleteObject records the deletion so ObjectExists stops reporting the key
func (s *StubObjectStorage) DeleteObject(ctx context.Context, storageKey string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted[storageKey] = true
	return nil
}

// ObjectExists reports true for every key that has not been deleted
func (s *StubObjectStorage) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	if storageKey == "" {
		return false, errors.New("storage key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.deleted[storageKey], nil
}
