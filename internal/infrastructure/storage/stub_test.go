package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStubObjectStorage(t *testing.T) {
	s := NewStubObjectStorage()
	require.NotNil(t, s)
	assert.Equal(t, "https://storage.invalid", s.BaseURL)
}

func TestStubObjectStorage_GenerateUploadURL(t *testing.T) {
	s := NewStubObjectStorage()
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		url, expiresAt, err := s.GenerateUploadURL(ctx, "documents/ws/receipt.pdf", "application/pdf", 15*time.Minute)
		require.NoError(t, err)
		assert.Contains(t, url, "https://storage.invalid/upload/documents/ws/receipt.pdf")
		assert.True(t, expiresAt.After(time.Now()))
	})

	t.Run("empty storage key", func(t *testing.T) {
		_, _, err := s.GenerateUploadURL(ctx, "", "application/pdf", 15*time.Minute)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "storage key is required")
	})
}

func TestStubObjectStorage_GenerateDownloadURL(t *testing.T) {
	s := NewStubObjectStorage()
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		url, expiresAt, err := s.GenerateDownloadURL(ctx, "documents/ws/receipt.pdf", time.Hour)
		require.NoError(t, err)
		assert.Contains(t, url, "https://storage.invalid/download/documents/ws/receipt.pdf")
		assert.True(t, expiresAt.After(time.Now()))
	})

	t.Run("empty storage key", func(t *testing.T) {
		_, _, err := s.GenerateDownloadURL(ctx, "", time.Hour)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "storage key is required")
	})
}

func TestStubObjectStorage_DeleteAndExists(t *testing.T) {
	s := NewStubObjectStorage()
	ctx := context.Background()

	t.Run("keys exist until deleted", func(t *testing.T) {
		exists, err := s.ObjectExists(ctx, "documents/ws/receipt.pdf")
		require.NoError(t, err)
		assert.True(t, exists)

		require.NoError(t, s.DeleteObject(ctx, "documents/ws/receipt.pdf"))

		exists, err = s.ObjectExists(ctx, "documents/ws/receipt.pdf")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("empty storage key", func(t *testing.T) {
		require.Error(t, s.DeleteObject(ctx, ""))
		_, err := s.ObjectExists(ctx, "")
		require.Error(t, err)
	})
}
