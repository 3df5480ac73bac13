package storage

import (
	"context"
	"errors"
	"io"
	"sync"

	ordersapp "github.com/graficaerp/backend/internal/application/orders"
)

// StubArtworkStorage keeps artwork in memory. It serves development setups
// where no object store is configured.
type StubArtworkStorage struct {
	mu      sync.RWMutex
	objects map[string][]byte
	BaseURL string
}

// NewStubArtworkStorage creates a new StubArtworkStorage
func NewStubArtworkStorage() *StubArtworkStorage {
	return &StubArtworkStorage{
		objects: make(map[string][]byte),
		BaseURL: "https://storage.example.com",
	}
}

// Upload keeps the file in memory under the given key
func (s *StubArtworkStorage) Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) error {
	if key == "" {
		return errors.New("storage key is required")
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	return nil
}

// PresignDownload returns a fake URL for a stored key
func (s *StubArtworkStorage) PresignDownload(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", errors.New("storage key is required")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.objects[key]; !ok {
		return "", errors.New("object not found")
	}
	return s.BaseURL + "/download/" + key, nil
}

var _ ordersapp.ArtworkStorage = (*StubArtworkStorage)(nil)
