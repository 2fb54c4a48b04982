package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// MemoryStore is an in-memory ObjectStore used by tests and local runs.
type MemoryStore struct {
	mu      sync.RWMutex
	buckets map[string]map[string][]byte
}

var _ ObjectStore = (*MemoryStore)(nil)

// NewMemoryStore creates a MemoryStore holding the given buckets.
func NewMemoryStore(buckets ...string) *MemoryStore {
	store := &MemoryStore{buckets: make(map[string]map[string][]byte)}
	for _, bucket := range buckets {
		store.buckets[bucket] = make(map[string][]byte)
	}
	return store
}

func (s *MemoryStore) bucket(name string) (map[string][]byte, error) {
	objects, ok := s.buckets[name]
	if !ok {
		return nil, fmt.Errorf("bucket %s does not exist", name)
	}
	return objects, nil
}

func (s *MemoryStore) Upload(ctx context.Context, bucket, key string, body io.Reader) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("reading upload body: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	objects, err := s.bucket(bucket)
	if err != nil {
		return err
	}
	objects[key] = data
	return nil
}

func (s *MemoryStore) UploadFile(ctx context.Context, bucket, key, path string) (int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	if err := s.Upload(ctx, bucket, key, file); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.buckets[bucket][key])), nil
}

func (s *MemoryStore) Download(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	objects, err := s.bucket(bucket)
	if err != nil {
		return nil, err
	}
	data, ok := objects[key]
	if !ok {
		return nil, fmt.Errorf("download %s/%s: %w", bucket, key, ErrObjectNotFound)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *MemoryStore) Head(ctx context.Context, bucket, key string) (*ObjectInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	objects, err := s.bucket(bucket)
	if err != nil {
		return nil, err
	}
	data, ok := objects[key]
	if !ok {
		return nil, fmt.Errorf("head %s/%s: %w", bucket, key, ErrObjectNotFound)
	}
	return &ObjectInfo{
		Key:          key,
		SizeBytes:    int64(len(data)),
		LastModified: time.Now().UTC(),
	}, nil
}

func (s *MemoryStore) Delete(ctx context.Context, bucket, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	objects, err := s.bucket(bucket)
	if err != nil {
		return err
	}
	delete(objects, key)
	return nil
}

func (s *MemoryStore) CheckBucket(ctx context.Context, bucket string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, err := s.bucket(bucket)
	return err
}

// Keys returns the stored keys of a bucket, for assertions in tests.
func (s *MemoryStore) Keys(bucket string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.buckets[bucket]))
	for key := range s.buckets[bucket] {
		keys = append(keys, key)
	}
	return keys
}

// Object returns a stored object's bytes, for assertions in tests.
func (s *MemoryStore) Object(bucket, key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	objects, ok := s.buckets[bucket]
	if !ok {
		return nil, false
	}
	data, ok := objects[key]
	return data, ok
}
