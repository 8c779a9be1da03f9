// Package testutil provides in-memory fakes for unit tests.
package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"

	"lake-demo/internal/domain"
)

// MemStore is an in-memory objectstore.Store used by pipeline and
// governance tests.
type MemStore struct {
	mu      sync.Mutex
	buckets map[string]map[string][]byte
}

// NewMemStore creates an empty store.
func NewMemStore() *MemStore {
	return &MemStore{buckets: make(map[string]map[string][]byte)}
}

// EnsureBucket creates the bucket if absent.
func (m *MemStore) EnsureBucket(_ context.Context, bucket string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.buckets[bucket] == nil {
		m.buckets[bucket] = make(map[string][]byte)
	}
	return nil
}

// Upload stores the payload, creating the bucket if needed.
func (m *MemStore) Upload(ctx context.Context, bucket, key string, data []byte, _ string) error {
	if err := m.EnsureBucket(ctx, bucket); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	m.buckets[bucket][key] = cp
	return nil
}

// Download returns the payload or a NotFoundError.
func (m *MemStore) Download(_ context.Context, bucket, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.buckets[bucket]
	if !ok {
		return nil, domain.ErrNotFound("object %s/%s not found", bucket, key)
	}
	data, ok := b[key]
	if !ok {
		return nil, domain.ErrNotFound("object %s/%s not found", bucket, key)
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}

// List returns the sorted keys under prefix.
func (m *MemStore) List(_ context.Context, bucket, prefix string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.buckets[bucket]
	if !ok {
		return nil, domain.ErrNotFound("bucket %q not found", bucket)
	}
	var keys []string
	for k := range b {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Exists reports whether the object exists.
func (m *MemStore) Exists(_ context.Context, bucket, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.buckets[bucket]
	if !ok {
		return false, nil
	}
	_, ok = b[key]
	return ok, nil
}

// Ping always succeeds.
func (m *MemStore) Ping(context.Context) error { return nil }

// HasBucket reports whether the bucket was created.
func (m *MemStore) HasBucket(bucket string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.buckets[bucket]
	return ok
}
