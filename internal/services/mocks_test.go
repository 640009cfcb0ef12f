package services

import (
	"context"
	"io"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/mock"

	"bucketview/internal/models"
)

// MockObjectStore implements ObjectStore for testing
type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) ListPage(ctx context.Context, opts ListPageOptions) (RawPage, error) {
	args := m.Called(ctx, opts)
	return args.Get(0).(RawPage), args.Error(1)
}

func (m *MockObjectStore) PutObject(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	args := m.Called(ctx, key, reader, size, contentType)
	return args.Error(0)
}

func (m *MockObjectStore) StatObject(ctx context.Context, key string) (minio.ObjectInfo, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(minio.ObjectInfo), args.Error(1)
}

func (m *MockObjectStore) GetObjectReader(ctx context.Context, key string) (io.ReadCloser, int64, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.Get(1).(int64), args.Error(2)
}

func (m *MockObjectStore) RemoveObject(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockObjectStore) DeleteBatch(ctx context.Context, keys []string) ([]models.KeyError, error) {
	args := m.Called(ctx, keys)
	var failed []models.KeyError
	if args.Get(0) != nil {
		failed = args.Get(0).([]models.KeyError)
	}
	return failed, args.Error(1)
}

func (m *MockObjectStore) PresignedPut(ctx context.Context, key string, expires time.Duration) (*url.URL, error) {
	args := m.Called(ctx, key, expires)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*url.URL), args.Error(1)
}

func (m *MockObjectStore) PresignedGet(ctx context.Context, key string, expires time.Duration, disposition string) (*url.URL, error) {
	args := m.Called(ctx, key, expires, disposition)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*url.URL), args.Error(1)
}
