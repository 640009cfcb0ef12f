package services

import (
	"context"
	"io"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"bucketview/internal/config"
	"bucketview/internal/models"
)

// DefaultPageSize bounds a single listing request
const DefaultPageSize = 1000

// MaxDeleteBatch is the store's bulk-delete cap per call
const MaxDeleteBatch = 1000

// ListPageOptions configures one bounded listing request
type ListPageOptions struct {
	Prefix            string
	ContinuationToken string
	MaxKeys           int
	Recursive         bool
}

// RawPage contains one page of entries straight from the store. With a
// non-recursive listing, immediate child prefixes appear as entries whose
// key ends with "/".
type RawPage struct {
	Objects     []minio.ObjectInfo
	IsTruncated bool
	NextToken   string
}

// ObjectStore is the S3 surface the proxy needs against its single bucket
type ObjectStore interface {
	ListPage(ctx context.Context, opts ListPageOptions) (RawPage, error)
	PutObject(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	StatObject(ctx context.Context, key string) (minio.ObjectInfo, error)
	GetObjectReader(ctx context.Context, key string) (io.ReadCloser, int64, error)
	RemoveObject(ctx context.Context, key string) error
	DeleteBatch(ctx context.Context, keys []string) ([]models.KeyError, error)
	PresignedPut(ctx context.Context, key string, expires time.Duration) (*url.URL, error)
	PresignedGet(ctx context.Context, key string, expires time.Duration, disposition string) (*url.URL, error)
}

// BucketStore implements ObjectStore over a minio client bound to one bucket
type BucketStore struct {
	client *minio.Client
	bucket string
}

// NewBucketStore connects to the configured S3-compatible endpoint
func NewBucketStore(cfg config.StorageConfig) (*BucketStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, err
	}
	return &BucketStore{client: client, bucket: cfg.Bucket}, nil
}

// ListPage issues one bounded listing request. The continuation token is
// the last key of the previous page, fed back as StartAfter.
func (s *BucketStore) ListPage(ctx context.Context, opts ListPageOptions) (RawPage, error) {
	maxKeys := opts.MaxKeys
	if maxKeys <= 0 || maxKeys > DefaultPageSize {
		maxKeys = DefaultPageSize
	}

	minioOpts := minio.ListObjectsOptions{
		Prefix:     opts.Prefix,
		Recursive:  opts.Recursive,
		StartAfter: opts.ContinuationToken,
		MaxKeys:    maxKeys,
	}

	var objects []minio.ObjectInfo
	var lastKey string

	for obj := range s.client.ListObjects(ctx, s.bucket, minioOpts) {
		if obj.Err != nil {
			return RawPage{}, obj.Err
		}

		objects = append(objects, obj)
		lastKey = obj.Key

		if len(objects) >= maxKeys {
			break
		}
	}

	page := RawPage{
		Objects:     objects,
		IsTruncated: len(objects) >= maxKeys,
	}
	if page.IsTruncated {
		page.NextToken = lastKey
	}

	return page, nil
}

func (s *BucketStore) PutObject(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

func (s *BucketStore) StatObject(ctx context.Context, key string) (minio.ObjectInfo, error) {
	return s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
}

func (s *BucketStore) GetObjectReader(ctx context.Context, key string) (io.ReadCloser, int64, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, 0, err
	}
	info, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		return nil, 0, err
	}
	return obj, info.Size, nil
}

func (s *BucketStore) RemoveObject(ctx context.Context, key string) error {
	return s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}

// DeleteBatch issues one bulk-delete call for up to MaxDeleteBatch keys and
// returns the per-key failures. Callers chunk larger selections.
func (s *BucketStore) DeleteBatch(ctx context.Context, keys []string) ([]models.KeyError, error) {
	objectsCh := make(chan minio.ObjectInfo, len(keys))
	for _, key := range keys {
		objectsCh <- minio.ObjectInfo{Key: key}
	}
	close(objectsCh)

	var failed []models.KeyError
	for rej := range s.client.RemoveObjects(ctx, s.bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		reason := "delete rejected"
		if rej.Err != nil {
			reason = rej.Err.Error()
		}
		failed = append(failed, models.KeyError{Key: rej.ObjectName, Reason: reason})
	}
	return failed, nil
}

func (s *BucketStore) PresignedPut(ctx context.Context, key string, expires time.Duration) (*url.URL, error) {
	return s.client.PresignedPutObject(ctx, s.bucket, key, expires)
}

func (s *BucketStore) PresignedGet(ctx context.Context, key string, expires time.Duration, disposition string) (*url.URL, error) {
	reqParams := make(url.Values)
	if disposition != "" {
		reqParams.Set("response-content-disposition", disposition)
	}
	return s.client.PresignedGetObject(ctx, s.bucket, key, expires, reqParams)
}
