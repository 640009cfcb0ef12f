package services

import (
	"context"
	"strings"

	"bucketview/internal/models"
)

// Deleter expands folder selections into their full descendant closure via
// the Navigator's listing primitive and removes keys in store-sized
// batches. Each folder marker is ordered after its children. The store
// offers no transactional guarantee across delete calls.
type Deleter struct {
	nav   *Navigator
	store ObjectStore
}

func NewDeleter(nav *Navigator, store ObjectStore) *Deleter {
	return &Deleter{nav: nav, store: store}
}

// DeleteSelection removes every selected key. Folder keys (trailing "/")
// are expanded into their descendants first. Batches are issued
// sequentially; a failed batch does not abort the remaining ones, so
// callers must inspect Failed rather than assume success.
func (d *Deleter) DeleteSelection(ctx context.Context, selection []string) models.DeleteResult {
	result := models.DeleteResult{
		Deleted: []string{},
		Failed:  []models.KeyError{},
	}

	var leafKeys, folderKeys []string
	for _, key := range selection {
		if strings.HasSuffix(key, "/") {
			folderKeys = append(folderKeys, key)
		} else {
			leafKeys = append(leafKeys, key)
		}
	}

	// Duplicates are possible when a key is reachable through two selected
	// folders; the store treats delete-of-nonexistent as a no-op success.
	expanded := append([]string{}, leafKeys...)
	for _, folder := range folderKeys {
		closure, err := d.expand(ctx, folder)
		if err != nil {
			result.Failed = append(result.Failed, models.KeyError{
				Key:    folder,
				Reason: "list failed: " + err.Error(),
			})
			continue
		}
		expanded = append(expanded, closure...)
	}

	for start := 0; start < len(expanded); start += MaxDeleteBatch {
		end := start + MaxDeleteBatch
		if end > len(expanded) {
			end = len(expanded)
		}
		chunk := expanded[start:end]

		failed, err := d.store.DeleteBatch(ctx, chunk)
		if err != nil {
			for _, key := range chunk {
				result.Failed = append(result.Failed, models.KeyError{
					Key:    key,
					Reason: "delete batch failed: " + err.Error(),
				})
			}
			continue
		}

		failedSet := make(map[string]bool, len(failed))
		for _, f := range failed {
			failedSet[f.Key] = true
		}
		result.Failed = append(result.Failed, failed...)
		for _, key := range chunk {
			if !failedSet[key] {
				result.Deleted = append(result.Deleted, key)
			}
		}
	}

	return result
}

// expand pages through the folder's listing until the continuation token
// is exhausted, recursing into child folders. The folder's own marker is
// appended last, after all descendants.
func (d *Deleter) expand(ctx context.Context, folder string) ([]string, error) {
	var keys []string
	token := ""
	for {
		page, err := d.nav.ListPage(ctx, folder, token)
		if err != nil {
			return nil, err
		}

		for _, obj := range page.Objects {
			keys = append(keys, obj.Key)
		}
		for _, sub := range page.Folders {
			subKeys, err := d.expand(ctx, sub.Prefix)
			if err != nil {
				return nil, err
			}
			keys = append(keys, subKeys...)
		}

		if page.NextToken == "" {
			break
		}
		token = page.NextToken
	}
	return append(keys, folder), nil
}
