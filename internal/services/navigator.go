package services

import (
	"context"
	"errors"
	"strings"

	"bucketview/internal/models"
	"bucketview/internal/utils"
)

// ErrEmptyFolderName is returned when a folder name is empty after sanitization
var ErrEmptyFolderName = errors.New("folder name is required")

// Navigator translates a user-chosen prefix into delimiter-scoped listing
// pages: immediate children only, with deeper prefixes summarized as
// folders and never expanded.
type Navigator struct {
	store    ObjectStore
	pageSize int
}

func NewNavigator(store ObjectStore) *Navigator {
	return &Navigator{store: store, pageSize: DefaultPageSize}
}

// ListPage returns one page of the immediate children of prefix. The token
// comes from a prior page's NextToken; an empty NextToken on the result
// signals end-of-listing. Read-only, no retries.
func (n *Navigator) ListPage(ctx context.Context, prefix, token string) (models.ListingPage, error) {
	raw, err := n.store.ListPage(ctx, ListPageOptions{
		Prefix:            prefix,
		ContinuationToken: token,
		MaxKeys:           n.pageSize,
	})
	if err != nil {
		return models.ListingPage{}, err
	}

	page := models.ListingPage{
		Prefix:      prefix,
		Folders:     []models.FolderEntry{},
		Objects:     []models.ObjectEntry{},
		Breadcrumbs: Breadcrumbs(prefix),
		NextToken:   raw.NextToken,
	}

	seenFolders := make(map[string]bool)
	for _, obj := range raw.Objects {
		if strings.HasSuffix(obj.Key, "/") {
			// The marker for the listed prefix itself is not a child
			if obj.Key == prefix {
				continue
			}
			name := strings.TrimSuffix(strings.TrimPrefix(obj.Key, prefix), "/")
			if name == "" || seenFolders[name] {
				continue
			}
			seenFolders[name] = true
			page.Folders = append(page.Folders, models.FolderEntry{
				Prefix: obj.Key,
				Name:   name,
			})
			continue
		}

		page.Objects = append(page.Objects, models.ObjectEntry{
			Key:          obj.Key,
			Name:         strings.TrimPrefix(obj.Key, prefix),
			Size:         obj.Size,
			SizeDisplay:  utils.FormatFileSize(obj.Size),
			LastModified: obj.LastModified,
		})
	}

	return page, nil
}

// Breadcrumbs decomposes a prefix into its navigable trail. Pure function
// of the prefix string, no store access.
func Breadcrumbs(prefix string) []models.Breadcrumb {
	crumbs := []models.Breadcrumb{}
	if prefix == "" {
		return crumbs
	}
	parts := strings.Split(strings.TrimSuffix(prefix, "/"), "/")
	path := ""
	for _, part := range parts {
		if part == "" {
			continue
		}
		path += part + "/"
		crumbs = append(crumbs, models.Breadcrumb{
			Name: part,
			Path: path,
		})
	}
	return crumbs
}

// CreateFolder writes a zero-byte marker object at prefix + name + "/".
// Traversal sequences, backslashes and embedded slashes are stripped from
// the name so the new key cannot escape the current prefix.
func (n *Navigator) CreateFolder(ctx context.Context, prefix, name string) (string, error) {
	name = sanitizeFolderName(name)
	if name == "" {
		return "", ErrEmptyFolderName
	}

	key := prefix + name + "/"
	if err := n.store.PutObject(ctx, key, strings.NewReader(""), 0, ""); err != nil {
		return "", err
	}
	return key, nil
}

func sanitizeFolderName(name string) string {
	name = strings.ReplaceAll(name, "\\", "")
	for strings.Contains(name, "..") {
		name = strings.ReplaceAll(name, "..", "")
	}
	name = strings.ReplaceAll(name, "/", "")
	return strings.TrimSpace(name)
}
