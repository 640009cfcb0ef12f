package handlers

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"bucketview/internal/services"
	"bucketview/internal/utils"
)

// BrowseHandler serves the REST surface of the bucket browser
type BrowseHandler struct {
	store      services.ObjectStore
	navigator  *services.Navigator
	deleter    *services.Deleter
	bucket     string
	presignTTL time.Duration
}

func NewBrowseHandler(store services.ObjectStore, bucket string, presignTTL time.Duration) *BrowseHandler {
	nav := services.NewNavigator(store)
	return &BrowseHandler{
		store:      store,
		navigator:  nav,
		deleter:    services.NewDeleter(nav, store),
		bucket:     bucket,
		presignTTL: presignTTL,
	}
}

// Page renders the browser UI shell
func (h *BrowseHandler) Page(c echo.Context) error {
	return c.Render(http.StatusOK, "browser", map[string]interface{}{
		"Bucket": h.bucket,
	})
}

// Health reports liveness
func (h *BrowseHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

// ListObjects returns one delimiter-scoped page of the requested prefix
func (h *BrowseHandler) ListObjects(c echo.Context) error {
	prefix := c.QueryParam("prefix")
	token := c.QueryParam("token")

	page, err := h.navigator.ListPage(c.Request().Context(), prefix, token)
	if err != nil {
		return storeError(c, "Failed to list objects", err)
	}

	return c.JSON(http.StatusOK, page)
}

type createFolderRequest struct {
	Key string `json:"key" form:"key"`
}

// CreateFolder creates a zero-byte folder marker at the requested key
func (h *BrowseHandler) CreateFolder(c echo.Context) error {
	var req createFolderRequest
	if err := c.Bind(&req); err != nil {
		return validationError("Invalid request body")
	}
	if req.Key == "" {
		return validationError("Folder key is required")
	}
	if !strings.HasSuffix(req.Key, "/") {
		return validationError("Folder key must end with /")
	}

	// Neutralize traversal attempts before splitting off the name
	key := strings.ReplaceAll(req.Key, "\\", "")
	for strings.Contains(key, "..") {
		key = strings.ReplaceAll(key, "..", "")
	}

	trimmed := strings.TrimSuffix(key, "/")
	prefix, name := "", trimmed
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
		prefix, name = trimmed[:idx+1], trimmed[idx+1:]
	}

	created, err := h.navigator.CreateFolder(c.Request().Context(), prefix, name)
	if err != nil {
		if errors.Is(err, services.ErrEmptyFolderName) {
			return validationError("Folder name is required")
		}
		return storeError(c, "Failed to create folder", err)
	}

	return c.JSON(http.StatusOK, okResponse{OK: true, Key: created})
}

type presignRequest struct {
	Key         string `json:"key" form:"key"`
	ContentType string `json:"contentType" form:"contentType"`
}

type presignResponse struct {
	URL string `json:"url"`
}

// PresignUpload issues a short-lived PUT URL so the browser uploads
// directly to the store without holding credentials
func (h *BrowseHandler) PresignUpload(c echo.Context) error {
	var req presignRequest
	if err := c.Bind(&req); err != nil {
		return validationError("Invalid request body")
	}
	if req.Key == "" {
		return validationError("Object key is required")
	}
	if strings.HasSuffix(req.Key, "/") {
		return validationError("Object key must not end with /")
	}

	u, err := h.store.PresignedPut(c.Request().Context(), req.Key, h.presignTTL)
	if err != nil {
		return storeError(c, "Failed to presign upload", err)
	}

	return c.JSON(http.StatusOK, presignResponse{URL: u.String()})
}

// PresignDownload issues a short-lived GET URL with an attachment
// disposition for the object's base name
func (h *BrowseHandler) PresignDownload(c echo.Context) error {
	var req presignRequest
	if err := c.Bind(&req); err != nil {
		return validationError("Invalid request body")
	}
	if req.Key == "" {
		return validationError("Object key is required")
	}

	disposition := fmt.Sprintf("attachment; filename=%q", path.Base(req.Key))
	u, err := h.store.PresignedGet(c.Request().Context(), req.Key, h.presignTTL, disposition)
	if err != nil {
		return storeError(c, "Failed to presign download", err)
	}

	return c.JSON(http.StatusOK, presignResponse{URL: u.String()})
}

// DeleteObject removes a single object
func (h *BrowseHandler) DeleteObject(c echo.Context) error {
	key := c.QueryParam("key")
	if key == "" {
		return validationError("Object key is required")
	}

	if err := h.store.RemoveObject(c.Request().Context(), key); err != nil {
		return storeError(c, "Failed to delete object", err)
	}

	return c.JSON(http.StatusOK, okResponse{OK: true})
}

type deleteBulkRequest struct {
	Keys []string `json:"keys"`
}

// DeleteBulk removes a selection of leaf keys and folder prefixes. Folder
// selections are expanded recursively; per-key outcomes are reported
// distinctly so partial failures are visible to the caller.
func (h *BrowseHandler) DeleteBulk(c echo.Context) error {
	var req deleteBulkRequest
	if err := c.Bind(&req); err != nil {
		return validationError("Invalid request body")
	}
	if len(req.Keys) == 0 {
		return validationError("No keys selected")
	}

	result := h.deleter.DeleteSelection(c.Request().Context(), req.Keys)
	return c.JSON(http.StatusOK, result)
}

// ObjectInfo returns metadata for a single object
func (h *BrowseHandler) ObjectInfo(c echo.Context) error {
	key := c.QueryParam("key")
	if key == "" {
		return validationError("Object key is required")
	}

	info, err := h.store.StatObject(c.Request().Context(), key)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Object not found")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"key":          key,
		"size":         info.Size,
		"sizeDisplay":  utils.FormatFileSize(info.Size),
		"contentType":  info.ContentType,
		"etag":         info.ETag,
		"lastModified": info.LastModified,
	})
}

// DownloadZip streams a folder's descendants as a ZIP archive
func (h *BrowseHandler) DownloadZip(c echo.Context) error {
	prefix := c.QueryParam("prefix")
	ctx := c.Request().Context()

	// Collect every descendant leaf key, paging until exhaustion
	var files []string
	token := ""
	for {
		page, err := h.store.ListPage(ctx, services.ListPageOptions{
			Prefix:            prefix,
			ContinuationToken: token,
			Recursive:         true,
		})
		if err != nil {
			return storeError(c, "Failed to list objects", err)
		}
		for _, obj := range page.Objects {
			if !strings.HasSuffix(obj.Key, "/") {
				files = append(files, obj.Key)
			}
		}
		if !page.IsTruncated {
			break
		}
		token = page.NextToken
	}

	if len(files) == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "No files to download")
	}

	zipName := h.bucket + ".zip"
	if prefix != "" {
		zipName = path.Base(strings.TrimSuffix(prefix, "/")) + ".zip"
	}

	c.Response().Header().Set(echo.HeaderContentType, "application/zip")
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", zipName))
	c.Response().WriteHeader(http.StatusOK)

	zipWriter := zip.NewWriter(c.Response().Writer)
	defer func() { _ = zipWriter.Close() }()

	for _, key := range files {
		reader, _, err := h.store.GetObjectReader(ctx, key)
		if err != nil {
			// Skip unreadable entries, keep streaming the rest
			continue
		}

		writer, err := zipWriter.Create(strings.TrimPrefix(key, prefix))
		if err != nil {
			_ = reader.Close()
			continue
		}

		_, err = io.Copy(writer, reader)
		_ = reader.Close()
		if err != nil {
			continue
		}
	}

	return nil
}
