package server

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"docbuilder-backend/internal/shared/server/middleware"
	"docbuilder-backend/internal/shared/server/respond"
	"docbuilder-backend/internal/shared/storage/object"
	"docbuilder-backend/internal/shared/telemetry"
	"docbuilder-backend/internal/shared/util"
)

// publicKinds are object kinds served to anyone holding the key. Everything
// else (archived exports) is only served to its owner.
var publicKinds = map[string]bool{"profile": true}

// keyKind returns the kind segment of "<user hash>/<kind>/<name>".
func keyKind(key string) string {
	parts := strings.SplitN(key, "/", 3)
	if len(parts) < 3 {
		return ""
	}
	return parts[1]
}

// servePublicFile streams profile images. Keys embed a timestamp, so
// responses are cacheable forever.
func servePublicFile(store object.Store) gin.HandlerFunc {
	return serveFile(store, "public, max-age=31536000, immutable", func(_ *gin.Context, key string) bool {
		return publicKinds[keyKind(key)]
	})
}

// serveOwnedFile streams any object under the caller's own prefix. It is
// mounted behind the auth middleware.
func serveOwnedFile(store object.Store) gin.HandlerFunc {
	return serveFile(store, "private, no-store", func(c *gin.Context, key string) bool {
		return util.OwnsKey(middleware.UserIDFromContext(c), key)
	})
}

func serveFile(store object.Store, cacheControl string, allowed func(*gin.Context, string) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, err := object.CleanKey(strings.TrimPrefix(c.Param("key"), "/"))
		if err != nil || !allowed(c, key) {
			respond.Error(c, http.StatusNotFound, "not_found", "file not found", nil)
			return
		}
		rc, err := store.Open(c.Request.Context(), key)
		if err != nil {
			if errors.Is(err, object.ErrNotFound) {
				respond.Error(c, http.StatusNotFound, "not_found", "file not found", nil)
				return
			}
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to read file", nil)
			return
		}
		defer rc.Close()

		contentType, body, err := object.Sniff(rc)
		if err != nil {
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to read file", nil)
			return
		}
		c.Header("Content-Type", contentType)
		c.Header("Cache-Control", cacheControl)
		c.Header("X-Content-Type-Options", "nosniff")
		c.Status(http.StatusOK)
		if _, err := io.Copy(c.Writer, body); err != nil {
			telemetry.Warn("files.stream_failed", map[string]any{"key": key, "error": err.Error()})
		}
	}
}
