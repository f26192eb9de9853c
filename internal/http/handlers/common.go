package handlers

import (
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/blake2b"

	"shuttle/internal/utils"
)

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		respondError(c, http.StatusBadRequest, "empty_body", "request body is empty", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_payload", "invalid payload", err.Error())
		return false
	}
	return true
}

// capacityQuery reads ?capacity=; absent means 0, the configured default.
func capacityQuery(c *gin.Context) (int, bool) {
	raw := strings.TrimSpace(c.Query("capacity"))
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid_capacity", "capacity must be a number", nil)
		return 0, false
	}
	return n, true
}

// slotParam accepts both "08:00" and "0800" in the URL.
func slotParam(c *gin.Context) string {
	return utils.SlotFromPath(c.Param("slot"))
}

// respondWithETag writes v as JSON tagged with a digest of the body. A
// matching If-None-Match gets 304 without a body.
func respondWithETag(c *gin.Context, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "internal_error", "internal server error", nil)
		return
	}
	sum := blake2b.Sum256(body)
	etag := `"` + hex.EncodeToString(sum[:16]) + `"`

	c.Header("ETag", etag)
	c.Header("Cache-Control", "no-cache")
	if match := strings.TrimSpace(c.GetHeader("If-None-Match")); match != "" && match == etag {
		c.AbortWithStatus(http.StatusNotModified)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}
