package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tradegate/backend/internal/interfaces/http/dto"
)

// DefaultMaxBodySize caps request bodies when no limit is configured.
// Requirement payloads carrying spec documents are the largest expected input.
const DefaultMaxBodySize int64 = 4 << 20

// BodyLimit rejects requests whose declared Content-Length exceeds maxBytes
// and wraps the body so chunked uploads cannot stream past the limit either.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodySize
	}

	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, dto.NewErrorResponseWithRequestID(
				"REQUEST_TOO_LARGE",
				"Request body exceeds maximum allowed size",
				c.GetString(RequestIDKey),
			))
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
