package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MaxBodySize is the largest request body accepted by the API.
// Save payloads carry a whole filesystem snapshot, so the limit is generous.
const MaxBodySize = 1 * 1024 * 1024

// BodyLimit rejects requests whose declared body exceeds limit bytes and
// caps the reader for the rest.
func BodyLimit(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > limit {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{
				"error": "request body too large",
			})
			c.Abort()
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}
