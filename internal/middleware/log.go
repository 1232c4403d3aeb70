package middleware

import (
	"log"
	"time"

	"session-planner/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Audit persists one RequestLog row per handled request. Only the path is
// stored, never the query string: management and attendance codes ride in
// ?code= and must not leak into the audit trail.
func Audit(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		entry := models.RequestLog{
			Method:     c.Request.Method,
			Path:       c.Request.URL.Path,
			Status:     c.Writer.Status(),
			IP:         c.ClientIP(),
			UserAgent:  c.Request.UserAgent(),
			DurationMS: time.Since(start).Milliseconds(),
		}
		if err := db.Create(&entry).Error; err != nil {
			// never fail the request over an audit write
			log.Printf("audit write failed: %v", err)
		}
	}
}
