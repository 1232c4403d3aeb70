package util

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Fail writes the error body shape clients depend on: {"error": "..."}.
func Fail(c *gin.Context, httpStatus int, msg string) {
	c.JSON(httpStatus, gin.H{"error": msg})
}

// OK writes the plain success acknowledgement: {"ok": true}.
func OK(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
