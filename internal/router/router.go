package router

import (
	"net/http"

	"session-planner/internal/config"
	"session-planner/internal/handler"
	"session-planner/internal/middleware"
	"session-planner/internal/service"
	"session-planner/internal/store"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine and all session routes.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), middleware.Audit(db))

	svc := service.New(store.New(db), cfg.App.MaxPendingOps)
	sessionHandler := handler.NewSessionHandler(svc)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	r.GET("/sessions", sessionHandler.List)
	r.POST("/sessions", sessionHandler.Create)
	r.GET("/sessions/:id", sessionHandler.Get)
	r.PATCH("/sessions/:id", sessionHandler.Update)
	r.DELETE("/sessions/:id", sessionHandler.Delete)

	r.POST("/sessions/:id/attend", sessionHandler.Attend)
	r.DELETE("/sessions/:id/attend", sessionHandler.Unattend)
	r.DELETE("/sessions/:id/attend/:attendeeId", sessionHandler.Kick)

	r.GET("/sessions/:id/roster.xlsx", sessionHandler.ExportRoster)

	return r
}
