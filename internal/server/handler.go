// Package server implements the HTTP/WebSocket host façade (SPEC_FULL.md
// §13), grounded on the teacher's internal/handlers package: gin.Engine
// wiring, gin.H{} JSON responses, Bearer-JWT middleware and a swaggo docs
// route, generalized from furnace-state endpoints to profile/control
// endpoints over the oven controller and store.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"ovencontroller/internal/controller"
	"ovencontroller/internal/events"
	"ovencontroller/internal/store"
)

// Handler wires the HTTP layer to the controller, catalog and event bus.
type Handler struct {
	ctrl *controller.Controller
	cat  store.Catalog
	bus  *events.Bus
	auth *AuthService
	log  *zap.SugaredLogger
}

// NewHandler constructs a Handler with its dependencies.
func NewHandler(ctrl *controller.Controller, cat store.Catalog, bus *events.Bus, auth *AuthService, log *zap.SugaredLogger) *Handler {
	return &Handler{ctrl: ctrl, cat: cat, bus: bus, auth: auth, log: log}
}

// InitRoutes builds the gin.Engine with every route registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", h.health)

	auth := router.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}

	api := router.Group("/api/v1", h.userIDMiddleware)
	{
		h.registerProfileRoutes(api)
		h.registerControlRoutes(api)
	}

	router.GET("/ws/events", h.wsEvents)

	return router
}

func (h *Handler) registerProfileRoutes(api *gin.RouterGroup) {
	profiles := api.Group("/profiles")
	{
		profiles.GET("", h.listProfiles)
		profiles.GET("/:idx", h.getProfile)
		profiles.POST("", h.createProfile)
		profiles.POST("/:idx/select", h.selectProfile)
	}
}

func (h *Handler) registerControlRoutes(api *gin.RouterGroup) {
	control := api.Group("/control")
	{
		control.POST("/start", h.start)
		control.POST("/stop", h.stop)
		control.GET("/state", h.state)
		control.GET("/pid", h.getPID)
		control.PUT("/pid", h.setPID)
	}
}

// @Summary  Health check
// @Tags     system
// @Produce  json
// @Success  200 {object} map[string]string
// @Router   /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) logError(c *gin.Context, code int, msg string, logKey string, err error) {
	if h.log != nil && err != nil {
		h.log.Errorw(logKey, "err", err)
	}
	c.JSON(code, gin.H{"error": msg})
}

func ctxWithTimeout(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), 3*time.Second)
}
