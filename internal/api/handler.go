package api

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"atelier/internal/config"
	"atelier/internal/store"
)

// Handler serves the engine's HTTP API.
type Handler struct {
	store *store.Store
	cfg   *config.AppConfig
	log   *zerolog.Logger
}

// NewHandler creates the API handler.
func NewHandler(s *store.Store, cfg *config.AppConfig, log *zerolog.Logger) *Handler {
	return &Handler{store: s, cfg: cfg, log: log}
}

// RegisterRoutes registers the API routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// system state
	router.GET("/status", h.GetStatus)

	// spreadsheet import and export
	router.POST("/import", h.Import)
	router.GET("/export", h.Export)

	// document folder reconciliation
	router.POST("/folders/reconcile", h.ReconcileFolders)
	router.GET("/folders/matches", h.ListFolderMatches)

	// canonical records
	router.GET("/artisans", h.ListArtisans)

	// reference tables
	router.GET("/references/:kind", h.ListReferences)
	router.POST("/references/resolve", h.ResolveReference)
}
