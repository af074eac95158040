package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"atelier/internal/importer"
	"atelier/internal/model"
)

// ReconcileRequest selects the document root to reconcile.
type ReconcileRequest struct {
	// DocumentsDir overrides the configured root when set.
	DocumentsDir string `json:"documentsDir"`
}

// ReconcileResponse summarizes one reconciliation run.
type ReconcileResponse struct {
	Total     int                 `json:"total"`
	Matched   int                 `json:"matched"`
	Unmatched int                 `json:"unmatched"`
	Matches   []model.FolderMatch `json:"matches"`
}

// ReconcileFolders runs the folder matching pass against the stored artisans.
// POST /api/folders/reconcile
func (h *Handler) ReconcileFolders(c *gin.Context) {
	var req ReconcileRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
	}

	dir := req.DocumentsDir
	if dir == "" {
		dir = h.cfg.Data.DocumentsDir
	}
	if dir == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no documents directory configured"})
		return
	}

	interval := time.Duration(h.cfg.Engine.MatcherMinIntervalMs) * time.Millisecond
	rec := importer.NewFolderReconciler(h.store, interval, h.cfg.Engine.MatcherRetries, h.log)

	matches, err := rec.Reconcile(c.Request.Context(), dir)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := ReconcileResponse{Total: len(matches), Matches: matches}
	for _, m := range matches {
		if m.MatchedEntityID != "" {
			resp.Matched++
		} else {
			resp.Unmatched++
		}
	}
	c.JSON(http.StatusOK, resp)
}

// ListFolderMatches returns stored reconciliation results, newest first.
// GET /api/folders/matches
func (h *Handler) ListFolderMatches(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	matches, err := h.store.ListFolderMatches(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if matches == nil {
		matches = []model.FolderMatch{}
	}
	c.JSON(http.StatusOK, gin.H{"matches": matches})
}
