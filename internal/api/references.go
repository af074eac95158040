package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"atelier/internal/model"
	"atelier/internal/resolver"
)

// ListReferences returns every entity of one reference table.
// GET /api/references/:kind
func (h *Handler) ListReferences(c *gin.Context) {
	kind, ok := model.ParseReferenceKind(c.Param("kind"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown reference kind"})
		return
	}

	entities, err := h.store.ListReferences(c.Request.Context(), kind)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if entities == nil {
		entities = []model.ReferenceEntity{}
	}
	c.JSON(http.StatusOK, gin.H{"kind": kind, "entities": entities})
}

// ResolveRequest names one value to resolve into a reference entity.
type ResolveRequest struct {
	Kind string `json:"kind" binding:"required"`
	Name string `json:"name" binding:"required"`
}

// ResolveReference resolves a raw value through the alias map, creating the
// entity on first encounter. An ignorable value yields an empty id.
// POST /api/references/resolve
func (h *Handler) ResolveReference(c *gin.Context) {
	var req ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	kind, ok := model.ParseReferenceKind(req.Kind)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown reference kind"})
		return
	}

	res := resolver.New(h.store, resolver.NewCache(), h.log)
	id := res.Resolve(c.Request.Context(), kind, req.Name)

	c.JSON(http.StatusOK, gin.H{"kind": kind, "id": id, "ignored": id == ""})
}

// ListArtisans returns the stored artisan records in matcher candidate form.
// GET /api/artisans
func (h *Handler) ListArtisans(c *gin.Context) {
	artisans, err := h.store.ListArtisanCandidates(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if artisans == nil {
		artisans = []model.CanonicalArtisan{}
	}
	c.JSON(http.StatusOK, gin.H{"artisans": artisans})
}
