package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"atelier/internal/exporter"
)

// Export streams the normalized records as a workbook download.
// GET /api/export
func (h *Handler) Export(c *gin.Context) {
	f, err := exporter.NewExporter(h.store).Export(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="atelier_export.xlsx"`)
	if err := f.Write(c.Writer); err != nil {
		h.log.Warn().Err(err).Msg("export write failed")
	}
}
