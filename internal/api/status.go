package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatusResponse is the system state summary.
type StatusResponse struct {
	Initialized    bool   `json:"initialized"`
	Artisans       int    `json:"artisans"`
	Interventions  int    `json:"interventions"`
	Clients        int    `json:"clients"`
	CostRows       int    `json:"costRows"`
	FolderMatches  int    `json:"folderMatches"`
	References     int    `json:"references"`
	LastImportTime string `json:"lastImportTime"`
}

// GetStatus reports record counts and the last import time.
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	ctx := c.Request.Context()
	resp := StatusResponse{}

	counts := []struct {
		table string
		dest  *int
	}{
		{"artisans", &resp.Artisans},
		{"interventions", &resp.Interventions},
		{"clients", &resp.Clients},
		{"cost_rows", &resp.CostRows},
		{"folder_matches", &resp.FolderMatches},
		{"reference_entities", &resp.References},
	}
	for _, ct := range counts {
		n, err := h.store.CountRows(ctx, ct.table)
		if err != nil {
			h.log.Warn().Err(err).Str("table", ct.table).Msg("count failed")
			continue
		}
		*ct.dest = n
	}

	last, err := h.store.LastImportTime()
	if err != nil {
		h.log.Warn().Err(err).Msg("last import time lookup failed")
	}
	resp.LastImportTime = last
	resp.Initialized = resp.Artisans+resp.Interventions > 0

	c.JSON(http.StatusOK, resp)
}
