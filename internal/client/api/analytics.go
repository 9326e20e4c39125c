package api

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/cityreport/internal/client/models"
)

type hotspotsResponse struct {
	Hotspots []models.Hotspot `json:"hotspots"`
}

// Hotspots returns the predictive-maintenance clusters. Admin only on the
// server side.
func (c *HTTPClient) Hotspots(ctx context.Context) ([]models.Hotspot, error) {
	var out hotspotsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/analytics/predictive-maintenance", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Hotspots, nil
}
