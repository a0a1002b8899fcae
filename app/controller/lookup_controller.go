package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"catalog-editor/models"
	"catalog-editor/utils"
)

// LookupLoader loads the reference data of an editor screen
type LookupLoader interface {
	Load(ctx context.Context) models.Lookups
}

// LookupController handles HTTP requests for editor reference data
type LookupController struct {
	lookups LookupLoader
	logger  *zap.Logger
}

// NewLookupController creates a new LookupController
func NewLookupController(lookups LookupLoader, logger *zap.Logger) *LookupController {
	return &LookupController{
		lookups: lookups,
		logger:  logger,
	}
}

// GetLookups handles GET /admin/catalog/lookups
// Lookup failures come back as messages in the body, never as a 5xx
func (c *LookupController) GetLookups(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	lookups := c.lookups.Load(r.Context())
	if len(lookups.Errors) > 0 {
		c.logger.Warn("lookups loaded with errors", zap.Strings("errors", lookups.Errors))
	}

	writeJSON(w, c.logger, http.StatusOK, lookups)
}

// ExtractVolumeRequest is the body of POST /admin/catalog/volume
type ExtractVolumeRequest struct {
	Name       string `json:"name"`
	Fractional bool   `json:"fractional"`
}

// ExtractVolume handles POST /admin/catalog/volume
func (c *LookupController) ExtractVolume(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ExtractVolumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	var match utils.VolumeMatch
	if req.Fractional {
		match = utils.ExtractVolumeFractional(req.Name)
	} else {
		match = utils.ExtractVolume(req.Name)
	}

	writeJSON(w, c.logger, http.StatusOK, match)
}

func writeJSON(w http.ResponseWriter, logger *zap.Logger, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}
