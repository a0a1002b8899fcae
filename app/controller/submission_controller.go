package controller

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"catalog-editor/models"
)

const maxSubmissionsLimit = 200

// SubmissionLister reads the submission journal
type SubmissionLister interface {
	ListRecent(ctx context.Context, limit int) ([]models.SubmissionRecord, error)
}

// SubmissionController handles HTTP requests for the submission journal
type SubmissionController struct {
	journal SubmissionLister
	logger  *zap.Logger
}

// NewSubmissionController creates a new SubmissionController. journal is nil when no database is configured.
func NewSubmissionController(journal SubmissionLister, logger *zap.Logger) *SubmissionController {
	return &SubmissionController{
		journal: journal,
		logger:  logger,
	}
}

// ListSubmissions handles GET /admin/catalog/submissions?limit=N
func (c *SubmissionController) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if c.journal == nil {
		http.Error(w, "Submission journal is not configured", http.StatusServiceUnavailable)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = min(n, maxSubmissionsLimit)
	}

	records, err := c.journal.ListRecent(r.Context(), limit)
	if err != nil {
		c.logger.Error("failed to list submissions", zap.Error(err))
		http.Error(w, fmt.Sprintf("Failed to list submissions: %v", err), http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []models.SubmissionRecord{}
	}

	writeJSON(w, c.logger, http.StatusOK, records)
}
