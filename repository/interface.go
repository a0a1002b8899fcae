package repository

import (
	"context"

	"catalog-editor/models"
)

// SubmissionRepositoryInterface defines the contract for the submission journal
type SubmissionRepositoryInterface interface {
	Record(ctx context.Context, record *models.SubmissionRecord) error
	ListRecent(ctx context.Context, limit int) ([]models.SubmissionRecord, error)
}
