package repository

import (
	"context"
	"fmt"

	"catalog-editor/db"
	"catalog-editor/models"
)

// SubmissionRepository journals catalog submissions to PostgreSQL
type SubmissionRepository struct{}

// NewSubmissionRepository creates a new SubmissionRepository
func NewSubmissionRepository() *SubmissionRepository {
	return &SubmissionRepository{}
}

// Ensure SubmissionRepository implements SubmissionRepositoryInterface
var _ SubmissionRepositoryInterface = (*SubmissionRepository)(nil)

// Record inserts one submission attempt
func (r *SubmissionRepository) Record(ctx context.Context, record *models.SubmissionRecord) error {
	query := `
		INSERT INTO catalog_submissions (
			id, flow, catalog_id, description, status,
			price, focus_product_mapping, outcome, error_message, created_at
		)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6::jsonb, $7::jsonb, $8, NULLIF($9, ''), $10)
	`

	_, err := db.DB.ExecContext(ctx, query,
		record.ID,
		record.Flow,
		record.CatalogID,
		record.Description,
		string(record.Status),
		record.Price,
		record.FocusProductMapping,
		record.Outcome,
		record.ErrorMessage,
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert catalog submission: %w", err)
	}
	return nil
}

// ListRecent returns the latest submissions, newest first
func (r *SubmissionRepository) ListRecent(ctx context.Context, limit int) ([]models.SubmissionRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT
			id, flow, COALESCE(catalog_id, ''), description, status,
			price::text, focus_product_mapping::text, outcome,
			COALESCE(error_message, ''), created_at
		FROM catalog_submissions
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := db.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog submissions: %w", err)
	}
	defer rows.Close()

	var records []models.SubmissionRecord
	for rows.Next() {
		var rec models.SubmissionRecord
		var status string
		if err := rows.Scan(
			&rec.ID,
			&rec.Flow,
			&rec.CatalogID,
			&rec.Description,
			&status,
			&rec.Price,
			&rec.FocusProductMapping,
			&rec.Outcome,
			&rec.ErrorMessage,
			&rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan catalog submission: %w", err)
		}
		rec.Status = models.CatalogStatus(status)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate catalog submissions: %w", err)
	}
	return records, nil
}
