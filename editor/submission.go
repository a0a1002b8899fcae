package editor

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"catalog-editor/models"
	"catalog-editor/pricing"
)

// Notification kinds
const (
	NoticeSuccess = "success"
	NoticeError   = "error"
	NoticeWarning = "warning"
)

// CatalogAPI is the catalog backend the editor submits to
type CatalogAPI interface {
	CreateWithImage(ctx context.Context, form *models.CatalogForm) error
	UpdateWithImage(ctx context.Context, catalogID string, form *models.CatalogForm) error
}

// Notifier shows a toast or alert to the user
type Notifier interface {
	Notify(kind, message string)
}

// Navigator moves the user to another screen
type Navigator interface {
	NavigateTo(route string)
}

// Journal records submission attempts. Optional.
type Journal interface {
	Record(ctx context.Context, record *models.SubmissionRecord) error
}

// Submitter validates an editor and sends it to the catalog backend
type Submitter struct {
	api       CatalogAPI
	notifier  Notifier
	navigator Navigator
	journal   Journal
	logger    *zap.Logger
}

// NewSubmitter creates a Submitter. journal may be nil.
func NewSubmitter(api CatalogAPI, notifier Notifier, navigator Navigator, journal Journal, logger *zap.Logger) *Submitter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Submitter{
		api:       api,
		notifier:  notifier,
		navigator: navigator,
		journal:   journal,
		logger:    logger,
	}
}

// Submit runs validate -> build -> send for the editor and applies the outcome.
// It returns true when the backend accepted the catalog. Nothing stops a caller
// from submitting again while an earlier call is still running.
func (s *Submitter) Submit(ctx context.Context, e *Editor) bool {
	e.Submitted = true

	e.Errors = Validate(&e.Draft, e.PriceList)
	if len(e.Errors) > 0 {
		s.logger.Info("catalog form is invalid",
			zap.String("flow", string(e.Flow)),
			zap.Int("error_count", len(e.Errors)),
		)
		return false
	}

	e.Draft.Price = pricing.BuildPricePayload(e.PriceList)
	selected := pricing.SelectedProducts(e.FocusProducts, e.Draft.SelectedProductIDs)
	mapping := pricing.MatchFocusProducts(e.PriceList, selected)

	previousDescription := e.Draft.Description

	form, err := BuildForm(&e.Draft, mapping)
	if err == nil {
		err = s.send(ctx, e, form)
		s.record(ctx, e, form, err)
	}

	if err != nil {
		s.logger.Error("catalog submission failed",
			zap.String("flow", string(e.Flow)),
			zap.String("catalog_id", e.CatalogID),
			zap.Error(err),
		)
		e.Draft.Description = previousDescription
		e.Errors = []string{err.Error()}
		return false
	}

	if e.Flow == FlowEdit {
		s.notifier.Notify(NoticeSuccess, "Product catalog updated successfully")
		s.navigator.NavigateTo(CatalogListRoute)
	} else {
		s.notifier.Notify(NoticeSuccess, "Product catalog added successfully")
		e.Reset()
	}

	s.logger.Info("catalog submitted",
		zap.String("flow", string(e.Flow)),
		zap.Int("mapped_volumes", len(mapping)),
	)
	return true
}

func (s *Submitter) send(ctx context.Context, e *Editor, form *models.CatalogForm) error {
	if e.Flow == FlowEdit {
		return s.api.UpdateWithImage(ctx, e.CatalogID, form)
	}
	return s.api.CreateWithImage(ctx, form)
}

func (s *Submitter) record(ctx context.Context, e *Editor, form *models.CatalogForm, sendErr error) {
	if s.journal == nil {
		return
	}

	record := &models.SubmissionRecord{
		ID:                  uuid.NewString(),
		Flow:                string(e.Flow),
		CatalogID:           e.CatalogID,
		Description:         form.Description,
		Status:              form.Status,
		Price:               form.Price,
		FocusProductMapping: form.FocusProductMapping,
		Outcome:             models.OutcomeSuccess,
		CreatedAt:           time.Now().UTC(),
	}
	if sendErr != nil {
		record.Outcome = models.OutcomeFailure
		record.ErrorMessage = sendErr.Error()
	}

	if err := s.journal.Record(ctx, record); err != nil {
		s.logger.Warn("failed to journal catalog submission", zap.Error(err))
	}
}
