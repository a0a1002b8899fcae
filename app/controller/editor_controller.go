package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"catalog-editor/editor"
	"catalog-editor/models"
	"catalog-editor/service"
)

const (
	draftsPrefix     = "/admin/catalog/drafts/"
	defaultMaxUpload = 10 << 20
)

// FocusProductSource provides the focus product list for new sessions
type FocusProductSource interface {
	FocusProducts(ctx context.Context) ([]models.FocusProduct, error)
}

// ImagePreparer turns uploads and Drive files into submission-ready images
type ImagePreparer interface {
	Prepare(data []byte) (*service.PreparedImage, error)
	FromDrive(ctx context.Context, fileID string) (*service.PreparedImage, error)
}

// EditorController handles HTTP requests for catalog editor sessions
type EditorController struct {
	store     *editor.Store
	products  FocusProductSource
	images    ImagePreparer
	api       editor.CatalogAPI
	journal   editor.Journal
	maxUpload int64
	logger    *zap.Logger
}

// NewEditorController creates a new EditorController. journal may be nil.
func NewEditorController(store *editor.Store, products FocusProductSource, images ImagePreparer, api editor.CatalogAPI, journal editor.Journal, maxUpload int64, logger *zap.Logger) *EditorController {
	if maxUpload <= 0 {
		maxUpload = defaultMaxUpload
	}
	return &EditorController{
		store:     store,
		products:  products,
		images:    images,
		api:       api,
		journal:   journal,
		maxUpload: maxUpload,
		logger:    logger,
	}
}

// OpenCreate handles POST /admin/catalog/drafts
func (c *EditorController) OpenCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	products, lookupErr := c.products.FocusProducts(r.Context())
	session := c.store.Open(editor.NewCreateEditor(products))
	c.reportLookupError(session, lookupErr)

	c.logger.Info("create session opened", zap.String("session_id", session.ID))
	writeJSON(w, c.logger, http.StatusCreated, session.View())
}

// OpenEdit handles POST /admin/catalog/drafts/edit
// The body is the existing catalog entry the list screen navigated from
func (c *EditorController) OpenEdit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var existing models.ExistingCatalog
	if err := json.NewDecoder(r.Body).Decode(&existing); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(existing.ID) == "" {
		http.Error(w, "_id is required", http.StatusBadRequest)
		return
	}

	products, lookupErr := c.products.FocusProducts(r.Context())
	session := c.store.Open(editor.NewEditEditor(existing, products))
	c.reportLookupError(session, lookupErr)

	c.logger.Info("edit session opened",
		zap.String("session_id", session.ID),
		zap.String("catalog_id", existing.ID),
	)
	writeJSON(w, c.logger, http.StatusCreated, session.View())
}

func (c *EditorController) reportLookupError(session *editor.Session, err error) {
	if err == nil {
		return
	}
	c.logger.Warn("focus products unavailable for new session",
		zap.String("session_id", session.ID),
		zap.Error(err),
	)

	message := err.Error()
	var lookupErr *service.LookupError
	if errors.As(err, &lookupErr) {
		message = lookupErr.Message
	}
	_ = session.Do(func(*editor.Editor) error {
		session.Notify(editor.NoticeError, message)
		return nil
	})
}

// GetDraft handles GET /admin/catalog/drafts/{id}
func (c *EditorController) GetDraft(w http.ResponseWriter, r *http.Request) {
	session, _, ok := c.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, c.logger, http.StatusOK, session.View())
}

// CancelDraft handles DELETE /admin/catalog/drafts/{id}
func (c *EditorController) CancelDraft(w http.ResponseWriter, r *http.Request) {
	session, _, ok := c.session(w, r)
	if !ok {
		return
	}

	_ = session.Do(func(*editor.Editor) error {
		session.NavigateTo(editor.CatalogListRoute)
		return nil
	})
	view := session.View()
	c.store.Close(session.ID)

	c.logger.Info("session cancelled", zap.String("session_id", session.ID))
	writeJSON(w, c.logger, http.StatusOK, view)
}

// SetProductsRequest is the body of PUT /admin/catalog/drafts/{id}/products
type SetProductsRequest struct {
	ProductIDs []int `json:"productIds"`
}

// SetProducts handles PUT /admin/catalog/drafts/{id}/products
func (c *EditorController) SetProducts(w http.ResponseWriter, r *http.Request) {
	var req SetProductsRequest
	c.mutate(w, r, &req, func(e *editor.Editor, _ []int) error {
		e.OnProductChange(req.ProductIDs)
		return nil
	})
}

// UpdateFieldsRequest is the body of PUT /admin/catalog/drafts/{id}/fields.
// Absent fields are left unchanged.
type UpdateFieldsRequest struct {
	Description *string               `json:"description"`
	Status      *models.CatalogStatus `json:"status"`
	Active      *bool                 `json:"active"`
}

// UpdateFields handles PUT /admin/catalog/drafts/{id}/fields
func (c *EditorController) UpdateFields(w http.ResponseWriter, r *http.Request) {
	var req UpdateFieldsRequest
	c.mutate(w, r, &req, func(e *editor.Editor, _ []int) error {
		if req.Status != nil {
			if err := e.SetStatus(*req.Status); err != nil {
				return err
			}
		}
		if req.Active != nil {
			e.ToggleStatus(*req.Active)
		}
		if req.Description != nil {
			e.SetDescription(*req.Description)
		}
		return nil
	})
}

// AddGroup handles POST /admin/catalog/drafts/{id}/groups
func (c *EditorController) AddGroup(w http.ResponseWriter, r *http.Request) {
	c.mutate(w, r, nil, func(e *editor.Editor, _ []int) error {
		e.AddVolumeGroup()
		return nil
	})
}

// SetVolumeRequest is the body of PUT /admin/catalog/drafts/{id}/groups/{i}
type SetVolumeRequest struct {
	Volume string `json:"volume"`
}

// SetVolume handles PUT /admin/catalog/drafts/{id}/groups/{i}
func (c *EditorController) SetVolume(w http.ResponseWriter, r *http.Request) {
	var req SetVolumeRequest
	c.mutate(w, r, &req, func(e *editor.Editor, idx []int) error {
		return e.SetVolume(idx[0], req.Volume)
	})
}

// AddEntry handles POST /admin/catalog/drafts/{id}/groups/{i}/entries
func (c *EditorController) AddEntry(w http.ResponseWriter, r *http.Request) {
	c.mutate(w, r, nil, func(e *editor.Editor, idx []int) error {
		return e.AddEntry(idx[0])
	})
}

// UpdateEntry handles PUT /admin/catalog/drafts/{id}/groups/{i}/entries/{j}
func (c *EditorController) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	var req models.PriceEntry
	c.mutate(w, r, &req, func(e *editor.Editor, idx []int) error {
		return e.UpdateEntry(idx[0], idx[1], req.SelectedKey, req.Price)
	})
}

// RemoveEntry handles DELETE /admin/catalog/drafts/{id}/groups/{i}/entries/{j}
func (c *EditorController) RemoveEntry(w http.ResponseWriter, r *http.Request) {
	c.mutate(w, r, nil, func(e *editor.Editor, idx []int) error {
		return e.RemoveEntry(idx[0], idx[1])
	})
}

// UploadImage handles POST /admin/catalog/drafts/{id}/image
// Accepts a multipart "file" part or a "driveFileId" form value
func (c *EditorController) UploadImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	session, _, ok := c.session(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, c.maxUpload)
	if err := r.ParseMultipartForm(c.maxUpload); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		http.Error(w, fmt.Sprintf("Invalid multipart form: %v", err), http.StatusBadRequest)
		return
	}

	var (
		image     *service.PreparedImage
		err       error
		fromDrive bool
	)
	file, header, fileErr := r.FormFile("file")
	switch {
	case fileErr == nil:
		defer file.Close()
		var data []byte
		data, err = io.ReadAll(file)
		if err == nil {
			image, err = c.images.Prepare(data)
		}
		c.logger.Info("image uploaded",
			zap.String("session_id", session.ID),
			zap.String("file_name", header.Filename),
			zap.Int64("size", header.Size),
		)
	case r.FormValue("driveFileId") != "":
		fromDrive = true
		image, err = c.images.FromDrive(r.Context(), r.FormValue("driveFileId"))
	default:
		http.Error(w, "file or driveFileId is required", http.StatusBadRequest)
		return
	}

	if err != nil {
		c.logger.Warn("image rejected", zap.String("session_id", session.ID), zap.Error(err))
		status := http.StatusBadRequest
		if fromDrive && !errors.Is(err, service.ErrDriveDisabled) {
			status = http.StatusBadGateway
		}
		http.Error(w, fmt.Sprintf("Failed to process image: %v", err), status)
		return
	}

	_ = session.Do(func(e *editor.Editor) error {
		e.SetImage(image.Data, image.DataURL)
		return nil
	})
	writeJSON(w, c.logger, http.StatusOK, session.View())
}

// SubmitResponse is the body returned by POST /admin/catalog/drafts/{id}/submit
type SubmitResponse struct {
	Success bool               `json:"success"`
	Session editor.SessionView `json:"session"`
}

// Submit handles POST /admin/catalog/drafts/{id}/submit
// Validation and backend failures are reported in the session errors with status 200
func (c *EditorController) Submit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	session, _, ok := c.session(w, r)
	if !ok {
		return
	}

	var success bool
	_ = session.Do(func(e *editor.Editor) error {
		submitter := editor.NewSubmitter(c.api, session, session, c.journal, c.logger)
		success = submitter.Submit(r.Context(), e)
		return nil
	})

	writeJSON(w, c.logger, http.StatusOK, SubmitResponse{
		Success: success,
		Session: session.View(),
	})
}

// mutate decodes body (when non-nil), runs fn under the session lock and writes the session view
func (c *EditorController) mutate(w http.ResponseWriter, r *http.Request, body interface{}, fn func(e *editor.Editor, idx []int) error) {
	session, idx, ok := c.session(w, r)
	if !ok {
		return
	}

	if body != nil {
		if err := json.NewDecoder(r.Body).Decode(body); err != nil {
			http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
			return
		}
	}

	if err := session.Do(func(e *editor.Editor) error { return fn(e, idx) }); err != nil {
		if errors.Is(err, editor.ErrIndexOutOfRange) || errors.Is(err, editor.ErrInvalidStatus) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		c.logger.Error("editor update failed", zap.String("session_id", session.ID), zap.Error(err))
		http.Error(w, fmt.Sprintf("Failed to update draft: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, c.logger, http.StatusOK, session.View())
}

// session resolves the session of a drafts path and the group/entry indices in it
func (c *EditorController) session(w http.ResponseWriter, r *http.Request) (*editor.Session, []int, bool) {
	id, idx, err := parseDraftPath(r.URL.Path)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, nil, false
	}

	session, err := c.store.Get(id)
	if err != nil {
		http.Error(w, fmt.Sprintf("Draft not found: %s", id), http.StatusNotFound)
		return nil, nil, false
	}
	return session, idx, true
}

// parseDraftPath splits /admin/catalog/drafts/{id}[/groups/{i}[/entries/{j}]][/action]
func parseDraftPath(path string) (string, []int, error) {
	parts := strings.Split(strings.Trim(strings.TrimPrefix(path, draftsPrefix), "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		return "", nil, errors.New("draft id is required")
	}

	var idx []int
	for k := 1; k+1 < len(parts); k += 2 {
		if parts[k] != "groups" && parts[k] != "entries" {
			continue
		}
		n, err := strconv.Atoi(parts[k+1])
		if err != nil {
			return "", nil, fmt.Errorf("invalid %s index: %q", strings.TrimSuffix(parts[k], "s"), parts[k+1])
		}
		idx = append(idx, n)
	}
	return parts[0], idx, nil
}
