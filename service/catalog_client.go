package service

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"catalog-editor/models"
)

// APIPaths are the catalog backend endpoints, relative to the base URL
type APIPaths struct {
	CreateCatalog string
	UpdateCatalog string // the catalog id is appended
	FocusProducts string
	States        string
	Zones         string
	Districts     string
}

// CatalogClientConfig configures CatalogClient
type CatalogClientConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration
	Paths   APIPaths
}

// APIError is a non-2xx answer from the catalog backend
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("catalog api returned status %d", e.StatusCode)
}

type apiErrorBody struct {
	Message string `json:"message"`
}

// CatalogClient talks to the catalog backend over HTTP.
// It implements editor.CatalogAPI and LookupAPI.
type CatalogClient struct {
	httpClient *resty.Client
	paths      APIPaths
	logger     *zap.Logger
}

// NewCatalogClient creates a CatalogClient. Requests are never retried.
func NewCatalogClient(cfg CatalogClientConfig, logger *zap.Logger) *CatalogClient {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")

	if cfg.Token != "" {
		client.SetAuthToken(cfg.Token)
	}

	return &CatalogClient{
		httpClient: client,
		paths:      cfg.Paths,
		logger:     logger,
	}
}

// CreateWithImage posts a new catalog entry as multipart form data
func (c *CatalogClient) CreateWithImage(ctx context.Context, form *models.CatalogForm) error {
	resp, err := c.multipartRequest(ctx, form).Post(c.paths.CreateCatalog)
	return c.checkResponse("create catalog", resp, err)
}

// UpdateWithImage replaces an existing catalog entry
func (c *CatalogClient) UpdateWithImage(ctx context.Context, catalogID string, form *models.CatalogForm) error {
	resp, err := c.multipartRequest(ctx, form).Put(c.paths.UpdateCatalog + url.PathEscape(catalogID))
	return c.checkResponse("update catalog", resp, err)
}

func (c *CatalogClient) multipartRequest(ctx context.Context, form *models.CatalogForm) *resty.Request {
	fields := map[string]string{
		"productDescription":  form.Description,
		"productStatus":       string(form.Status),
		"price":               form.Price,
		"focusProductMapping": form.FocusProductMapping,
	}
	if form.ImageURL != "" {
		fields["productImageUrl"] = form.ImageURL
	}

	req := c.httpClient.R().
		SetContext(ctx).
		SetError(&apiErrorBody{}).
		SetMultipartFormData(fields)

	if len(form.Image) > 0 {
		req.SetFileReader("productImage", form.ImageFileName, bytes.NewReader(form.Image))
	}
	return req
}

// GetFocusProducts fetches the focus product master list
func (c *CatalogClient) GetFocusProducts(ctx context.Context) (*models.FocusProductsResponse, error) {
	var out models.FocusProductsResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&out).
		SetError(&apiErrorBody{}).
		Get(c.paths.FocusProducts)
	if err := c.checkResponse("get focus products", resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetStates fetches the states list
func (c *CatalogClient) GetStates(ctx context.Context) (*models.StatesResponse, error) {
	var out models.StatesResponse
	if err := c.getJSON(ctx, "get states", c.paths.States, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetZones fetches the zones list
func (c *CatalogClient) GetZones(ctx context.Context) (*models.ZonesResponse, error) {
	var out models.ZonesResponse
	if err := c.getJSON(ctx, "get zones", c.paths.Zones, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetDistricts fetches the districts list
func (c *CatalogClient) GetDistricts(ctx context.Context) (*models.DistrictsResponse, error) {
	var out models.DistrictsResponse
	if err := c.getJSON(ctx, "get districts", c.paths.Districts, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *CatalogClient) getJSON(ctx context.Context, op, path string, out interface{}) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(out).
		SetError(&apiErrorBody{}).
		Get(path)
	return c.checkResponse(op, resp, err)
}

func (c *CatalogClient) checkResponse(op string, resp *resty.Response, err error) error {
	if err != nil {
		c.logger.Error("catalog api call failed", zap.String("op", op), zap.Error(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if resp.IsError() {
		apiErr := &APIError{StatusCode: resp.StatusCode()}
		if body, ok := resp.Error().(*apiErrorBody); ok && body != nil {
			apiErr.Message = body.Message
		}
		c.logger.Warn("catalog api returned error",
			zap.String("op", op),
			zap.Int("status_code", apiErr.StatusCode),
			zap.String("message", apiErr.Message),
		)
		return apiErr
	}

	return nil
}
