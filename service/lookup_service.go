package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"catalog-editor/models"
)

const (
	focusProductsCacheKey = "focus-products"
	placesCacheKey        = "places"
)

// LookupAPI is the read-only reference data the editor screens need
type LookupAPI interface {
	GetFocusProducts(ctx context.Context) (*models.FocusProductsResponse, error)
	GetStates(ctx context.Context) (*models.StatesResponse, error)
	GetZones(ctx context.Context) (*models.ZonesResponse, error)
	GetDistricts(ctx context.Context) (*models.DistrictsResponse, error)
}

// LookupCache stores lookup results between requests
type LookupCache interface {
	Get(ctx context.Context, key string, dest interface{}) bool
	Set(ctx context.Context, key string, value interface{})
}

// LookupError is a failed lookup with the message shown to the user
type LookupError struct {
	Message string
	Err     error
}

func (e *LookupError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *LookupError) Unwrap() error { return e.Err }

// LookupService loads focus products and the grouped place dropdown
type LookupService struct {
	api    LookupAPI
	cache  LookupCache
	logger *zap.Logger
}

// NewLookupService creates a LookupService. cache may be nil.
func NewLookupService(api LookupAPI, cache LookupCache, logger *zap.Logger) *LookupService {
	return &LookupService{api: api, cache: cache, logger: logger}
}

// FocusProducts returns the focus products that have both an id and a name
func (s *LookupService) FocusProducts(ctx context.Context) ([]models.FocusProduct, error) {
	var cached []models.FocusProduct
	if s.cache != nil && s.cache.Get(ctx, focusProductsCacheKey, &cached) {
		return cached, nil
	}

	res, err := s.api.GetFocusProducts(ctx)
	if err != nil {
		msg := "Failed to fetch entities from Focus"
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			msg = apiErr.Message
		}
		return nil, &LookupError{Message: msg, Err: err}
	}
	if !res.Success {
		msg := res.Message
		if msg == "" {
			msg = "Failed to fetch Focus Products"
		}
		return nil, &LookupError{Message: msg}
	}

	products := make([]models.FocusProduct, 0, len(res.Data))
	for _, p := range res.Data {
		if p.ID != 0 && p.Name != "" {
			products = append(products, p)
		}
	}

	if s.cache != nil {
		s.cache.Set(ctx, focusProductsCacheKey, products)
	}
	return products, nil
}

// GroupedDropdown fetches states, zones and districts concurrently and joins them
// behind an "All" option. Any failed fetch fails the whole list.
func (s *LookupService) GroupedDropdown(ctx context.Context) ([]models.DropdownOption, error) {
	var cached []models.DropdownOption
	if s.cache != nil && s.cache.Get(ctx, placesCacheKey, &cached) {
		return cached, nil
	}

	var (
		states    *models.StatesResponse
		zones     *models.ZonesResponse
		districts *models.DistrictsResponse
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		states, err = s.api.GetStates(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		zones, err = s.api.GetZones(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		districts, err = s.api.GetDistricts(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, &LookupError{Message: "Failed to fetch dropdown data", Err: err}
	}

	options := make([]models.DropdownOption, 0, 1+len(states.Data)+len(zones.Data)+len(districts.Data))
	options = append(options, models.DropdownOption{ID: models.AllPlaces, Label: models.AllPlaces})
	for _, st := range states.Data {
		options = append(options, models.DropdownOption{ID: st.ID, Label: st.Name, Group: models.GroupStates})
	}
	for _, z := range zones.Data {
		options = append(options, models.DropdownOption{ID: z.ID, Label: z.Name, Group: models.GroupZones})
	}
	for _, d := range districts.Data {
		options = append(options, models.DropdownOption{ID: d.ID, Label: d.Name, Group: models.GroupDistricts})
	}

	if s.cache != nil {
		s.cache.Set(ctx, placesCacheKey, options)
	}
	return options, nil
}

// Load fetches everything an editor screen needs. Failures are logged and
// reported as messages; the failed part is left empty.
func (s *LookupService) Load(ctx context.Context) models.Lookups {
	lookups := models.Lookups{
		FocusProducts: []models.FocusProduct{},
		Places:        []models.DropdownOption{},
	}

	products, err := s.FocusProducts(ctx)
	if err != nil {
		s.logger.Warn("focus products lookup failed", zap.Error(err))
		lookups.Errors = append(lookups.Errors, userMessage(err))
	} else {
		lookups.FocusProducts = products
	}

	places, err := s.GroupedDropdown(ctx)
	if err != nil {
		s.logger.Warn("place dropdown lookup failed", zap.Error(err))
		lookups.Errors = append(lookups.Errors, userMessage(err))
	} else {
		lookups.Places = places
	}

	return lookups
}

func userMessage(err error) string {
	var lookupErr *LookupError
	if errors.As(err, &lookupErr) {
		return lookupErr.Message
	}
	return err.Error()
}
