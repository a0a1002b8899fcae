package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"catalog-editor/models"
)

type fakeLookupAPI struct {
	mu        sync.Mutex
	calls     map[string]int
	products  *models.FocusProductsResponse
	productsE error
	districtE error
}

func (f *fakeLookupAPI) count(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[name]++
}

func (f *fakeLookupAPI) GetFocusProducts(ctx context.Context) (*models.FocusProductsResponse, error) {
	f.count("products")
	return f.products, f.productsE
}

func (f *fakeLookupAPI) GetStates(ctx context.Context) (*models.StatesResponse, error) {
	f.count("states")
	return &models.StatesResponse{Data: []models.State{{ID: "st-1", Name: "Kerala"}}}, nil
}

func (f *fakeLookupAPI) GetZones(ctx context.Context) (*models.ZonesResponse, error) {
	f.count("zones")
	return &models.ZonesResponse{Data: []models.Zone{{ID: "zn-1", Name: "South"}, {ID: "zn-2", Name: "North"}}}, nil
}

func (f *fakeLookupAPI) GetDistricts(ctx context.Context) (*models.DistrictsResponse, error) {
	f.count("districts")
	if f.districtE != nil {
		return nil, f.districtE
	}
	return &models.DistrictsResponse{Data: []models.District{{ID: "ds-1", Name: "Ernakulam"}}}, nil
}

type memoryCache struct {
	items map[string][]byte
}

func (m *memoryCache) Get(ctx context.Context, key string, dest interface{}) bool {
	data, ok := m.items[key]
	if !ok {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

func (m *memoryCache) Set(ctx context.Context, key string, value interface{}) {
	data, _ := json.Marshal(value)
	m.items[key] = data
}

func TestFocusProducts(t *testing.T) {
	t.Run("filters incomplete records", func(t *testing.T) {
		api := &fakeLookupAPI{products: &models.FocusProductsResponse{
			Success: true,
			Data: []models.FocusProduct{
				{ID: 1, Name: "Sunflower Oil 5L"},
				{ID: 0, Name: "Orphan"},
				{ID: 3, Name: ""},
			},
		}}
		svc := NewLookupService(api, nil, zap.NewNop())

		products, err := svc.FocusProducts(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []models.FocusProduct{{ID: 1, Name: "Sunflower Oil 5L"}}, products)
	})

	t.Run("unsuccessful response uses backend message", func(t *testing.T) {
		api := &fakeLookupAPI{products: &models.FocusProductsResponse{Success: false, Message: "Focus is down"}}
		svc := NewLookupService(api, nil, zap.NewNop())

		_, err := svc.FocusProducts(context.Background())
		assert.EqualError(t, err, "Focus is down")
	})

	t.Run("unsuccessful response without message", func(t *testing.T) {
		api := &fakeLookupAPI{products: &models.FocusProductsResponse{Success: false}}
		svc := NewLookupService(api, nil, zap.NewNop())

		_, err := svc.FocusProducts(context.Background())
		assert.EqualError(t, err, "Failed to fetch Focus Products")
	})

	t.Run("transport error", func(t *testing.T) {
		api := &fakeLookupAPI{productsE: errors.New("dial tcp: refused")}
		svc := NewLookupService(api, nil, zap.NewNop())

		_, err := svc.FocusProducts(context.Background())
		var lookupErr *LookupError
		require.True(t, errors.As(err, &lookupErr))
		assert.Equal(t, "Failed to fetch entities from Focus", lookupErr.Message)
	})

	t.Run("served from cache on second call", func(t *testing.T) {
		api := &fakeLookupAPI{products: &models.FocusProductsResponse{
			Success: true,
			Data:    []models.FocusProduct{{ID: 1, Name: "Sunflower Oil 5L"}},
		}}
		svc := NewLookupService(api, &memoryCache{items: map[string][]byte{}}, zap.NewNop())

		_, err := svc.FocusProducts(context.Background())
		require.NoError(t, err)
		products, err := svc.FocusProducts(context.Background())
		require.NoError(t, err)

		assert.Equal(t, []models.FocusProduct{{ID: 1, Name: "Sunflower Oil 5L"}}, products)
		assert.Equal(t, 1, api.calls["products"])
	})
}

func TestGroupedDropdown(t *testing.T) {
	t.Run("joins all three lists behind All", func(t *testing.T) {
		svc := NewLookupService(&fakeLookupAPI{}, nil, zap.NewNop())

		options, err := svc.GroupedDropdown(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []models.DropdownOption{
			{ID: "All", Label: "All"},
			{ID: "st-1", Label: "Kerala", Group: "States"},
			{ID: "zn-1", Label: "South", Group: "Zones"},
			{ID: "zn-2", Label: "North", Group: "Zones"},
			{ID: "ds-1", Label: "Ernakulam", Group: "Districts"},
		}, options)
	})

	t.Run("one failure fails the whole join", func(t *testing.T) {
		svc := NewLookupService(&fakeLookupAPI{districtE: errors.New("timeout")}, nil, zap.NewNop())

		options, err := svc.GroupedDropdown(context.Background())
		assert.Error(t, err)
		assert.Nil(t, options)
	})
}

func TestLoadReportsFailuresWithoutFailing(t *testing.T) {
	api := &fakeLookupAPI{
		products:  &models.FocusProductsResponse{Success: false, Message: "Focus is down"},
		districtE: errors.New("timeout"),
	}
	svc := NewLookupService(api, nil, zap.NewNop())

	lookups := svc.Load(context.Background())

	assert.Empty(t, lookups.FocusProducts)
	assert.NotNil(t, lookups.FocusProducts)
	assert.Empty(t, lookups.Places)
	assert.Equal(t, []string{"Focus is down", "Failed to fetch dropdown data"}, lookups.Errors)
}
