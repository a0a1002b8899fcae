package service

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"catalog-editor/models"
)

var testPaths = APIPaths{
	CreateCatalog: "/product-catalog/create",
	UpdateCatalog: "/product-catalog/update/",
	FocusProducts: "/focus/products",
	States:        "/states",
	Zones:         "/zones",
	Districts:     "/districts",
}

func newTestClient(serverURL string) *CatalogClient {
	return NewCatalogClient(CatalogClientConfig{
		BaseURL: serverURL,
		Token:   "secret",
		Timeout: 5 * time.Second,
		Paths:   testPaths,
	}, zap.NewNop())
}

func TestCreateWithImageSendsMultipart(t *testing.T) {
	var (
		gotFields map[string][]string
		gotImage  []byte
		gotName   string
		gotAuth   string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/product-catalog/create", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")

		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		gotFields = r.MultipartForm.Value

		file, header, err := r.FormFile("productImage")
		if !assert.NoError(t, err) {
			return
		}
		defer file.Close()
		gotName = header.Filename
		gotImage, _ = io.ReadAll(file)

		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	form := &models.CatalogForm{
		Image:               []byte("jpeg-bytes"),
		ImageFileName:       "product-image.jpg",
		Description:         "Sunflower Oil",
		Status:              models.StatusActive,
		Price:               `{"5L":[{"All":1000}]}`,
		FocusProductMapping: `[{"volume":"5L","focusProductId":1,"focusUnitId":1}]`,
	}

	err := newTestClient(server.URL).CreateWithImage(context.Background(), form)
	require.NoError(t, err)

	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, []byte("jpeg-bytes"), gotImage)
	assert.Equal(t, "product-image.jpg", gotName)
	assert.Equal(t, []string{"Sunflower Oil"}, gotFields["productDescription"])
	assert.Equal(t, []string{"Active"}, gotFields["productStatus"])
	assert.Equal(t, []string{form.Price}, gotFields["price"])
	assert.Equal(t, []string{form.FocusProductMapping}, gotFields["focusProductMapping"])
	assert.NotContains(t, gotFields, "productImageUrl")
}

func TestUpdateWithImageSendsURLAndSurfacesMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/product-catalog/update/cat-9", r.URL.Path)

		assert.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "https://cdn.example.com/a.png", r.FormValue("productImageUrl"))
		_, _, err := r.FormFile("productImage")
		assert.ErrorIs(t, err, http.ErrMissingFile)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"Catalog already exists for this product"}`))
	}))
	defer server.Close()

	form := &models.CatalogForm{
		ImageURL:            "https://cdn.example.com/a.png",
		Description:         "Ghee",
		Status:              models.StatusInactive,
		Price:               "{}",
		FocusProductMapping: "[]",
	}

	err := newTestClient(server.URL).UpdateWithImage(context.Background(), "cat-9", form)
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "Catalog already exists for this product", err.Error())
}

func TestAPIErrorWithoutMessage(t *testing.T) {
	err := &APIError{StatusCode: http.StatusBadGateway}
	assert.Equal(t, "catalog api returned status 502", err.Error())
}

func TestLookupCalls(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/focus/products":
			w.Write([]byte(`{"success":true,"data":[{"iMasterId":7,"sName":"Mustard Oil 1L"}]}`))
		case "/states":
			w.Write([]byte(`{"data":[{"stateId":"st-1","stateName":"Kerala"}]}`))
		case "/zones":
			w.Write([]byte(`{"data":[{"zoneId":"zn-1","zoneName":"South"}]}`))
		case "/districts":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	ctx := context.Background()

	products, err := client.GetFocusProducts(ctx)
	require.NoError(t, err)
	assert.True(t, products.Success)
	assert.Equal(t, []models.FocusProduct{{ID: 7, Name: "Mustard Oil 1L"}}, products.Data)

	states, err := client.GetStates(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.State{{ID: "st-1", Name: "Kerala"}}, states.Data)

	zones, err := client.GetZones(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Zone{{ID: "zn-1", Name: "South"}}, zones.Data)

	_, err = client.GetDistricts(ctx)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
}
