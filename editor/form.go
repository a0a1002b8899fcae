package editor

import (
	"encoding/json"
	"fmt"

	"catalog-editor/models"
)

const imageFileName = "product-image.jpg"

// BuildForm assembles the multipart fields for the catalog backend.
// A fresh image is sent as a file; otherwise the existing image URL is sent.
// In the edit flow a fresh upload replaces the stored URL, so productImageUrl is omitted.
func BuildForm(draft *models.CatalogDraft, mapping []models.FocusProductMapping) (*models.CatalogForm, error) {
	price := draft.Price
	if price == nil {
		price = models.PricePayload{}
	}
	priceJSON, err := json.Marshal(price)
	if err != nil {
		return nil, fmt.Errorf("failed to encode price payload: %w", err)
	}

	if mapping == nil {
		mapping = []models.FocusProductMapping{}
	}
	mappingJSON, err := json.Marshal(mapping)
	if err != nil {
		return nil, fmt.Errorf("failed to encode focus product mapping: %w", err)
	}

	form := &models.CatalogForm{
		Description:         draft.Description,
		Status:              draft.Status,
		Price:               string(priceJSON),
		FocusProductMapping: string(mappingJSON),
	}
	if len(draft.Image) > 0 {
		form.Image = draft.Image
		form.ImageFileName = imageFileName
	} else {
		form.ImageURL = draft.ImageURL
	}

	return form, nil
}
