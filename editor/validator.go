package editor

import (
	"fmt"

	"catalog-editor/models"
)

// Validate checks the draft and price list and returns every problem found, in order.
// The form is valid when the returned list is empty.
func Validate(draft *models.CatalogDraft, priceList []models.VolumeGroup) []string {
	var errs []string

	if len(draft.SelectedProductIDs) == 0 {
		errs = append(errs, "Product name is required.")
	}

	if !draft.HasImage() {
		errs = append(errs, "Product image is required.")
	}

	if len(priceList) == 0 {
		return append(errs, "At least one volume and price entry is required.")
	}

	for i, group := range priceList {
		if group.Volume == "" {
			errs = append(errs, fmt.Sprintf("Volume is required for group %d", i+1))
		}
		for j, entry := range group.Entries {
			if entry.SelectedKey == "" {
				errs = append(errs, fmt.Sprintf("Place selection is required for entry %d in group %d", j+1, i+1))
			}
			if entry.Price == nil || *entry.Price <= 0 {
				errs = append(errs, fmt.Sprintf("Valid price is required for entry %d in group %d", j+1, i+1))
			}
		}
	}

	return errs
}
