package pricing

import (
	"math"

	"catalog-editor/models"
)

// BuildPricePayload flattens the price list into volume -> [{place: price}].
// Groups without a volume or without entries are skipped. Entries without a
// place or without a numeric price are dropped; zero and negative prices are
// kept here since positivity is the validator's job.
func BuildPricePayload(priceList []models.VolumeGroup) models.PricePayload {
	result := make(models.PricePayload)

	for _, group := range priceList {
		if group.Volume == "" || len(group.Entries) == 0 {
			continue
		}

		records := make([]map[string]float64, 0, len(group.Entries))
		for _, entry := range group.Entries {
			if entry.SelectedKey == "" || entry.Price == nil || math.IsNaN(*entry.Price) {
				continue
			}
			records = append(records, map[string]float64{entry.SelectedKey: *entry.Price})
		}

		// A repeated volume replaces the earlier group
		result[group.Volume] = records
	}

	return result
}
