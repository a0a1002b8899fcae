package pricing

import (
	"strings"

	"catalog-editor/models"
	"catalog-editor/utils"
)

// MatchFocusProducts links every volume group to the first candidate product
// whose name contains the group's volume, ignoring case and whitespace.
// Groups with no matching product are left out.
func MatchFocusProducts(priceList []models.VolumeGroup, candidates []models.FocusProduct) []models.FocusProductMapping {
	mappings := make([]models.FocusProductMapping, 0, len(priceList))

	for _, group := range priceList {
		volume := utils.CompactUpper(group.Volume)

		for _, product := range candidates {
			if strings.Contains(utils.CompactUpper(product.Name), volume) {
				mappings = append(mappings, models.FocusProductMapping{
					Volume:         group.Volume,
					FocusProductID: product.ID,
					FocusUnitID:    models.DefaultFocusUnitID,
				})
				break
			}
		}
	}

	return mappings
}

// SelectedProducts returns the products whose id is in ids, keeping the
// order of products
func SelectedProducts(products []models.FocusProduct, ids []int) []models.FocusProduct {
	wanted := make(map[int]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	var selected []models.FocusProduct
	for _, product := range products {
		if wanted[product.ID] {
			selected = append(selected, product)
		}
	}
	return selected
}
