package editor

import (
	"errors"
	"fmt"

	"catalog-editor/models"
	"catalog-editor/pricing"
	"catalog-editor/utils"
)

// Flow tells which screen an editor backs
type Flow string

const (
	FlowCreate Flow = "create"
	FlowEdit   Flow = "edit"
)

// CatalogListRoute is where the edit flow goes after saving or cancelling
const CatalogListRoute = "/product-catalog"

const defaultGroupPrice = 1000

var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrInvalidStatus   = errors.New("invalid status")
)

// Editor holds the mutable draft and price list behind a create or edit screen
type Editor struct {
	Flow          Flow
	CatalogID     string // Edit flow only
	Draft         models.CatalogDraft
	PriceList     []models.VolumeGroup
	Errors        []string
	Submitted     bool
	FocusProducts []models.FocusProduct
	ImagePreview  string // data URL of the last uploaded image
}

// NewCreateEditor opens an empty draft with one default volume group
func NewCreateEditor(products []models.FocusProduct) *Editor {
	e := &Editor{Flow: FlowCreate}
	e.Reset()
	e.SetFocusProducts(products)
	return e
}

// NewEditEditor hydrates a draft from an existing catalog entry.
// Stored price rows are grouped by volume in first-seen order.
func NewEditEditor(existing models.ExistingCatalog, products []models.FocusProduct) *Editor {
	status := existing.Status
	if status == "" {
		status = models.StatusActive
	}

	ids := make([]int, 0, len(existing.FocusProductMapping))
	for _, m := range existing.FocusProductMapping {
		ids = append(ids, m.FocusProductID)
	}

	e := &Editor{
		Flow:      FlowEdit,
		CatalogID: existing.ID,
		Draft: models.CatalogDraft{
			ImageURL:           existing.ImageURL,
			Description:        existing.Description,
			Status:             status,
			SelectedProductIDs: ids,
		},
		PriceList: groupStoredPrices(existing.Price),
	}
	e.SetFocusProducts(products)
	return e
}

func groupStoredPrices(rows []models.StoredPrice) []models.VolumeGroup {
	if len(rows) == 0 {
		return []models.VolumeGroup{newGroup("", 0)}
	}

	index := make(map[string]int)
	var groups []models.VolumeGroup
	for _, row := range rows {
		i, ok := index[row.Volume]
		if !ok {
			i = len(groups)
			index[row.Volume] = i
			groups = append(groups, models.VolumeGroup{Volume: row.Volume})
		}

		key := row.RefID
		if key == "" {
			key = models.AllPlaces
		}
		price := 0.0
		if row.Price != nil {
			price = *row.Price
		}
		groups[i].Entries = append(groups[i].Entries, models.NewPriceEntry(key, price))
	}
	return groups
}

func newGroup(volume string, price float64) models.VolumeGroup {
	return models.VolumeGroup{
		Volume:  volume,
		Entries: []models.PriceEntry{models.NewPriceEntry(models.AllPlaces, price)},
	}
}

// SetFocusProducts replaces the lookup list, dropping records without id or name
func (e *Editor) SetFocusProducts(products []models.FocusProduct) {
	filtered := make([]models.FocusProduct, 0, len(products))
	for _, p := range products {
		if p.ID != 0 && p.Name != "" {
			filtered = append(filtered, p)
		}
	}
	e.FocusProducts = filtered
}

// OnProductChange re-derives the description and volume groups from the selected products.
// The create flow rebuilds the price list; the edit flow keeps groups whose volume is still selected.
func (e *Editor) OnProductChange(ids []int) {
	e.Draft.SelectedProductIDs = append([]int(nil), ids...)

	if len(ids) == 0 {
		e.Draft.Description = ""
		if e.Flow == FlowEdit {
			e.PriceList = []models.VolumeGroup{}
		} else {
			e.PriceList = []models.VolumeGroup{newGroup("", defaultGroupPrice)}
		}
		return
	}

	extract := utils.ExtractVolume
	if e.Flow == FlowEdit {
		extract = utils.ExtractVolumeFractional
	}

	baseName := ""
	volumes := make([]string, 0, len(ids))
	for _, product := range pricing.SelectedProducts(e.FocusProducts, ids) {
		match := extract(product.Name)
		if match.CleanedName != "" {
			baseName = match.CleanedName
		}
		if match.Volume != "" {
			volumes = append(volumes, match.Volume)
		}
	}
	e.Draft.Description = baseName

	if e.Flow == FlowEdit {
		e.mergeVolumes(volumes)
		return
	}

	priceList := make([]models.VolumeGroup, 0, len(volumes))
	for _, volume := range volumes {
		priceList = append(priceList, newGroup(volume, defaultGroupPrice))
	}
	e.PriceList = priceList
}

func (e *Editor) mergeVolumes(volumes []string) {
	wanted := make(map[string]bool, len(volumes))
	for _, v := range volumes {
		wanted[v] = true
	}

	kept := make([]models.VolumeGroup, 0, len(e.PriceList)+len(volumes))
	present := make(map[string]bool)
	for _, group := range e.PriceList {
		if wanted[group.Volume] {
			kept = append(kept, group)
			present[group.Volume] = true
		}
	}

	for _, volume := range volumes {
		if !present[volume] {
			kept = append(kept, newGroup(volume, defaultGroupPrice))
			present[volume] = true
		}
	}
	e.PriceList = kept
}

// AddVolumeGroup appends an empty volume group
func (e *Editor) AddVolumeGroup() {
	price := 0.0
	if e.Flow == FlowCreate {
		price = defaultGroupPrice
	}
	e.PriceList = append(e.PriceList, newGroup("", price))
}

// SetVolume changes the volume token of group i
func (e *Editor) SetVolume(i int, volume string) error {
	if err := e.checkGroup(i); err != nil {
		return err
	}
	e.PriceList[i].Volume = volume
	return nil
}

// AddEntry appends an "All" entry with a zero price to group i
func (e *Editor) AddEntry(i int) error {
	if err := e.checkGroup(i); err != nil {
		return err
	}
	e.PriceList[i].Entries = append(e.PriceList[i].Entries, models.NewPriceEntry(models.AllPlaces, 0))
	return nil
}

// UpdateEntry sets the place and price of entry j in group i
func (e *Editor) UpdateEntry(i, j int, key string, price *float64) error {
	if err := e.checkEntry(i, j); err != nil {
		return err
	}
	e.PriceList[i].Entries[j] = models.PriceEntry{SelectedKey: key, Price: price}
	return nil
}

// RemoveEntry deletes entry j of group i. The edit flow never removes the last entry.
func (e *Editor) RemoveEntry(i, j int) error {
	if err := e.checkEntry(i, j); err != nil {
		return err
	}
	entries := e.PriceList[i].Entries
	if e.Flow == FlowEdit && len(entries) <= 1 {
		return nil
	}
	e.PriceList[i].Entries = append(entries[:j:j], entries[j+1:]...)
	return nil
}

// SetStatus sets the draft status
func (e *Editor) SetStatus(status models.CatalogStatus) error {
	if status != models.StatusActive && status != models.StatusInactive {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	e.Draft.Status = status
	return nil
}

// ToggleStatus maps a checkbox state to Active/Inactive
func (e *Editor) ToggleStatus(active bool) {
	if active {
		e.Draft.Status = models.StatusActive
	} else {
		e.Draft.Status = models.StatusInactive
	}
}

// SetDescription overrides the derived description
func (e *Editor) SetDescription(description string) {
	e.Draft.Description = description
}

// SetImage stores a freshly uploaded image. A later upload replaces an earlier one.
func (e *Editor) SetImage(data []byte, preview string) {
	e.Draft.Image = data
	e.ImagePreview = preview
}

// Reset puts the editor back to an empty create draft
func (e *Editor) Reset() {
	e.Draft = models.CatalogDraft{
		Status:             models.StatusActive,
		SelectedProductIDs: []int{},
	}
	e.PriceList = []models.VolumeGroup{newGroup("", defaultGroupPrice)}
	e.Errors = nil
	e.Submitted = false
	e.ImagePreview = ""
}

func (e *Editor) checkGroup(i int) error {
	if i < 0 || i >= len(e.PriceList) {
		return fmt.Errorf("%w: group %d", ErrIndexOutOfRange, i)
	}
	return nil
}

func (e *Editor) checkEntry(i, j int) error {
	if err := e.checkGroup(i); err != nil {
		return err
	}
	if j < 0 || j >= len(e.PriceList[i].Entries) {
		return fmt.Errorf("%w: entry %d in group %d", ErrIndexOutOfRange, j, i)
	}
	return nil
}
