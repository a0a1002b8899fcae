package models

// CatalogStatus is the publication state of a product catalog entry
type CatalogStatus string

const (
	StatusActive   CatalogStatus = "Active"
	StatusInactive CatalogStatus = "Inactive"
)

// AllPlaces is the place key meaning "every region and channel"
const AllPlaces = "All"

// DefaultFocusUnitID is the unit sent with every focus product mapping
const DefaultFocusUnitID = 1

// CatalogDraft represents the in-progress product offer being created or edited
type CatalogDraft struct {
	Image              []byte        `json:"-"`        // Freshly uploaded image, nil when unchanged
	ImageURL           string        `json:"imageUrl"` // Existing image URL or data URL preview
	Description        string        `json:"description"`
	Status             CatalogStatus `json:"status"`
	SelectedProductIDs []int         `json:"selectedProductIds"`
	Price              PricePayload  `json:"price,omitempty"` // Set right before submission
}

// HasImage reports whether the draft carries a fresh upload or an existing URL
func (d *CatalogDraft) HasImage() bool {
	return len(d.Image) > 0 || d.ImageURL != ""
}

// PriceEntry is a single place/price pair inside a volume group.
// Price is nil when the user has not entered a value.
type PriceEntry struct {
	SelectedKey string   `json:"selectedKey"`
	Price       *float64 `json:"price"`
}

// NewPriceEntry builds an entry with a set price
func NewPriceEntry(key string, price float64) PriceEntry {
	return PriceEntry{SelectedKey: key, Price: &price}
}

// VolumeGroup is a pricing bucket keyed by a package size token such as "5L"
type VolumeGroup struct {
	Volume  string       `json:"volume"`
	Entries []PriceEntry `json:"entries"`
}

// PricePayload maps a volume to its ordered list of single-key {place: price} records
type PricePayload map[string][]map[string]float64

// FocusProduct is a product master record owned by the Focus ERP
type FocusProduct struct {
	ID   int    `json:"iMasterId"`
	Name string `json:"sName"`
}

// FocusProductMapping links a volume group to the focus product sold in that size
type FocusProductMapping struct {
	Volume         string `json:"volume"`
	FocusProductID int    `json:"focusProductId"`
	FocusUnitID    int    `json:"focusUnitId"`
}

// StoredPrice is one persisted price row as returned by the catalog backend
type StoredPrice struct {
	Volume string   `json:"volume"`
	RefID  string   `json:"refId"`
	Price  *float64 `json:"price"`
}

// ExistingCatalog is the catalog entry handed to the edit flow
type ExistingCatalog struct {
	ID                  string                `json:"_id"`
	Description         string                `json:"productOfferDescription"`
	Status              CatalogStatus         `json:"productOfferStatus"`
	ImageURL            string                `json:"productOfferImageUrl"`
	Price               []StoredPrice         `json:"price"`
	FocusProductMapping []FocusProductMapping `json:"focusProductMapping"`
}

// CatalogForm holds the multipart fields sent to the catalog backend
type CatalogForm struct {
	Image               []byte // productImage, only when freshly uploaded
	ImageFileName       string
	ImageURL            string // productImageUrl, only when no fresh image
	Description         string
	Status              CatalogStatus
	Price               string // JSON encoded PricePayload
	FocusProductMapping string // JSON encoded []FocusProductMapping
}
