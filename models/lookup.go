package models

// FocusProductsResponse is the envelope returned by the focus products endpoint
type FocusProductsResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Data    []FocusProduct `json:"data,omitempty"`
}

// State is a state record from the places API
type State struct {
	ID   string `json:"stateId"`
	Name string `json:"stateName"`
}

// Zone is a zone record from the places API
type Zone struct {
	ID   string `json:"zoneId"`
	Name string `json:"zoneName"`
}

// District is a district record from the places API
type District struct {
	ID   string `json:"districtId"`
	Name string `json:"districtName"`
}

// StatesResponse wraps the states list
type StatesResponse struct {
	Data []State `json:"data"`
}

// ZonesResponse wraps the zones list
type ZonesResponse struct {
	Data []Zone `json:"data"`
}

// DistrictsResponse wraps the districts list
type DistrictsResponse struct {
	Data []District `json:"data"`
}

// DropdownOption is one selectable place in the grouped price dropdown
type DropdownOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Group string `json:"group,omitempty"`
}

// Dropdown groups
const (
	GroupStates    = "States"
	GroupZones     = "Zones"
	GroupDistricts = "Districts"
)

// Lookups bundles the reference data an editor screen needs
type Lookups struct {
	FocusProducts []FocusProduct   `json:"focusProducts"`
	Places        []DropdownOption `json:"places"`
	Errors        []string         `json:"errors,omitempty"`
}
