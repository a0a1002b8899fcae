package models

import "time"

// Submission outcomes
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// SubmissionRecord is one journaled submission attempt
type SubmissionRecord struct {
	ID                  string        `json:"id"`
	Flow                string        `json:"flow"`
	CatalogID           string        `json:"catalogId,omitempty"`
	Description         string        `json:"description"`
	Status              CatalogStatus `json:"status"`
	Price               string        `json:"price"`               // JSON sent as "price"
	FocusProductMapping string        `json:"focusProductMapping"` // JSON sent as "focusProductMapping"
	Outcome             string        `json:"outcome"`
	ErrorMessage        string        `json:"errorMessage,omitempty"`
	CreatedAt           time.Time     `json:"createdAt"`
}

// Notification is a toast/alert raised for the UI
type Notification struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}
