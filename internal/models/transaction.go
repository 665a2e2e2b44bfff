package models

import (
	"encoding/json"
	"strings"
)

// DefaultCategory is assigned to transactions submitted without a category
const DefaultCategory = "One-time"

// TransactionRecord represents a single spending transaction submitted for forecasting
type TransactionRecord struct {
	TransactionDate string    `json:"transaction_date"`
	Amount          RawAmount `json:"amount"`
	Category        string    `json:"category,omitempty"`
}

// CategoryOrDefault returns the category, or DefaultCategory when it is blank
func (t TransactionRecord) CategoryOrDefault() string {
	if strings.TrimSpace(t.Category) == "" {
		return DefaultCategory
	}
	return t.Category
}

// RawAmount holds the amount exactly as sent, either a JSON number or a
// numeric string. Validation happens during aggregation.
type RawAmount string

// UnmarshalJSON accepts numbers, strings and null
func (a *RawAmount) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	switch {
	case raw == "null":
		*a = ""
	case strings.HasPrefix(raw, `"`):
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = RawAmount(strings.TrimSpace(s))
	default:
		*a = RawAmount(raw)
	}
	return nil
}

// MarshalJSON writes the amount back as a JSON string
func (a RawAmount) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(a))
}
