package domain

import (
	"time"
)

// Holiday reclassifies its calendar day to weekend/holiday capacity rules,
// regardless of the weekday it falls on. Dates are unique, date-only.
type Holiday struct {
	ID          int64     `json:"id"`
	Date        time.Time `json:"date"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}
