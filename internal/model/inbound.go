package model

import (
	"fmt"
	"time"
)

var monthNames = [...]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// InboundEntry records one receipt of stock. ProductID is a weak reference
// and may dangle after the product is deleted.
type InboundEntry struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Date      time.Time `json:"date"`
	Month     int       `json:"month"`
	Year      int       `json:"year"`
	CreatedAt time.Time `json:"created_at"`
}

// SetDate assigns the date and the month/year derived from it.
func (e *InboundEntry) SetDate(d time.Time) {
	e.Date = d
	e.Month = int(d.Month())
	e.Year = d.Year()
}

// PeriodLabel returns e.g. "March 2026".
func (e InboundEntry) PeriodLabel() string {
	if e.Month < 1 || e.Month > 12 {
		return fmt.Sprintf("%d", e.Year)
	}
	return fmt.Sprintf("%s %d", monthNames[e.Month-1], e.Year)
}
