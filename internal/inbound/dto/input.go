package dto

import "time"

// Date defaults to the current time when zero.
type CreateInboundInput struct {
	ProductID string `validate:"required"`
	Quantity  int    `validate:"gt=0"`
	Date      time.Time
}

type UpdateInboundInput struct {
	ID        string `validate:"required"`
	ProductID string `validate:"required"`
	Quantity  int    `validate:"gt=0"`
	Date      time.Time
}
