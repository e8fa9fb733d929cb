package dto

import "time"

// Items are checked by the stock engine, not by tags, so rejections stay specific.
type ItemInput struct {
	ID        string
	ProductID string
	Quantity  int
}

type CreateOutboundInput struct {
	Recipient string `validate:"required,max=200"`
	Address   string `validate:"max=1000"`
	Date      time.Time
	Items     []ItemInput
}

type UpdateOutboundInput struct {
	ID        string `validate:"required"`
	Recipient string `validate:"required,max=200"`
	Address   string `validate:"max=1000"`
	Date      time.Time
	Items     []ItemInput
}
