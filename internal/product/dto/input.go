package dto

import "github.com/shopspring/decimal"

type CreateProductInput struct {
	Code      string `validate:"required,max=64"`
	Name      string `validate:"required,max=200"`
	Unit      string `validate:"required,max=32"`
	UnitPrice decimal.Decimal
}

type UpdateProductInput struct {
	ID        string `validate:"required"`
	Code      string `validate:"required,max=64"`
	Name      string `validate:"required,max=200"`
	Unit      string `validate:"required,max=32"`
	UnitPrice decimal.Decimal
}
