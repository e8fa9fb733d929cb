package product

import (
	"context"
	"errors"

	"github.com/fekuna/omnipos-warehouse/internal/model"
	"github.com/fekuna/omnipos-warehouse/internal/product/dto"
)

var (
	ErrNotFound      = errors.New("product not found")
	ErrDuplicateCode = errors.New("product code already exists")
	ErrNegativePrice = errors.New("unit price must not be negative")
)

// CodeError names the code that collided. It unwraps to ErrDuplicateCode.
type CodeError struct {
	Code string
}

func (e *CodeError) Error() string { return ErrDuplicateCode.Error() + ": " + e.Code }

func (e *CodeError) Unwrap() error { return ErrDuplicateCode }

type Repository interface {
	// Create and Update reject a code already used by a different product.
	Create(ctx context.Context, product *model.Product) error
	Update(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id string) (*model.Product, error)
	FindByCode(ctx context.Context, code string) (*model.Product, error)
	FindByIDs(ctx context.Context, ids []string) ([]model.Product, error)
	FindAll(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	Delete(ctx context.Context, id string) error
	BulkDelete(ctx context.Context, ids []string) (int, error)
}
