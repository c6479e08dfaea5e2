package customer

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("customer not found")

type Repository interface {
	FindByAccountNumber(ctx context.Context, accountNumber string) (*Customer, error)

	List(ctx context.Context, limit, offset int) ([]*Customer, error)

	Count(ctx context.Context) (int64, error)
}
