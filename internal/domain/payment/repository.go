package payment

import (
	"context"

	"emi-service/internal/domain/customer"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type Repository interface {
	// FindCustomerForUpdate locks the customer row (SELECT ... FOR UPDATE) so
	// concurrent payments against the same account serialize on the store.
	FindCustomerForUpdate(ctx context.Context, tx pgx.Tx, accountNumber string) (*customer.Customer, error)

	InsertPaymentInTx(ctx context.Context, tx pgx.Tx, p *Payment) error

	UpdateCustomerDueInTx(ctx context.Context, tx pgx.Tx, customerID int64, newDue decimal.Decimal) error

	List(ctx context.Context, limit, offset int) ([]*PaymentWithCustomer, error)

	Count(ctx context.Context) (int64, error)

	ListByAccountNumber(ctx context.Context, accountNumber string) ([]*PaymentWithCustomer, error)

	BeginTx(ctx context.Context) (pgx.Tx, error)

	CommitTx(ctx context.Context, tx pgx.Tx) error

	RollbackTx(ctx context.Context, tx pgx.Tx) error
}
