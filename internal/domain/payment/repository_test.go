package payment

import (
	"context"

	"emi-service/internal/domain/customer"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

type TxMock struct {
	pgx.Tx
}

func (_m *MockRepository) FindCustomerForUpdate(ctx context.Context, tx pgx.Tx, accountNumber string) (*customer.Customer, error) {
	ret := _m.Called(ctx, tx, accountNumber)

	var r0 *customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*customer.Customer)
	}

	return r0, ret.Error(1)
}

func (_m *MockRepository) InsertPaymentInTx(ctx context.Context, tx pgx.Tx, p *Payment) error {
	ret := _m.Called(ctx, tx, p)
	return ret.Error(0)
}

func (_m *MockRepository) UpdateCustomerDueInTx(ctx context.Context, tx pgx.Tx, customerID int64, newDue decimal.Decimal) error {
	ret := _m.Called(ctx, tx, customerID, newDue)
	return ret.Error(0)
}

func (_m *MockRepository) List(ctx context.Context, limit, offset int) ([]*PaymentWithCustomer, error) {
	ret := _m.Called(ctx, limit, offset)

	var r0 []*PaymentWithCustomer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*PaymentWithCustomer)
	}

	return r0, ret.Error(1)
}

func (_m *MockRepository) Count(ctx context.Context) (int64, error) {
	ret := _m.Called(ctx)
	return ret.Get(0).(int64), ret.Error(1)
}

func (_m *MockRepository) ListByAccountNumber(ctx context.Context, accountNumber string) ([]*PaymentWithCustomer, error) {
	ret := _m.Called(ctx, accountNumber)

	var r0 []*PaymentWithCustomer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*PaymentWithCustomer)
	}

	return r0, ret.Error(1)
}

func (_m *MockRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	ret := _m.Called(ctx)

	var r0 pgx.Tx
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(pgx.Tx)
	}

	return r0, ret.Error(1)
}

func (_m *MockRepository) CommitTx(ctx context.Context, tx pgx.Tx) error {
	ret := _m.Called(ctx, tx)
	return ret.Error(0)
}

func (_m *MockRepository) RollbackTx(ctx context.Context, tx pgx.Tx) error {
	ret := _m.Called(ctx, tx)
	return ret.Error(0)
}

var _ Repository = (*MockRepository)(nil)
