package payment

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"emi-service/internal/domain/customer"
	"emi-service/internal/event"
	"emi-service/internal/pkg/apperrors"
	"emi-service/internal/pkg/pagination"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type MockPublisher struct {
	mock.Mock
}

func (_m *MockPublisher) PublishPaymentRecorded(ctx context.Context, evt event.PaymentRecordedEvent) error {
	ret := _m.Called(ctx, evt)
	return ret.Error(0)
}

func setupTest() (*MockRepository, Service) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, nil, testLogger)
	return mockRepo, service
}

func TestSubmitPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo, service := setupTest()
		tx := &TxMock{}
		cust := testCustomer("ACC001", "5000.00")

		mockRepo.On("BeginTx", ctx).Return(tx, nil).Once()
		mockRepo.On("FindCustomerForUpdate", ctx, tx, "ACC001").Return(cust, nil).Once()
		mockRepo.On("InsertPaymentInTx", ctx, tx, mock.AnythingOfType("*payment.Payment")).Return(nil).Once()
		mockRepo.On("UpdateCustomerDueInTx", ctx, tx, cust.ID, decimalEq("3000.00")).Return(nil).Once()
		mockRepo.On("CommitTx", ctx, tx).Return(nil).Once()

		receipt, err := service.SubmitPayment(ctx, "ACC001", decimal.NewFromFloat(2000))

		assert.NoError(t, err)
		assert.NotNil(t, receipt)
		assert.Equal(t, "ACC001", receipt.AccountNumber)
		assert.True(t, receipt.RemainingDue.Equal(decimal.RequireFromString("3000.00")),
			"remaining due should be 3000.00, got %s", receipt.RemainingDue)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Exact Payment Clears Due", func(t *testing.T) {
		mockRepo, service := setupTest()
		tx := &TxMock{}
		cust := testCustomer("ACC001", "5000.00")

		mockRepo.On("BeginTx", ctx).Return(tx, nil).Once()
		mockRepo.On("FindCustomerForUpdate", ctx, tx, "ACC001").Return(cust, nil).Once()
		mockRepo.On("InsertPaymentInTx", ctx, tx, mock.Anything).Return(nil).Once()
		mockRepo.On("UpdateCustomerDueInTx", ctx, tx, cust.ID, decimalEq("0")).Return(nil).Once()
		mockRepo.On("CommitTx", ctx, tx).Return(nil).Once()

		receipt, err := service.SubmitPayment(ctx, "ACC001", decimal.RequireFromString("5000.00"))

		assert.NoError(t, err)
		assert.True(t, receipt.RemainingDue.IsZero())
		mockRepo.AssertExpectations(t)
	})

	t.Run("Overpayment Clamps At Zero", func(t *testing.T) {
		mockRepo, service := setupTest()
		tx := &TxMock{}
		cust := testCustomer("ACC003", "100.00")

		mockRepo.On("BeginTx", ctx).Return(tx, nil).Once()
		mockRepo.On("FindCustomerForUpdate", ctx, tx, "ACC003").Return(cust, nil).Once()
		mockRepo.On("InsertPaymentInTx", ctx, tx, mock.Anything).Return(nil).Once()
		mockRepo.On("UpdateCustomerDueInTx", ctx, tx, cust.ID, decimalEq("0")).Return(nil).Once()
		mockRepo.On("CommitTx", ctx, tx).Return(nil).Once()

		receipt, err := service.SubmitPayment(ctx, "ACC003", decimal.RequireFromString("250.00"))

		assert.NoError(t, err)
		assert.True(t, receipt.RemainingDue.IsZero(), "overpayment must clamp the due at zero")
		assert.True(t, receipt.AmountApplied.Equal(decimal.RequireFromString("250.00")))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Empty Account Number - No Store Access", func(t *testing.T) {
		mockRepo, service := setupTest()

		receipt, err := service.SubmitPayment(ctx, "   ", decimal.NewFromInt(100))

		assert.Nil(t, receipt)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
		mockRepo.AssertNotCalled(t, "BeginTx", mock.Anything)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Non-Positive Amount - No Store Access", func(t *testing.T) {
		mockRepo, service := setupTest()

		for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-5)} {
			receipt, err := service.SubmitPayment(ctx, "ACC002", amount)

			assert.Nil(t, receipt)
			assert.ErrorIs(t, err, apperrors.ErrInvalidPaymentAmount)
		}
		mockRepo.AssertNotCalled(t, "BeginTx", mock.Anything)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Unknown Account - Rolls Back", func(t *testing.T) {
		mockRepo, service := setupTest()
		tx := &TxMock{}

		mockRepo.On("BeginTx", ctx).Return(tx, nil).Once()
		mockRepo.On("FindCustomerForUpdate", ctx, tx, "NOPE").Return(nil, apperrors.ErrNotFound).Once()
		mockRepo.On("RollbackTx", ctx, tx).Return(nil).Once()

		receipt, err := service.SubmitPayment(ctx, "NOPE", decimal.NewFromInt(100))

		assert.Nil(t, receipt)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Insert Failure - Rolls Back", func(t *testing.T) {
		mockRepo, service := setupTest()
		tx := &TxMock{}
		cust := testCustomer("ACC001", "5000.00")

		mockRepo.On("BeginTx", ctx).Return(tx, nil).Once()
		mockRepo.On("FindCustomerForUpdate", ctx, tx, "ACC001").Return(cust, nil).Once()
		mockRepo.On("InsertPaymentInTx", ctx, tx, mock.Anything).Return(errors.New("insert failed")).Once()
		mockRepo.On("RollbackTx", ctx, tx).Return(nil).Once()

		receipt, err := service.SubmitPayment(ctx, "ACC001", decimal.NewFromInt(100))

		assert.Nil(t, receipt)
		assert.ErrorIs(t, err, apperrors.ErrInternalServer)
		mockRepo.AssertNotCalled(t, "CommitTx", mock.Anything, mock.Anything)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Due Update Failure - Rolls Back", func(t *testing.T) {
		mockRepo, service := setupTest()
		tx := &TxMock{}
		cust := testCustomer("ACC001", "5000.00")

		mockRepo.On("BeginTx", ctx).Return(tx, nil).Once()
		mockRepo.On("FindCustomerForUpdate", ctx, tx, "ACC001").Return(cust, nil).Once()
		mockRepo.On("InsertPaymentInTx", ctx, tx, mock.Anything).Return(nil).Once()
		mockRepo.On("UpdateCustomerDueInTx", ctx, tx, cust.ID, mock.Anything).Return(errors.New("update failed")).Once()
		mockRepo.On("RollbackTx", ctx, tx).Return(nil).Once()

		receipt, err := service.SubmitPayment(ctx, "ACC001", decimal.NewFromInt(100))

		assert.Nil(t, receipt)
		assert.ErrorIs(t, err, apperrors.ErrInternalServer)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Commit Failure - Rolls Back", func(t *testing.T) {
		mockRepo, service := setupTest()
		tx := &TxMock{}
		cust := testCustomer("ACC001", "5000.00")

		mockRepo.On("BeginTx", ctx).Return(tx, nil).Once()
		mockRepo.On("FindCustomerForUpdate", ctx, tx, "ACC001").Return(cust, nil).Once()
		mockRepo.On("InsertPaymentInTx", ctx, tx, mock.Anything).Return(nil).Once()
		mockRepo.On("UpdateCustomerDueInTx", ctx, tx, cust.ID, mock.Anything).Return(nil).Once()
		mockRepo.On("CommitTx", ctx, tx).Return(errors.New("commit failed")).Once()
		mockRepo.On("RollbackTx", ctx, tx).Return(nil).Once()

		receipt, err := service.SubmitPayment(ctx, "ACC001", decimal.NewFromInt(100))

		assert.Nil(t, receipt)
		assert.ErrorIs(t, err, apperrors.ErrInternalServer)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Begin Failure", func(t *testing.T) {
		mockRepo, service := setupTest()

		mockRepo.On("BeginTx", ctx).Return(nil, errors.New("pool exhausted")).Once()

		receipt, err := service.SubmitPayment(ctx, "ACC001", decimal.NewFromInt(100))

		assert.Nil(t, receipt)
		assert.ErrorIs(t, err, apperrors.ErrInternalServer)
		mockRepo.AssertNotCalled(t, "RollbackTx", mock.Anything, mock.Anything)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Publisher Failure Does Not Fail Payment", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockPub := new(MockPublisher)
		service := NewService(mockRepo, mockPub, testLogger)
		tx := &TxMock{}
		cust := testCustomer("ACC001", "5000.00")

		mockRepo.On("BeginTx", ctx).Return(tx, nil).Once()
		mockRepo.On("FindCustomerForUpdate", ctx, tx, "ACC001").Return(cust, nil).Once()
		mockRepo.On("InsertPaymentInTx", ctx, tx, mock.Anything).Return(nil).Once()
		mockRepo.On("UpdateCustomerDueInTx", ctx, tx, cust.ID, mock.Anything).Return(nil).Once()
		mockRepo.On("CommitTx", ctx, tx).Return(nil).Once()
		mockPub.On("PublishPaymentRecorded", ctx, mock.Anything).Return(errors.New("broker down")).Once()

		receipt, err := service.SubmitPayment(ctx, "ACC001", decimal.NewFromInt(100))

		assert.NoError(t, err)
		assert.NotNil(t, receipt)
		mockRepo.AssertExpectations(t)
		mockPub.AssertExpectations(t)
	})
}

func TestListPayments(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo, service := setupTest()
		params := pagination.Params{Page: 2, Limit: 2}
		expected := []*PaymentWithCustomer{
			{Payment: Payment{ID: 3, AccountNumber: "ACC003"}, CustomerName: "Rahul Verma"},
			{Payment: Payment{ID: 4, AccountNumber: "ACC004"}, CustomerName: "Sneha Iyer"},
		}

		mockRepo.On("Count", ctx).Return(int64(5), nil).Once()
		mockRepo.On("List", ctx, 2, 2).Return(expected, nil).Once()

		payments, page, err := service.ListPayments(ctx, params)

		assert.NoError(t, err)
		assert.Equal(t, expected, payments)
		assert.Equal(t, 2, page.Page)
		assert.Equal(t, int64(5), page.Total)
		assert.Equal(t, 3, page.TotalPages)
		assert.True(t, page.HasMore)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Last Page Has No More", func(t *testing.T) {
		mockRepo, service := setupTest()
		params := pagination.Params{Page: 3, Limit: 2}

		mockRepo.On("Count", ctx).Return(int64(5), nil).Once()
		mockRepo.On("List", ctx, 2, 4).Return([]*PaymentWithCustomer{{}}, nil).Once()

		_, page, err := service.ListPayments(ctx, params)

		assert.NoError(t, err)
		assert.False(t, page.HasMore)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error - Count Failure", func(t *testing.T) {
		mockRepo, service := setupTest()
		dbError := errors.New("count failed")

		mockRepo.On("Count", ctx).Return(int64(0), dbError).Once()

		payments, _, err := service.ListPayments(ctx, pagination.Params{Page: 1, Limit: 10})

		assert.Nil(t, payments)
		assert.ErrorIs(t, err, dbError)
		mockRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error - List Failure", func(t *testing.T) {
		mockRepo, service := setupTest()
		dbError := errors.New("query failed")

		mockRepo.On("Count", ctx).Return(int64(5), nil).Once()
		mockRepo.On("List", ctx, 10, 0).Return(nil, dbError).Once()

		payments, _, err := service.ListPayments(ctx, pagination.Params{Page: 1, Limit: 10})

		assert.Nil(t, payments)
		assert.ErrorIs(t, err, dbError)
		mockRepo.AssertExpectations(t)
	})
}

func TestGetPaymentHistory(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo, service := setupTest()
		expected := []*PaymentWithCustomer{
			{Payment: Payment{ID: 2, AccountNumber: "ACC001"}, CustomerName: "Arjun Mehta"},
			{Payment: Payment{ID: 1, AccountNumber: "ACC001"}, CustomerName: "Arjun Mehta"},
		}

		mockRepo.On("ListByAccountNumber", ctx, "ACC001").Return(expected, nil).Once()

		payments, err := service.GetPaymentHistory(ctx, "ACC001")

		assert.NoError(t, err)
		assert.Equal(t, expected, payments)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Unknown Account - Empty List, No Error", func(t *testing.T) {
		mockRepo, service := setupTest()

		mockRepo.On("ListByAccountNumber", ctx, "GHOST").Return([]*PaymentWithCustomer{}, nil).Once()

		payments, err := service.GetPaymentHistory(ctx, "GHOST")

		assert.NoError(t, err)
		assert.NotNil(t, payments)
		assert.Empty(t, payments)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Empty Account Number", func(t *testing.T) {
		mockRepo, service := setupTest()

		payments, err := service.GetPaymentHistory(ctx, "")

		assert.Nil(t, payments)
		assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
		mockRepo.AssertNotCalled(t, "ListByAccountNumber", mock.Anything, mock.Anything)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error - Repository Failure", func(t *testing.T) {
		mockRepo, service := setupTest()
		dbError := errors.New("query failed")

		mockRepo.On("ListByAccountNumber", ctx, "ACC001").Return(nil, dbError).Once()

		payments, err := service.GetPaymentHistory(ctx, "ACC001")

		assert.Nil(t, payments)
		assert.ErrorIs(t, err, dbError)
		mockRepo.AssertExpectations(t)
	})
}

func TestNewService(t *testing.T) {
	assert.Panics(t, func() {
		NewService(nil, nil, testLogger)
	})
}

func testCustomer(accountNumber, due string) *customer.Customer {
	return &customer.Customer{
		ID:            1,
		AccountNumber: accountNumber,
		CustomerName:  "Test Customer",
		EMIDue:        decimal.RequireFromString(due),
	}
}

// decimalEq matches a decimal argument by numeric value rather than identity,
// since ApplyPayment may produce a different internal exponent.
func decimalEq(want string) interface{} {
	target := decimal.RequireFromString(want)
	return mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(target)
	})
}
