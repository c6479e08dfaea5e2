package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"emi-service/internal/domain/customer"
	"emi-service/internal/event"
	"emi-service/internal/infrastructure/monitoring"
	"emi-service/internal/pkg/apperrors"
	"emi-service/internal/pkg/pagination"

	"github.com/shopspring/decimal"
)

type Service interface {
	// SubmitPayment atomically records a payment for an account and reduces
	// its outstanding due. No partial effect survives a failed attempt.
	SubmitPayment(ctx context.Context, accountNumber string, amount decimal.Decimal) (*Receipt, error)

	ListPayments(ctx context.Context, params pagination.Params) ([]*PaymentWithCustomer, pagination.Page, error)

	// GetPaymentHistory returns all payments for an account, newest first. An
	// unknown account yields an empty slice, not an error; the account's
	// existence is deliberately not checked here.
	GetPaymentHistory(ctx context.Context, accountNumber string) ([]*PaymentWithCustomer, error)
}

var _ Service = (*paymentService)(nil)

type paymentService struct {
	repo   Repository
	pub    event.Publisher
	logger *slog.Logger
}

func NewService(repo Repository, pub event.Publisher, logger *slog.Logger) Service {
	if repo == nil {
		panic("payment repository cannot be nil")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewService, using default stderr handler")
	}
	return &paymentService{
		repo:   repo,
		pub:    pub,
		logger: logger.With(slog.String("component", "paymentService")),
	}
}

func (s *paymentService) SubmitPayment(ctx context.Context, accountNumber string, amount decimal.Decimal) (receipt *Receipt, err error) {
	s.logger.InfoContext(ctx, "Submitting payment", "accountNumber", accountNumber, "amount", amount)

	// Input validation happens before any store access.
	accountNumber = strings.TrimSpace(accountNumber)
	if accountNumber == "" {
		return nil, fmt.Errorf("%w: account number cannot be empty", apperrors.ErrValidation)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be greater than zero, got %s",
			apperrors.ErrInvalidPaymentAmount, amount.String())
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to begin transaction", "error", err)
		return nil, fmt.Errorf("%w: could not begin transaction: %v", apperrors.ErrInternalServer, err)
	}

	defer func() {
		status := "failure_internal"
		if errors.Is(err, apperrors.ErrNotFound) {
			status = "failure_not_found"
		}
		if p := recover(); p != nil {
			s.logger.Error("Panic occurred during payment processing", "accountNumber", accountNumber, "error", p)
			monitoring.RecordPayment(status)
			_ = s.repo.RollbackTx(ctx, tx)
			panic(p)
		} else if err != nil {
			s.logger.Error("Rolling back transaction due to error", "error", err)
			monitoring.RecordPayment(status)
			_ = s.repo.RollbackTx(ctx, tx)
		}
	}()

	cust, err := s.repo.FindCustomerForUpdate(ctx, tx, accountNumber)
	if err != nil {
		if errors.Is(err, customer.ErrNotFound) || errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "Payment submitted for unknown account", "accountNumber", accountNumber)
			return nil, fmt.Errorf("%w: customer with account number %s not found", apperrors.ErrNotFound, accountNumber)
		}
		s.logger.ErrorContext(ctx, "Failed to lock customer row for payment", "error", err)
		return nil, fmt.Errorf("%w: could not look up customer: %v", apperrors.ErrInternalServer, err)
	}

	p := &Payment{
		CustomerID:    cust.ID,
		AccountNumber: cust.AccountNumber,
		PaymentAmount: amount,
		Status:        StatusCompleted,
	}
	err = s.repo.InsertPaymentInTx(ctx, tx, p)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to insert payment row", "error", err)
		return nil, fmt.Errorf("%w: could not record payment: %v", apperrors.ErrInternalServer, err)
	}

	remainingDue := cust.ApplyPayment(amount)

	err = s.repo.UpdateCustomerDueInTx(ctx, tx, cust.ID, remainingDue)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to update customer due balance", "error", err)
		return nil, fmt.Errorf("%w: could not update due balance: %v", apperrors.ErrInternalServer, err)
	}

	err = s.repo.CommitTx(ctx, tx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to commit payment transaction", "error", err)
		return nil, fmt.Errorf("%w: could not commit transaction: %v", apperrors.ErrInternalServer, err)
	}

	monitoring.RecordPayment("success")
	s.logger.InfoContext(ctx, "Payment processed successfully",
		"paymentID", p.ID, "accountNumber", accountNumber, "remainingDue", remainingDue)

	receipt = &Receipt{
		PaymentID:     p.ID,
		AccountNumber: cust.AccountNumber,
		AmountApplied: amount,
		RemainingDue:  remainingDue,
		PaymentDate:   p.PaymentDate,
	}
	s.publishPaymentRecorded(ctx, receipt)
	return receipt, nil
}

// publishPaymentRecorded is best effort: the payment is already committed, so
// a broker failure is logged and never surfaced to the caller.
func (s *paymentService) publishPaymentRecorded(ctx context.Context, r *Receipt) {
	if s.pub == nil {
		return
	}
	evt := event.PaymentRecordedEvent{
		PaymentID:     r.PaymentID,
		AccountNumber: r.AccountNumber,
		AmountApplied: r.AmountApplied,
		RemainingDue:  r.RemainingDue,
		Timestamp:     time.Now(),
	}
	if pubErr := s.pub.PublishPaymentRecorded(ctx, evt); pubErr != nil {
		s.logger.ErrorContext(ctx, "Payment recorded, but FAILED to publish event", slog.Any("error", pubErr))
	} else {
		s.logger.InfoContext(ctx, "Successfully published payment recorded event")
	}
}

func (s *paymentService) ListPayments(ctx context.Context, params pagination.Params) ([]*PaymentWithCustomer, pagination.Page, error) {
	s.logger.InfoContext(ctx, "Listing payments", slog.Int("page", params.Page), slog.Int("limit", params.Limit))

	total, err := s.repo.Count(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error counting payments", slog.Any("error", err))
		return nil, pagination.Page{}, fmt.Errorf("failed to count payments: %w", err)
	}

	payments, err := s.repo.List(ctx, params.Limit, params.Offset())
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing payments", slog.Any("error", err))
		return nil, pagination.Page{}, fmt.Errorf("failed to list payments: %w", err)
	}

	s.logger.InfoContext(ctx, "Successfully listed payments", slog.Int("count", len(payments)))
	return payments, pagination.NewOffsetPage(params, total, len(payments)), nil
}

func (s *paymentService) GetPaymentHistory(ctx context.Context, accountNumber string) ([]*PaymentWithCustomer, error) {
	s.logger.InfoContext(ctx, "Getting payment history", "accountNumber", accountNumber)

	accountNumber = strings.TrimSpace(accountNumber)
	if accountNumber == "" {
		return nil, fmt.Errorf("%w: account number cannot be empty", apperrors.ErrInvalidArgument)
	}

	payments, err := s.repo.ListByAccountNumber(ctx, accountNumber)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error getting payment history", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get payment history for %s: %w", accountNumber, err)
	}

	s.logger.InfoContext(ctx, "Successfully retrieved payment history", slog.Int("count", len(payments)))
	return payments, nil
}
