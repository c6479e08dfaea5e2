package customer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"emi-service/internal/pkg/apperrors"
	"emi-service/internal/pkg/pagination"
)

type Service interface {
	ListCustomers(ctx context.Context, params pagination.Params) ([]*Customer, pagination.Page, error)
	GetCustomer(ctx context.Context, accountNumber string) (*Customer, error)
}

var _ Service = (*customerService)(nil)

type customerService struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) Service {
	if repo == nil {
		panic("customer repository cannot be nil")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewService, using default stderr handler")
	}
	return &customerService{
		repo:   repo,
		logger: logger.With(slog.String("component", "customerService")),
	}
}

func (s *customerService) ListCustomers(ctx context.Context, params pagination.Params) ([]*Customer, pagination.Page, error) {
	s.logger.InfoContext(ctx, "Listing customers", slog.Int("page", params.Page), slog.Int("limit", params.Limit))

	total, err := s.repo.Count(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error counting customers", slog.Any("error", err))
		return nil, pagination.Page{}, fmt.Errorf("failed to count customers: %w", err)
	}

	customers, err := s.repo.List(ctx, params.Limit, params.Offset())
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing customers", slog.Any("error", err))
		return nil, pagination.Page{}, fmt.Errorf("failed to list customers: %w", err)
	}

	s.logger.InfoContext(ctx, "Successfully listed customers", slog.Int("count", len(customers)), slog.Int64("total", total))
	return customers, pagination.NewPage(params, total), nil
}

func (s *customerService) GetCustomer(ctx context.Context, accountNumber string) (*Customer, error) {
	s.logger.InfoContext(ctx, "Attempting to get customer by account number")

	accountNumber = strings.TrimSpace(accountNumber)
	if accountNumber == "" {
		return nil, fmt.Errorf("%w: account number cannot be empty", apperrors.ErrInvalidArgument)
	}

	cust, err := s.repo.FindByAccountNumber(ctx, accountNumber)
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "Customer not found by repository", slog.String("accountNumber", accountNumber))
			return nil, ErrNotFound
		}
		s.logger.ErrorContext(ctx, "Repository error finding customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get customer %s: %w", accountNumber, err)
	}

	s.logger.InfoContext(ctx, "Successfully retrieved customer")
	return cust, nil
}
