package handler

import (
	"emi-service/internal/api/handler/dto"
	"emi-service/internal/domain/customer"
	"emi-service/internal/pkg/apperrors"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

type CustomerHandler struct {
	service customer.Service
	logger  *slog.Logger
}

func NewCustomerHandler(s customer.Service, l *slog.Logger) *CustomerHandler {
	if s == nil {
		panic("customer service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &CustomerHandler{
		service: s,
		logger:  l.With("component", "CustomerHandler"),
	}
}

func getAccountNumberFromURL(r *http.Request) (string, error) {
	accountNumber := strings.TrimSpace(chi.URLParam(r, "accountNumber"))
	if accountNumber == "" {
		return "", fmt.Errorf("%w: accountNumber not found in URL path", apperrors.ErrInvalidArgument)
	}
	return accountNumber, nil
}

// ListCustomers handles GET /customers
// @Summary List customers
// @Description Retrieves a paginated list of customers ordered by account number.
// @Tags Customers
// @Produce json
// @Param page query int false "Page number (defaults to 1)"
// @Param limit query int false "Page size (defaults to 10, capped at 100)"
// @Success 200 {object} dto.SuccessResponse "Paginated customer list"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers [get]
func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received list customers request")

	params := paginationFromRequest(r)
	customers, page, err := h.service.ListCustomers(r.Context(), params)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to list customers", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Customers listed successfully", slog.Int("count", len(customers)))
	respondJSON(w, http.StatusOK, dto.NewListResponse(dto.NewCustomerListResponse(customers), page))
}

// GetCustomer handles GET /customers/{accountNumber}
// @Summary Retrieve customer details
// @Description Retrieves a single customer by account number.
// @Tags Customers
// @Produce json
// @Param accountNumber path string true "Account number"
// @Success 200 {object} dto.SuccessResponse "Customer details retrieved"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers/{accountNumber} [get]
func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	accountNumber, err := getAccountNumberFromURL(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get account number from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.DebugContext(r.Context(), "Received get customer request")

	domainCustomer, err := h.service.GetCustomer(r.Context(), accountNumber)
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, customer.ErrNotFound) && !errors.Is(err, apperrors.ErrNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to get customer", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Customer retrieved successfully")
	respondJSON(w, http.StatusOK, dto.NewSuccessResponse(dto.NewCustomerResponse(domainCustomer)))
}
