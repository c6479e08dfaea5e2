package handler

import (
	"emi-service/internal/api/handler/dto"
	"emi-service/internal/domain/customer"
	"emi-service/internal/domain/payment"
	"emi-service/internal/pkg/apperrors"
	"emi-service/internal/pkg/pagination"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type PaymentHandler struct {
	service payment.Service
	logger  *slog.Logger
}

func NewPaymentHandler(s payment.Service, l *slog.Logger) *PaymentHandler {
	if s == nil {
		panic("payment service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &PaymentHandler{
		service: s,
		logger:  l.With("component", "PaymentHandler"),
	}
}

func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("no request body")
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Default().Error("Failed to marshal JSON response", "error", err)
		http.Error(w, `{"success":false,"message":"Internal server error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

// respondError translates domain errors into the wire envelope. Internal
// detail (queries, driver errors) stays in the logs.
func respondError(w http.ResponseWriter, err error) {
	status, message := http.StatusInternalServerError, "An unexpected error occurred."
	var validationError *apperrors.ValidationError

	switch {
	case errors.Is(err, apperrors.ErrNotFound), errors.Is(err, customer.ErrNotFound):
		status, message = http.StatusNotFound, "Resource not found."
	case errors.Is(err, apperrors.ErrInvalidArgument), errors.Is(err, apperrors.ErrValidation):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, apperrors.ErrInvalidPaymentAmount):
		status, message = http.StatusBadRequest, err.Error()
	case errors.As(err, &validationError):
		status, message = http.StatusBadRequest, validationError.Message
	default:
		slog.Default().Error("Unhandled internal error", "error", err)
	}

	respondJSON(w, status, dto.NewErrorResponse(message))
}

func paginationFromRequest(r *http.Request) pagination.Params {
	q := r.URL.Query()
	return pagination.Parse(q.Get("page"), q.Get("limit"))
}

// SubmitPayment handles POST /payments
// @Summary Submit an EMI payment
// @Description Records a completed payment for an account and reduces its outstanding due atomically. Overpayment clamps the due at zero.
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body dto.SubmitPaymentRequest true "Payment submission payload"
// @Success 200 {object} dto.SuccessResponse "Payment recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload (missing account, non-positive amount)"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /payments [post]
func (h *PaymentHandler) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received submit payment request")

	var req dto.SubmitPaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		h.logger.WarnContext(r.Context(), "Payment request validation failed", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrValidation, err))
		return
	}
	h.logger.DebugContext(r.Context(), "Request validation passed")

	receipt, err := h.service.SubmitPayment(r.Context(), req.AccountNumber, req.Amount())
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, apperrors.ErrNotFound) &&
			!errors.Is(err, apperrors.ErrValidation) &&
			!errors.Is(err, apperrors.ErrInvalidPaymentAmount) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to submit payment", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Payment submitted successfully", slog.Int64("paymentID", receipt.PaymentID))
	respondJSON(w, http.StatusOK, dto.NewSuccessResponse(dto.NewReceiptResponse(receipt)))
}

// ListPayments handles GET /payments
// @Summary List payments
// @Description Retrieves a paginated list of payments joined with the customer name, newest first.
// @Tags Payments
// @Produce json
// @Param page query int false "Page number (defaults to 1)"
// @Param limit query int false "Page size (defaults to 10, capped at 100)"
// @Success 200 {object} dto.SuccessResponse "Paginated payment list"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /payments [get]
func (h *PaymentHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received list payments request")

	params := paginationFromRequest(r)
	payments, page, err := h.service.ListPayments(r.Context(), params)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to list payments", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Payments listed successfully", slog.Int("count", len(payments)))
	respondJSON(w, http.StatusOK, dto.NewListResponse(dto.NewPaymentListResponse(payments), page))
}

// GetPaymentHistory handles GET /payments/{accountNumber}
// @Summary Payment history for an account
// @Description Retrieves all payments for one account, newest first. Unknown accounts yield an empty list, not a 404.
// @Tags Payments
// @Produce json
// @Param accountNumber path string true "Account number"
// @Success 200 {object} dto.SuccessResponse "Payment history (possibly empty)"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /payments/{accountNumber} [get]
func (h *PaymentHandler) GetPaymentHistory(w http.ResponseWriter, r *http.Request) {
	accountNumber := chi.URLParam(r, "accountNumber")
	h.logger.DebugContext(r.Context(), "Received payment history request")

	payments, err := h.service.GetPaymentHistory(r.Context(), accountNumber)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to get payment history", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Payment history retrieved successfully", slog.Int("count", len(payments)))
	respondJSON(w, http.StatusOK, dto.NewSuccessResponse(dto.NewPaymentListResponse(payments)))
}
