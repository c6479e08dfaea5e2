package dto

import (
	"fmt"
	"time"

	"emi-service/internal/domain/payment"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type SubmitPaymentRequest struct {
	AccountNumber string  `json:"account_number" validate:"required"`
	PaymentAmount float64 `json:"payment_amount" validate:"required,gt=0"`
}

func (r *SubmitPaymentRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok && len(ve) > 0 {
			e := ve[0]
			switch e.Tag() {
			case "required":
				return fmt.Errorf("%s is required", jsonFieldName(e.Field()))
			case "gt":
				return fmt.Errorf("%s must be greater than %s", jsonFieldName(e.Field()), e.Param())
			default:
				return fmt.Errorf("%s failed %s validation", jsonFieldName(e.Field()), e.Tag())
			}
		}
		return err
	}
	return nil
}

func (r *SubmitPaymentRequest) Amount() decimal.Decimal {
	return decimal.NewFromFloat(r.PaymentAmount)
}

func jsonFieldName(field string) string {
	switch field {
	case "AccountNumber":
		return "account_number"
	case "PaymentAmount":
		return "payment_amount"
	default:
		return field
	}
}

// ReceiptResponse is the body of a successful POST /payments.
type ReceiptResponse struct {
	PaymentID     int64  `json:"payment_id"`
	AccountNumber string `json:"account_number"`
	AmountApplied string `json:"amount_applied"`
	RemainingDue  string `json:"remaining_due"`
	PaymentDate   string `json:"payment_date"`
	Status        string `json:"status"`
}

func NewReceiptResponse(r *payment.Receipt) ReceiptResponse {
	return ReceiptResponse{
		PaymentID:     r.PaymentID,
		AccountNumber: r.AccountNumber,
		AmountApplied: r.AmountApplied.StringFixed(2),
		RemainingDue:  r.RemainingDue.StringFixed(2),
		PaymentDate:   r.PaymentDate.Format(time.RFC3339),
		Status:        string(payment.StatusCompleted),
	}
}

type PaymentResponse struct {
	PaymentID     int64  `json:"payment_id"`
	AccountNumber string `json:"account_number"`
	CustomerName  string `json:"customer_name"`
	PaymentDate   string `json:"payment_date"`
	PaymentAmount string `json:"payment_amount"`
	Status        string `json:"status"`
}

func NewPaymentResponse(p *payment.PaymentWithCustomer) PaymentResponse {
	return PaymentResponse{
		PaymentID:     p.ID,
		AccountNumber: p.AccountNumber,
		CustomerName:  p.CustomerName,
		PaymentDate:   p.PaymentDate.Format(time.RFC3339),
		PaymentAmount: p.PaymentAmount.StringFixed(2),
		Status:        string(p.Status),
	}
}

func NewPaymentListResponse(payments []*payment.PaymentWithCustomer) []PaymentResponse {
	resp := make([]PaymentResponse, len(payments))
	for i, p := range payments {
		resp[i] = NewPaymentResponse(p)
	}
	return resp
}
