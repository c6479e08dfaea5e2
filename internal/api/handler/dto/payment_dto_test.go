package dto

import (
	"testing"
	"time"

	"emi-service/internal/domain/payment"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSubmitPaymentRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     SubmitPaymentRequest
		wantErr string
	}{
		{
			name: "valid request",
			req:  SubmitPaymentRequest{AccountNumber: "ACC001", PaymentAmount: 100.50},
		},
		{
			name:    "missing account number",
			req:     SubmitPaymentRequest{PaymentAmount: 100},
			wantErr: "account_number is required",
		},
		{
			name:    "zero amount",
			req:     SubmitPaymentRequest{AccountNumber: "ACC001"},
			wantErr: "payment_amount is required",
		},
		{
			name:    "negative amount",
			req:     SubmitPaymentRequest{AccountNumber: "ACC001", PaymentAmount: -5},
			wantErr: "payment_amount must be greater than 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}

func TestSubmitPaymentRequestAmount(t *testing.T) {
	req := SubmitPaymentRequest{AccountNumber: "ACC001", PaymentAmount: 2500.75}
	assert.True(t, req.Amount().Equal(decimal.RequireFromString("2500.75")))
}

func TestNewReceiptResponse(t *testing.T) {
	paidAt := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	receipt := &payment.Receipt{
		PaymentID:     7,
		AccountNumber: "ACC001",
		AmountApplied: decimal.RequireFromString("250"),
		RemainingDue:  decimal.Zero,
		PaymentDate:   paidAt,
	}

	resp := NewReceiptResponse(receipt)

	assert.Equal(t, int64(7), resp.PaymentID)
	assert.Equal(t, "250.00", resp.AmountApplied, "money is rendered with two decimal places")
	assert.Equal(t, "0.00", resp.RemainingDue)
	assert.Equal(t, "2026-08-30T12:00:00Z", resp.PaymentDate)
	assert.Equal(t, "completed", resp.Status)
}

func TestNewPaymentListResponse(t *testing.T) {
	paidAt := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	payments := []*payment.PaymentWithCustomer{
		{
			Payment: payment.Payment{
				ID:            1,
				AccountNumber: "ACC001",
				PaymentDate:   paidAt,
				PaymentAmount: decimal.RequireFromString("2000.5"),
				Status:        payment.StatusCompleted,
			},
			CustomerName: "Arjun Mehta",
		},
	}

	resp := NewPaymentListResponse(payments)

	assert.Len(t, resp, 1)
	assert.Equal(t, "Arjun Mehta", resp[0].CustomerName)
	assert.Equal(t, "2000.50", resp[0].PaymentAmount)

	assert.NotNil(t, NewPaymentListResponse(nil))
	assert.Empty(t, NewPaymentListResponse(nil))
}
