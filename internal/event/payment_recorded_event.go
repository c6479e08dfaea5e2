package event

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentRecordedEvent struct {
	PaymentID     int64           `json:"paymentId"`
	AccountNumber string          `json:"accountNumber"`
	AmountApplied decimal.Decimal `json:"amountApplied"`
	RemainingDue  decimal.Decimal `json:"remainingDue"`
	Timestamp     time.Time       `json:"timestamp"`
}
