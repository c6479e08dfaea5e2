package payment

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusCompleted Status = "completed"
	StatusPending   Status = "pending"
	StatusFailed    Status = "failed"
)

// Payment is an immutable record of a single EMI payment. AccountNumber is a
// denormalized copy of the customer's business key at payment time.
type Payment struct {
	ID            int64
	CustomerID    int64
	AccountNumber string
	PaymentDate   time.Time
	PaymentAmount decimal.Decimal
	Status        Status
	CreatedAt     time.Time
}

// PaymentWithCustomer joins a payment with the owning customer's name, the
// shape returned by the list and history queries.
type PaymentWithCustomer struct {
	Payment
	CustomerName string
}

// Receipt is the result of a successful payment submission.
type Receipt struct {
	PaymentID     int64
	AccountNumber string
	AmountApplied decimal.Decimal
	RemainingDue  decimal.Decimal
	PaymentDate   time.Time
}
