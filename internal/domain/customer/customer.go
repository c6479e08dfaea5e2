package customer

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer is a loan account holder. AccountNumber is the external business
// key; ID is the store-assigned surrogate and never leaves the service.
type Customer struct {
	ID              int64
	AccountNumber   string
	CustomerName    string
	IssueDate       time.Time
	InterestRate    decimal.Decimal
	TenureMonths    int
	EMIDue          decimal.Decimal
	TotalLoanAmount decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ApplyPayment reduces the outstanding due by amount, clamping at zero.
// Overpayment beyond the due is absorbed, not tracked as credit.
func (c *Customer) ApplyPayment(amount decimal.Decimal) decimal.Decimal {
	newDue := c.EMIDue.Sub(amount)
	if newDue.IsNegative() {
		newDue = decimal.Zero
	}
	c.EMIDue = newDue
	c.UpdatedAt = time.Now()
	return newDue
}
