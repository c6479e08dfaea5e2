package dto

import (
	"time"

	"emi-service/internal/domain/customer"
)

// CustomerResponse is the wire projection of a customer. The surrogate id is
// deliberately excluded; account_number is the external identity.
type CustomerResponse struct {
	AccountNumber   string    `json:"account_number"`
	CustomerName    string    `json:"customer_name"`
	IssueDate       string    `json:"issue_date"`
	InterestRate    string    `json:"interest_rate"`
	Tenure          int       `json:"tenure"`
	EMIDue          string    `json:"emi_due"`
	TotalLoanAmount string    `json:"total_loan_amount"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func NewCustomerResponse(cust *customer.Customer) CustomerResponse {
	if cust == nil {
		return CustomerResponse{}
	}

	return CustomerResponse{
		AccountNumber:   cust.AccountNumber,
		CustomerName:    cust.CustomerName,
		IssueDate:       cust.IssueDate.Format(time.RFC3339[:10]),
		InterestRate:    cust.InterestRate.String(),
		Tenure:          cust.TenureMonths,
		EMIDue:          cust.EMIDue.StringFixed(2),
		TotalLoanAmount: cust.TotalLoanAmount.StringFixed(2),
		CreatedAt:       cust.CreatedAt,
		UpdatedAt:       cust.UpdatedAt,
	}
}

func NewCustomerListResponse(customers []*customer.Customer) []CustomerResponse {
	resp := make([]CustomerResponse, len(customers))
	for i, cust := range customers {
		resp[i] = NewCustomerResponse(cust)
	}
	return resp
}
