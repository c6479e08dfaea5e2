package dto

import "emi-service/internal/pkg/pagination"

// SuccessResponse is the envelope on every 2xx body. Data is always present,
// even when it is an empty list.
type SuccessResponse struct {
	Success    bool             `json:"success"`
	Data       any              `json:"data"`
	Pagination *pagination.Page `json:"pagination,omitempty"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

func NewSuccessResponse(data any) SuccessResponse {
	return SuccessResponse{Success: true, Data: data}
}

func NewListResponse(data any, page pagination.Page) SuccessResponse {
	return SuccessResponse{Success: true, Data: data, Pagination: &page}
}

func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Success: false, Message: message}
}
