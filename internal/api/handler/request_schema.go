package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type createRequestRequest struct {
	ServiceType string `json:"service_type" validate:"required,min=3,max=120"`
	Location    string `json:"location"     validate:"required,max=255"`
	Description string `json:"description"  validate:"max=2000"`
}

type updateRequestStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved in_progress completed rejected"`
}

// requestResponse is the transport view of a service request. It is
// intentionally separate from the domain type so the JSON contract is not
// coupled to internal changes.
type requestResponse struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	ServiceType string    `json:"service_type"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listRequestsResponse struct {
	Data       []requestResponse  `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}
