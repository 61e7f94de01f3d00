package ports

import (
	"context"
	"time"
)

// CreateRequestInput carries all data needed to submit a service request.
type CreateRequestInput struct {
	UserID      int64
	ServiceType string
	Location    string
	Description string
}

// GetRequestInput carries the parameters needed to retrieve a single request.
type GetRequestInput struct {
	ID int64
	// Role and UserID are used to enforce ownership: the client role only
	// sees its own requests.
	Role   string
	UserID int64
}

// ListRequestsInput carries all parameters for the list endpoint.
type ListRequestsInput struct {
	Role        string
	UserID      int64
	Status      string
	ServiceType string
	Page        int
	Limit       int
}

// UpdateRequestStatusInput carries the parameters for an admin status change.
type UpdateRequestStatusInput struct {
	ID     int64
	Status string
}

// RequestResult is the full request view returned by the service.
type RequestResult struct {
	ID          int64
	UserID      int64
	ServiceType string
	Location    string
	Description string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ListRequestsResult is returned by ListRequests.
type ListRequestsResult struct {
	Items      []RequestResult
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// RequestService defines use-case operations for service requests.
type RequestService interface {
	CreateRequest(ctx context.Context, input CreateRequestInput) (*RequestResult, error)
	GetRequest(ctx context.Context, input GetRequestInput) (*RequestResult, error)
	ListRequests(ctx context.Context, input ListRequestsInput) (*ListRequestsResult, error)
	UpdateStatus(ctx context.Context, input UpdateRequestStatusInput) (*RequestResult, error)
}
