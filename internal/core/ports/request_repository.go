package ports

import (
	"context"

	"github.com/guardlink/portal-system/internal/core/domain"
)

// ListRequestsFilter carries all query parameters for listing service requests.
// UserID is always enforced by the service layer for the client role.
type ListRequestsFilter struct {
	UserID      int64  // 0 = no filter (admin); non-zero = scoped to owner
	Status      string // optional: filter by request status
	ServiceType string // optional: filter by service type
	Page        int    // 1-based
	Limit       int    // max rows per page (capped at 100 by service)
}

// RequestRepository defines persistence operations for service requests.
type RequestRepository interface {
	Create(ctx context.Context, r *domain.ServiceRequest) (*domain.ServiceRequest, error)
	FindByID(ctx context.Context, id int64) (*domain.ServiceRequest, error)
	// List returns a page of requests matching filter and the total count.
	List(ctx context.Context, filter ListRequestsFilter) ([]*domain.ServiceRequest, int64, error)
	UpdateStatus(ctx context.Context, id int64, status domain.RequestStatus) (*domain.ServiceRequest, error)
}
