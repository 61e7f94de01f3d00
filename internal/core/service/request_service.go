package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/guardlink/portal-system/internal/core/domain"
	"github.com/guardlink/portal-system/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// RequestService implements the service-request use cases. Ownership rules:
// the client role only ever sees its own requests; the admin role sees all
// and is the only role allowed to change a request's status.
type RequestService struct {
	repo   ports.RequestRepository
	logger zerolog.Logger
}

func NewRequestService(repo ports.RequestRepository, logger zerolog.Logger) *RequestService {
	return &RequestService{repo: repo, logger: logger}
}

func (s *RequestService) CreateRequest(ctx context.Context, input ports.CreateRequestInput) (*ports.RequestResult, error) {
	now := time.Now().UTC()
	req := &domain.ServiceRequest{
		UserID:      input.UserID,
		ServiceType: input.ServiceType,
		Location:    input.Location,
		Description: input.Description,
		Status:      domain.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, req)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", input.UserID).Msg("failed to create service request")
		return nil, err
	}

	s.logger.Info().Int64("request_id", created.ID).Int64("user_id", created.UserID).
		Str("service_type", created.ServiceType).Msg("service request created")

	return toRequestResult(created), nil
}

func (s *RequestService) GetRequest(ctx context.Context, input ports.GetRequestInput) (*ports.RequestResult, error) {
	req, err := s.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	// Clients never learn whether a foreign request exists.
	if domain.Role(input.Role) != domain.RoleAdmin && req.UserID != input.UserID {
		return nil, domain.ErrRequestNotFound
	}

	return toRequestResult(req), nil
}

func (s *RequestService) ListRequests(ctx context.Context, input ports.ListRequestsInput) (*ports.ListRequestsResult, error) {
	if input.Status != "" && !domain.RequestStatus(input.Status).Valid() {
		return nil, domain.ErrInvalidStatus
	}

	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	filter := ports.ListRequestsFilter{
		Status:      input.Status,
		ServiceType: input.ServiceType,
		Page:        page,
		Limit:       limit,
	}
	if domain.Role(input.Role) != domain.RoleAdmin {
		filter.UserID = input.UserID
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list service requests")
		return nil, err
	}

	results := make([]ports.RequestResult, 0, len(items))
	for _, r := range items {
		results = append(results, *toRequestResult(r))
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ports.ListRequestsResult{
		Items:      results,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

func (s *RequestService) UpdateStatus(ctx context.Context, input ports.UpdateRequestStatusInput) (*ports.RequestResult, error) {
	status := domain.RequestStatus(input.Status)
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	updated, err := s.repo.UpdateStatus(ctx, input.ID, status)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("request_id", updated.ID).Str("status", string(updated.Status)).
		Msg("service request status updated")

	return toRequestResult(updated), nil
}

func toRequestResult(r *domain.ServiceRequest) *ports.RequestResult {
	return &ports.RequestResult{
		ID:          r.ID,
		UserID:      r.UserID,
		ServiceType: r.ServiceType,
		Location:    r.Location,
		Description: r.Description,
		Status:      string(r.Status),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
