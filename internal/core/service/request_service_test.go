package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/guardlink/portal-system/internal/core/domain"
	"github.com/guardlink/portal-system/internal/core/ports"
)

type stubRequestRepo struct {
	requests   map[int64]*domain.ServiceRequest
	nextID     int64
	lastFilter ports.ListRequestsFilter
}

func newStubRequestRepo() *stubRequestRepo {
	return &stubRequestRepo{requests: make(map[int64]*domain.ServiceRequest), nextID: 1}
}

func (r *stubRequestRepo) Create(_ context.Context, req *domain.ServiceRequest) (*domain.ServiceRequest, error) {
	clone := *req
	clone.ID = r.nextID
	r.nextID++
	r.requests[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubRequestRepo) FindByID(_ context.Context, id int64) (*domain.ServiceRequest, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, domain.ErrRequestNotFound
	}
	clone := *req
	return &clone, nil
}

func (r *stubRequestRepo) List(_ context.Context, filter ports.ListRequestsFilter) ([]*domain.ServiceRequest, int64, error) {
	r.lastFilter = filter
	var out []*domain.ServiceRequest
	for _, req := range r.requests {
		if filter.UserID != 0 && req.UserID != filter.UserID {
			continue
		}
		clone := *req
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

func (r *stubRequestRepo) UpdateStatus(_ context.Context, id int64, status domain.RequestStatus) (*domain.ServiceRequest, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, domain.ErrRequestNotFound
	}
	req.Status = status
	clone := *req
	return &clone, nil
}

func newTestRequestService(repo *stubRequestRepo) *RequestService {
	return NewRequestService(repo, zerolog.Nop())
}

func TestRequestService_Create_StartsPending(t *testing.T) {
	repo := newStubRequestRepo()
	svc := newTestRequestService(repo)

	result, err := svc.CreateRequest(context.Background(), ports.CreateRequestInput{
		UserID:      5,
		ServiceType: "cctv_installation",
		Location:    "12 Oak Avenue",
		Description: "Four outdoor cameras",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if result.Status != string(domain.StatusPending) {
		t.Fatalf("expected pending, got %s", result.Status)
	}
	if result.UserID != 5 || result.ID == 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestRequestService_Get_OwnerOnly(t *testing.T) {
	repo := newStubRequestRepo()
	svc := newTestRequestService(repo)

	created, err := svc.CreateRequest(context.Background(), ports.CreateRequestInput{
		UserID: 5, ServiceType: "gate_automation", Location: "3 Main Rd",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Owner sees it.
	if _, err := svc.GetRequest(context.Background(), ports.GetRequestInput{ID: created.ID, Role: "client", UserID: 5}); err != nil {
		t.Fatalf("owner read failed: %v", err)
	}

	// Foreign client is told the request does not exist.
	if _, err := svc.GetRequest(context.Background(), ports.GetRequestInput{ID: created.ID, Role: "client", UserID: 6}); err != domain.ErrRequestNotFound {
		t.Fatalf("expected ErrRequestNotFound for foreign client, got %v", err)
	}

	// Admin sees everything.
	if _, err := svc.GetRequest(context.Background(), ports.GetRequestInput{ID: created.ID, Role: "admin", UserID: 1}); err != nil {
		t.Fatalf("admin read failed: %v", err)
	}
}

func TestRequestService_List_ScopesClients(t *testing.T) {
	repo := newStubRequestRepo()
	svc := newTestRequestService(repo)

	if _, err := svc.ListRequests(context.Background(), ports.ListRequestsInput{Role: "client", UserID: 5}); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if repo.lastFilter.UserID != 5 {
		t.Fatalf("client list not scoped to owner: %+v", repo.lastFilter)
	}

	if _, err := svc.ListRequests(context.Background(), ports.ListRequestsInput{Role: "admin", UserID: 1}); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if repo.lastFilter.UserID != 0 {
		t.Fatalf("admin list unexpectedly scoped: %+v", repo.lastFilter)
	}
}

func TestRequestService_List_PaginationDefaultsAndCap(t *testing.T) {
	repo := newStubRequestRepo()
	svc := newTestRequestService(repo)

	if _, err := svc.ListRequests(context.Background(), ports.ListRequestsInput{Role: "admin"}); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if repo.lastFilter.Page != 1 || repo.lastFilter.Limit != defaultPageLimit {
		t.Fatalf("unexpected defaults: %+v", repo.lastFilter)
	}

	if _, err := svc.ListRequests(context.Background(), ports.ListRequestsInput{Role: "admin", Page: 3, Limit: 1000}); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if repo.lastFilter.Limit != maxPageLimit {
		t.Fatalf("limit not capped: %+v", repo.lastFilter)
	}
}

func TestRequestService_List_InvalidStatusFilter(t *testing.T) {
	svc := newTestRequestService(newStubRequestRepo())

	if _, err := svc.ListRequests(context.Background(), ports.ListRequestsInput{Role: "admin", Status: "shipped"}); err != domain.ErrInvalidStatus {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestRequestService_UpdateStatus(t *testing.T) {
	repo := newStubRequestRepo()
	svc := newTestRequestService(repo)

	created, err := svc.CreateRequest(context.Background(), ports.CreateRequestInput{
		UserID: 5, ServiceType: "alarm_system", Location: "9 Hill St",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := svc.UpdateStatus(context.Background(), ports.UpdateRequestStatusInput{ID: created.ID, Status: "approved"})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Status != string(domain.StatusApproved) {
		t.Fatalf("expected approved, got %s", updated.Status)
	}

	if _, err := svc.UpdateStatus(context.Background(), ports.UpdateRequestStatusInput{ID: created.ID, Status: "delivered"}); err != domain.ErrInvalidStatus {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}

	if _, err := svc.UpdateStatus(context.Background(), ports.UpdateRequestStatusInput{ID: 999, Status: "approved"}); err != domain.ErrRequestNotFound {
		t.Fatalf("expected ErrRequestNotFound, got %v", err)
	}
}
