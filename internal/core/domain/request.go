package domain

import (
	"errors"
	"time"
)

// RequestStatus represents the lifecycle state of a service request.
type RequestStatus string

const (
	StatusPending    RequestStatus = "pending"
	StatusApproved   RequestStatus = "approved"
	StatusInProgress RequestStatus = "in_progress"
	StatusCompleted  RequestStatus = "completed"
	StatusRejected   RequestStatus = "rejected"
)

// Valid reports whether the status is one of the closed set of request states.
func (s RequestStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusInProgress, StatusCompleted, StatusRejected:
		return true
	}
	return false
}

var ErrRequestNotFound = errors.New("service request not found")
var ErrInvalidStatus = errors.New("invalid request status")
var ErrForbidden = errors.New("access forbidden")

// ServiceRequest is a client's ask for on-site security work: a CCTV
// installation, gate automation, an alarm system and so on. Each request
// belongs to exactly one user.
type ServiceRequest struct {
	ID          int64         `json:"id"`
	UserID      int64         `json:"user_id"`
	ServiceType string        `json:"service_type"`
	Location    string        `json:"location"`
	Description string        `json:"description"`
	Status      RequestStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
