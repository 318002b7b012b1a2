package entity

import (
	"time"

	"github.com/google/uuid"
)

// RequestStatus is the lifecycle state of a blood request.
type RequestStatus string

const (
	RequestPendingVerification RequestStatus = "pending_verification"
	RequestActive              RequestStatus = "active"
	RequestRejected            RequestStatus = "rejected"
	RequestFulfilled           RequestStatus = "fulfilled"
	RequestExpired             RequestStatus = "expired"
)

// String returns the string representation of the RequestStatus.
func (s RequestStatus) String() string {
	return string(s)
}

// IsValid checks if the RequestStatus is a valid value.
func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestPendingVerification, RequestActive, RequestRejected,
		RequestFulfilled, RequestExpired:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether moving from s to next is a legal step.
// Transitions are plain field writes with no side effects on other entities.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	switch s {
	case RequestPendingVerification:
		return next == RequestActive || next == RequestRejected
	case RequestActive:
		return next == RequestFulfilled || next == RequestExpired
	default:
		return false
	}
}

// RequestUrgency ranks how quickly a request must be filled.
type RequestUrgency string

const (
	UrgencyLow      RequestUrgency = "low"
	UrgencyMedium   RequestUrgency = "medium"
	UrgencyHigh     RequestUrgency = "high"
	UrgencyCritical RequestUrgency = "critical"
)

// IsValid checks if the RequestUrgency is a valid value.
func (u RequestUrgency) IsValid() bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyCritical:
		return true
	default:
		return false
	}
}

// BloodRequest is a plea for blood units submitted by a requester.
// Requester contact fields are denormalized onto the row so the listing
// screens never need a join against the profile store.
type BloodRequest struct {
	ID             uuid.UUID      `json:"id"`
	RequesterUID   string         `json:"requester_uid"`
	RequesterName  string         `json:"requester_name"`
	RequesterPhone string         `json:"requester_phone"`
	PatientName    string         `json:"patient_name"`
	BloodGroup     BloodGroup     `json:"blood_group"`
	Units          int            `json:"units"`
	Urgency        RequestUrgency `json:"urgency"`
	HospitalName   string         `json:"hospital_name"`
	City           string         `json:"city"`
	Notes          *string        `json:"notes,omitempty"`
	Status         RequestStatus  `json:"status"`
	NeededBy       *time.Time     `json:"needed_by,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}
