package application

import (
	"time"

	"github.com/google/uuid"

	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/apperr"
)

// Status is the review state of a rental application.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusWithdrawn Status = "withdrawn"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusWithdrawn:
		return true
	}

	return false
}

var ErrNotFound = apperr.NotFound("application not found")

// Property is a rentable unit owned by a landlord.
type Property struct {
	ID           uuid.UUID
	LandlordID   uuid.UUID
	Address      string
	Unit         string
	Neighborhood string
}

// Application is a renter's request to lease one property.
type Application struct {
	ID              uuid.UUID
	PropertyID      uuid.UUID
	ApplicantID     uuid.UUID
	ApplicantName   string
	Status          Status
	MonthlyRent     int64 // cents
	SecurityDeposit int64 // cents
	Property        *Property // Loaded via JOIN
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}

func (a *Application) Approved() bool {
	return a.Status == StatusApproved
}
