package lease

import (
	"time"

	"github.com/google/uuid"

	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/apperr"
)

// Status represents the stored lifecycle state of a lease.
type Status string

const (
	StatusDraft            Status = "DRAFT"
	StatusPendingSignature Status = "PENDING_SIGNATURE"
	StatusActive           Status = "ACTIVE"
	StatusExpired          Status = "EXPIRED"
	StatusTerminated       Status = "TERMINATED"
)

// Statuses lists every status in lifecycle order.
var Statuses = []Status{
	StatusDraft,
	StatusPendingSignature,
	StatusActive,
	StatusExpired,
	StatusTerminated,
}

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}

	return false
}

var ErrNotFound = apperr.NotFound("lease not found")

// Lease is a time-bounded rental agreement for one property and one tenant.
type Lease struct {
	ID                uuid.UUID
	ApplicationID     uuid.UUID
	Status            Status
	StartDate         time.Time
	EndDate           time.Time
	MonthlyRent       int64 // cents
	SecurityDeposit   int64 // cents
	SignedAt          *time.Time
	DocumentURL       string
	Terms             Terms
	TerminatedAt      *time.Time
	TerminationReason string
	RefundDeposit     bool
	Parties           *Parties // Loaded via JOIN
	CreatedAt         time.Time
	UpdatedAt         *time.Time
}

// Parties are the read-only property and tenant details a lease belongs to.
type Parties struct {
	PropertyID    uuid.UUID
	LandlordID    uuid.UUID
	Address       string
	Unit          string
	ApplicantID   uuid.UUID
	ApplicantName string
}

// DepositRefund is the refund intent handed to the payment collaborator on termination.
type DepositRefund struct {
	Refund bool
	Amount int64 // cents
}

// dateOnly truncates t to its UTC calendar date.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
