package lease

import (
	"time"

	"github.com/google/uuid"

	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/http/api"
	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/lease"
)

type leaseResponse struct {
	ID                  uuid.UUID        `json:"id"`
	ApplicationID       uuid.UUID        `json:"application_id"`
	Status              lease.Status     `json:"status"`
	EffectiveStatus     lease.Status     `json:"effective_status"`
	DaysUntilExpiration int              `json:"days_until_expiration"`
	ExpirationBucket    lease.Bucket     `json:"expiration_bucket"`
	StartDate           api.Date         `json:"start_date"`
	EndDate             api.Date         `json:"end_date"`
	MonthlyRent         int64            `json:"monthly_rent"`
	SecurityDeposit     int64            `json:"security_deposit"`
	SignedAt            *time.Time       `json:"signed_at,omitempty"`
	DocumentURL         string           `json:"document_url,omitempty"`
	Terms               lease.Terms      `json:"terms"`
	TerminatedAt        *api.Date        `json:"terminated_at,omitempty"`
	TerminationReason   string           `json:"termination_reason,omitempty"`
	RefundDeposit       bool             `json:"refund_deposit"`
	Parties             *partiesResponse `json:"parties,omitempty"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           *time.Time       `json:"updated_at,omitempty"`
}

type partiesResponse struct {
	PropertyID    uuid.UUID `json:"property_id"`
	LandlordID    uuid.UUID `json:"landlord_id"`
	Address       string    `json:"address"`
	Unit          string    `json:"unit,omitempty"`
	ApplicantID   uuid.UUID `json:"applicant_id"`
	ApplicantName string    `json:"applicant_name"`
}

// toResponse evaluates the date-derived fields against now.
func toResponse(l *lease.Lease, now time.Time) leaseResponse {
	days := lease.DaysUntilExpiration(l, now)

	resp := leaseResponse{
		ID:                  l.ID,
		ApplicationID:       l.ApplicationID,
		Status:              l.Status,
		EffectiveStatus:     lease.EffectiveStatus(l, now),
		DaysUntilExpiration: days,
		ExpirationBucket:    lease.BucketFor(days),
		StartDate:           api.NewDate(l.StartDate),
		EndDate:             api.NewDate(l.EndDate),
		MonthlyRent:         l.MonthlyRent,
		SecurityDeposit:     l.SecurityDeposit,
		SignedAt:            l.SignedAt,
		DocumentURL:         l.DocumentURL,
		Terms:               l.Terms,
		TerminationReason:   l.TerminationReason,
		RefundDeposit:       l.RefundDeposit,
		CreatedAt:           l.CreatedAt,
		UpdatedAt:           l.UpdatedAt,
	}

	if l.TerminatedAt != nil {
		d := api.NewDate(*l.TerminatedAt)
		resp.TerminatedAt = &d
	}

	if l.Parties != nil {
		resp.Parties = &partiesResponse{
			PropertyID:    l.Parties.PropertyID,
			LandlordID:    l.Parties.LandlordID,
			Address:       l.Parties.Address,
			Unit:          l.Parties.Unit,
			ApplicantID:   l.Parties.ApplicantID,
			ApplicantName: l.Parties.ApplicantName,
		}
	}

	return resp
}

func toResponseList(leases []*lease.Lease, now time.Time) []leaseResponse {
	resp := make([]leaseResponse, len(leases))
	for i, l := range leases {
		resp[i] = toResponse(l, now)
	}

	return resp
}

type renewResponse struct {
	Lease   leaseResponse `json:"lease"`
	Warning string        `json:"warning,omitempty"`
}

type depositRefundResponse struct {
	Refund bool  `json:"refund"`
	Amount int64 `json:"amount"`
}

type terminateResponse struct {
	Lease         leaseResponse         `json:"lease"`
	DepositRefund depositRefundResponse `json:"deposit_refund"`
}

type candidateResponse struct {
	Lease               leaseResponse `json:"lease"`
	DaysUntilExpiration int           `json:"days_until_expiration"`
	Bucket              lease.Bucket  `json:"bucket"`
}

func toCandidateList(candidates []lease.Candidate, now time.Time) []candidateResponse {
	resp := make([]candidateResponse, len(candidates))
	for i, c := range candidates {
		resp[i] = candidateResponse{
			Lease:               toResponse(c.Lease, now),
			DaysUntilExpiration: c.DaysUntilExpiration,
			Bucket:              c.Bucket,
		}
	}

	return resp
}

type statsResponse struct {
	TotalLeases            int                  `json:"total_leases"`
	ByStatus               map[lease.Status]int `json:"by_status"`
	ActiveLeases           int                  `json:"active_leases"`
	DraftLeases            int                  `json:"draft_leases"`
	PendingSignatureLeases int                  `json:"pending_signature_leases"`
	ExpiredLeases          int                  `json:"expired_leases"`
	TerminatedLeases       int                  `json:"terminated_leases"`
	ExpiringWithin30       int                  `json:"expiring_within_30_days"`
	ExpiringWithin90       int                  `json:"expiring_within_90_days"`
	TerminatedThisMonth    int                  `json:"terminated_this_month"`
}

func toStatsResponse(s lease.Stats) statsResponse {
	return statsResponse{
		TotalLeases:            s.TotalLeases,
		ByStatus:               s.ByStatus,
		ActiveLeases:           s.ActiveLeases,
		DraftLeases:            s.DraftLeases,
		PendingSignatureLeases: s.PendingSignatureLeases,
		ExpiredLeases:          s.ExpiredLeases,
		TerminatedLeases:       s.TerminatedLeases,
		ExpiringWithin30:       s.ExpiringWithin30,
		ExpiringWithin90:       s.ExpiringWithin90,
		TerminatedThisMonth:    s.TerminatedThisMonth,
	}
}
