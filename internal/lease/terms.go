package lease

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/apperr"
)

type TermsKind string

const (
	TermsStandard TermsKind = "standard"
	TermsRenewal  TermsKind = "renewal"
)

// Terms is the structured payload attached to a lease. Renewal is set iff Kind is TermsRenewal.
type Terms struct {
	Kind          TermsKind  `json:"kind"`
	TemplateID    *uuid.UUID `json:"template_id,omitempty"`
	CustomClauses []string   `json:"custom_clauses,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	Renewal       *Renewal   `json:"renewal,omitempty"`
}

// Renewal records the lineage and rent change of a renewed lease.
type Renewal struct {
	OriginalLeaseID      uuid.UUID    `json:"original_lease_id"`
	PreviousMonthlyRent  int64        `json:"previous_monthly_rent"`
	RentIncrease         RentIncrease `json:"rent_increase"`
	StabilizationWarning bool         `json:"stabilization_warning"`
}

type IncreaseMode string

const (
	IncreaseNone       IncreaseMode = "none"
	IncreasePercentage IncreaseMode = "percentage"
	IncreaseFixed      IncreaseMode = "fixed"
	IncreaseExplicit   IncreaseMode = "explicit"
)

// RentIncrease describes how a renewal rent was derived. Value is a percent for
// IncreasePercentage and an amount in cents for IncreaseFixed and IncreaseExplicit.
type RentIncrease struct {
	Mode  IncreaseMode    `json:"mode"`
	Value decimal.Decimal `json:"value"`
}

func Percentage(pct decimal.Decimal) *RentIncrease {
	return &RentIncrease{Mode: IncreasePercentage, Value: pct}
}

func Fixed(cents int64) *RentIncrease {
	return &RentIncrease{Mode: IncreaseFixed, Value: decimal.NewFromInt(cents)}
}

// OriginalLeaseID returns the lease this one renews, if any.
func (t Terms) OriginalLeaseID() (uuid.UUID, bool) {
	if t.Kind != TermsRenewal || t.Renewal == nil {
		return uuid.Nil, false
	}

	return t.Renewal.OriginalLeaseID, true
}

func (t Terms) withDefaults() Terms {
	if t.Kind == "" {
		t.Kind = TermsStandard
	}

	return t
}

func (t Terms) Validate() error {
	switch t.Kind {
	case TermsStandard:
		if t.Renewal != nil {
			return apperr.Validation("standard terms must not carry renewal details")
		}
	case TermsRenewal:
		if t.Renewal == nil {
			return apperr.Validation("renewal terms require renewal details")
		}

		if t.Renewal.OriginalLeaseID == uuid.Nil {
			return apperr.Validation("renewal terms require the original lease id")
		}
	default:
		return apperr.Validation("unknown terms kind %q", t.Kind)
	}

	for i, c := range t.CustomClauses {
		if strings.TrimSpace(c) == "" {
			return apperr.Validation("custom clause %d is blank", i+1)
		}
	}

	return nil
}
