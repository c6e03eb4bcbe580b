package lease

import (
	"slices"
	"strings"
	"time"
)

// Candidate is an active lease due for renewal.
type Candidate struct {
	Lease               *Lease
	DaysUntilExpiration int
	Bucket              Bucket
}

// FindRenewalCandidates keeps effectively ACTIVE leases ending within horizonDays
// of now, most urgent first. Ties are broken by end date and then id.
func FindRenewalCandidates(leases []*Lease, now time.Time, horizonDays int) []Candidate {
	var out []Candidate

	for _, l := range leases {
		if EffectiveStatus(l, now) != StatusActive {
			continue
		}

		days := DaysUntilExpiration(l, now)
		if days < 0 || days > horizonDays {
			continue
		}

		out = append(out, Candidate{Lease: l, DaysUntilExpiration: days, Bucket: BucketFor(days)})
	}

	slices.SortFunc(out, func(a, b Candidate) int {
		if a.DaysUntilExpiration != b.DaysUntilExpiration {
			return a.DaysUntilExpiration - b.DaysUntilExpiration
		}

		if c := a.Lease.EndDate.Compare(b.Lease.EndDate); c != 0 {
			return c
		}

		return strings.Compare(a.Lease.ID.String(), b.Lease.ID.String())
	})

	return out
}
