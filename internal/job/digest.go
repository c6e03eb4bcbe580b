package job

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/lease"
)

type Candidates interface {
	RenewalCandidates(ctx context.Context, q lease.CandidateQuery) ([]lease.Candidate, error)
}

type Recorder interface {
	SetRenewalCandidates(candidates []lease.Candidate)
	DigestRun(err error)
}

// RenewalDigest logs the leases due for renewal and publishes their counts.
// It is read-only: expiration stays derived on read.
type RenewalDigest struct {
	leases   Candidates
	recorder Recorder
}

func NewRenewalDigest(leases Candidates, recorder Recorder) *RenewalDigest {
	return &RenewalDigest{leases: leases, recorder: recorder}
}

func (d *RenewalDigest) Run(ctx context.Context) error {
	candidates, err := d.leases.RenewalCandidates(ctx, lease.CandidateQuery{})
	d.recorder.DigestRun(err)

	if err != nil {
		return fmt.Errorf("finding renewal candidates: %w", err)
	}

	d.recorder.SetRenewalCandidates(candidates)

	for _, c := range candidates {
		attrs := []any{
			"lease_id", c.Lease.ID,
			"end_date", c.Lease.EndDate.Format("2006-01-02"),
			"days", c.DaysUntilExpiration,
			"bucket", c.Bucket,
		}

		if p := c.Lease.Parties; p != nil {
			attrs = append(attrs, "landlord_id", p.LandlordID, "address", p.Address, "unit", p.Unit)
		}

		slog.InfoContext(ctx, "lease due for renewal", attrs...)
	}

	slog.InfoContext(ctx, "renewal digest complete", "candidates", len(candidates))

	return nil
}
