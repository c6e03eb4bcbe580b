package job_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/job"
	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/lease"
)

type fakeCandidates struct {
	candidates []lease.Candidate
	err        error
	query      *lease.CandidateQuery
}

func (f *fakeCandidates) RenewalCandidates(_ context.Context, q lease.CandidateQuery) ([]lease.Candidate, error) {
	f.query = &q
	return f.candidates, f.err
}

type fakeRecorder struct {
	published []lease.Candidate
	runs      []error
}

func (f *fakeRecorder) SetRenewalCandidates(c []lease.Candidate) { f.published = c }

func (f *fakeRecorder) DigestRun(err error) { f.runs = append(f.runs, err) }

func TestRenewalDigest_Run(t *testing.T) {
	candidates := []lease.Candidate{
		{
			Lease: &lease.Lease{
				ID:      uuid.New(),
				EndDate: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
				Parties: &lease.Parties{Address: "125 Grand St", Unit: "4B"},
			},
			DaysUntilExpiration: 17,
			Bucket:              lease.BucketUrgent,
		},
		{
			Lease:               &lease.Lease{ID: uuid.New(), EndDate: time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC)},
			DaysUntilExpiration: 66,
			Bucket:              lease.BucketWarning,
		},
	}

	leases := &fakeCandidates{candidates: candidates}
	rec := &fakeRecorder{}

	err := job.NewRenewalDigest(leases, rec).Run(context.Background())
	require.NoError(t, err)

	require.NotNil(t, leases.query)
	assert.Nil(t, leases.query.HorizonDays, "digest uses the configured default horizon")
	assert.Equal(t, candidates, rec.published)
	assert.Equal(t, []error{nil}, rec.runs)
}

func TestRenewalDigest_RunError(t *testing.T) {
	dbErr := errors.New("db down")
	rec := &fakeRecorder{}

	err := job.NewRenewalDigest(&fakeCandidates{err: dbErr}, rec).Run(context.Background())

	assert.ErrorIs(t, err, dbErr)
	assert.Nil(t, rec.published)
	assert.Equal(t, []error{dbErr}, rec.runs)
}

func TestScheduler_Add(t *testing.T) {
	s := job.NewScheduler(time.Minute)
	noop := func(context.Context) error { return nil }

	assert.NoError(t, s.Add("renewal-digest", "0 7 * * *", noop))
	assert.NoError(t, s.Add("hourly", "@hourly", noop))
	assert.Error(t, s.Add("broken", "0 0 7 * * *", noop))
	assert.Error(t, s.Add("garbage", "every morning", noop))
}

func TestScheduler_StartStop(t *testing.T) {
	s := job.NewScheduler(time.Minute)
	require.NoError(t, s.Add("digest", "@every 1h", func(context.Context) error { return nil }))

	s.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	s.Stop(ctx)
	assert.NoError(t, ctx.Err())
}
