package rentroll_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/apperr"
	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/lease"
	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/rentroll"
)

func TestService_Import(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	csv := "application_id,start_date,end_date\n" +
		app1.String() + ",2026-04-01,2027-03-31\n" +
		app2.String() + ",2026-04-01,2026-03-01\n"

	created := &lease.Lease{ID: uuid.New(), ApplicationID: app1}
	invalid := apperr.Validation("end date must be after start date")

	leases := rentroll.NewMockLeaseCreator(ctrl)
	leases.EXPECT().CreateBatch(gomock.Any(), gomock.Len(2)).
		DoAndReturn(func(_ context.Context, rows []lease.BatchRow) []lease.BatchResult {
			return []lease.BatchResult{
				{Row: rows[0].Row, ApplicationID: rows[0].ApplicationID, Lease: created},
				{Row: rows[1].Row, ApplicationID: rows[1].ApplicationID, Err: invalid},
			}
		})

	report, err := rentroll.NewService(leases).Import(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, "nestly", report.Profile)
	assert.Equal(t, []*lease.Lease{created}, report.Created)
	require.Len(t, report.Failed, 1)
	assert.Equal(t, 3, report.Failed[0].Row)
	assert.Equal(t, app2, report.Failed[0].ApplicationID)
	assert.ErrorIs(t, report.Failed[0].Err, apperr.ErrValidation)
}

func TestService_Import_Unparseable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	_, err := rentroll.NewService(rentroll.NewMockLeaseCreator(ctrl)).
		Import(context.Background(), strings.NewReader("hello,world\n"))
	assert.ErrorIs(t, err, apperr.ErrValidation)
}
