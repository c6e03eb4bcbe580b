package application_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/application"
	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/apperr"
)

func TestService_Decide(t *testing.T) {
	id := uuid.New()

	type testCase struct {
		name      string
		status    application.Status
		setupMock func(m *application.MockRepository)
		wantKind  error
	}

	tests := []testCase{
		{
			name:   "Approve",
			status: application.StatusApproved,
			setupMock: func(m *application.MockRepository) {
				m.EXPECT().GetApplication(gomock.Any(), id).
					Return(&application.Application{ID: id, Status: application.StatusPending}, nil)
				m.EXPECT().UpdateStatus(gomock.Any(), id, application.StatusApproved).Return(nil)
			},
		},
		{
			name:     "BackToPending",
			status:   application.StatusPending,
			wantKind: apperr.ErrValidation,
		},
		{
			name:     "UnknownStatus",
			status:   application.Status("archived"),
			wantKind: apperr.ErrValidation,
		},
		{
			name:   "AlreadyDecided",
			status: application.StatusRejected,
			setupMock: func(m *application.MockRepository) {
				m.EXPECT().GetApplication(gomock.Any(), id).
					Return(&application.Application{ID: id, Status: application.StatusApproved}, nil)
			},
			wantKind: apperr.ErrState,
		},
		{
			name:   "NotFound",
			status: application.StatusApproved,
			setupMock: func(m *application.MockRepository) {
				m.EXPECT().GetApplication(gomock.Any(), id).Return(nil, application.ErrNotFound)
			},
			wantKind: apperr.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := application.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := application.NewService(repo)
			got, err := svc.Decide(context.Background(), id, tt.status)

			if tt.wantKind != nil {
				assert.ErrorIs(t, err, tt.wantKind)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.status, got.Status)
		})
	}
}

func TestService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	landlord := uuid.New()
	filter := application.ListFilter{LandlordID: &landlord}

	repo := application.NewMockRepository(ctrl)
	repo.EXPECT().ListApplications(gomock.Any(), filter).Return([]*application.Application{{ID: uuid.New()}}, nil)

	got, err := application.NewService(repo).List(context.Background(), filter)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestService_Get_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := application.NewMockRepository(ctrl)
	repo.EXPECT().GetApplication(gomock.Any(), gomock.Any()).Return(nil, errors.New("db error"))

	_, err := application.NewService(repo).Get(context.Background(), uuid.New())
	assert.Error(t, err)
}
