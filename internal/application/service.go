package application

import (
	"context"

	"github.com/google/uuid"

	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/apperr"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=application
type Repository interface {
	GetApplication(ctx context.Context, id uuid.UUID) (*Application, error)
	ListApplications(ctx context.Context, filter ListFilter) ([]*Application, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type ListFilter struct {
	Status     *Status
	LandlordID *uuid.UUID
	PropertyID *uuid.UUID
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Application, error) {
	return s.repo.GetApplication(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Application, error) {
	return s.repo.ListApplications(ctx, filter)
}

// Decide moves a pending application to a final status.
func (s *Service) Decide(ctx context.Context, id uuid.UUID, status Status) (*Application, error) {
	if !status.Valid() || status == StatusPending {
		return nil, apperr.Validation("status must be one of approved, rejected, withdrawn; got %q", status)
	}

	app, err := s.repo.GetApplication(ctx, id)
	if err != nil {
		return nil, err
	}

	if app.Status != StatusPending {
		return nil, apperr.State("application %s is already %s", id, app.Status)
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	app.Status = status

	return app, nil
}
