package template

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/apperr"
)

var ErrNotFound = apperr.NotFound("lease template not found")

// Template is a reusable set of lease clauses a landlord can start a lease from.
type Template struct {
	ID        uuid.UUID
	Name      string
	Clauses   []string
	CreatedAt time.Time
}

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=template
type Repository interface {
	GetTemplate(ctx context.Context, id uuid.UUID) (*Template, error)
	ListTemplates(ctx context.Context) ([]*Template, error)
	CreateTemplate(ctx context.Context, t *Template) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Template, error) {
	return s.repo.GetTemplate(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Template, error) {
	return s.repo.ListTemplates(ctx)
}

// Create stores a new template. Clauses are trimmed and blank ones dropped.
func (s *Service) Create(ctx context.Context, name string, clauses []string) (*Template, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("template name is required")
	}

	cleaned := make([]string, 0, len(clauses))

	for _, c := range clauses {
		if c = strings.TrimSpace(c); c != "" {
			cleaned = append(cleaned, c)
		}
	}

	if len(cleaned) == 0 {
		return nil, apperr.Validation("template needs at least one clause")
	}

	t := &Template{Name: name, Clauses: cleaned}
	if err := s.repo.CreateTemplate(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}
