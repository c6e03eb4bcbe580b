package rentroll

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/apperr"
	enc "github.com/mohammadr7204/nyc-rental-platform-sub002/internal/encoding"
	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/lease"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=rentroll
type LeaseCreator interface {
	CreateBatch(ctx context.Context, rows []lease.BatchRow) []lease.BatchResult
}

type Service struct {
	parser *Parser
	leases LeaseCreator
}

func NewService(leases LeaseCreator) *Service {
	return &Service{
		parser: NewParser(),
		leases: leases,
	}
}

// RowError is a rent-roll row that could not be turned into a lease.
type RowError struct {
	Row           int
	ApplicationID uuid.UUID
	Err           error
}

type Report struct {
	Profile string
	Charset enc.Charset
	Created []*lease.Lease
	Failed  []RowError
}

// Import parses a rent roll and creates a draft lease per row. A file that
// cannot be parsed fails as a whole; rows that fail lease validation are
// reported individually.
func (s *Service) Import(ctx context.Context, r io.Reader) (*Report, error) {
	parsed, err := s.parser.Parse(r)
	if err != nil {
		return nil, apperr.Validation("parsing rent roll: %v", err)
	}

	report := &Report{Profile: parsed.Profile, Charset: parsed.Charset}

	for _, res := range s.leases.CreateBatch(ctx, parsed.Rows) {
		if res.Err != nil {
			report.Failed = append(report.Failed, RowError{Row: res.Row, ApplicationID: res.ApplicationID, Err: res.Err})
			continue
		}

		report.Created = append(report.Created, res.Lease)
	}

	return report, nil
}
