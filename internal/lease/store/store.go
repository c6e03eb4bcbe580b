package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/lease"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanLease reads a row in selectLeaseColumns order.
func scanLease(s scanner) (*lease.Lease, error) {
	var (
		l         lease.Lease
		p         lease.Parties
		statusStr string
		docURL    sql.NullString
		reason    sql.NullString
		terms     []byte
	)

	if err := s.Scan(
		&l.ID, &l.ApplicationID, &statusStr, &l.StartDate, &l.EndDate,
		&l.MonthlyRent, &l.SecurityDeposit, &l.SignedAt, &docURL, &terms,
		&l.TerminatedAt, &reason, &l.RefundDeposit, &l.CreatedAt, &l.UpdatedAt,
		&p.PropertyID, &p.LandlordID, &p.Address, &p.Unit, &p.ApplicantID, &p.ApplicantName,
	); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(terms, &l.Terms); err != nil {
		return nil, fmt.Errorf("decoding terms of lease %s: %w", l.ID, err)
	}

	l.Status = lease.Status(statusStr)
	l.DocumentURL = docURL.String
	l.TerminationReason = reason.String
	l.Parties = &p

	return &l, nil
}

const selectLeaseColumns = `
	l.id, l.application_id, l.status, l.start_date, l.end_date,
	l.monthly_rent, l.security_deposit, l.signed_at, l.document_url, l.terms,
	l.terminated_at, l.termination_reason, l.refund_deposit, l.created_at, l.updated_at,
	a.property_id, p.landlord_id, p.address, p.unit, a.applicant_id, a.applicant_name
`

const fromLeases = `
	FROM leases l
	JOIN applications a ON l.application_id = a.id
	JOIN properties p ON a.property_id = p.id`

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (s *Store) CreateLease(ctx context.Context, l *lease.Lease) error {
	terms, err := json.Marshal(l.Terms)
	if err != nil {
		return fmt.Errorf("encoding terms: %w", err)
	}

	query := `
		INSERT INTO leases (application_id, status, start_date, end_date, monthly_rent, security_deposit,
			document_url, terms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, created_at
	`

	err = s.db.QueryRowContext(ctx, query,
		l.ApplicationID,
		l.Status,
		l.StartDate,
		l.EndDate,
		l.MonthlyRent,
		l.SecurityDeposit,
		nullString(l.DocumentURL),
		terms,
	).Scan(&l.ID, &l.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating lease: %w", err)
	}

	return nil
}

func (s *Store) GetLease(ctx context.Context, id uuid.UUID) (*lease.Lease, error) {
	query := `SELECT ` + selectLeaseColumns + fromLeases + ` WHERE l.id = $1`

	l, err := scanLease(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, lease.ErrNotFound
		}

		return nil, fmt.Errorf("getting lease: %w", err)
	}

	return l, nil
}

func (s *Store) ListLeases(ctx context.Context, q lease.Query) ([]*lease.Lease, error) {
	query := `SELECT ` + selectLeaseColumns + fromLeases + ` WHERE TRUE`

	var args []any

	argIdx := 1

	if len(q.Statuses) > 0 {
		statuses := make([]string, len(q.Statuses))
		for i, st := range q.Statuses {
			statuses[i] = string(st)
		}

		query += fmt.Sprintf(" AND l.status = ANY($%d)", argIdx)

		args = append(args, statuses)
		argIdx++
	}

	if q.LandlordID != nil {
		query += fmt.Sprintf(" AND p.landlord_id = $%d", argIdx)

		args = append(args, *q.LandlordID)
		argIdx++
	}

	if q.ApplicationID != nil {
		query += fmt.Sprintf(" AND l.application_id = $%d", argIdx)

		args = append(args, *q.ApplicationID)
		argIdx++
	}

	if q.OriginalLeaseID != nil {
		query += fmt.Sprintf(" AND l.terms ->> 'kind' = 'renewal' AND l.terms -> 'renewal' ->> 'original_lease_id' = $%d", argIdx)

		args = append(args, q.OriginalLeaseID.String())
		argIdx++
	}

	if q.EndFrom != nil {
		query += fmt.Sprintf(" AND l.end_date >= $%d", argIdx)

		args = append(args, *q.EndFrom)
		argIdx++
	}

	if q.EndTo != nil {
		query += fmt.Sprintf(" AND l.end_date <= $%d", argIdx)

		args = append(args, *q.EndTo)
		argIdx++
	}

	query += " ORDER BY l.end_date ASC, l.id ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing leases: %w", err)
	}
	defer rows.Close()

	var leases []*lease.Lease

	for rows.Next() {
		l, err := scanLease(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning lease: %w", err)
		}

		leases = append(leases, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating lease rows: %w", err)
	}

	return leases, nil
}

func (s *Store) UpdateLease(ctx context.Context, l *lease.Lease) error {
	terms, err := json.Marshal(l.Terms)
	if err != nil {
		return fmt.Errorf("encoding terms: %w", err)
	}

	query := `
		UPDATE leases
		SET status = $1, start_date = $2, end_date = $3, monthly_rent = $4, security_deposit = $5,
			signed_at = $6, document_url = $7, terms = $8, terminated_at = $9, termination_reason = $10,
			refund_deposit = $11, updated_at = NOW()
		WHERE id = $12
		RETURNING updated_at
	`

	err = s.db.QueryRowContext(ctx, query,
		l.Status,
		l.StartDate,
		l.EndDate,
		l.MonthlyRent,
		l.SecurityDeposit,
		l.SignedAt,
		nullString(l.DocumentURL),
		terms,
		l.TerminatedAt,
		nullString(l.TerminationReason),
		l.RefundDeposit,
		l.ID,
	).Scan(&l.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return lease.ErrNotFound
		}

		return fmt.Errorf("updating lease: %w", err)
	}

	return nil
}
