package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/application"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

// Expected column order matches selectApplicationColumns.
func scanApplication(s scanner) (*application.Application, error) {
	var (
		app       application.Application
		prop      application.Property
		statusStr string
	)

	if err := s.Scan(
		&app.ID, &app.PropertyID, &app.ApplicantID, &app.ApplicantName, &statusStr,
		&app.MonthlyRent, &app.SecurityDeposit, &app.CreatedAt, &app.UpdatedAt,
		&prop.LandlordID, &prop.Address, &prop.Unit, &prop.Neighborhood,
	); err != nil {
		return nil, err
	}

	app.Status = application.Status(statusStr)
	prop.ID = app.PropertyID
	app.Property = &prop

	return &app, nil
}

const selectApplicationColumns = `
	a.id, a.property_id, a.applicant_id, a.applicant_name, a.status,
	a.monthly_rent, a.security_deposit, a.created_at, a.updated_at,
	p.landlord_id, p.address, p.unit, p.neighborhood
`

func (s *Store) GetApplication(ctx context.Context, id uuid.UUID) (*application.Application, error) {
	query := `SELECT ` + selectApplicationColumns + `
		FROM applications a
		JOIN properties p ON a.property_id = p.id
		WHERE a.id = $1`

	app, err := scanApplication(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, application.ErrNotFound
		}

		return nil, fmt.Errorf("getting application: %w", err)
	}

	return app, nil
}

func (s *Store) ListApplications(ctx context.Context, filter application.ListFilter) ([]*application.Application, error) {
	query := `SELECT ` + selectApplicationColumns + `
		FROM applications a
		JOIN properties p ON a.property_id = p.id
		WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.Status != nil {
		query += fmt.Sprintf(" AND a.status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.LandlordID != nil {
		query += fmt.Sprintf(" AND p.landlord_id = $%d", argIdx)

		args = append(args, *filter.LandlordID)
		argIdx++
	}

	if filter.PropertyID != nil {
		query += fmt.Sprintf(" AND a.property_id = $%d", argIdx)

		args = append(args, *filter.PropertyID)
		argIdx++
	}

	query += " ORDER BY a.created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing applications: %w", err)
	}
	defer rows.Close()

	var apps []*application.Application

	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning application: %w", err)
		}

		apps = append(apps, app)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating application rows: %w", err)
	}

	return apps, nil
}

func (s *Store) UpdateStatus(ctx context.Context, id uuid.UUID, status application.Status) error {
	query := `
		UPDATE applications
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`

	res, err := s.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("updating application status: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return application.ErrNotFound
	}

	return nil
}
