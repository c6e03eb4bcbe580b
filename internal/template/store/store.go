package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/template"
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

func scanTemplate(s scanner) (*template.Template, error) {
	var (
		t       template.Template
		clauses []byte
	)

	if err := s.Scan(&t.ID, &t.Name, &clauses, &t.CreatedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(clauses, &t.Clauses); err != nil {
		return nil, fmt.Errorf("decoding clauses: %w", err)
	}

	return &t, nil
}

func (s *Store) GetTemplate(ctx context.Context, id uuid.UUID) (*template.Template, error) {
	query := `SELECT id, name, clauses, created_at FROM lease_templates WHERE id = $1`

	t, err := scanTemplate(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, template.ErrNotFound
		}

		return nil, fmt.Errorf("getting template: %w", err)
	}

	return t, nil
}

func (s *Store) ListTemplates(ctx context.Context) ([]*template.Template, error) {
	query := `SELECT id, name, clauses, created_at FROM lease_templates ORDER BY name ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}
	defer rows.Close()

	var templates []*template.Template

	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning template: %w", err)
		}

		templates = append(templates, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating template rows: %w", err)
	}

	return templates, nil
}

func (s *Store) CreateTemplate(ctx context.Context, t *template.Template) error {
	clauses, err := json.Marshal(t.Clauses)
	if err != nil {
		return fmt.Errorf("encoding clauses: %w", err)
	}

	query := `
		INSERT INTO lease_templates (name, clauses, created_at)
		VALUES ($1, $2, NOW())
		RETURNING id, created_at
	`

	if err := s.db.QueryRowContext(ctx, query, t.Name, clauses).Scan(&t.ID, &t.CreatedAt); err != nil {
		return fmt.Errorf("creating template: %w", err)
	}

	return nil
}
