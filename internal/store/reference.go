package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"

	"atelier/internal/model"
	"atelier/internal/parser"
)

// ErrNotFound is returned by lookups that match no row.
var ErrNotFound = errors.New("not found")

// FindOrCreate returns the id for a reference name, creating the entity on
// first encounter. A UNIQUE collision from a concurrent create is remapped to
// success with the existing id: callers must never see duplicate-key errors.
func (s *Store) FindOrCreate(ctx context.Context, kind model.ReferenceKind, name string) (string, bool, error) {
	normalized := parser.NormalizeKey(name)

	id, err := s.findReference(ctx, kind, normalized)
	if err == nil {
		return id, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return "", false, err
	}

	id = uuid.NewString()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO reference_entities (id, kind, name, normalized_name)
		VALUES (?, ?, ?, ?)
	`, id, string(kind), name, normalized)
	if err != nil {
		if isUniqueViolation(err) {
			// lost the race: another writer created it first
			existing, ferr := s.findReference(ctx, kind, normalized)
			if ferr != nil {
				return "", false, fmt.Errorf("failed to re-read reference after duplicate key: %w", ferr)
			}
			return existing, false, nil
		}
		return "", false, fmt.Errorf("failed to create reference entity: %w", err)
	}

	return id, true, nil
}

func (s *Store) findReference(ctx context.Context, kind model.ReferenceKind, normalized string) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx, `
		SELECT id FROM reference_entities WHERE kind = ? AND normalized_name = ?
	`, string(kind), normalized).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to query reference entity: %w", err)
	}
	return id, nil
}

// GetByCode resolves a reference entity by its stable code.
func (s *Store) GetByCode(ctx context.Context, kind model.ReferenceKind, code string) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx, `
		SELECT id FROM reference_entities WHERE kind = ? AND code = ?
	`, string(kind), code).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to query reference by code: %w", err)
	}
	return id, nil
}

// ListReferences returns all entities of one kind, for the status endpoint.
func (s *Store) ListReferences(ctx context.Context, kind model.ReferenceKind) ([]model.ReferenceEntity, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, kind, name, normalized_name, COALESCE(code, '')
		FROM reference_entities WHERE kind = ? ORDER BY name
	`, string(kind))
	if err != nil {
		return nil, fmt.Errorf("failed to list references: %w", err)
	}
	defer rows.Close()

	var out []model.ReferenceEntity
	for rows.Next() {
		var e model.ReferenceEntity
		if err := rows.Scan(&e.ID, &e.Kind, &e.Name, &e.NormalizedName, &e.Code); err != nil {
			return nil, fmt.Errorf("failed to scan reference: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
