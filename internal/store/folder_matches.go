package store

import (
	"context"
	"fmt"

	"atelier/internal/model"
)

// BatchInsertFolderMatches inserts folder reconciliation results with their
// classified documents in one transaction.
func (s *Store) BatchInsertFolderMatches(ctx context.Context, matches []model.FolderMatch) error {
	if len(matches) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	matchStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO folder_matches (folder_name, matched_entity_id, match_strategy, confidence_reason)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare folder match statement: %w", err)
	}
	defer matchStmt.Close()

	docStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO folder_documents (folder_match_id, file_name, kind)
		VALUES (?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare document statement: %w", err)
	}
	defer docStmt.Close()

	for _, m := range matches {
		res, err := matchStmt.ExecContext(ctx,
			m.FolderName, nullable(m.MatchedEntityID), string(m.Strategy), m.ConfidenceReason,
		)
		if err != nil {
			return fmt.Errorf("failed to insert folder match %q: %w", m.FolderName, err)
		}
		matchID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get folder match id: %w", err)
		}
		for _, doc := range m.Documents {
			if _, err := docStmt.ExecContext(ctx, matchID, doc.FileName, string(doc.Kind)); err != nil {
				return fmt.Errorf("failed to insert folder document: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListFolderMatches returns the reconciliation results of the latest runs,
// documents included, newest first.
func (s *Store) ListFolderMatches(ctx context.Context, limit int) ([]model.FolderMatch, error) {
	if limit <= 0 {
		limit = 500
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, folder_name, COALESCE(matched_entity_id, ''), match_strategy, COALESCE(confidence_reason, '')
		FROM folder_matches
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query folder matches: %w", err)
	}
	defer rows.Close()

	var matches []model.FolderMatch
	var ids []int64
	for rows.Next() {
		var id int64
		var m model.FolderMatch
		var strategy string
		if err := rows.Scan(&id, &m.FolderName, &m.MatchedEntityID, &strategy, &m.ConfidenceReason); err != nil {
			return nil, fmt.Errorf("failed to scan folder match: %w", err)
		}
		m.Strategy = model.MatchStrategy(strategy)
		matches = append(matches, m)
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read folder matches: %w", err)
	}

	for i, id := range ids {
		docs, err := s.folderDocuments(ctx, id)
		if err != nil {
			return nil, err
		}
		matches[i].Documents = docs
	}
	return matches, nil
}

func (s *Store) folderDocuments(ctx context.Context, matchID int64) ([]model.Document, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT file_name, kind FROM folder_documents WHERE folder_match_id = ? ORDER BY id
	`, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query folder documents: %w", err)
	}
	defer rows.Close()

	var docs []model.Document
	for rows.Next() {
		var d model.Document
		var kind string
		if err := rows.Scan(&d.FileName, &kind); err != nil {
			return nil, fmt.Errorf("failed to scan folder document: %w", err)
		}
		d.Kind = model.DocumentKind(kind)
		docs = append(docs, d)
	}
	return docs, rows.Err()
}
