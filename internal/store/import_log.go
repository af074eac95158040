package store

import (
	"database/sql"
	"fmt"
)

// CreateImportLog records the start of an import run, returning its id.
func (s *Store) CreateImportLog(filename, filePath string) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO import_logs (filename, file_path, status)
		VALUES (?, ?, 'processing')
	`, filename, filePath)
	if err != nil {
		return 0, fmt.Errorf("failed to create import log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get import log id: %w", err)
	}
	return id, nil
}

// UpdateImportLog finalizes an import run record.
func (s *Store) UpdateImportLog(id int64, totalSheets, importedSheets, skippedSheets, totalRows, importedRows, errorRows int, status, errorMessage string) error {
	_, err := s.db.Exec(`
		UPDATE import_logs SET
			total_sheets = ?,
			imported_sheets = ?,
			skipped_sheets = ?,
			total_rows = ?,
			imported_rows = ?,
			error_rows = ?,
			status = ?,
			error_message = ?,
			completed_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, totalSheets, importedSheets, skippedSheets, totalRows, importedRows, errorRows, status, errorMessage, id)
	if err != nil {
		return fmt.Errorf("failed to update import log: %w", err)
	}
	return nil
}

// LastImportTime returns the completion time of the most recent import, or ""
// when no import has run.
func (s *Store) LastImportTime() (string, error) {
	var t sql.NullString
	err := s.db.QueryRow(`
		SELECT completed_at FROM import_logs
		WHERE completed_at IS NOT NULL
		ORDER BY completed_at DESC LIMIT 1
	`).Scan(&t)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query last import time: %w", err)
	}
	return t.String, nil
}
