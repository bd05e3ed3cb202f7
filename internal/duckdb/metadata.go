package duckdb

import (
	"fmt"
	"os"
	"time"

	"github.com/KarchinLab/open-cravat-extras/internal/resolve"
)

// FileFingerprint holds stat-based identity for a batch input file.
type FileFingerprint struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// StatFile creates a FileFingerprint from an on-disk file.
func StatFile(path string) (FileFingerprint, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileFingerprint{}, err
	}
	return FileFingerprint{
		Path:    path,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

// RecordExport stores which input produced an export and its totals.
func (s *Store) RecordExport(fp FileFingerprint, summary resolve.Summary) error {
	_, err := s.db.Exec(`INSERT INTO exports VALUES (?, ?, ?, ?, ?)`,
		fp.Path, fp.Size, fp.ModTime, int64(summary.Total), int64(summary.Unrecognized()))
	if err != nil {
		return fmt.Errorf("record export: %w", err)
	}
	return nil
}

// Exports lists recorded exports, oldest first.
func (s *Store) Exports() ([]FileFingerprint, error) {
	rows, err := s.db.Query(`SELECT source, size, mod_time FROM exports ORDER BY mod_time`)
	if err != nil {
		return nil, fmt.Errorf("query exports: %w", err)
	}
	defer rows.Close()

	var out []FileFingerprint
	for rows.Next() {
		var fp FileFingerprint
		if err := rows.Scan(&fp.Path, &fp.Size, &fp.ModTime); err != nil {
			return nil, fmt.Errorf("scan export: %w", err)
		}
		out = append(out, fp)
	}
	return out, rows.Err()
}
