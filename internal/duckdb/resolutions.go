package duckdb

import (
	"context"
	"database/sql/driver"
	"fmt"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/KarchinLab/open-cravat-extras/internal/resolve"
	"github.com/KarchinLab/open-cravat-extras/internal/variant"
)

// resultKey identifies a resolution for de-duplication.
type resultKey struct {
	normalized string
	assembly   variant.Assembly
}

// WriteResolutions batch-inserts resolutions using the Appender API.
// Repeated (normalized input, assembly) pairs within one call are written once.
func (s *Store) WriteResolutions(results []*resolve.Resolution) error {
	if len(results) == 0 {
		return nil
	}

	seen := make(map[resultKey]bool, len(results))
	deduped := make([]*resolve.Resolution, 0, len(results))
	for _, r := range results {
		k := resultKey{r.Normalized, r.Assembly}
		if !seen[k] {
			seen[k] = true
			deduped = append(deduped, r)
		}
	}

	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", "resolutions")
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}
	defer appender.Close()

	for _, r := range deduped {
		var c variant.Coordinate
		if r.Coordinates != nil {
			c = *r.Coordinates
		}
		if err := appender.AppendRow(
			r.Input, r.Normalized, r.Category.String(),
			c.Chrom, c.Pos, c.Ref, c.Alt,
			string(r.Assembly), r.URL,
		); err != nil {
			return fmt.Errorf("append resolution: %w", err)
		}
	}

	return appender.Flush()
}

// LookupInput returns previously exported resolutions for a normalized input.
func (s *Store) LookupInput(normalized string) ([]*resolve.Resolution, error) {
	rows, err := s.db.Query(`SELECT
		input, normalized, category, chrom, pos, ref, alt, assembly, url
		FROM resolutions
		WHERE normalized=?`, normalized)
	if err != nil {
		return nil, fmt.Errorf("query input: %w", err)
	}
	defer rows.Close()

	var out []*resolve.Resolution
	for rows.Next() {
		var (
			res             resolve.Resolution
			category, asm   string
			chrom, pos, ref string
			alt             string
		)
		if err := rows.Scan(&res.Input, &res.Normalized, &category,
			&chrom, &pos, &ref, &alt, &asm, &res.URL); err != nil {
			return nil, fmt.Errorf("scan resolution: %w", err)
		}
		if res.Category, err = variant.ParseCategory(category); err != nil {
			return nil, fmt.Errorf("scan resolution: %w", err)
		}
		res.Assembly = variant.Assembly(asm)
		if res.Category == variant.Coordinates {
			res.Coordinates = &variant.Coordinate{Chrom: chrom, Pos: pos, Ref: ref, Alt: alt}
		}
		out = append(out, &res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate resolutions: %w", err)
	}
	return out, nil
}

// CountByCategory returns the number of exported rows per category.
func (s *Store) CountByCategory() (map[variant.Category]int, error) {
	rows, err := s.db.Query(`SELECT category, COUNT(*) FROM resolutions GROUP BY category`)
	if err != nil {
		return nil, fmt.Errorf("count by category: %w", err)
	}
	defer rows.Close()

	counts := make(map[variant.Category]int)
	for rows.Next() {
		var name string
		var n int64
		if err := rows.Scan(&name, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		c, err := variant.ParseCategory(name)
		if err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[c] = int(n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate counts: %w", err)
	}
	return counts, nil
}

// ClearResolutions removes all exported resolutions.
func (s *Store) ClearResolutions() error {
	_, err := s.db.Exec("DELETE FROM resolutions")
	return err
}

// Writer buffers resolutions and appends them to a Store on Flush.
// It satisfies resolve.Writer.
type Writer struct {
	store   *Store
	pending []*resolve.Resolution
	batch   int
}

// NewWriter returns a Writer that appends in batches of batchSize
// (1000 when batchSize <= 0).
func NewWriter(s *Store, batchSize int) *Writer {
	if batchSize <= 0 {
		batchSize = 1000
	}
	return &Writer{store: s, batch: batchSize}
}

// WriteHeader is a no-op; the schema is created by Open.
func (w *Writer) WriteHeader() error { return nil }

// Write queues a resolution, appending a full batch when reached.
func (w *Writer) Write(res *resolve.Resolution) error {
	w.pending = append(w.pending, res)
	if len(w.pending) >= w.batch {
		return w.Flush()
	}
	return nil
}

// Flush appends any queued resolutions.
func (w *Writer) Flush() error {
	if len(w.pending) == 0 {
		return nil
	}
	err := w.store.WriteResolutions(w.pending)
	w.pending = w.pending[:0]
	return err
}
