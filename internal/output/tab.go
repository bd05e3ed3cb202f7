// Package output provides resolution output formatters.
package output

import (
	"bufio"
	"io"
	"strings"

	"github.com/KarchinLab/open-cravat-extras/internal/resolve"
)

// TabWriter writes resolutions in tab-delimited format.
type TabWriter struct {
	w       *bufio.Writer
	columns []string
}

// NewTabWriter creates a new tab-delimited writer.
func NewTabWriter(w io.Writer) *TabWriter {
	return &TabWriter{
		w: bufio.NewWriter(w),
		columns: []string{
			"#Input",
			"Category",
			"Chrom",
			"Pos",
			"Ref",
			"Alt",
			"Assembly",
			"URL",
		},
	}
}

// WriteHeader writes the header line.
func (tw *TabWriter) WriteHeader() error {
	_, err := tw.w.WriteString(strings.Join(tw.columns, "\t") + "\n")
	return err
}

// Write writes a single resolution.
func (tw *TabWriter) Write(res *resolve.Resolution) error {
	chrom, pos, ref, alt := "-", "-", "-", "-"
	if c := res.Coordinates; c != nil {
		chrom, pos, ref, alt = c.Chrom, c.Pos, c.Ref, c.Alt
	}

	values := []string{
		orDash(strings.ReplaceAll(res.Normalized, "\t", " ")),
		res.Category.String(),
		chrom,
		pos,
		ref,
		alt,
		orDash(string(res.Assembly)),
		orDash(res.URL),
	}

	_, err := tw.w.WriteString(strings.Join(values, "\t") + "\n")
	return err
}

// Flush flushes any buffered data to the underlying writer.
func (tw *TabWriter) Flush() error {
	return tw.w.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
