// Package input reads variant identifiers, one per line, from batch files.
package input

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

// Line is a single non-blank, non-comment input line.
type Line struct {
	Number int    // 1-based line number in the source
	Text   string // raw text with the line terminator removed
}

// Source is implemented by anything that yields input lines.
type Source interface {
	// Next returns the next line, or nil, nil when the input is exhausted.
	Next() (*Line, error)
	Close() error
}

// Reader reads identifiers from a plain or gzipped text file.
type Reader struct {
	reader     *bufio.Reader
	file       *os.File
	gzipReader *gzip.Reader
	lineNumber int
}

// NewReader opens path for reading. A path of "-" reads stdin.
// Gzipped files are detected by their magic bytes.
func NewReader(path string) (*Reader, error) {
	if path == "-" {
		return NewReaderFrom(os.Stdin), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input file: %w", err)
	}

	r := &Reader{file: file}

	buf := make([]byte, 2)
	n, err := io.ReadFull(file, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		file.Close()
		return nil, fmt.Errorf("read input header: %w", err)
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		file.Close()
		return nil, fmt.Errorf("seek input file: %w", err)
	}

	if n == 2 && buf[0] == 0x1f && buf[1] == 0x8b {
		r.gzipReader, err = gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		r.reader = bufio.NewReader(r.gzipReader)
	} else {
		r.reader = bufio.NewReader(file)
	}

	return r, nil
}

// NewReaderFrom wraps an already open stream.
func NewReaderFrom(rd io.Reader) *Reader {
	return &Reader{reader: bufio.NewReader(rd)}
}

// Next returns the next identifier line. Blank lines and lines starting
// with '#' are skipped.
func (r *Reader) Next() (*Line, error) {
	for {
		text, err := r.reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("read line %d: %w", r.lineNumber+1, err)
		}
		if err == io.EOF && text == "" {
			return nil, nil
		}
		r.lineNumber++

		text = strings.TrimRight(text, "\r\n")
		trimmed := strings.TrimSpace(text)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			if err == io.EOF {
				return nil, nil
			}
			continue
		}

		return &Line{Number: r.lineNumber, Text: text}, nil
	}
}

// LineNumber returns the number of the last line read.
func (r *Reader) LineNumber() int {
	return r.lineNumber
}

// Close closes the underlying file, if any.
func (r *Reader) Close() error {
	if r.gzipReader != nil {
		r.gzipReader.Close()
	}
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// SliceSource serves lines from memory.
type SliceSource struct {
	lines []string
	next  int
}

// NewSliceSource returns a Source over inputs, numbering them from 1.
func NewSliceSource(inputs []string) *SliceSource {
	return &SliceSource{lines: inputs}
}

// Next returns the next input. Unlike Reader it does not skip blanks.
func (s *SliceSource) Next() (*Line, error) {
	if s.next >= len(s.lines) {
		return nil, nil
	}
	s.next++
	return &Line{Number: s.next, Text: s.lines[s.next-1]}, nil
}

// Close is a no-op.
func (s *SliceSource) Close() error { return nil }
