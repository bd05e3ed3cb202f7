package output

import (
	"errors"

	"github.com/KarchinLab/open-cravat-extras/internal/resolve"
)

// MultiWriter fans resolutions out to several writers.
type MultiWriter struct {
	writers []resolve.Writer
}

// NewMultiWriter returns a writer that forwards to every w in order.
func NewMultiWriter(w ...resolve.Writer) *MultiWriter {
	return &MultiWriter{writers: w}
}

func (m *MultiWriter) WriteHeader() error {
	for _, w := range m.writers {
		if err := w.WriteHeader(); err != nil {
			return err
		}
	}
	return nil
}

func (m *MultiWriter) Write(res *resolve.Resolution) error {
	for _, w := range m.writers {
		if err := w.Write(res); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes every writer and joins their errors.
func (m *MultiWriter) Flush() error {
	var errs []error
	for _, w := range m.writers {
		errs = append(errs, w.Flush())
	}
	return errors.Join(errs...)
}
