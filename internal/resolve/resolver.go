// Package resolve turns raw user input into variant report links.
package resolve

import (
	"fmt"
	"runtime"

	"go.uber.org/zap"

	"github.com/KarchinLab/open-cravat-extras/internal/input"
	"github.com/KarchinLab/open-cravat-extras/internal/variant"
)

// Resolution is the outcome of resolving one input.
// URL is empty when Category is variant.Unrecognized.
type Resolution struct {
	Seq         int                 `json:"-" yaml:"-"`
	Input       string              `json:"input" yaml:"input"`
	Normalized  string              `json:"normalized" yaml:"normalized"`
	Category    variant.Category    `json:"category" yaml:"category"`
	Coordinates *variant.Coordinate `json:"coordinates,omitempty" yaml:"coordinates,omitempty"`
	Assembly    variant.Assembly    `json:"assembly,omitempty" yaml:"assembly,omitempty"`
	URL         string              `json:"url,omitempty" yaml:"url,omitempty"`
}

// Recognized reports whether the input matched any format.
func (r *Resolution) Recognized() bool {
	return r.Category != variant.Unrecognized
}

// Resolver normalizes, classifies and builds URLs.
type Resolver struct {
	builder *variant.URLBuilder
	logger  *zap.Logger
}

// NewResolver creates a resolver that links to baseURL
// (variant.DefaultReportURL when empty).
func NewResolver(baseURL string) *Resolver {
	return &Resolver{
		builder: variant.NewURLBuilder(baseURL),
		logger:  zap.NewNop(),
	}
}

// SetLogger sets the logger for debug messages.
func (r *Resolver) SetLogger(l *zap.Logger) {
	r.logger = l
}

// BaseURL returns the report page the resolver links to.
func (r *Resolver) BaseURL() string {
	return r.builder.BaseURL
}

// Resolve classifies raw input and, when recognized, builds its URL.
// Unrecognized input is not an error. The assembly is only required for
// coordinate input, and an invalid one is reported as an error.
func (r *Resolver) Resolve(raw string, assembly variant.Assembly) (*Resolution, error) {
	norm := variant.Normalize(raw)
	res := &Resolution{
		Input:      raw,
		Normalized: norm,
		Category:   variant.Classify(norm),
	}

	switch res.Category {
	case variant.Unrecognized:
		r.logger.Debug("unrecognized input", zap.String("input", norm))
		return res, nil
	case variant.Coordinates:
		coord, _ := variant.ParseCoordinates(norm)
		res.Coordinates = &coord
		res.Assembly = assembly
	}

	u, err := r.builder.Build(res.Category, norm, assembly)
	if err != nil {
		return nil, fmt.Errorf("build url for %q: %w", norm, err)
	}
	res.URL = u

	r.logger.Debug("resolved input",
		zap.String("input", norm),
		zap.Stringer("category", res.Category),
		zap.String("url", u))
	return res, nil
}

// Writer receives resolutions in input order.
type Writer interface {
	WriteHeader() error
	Write(res *Resolution) error
	Flush() error
}

// Summary counts resolutions per category.
type Summary struct {
	Total  int
	Counts map[variant.Category]int
}

// Unrecognized returns the number of inputs that matched no format.
func (s Summary) Unrecognized() int {
	return s.Counts[variant.Unrecognized]
}

// ResolveAll resolves every line from src with a pool of workers and writes
// the results to w in input order. Lines that fail with a precondition
// error are logged and skipped.
func (r *Resolver) ResolveAll(src input.Source, assembly variant.Assembly, w Writer, workers int) (Summary, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	items := make(chan WorkItem, 2*workers)
	var readErr error

	go func() {
		defer close(items)
		seq := 0
		for {
			line, err := src.Next()
			if err != nil {
				readErr = fmt.Errorf("read input: %w", err)
				return
			}
			if line == nil {
				return
			}
			items <- WorkItem{Seq: seq, Line: line.Number, Input: line.Text}
			seq++
		}
	}()

	summary := Summary{Counts: make(map[variant.Category]int)}

	if err := w.WriteHeader(); err != nil {
		for range r.ParallelResolve(items, assembly, workers) {
		}
		return summary, fmt.Errorf("write header: %w", err)
	}

	results := r.ParallelResolve(items, assembly, workers)
	if err := OrderedCollect(results, func(wr WorkResult) error {
		if wr.Err != nil {
			r.logger.Warn("failed to resolve input",
				zap.Int("line", wr.Line),
				zap.String("input", wr.Input),
				zap.Error(wr.Err))
			return nil
		}
		summary.Total++
		summary.Counts[wr.Resolution.Category]++
		if err := w.Write(wr.Resolution); err != nil {
			return fmt.Errorf("write resolution: %w", err)
		}
		return nil
	}); err != nil {
		return summary, err
	}

	if readErr != nil {
		return summary, readErr
	}

	if summary.Total == 0 {
		r.logger.Info("0 inputs processed")
	}

	return summary, w.Flush()
}
