package output

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/KarchinLab/open-cravat-extras/internal/resolve"
)

// YAMLWriter writes each resolution as its own YAML document.
type YAMLWriter struct {
	enc *yaml.Encoder
}

// NewYAMLWriter creates a YAML document stream writer.
func NewYAMLWriter(w io.Writer) *YAMLWriter {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	return &YAMLWriter{enc: enc}
}

// WriteHeader is a no-op; YAML streams have no header.
func (yw *YAMLWriter) WriteHeader() error { return nil }

// Write encodes a single resolution.
func (yw *YAMLWriter) Write(res *resolve.Resolution) error {
	if err := yw.enc.Encode(res); err != nil {
		return fmt.Errorf("encode resolution: %w", err)
	}
	return nil
}

// Flush terminates the stream.
func (yw *YAMLWriter) Flush() error {
	return yw.enc.Close()
}
