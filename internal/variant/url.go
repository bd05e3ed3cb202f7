package variant

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// DefaultReportURL is the OpenCRAVAT single variant report page.
const DefaultReportURL = "https://run.opencravat.org/webapps/variantreport/index.html"

var (
	// ErrUnrecognized is returned when a URL is requested for input that
	// matched no format.
	ErrUnrecognized = errors.New("unrecognized variant input")
	// ErrMissingAssembly is returned when coordinates are built without an assembly.
	ErrMissingAssembly = errors.New("assembly required for coordinate input")
	// ErrInvalidAssembly is returned for assemblies outside hg38/hg19.
	ErrInvalidAssembly = errors.New("invalid assembly")
	// ErrInvalidCoordinates is returned when the input classified as
	// coordinates no longer tokenizes.
	ErrInvalidCoordinates = errors.New("invalid coordinates")
)

// URLBuilder renders variant report URLs against a base page.
type URLBuilder struct {
	BaseURL string
}

// NewURLBuilder returns a builder for base, falling back to DefaultReportURL.
func NewURLBuilder(base string) *URLBuilder {
	if base == "" {
		base = DefaultReportURL
	}
	return &URLBuilder{BaseURL: base}
}

// Build returns the report URL for a classified, normalized input.
// The assembly is consulted only for Coordinates.
func (b *URLBuilder) Build(c Category, input string, assembly Assembly) (string, error) {
	base := b.BaseURL
	if base == "" {
		base = DefaultReportURL
	}

	switch c {
	case DbSnp:
		return base + "?dbsnp=" + input, nil
	case ClinGenAllele:
		return base + "?clingen=" + input, nil
	case Hgvs:
		return base + "?hgvs=" + FormatHGVS(input), nil
	case Coordinates:
		if assembly == "" {
			return "", ErrMissingAssembly
		}
		if !assembly.Valid() {
			return "", fmt.Errorf("%w: %q", ErrInvalidAssembly, string(assembly))
		}
		coord, ok := ParseCoordinates(input)
		if !ok {
			return "", fmt.Errorf("%w: %q", ErrInvalidCoordinates, input)
		}
		return base + "?" + coordinateQuery(assembly, coord), nil
	case Unrecognized:
		return "", fmt.Errorf("%w: %q", ErrUnrecognized, input)
	default:
		return "", fmt.Errorf("%w: category %s", ErrUnrecognized, c)
	}
}

// coordinateQuery keeps the parameter order of the report page links.
func coordinateQuery(assembly Assembly, c Coordinate) string {
	pairs := [][2]string{
		{"assembly", string(assembly)},
		{"chrom", c.Chrom},
		{"pos", c.Pos},
		{"ref_base", c.Ref},
		{"alt_base", c.Alt},
	}
	var sb strings.Builder
	for i, p := range pairs {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(p[0])
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(p[1]))
	}
	return sb.String()
}

var defaultBuilder = NewURLBuilder(DefaultReportURL)

// BuildURL renders a URL against DefaultReportURL.
func BuildURL(c Category, input string, assembly Assembly) (string, error) {
	return defaultBuilder.Build(c, input, assembly)
}
