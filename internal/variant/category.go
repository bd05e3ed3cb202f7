// Package variant classifies free-text variant identifiers and builds
// variant report URLs for them.
//
// All functions operate on input that has already been trimmed and
// lower-cased (see Normalize). Nothing in this package performs I/O.
package variant

import "fmt"

// Category is the detected notation of a variant identifier.
type Category int

const (
	// Unrecognized means no format detector matched.
	Unrecognized Category = iota
	// DbSnp is a dbSNP reference SNP identifier (rs334).
	DbSnp
	// ClinGenAllele is a ClinGen Allele Registry identifier (CA123).
	ClinGenAllele
	// Hgvs is an HGVS expression (NM_000000.1:c.76A>T).
	Hgvs
	// Coordinates is a chromosome/position/ref/alt quadruple.
	Coordinates
)

var categoryNames = map[Category]string{
	Unrecognized:  "error",
	DbSnp:         "dbsnp",
	ClinGenAllele: "clingen",
	Hgvs:          "hgvs",
	Coordinates:   "coords",
}

// String returns the short name used in output and JSON responses.
func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// ParseCategory converts a short name back into a Category.
func ParseCategory(s string) (Category, error) {
	for c, name := range categoryNames {
		if name == s {
			return c, nil
		}
	}
	return Unrecognized, fmt.Errorf("unknown category %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(b []byte) error {
	parsed, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
