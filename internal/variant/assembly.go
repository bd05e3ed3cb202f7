package variant

import "fmt"

// Assembly is a reference genome build selector.
type Assembly string

const (
	HG38 Assembly = "hg38"
	HG19 Assembly = "hg19"
)

// Assemblies lists the accepted values in display order.
var Assemblies = []Assembly{HG38, HG19}

// ParseAssembly validates s against the closed set of assemblies.
// Matching is case-insensitive on the normalized form.
func ParseAssembly(s string) (Assembly, error) {
	switch a := Assembly(Normalize(s)); a {
	case HG38, HG19:
		return a, nil
	case "":
		return "", ErrMissingAssembly
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidAssembly, s)
	}
}

// Valid reports whether a is one of the accepted assemblies.
func (a Assembly) Valid() bool {
	return a == HG38 || a == HG19
}
