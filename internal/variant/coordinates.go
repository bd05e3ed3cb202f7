package variant

import "strings"

// Coordinate is a validated chromosome/position/ref/alt quadruple.
type Coordinate struct {
	Chrom string `json:"chrom" yaml:"chrom"` // canonical chr<N> form
	Pos   string `json:"pos" yaml:"pos"`     // original position text
	Ref   string `json:"ref" yaml:"ref"`     // reference bases, "-" for insertions
	Alt   string `json:"alt" yaml:"alt"`     // alternate bases, "-" for deletions
}

// IsInsertion reports whether the reference allele is the "-" placeholder.
func (c Coordinate) IsInsertion() bool {
	return c.Ref == "-"
}

// IsDeletion reports whether the alternate allele is the "-" placeholder.
func (c Coordinate) IsDeletion() bool {
	return c.Alt == "-"
}

// coordinateSeparators maps every accepted token separator to ";".
var coordinateSeparators = strings.NewReplacer(":", ";", ".", ";", " ", ";", "\t", ";")

var validChromosomes = map[string]bool{
	"1": true, "2": true, "3": true, "4": true, "5": true, "6": true,
	"7": true, "8": true, "9": true, "10": true, "11": true, "12": true,
	"13": true, "14": true, "15": true, "16": true, "17": true, "18": true,
	"19": true, "20": true, "21": true, "22": true,
	"x": true, "y": true, "m": true,
}

// ParseCoordinates splits a normalized input on ':', '.', space, tab (and
// ';') into exactly four tokens and validates each one. It returns false
// if any field is invalid; a partial Coordinate is never returned.
func ParseCoordinates(input string) (Coordinate, bool) {
	parts := strings.Split(coordinateSeparators.Replace(input), ";")
	if len(parts) != 4 {
		return Coordinate{}, false
	}

	chrom, ok := NormalizeChromosome(parts[0])
	if !ok {
		return Coordinate{}, false
	}
	if !hasIntegerPrefix(parts[1]) {
		return Coordinate{}, false
	}
	if !isBases(parts[2]) || !isBases(parts[3]) {
		return Coordinate{}, false
	}

	return Coordinate{Chrom: chrom, Pos: parts[1], Ref: parts[2], Alt: parts[3]}, true
}

// NormalizeChromosome strips an optional "chr" prefix, maps "mt" to "m" and
// returns the canonical "chr" form for 1-22, x, y and m.
func NormalizeChromosome(token string) (string, bool) {
	id := strings.TrimPrefix(token, "chr")
	if id == "mt" {
		id = "m"
	}
	if !validChromosomes[id] {
		return "", false
	}
	return "chr" + id, true
}

// hasIntegerPrefix reports whether s starts with an integer literal:
// an optional sign followed by a decimal digit, or by "0x" and a hex digit.
// Trailing characters are tolerated.
func hasIntegerPrefix(s string) bool {
	if s != "" && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	if len(s) >= 2 && s[0] == '0' && s[1] == 'x' {
		return len(s) > 2 && isHexDigit(s[2])
	}
	return s != "" && s[0] >= '0' && s[0] <= '9'
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f')
}

// isBases reports whether s is a non-empty run of a, c, g, t or '-'.
func isBases(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'a', 'c', 'g', 't', '-':
		default:
			return false
		}
	}
	return true
}
