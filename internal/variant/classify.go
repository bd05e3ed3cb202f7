package variant

import "strings"

// Normalize trims surrounding whitespace and lower-cases raw input.
// Every detector in this package assumes its input went through Normalize.
func Normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// referenceSequenceTypes are the HGVS reference sequence prefixes
// (coding, genomic, mitochondrial, non-coding, circular, protein, RNA).
var referenceSequenceTypes = map[string]bool{
	"c": true, "g": true, "m": true, "n": true, "o": true, "p": true, "r": true,
}

// IsDbSnp reports whether input looks like a dbSNP rsID.
func IsDbSnp(input string) bool {
	return strings.HasPrefix(input, "rs")
}

// IsClinGenAllele reports whether input looks like a ClinGen Allele Registry ID.
func IsClinGenAllele(input string) bool {
	return strings.HasPrefix(input, "ca")
}

// IsHGVS reports whether input has the shape <accession>:<type>.<description>.
// Only the prefix shape is checked; the description is not validated.
func IsHGVS(input string) bool {
	parts := strings.Split(input, ":")
	if len(parts) != 2 {
		return false
	}
	desc := strings.Split(parts[1], ".")
	if len(desc) != 2 {
		return false
	}
	return referenceSequenceTypes[desc[0]]
}

// Classify returns the first matching category for a normalized input.
// Detectors run in priority order: dbSNP, ClinGen, HGVS, coordinates.
func Classify(input string) Category {
	switch {
	case IsDbSnp(input):
		return DbSnp
	case IsClinGenAllele(input):
		return ClinGenAllele
	case IsHGVS(input):
		return Hgvs
	}
	if _, ok := ParseCoordinates(input); ok {
		return Coordinates
	}
	return Unrecognized
}

// Example is a sample input for one category.
type Example struct {
	Category Category `json:"category" yaml:"category"`
	Input    string   `json:"input" yaml:"input"`
}

// Examples returns one accepted input per recognized category.
func Examples() []Example {
	return []Example{
		{DbSnp, "rs334"},
		{ClinGenAllele, "CA123643"},
		{Hgvs, "NM_000518.5:c.20A>T"},
		{Coordinates, "chr11 5227002 t a"},
		{Coordinates, "7:117559590:a:t"},
	}
}
