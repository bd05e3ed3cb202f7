package variant

import (
	"net/url"
	"strings"
	"unicode/utf8"
)

// componentUnescaper restores the characters that encodeURIComponent leaves
// alone but url.QueryEscape escapes.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EscapeComponent percent-encodes s using the same unreserved set as
// JavaScript's encodeURIComponent.
func EscapeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

// CanonicalHGVS upper-cases an HGVS expression except for the reference
// sequence type letter that starts the description, so
// "nm_000000.1:c.76a>t" becomes "NM_000000.1:c.76A>T".
func CanonicalHGVS(input string) string {
	accession, desc, found := strings.Cut(strings.ToUpper(input), ":")
	if !found || desc == "" {
		return strings.ToUpper(input)
	}
	_, size := utf8.DecodeRuneInString(desc)
	return accession + ":" + strings.ToLower(desc[:size]) + desc[size:]
}

// FormatHGVS returns the canonical HGVS expression percent-encoded for
// use as a query value.
func FormatHGVS(input string) string {
	return EscapeComponent(CanonicalHGVS(input))
}
