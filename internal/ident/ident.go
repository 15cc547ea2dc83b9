package ident

import (
	"regexp"
	"strings"
)

// Container numbers are three owner letters, the literal "U" and seven
// digits. Any other 9-char alphanumeric run is treated as a transport
// document number. The container alternative goes first so that it wins when
// both match at the same position.
var pattern = regexp.MustCompile(`[A-Z]{3}U[0-9]{7}|[A-Z0-9]{9}`)

// Extract returns candidate shipment identifiers found in free-form text:
// uppercased, in first-seen order, without duplicates.
func Extract(text string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, m := range pattern.FindAllString(strings.ToUpper(text), -1) {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	return out
}
