package coursedomain

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// TeeColorOrder is the display order of tee colours, longest tees first.
var TeeColorOrder = []string{"wit", "geel", "oranje", "blauw", "rood"}

func teeRank(tee string) int {
	for i, t := range TeeColorOrder {
		if t == tee {
			return i
		}
	}
	return len(TeeColorOrder)
}

// teeLess orders known colours by TeeColorOrder and unknown ones after, alphabetically.
func teeLess(a, b string) bool {
	ra, rb := teeRank(a), teeRank(b)
	if ra != rb {
		return ra < rb
	}
	return a < b
}

// AvailableTees lists the tees with a positive distance, ordered and capitalised.
func AvailableTees(distances map[string]int) []string {
	normalised := make(map[string]int, len(distances))
	for k, v := range distances {
		normalised[strings.ToLower(strings.TrimSpace(k))] = v
	}

	tees := []string{}
	for _, tee := range orderedTees(normalised) {
		if normalised[tee] > 0 {
			tees = append(tees, Capitalize(tee))
		}
	}
	return tees
}

// SortTeeNames orders and capitalises a plain list of tee colours.
func SortTeeNames(names []string) []string {
	distances := make(map[string]int, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			distances[n] = 1
		}
	}
	return AvailableTees(distances)
}

// Capitalize upper-cases the first letter of s.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
