package rounddomain

import (
	"regexp"
	"strconv"
)

var leadingInt = regexp.MustCompile(`^\s*([+-]?\d+)`)

// ParseManualInput reads the leading integer of free-text input such as
// "145" or "145m". ok is false when there is none, in which case callers use
// their suggested or automatic value.
func ParseManualInput(s string) (int, bool) {
	m := leadingInt.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// clamp bounds n to [lo, hi].
func clamp(n, lo, hi int) int {
	return min(max(n, lo), hi)
}
