// Package mathutil provides small arithmetic helpers for output layout.
package mathutil

// Clamp limits v to the inclusive range [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Percent returns current/total as a whole percentage, clamped to
// [0, 100]. A zero or negative total yields 0.
func Percent(current, total int64) int {
	if total <= 0 {
		return 0
	}
	p := int(current * 100 / total)
	return Clamp(p, 0, 100)
}
