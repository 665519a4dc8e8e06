package ark

import "strings"

const (
	MIN_DIMENSION = 100
	MAX_DIMENSION = 10000
)

// ValidateSize reports whether size is a "<width>x<height>" string with both
// dimensions in [100, 10000]. Anything unparseable is invalid; the provider
// rejects bad dimensions with opaque errors so we gate them here instead.
func ValidateSize(size string) bool {
	w, h, found := strings.Cut(size, "x")
	if !found {
		return false
	}
	width, ok := parseDimension(w)
	if !ok {
		return false
	}
	height, ok := parseDimension(h)
	if !ok {
		return false
	}
	return MIN_DIMENSION <= width && width <= MAX_DIMENSION &&
		MIN_DIMENSION <= height && height <= MAX_DIMENSION
}

// parseDimension accepts plain digit runs only, no signs or whitespace
func parseDimension(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n := 0
	for _, c := range []byte(s) {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
		if n > MAX_DIMENSION {
			// already out of range, clamp to avoid overflow on long runs
			return MAX_DIMENSION + 1, true
		}
	}
	return n, true
}
