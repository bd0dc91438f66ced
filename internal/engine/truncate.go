package engine

import "math"

// truncInt truncates v toward zero, saturating at the int range. NaN maps
// to 0.
func truncInt(v float64) int {
	switch {
	case math.IsNaN(v):
		return 0
	case v >= math.MaxInt:
		return math.MaxInt
	case v <= math.MinInt:
		return math.MinInt
	}
	return int(v)
}
