package util

// Clamp limits value to the range [lo, hi].
func Clamp(value float64, lo float64, hi float64) float64 {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

// Clamp01 limits value to the range [0, 1].
func Clamp01(value float64) float64 {
	return Clamp(value, 0, 1)
}

// Remap maps value linearly from [inMin, inMax] onto [outMin, outMax].
// A zero-width input range maps everything onto outMin.
func Remap(inMin float64, inMax float64, outMin float64, outMax float64, value float64) float64 {
	if inMax == inMin {
		return outMin
	}
	return outMin + (value-inMin)/(inMax-inMin)*(outMax-outMin)
}

// Lerp interpolates between a and b with t clamped to [0, 1].
func Lerp(a float64, b float64, t float64) float64 {
	return LerpUnclamped(a, b, Clamp01(t))
}

// LerpUnclamped interpolates between a and b, extrapolating when t is
// outside [0, 1].
func LerpUnclamped(a float64, b float64, t float64) float64 {
	return a + (b-a)*t
}
