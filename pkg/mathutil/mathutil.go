// Package mathutil provides the small numeric helpers shared by the
// analysis functions: fraction formatting, Gaussian smoothing, and a
// median that ignores nothing it isn't given.
package mathutil

import (
	"fmt"
	"math"
	"sort"
	"strconv"
)

// GCD returns the greatest common divisor of a and b.
func GCD(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// Findnum returns the smallest integer k such that k * v is a natural
// number, where v is given as a decimal string (e.g. "0.25" -> 4).
// Malformed input (anything but digits and at most one dot) is an error.
func Findnum(s string) (int, error) {
	num := 0
	countAfterDot := 0
	dotSeen := false

	for _, r := range s {
		if r == '.' {
			if dotSeen {
				return 0, fmt.Errorf("malformed decimal %q", s)
			}
			dotSeen = true
			continue
		}
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("malformed decimal %q", s)
		}
		num = num*10 + int(r-'0')
		if dotSeen {
			countAfterDot++
		}
	}

	if !dotSeen {
		return 1, nil
	}

	dem := int(math.Pow(10, float64(countAfterDot)))
	return dem / GCD(num, dem), nil
}

// PercentHelper renders a ratio as a human-readable fraction string.
//
// The value is truncated to two decimal places first. Values above 0.01
// become "a out of b messages" with a/b the reduced fraction equal to
// the truncated decimal; anything at or below 0.01 becomes the fixed
// string "<1 out of 100 messages".
//
//	PercentHelper(0.25)  -> "1 out of 4 messages"
//	PercentHelper(0.333) -> "33 out of 100 messages"
//	PercentHelper(0.005) -> "<1 out of 100 messages"
func PercentHelper(p float64) string {
	truncated := math.Floor(p*100) / 100

	if truncated > 0.01 {
		k, err := Findnum(strconv.FormatFloat(truncated, 'f', -1, 64))
		if err != nil {
			// FormatFloat output is always a well-formed decimal.
			return "<1 out of 100 messages"
		}
		return fmt.Sprintf("%d out of %d messages",
			int(math.Round(truncated*float64(k))), k)
	}
	return "<1 out of 100 messages"
}

// GaussianSmooth applies a 1-D Gaussian kernel with the given sigma to
// values, using reflected edges so the output has no boundary falloff.
// The kernel is truncated at four sigma. Sigma <= 0 returns a copy.
func GaussianSmooth(values []float64, sigma float64) []float64 {
	out := make([]float64, len(values))
	if sigma <= 0 || len(values) == 0 {
		copy(out, values)
		return out
	}

	kernel := gaussianKernel(sigma)
	radius := len(kernel) / 2
	n := len(values)

	for i := range values {
		var sum float64
		for k, w := range kernel {
			idx := reflectIndex(i+k-radius, n)
			sum += w * values[idx]
		}
		out[i] = sum
	}
	return out
}

// gaussianKernel builds a normalized kernel of width 2*radius+1.
func gaussianKernel(sigma float64) []float64 {
	radius := int(4*sigma + 0.5)
	kernel := make([]float64, 2*radius+1)
	var total float64
	for i := range kernel {
		x := float64(i - radius)
		kernel[i] = math.Exp(-x * x / (2 * sigma * sigma))
		total += kernel[i]
	}
	for i := range kernel {
		kernel[i] /= total
	}
	return kernel
}

// reflectIndex maps an out-of-range index back into [0, n) by mirroring
// at the edges (d c b a | a b c d | d c b a).
func reflectIndex(i, n int) int {
	if n == 1 {
		return 0
	}
	period := 2 * n
	i = ((i % period) + period) % period
	if i >= n {
		return period - 1 - i
	}
	return i
}

// Median returns the median of values, or 0 for an empty slice.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// Round2 rounds v to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
