// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// UnityQ16 is a level of 1.0 in Q16 fixed point.
const UnityQ16 uint32 = 1 << 16

// LevelToQ16 converts a level in [0, 1] to Q16. Out of range input is
// clamped; NaN maps to 0.
func LevelToQ16(level float64) uint32 {
	switch {
	case math.IsNaN(level), level <= 0:
		return 0
	case level >= 1:
		return UnityQ16
	}

	return uint32(math.Round(level * float64(UnityQ16)))
}

// Q16ToLevel is the inverse of LevelToQ16.
func Q16ToLevel(q uint32) float64 {
	return float64(q) / float64(UnityQ16)
}

// ApplyLevel scales v by a Q16 level. Unity leaves v untouched.
func ApplyLevel(v int32, q uint32) int32 {
	if q == UnityQ16 {
		return v
	}

	return int32((int64(v) * int64(q)) >> 16)
}

// Saturate clamps v to the signed range of a bits wide sample.
func Saturate(v int32, bits int) int32 {
	hi := int32(1)<<(bits-1) - 1
	lo := -hi - 1

	if v > hi {
		return hi
	}
	if v < lo {
		return lo
	}

	return v
}
