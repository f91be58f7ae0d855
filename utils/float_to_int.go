// SPDX-License-Identifier: EPL-2.0

package utils

func Float32ToInt16(x float32) int16 {
	// Clamp and scale
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// Use 32767 for positive max to avoid overflow
	return int16(x * 32767.0)
}

func Float32ToInt8(x float32) int8 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	return int8(x * 127.0)
}
