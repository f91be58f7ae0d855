// SPDX-License-Identifier: EPL-2.0

package utils

// Widen8To16 scales a signed 8-bit sample to 16 bits by replicating the
// byte into the low half, so full scale maps close to full scale and zero
// stays zero.
func Widen8To16(s int8) int16 {
	return int16(s)<<8 | int16(uint8(s))
}

// Narrow16To8 keeps the high byte. Narrow16To8(Widen8To16(s)) == s for
// every s.
func Narrow16To8(s int16) int8 {
	return int8(s >> 8)
}

// ToUnsigned8 biases a signed 8-bit sample by +128.
func ToUnsigned8(s int8) uint8 { return uint8(s) ^ 0x80 }

// ToSigned8 removes the +128 bias of an unsigned 8-bit sample.
func ToSigned8(u uint8) int8 { return int8(u ^ 0x80) }

// ToUnsigned16 biases a signed 16-bit sample by +32768.
func ToUnsigned16(s int16) uint16 { return uint16(s) ^ 0x8000 }

// ToSigned16 removes the +32768 bias of an unsigned 16-bit sample.
func ToSigned16(u uint16) int16 { return int16(u ^ 0x8000) }

// MonoToStereo duplicates a mono sample into both channels.
func MonoToStereo(v int32) (left, right int32) { return v, v }

// StereoToMono averages the two channels, rounding toward negative infinity.
func StereoToMono(left, right int32) int32 { return (left + right) >> 1 }
