// SPDX-License-Identifier: EPL-2.0

// Package raw provides audio.Sample implementations over headerless PCM
// held in memory.
//
//	s := raw.FromInt16([]int16{0, 1000, -1000}, 8000, 1)
//	tone, err := raw.Sine(format, 440, 0.5, 8000)
//
// Loader reads .raw and .pcm files; since such files carry no header, the
// format is part of the Loader value:
//
//	registry.Register("pcm", raw.Loader{Format: format})
package raw
