// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF (Audio Interchange File Format) samples.
//
// This package uses github.com/go-audio/aiff to decode AIFF files.
// AIFF is Apple's standard audio file format, commonly used on macOS.
//
// # Supported Formats
//
// Currently supported:
//   - PCM 8-bit and 16-bit, both signed as AIFF defines them
//   - Mono and multi-channel
//   - Any sample rate
//
// # Opening AIFF Files
//
//	file, _ := os.Open("audio.aif")
//	sample, err := aiff.Open(file, 0)
//	if err != nil {
//	    // Handle error
//	}
//
// The returned audio.Sample can be played on a mixer voice. Reset seeks the
// file back to the start, so it must stay open while the sample is in use.
//
// Register Loader to open AIFF files through an audio.Registry:
//
//	registry.Register("aiff", aiff.Loader{})
//	registry.Register("aif", aiff.Loader{})
package aiff
