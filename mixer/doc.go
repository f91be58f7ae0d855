// SPDX-License-Identifier: EPL-2.0

// Package mixer sums a fixed pool of voices into raw PCM output.
//
// A Mixer is built from a Config naming the voice count, the output buffer
// size in bytes and the output format (channels, 8 or 16 bits, signedness
// and sample rate). Construction validates everything before any memory is
// allocated; a failing New leaves nothing behind.
//
// # Voices
//
// Each voice plays one audio.Sample at a time:
//
//	m, _ := mixer.New(mixer.DefaultConfig())
//	v, _ := m.Voice(0)
//	v.Play(sample, false) // once
//	v.SetLevel(0.5)
//	v.Stop()
//
// Voice control is safe from any goroutine while another goroutine fills
// buffers. A sample whose format does not match the mixer's is rejected
// with ErrFormatMismatch unless Config.AllowConversion is set, in which case
// bit depth and channel count are converted on the fly. Signedness is
// always converted. Sample rates must always match.
//
// # Output
//
// FillNextBuffer alternates between two buffers, so the slice returned by
// one call stays untouched while the next one is filled:
//
//	buf, err := m.FillNextBuffer()
//
// Summed values saturate at the limits of the output bit depth. A voice
// that runs out of data contributes silence for the rest of the buffer and
// becomes inactive; a looping voice rewinds its sample and carries on.
//
// Run and RunUntilIdle drive the fill loop into a Sink, and Reader exposes
// the mixer as an io.Reader for pull based drivers.
//
// # Lifetime
//
// Deinit stops every voice, releases the buffers and the optional claim
// passed with WithClaim. It is idempotent. After it every operation fails
// with ErrDeinitialized. With scopes a mixer to a function call.
package mixer
