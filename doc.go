// SPDX-License-Identifier: EPL-2.0

// Package audmix is a fixed-pool PCM voice mixer for Go applications.
//
// The engine lives in the mixer subpackage: a Mixer owns a fixed number of
// voices, each playing one sample at a time, and sums them into double
// buffered 8-bit or 16-bit PCM with saturation. This package adds
// convenience functions on top of it.
//
// # Supported Formats
//
// Samples can come from:
//   - WAV (PCM 8-bit and 16-bit) via formats/wav
//   - AIFF (PCM 8-bit and 16-bit) via formats/aiff
//   - Headerless in-memory PCM and generated tones via formats/raw
//
// # Quick Start
//
// Render a few samples into a WAV file:
//
//	kick, _ := wav.Open(kickFile, 0)
//	snare, _ := wav.Open(snareFile, 0)
//
//	out, _ := os.Create("mix.wav")
//	err := audmix.MixToWAV(out, mixer.DefaultConfig(), kick, snare)
//
// # Real Time Playback
//
// For live output, drive a Mixer from the output package:
//
//	spk, _ := output.NewSpeaker(cfg.Format(), 0)
//	m, _ := mixer.New(cfg, mixer.WithClaim(spk))
//	defer m.Deinit()
//
//	spk.Start(m.Reader())
//	v, _ := m.Voice(0)
//	v.Play(sample, true)
//
// # Loading Files
//
// NewRegistry returns an audio.Registry with every file loader in this
// module registered under its usual extensions:
//
//	sample, err := audmix.NewRegistry().Load(filepath.Ext(name), file)
//
// See the individual subpackages for more detailed documentation.
package audmix
