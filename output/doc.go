// SPDX-License-Identifier: EPL-2.0

// Package output holds the destinations for mixer buffers.
//
//   - Recorder writes buffers into a WAV file (a mixer.Sink)
//   - Discard counts and drops buffers (a mixer.Sink)
//   - Speaker plays a mixer's Reader on the default audio device through
//     github.com/ebitengine/oto/v3
//
// Building with the headless tag swaps the oto Speaker for one that
// consumes the stream at real time speed without touching any device:
//
//	go build -tags headless ./...
//
// A Speaker is usually handed to the mixer as its claim so that Deinit
// releases the device:
//
//	spk, _ := output.NewSpeaker(cfg.Format(), 0)
//	m, _ := mixer.New(cfg, mixer.WithClaim(spk))
//	spk.Start(m.Reader())
package output
