// SPDX-License-Identifier: EPL-2.0

package audmix

import (
	"context"
	"fmt"
	"io"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/formats/aiff"
	"github.com/ik5/audmix/formats/wav"
	"github.com/ik5/audmix/mixer"
	"github.com/ik5/audmix/output"
)

// MixToWAV plays every sample once, each on its own voice, and writes the
// mix into a WAV file in cfg's output format until all of them are done.
// cfg.VoiceCount is raised to the number of samples when smaller.
//
// The last buffer is written whole, so the file may end with up to one
// buffer of silence.
func MixToWAV(ws io.WriteSeeker, cfg mixer.Config, samples ...audio.Sample) error {
	return MixToWAVContext(context.Background(), ws, cfg, samples...)
}

// MixToWAVContext is MixToWAV with cancellation. Looping is not possible
// here, so the render always ends unless ctx does first. When ctx ends the
// render, the frames written so far are left as a valid WAV file.
func MixToWAVContext(ctx context.Context, ws io.WriteSeeker, cfg mixer.Config, samples ...audio.Sample) error {
	cfg.VoiceCount = max(cfg.VoiceCount, len(samples))

	rec, err := output.NewRecorder(ws, cfg.Format())
	if err != nil {
		return err
	}

	err = mixer.With(cfg, func(m *mixer.Mixer) error {
		for i, s := range samples {
			v, err := m.Voice(i)
			if err != nil {
				return err
			}
			if err := v.Play(s, false); err != nil {
				return fmt.Errorf("sample %d: %w", i, err)
			}
		}

		return m.RunUntilIdle(ctx, rec)
	})

	// Finalize the header even when the render stopped early.
	if cerr := rec.Close(); err == nil {
		err = cerr
	}

	return err
}

// NewRegistry returns a registry with the WAV and AIFF loaders registered
// under their file extensions.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Loader{})
	reg.Register("wave", wav.Loader{})
	reg.Register("aif", aiff.Loader{})
	reg.Register("aiff", aiff.Loader{})

	return reg
}
