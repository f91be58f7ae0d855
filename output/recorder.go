// SPDX-License-Identifier: EPL-2.0

package output

import (
	"fmt"
	"io"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/formats/wav"
)

// Recorder is a mixer sink that writes every submitted buffer into a WAV
// file.
type Recorder struct {
	enc    *wav.Encoder
	format audio.Format
	frames int
}

// NewRecorder starts a WAV file in format f on ws.
func NewRecorder(ws io.WriteSeeker, f audio.Format) (*Recorder, error) {
	enc, err := wav.NewEncoder(ws, f)
	if err != nil {
		return nil, fmt.Errorf("creating recorder: %w", err)
	}

	return &Recorder{enc: enc, format: f}, nil
}

func (r *Recorder) Submit(buf []byte) error {
	if err := r.enc.Write(buf); err != nil {
		return err
	}
	r.frames += len(buf) / r.format.FrameSize()

	return nil
}

// Frames is the number of frames recorded so far.
func (r *Recorder) Frames() int { return r.frames }

// Close finalizes the WAV header. The writer itself stays open.
func (r *Recorder) Close() error { return r.enc.Close() }
