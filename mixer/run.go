// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"context"
	"fmt"
	"io"
)

// Sink receives finished output buffers. Submit must be done with buf
// before it returns; the mixer reuses the memory two fills later.
type Sink interface {
	Submit(buf []byte) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(buf []byte) error

func (f SinkFunc) Submit(buf []byte) error { return f(buf) }

// Run fills and submits buffers until ctx is done or the mixer is
// deinitialized. Pacing is up to the sink.
func (m *Mixer) Run(ctx context.Context, sink Sink) error {
	return m.run(ctx, sink, false)
}

// RunUntilIdle is Run that also returns, with a nil error, after
// submitting the first buffer filled once no voice is active any more.
// Looping voices keep it running until ctx is done.
func (m *Mixer) RunUntilIdle(ctx context.Context, sink Sink) error {
	return m.run(ctx, sink, true)
}

func (m *Mixer) run(ctx context.Context, sink Sink, untilIdle bool) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		buf, err := m.FillNextBuffer()
		if err != nil {
			return err
		}

		if err := sink.Submit(buf); err != nil {
			return fmt.Errorf("submitting buffer: %w", err)
		}

		if untilIdle && !m.anyActive() {
			return nil
		}
	}
}

type reader struct {
	m       *Mixer
	pending []byte
}

// Reader exposes the mixer as an endless PCM byte stream for pull style
// drivers. Reads fail with ErrDeinitialized after Deinit.
func (m *Mixer) Reader() io.Reader {
	return &reader{m: m}
}

func (r *reader) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if len(r.pending) == 0 {
			buf, err := r.m.FillNextBuffer()
			if err != nil {
				if n > 0 {
					return n, nil
				}
				return 0, err
			}
			r.pending = buf
		}

		c := copy(p[n:], r.pending)
		r.pending = r.pending[c:]
		n += c
	}

	return n, nil
}
