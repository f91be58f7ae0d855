// SPDX-License-Identifier: EPL-2.0

//go:build headless

package output

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ik5/audmix/audio"
)

const headlessTick = 10 * time.Millisecond

// Speaker stands in for the audio device on machines without one. It
// consumes the stream at real time speed and drops it.
type Speaker struct {
	format audio.Format

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	err    error
}

func NewSpeaker(f audio.Format, _ time.Duration) (*Speaker, error) {
	if f.BitsPerSample != 8 && f.BitsPerSample != 16 {
		return nil, fmt.Errorf("%w: %d bits per sample", audio.ErrUnsupportedFormat, f.BitsPerSample)
	}
	if f.Channels < 1 || f.SampleRate < 1 {
		return nil, fmt.Errorf("%w: %s", audio.ErrUnsupportedFormat, f)
	}

	return &Speaker{format: f}, nil
}

func (s *Speaker) Start(r io.Reader) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		return ErrSpeakerStarted
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})

	chunk := s.format.SampleRate * s.format.FrameSize() * int(headlessTick) / int(time.Second)
	go s.drain(ctx, toDevice(r, s.format), max(chunk, s.format.FrameSize()))

	return nil
}

func (s *Speaker) drain(ctx context.Context, r io.Reader, chunk int) {
	defer close(s.done)

	ticker := time.NewTicker(headlessTick)
	defer ticker.Stop()

	buf := make([]byte, chunk)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := io.ReadFull(r, buf); err != nil {
				s.mu.Lock()
				s.err = err
				s.mu.Unlock()
				return
			}
		}
	}
}

func (s *Speaker) Close() error {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel = nil
	s.mu.Unlock()

	if cancel == nil {
		return nil
	}

	cancel()
	<-done

	return nil
}

func (s *Speaker) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if errors.Is(s.err, io.EOF) {
		return nil
	}

	return s.err
}
