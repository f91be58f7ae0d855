// SPDX-License-Identifier: EPL-2.0

//go:build !headless

package output

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/ik5/audmix/audio"
)

// Speaker plays a PCM stream on the default audio device through oto.
// Close releases the player, so a Speaker can be handed to a mixer as its
// claim.
type Speaker struct {
	ctx    *oto.Context
	player *oto.Player
	format audio.Format

	mu      sync.Mutex
	started bool
}

// NewSpeaker opens the audio device for format f. bufferTime is the device
// buffer length; zero lets oto decide. Only one Speaker can exist per
// process.
func NewSpeaker(f audio.Format, bufferTime time.Duration) (*Speaker, error) {
	var otoFormat oto.Format
	switch f.BitsPerSample {
	case 8:
		otoFormat = oto.FormatUnsignedInt8
	case 16:
		otoFormat = oto.FormatSignedInt16LE
	default:
		return nil, fmt.Errorf("%w: %d bits per sample", audio.ErrUnsupportedFormat, f.BitsPerSample)
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   f.SampleRate,
		ChannelCount: f.Channels,
		Format:       otoFormat,
		BufferSize:   bufferTime,
	})
	if err != nil {
		return nil, fmt.Errorf("opening audio device: %w", err)
	}
	<-ready

	return &Speaker{ctx: ctx, format: f}, nil
}

// Start plays r, typically a mixer's Reader, until Close.
func (s *Speaker) Start(r io.Reader) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return ErrSpeakerStarted
	}

	s.player = s.ctx.NewPlayer(toDevice(r, s.format))
	s.player.Play()
	s.started = true

	return nil
}

// Close stops playback. It is safe to call more than once.
func (s *Speaker) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.player == nil {
		return nil
	}

	err := s.player.Close()
	s.player = nil
	s.started = false
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("closing player: %w", err)
	}

	return nil
}

// Err reports why playback stopped on its own, if it did.
func (s *Speaker) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.player == nil {
		return nil
	}

	return s.player.Err()
}
