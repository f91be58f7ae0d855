// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/ik5/audmix/audio"
)

// Mixer sums a fixed pool of voices into double buffered PCM output.
type Mixer struct {
	cfg    Config
	format audio.Format
	voices []*Voice
	log    *slog.Logger
	claim  io.Closer

	// mu serialises FillNextBuffer against Deinit. Voice control never
	// takes it.
	mu      sync.Mutex
	buffers [2][]byte
	acc     []int32
	next    int

	deinited atomic.Bool
	once     sync.Once
}

// Option configures optional Mixer collaborators.
type Option func(*Mixer)

// WithLogger sets the logger used for voice lifecycle events. The default
// discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(m *Mixer) {
		if l != nil {
			m.log = l
		}
	}
}

// WithClaim hands the mixer a resource (an output device, a timer) that
// Deinit releases exactly once.
func WithClaim(c io.Closer) Option {
	return func(m *Mixer) { m.claim = c }
}

// New validates cfg and allocates the voice pool and both output buffers.
// On error nothing is allocated.
func New(cfg Config, opts ...Option) (*Mixer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Mixer{
		cfg:    cfg,
		format: cfg.Format(),
		log:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.buffers[0] = make([]byte, cfg.BufferSize)
	m.buffers[1] = make([]byte, cfg.BufferSize)
	m.acc = make([]int32, cfg.BufferSize/m.format.BytesPerSample())

	m.voices = make([]*Voice, cfg.VoiceCount)
	for i := range m.voices {
		m.voices[i] = newVoice(m, i)
	}

	m.log.Debug("mixer constructed",
		"voices", cfg.VoiceCount,
		"buffer_size", cfg.BufferSize,
		"format", m.format.String())

	return m, nil
}

// Deinited reports whether Deinit has run.
func (m *Mixer) Deinited() bool { return m.deinited.Load() }

// Deinit stops every voice, drops the buffers and releases the claim.
// It waits for an in-flight FillNextBuffer and is safe to call repeatedly.
func (m *Mixer) Deinit() { _ = m.Close() }

// Close is Deinit for io.Closer users. Only the first call reports the
// claim's release error.
func (m *Mixer) Close() error {
	var err error

	m.once.Do(func() {
		m.mu.Lock()
		m.deinited.Store(true)
		for _, v := range m.voices {
			v.state.Store(nil)
		}
		m.buffers = [2][]byte{}
		m.acc = nil
		m.mu.Unlock()

		// Released outside mu: a pull driver may be blocked in
		// FillNextBuffer while it shuts down.
		if m.claim != nil {
			if cerr := m.claim.Close(); cerr != nil {
				err = fmt.Errorf("releasing claim: %w", cerr)
			}
		}

		m.log.Debug("mixer deinitialized")
	})

	return err
}

// Playing reports whether any voice is active.
func (m *Mixer) Playing() (bool, error) {
	if m.deinited.Load() {
		return false, ErrDeinitialized
	}

	return m.anyActive(), nil
}

func (m *Mixer) anyActive() bool {
	for _, v := range m.voices {
		if v.Playing() {
			return true
		}
	}

	return false
}

// SampleRate is the configured output rate in Hz.
func (m *Mixer) SampleRate() (int, error) {
	if m.deinited.Load() {
		return 0, ErrDeinitialized
	}

	return m.format.SampleRate, nil
}

// Format is the output format of every filled buffer.
func (m *Mixer) Format() (audio.Format, error) {
	if m.deinited.Load() {
		return audio.Format{}, ErrDeinitialized
	}

	return m.format, nil
}

// BufferSize is the byte size of each output buffer.
func (m *Mixer) BufferSize() (int, error) {
	if m.deinited.Load() {
		return 0, ErrDeinitialized
	}

	return m.cfg.BufferSize, nil
}

// Voices returns the voice pool in index order. The slice is a copy; its
// length always equals the configured voice count.
func (m *Mixer) Voices() ([]*Voice, error) {
	if m.deinited.Load() {
		return nil, ErrDeinitialized
	}

	return slices.Clone(m.voices), nil
}

// Voice returns the voice at index i.
func (m *Mixer) Voice(i int) (*Voice, error) {
	if m.deinited.Load() {
		return nil, ErrDeinitialized
	}
	if i < 0 || i >= len(m.voices) {
		return nil, fmt.Errorf("%w: %d, have %d voices", ErrVoiceIndex, i, len(m.voices))
	}

	return m.voices[i], nil
}

// checkFormat decides whether a sample in format f can play on this mixer.
func (m *Mixer) checkFormat(f audio.Format) error {
	if f.SampleRate != m.format.SampleRate {
		return fmt.Errorf("%w: sample rate %d, mixer runs at %d", ErrFormatMismatch, f.SampleRate, m.format.SampleRate)
	}
	if f.BitsPerSample != 8 && f.BitsPerSample != 16 {
		return fmt.Errorf("%w: %d bits per sample", ErrFormatMismatch, f.BitsPerSample)
	}
	if f.Channels < 1 || f.Channels > 2 {
		return fmt.Errorf("%w: %d channels", ErrFormatMismatch, f.Channels)
	}
	if m.cfg.AllowConversion {
		return nil
	}
	if f.BitsPerSample != m.format.BitsPerSample {
		return fmt.Errorf("%w: %d bits per sample, mixer uses %d", ErrFormatMismatch, f.BitsPerSample, m.format.BitsPerSample)
	}
	if f.Channels != m.format.Channels {
		return fmt.Errorf("%w: %d channels, mixer uses %d", ErrFormatMismatch, f.Channels, m.format.Channels)
	}

	return nil
}
