// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"fmt"

	"github.com/ik5/audmix/audio"
)

const (
	// MaxVoices is the largest voice pool a Mixer accepts.
	MaxVoices = 255

	// MaxBufferSize caps the byte size of each output buffer.
	MaxBufferSize = 1 << 20
)

// Config is the fixed configuration of a Mixer.
type Config struct {
	// VoiceCount is the number of voices, 1 to MaxVoices.
	VoiceCount int
	// BufferSize is the byte size of each of the two output buffers. It
	// must hold a whole number of frames.
	BufferSize int
	// ChannelCount is 1 (mono) or 2 (interleaved stereo).
	ChannelCount int
	// BitsPerSample is 8 or 16.
	BitsPerSample int
	// SamplesSigned selects two's complement output instead of unsigned
	// samples biased by half scale.
	SamplesSigned bool
	// SampleRate in Hz. Every sample played must already run at this rate.
	SampleRate int
	// AllowConversion lets voices play samples whose bit depth or channel
	// count differ from the mixer's. Without it such samples are rejected.
	AllowConversion bool
}

// DefaultConfig returns a two voice, 8 kHz, 16-bit signed stereo mixer
// with 1 KiB buffers.
func DefaultConfig() Config {
	return Config{
		VoiceCount:    2,
		BufferSize:    1024,
		ChannelCount:  2,
		BitsPerSample: 16,
		SamplesSigned: true,
		SampleRate:    8000,
	}
}

// Format is the output format described by the configuration.
func (c Config) Format() audio.Format {
	return audio.Format{
		SampleRate:    c.SampleRate,
		BitsPerSample: c.BitsPerSample,
		Channels:      c.ChannelCount,
		Signed:        c.SamplesSigned,
	}
}

// Validate checks every field and returns the first violation.
func (c Config) Validate() error {
	if c.VoiceCount < 1 || c.VoiceCount > MaxVoices {
		return fmt.Errorf("%w: voice_count=%d, want 1..%d", ErrInvalidVoiceCount, c.VoiceCount, MaxVoices)
	}
	if c.ChannelCount < 1 || c.ChannelCount > 2 {
		return fmt.Errorf("%w: channel_count=%d, want 1 or 2", ErrInvalidChannelCount, c.ChannelCount)
	}
	if c.SampleRate < 1 {
		return fmt.Errorf("%w: sample_rate=%d", ErrInvalidSampleRate, c.SampleRate)
	}
	if c.BitsPerSample != 8 && c.BitsPerSample != 16 {
		return fmt.Errorf("%w: bits_per_sample=%d", ErrInvalidBitsPerSample, c.BitsPerSample)
	}

	frame := c.Format().FrameSize()
	if c.BufferSize < frame || c.BufferSize%frame != 0 {
		return fmt.Errorf("%w: buffer_size=%d, want a positive multiple of %d", ErrInvalidBufferSize, c.BufferSize, frame)
	}
	if c.BufferSize > MaxBufferSize {
		return fmt.Errorf("%w: buffer_size=%d, limit %d", ErrBufferTooLarge, c.BufferSize, MaxBufferSize)
	}

	return nil
}
