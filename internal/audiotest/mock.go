// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"encoding/binary"
	"errors"
	"io"
	"math"

	"github.com/ik5/audmix/audio"
)

// ErrInjected is returned by samples built with FailAfter.
var ErrInjected = errors.New("audiotest: injected read failure")

// MockSample is a test helper that generates raw PCM for testing.
// It implements audio.Sample.
type MockSample struct {
	format      audio.Format
	totalFrames int // Total frames to generate
	chunkFrames int // Frames per NextBuffer call
	generated   int // Frames generated so far
	waveform    func(frame int, channel int) int
	buf         []byte
	resets      int
	reads       int
	failAfter   int
}

// NewMockSample creates a new mock sample.
// waveform returns the raw value for a frame and channel: a signed value
// for signed formats, an unsigned one otherwise.
func NewMockSample(format audio.Format, totalFrames, chunkFrames int, waveform func(frame int, channel int) int) *MockSample {
	if chunkFrames < 1 {
		chunkFrames = totalFrames
	}
	if chunkFrames < 1 {
		chunkFrames = 1
	}

	return &MockSample{
		format:      format,
		totalFrames: totalFrames,
		chunkFrames: chunkFrames,
		waveform:    waveform,
		buf:         make([]byte, chunkFrames*format.FrameSize()),
		failAfter:   -1,
	}
}

// NewConstantSample creates a mock sample with a constant raw value.
func NewConstantSample(format audio.Format, totalFrames, chunkFrames, value int) *MockSample {
	return NewMockSample(format, totalFrames, chunkFrames, func(int, int) int {
		return value
	})
}

// NewSilentSample creates a mock sample that generates silence in its format.
func NewSilentSample(format audio.Format, totalFrames, chunkFrames int) *MockSample {
	return NewConstantSample(format, totalFrames, chunkFrames, Silence(format))
}

// NewRampSample counts up from start by one per frame, same on every channel.
func NewRampSample(format audio.Format, totalFrames, chunkFrames, start int) *MockSample {
	return NewMockSample(format, totalFrames, chunkFrames, func(frame int, _ int) int {
		return start + frame
	})
}

// NewSineSample creates a half scale sine wave at frequency Hz, handed out
// in 64 frame chunks.
func NewSineSample(format audio.Format, totalFrames int, frequency float64) *MockSample {
	amplitude := float64(int(1)<<(format.BitsPerSample-2)) - 1

	return NewMockSample(format, totalFrames, 64, func(frame int, _ int) int {
		t := float64(frame) / float64(format.SampleRate)
		v := int(amplitude * math.Sin(2*math.Pi*frequency*t))
		if !format.Signed {
			v += 1 << (format.BitsPerSample - 1)
		}
		return v
	})
}

// Silence is the raw silence value of a format.
func Silence(format audio.Format) int {
	if format.Signed {
		return 0
	}
	return 1 << (format.BitsPerSample - 1)
}

// FailAfter makes NextBuffer return ErrInjected after n successful reads.
func (m *MockSample) FailAfter(n int) *MockSample {
	m.failAfter = n
	return m
}

// Resets reports how many times Reset has been called.
func (m *MockSample) Resets() int { return m.resets }

func (m *MockSample) Format() audio.Format { return m.format }
func (m *MockSample) Exhausted() bool      { return m.generated >= m.totalFrames }

func (m *MockSample) Reset() error {
	m.generated = 0
	m.resets++
	return nil
}

func (m *MockSample) NextBuffer() ([]byte, error) {
	if m.failAfter >= 0 && m.reads >= m.failAfter {
		return nil, ErrInjected
	}
	if m.generated >= m.totalFrames {
		return nil, io.EOF
	}
	m.reads++

	frames := min(m.chunkFrames, m.totalFrames-m.generated)
	bps := m.format.BytesPerSample()
	out := m.buf[:frames*m.format.FrameSize()]

	for f := range frames {
		for ch := range m.format.Channels {
			v := m.waveform(m.generated+f, ch)
			off := (f*m.format.Channels + ch) * bps
			if bps == 1 {
				out[off] = byte(v)
			} else {
				binary.LittleEndian.PutUint16(out[off:], uint16(v))
			}
		}
	}
	m.generated += frames

	return out, nil
}

// Decode turns raw PCM bytes back into values using the format's
// signedness, one int per channel sample.
func Decode(format audio.Format, raw []byte) []int {
	bps := format.BytesPerSample()
	out := make([]int, len(raw)/bps)
	for i := range out {
		switch {
		case bps == 1 && format.Signed:
			out[i] = int(int8(raw[i]))
		case bps == 1:
			out[i] = int(raw[i])
		case format.Signed:
			out[i] = int(int16(binary.LittleEndian.Uint16(raw[2*i:])))
		default:
			out[i] = int(binary.LittleEndian.Uint16(raw[2*i:]))
		}
	}
	return out
}
