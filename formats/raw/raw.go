// SPDX-License-Identifier: EPL-2.0

package raw

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/utils"
)

// DefaultChunkFrames is the number of frames handed out per NextBuffer
// call unless NewChunked says otherwise.
const DefaultChunkFrames = 256

// Sample plays back a block of in-memory PCM bytes.
type Sample struct {
	data   []byte
	format audio.Format
	chunk  int // bytes per NextBuffer
	pos    int
}

// New returns a sample over data, which must already be in format f.
// A trailing partial frame is dropped. data is not copied.
func New(data []byte, f audio.Format) *Sample {
	return NewChunked(data, f, DefaultChunkFrames)
}

// NewChunked is New with an explicit number of frames per buffer.
func NewChunked(data []byte, f audio.Format, chunkFrames int) *Sample {
	if chunkFrames < 1 {
		chunkFrames = DefaultChunkFrames
	}

	frame := max(f.FrameSize(), 1)

	return &Sample{
		data:   data[:len(data)-len(data)%frame],
		format: f,
		chunk:  chunkFrames * frame,
	}
}

// FromInt16 builds a signed 16-bit sample from interleaved values.
func FromInt16(samples []int16, rate, channels int) *Sample {
	data := make([]byte, 2*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint16(data[2*i:], uint16(s))
	}

	return New(data, audio.Format{SampleRate: rate, BitsPerSample: 16, Channels: channels, Signed: true})
}

// FromInt8 builds a signed 8-bit sample from interleaved values.
func FromInt8(samples []int8, rate, channels int) *Sample {
	data := make([]byte, len(samples))
	for i, s := range samples {
		data[i] = byte(s)
	}

	return New(data, audio.Format{SampleRate: rate, BitsPerSample: 8, Channels: channels, Signed: true})
}

// FromUint8 builds an unsigned 8-bit sample (silence at 128).
func FromUint8(samples []uint8, rate, channels int) *Sample {
	data := make([]byte, len(samples))
	copy(data, samples)

	return New(data, audio.Format{SampleRate: rate, BitsPerSample: 8, Channels: channels})
}

// Sine renders frames frames of a sine tone at freq Hz and the given
// amplitude (0..1) in format f, same value on every channel.
func Sine(f audio.Format, freq, amplitude float64, frames int) (*Sample, error) {
	if f.BitsPerSample != 8 && f.BitsPerSample != 16 {
		return nil, fmt.Errorf("%w: %d bits per sample", audio.ErrUnsupportedFormat, f.BitsPerSample)
	}
	if f.Channels < 1 || f.SampleRate < 1 {
		return nil, fmt.Errorf("%w: %s", audio.ErrUnsupportedFormat, f)
	}

	bps := f.BytesPerSample()
	data := make([]byte, frames*f.FrameSize())

	for i := range frames {
		x := float32(amplitude * math.Sin(2*math.Pi*freq*float64(i)/float64(f.SampleRate)))
		for c := range f.Channels {
			off := (i*f.Channels + c) * bps
			if bps == 1 {
				s := utils.Float32ToInt8(x)
				if f.Signed {
					data[off] = byte(s)
				} else {
					data[off] = utils.ToUnsigned8(s)
				}
				continue
			}

			s := utils.Float32ToInt16(x)
			u := uint16(s)
			if !f.Signed {
				u = utils.ToUnsigned16(s)
			}
			binary.LittleEndian.PutUint16(data[off:], u)
		}
	}

	return New(data, f), nil
}

func (s *Sample) Format() audio.Format { return s.format }
func (s *Sample) Exhausted() bool      { return s.pos >= len(s.data) }

// Frames is the total length of the sample in frames.
func (s *Sample) Frames() int {
	if s.format.FrameSize() == 0 {
		return 0
	}
	return len(s.data) / s.format.FrameSize()
}

func (s *Sample) Reset() error {
	s.pos = 0
	return nil
}

func (s *Sample) NextBuffer() ([]byte, error) {
	if s.pos >= len(s.data) {
		return nil, io.EOF
	}

	end := min(s.pos+s.chunk, len(s.data))
	out := s.data[s.pos:end]
	s.pos = end

	return out, nil
}

// Loader reads headerless PCM, which carries no format of its own.
type Loader struct {
	Format audio.Format
}

func (l Loader) Load(r io.ReadSeeker) (audio.Sample, error) {
	if l.Format.BitsPerSample != 8 && l.Format.BitsPerSample != 16 {
		return nil, fmt.Errorf("%w: %d bits per sample", audio.ErrUnsupportedFormat, l.Format.BitsPerSample)
	}
	if l.Format.Channels < 1 || l.Format.SampleRate < 1 {
		return nil, fmt.Errorf("%w: %s", audio.ErrUnsupportedFormat, l.Format)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading raw data: %w", err)
	}

	return New(data, l.Format), nil
}
