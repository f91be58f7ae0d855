// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
)

// PCMDecoder is the subset of the go-audio decoders (wav, aiff) that
// DecodedSample reads from. Samples come back as plain ints at the file's
// bit depth.
type PCMDecoder interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// OpenFunc (re)opens a decoder positioned at the first PCM sample.
type OpenFunc func() (PCMDecoder, error)

// DecodedSample adapts a go-audio decoder to the Sample interface,
// re-encoding its ints into raw PCM bytes in chunks of a fixed frame count.
//
// It decodes one block ahead of what it hands out, so Exhausted turns true
// together with the last buffer even when the stream length is an exact
// multiple of the block size.
type DecodedSample struct {
	open   OpenFunc
	dec    PCMDecoder
	format Format
	out    []byte
	done   bool

	cur, ahead *goaudio.IntBuffer
	block      decodedBlock
	primed     bool
}

// decodedBlock is the result of one read into the look-ahead buffer.
type decodedBlock struct {
	n   int
	end bool // short read or EOF: nothing follows this block
	err error
}

// NewDecodedSample returns a sample producing at most frames frames per
// buffer. The decoder is opened lazily by the first NextBuffer call and
// again after every Reset.
func NewDecodedSample(format Format, frames int, open OpenFunc) (*DecodedSample, error) {
	if format.BitsPerSample != 8 && format.BitsPerSample != 16 {
		return nil, fmt.Errorf("%w: %d bits per sample", ErrUnsupportedFormat, format.BitsPerSample)
	}
	if format.Channels < 1 || format.SampleRate < 1 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if frames < 1 {
		frames = 1024
	}

	samples := frames * format.Channels

	return &DecodedSample{
		open:   open,
		format: format,
		cur:    newIntBuffer(format, samples),
		ahead:  newIntBuffer(format, samples),
		out:    make([]byte, samples*format.BytesPerSample()),
	}, nil
}

func newIntBuffer(format Format, samples int) *goaudio.IntBuffer {
	return &goaudio.IntBuffer{
		Data: make([]int, samples),
		Format: &goaudio.Format{
			NumChannels: format.Channels,
			SampleRate:  format.SampleRate,
		},
		SourceBitDepth: format.BitsPerSample,
	}
}

func (d *DecodedSample) Format() Format  { return d.format }
func (d *DecodedSample) Exhausted() bool { return d.done }

func (d *DecodedSample) Reset() error {
	d.dec = nil
	d.done = false
	d.primed = false

	return nil
}

func (d *DecodedSample) NextBuffer() ([]byte, error) {
	if d.done {
		return nil, io.EOF
	}

	if d.dec == nil {
		dec, err := d.open()
		if err != nil {
			d.done = true
			return nil, fmt.Errorf("opening decoder: %w", err)
		}
		d.dec = dec
	}
	if !d.primed {
		d.readAhead()
		d.primed = true
	}

	b := d.block
	if b.err != nil {
		d.done = true
		return nil, fmt.Errorf("reading pcm: %w", b.err)
	}
	if b.n == 0 {
		d.done = true
		return nil, io.EOF
	}

	d.cur, d.ahead = d.ahead, d.cur
	if b.end {
		d.done = true
	} else {
		d.readAhead()
		// A clean zero read right after a full block ends the stream here;
		// a read error is kept for the next call.
		if d.block.n == 0 && d.block.err == nil {
			d.done = true
		}
	}

	return d.encode(d.cur.Data[:b.n]), nil
}

func (d *DecodedSample) readAhead() {
	d.ahead.Data = d.ahead.Data[:cap(d.ahead.Data)]

	n, err := d.dec.PCMBuffer(d.ahead)
	eof := errors.Is(err, io.EOF)
	if eof {
		err = nil
	}

	d.block = decodedBlock{
		n:   n,
		end: eof || n < len(d.ahead.Data),
		err: err,
	}
}

func (d *DecodedSample) encode(data []int) []byte {
	bps := d.format.BytesPerSample()
	out := d.out[:len(data)*bps]

	switch bps {
	case 1:
		// Raw file bytes; the int carries either signed or unsigned
		// interpretation depending on the container, both truncate back.
		for i, v := range data {
			out[i] = byte(v)
		}
	case 2:
		for i, v := range data {
			binary.LittleEndian.PutUint16(out[2*i:], uint16(int16(v)))
		}
	}

	return out
}
