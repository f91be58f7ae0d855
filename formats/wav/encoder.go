// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/utils"
)

// Encoder writes raw PCM buffers into a WAV file. Samples are stored the
// way WAV expects them (8-bit unsigned, 16-bit signed) whatever the
// signedness of the input format.
type Encoder struct {
	enc    *wav.Encoder
	format audio.Format
	intBuf *goaudio.IntBuffer
	closed bool
}

// NewEncoder starts a PCM WAV file on ws. The header is completed by Close.
func NewEncoder(ws io.WriteSeeker, f audio.Format) (*Encoder, error) {
	if f.BitsPerSample != 8 && f.BitsPerSample != 16 {
		return nil, fmt.Errorf("%w: got %d bits", ErrOnlyPCM8or16bitSupported, f.BitsPerSample)
	}
	if f.Channels < 1 || f.SampleRate < 1 {
		return nil, fmt.Errorf("%w: %s", audio.ErrUnsupportedFormat, f)
	}

	return &Encoder{
		enc:    wav.NewEncoder(ws, f.SampleRate, f.BitsPerSample, f.Channels, wavFormatPCM),
		format: f,
		intBuf: &goaudio.IntBuffer{
			Format: &goaudio.Format{
				NumChannels: f.Channels,
				SampleRate:  f.SampleRate,
			},
			SourceBitDepth: f.BitsPerSample,
		},
	}, nil
}

// Write appends interleaved PCM in the encoder's format. A trailing
// partial sample is ignored.
func (e *Encoder) Write(raw []byte) error {
	if e.closed {
		return ErrEncoderClosed
	}

	bps := e.format.BytesPerSample()
	n := len(raw) / bps
	if n == 0 {
		return nil
	}

	if cap(e.intBuf.Data) < n {
		e.intBuf.Data = make([]int, n)
	}
	data := e.intBuf.Data[:n]

	for i := range data {
		if bps == 1 {
			u := raw[i]
			if e.format.Signed {
				u = utils.ToUnsigned8(int8(u))
			}
			data[i] = int(u)
			continue
		}

		u := binary.LittleEndian.Uint16(raw[2*i:])
		s := int16(u)
		if !e.format.Signed {
			s = utils.ToSigned16(u)
		}
		data[i] = int(s)
	}
	e.intBuf.Data = data

	if err := e.enc.Write(e.intBuf); err != nil {
		return fmt.Errorf("writing wav data: %w", err)
	}

	return nil
}

// Close finalizes the WAV header. It does not close the underlying writer.
// Calls after the first do nothing.
func (e *Encoder) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true

	if err := e.enc.Close(); err != nil {
		return fmt.Errorf("closing wav: %w", err)
	}

	return nil
}

// WriteWAV writes raw as a complete WAV file in format f.
func WriteWAV(ws io.WriteSeeker, f audio.Format, raw []byte) error {
	e, err := NewEncoder(ws, f)
	if err != nil {
		return err
	}

	err = e.Write(raw)
	if cerr := e.Close(); err == nil {
		err = cerr
	}

	return err
}
