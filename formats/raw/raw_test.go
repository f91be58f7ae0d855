// SPDX-License-Identifier: EPL-2.0

package raw_test

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/formats/raw"
	"github.com/ik5/audmix/internal/audiotest"
)

func drain(t *testing.T, s audio.Sample) []byte {
	t.Helper()

	var out []byte
	for {
		buf, err := s.NextBuffer()
		if errors.Is(err, io.EOF) {
			return out
		}
		require.NoError(t, err)
		out = append(out, buf...)
	}
}

func TestNewChunked(t *testing.T) {
	t.Parallel()

	f := audio.Format{SampleRate: 8000, BitsPerSample: 16, Channels: 2, Signed: true}
	data := make([]byte, 10*f.FrameSize()+3) // trailing partial frame
	for i := range data {
		data[i] = byte(i)
	}

	s := raw.NewChunked(data, f, 4)
	assert.Equal(t, f, s.Format())
	assert.Equal(t, 10, s.Frames())
	assert.False(t, s.Exhausted())

	var sizes []int
	for {
		buf, err := s.NextBuffer()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		sizes = append(sizes, len(buf))
	}

	assert.Equal(t, []int{16, 16, 8}, sizes)
	assert.True(t, s.Exhausted())

	require.NoError(t, s.Reset())
	assert.False(t, s.Exhausted())
	assert.Equal(t, data[:40], drain(t, s))
}

func TestFromInt16(t *testing.T) {
	t.Parallel()

	s := raw.FromInt16([]int16{0, 1000, -1000, 32767, -32768}, 16000, 1)

	assert.Equal(t, audio.Format{SampleRate: 16000, BitsPerSample: 16, Channels: 1, Signed: true}, s.Format())
	assert.Equal(t, []int{0, 1000, -1000, 32767, -32768}, audiotest.Decode(s.Format(), drain(t, s)))
}

func TestFromInt8AndUint8(t *testing.T) {
	t.Parallel()

	signed := raw.FromInt8([]int8{-128, 0, 127}, 8000, 1)
	assert.True(t, signed.Format().Signed)
	assert.Equal(t, []int{-128, 0, 127}, audiotest.Decode(signed.Format(), drain(t, signed)))

	unsigned := raw.FromUint8([]uint8{0, 128, 255}, 8000, 1)
	assert.False(t, unsigned.Format().Signed)
	assert.Equal(t, []int{0, 128, 255}, audiotest.Decode(unsigned.Format(), drain(t, unsigned)))
}

func TestSine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  audio.Format
		silence int
		peak    int
	}{
		{"16-bit signed", audio.Format{SampleRate: 8000, BitsPerSample: 16, Channels: 1, Signed: true}, 0, 32767},
		{"16-bit unsigned", audio.Format{SampleRate: 8000, BitsPerSample: 16, Channels: 1}, 32768, 65535},
		{"8-bit signed", audio.Format{SampleRate: 8000, BitsPerSample: 8, Channels: 1, Signed: true}, 0, 127},
		{"8-bit unsigned", audio.Format{SampleRate: 8000, BitsPerSample: 8, Channels: 1}, 128, 255},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// 2000 Hz at 8000 Hz is a quarter period per frame.
			s, err := raw.Sine(tt.format, 2000, 1, 4)
			require.NoError(t, err)

			got := audiotest.Decode(tt.format, drain(t, s))
			require.Len(t, got, 4)
			assert.Equal(t, tt.silence, got[0])
			assert.Equal(t, tt.peak, got[1])
		})
	}
}

func TestSine_Stereo(t *testing.T) {
	t.Parallel()

	f := audio.Format{SampleRate: 8000, BitsPerSample: 16, Channels: 2, Signed: true}
	s, err := raw.Sine(f, 440, 0.5, 100)
	require.NoError(t, err)

	got := audiotest.Decode(f, drain(t, s))
	require.Len(t, got, 200)
	for i := 0; i < len(got); i += 2 {
		assert.Equal(t, got[i], got[i+1], "frame %d", i/2)
	}
}

func TestSine_UnsupportedFormat(t *testing.T) {
	t.Parallel()

	_, err := raw.Sine(audio.Format{SampleRate: 8000, BitsPerSample: 24, Channels: 1}, 440, 1, 10)
	assert.ErrorIs(t, err, audio.ErrUnsupportedFormat)

	_, err = raw.Sine(audio.Format{BitsPerSample: 16, Channels: 1}, 440, 1, 10)
	assert.ErrorIs(t, err, audio.ErrUnsupportedFormat)
}

func TestLoader(t *testing.T) {
	t.Parallel()

	f := audio.Format{SampleRate: 8000, BitsPerSample: 8, Channels: 1}
	registry := audio.NewRegistry()
	registry.Register(".pcm", raw.Loader{Format: f})

	s, err := registry.Load("PCM", bytes.NewReader([]byte{128, 129, 130}))
	require.NoError(t, err)

	assert.Equal(t, f, s.Format())
	assert.Equal(t, []byte{128, 129, 130}, drain(t, s))
}

func TestLoader_NoFormat(t *testing.T) {
	t.Parallel()

	_, err := raw.Loader{}.Load(bytes.NewReader([]byte{1, 2}))
	assert.ErrorIs(t, err, audio.ErrUnsupportedFormat)
}
