// SPDX-License-Identifier: EPL-2.0

package mixer_test

import (
	"errors"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/stretchr/testify/require"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/internal/audiotest"
	"github.com/ik5/audmix/mixer"
)

func mono16Config(voices, frames int) mixer.Config {
	return mixer.Config{
		VoiceCount:    voices,
		BufferSize:    frames * 2,
		ChannelCount:  1,
		BitsPerSample: 16,
		SamplesSigned: true,
		SampleRate:    8000,
	}
}

func newMixer(t *testing.T, cfg mixer.Config, opts ...mixer.Option) *mixer.Mixer {
	t.Helper()

	m, err := mixer.New(cfg, opts...)
	require.NoError(t, err)
	t.Cleanup(m.Deinit)

	return m
}

func voice(t *testing.T, m *mixer.Mixer, i int) *mixer.Voice {
	t.Helper()

	v, err := m.Voice(i)
	require.NoError(t, err)

	return v
}

// fill runs one FillNextBuffer and decodes the result.
func fill(t *testing.T, m *mixer.Mixer) []int {
	t.Helper()

	buf, err := m.FillNextBuffer()
	require.NoError(t, err)

	f, err := m.Format()
	require.NoError(t, err)

	return audiotest.Decode(f, buf)
}

func playing(t *testing.T, m *mixer.Mixer) bool {
	t.Helper()

	p, err := m.Playing()
	require.NoError(t, err)

	return p
}

func repeat(v, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func formatOf(cfg mixer.Config) audio.Format { return cfg.Format() }

// countingCloser records how many times it was released.
type countingCloser struct {
	calls int
	err   error
}

func (c *countingCloser) Close() error {
	c.calls++
	return c.err
}

// emptySample hands out zero-length buffers forever.
type emptySample struct{ format audio.Format }

func (e emptySample) Format() audio.Format        { return e.format }
func (e emptySample) NextBuffer() ([]byte, error) { return []byte{}, nil }
func (e emptySample) Reset() error                { return nil }
func (e emptySample) Exhausted() bool             { return false }

// resetFailSample fails to rewind.
type resetFailSample struct{ *audiotest.MockSample }

var errReset = errors.New("reset failed")

func (r resetFailSample) Reset() error { return errReset }

// blockDecoder is a go-audio style decoder over a fixed slice of ints.
type blockDecoder struct {
	samples []int
	offset  int
}

func (b *blockDecoder) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	n := copy(buf.Data, b.samples[b.offset:])
	b.offset += n

	return n, nil
}
