// SPDX-License-Identifier: EPL-2.0

package audmix_test

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/audmix"
	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/formats/raw"
	"github.com/ik5/audmix/formats/wav"
	"github.com/ik5/audmix/internal/audiotest"
	"github.com/ik5/audmix/mixer"
)

func mono16(voices, frames int) mixer.Config {
	return mixer.Config{
		VoiceCount:    voices,
		BufferSize:    2 * frames,
		ChannelCount:  1,
		BitsPerSample: 16,
		SamplesSigned: true,
		SampleRate:    8000,
	}
}

func readBack(t *testing.T, f *os.File) (audio.Format, []int) {
	t.Helper()

	_, err := f.Seek(0, io.SeekStart)
	require.NoError(t, err)

	s, err := wav.Open(f, 0)
	require.NoError(t, err)

	var got []int
	for {
		buf, err := s.NextBuffer()
		if errors.Is(err, io.EOF) {
			return s.Format(), got
		}
		require.NoError(t, err)
		got = append(got, audiotest.Decode(s.Format(), buf)...)
	}
}

func TestMixToWAV(t *testing.T) {
	t.Parallel()

	f, err := os.CreateTemp(t.TempDir(), "*.wav")
	require.NoError(t, err)
	defer f.Close()

	a := raw.FromInt16([]int16{100, 200, 300, 400, 500, 600}, 8000, 1)
	b := raw.FromInt16([]int16{1, 2, 3}, 8000, 1)

	// One voice configured, two samples given.
	require.NoError(t, audmix.MixToWAV(f, mono16(1, 4), a, b))

	format, got := readBack(t, f)
	assert.Equal(t, audio.Format{SampleRate: 8000, BitsPerSample: 16, Channels: 1, Signed: true}, format)
	assert.Equal(t, []int{101, 202, 303, 400, 500, 600, 0, 0}, got)
}

func TestMixToWAV_FormatMismatch(t *testing.T) {
	t.Parallel()

	f, err := os.CreateTemp(t.TempDir(), "*.wav")
	require.NoError(t, err)
	defer f.Close()

	err = audmix.MixToWAV(f, mono16(2, 4), raw.FromInt8([]int8{1}, 8000, 1))
	assert.ErrorIs(t, err, mixer.ErrFormatMismatch)
	assert.ErrorContains(t, err, "sample 0")
}

func TestMixToWAV_InvalidConfig(t *testing.T) {
	t.Parallel()

	f, err := os.CreateTemp(t.TempDir(), "*.wav")
	require.NoError(t, err)
	defer f.Close()

	cfg := mono16(1, 4)
	cfg.SampleRate = 0

	err = audmix.MixToWAV(f, cfg, raw.FromInt16([]int16{1}, 8000, 1))
	assert.Error(t, err)
}

func TestMixToWAVContext_Canceled(t *testing.T) {
	t.Parallel()

	f, err := os.CreateTemp(t.TempDir(), "*.wav")
	require.NoError(t, err)
	defer f.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = audmix.MixToWAVContext(ctx, f, mono16(1, 4), raw.FromInt16([]int16{1, 2, 3}, 8000, 1))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewRegistry(t *testing.T) {
	t.Parallel()

	reg := audmix.NewRegistry()
	for _, ext := range []string{".wav", "WAVE", ".aif", "aiff"} {
		_, ok := reg.Get(ext)
		assert.True(t, ok, ext)
	}

	_, err := reg.Load(".mp3", nil)
	assert.ErrorIs(t, err, audio.ErrUnknownFormat)
}

// cancelAfter cancels a context once the wrapped sample has handed out n
// buffers.
type cancelAfter struct {
	audio.Sample
	n      int
	cancel context.CancelFunc
}

func (c *cancelAfter) NextBuffer() ([]byte, error) {
	c.n--
	if c.n == 0 {
		c.cancel()
	}
	return c.Sample.NextBuffer()
}

func TestMixToWAVContext_CanceledMidwayLeavesValidFile(t *testing.T) {
	t.Parallel()

	f, err := os.CreateTemp(t.TempDir(), "*.wav")
	require.NoError(t, err)
	defer f.Close()

	cfg := mono16(1, 4)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src := &cancelAfter{
		Sample: audiotest.NewConstantSample(cfg.Format(), 100, 4, -7),
		n:      2,
		cancel: cancel,
	}

	err = audmix.MixToWAVContext(ctx, f, cfg, src)
	assert.ErrorIs(t, err, context.Canceled)

	_, got := readBack(t, f)
	assert.Len(t, got, 8)
	for _, v := range got {
		assert.Equal(t, -7, v)
	}
}

func TestMixToWAV_ExactBlockWritesNoTrailingSilence(t *testing.T) {
	t.Parallel()

	in, err := os.CreateTemp(t.TempDir(), "*.wav")
	require.NoError(t, err)
	defer in.Close()

	cfg := mono16(1, 4)
	require.NoError(t, wav.WriteWAV(in, cfg.Format(), []byte{1, 0, 2, 0, 3, 0, 4, 0}))
	_, err = in.Seek(0, io.SeekStart)
	require.NoError(t, err)

	s, err := wav.Open(in, 4)
	require.NoError(t, err)

	out, err := os.CreateTemp(t.TempDir(), "*.wav")
	require.NoError(t, err)
	defer out.Close()

	require.NoError(t, audmix.MixToWAV(out, cfg, s))

	_, got := readBack(t, out)
	assert.Equal(t, []int{1, 2, 3, 4}, got)
}
