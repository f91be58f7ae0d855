// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	"github.com/go-audio/wav"

	"github.com/ik5/audmix/audio"
)

// wavFormatPCM is the WAVE_FORMAT_PCM format tag.
const wavFormatPCM = 1

// Loader opens WAV files as mixer samples.
type Loader struct {
	// ChunkFrames is the number of frames per buffer, 1024 when zero.
	ChunkFrames int
}

func (l Loader) Load(rs io.ReadSeeker) (audio.Sample, error) {
	return Open(rs, l.ChunkFrames)
}

// Open validates the WAV header in rs and returns a sample streaming its
// PCM data. 8-bit files are unsigned, 16-bit files signed. rs must stay
// open for as long as the sample is played; Reset seeks it back to the
// start.
func Open(rs io.ReadSeeker, chunkFrames int) (*audio.DecodedSample, error) {
	dec, err := probe(rs)
	if err != nil {
		return nil, err
	}

	bits := int(dec.BitDepth)
	format := audio.Format{
		SampleRate:    int(dec.SampleRate),
		BitsPerSample: bits,
		Channels:      int(dec.NumChans),
		Signed:        bits == 16,
	}

	first := dec
	return audio.NewDecodedSample(format, chunkFrames, func() (audio.PCMDecoder, error) {
		if first != nil {
			d := first
			first = nil
			return d, nil
		}

		if _, err := rs.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("rewinding wav: %w", err)
		}

		return probe(rs)
	})
}

func probe(rs io.ReadSeeker) (*wav.Decoder, error) {
	dec := wav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}
	if dec.WavAudioFormat != wavFormatPCM {
		return nil, fmt.Errorf("%w: format tag %d", ErrUnsupportedWavLayout, dec.WavAudioFormat)
	}
	if dec.BitDepth != 8 && dec.BitDepth != 16 {
		return nil, fmt.Errorf("%w: got %d bits", ErrOnlyPCM8or16bitSupported, dec.BitDepth)
	}

	return dec, nil
}
