// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"

	"github.com/ik5/audmix/audio"
)

// Loader opens AIFF files as mixer samples.
type Loader struct {
	// ChunkFrames is the number of frames per buffer, 1024 when zero.
	ChunkFrames int
}

func (l Loader) Load(rs io.ReadSeeker) (audio.Sample, error) {
	return Open(rs, l.ChunkFrames)
}

// Open reads the AIFF header from rs and returns a sample streaming its
// sound data. AIFF PCM is always signed. rs must stay open while the sample
// is played.
func Open(rs io.ReadSeeker, chunkFrames int) (*audio.DecodedSample, error) {
	dec, err := probe(rs)
	if err != nil {
		return nil, err
	}

	format := dec.Format()
	first := dec

	return audio.NewDecodedSample(audio.Format{
		SampleRate:    format.SampleRate,
		BitsPerSample: int(dec.BitDepth),
		Channels:      format.NumChannels,
		Signed:        true,
	}, chunkFrames, func() (audio.PCMDecoder, error) {
		if first != nil {
			d := first
			first = nil
			return d, nil
		}

		if _, err := rs.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("rewinding aiff: %w", err)
		}

		return probe(rs)
	})
}

func probe(rs io.ReadSeeker) (*aiff.Decoder, error) {
	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}

	dec.ReadInfo()

	if dec.BitDepth != 8 && dec.BitDepth != 16 {
		return nil, fmt.Errorf("%w: got %d bits", ErrOnlyPCM8or16bitSupported, dec.BitDepth)
	}

	format := dec.Format()
	if format == nil || format.NumChannels < 1 || format.SampleRate < 1 {
		return nil, ErrUnsupportedAiffLayout
	}

	return dec, nil
}
