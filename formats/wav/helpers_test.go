// SPDX-License-Identifier: EPL-2.0

package wav_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ik5/audmix/audio"
)

// createWAVFile builds a canonical 44-byte-header WAV file.
func createWAVFile(formatTag, sampleRate, channels, bitsPerSample int, samples []int) []byte {
	buf := new(bytes.Buffer)

	numChannels := uint16(channels)
	bits := uint16(bitsPerSample)
	bytesPerSample := uint32(bits / 8)
	byteRate := uint32(sampleRate) * uint32(numChannels) * bytesPerSample
	blockAlign := uint16(numChannels) * uint16(bytesPerSample)
	dataSize := uint32(len(samples)) * bytesPerSample
	riffSize := 36 + dataSize

	// RIFF header
	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, riffSize)
	buf.WriteString("WAVE")

	// fmt chunk
	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, uint16(formatTag))
	binary.Write(buf, binary.LittleEndian, numChannels)
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(buf, binary.LittleEndian, byteRate)
	binary.Write(buf, binary.LittleEndian, blockAlign)
	binary.Write(buf, binary.LittleEndian, bits)

	// data chunk
	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, dataSize)

	for _, s := range samples {
		switch bits {
		case 8:
			buf.WriteByte(byte(s))
		case 16:
			binary.Write(buf, binary.LittleEndian, int16(s))
		case 24:
			buf.Write([]byte{byte(s), byte(s >> 8), byte(s >> 16)})
		default:
			binary.Write(buf, binary.LittleEndian, int32(s))
		}
	}

	return buf.Bytes()
}

func tempFile(t *testing.T) *os.File {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "*.wav")
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })

	return f
}

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
