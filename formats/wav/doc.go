// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes PCM WAV files using github.com/go-audio/wav.
//
// # Reading
//
// Open validates the header and returns an audio.Sample streaming the data
// chunk; Loader plugs it into an audio.Registry:
//
//	file, _ := os.Open("drums.wav")
//	sample, err := wav.Open(file, 0)
//
// Only PCM 8-bit (unsigned) and 16-bit (signed) files are accepted. The
// file has to stay open while the sample plays, since Reset seeks back to
// the start and re-reads the header.
//
// # Writing
//
// Encoder turns raw PCM buffers, in any signedness, into a WAV file:
//
//	enc, _ := wav.NewEncoder(out, format)
//	enc.Write(buf)
//	enc.Close()
//
// WriteWAV does the same for a single buffer.
//
// # Errors
//
//   - ErrNotWavFile: the input has no valid RIFF/WAVE header
//   - ErrUnsupportedWavLayout: the data is not integer PCM
//   - ErrOnlyPCM8or16bitSupported: the bit depth is not 8 or 16
package wav
