// SPDX-License-Identifier: EPL-2.0

package output

import (
	"io"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/utils"
)

// deviceFormat is the PCM layout audio devices take: 8-bit unsigned or
// 16-bit signed little-endian.
func deviceFormat(f audio.Format) audio.Format {
	f.Signed = f.BitsPerSample == 16
	return f
}

// signReader converts a stream between signed and unsigned PCM on the fly.
type signReader struct {
	r    io.Reader
	bits int
	off  int // byte offset into the stream, for 16-bit alignment
}

// toDevice wraps r so it yields f's samples in deviceFormat(f).
func toDevice(r io.Reader, f audio.Format) io.Reader {
	if f.Signed == deviceFormat(f).Signed {
		return r
	}

	return &signReader{r: r, bits: f.BitsPerSample}
}

func (s *signReader) Read(p []byte) (int, error) {
	n, err := s.r.Read(p)

	for i := range n {
		switch {
		case s.bits == 8:
			p[i] = utils.ToUnsigned8(int8(p[i]))
		case (s.off+i)%2 == 1:
			// High byte of a little-endian sample holds the sign bit.
			p[i] ^= 0x80
		}
	}
	s.off += n

	return n, err
}
