// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile               = errors.New("not a WAV file")
	ErrUnsupportedWavLayout     = errors.New("unsupported WAV layout")
	ErrOnlyPCM8or16bitSupported = errors.New("only PCM 8-bit and 16-bit supported")
	ErrEncoderClosed            = errors.New("wav encoder closed")
)
