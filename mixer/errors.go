// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConfig        = errors.New("invalid mixer configuration")
	ErrInvalidVoiceCount    = fmt.Errorf("%w: invalid voice count", ErrInvalidConfig)
	ErrInvalidChannelCount  = fmt.Errorf("%w: invalid channel count", ErrInvalidConfig)
	ErrInvalidSampleRate    = fmt.Errorf("%w: sample rate must be positive", ErrInvalidConfig)
	ErrInvalidBitsPerSample = fmt.Errorf("%w: bits_per_sample must be 8 or 16", ErrInvalidConfig)
	ErrInvalidBufferSize    = fmt.Errorf("%w: invalid buffer size", ErrInvalidConfig)

	ErrAllocation     = errors.New("mixer allocation failed")
	ErrBufferTooLarge = fmt.Errorf("%w: buffer size too large", ErrAllocation)

	ErrDeinitialized  = errors.New("object has been deinitialized and can no longer be used")
	ErrFormatMismatch = errors.New("sample format does not match the mixer")
	ErrInvalidLevel   = errors.New("level must be between 0.0 and 1.0")
	ErrVoiceIndex     = errors.New("voice index out of range")
	ErrNilSample      = errors.New("nil sample")

	errEmptyBuffer = errors.New("sample returned an empty buffer")
)
