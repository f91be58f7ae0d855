// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrUnknownFormat     = errors.New("no loader registered for format")
	ErrUnsupportedFormat = errors.New("unsupported PCM format")
)
