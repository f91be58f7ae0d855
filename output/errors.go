// SPDX-License-Identifier: EPL-2.0

package output

import "errors"

// ErrSpeakerStarted is returned by Start on a speaker that is already
// playing.
var ErrSpeakerStarted = errors.New("speaker already started")
