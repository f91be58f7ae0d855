// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"errors"
	"testing"
)

func TestErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		msg  string
	}{
		{"ErrNotAiffFile", ErrNotAiffFile, "not an AIFF file"},
		{"ErrOnlyPCM8or16bitSupported", ErrOnlyPCM8or16bitSupported, "only 8-bit and 16-bit PCM AIFF is supported"},
		{"ErrUnsupportedAiffLayout", ErrUnsupportedAiffLayout, "unsupported AIFF layout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if tt.err.Error() != tt.msg {
				t.Errorf("Error() = %q, want %q", tt.err.Error(), tt.msg)
			}
			if !errors.Is(tt.err, tt.err) {
				t.Errorf("errors.Is(%v, itself) = false", tt.err)
			}
		})
	}
}
