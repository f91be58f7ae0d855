// SPDX-License-Identifier: EPL-2.0

package output

import "sync/atomic"

// Discard is a sink that throws buffers away and counts them.
type Discard struct {
	buffers atomic.Int64
	bytes   atomic.Int64
}

func (d *Discard) Submit(buf []byte) error {
	d.buffers.Add(1)
	d.bytes.Add(int64(len(buf)))

	return nil
}

func (d *Discard) Buffers() int64 { return d.buffers.Load() }
func (d *Discard) Bytes() int64   { return d.bytes.Load() }
