// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// Format describes a raw PCM stream. 16-bit samples are little-endian.
type Format struct {
	SampleRate    int
	BitsPerSample int
	Channels      int
	Signed        bool
}

// BytesPerSample is the width of a single channel sample.
func (f Format) BytesPerSample() int { return f.BitsPerSample / 8 }

// FrameSize is the width of one interleaved frame (one sample per channel).
func (f Format) FrameSize() int { return f.BytesPerSample() * f.Channels }

func (f Format) String() string {
	sign := "unsigned"
	if f.Signed {
		sign = "signed"
	}

	return fmt.Sprintf("%dHz/%d-bit %s/%dch", f.SampleRate, f.BitsPerSample, sign, f.Channels)
}

// Sample is a producer of raw PCM buffers in a fixed Format.
//
// A Sample is consumed, never owned, by a mixer voice. Only one goroutine
// reads from a Sample at a time.
type Sample interface {
	// Format of every buffer returned by NextBuffer.
	Format() Format
	// NextBuffer returns the next chunk of interleaved PCM bytes. The slice
	// is only valid until the next call. Returns io.EOF once exhausted.
	NextBuffer() ([]byte, error)
	// Reset rewinds the stream to its first buffer.
	Reset() error
	// Exhausted reports whether the last buffer has been handed out.
	Exhausted() bool
}

// Loader constructs a Sample from an input stream.
type Loader interface {
	Load(r io.ReadSeeker) (Sample, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(r io.ReadSeeker) (Sample, error)

func (f LoaderFunc) Load(r io.ReadSeeker) (Sample, error) { return f(r) }

// Registry for loaders by format key (e.g., "wav", "aiff").
type Registry struct {
	loaders map[string]Loader

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		loaders: make(map[string]Loader),
		mtx:     &sync.Mutex{},
	}
}

// Register binds a loader to a format key. Keys are case insensitive and a
// leading dot is ignored, so file extensions can be used directly.
func (r *Registry) Register(format string, l Loader) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.loaders[normalizeKey(format)] = l
}

func (r *Registry) Get(format string) (Loader, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	l, ok := r.loaders[normalizeKey(format)]
	return l, ok
}

// Load looks up the loader for format and runs it on rs.
func (r *Registry) Load(format string, rs io.ReadSeeker) (Sample, error) {
	l, ok := r.Get(format)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	s, err := l.Load(rs)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", normalizeKey(format), err)
	}

	return s, nil
}

func normalizeKey(format string) string {
	return strings.ToLower(strings.TrimPrefix(format, "."))
}
