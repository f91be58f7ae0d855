// SPDX-License-Identifier: EPL-2.0

// Package audio provides the raw PCM building blocks shared by the mixer,
// the sample formats and the output drivers.
//
// This package contains:
//   - Format, the description of a raw PCM stream
//   - Sample interface for sources of raw PCM buffers
//   - DecodedSample, an adapter from go-audio decoders to Sample
//   - Loader registry for opening samples by file extension
//
// # Sample Interface
//
// The Sample interface is what a mixer voice plays:
//
//	type Sample interface {
//	    Format() Format
//	    NextBuffer() ([]byte, error)
//	    Reset() error
//	    Exhausted() bool
//	}
//
// Buffers hold interleaved samples. 8-bit samples are one byte, 16-bit
// samples are two bytes little-endian. Format.Signed tells whether the
// values are two's complement or biased by half scale.
//
// # Format Registry
//
// The registry maps format keys to loaders:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Loader{})
//	sample, err := registry.Load(filepath.Ext(name), file)
//
// # Error Handling
//
// NextBuffer returns io.EOF when no more data is available:
//
//	for {
//	    buf, err := sample.NextBuffer()
//	    if err == io.EOF {
//	        break // Normal end of stream
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    // Process buf
//	}
package audio
