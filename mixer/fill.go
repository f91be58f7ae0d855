// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/utils"
)

// playback is the state of one Play call. Play publishes it, after which
// only the fill path reads or writes it.
type playback struct {
	sample audio.Sample
	format audio.Format
	loop   bool
	fresh  bool // sample not yet rewound for this play

	buf   []byte
	pos   int
	frame []int32 // last decoded source frame, output bit depth
	err   error
}

// FillNextBuffer mixes every active voice into the buffer that was not
// handed out by the previous call and returns it. The returned slice stays
// valid until the call after next.
func (m *Mixer) FillNextBuffer() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.deinited.Load() {
		return nil, ErrDeinitialized
	}

	clear(m.acc)
	for _, v := range m.voices {
		p := v.state.Load()
		if p == nil {
			continue
		}

		if m.mixVoice(v, p) {
			// A concurrent Play wins over the end of the old sample.
			v.state.CompareAndSwap(p, nil)
		}
	}

	out := m.buffers[m.next]
	m.encode(out)
	m.next ^= 1

	return out, nil
}

// mixVoice adds one voice's frames to the accumulator and reports whether
// the voice is finished.
func (m *Mixer) mixVoice(v *Voice, p *playback) bool {
	channels := m.format.Channels
	bits := m.format.BitsPerSample
	level := v.level.Load()
	frames := len(m.acc) / channels

	for f := range frames {
		if !p.readFrame(bits) {
			if p.err != nil {
				m.log.Warn("voice sample failed, silencing", "voice", v.index, "error", p.err)
				return true
			}
			if !p.loop || !p.restart() || !p.readFrame(bits) {
				if p.err != nil {
					m.log.Warn("voice sample failed, silencing", "voice", v.index, "error", p.err)
				} else {
					m.log.Debug("voice finished", "voice", v.index)
				}
				return true
			}
		}

		out := m.acc[f*channels : f*channels+channels]
		switch {
		case p.format.Channels == channels:
			for c := range out {
				out[c] += utils.ApplyLevel(p.frame[c], level)
			}
		case channels == 2:
			l, r := utils.MonoToStereo(utils.ApplyLevel(p.frame[0], level))
			out[0] += l
			out[1] += r
		default:
			out[0] += utils.ApplyLevel(utils.StereoToMono(p.frame[0], p.frame[1]), level)
		}
	}

	if !p.loop && p.drained() {
		m.log.Debug("voice finished", "voice", v.index)
		return true
	}

	return false
}

// encode saturates the accumulator into out in the mixer's format.
func (m *Mixer) encode(out []byte) {
	bits := m.format.BitsPerSample
	signed := m.format.Signed

	for i, a := range m.acc {
		s := utils.Saturate(a, bits)
		if bits == 8 {
			if signed {
				out[i] = byte(int8(s))
			} else {
				out[i] = utils.ToUnsigned8(int8(s))
			}
			continue
		}

		u := uint16(int16(s))
		if !signed {
			u = utils.ToUnsigned16(int16(s))
		}
		binary.LittleEndian.PutUint16(out[2*i:], u)
	}
}

func (p *playback) readFrame(outBits int) bool {
	for c := range p.frame {
		s, ok := p.readSample(outBits)
		if !ok {
			return false
		}
		p.frame[c] = s
	}

	return true
}

func (p *playback) readSample(outBits int) (int32, bool) {
	bps := p.format.BytesPerSample()
	for p.pos+bps > len(p.buf) {
		if !p.fetch() {
			return 0, false
		}
	}

	raw := p.buf[p.pos : p.pos+bps]
	p.pos += bps

	return convertSample(raw, p.format, outBits), true
}

// fetch pulls the next source buffer. A trailing partial sample in the
// previous buffer is dropped.
func (p *playback) fetch() bool {
	if p.fresh {
		p.fresh = false
		if err := p.sample.Reset(); err != nil {
			p.err = err
			return false
		}
	}
	if p.sample.Exhausted() {
		return false
	}

	buf, err := p.sample.NextBuffer()
	if err != nil {
		if !errors.Is(err, io.EOF) {
			p.err = err
		}
		return false
	}
	if len(buf) == 0 {
		p.err = errEmptyBuffer
		return false
	}

	p.buf, p.pos = buf, 0

	return true
}

func (p *playback) restart() bool {
	if err := p.sample.Reset(); err != nil {
		p.err = err
		return false
	}
	p.fresh = false
	p.buf, p.pos = nil, 0

	return true
}

// drained reports whether the sample has nothing left to hand out.
func (p *playback) drained() bool {
	return !p.fresh && p.pos >= len(p.buf) && p.sample.Exhausted()
}

// convertSample decodes one raw sample and brings it to the signed range of
// an outBits wide sample.
func convertSample(raw []byte, f audio.Format, outBits int) int32 {
	if len(raw) == 1 {
		v := int8(raw[0])
		if !f.Signed {
			v = utils.ToSigned8(raw[0])
		}
		if outBits == 16 {
			return int32(utils.Widen8To16(v))
		}
		return int32(v)
	}

	u := binary.LittleEndian.Uint16(raw)
	v := int16(u)
	if !f.Signed {
		v = utils.ToSigned16(u)
	}
	if outBits == 8 {
		return int32(utils.Narrow16To8(v))
	}

	return int32(v)
}
