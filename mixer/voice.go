// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/utils"
)

// Voice is one playback slot of a Mixer.
//
// Play and Stop publish or clear a playback record atomically, so the fill
// path sees either the old or the new state and never a mix of both.
type Voice struct {
	parent *Mixer
	index  int
	state  atomic.Pointer[playback]
	level  atomic.Uint32
}

func newVoice(m *Mixer, index int) *Voice {
	v := &Voice{parent: m, index: index}
	v.level.Store(utils.UnityQ16)

	return v
}

// Index is the voice's position in its mixer's pool.
func (v *Voice) Index() int { return v.index }

// Playing reports whether the voice contributes to the mix.
func (v *Voice) Playing() bool { return v.state.Load() != nil }

// Play starts s from its beginning, replacing whatever the voice was
// playing. With loop set the sample restarts whenever it runs out.
func (v *Voice) Play(s audio.Sample, loop bool) error {
	if s == nil {
		return ErrNilSample
	}

	m := v.parent
	if m.deinited.Load() {
		return ErrDeinitialized
	}

	f := s.Format()
	if err := m.checkFormat(f); err != nil {
		return fmt.Errorf("voice %d: %w", v.index, err)
	}

	p := &playback{
		sample: s,
		format: f,
		loop:   loop,
		fresh:  true,
		frame:  make([]int32, f.Channels),
	}
	v.state.Store(p)

	// Deinit may have cleared the voices between the check above and
	// the store.
	if m.deinited.Load() {
		v.state.CompareAndSwap(p, nil)
		return ErrDeinitialized
	}

	m.log.Debug("voice playing", "voice", v.index, "format", f.String(), "loop", loop)

	return nil
}

// Stop silences the voice. Stopping an idle voice does nothing.
func (v *Voice) Stop() {
	if v.state.Swap(nil) != nil {
		v.parent.log.Debug("voice stopped", "voice", v.index)
	}
}

// SetLevel sets the voice volume, 0.0 (silent) to 1.0 (unity).
func (v *Voice) SetLevel(level float64) error {
	if math.IsNaN(level) || level < 0 || level > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidLevel, level)
	}

	v.level.Store(utils.LevelToQ16(level))

	return nil
}

// Level is the current voice volume.
func (v *Voice) Level() float64 { return utils.Q16ToLevel(v.level.Load()) }
