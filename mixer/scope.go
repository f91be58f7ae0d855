// SPDX-License-Identifier: EPL-2.0

package mixer

// With constructs a Mixer, hands it to fn and deinitializes it when fn
// returns, even when fn fails or panics.
func With(cfg Config, fn func(m *Mixer) error, opts ...Option) (err error) {
	m, err := New(cfg, opts...)
	if err != nil {
		return err
	}

	defer func() {
		if cerr := m.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return fn(m)
}
