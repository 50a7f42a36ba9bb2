//go:build pprof

package profile

import "github.com/pkg/profile"

// control accumulates the options passed to [profile.Start].
type control struct {
	mode []func(*profile.Profile)
}

// controlOption applies a configuration option to control.
type controlOption func(control) control

// apply applies multiple options to a control.
func apply(c control, opts ...controlOption) control {
	for _, opt := range opts {
		c = opt(c)
	}

	return c
}

func withMode(m string) controlOption {
	return func(c control) control {
		if fn, ok := mode[m]; ok {
			c.mode = append(c.mode, fn)
		}

		return c
	}
}

func withPath(p string) controlOption {
	return func(c control) control {
		if p != "" {
			c.mode = append(c.mode, profile.ProfilePath(p))
		}

		return c
	}
}

func withQuiet(v bool) controlOption {
	return func(c control) control {
		if v {
			c.mode = append(c.mode, profile.Quiet)
		}

		return c
	}
}
