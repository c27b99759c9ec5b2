package page

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"pageauto/domain/interfaces"
)

// Options configures how a page tree is built and how its actions are
// instrumented. The zero value (or nil) gives sane defaults.
type Options struct {
	// Logger receives resolver and hook events. Defaults to the standard logrus logger.
	Logger *logrus.Logger

	// FS is the filesystem page documents are read from. Defaults to the OS filesystem.
	FS afero.Fs

	// Screenshots, when set, receives before/after captures around every
	// write action. Nil disables screenshot capture.
	Screenshots interfaces.ScreenshotSink

	// DisableHighlight turns off the border highlight applied to the target
	// element during write actions.
	DisableHighlight bool

	// Hooks are extra action hooks, run after the built-in ones and before
	// screenshot capture.
	Hooks []Hook
}

func (o *Options) normalized() *Options {
	n := &Options{}
	if o != nil {
		*n = *o
	}
	if n.Logger == nil {
		n.Logger = logrus.StandardLogger()
	}
	if n.FS == nil {
		n.FS = afero.NewOsFs()
	}
	return n
}

// actionChain - the hook chain around click/send_keys, outermost first.
func (o *Options) actionChain() []Hook {
	hooks := []Hook{frameHook{}, resolveHook{}}
	if !o.DisableHighlight {
		hooks = append(hooks, highlightHook{})
	}
	hooks = append(hooks, o.Hooks...)
	if o.Screenshots != nil {
		hooks = append(hooks, screenshotHook{sink: o.Screenshots})
	}
	return hooks
}

// readChain - the hook chain around read accessors. Reads stay frame-aware
// but skip the visual instrumentation.
func (o *Options) readChain() []Hook {
	return []Hook{frameHook{}, resolveHook{}}
}
