package mirax

import (
	"errors"

	"github.com/go-kit/log"
	"github.com/spf13/afero"

	"github.com/arloliu/mirax/internal/options"
)

// Option configures Open.
type Option = options.Option[*Slide]

// WithFs reads the slide from fs instead of the operating system filesystem.
func WithFs(fs afero.Fs) Option {
	return options.New(func(s *Slide) error {
		if fs == nil {
			return errors.New("nil filesystem")
		}
		s.fs = fs

		return nil
	})
}

// WithLogger sets the logger for debug tracing of index lookups. Nil is ignored.
func WithLogger(logger log.Logger) Option {
	return options.NoError(func(s *Slide) {
		if logger != nil {
			s.logger = logger
		}
	})
}
