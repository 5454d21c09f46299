package strictjson

import (
	"fmt"

	"github.com/rbaliyan/strictjson/settings"
)

// NewFromSettings creates a Codec from loaded settings. Options passed here
// are applied after the settings and take precedence.
//
//	s, err := settings.Load("strictjson.yaml")
//	if err != nil {
//		return err
//	}
//	c, err := strictjson.NewFromSettings(s, strictjson.WithLogger(logger))
func NewFromSettings(s *settings.Settings, opts ...Option) (*Codec, error) {
	if s == nil {
		s = settings.Default()
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	flags, err := s.ParsedFlags()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	base := []Option{
		WithBackend(s.Backend),
		WithDefaultDepth(s.Depth),
		WithDefaultFlags(flags),
		WithMaxFileSize(s.MaxFileSize),
	}
	return New(append(base, opts...)...)
}
