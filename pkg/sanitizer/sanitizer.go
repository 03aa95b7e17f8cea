package sanitizer

import (
	"fmt"

	"github.com/lumenpulse/apikit/pkg/payload"
)

// Mode selects how a Sanitizer walks a payload.
type Mode string

const (
	// ModeDeep rewrites every string leaf. Used for content that is persisted or rendered.
	ModeDeep Mode = "deep"
	// ModeStringsOnly rewrites scalar string leaves only, checking each member's
	// kind first. Used as a late pass at the request boundary.
	ModeStringsOnly Mode = "shallow-strings-only"
)

// ParseMode converts a configuration string into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeDeep, "":
		return ModeDeep, nil
	case ModeStringsOnly, "strings-only", "shallow":
		return ModeStringsOnly, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Option configures a Sanitizer.
type Option func(*Sanitizer)

// WithMode sets the traversal mode. Unknown modes are ignored.
func WithMode(m Mode) Option {
	return func(s *Sanitizer) {
		if m == ModeDeep || m == ModeStringsOnly {
			s.mode = m
		}
	}
}

// WithCustomTransform runs fn on every string leaf before the default
// null-byte/trim/escape chain. Multiple calls are chained in order.
func WithCustomTransform(fn Transform) Option {
	return func(s *Sanitizer) {
		if fn != nil {
			s.custom = append(s.custom, fn)
		}
	}
}

// Sanitizer applies the configured leaf transform across a payload.
// It is immutable after New and safe to share.
type Sanitizer struct {
	mode   Mode
	custom []Transform
	leaf   Transform
}

// New creates a Sanitizer. The default is deep mode with no custom transform.
func New(opts ...Option) *Sanitizer {
	s := &Sanitizer{mode: ModeDeep}
	for _, opt := range opts {
		opt(s)
	}

	chain := make([]func(string) string, 0, len(s.custom)+1)
	for _, fn := range s.custom {
		chain = append(chain, fn)
	}
	chain = append(chain, SanitizeString)
	s.leaf = Compose(chain...)
	return s
}

// Mode returns the configured traversal mode.
func (s *Sanitizer) Mode() Mode {
	return s.mode
}

// String sanitizes a single string with the configured leaf transform.
func (s *Sanitizer) String(str string) string {
	return s.leaf(str)
}

// Value sanitizes v, preserving its shape.
func (s *Sanitizer) Value(v payload.Value) payload.Value {
	if s.mode == ModeStringsOnly {
		return StringsOnly(v, s.leaf)
	}
	return Deep(v, s.leaf)
}
