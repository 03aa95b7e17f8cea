// Package sanitizer rewrites string content so that it cannot be interpreted as
// markup or script by a downstream renderer.
//
// The package has two layers. The first is a set of small string transforms that
// can be used on their own or chained:
//
//   - RemoveNullBytes strips embedded NUL characters.
//   - Trim removes leading and trailing whitespace.
//   - EscapeHTML replaces & < > " ' / with their HTML entities.
//   - SanitizeString applies the three above, in that order.
//
// Apply and Compose build custom chains:
//
//	clean := sanitizer.Compose(sanitizer.Trim, sanitizer.ToLower)
//	clean("  MiXeD ") // "mixed"
//
// The second layer walks a payload.Value and rewrites every string leaf while
// leaving the structure untouched: lists stay lists, objects keep their keys, and
// null, number and boolean leaves are returned as they are.
//
//	s := sanitizer.New(sanitizer.WithMode(sanitizer.ModeDeep))
//	clean := s.Value(raw)
//
// # Escaping is not idempotent
//
// EscapeHTML encodes '&', so escaping an already escaped string encodes it again
// ("&" -> "&amp;" -> "&amp;amp;"). Callers must sanitize a given value exactly once.
//
// # Error handling
//
// None of the helpers returns an error. A custom transform that panics is the
// caller's responsibility; the request pipeline recovers it.
//
// The package holds no global mutable state and is safe for concurrent use.
package sanitizer
