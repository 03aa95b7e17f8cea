package validator

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	playground "github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/lumenpulse/apikit/pkg/payload"
)

// formats backs the string format rules. It caches parsed tags and is safe
// for concurrent use.
var formats = playground.New()

const (
	isoDateTimeTag = "datetime=2006-01-02T15:04:05Z07:00"
	isoDateTag     = "datetime=2006-01-02"
)

// NotEmpty fails on empty strings, lists and objects.
func NotEmpty() Constraint {
	return Rule("isNotEmpty", "should not be empty", func(v payload.Value) bool {
		switch v.Kind() {
		case payload.KindString, payload.KindList, payload.KindObject:
			return v.Len() > 0
		}
		return !v.IsNull()
	})
}

// MinLength requires a string of at least n characters.
func MinLength(n int) Constraint {
	return Rule("minLength",
		fmt.Sprintf("must be longer than or equal to %d characters", n),
		stringCheck(func(s string) bool { return len([]rune(s)) >= n }))
}

// MaxLength requires a string of at most n characters.
func MaxLength(n int) Constraint {
	return Rule("maxLength",
		fmt.Sprintf("must be shorter than or equal to %d characters", n),
		stringCheck(func(s string) bool { return len([]rune(s)) <= n }))
}

// Length requires a string length within [minLen, maxLen].
func Length(minLen, maxLen int) Constraint {
	return Rule("isLength",
		fmt.Sprintf("must be between %d and %d characters", minLen, maxLen),
		stringCheck(func(s string) bool {
			l := len([]rune(s))
			return l >= minLen && l <= maxLen
		}))
}

// Matches requires the string to match pattern. It panics if the pattern
// does not compile; use MatchesRegexp with a pre-compiled expression to handle
// that case.
func Matches(pattern string) Constraint {
	return MatchesRegexp(regexp.MustCompile(pattern))
}

// MatchesRegexp requires the string to match re.
func MatchesRegexp(re *regexp.Regexp) Constraint {
	return Rule("matches",
		fmt.Sprintf("must match /%s/ regular expression", re.String()),
		stringCheck(re.MatchString))
}

// Email requires an email address.
func Email() Constraint {
	return Rule("isEmail", "must be an email", formatCheck("email"))
}

// URL requires an absolute URL.
func URL() Constraint {
	return Rule("isUrl", "must be a URL address", formatCheck("url"))
}

// DateString requires an ISO 8601 date (2006-01-02) or RFC 3339 timestamp.
func DateString() Constraint {
	return Rule("isDateString", "must be a valid ISO 8601 date string",
		stringCheck(func(s string) bool {
			return formats.Var(s, isoDateTimeTag) == nil || formats.Var(s, isoDateTag) == nil
		}))
}

// UUID requires a canonical UUID string.
func UUID() Constraint {
	return Rule("isUuid", "must be a UUID", stringCheck(func(s string) bool {
		if len(s) != 36 {
			return false
		}
		_, err := uuid.Parse(s)
		return err == nil
	}))
}

// Min requires a number not less than n.
func Min(n float64) Constraint {
	return Rule("min", "must not be less than "+formatFloat(n),
		numberCheck(func(f float64) bool { return f >= n }))
}

// Max requires a number not greater than n.
func Max(n float64) Constraint {
	return Rule("max", "must not be greater than "+formatFloat(n),
		numberCheck(func(f float64) bool { return f <= n }))
}

// Positive requires a number greater than zero.
func Positive() Constraint {
	return Rule("isPositive", "must be a positive number",
		numberCheck(func(f float64) bool { return f > 0 }))
}

// OneOf requires the scalar value, rendered as text, to be one of values.
func OneOf(values ...string) Constraint {
	allowed := slices.Clone(values)
	return Rule("isIn",
		"must be one of the following values: "+strings.Join(allowed, ", "),
		func(v payload.Value) bool {
			switch v.Kind() {
			case payload.KindString, payload.KindNumber, payload.KindBool:
				return slices.Contains(allowed, v.Text())
			}
			return false
		})
}

// ArrayMinSize requires a list with at least n elements.
func ArrayMinSize(n int) Constraint {
	return Rule("arrayMinSize",
		fmt.Sprintf("must contain at least %d elements", n),
		listCheck(func(l int) bool { return l >= n }))
}

// ArrayMaxSize requires a list with at most n elements.
func ArrayMaxSize(n int) Constraint {
	return Rule("arrayMaxSize",
		fmt.Sprintf("must contain no more than %d elements", n),
		listCheck(func(l int) bool { return l <= n }))
}

func stringCheck(fn func(string) bool) func(payload.Value) bool {
	return func(v payload.Value) bool {
		s, ok := v.Str()
		return ok && fn(s)
	}
}

func numberCheck(fn func(float64) bool) func(payload.Value) bool {
	return func(v payload.Value) bool {
		f, ok := v.Num()
		return ok && fn(f)
	}
}

func listCheck(fn func(int) bool) func(payload.Value) bool {
	return func(v payload.Value) bool {
		return v.Kind() == payload.KindList && fn(v.Len())
	}
}

func formatCheck(tag string) func(payload.Value) bool {
	return stringCheck(func(s string) bool {
		return formats.Var(s, tag) == nil
	})
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
