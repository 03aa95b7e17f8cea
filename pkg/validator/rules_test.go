package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenpulse/apikit/pkg/payload"
	"github.com/lumenpulse/apikit/pkg/validator"
)

func TestRules(t *testing.T) {
	t.Parallel()

	str := payload.String
	num := payload.Number

	tests := []struct {
		name  string
		rule  validator.Constraint
		valid []payload.Value
		bad   []payload.Value
	}{
		{
			name:  "not empty",
			rule:  validator.NotEmpty(),
			valid: []payload.Value{str("x"), payload.List(num(1)), num(0), payload.Bool(false)},
			bad:   []payload.Value{str(""), payload.List(), payload.Object(), payload.Null()},
		},
		{
			name:  "min length counts runes",
			rule:  validator.MinLength(3),
			valid: []payload.Value{str("abc"), str("\u00e9\u00e9\u00e9")},
			bad:   []payload.Value{str("ab"), num(123)},
		},
		{
			name:  "max length",
			rule:  validator.MaxLength(2),
			valid: []payload.Value{str(""), str("ab")},
			bad:   []payload.Value{str("abc")},
		},
		{
			name:  "length",
			rule:  validator.Length(2, 3),
			valid: []payload.Value{str("ab"), str("abc")},
			bad:   []payload.Value{str("a"), str("abcd")},
		},
		{
			name:  "email",
			rule:  validator.Email(),
			valid: []payload.Value{str("alice@example.com")},
			bad:   []payload.Value{str("alice"), str("alice@"), str(""), num(1)},
		},
		{
			name:  "url",
			rule:  validator.URL(),
			valid: []payload.Value{str("https://example.com/path?q=1")},
			bad:   []payload.Value{str("example"), str("")},
		},
		{
			name:  "date string",
			rule:  validator.DateString(),
			valid: []payload.Value{str("2024-01-02"), str("2024-01-02T10:00:00Z"), str("2024-01-02T10:00:00+02:00")},
			bad:   []payload.Value{str("2024-13-01"), str("yesterday"), str("02/01/2024")},
		},
		{
			name:  "uuid",
			rule:  validator.UUID(),
			valid: []payload.Value{str("6ba7b810-9dad-11d1-80b4-00c04fd430c8")},
			bad:   []payload.Value{str("6ba7b8109dad11d180b400c04fd430c8"), str("nope")},
		},
		{
			name:  "min",
			rule:  validator.Min(18),
			valid: []payload.Value{num(18), num(99.5)},
			bad:   []payload.Value{num(17.9), str("20")},
		},
		{
			name:  "max",
			rule:  validator.Max(10),
			valid: []payload.Value{num(10), num(-3)},
			bad:   []payload.Value{num(10.01)},
		},
		{
			name:  "positive",
			rule:  validator.Positive(),
			valid: []payload.Value{num(0.1)},
			bad:   []payload.Value{num(0), num(-1)},
		},
		{
			name:  "one of",
			rule:  validator.OneOf("draft", "published", "3"),
			valid: []payload.Value{str("draft"), num(3)},
			bad:   []payload.Value{str("archived"), payload.List(str("draft"))},
		},
		{
			name:  "array min size",
			rule:  validator.ArrayMinSize(1),
			valid: []payload.Value{payload.List(num(1))},
			bad:   []payload.Value{payload.List(), str("x")},
		},
		{
			name:  "array max size",
			rule:  validator.ArrayMaxSize(1),
			valid: []payload.Value{payload.List(), payload.List(num(1))},
			bad:   []payload.Value{payload.List(num(1), num(2))},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			for _, v := range tt.valid {
				assert.True(t, tt.rule.Check(v), "%s should accept %s", tt.rule.Name, v.Text())
			}
			for _, v := range tt.bad {
				assert.False(t, tt.rule.Check(v), "%s should reject %s", tt.rule.Name, v.Text())
			}
		})
	}
}

func TestRuleMessages(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "must not be less than 2.5", validator.Min(2.5).Message)
	assert.Equal(t, "must not be greater than 100", validator.Max(100).Message)
	assert.Equal(t, "must contain at least 2 elements", validator.ArrayMinSize(2).Message)
	assert.Equal(t, "must match /^a+$/ regular expression", validator.Matches(`^a+$`).Message)
	assert.Panics(t, func() { validator.Matches(`(`) })
}

func TestExpr(t *testing.T) {
	t.Parallel()

	t.Run("string predicate", func(t *testing.T) {
		t.Parallel()
		c := validator.MustExpr("prefix", "value.startsWith('lp-')", "must start with lp-")
		assert.Equal(t, "prefix", c.Name)
		assert.True(t, c.Check(payload.String("lp-1")))
		assert.False(t, c.Check(payload.String("x-1")))
	})

	t.Run("list and number", func(t *testing.T) {
		t.Parallel()
		c := validator.MustExpr("small", "size(value) <= 2 && value.all(x, x > 0)", "must hold at most two positive numbers")
		assert.True(t, c.Check(payload.List(payload.Number(1), payload.Number(2))))
		assert.False(t, c.Check(payload.List(payload.Number(1), payload.Number(-2))))
		assert.False(t, c.Check(payload.List(payload.Number(1), payload.Number(2), payload.Number(3))))
	})

	t.Run("evaluation error fails the check", func(t *testing.T) {
		t.Parallel()
		c := validator.MustExpr("prefix", "value.startsWith('a')", "bad")
		assert.False(t, c.Check(payload.Number(1)))
	})

	t.Run("rejects bad expressions", func(t *testing.T) {
		t.Parallel()
		_, err := validator.Expr("broken", "value.(", "x")
		assert.ErrorIs(t, err, validator.ErrInvalidExpression)

		_, err = validator.Expr("text", "'not a bool'", "x")
		assert.ErrorIs(t, err, validator.ErrInvalidExpression)

		assert.Panics(t, func() { validator.MustExpr("broken", ")", "x") })
	})

	t.Run("used inside a schema", func(t *testing.T) {
		t.Parallel()
		schema := validator.MustSchema(validator.Field{
			Name: "slug", Type: validator.TypeString,
			Constraints: []validator.Constraint{
				validator.MustExpr("isSlug", "value.matches('^[a-z0-9-]+$')", "must be a slug"),
			},
		})
		_, err := validator.Validate(payload.Object(payload.Field("slug", payload.String("Not A Slug"))), schema)
		require.Error(t, err)
		assert.Equal(t, []string{"slug: must be a slug"}, validator.ExtractValidationError(err).Messages())
	})
}
