package sanitizer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenpulse/apikit/pkg/payload"
	"github.com/lumenpulse/apikit/pkg/sanitizer"
)

func mustParse(t *testing.T, s string) payload.Value {
	t.Helper()
	v, err := payload.ParseJSON([]byte(s))
	require.NoError(t, err)
	return v
}

func TestDeep(t *testing.T) {
	t.Parallel()

	in := mustParse(t, `{
		"username": "  <script>alert(\"xss\")</script>  ",
		"age": 42,
		"active": true,
		"bio": null,
		"tags": [" <a> ", 7, null, ["<nested>"]],
		"profile": {"site": "a/b", "score": 1.5}
	}`)

	out := sanitizer.Deep(in, nil)

	want := mustParse(t, `{
		"username": "&lt;script&gt;alert(&quot;xss&quot;)&lt;&#x2F;script&gt;",
		"age": 42,
		"active": true,
		"bio": null,
		"tags": ["&lt;a&gt;", 7, null, ["&lt;nested&gt;"]],
		"profile": {"site": "a&#x2F;b", "score": 1.5}
	}`)
	assert.True(t, payload.Equal(want, out), "got %s", out.Text())
}

func TestDeep_PreservesShape(t *testing.T) {
	t.Parallel()

	inputs := []string{
		`[]`,
		`{}`,
		`[1, "a", {"k": ["<"]}]`,
		`{"a": {"b": {"c": [" x "]}}, "d": false}`,
	}

	for _, raw := range inputs {
		in := mustParse(t, raw)
		out := sanitizer.Deep(in, nil)
		assert.Equal(t, in.Kind(), out.Kind(), raw)
		assert.Equal(t, in.Keys(), out.Keys(), raw)
		assert.Equal(t, in.Len(), out.Len(), raw)
	}
}

func TestDeep_NonStringLeaves(t *testing.T) {
	t.Parallel()

	assert.True(t, payload.Equal(payload.Number(42), sanitizer.Deep(payload.Number(42), nil)))
	assert.True(t, payload.Equal(payload.Null(), sanitizer.Deep(payload.Null(), nil)))
	assert.True(t, payload.Equal(payload.Bool(false), sanitizer.Deep(payload.Bool(false), nil)))
}

func TestDeep_CustomTransform(t *testing.T) {
	t.Parallel()

	in := mustParse(t, `{"q": "  HeLLo  ", "n": [" X "]}`)
	out := sanitizer.Deep(in, sanitizer.TrimToLower)

	q, _ := out.Get("q")
	assert.Equal(t, "hello", q.Text())
	n, _ := out.Get("n")
	assert.Equal(t, `["x"]`, n.Text())
}

func TestStringsOnly(t *testing.T) {
	t.Parallel()

	in := mustParse(t, `{"title": " <h1> ", "count": "5", "n": 5, "meta": {"k": "'v'"}, "list": ["<"], "none": null}`)
	out := sanitizer.StringsOnly(in, nil)

	want := mustParse(t, `{"title": "&lt;h1&gt;", "count": "5", "n": 5, "meta": {"k": "&#39;v&#39;"}, "list": ["&lt;"], "none": null}`)
	assert.True(t, payload.Equal(want, out), "got %s", out.Text())

	assert.True(t, payload.Equal(payload.String("&amp;"), sanitizer.StringsOnly(payload.String("&"), nil)))
}

func TestSanitizer_Modes(t *testing.T) {
	t.Parallel()

	in := mustParse(t, `{"a": " <x> ", "b": [{"c": "/"}]}`)

	deep := sanitizer.New(sanitizer.WithMode(sanitizer.ModeDeep))
	shallow := sanitizer.New(sanitizer.WithMode(sanitizer.ModeStringsOnly))

	assert.Equal(t, sanitizer.ModeDeep, deep.Mode())
	assert.Equal(t, sanitizer.ModeStringsOnly, shallow.Mode())
	assert.True(t, payload.Equal(deep.Value(in), shallow.Value(in)))
}

func TestSanitizer_CustomTransformStillEscapes(t *testing.T) {
	t.Parallel()

	var calls int
	upper := func(s string) string {
		calls++
		return strings.ToUpper(s)
	}

	s := sanitizer.New(
		sanitizer.WithCustomTransform(upper),
		sanitizer.WithCustomTransform(nil),
	)

	out := s.Value(mustParse(t, `{"a": "<b>x</b>", "b": ["y"]}`))
	a, _ := out.Get("a")
	assert.Equal(t, "&lt;B&gt;X&lt;&#x2F;B&gt;", a.Text())
	assert.Equal(t, 2, calls)
	assert.Equal(t, "Z", s.String(" z "))
}

func TestParseMode(t *testing.T) {
	t.Parallel()

	m, err := sanitizer.ParseMode("deep")
	require.NoError(t, err)
	assert.Equal(t, sanitizer.ModeDeep, m)

	m, err = sanitizer.ParseMode("shallow-strings-only")
	require.NoError(t, err)
	assert.Equal(t, sanitizer.ModeStringsOnly, m)

	_, err = sanitizer.ParseMode("wild")
	assert.ErrorIs(t, err, sanitizer.ErrUnknownMode)
}
