package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lumenpulse/apikit/pkg/sanitizer"
)

func TestEscapeHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "escapes script tag",
			input:    `<script>alert("xss")</script>`,
			expected: "&lt;script&gt;alert(&quot;xss&quot;)&lt;&#x2F;script&gt;",
		},
		{
			name:     "escapes quotes and ampersands",
			input:    `"test" & 'value'`,
			expected: "&quot;test&quot; &amp; &#39;value&#39;",
		},
		{
			name:     "escapes forward slash",
			input:    "a/b",
			expected: "a&#x2F;b",
		},
		{
			name:     "handles normal text",
			input:    "normal text",
			expected: "normal text",
		},
		{
			name:     "handles empty string",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, sanitizer.EscapeHTML(tt.input))
		})
	}
}

func TestEscapeHTML_NotIdempotent(t *testing.T) {
	t.Parallel()

	once := sanitizer.EscapeHTML("<")
	twice := sanitizer.EscapeHTML(once)

	assert.Equal(t, "&lt;", once)
	assert.Equal(t, "&amp;lt;", twice)
	assert.NotEqual(t, once, twice)

	assert.Equal(t, "&amp;amp;", sanitizer.EscapeHTML(sanitizer.EscapeHTML("&")))
}

func TestRemoveNullBytes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "abc", sanitizer.RemoveNullBytes("a\x00b\x00c"))
	assert.Equal(t, "", sanitizer.RemoveNullBytes("\x00\x00"))
	assert.Equal(t, "", sanitizer.RemoveNullBytes(""))
}

func TestSanitizeString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "null bytes, padding and markup",
			input:    "  \x00<script>\x00  ",
			expected: "&lt;script&gt;",
		},
		{
			name:     "null byte between whitespace is removed before trim",
			input:    "\x00  hello  \x00",
			expected: "hello",
		},
		{
			name:     "plain text unchanged",
			input:    "hello world",
			expected: "hello world",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, sanitizer.SanitizeString(tt.input))
		})
	}
}

func TestTransforms_Independent(t *testing.T) {
	t.Parallel()

	in := "  \x00<b>  "

	assert.Equal(t, "  <b>  ", sanitizer.RemoveNullBytes(in))
	assert.Equal(t, "\x00<b>", sanitizer.Trim(in))
	assert.Equal(t, "  \x00&lt;b&gt;  ", sanitizer.EscapeHTML(in))
	assert.Equal(t, "&lt;b&gt;", sanitizer.EscapeHTML(sanitizer.Trim(sanitizer.RemoveNullBytes(in))))
}
