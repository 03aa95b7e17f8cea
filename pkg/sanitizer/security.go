package sanitizer

import "strings"

// htmlEscaper maps the HTML metacharacters to their entities. The set matches what
// browsers need to keep text out of tag, attribute and closing-tag context.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
	"/", "&#x2F;",
)

// EscapeHTML escapes & < > " ' and / to prevent XSS.
func EscapeHTML(s string) string {
	if s == "" {
		return s
	}
	return htmlEscaper.Replace(s)
}

// RemoveNullBytes removes NUL characters that can truncate strings in C-based consumers.
func RemoveNullBytes(s string) string {
	if s == "" {
		return s
	}
	return strings.ReplaceAll(s, "\x00", "")
}

// SanitizeString removes null bytes, trims whitespace and escapes HTML, in that order.
func SanitizeString(s string) string {
	if s == "" {
		return s
	}
	return EscapeHTML(Trim(RemoveNullBytes(s)))
}
