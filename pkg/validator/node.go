package validator

import (
	"errors"
	"strings"
)

// Violation is a single failed constraint.
type Violation struct {
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ErrorNode reports the failures of one property. Children hold failures of
// nested object members or array elements; array elements use their index
// as Property.
type ErrorNode struct {
	Property    string      `json:"property"`
	Constraints []Violation `json:"constraints,omitempty"`
	Children    []ErrorNode `json:"children,omitempty"`
}

// ValidationError is returned by Validate when the payload does not satisfy
// the schema. Nodes is never empty.
type ValidationError struct {
	Nodes []ErrorNode
}

func (e *ValidationError) Error() string {
	msgs := e.Messages()
	if len(msgs) == 0 {
		return "validation failed"
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Messages returns the flattened messages of the error tree.
func (e *ValidationError) Messages() []string {
	return Flatten(e.Nodes)
}

// IsValidationError reports whether err wraps a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ExtractValidationError returns the *ValidationError wrapped by err, or nil.
func ExtractValidationError(err error) *ValidationError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}

// Flatten walks the error tree depth-first and returns one message per
// violation, formatted as "path: message". A node's own violations come
// before those of its children; siblings keep their order.
func Flatten(nodes []ErrorNode) []string {
	var out []string
	for _, n := range nodes {
		out = flattenNode(out, "", n)
	}
	return out
}

func flattenNode(out []string, parent string, n ErrorNode) []string {
	path := joinPath(parent, n.Property)
	for _, v := range n.Constraints {
		out = append(out, path+": "+v.Message)
	}
	for _, c := range n.Children {
		out = flattenNode(out, path, c)
	}
	return out
}
