package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// Message is the "message" field of an ErrorResponse: either a single string
// or a list of strings. It keeps the shape it was built with on the wire.
type Message struct {
	text  string
	list  []string
	multi bool
}

// Text builds a single-string message.
func Text(s string) Message { return Message{text: s} }

// List builds a list message. A nil list encodes as [].
func List(items ...string) Message {
	return Message{list: slices.Clone(items), multi: true}
}

// IsList reports whether the message is a list.
func (m Message) IsList() bool { return m.multi }

// Strings returns the message as a list; a single message yields one element.
func (m Message) Strings() []string {
	if m.multi {
		return slices.Clone(m.list)
	}
	return []string{m.text}
}

// String returns the single message, or the list elements joined by "; ".
func (m Message) String() string {
	if !m.multi {
		return m.text
	}
	return strings.Join(m.list, "; ")
}

func (m Message) MarshalJSON() ([]byte, error) {
	if m.multi {
		if m.list == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(m.list)
	}
	return json.Marshal(m.text)
}

func (m *Message) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return fmt.Errorf("message list: %w", err)
		}
		*m = List(list...)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("message: %w", err)
	}
	*m = Text(s)
	return nil
}
