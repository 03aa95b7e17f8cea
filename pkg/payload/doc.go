// Package payload models a request payload as a tagged value tree so that it can
// be traversed without knowing its shape in advance.
//
// A Value is exactly one of Null, String, Number, Bool, List or Object. Objects keep
// their members in insertion order, which for decoded JSON is the order the keys
// appeared on the wire; validators and sanitizers rely on that order to produce
// deterministic output.
//
//	v, err := payload.ParseJSON([]byte(`{"title":"  hi  ","tags":["a","b"]}`))
//	if err != nil {
//		// malformed JSON
//	}
//	title, _ := v.Get("title")
//	s, _ := title.Str() // "  hi  "
//
// Values are immutable: every constructor copies its inputs and every accessor
// returns copies or read-only views, so a Value can be shared between goroutines.
package payload
