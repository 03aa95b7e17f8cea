package payload_test

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenpulse/apikit/pkg/payload"
)

func TestParseJSON(t *testing.T) {
	t.Parallel()

	t.Run("keeps object key order", func(t *testing.T) {
		t.Parallel()
		v, err := payload.ParseJSON([]byte(`{"b":1,"a":2,"c":{"z":true,"y":null}}`))
		require.NoError(t, err)
		assert.Equal(t, []string{"b", "a", "c"}, v.Keys())

		c, ok := v.Get("c")
		require.True(t, ok)
		assert.Equal(t, []string{"z", "y"}, c.Keys())
	})

	t.Run("decodes every kind", func(t *testing.T) {
		t.Parallel()
		v, err := payload.ParseJSON([]byte(`{"s":"x","n":1.5,"b":false,"l":[1,"2"],"o":{},"z":null}`))
		require.NoError(t, err)

		s, _ := v.Get("s")
		assert.Equal(t, payload.KindString, s.Kind())
		n, _ := v.Get("n")
		num, ok := n.Num()
		assert.True(t, ok)
		assert.InDelta(t, 1.5, num, 0)
		b, _ := v.Get("b")
		assert.Equal(t, payload.KindBool, b.Kind())
		l, _ := v.Get("l")
		assert.Equal(t, 2, l.Len())
		o, _ := v.Get("o")
		assert.Equal(t, payload.KindObject, o.Kind())
		z, _ := v.Get("z")
		assert.True(t, z.IsNull())
	})

	t.Run("duplicate keys keep first position and last value", func(t *testing.T) {
		t.Parallel()
		v, err := payload.ParseJSON([]byte(`{"a":1,"b":2,"a":3}`))
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, v.Keys())
		a, _ := v.Get("a")
		assert.Equal(t, "3", a.Text())
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		t.Parallel()
		for _, in := range []string{``, `{`, `{"a":}`, `[1,]`, `{} {}`, `{"a":1} trailing`} {
			_, err := payload.ParseJSON([]byte(in))
			assert.ErrorIs(t, err, payload.ErrMalformedJSON, "input %q", in)
		}
	})
}

func TestParseJSON_Nesting(t *testing.T) {
	t.Parallel()

	nested := func(depth int) string {
		return strings.Repeat("[", depth) + strings.Repeat("]", depth)
	}

	t.Run("accepts max depth", func(t *testing.T) {
		t.Parallel()
		v, err := payload.ParseJSON([]byte(nested(payload.MaxDepth)))
		require.NoError(t, err)
		assert.Equal(t, payload.KindList, v.Kind())
	})

	t.Run("rejects one level deeper", func(t *testing.T) {
		t.Parallel()
		_, err := payload.ParseJSON([]byte(nested(payload.MaxDepth + 1)))
		require.ErrorIs(t, err, payload.ErrMalformedJSON)
	})

	t.Run("rejects unterminated deep document", func(t *testing.T) {
		t.Parallel()
		doc := `{"a":` + strings.Repeat(`[{"b":`, 1<<17)
		_, err := payload.ParseJSON([]byte(doc))
		require.ErrorIs(t, err, payload.ErrMalformedJSON)
	})
}

func TestParseJSON_ManyKeys(t *testing.T) {
	t.Parallel()

	const n = 100_000
	var b strings.Builder
	b.WriteByte('{')
	for i := range n {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, `"k%06d":%d`, i, i)
	}
	b.WriteString(`,"k000000":"last"}`)

	start := time.Now()
	v, err := payload.ParseJSON([]byte(b.String()))
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)

	require.Equal(t, n, v.Len())
	keys := v.Keys()
	assert.Equal(t, "k000000", keys[0])
	assert.Equal(t, fmt.Sprintf("k%06d", n-1), keys[n-1])
	first, _ := v.Get("k000000")
	assert.Equal(t, "last", first.Text())
}

func TestObject_ManyMembers(t *testing.T) {
	t.Parallel()

	const n = 100_000
	members := make([]payload.Member, 0, n+1)
	for i := range n {
		members = append(members, payload.Field(fmt.Sprintf("k%d", i), payload.Number(float64(i))))
	}
	members = append(members, payload.Field("k1", payload.Bool(true)))

	start := time.Now()
	v := payload.Object(members...)
	assert.Less(t, time.Since(start), 5*time.Second)

	require.Equal(t, n, v.Len())
	assert.Equal(t, "k1", v.Keys()[1])
	k1, _ := v.Get("k1")
	assert.Equal(t, payload.Bool(true), k1)
}

func TestValue_MarshalJSON(t *testing.T) {
	t.Parallel()

	v := payload.Object(
		payload.Field("title", payload.String("<b>")),
		payload.Field("count", payload.Number(42)),
		payload.Field("ratio", payload.Number(0.25)),
		payload.Field("tags", payload.List(payload.String("a"), payload.Bool(true), payload.Null())),
	)

	raw, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"<b>","count":42,"ratio":0.25,"tags":["a",true,null]}`, string(raw))

	back, err := payload.ParseJSON(raw)
	require.NoError(t, err)
	assert.True(t, payload.Equal(v, back))
}

func TestFromAny(t *testing.T) {
	t.Parallel()

	v, err := payload.FromAny(map[string]any{
		"name":  "alice",
		"age":   30,
		"tags":  []any{"x", 1.5},
		"admin": false,
		"none":  nil,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"admin", "age", "name", "none", "tags"}, v.Keys())

	age, _ := v.Get("age")
	assert.True(t, age.IsInteger())

	_, err = payload.FromAny(func() {})
	assert.ErrorIs(t, err, payload.ErrUnsupportedType)
}

func TestValue_Interface(t *testing.T) {
	t.Parallel()

	v := payload.MustFromAny(map[string]any{"a": []any{"x", 2.0, nil}, "b": true})
	assert.Equal(t, map[string]any{"a": []any{"x", 2.0, nil}, "b": true}, v.Interface())
	assert.Nil(t, payload.Null().Interface())
}

func TestDecode(t *testing.T) {
	t.Parallel()

	type article struct {
		Title string   `json:"title"`
		Score float64  `json:"score"`
		Tags  []string `json:"tags"`
	}

	v := payload.Object(
		payload.Field("title", payload.String("hello")),
		payload.Field("score", payload.Number(0.5)),
		payload.Field("tags", payload.List(payload.String("go"))),
	)

	var a article
	require.NoError(t, payload.Decode(v, &a))
	assert.Equal(t, article{Title: "hello", Score: 0.5, Tags: []string{"go"}}, a)

	var raw payload.Value
	require.NoError(t, payload.Decode(v, &raw))
	assert.True(t, payload.Equal(v, raw))

	var wrong struct {
		Title int `json:"title"`
	}
	assert.ErrorIs(t, payload.Decode(v, &wrong), payload.ErrDecode)
	assert.ErrorIs(t, payload.Decode(v, nil), payload.ErrNilTarget)
}

func TestValue_Accessors(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 3, payload.String("h\u00e9\u00e9").Len())
	assert.Equal(t, "null", payload.Null().Text())
	assert.Equal(t, "42", payload.Number(42).Text())
	assert.False(t, payload.Number(1.5).IsInteger())
	assert.Nil(t, payload.String("x").Items())
	assert.Nil(t, payload.Number(1).Members())

	_, ok := payload.String("x").Get("a")
	assert.False(t, ok)

	obj := payload.Object(payload.Field("k", payload.Null()))
	assert.True(t, obj.Has("k"))
	assert.False(t, obj.Has("missing"))
	assert.Equal(t, "object", obj.Kind().String())
}
