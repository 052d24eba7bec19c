package tradelab

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

// jsonObjectWriter builds a JSON object whose keys appear in the exact order
// they were appended, which encoding/json does not guarantee for maps. The
// zero value is an empty object. The first error sticks and surfaces at
// MarshalJSON.
type jsonObjectWriter struct {
	fields [][]byte
	err    error
}

// Append adds one key and its marshaled value.
func (w *jsonObjectWriter) Append(key string, value any) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	val, err := json.Marshal(value)
	if err != nil {
		w.err = fmt.Errorf("cannot marshal field %q: %w", key, err)
		return w
	}
	var b bytes.Buffer
	fmt.Fprintf(&b, "%q:", key)
	b.Write(val)
	w.fields = append(w.fields, b.Bytes())
	return w
}

// Optional appends the field only when the value is not its type's zero
// value, leaving defaults out of the output entirely.
func (w *jsonObjectWriter) Optional(key string, value any) *jsonObjectWriter {
	if v := reflect.ValueOf(value); !v.IsValid() || v.IsZero() {
		return w
	}
	return w.Append(key, value)
}

// Embed merges the fields of a raw JSON object into this one, keeping their
// relative order.
func (w *jsonObjectWriter) Embed(rawJSON []byte) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	inner := bytes.TrimSpace(rawJSON)
	if len(inner) >= 2 && inner[0] == '{' && inner[len(inner)-1] == '}' {
		inner = bytes.TrimSpace(inner[1 : len(inner)-1])
	}
	if len(inner) > 0 {
		w.fields = append(w.fields, inner)
	}
	return w
}

// EmbedFrom marshals v and merges the resulting object's fields, the way a
// JSON struct embedding would.
func (w *jsonObjectWriter) EmbedFrom(v any) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	raw, err := json.Marshal(v)
	if err != nil {
		w.err = fmt.Errorf("cannot marshal embedded value: %w", err)
		return w
	}
	return w.Embed(raw)
}

// MarshalJSON assembles the object. It satisfies json.Marshaler so a writer
// can be returned straight from a MarshalJSON method.
func (w *jsonObjectWriter) MarshalJSON() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	var b bytes.Buffer
	b.WriteByte('{')
	for i, f := range w.fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.Write(f)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}
