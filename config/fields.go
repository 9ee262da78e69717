// Package config holds the scene file model and the loosely typed field
// bags that entities and components deserialize from.
package config

import (
	"encoding/json"

	"github.com/go-gl/mathgl/mgl32"
)

// Fields is one decoded JSON or YAML object. Accessors never fail: a missing
// or mistyped key yields the supplied default.
type Fields map[string]any

func (f Fields) Has(key string) bool {
	_, ok := f[key]
	return ok
}

func toFloat(v any) (float32, bool) {
	switch n := v.(type) {
	case float64:
		return float32(n), true
	case float32:
		return n, true
	case int:
		return float32(n), true
	case int64:
		return float32(n), true
	case uint64:
		return float32(n), true
	case json.Number:
		x, err := n.Float64()
		return float32(x), err == nil
	}
	return 0, false
}

func (f Fields) Float(key string, def float32) float32 {
	if v, ok := toFloat(f[key]); ok {
		return v
	}
	return def
}

func (f Fields) Int(key string, def int) int {
	if v, ok := toFloat(f[key]); ok {
		return int(v)
	}
	return def
}

func (f Fields) Bool(key string, def bool) bool {
	if v, ok := f[key].(bool); ok {
		return v
	}
	return def
}

func (f Fields) String(key string, def string) string {
	if v, ok := f[key].(string); ok {
		return v
	}
	return def
}

// floats fills dst from a list value; elements beyond the list keep their
// current contents.
func (f Fields) floats(key string, dst []float32) {
	list, ok := f[key].([]any)
	if !ok {
		return
	}
	for i := 0; i < len(list) && i < len(dst); i++ {
		if v, ok := toFloat(list[i]); ok {
			dst[i] = v
		}
	}
}

func (f Fields) Vec2(key string, def mgl32.Vec2) mgl32.Vec2 {
	f.floats(key, def[:])
	return def
}

func (f Fields) Vec3(key string, def mgl32.Vec3) mgl32.Vec3 {
	f.floats(key, def[:])
	return def
}

func (f Fields) Vec4(key string, def mgl32.Vec4) mgl32.Vec4 {
	f.floats(key, def[:])
	return def
}

func asFields(v any) (Fields, bool) {
	switch m := v.(type) {
	case Fields:
		return m, true
	case map[string]any:
		return Fields(m), true
	}
	return nil, false
}

// Map returns the nested object under key, or nil.
func (f Fields) Map(key string) Fields {
	m, _ := asFields(f[key])
	return m
}

// List returns the objects of the array under key. Non-object elements are
// skipped.
func (f Fields) List(key string) []Fields {
	list, ok := f[key].([]any)
	if !ok {
		if typed, ok := f[key].([]Fields); ok {
			return typed
		}
		return nil
	}
	out := make([]Fields, 0, len(list))
	for _, v := range list {
		if m, ok := asFields(v); ok {
			out = append(out, m)
		}
	}
	return out
}
