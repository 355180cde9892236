package core

import (
	"encoding/json"
	"strconv"
)

// Object is one loosely-structured JSON item as returned by the API. Values
// are not validated: scalar accessors convert any scalar they can represent
// (a bool reads as "true", a numeric string reads as a number). A missing key,
// a null, or a value no conversion applies to leaves the field unset; the raw
// value is still kept in the entity's Data.
type Object map[string]any

func (o Object) Has(key string) bool {
	v, ok := o[key]
	return ok && v != nil
}

// truthy mirrors how the API payloads signal presence: a nested value counts
// only if it is non-null and non-empty.
func (o Object) truthy(key string) bool {
	switch v := o[key].(type) {
	case nil:
		return false
	case string:
		return v != ""
	case []any:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	case Object:
		return len(v) > 0
	case bool:
		return v
	default:
		return true
	}
}

func (o Object) String(key string) *string {
	s, ok := scalarString(o[key])
	if !ok {
		return nil
	}
	return &s
}

func scalarString(v any) (string, bool) {
	switch v := v.(type) {
	case string:
		return v, true
	case json.Number:
		return v.String(), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		return "", false
	}
}

func (o Object) Bool(key string) *bool {
	v, ok := o[key].(bool)
	if !ok {
		return nil
	}
	return &v
}

func (o Object) Float(key string) *float64 {
	var f float64
	switch v := o[key].(type) {
	case float64:
		f = v
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return nil
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	return &f
}

func (o Object) Int(key string) *int64 {
	var i int64
	switch v := o[key].(type) {
	case float64:
		i = int64(v)
	case json.Number:
		parsed, err := v.Int64()
		if err != nil {
			f, ferr := v.Float64()
			if ferr != nil {
				return nil
			}
			parsed = int64(f)
		}
		i = parsed
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil
		}
		i = int64(parsed)
	default:
		return nil
	}
	return &i
}

func (o Object) Object(key string) Object {
	return asObject(o[key])
}

func (o Object) Objects(key string) []Object {
	items, ok := o[key].([]any)
	if !ok {
		return nil
	}
	out := make([]Object, 0, len(items))
	for _, item := range items {
		if obj := asObject(item); obj != nil {
			out = append(out, obj)
		}
	}
	return out
}

func (o Object) Strings(key string) []string {
	items, ok := o[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if v, ok := scalarString(item); ok {
			out = append(out, v)
		}
	}
	return out
}

func asObject(v any) Object {
	switch m := v.(type) {
	case map[string]any:
		return Object(m)
	case Object:
		return m
	default:
		return nil
	}
}

// Deref returns the zero value for an unset field.
func Deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
