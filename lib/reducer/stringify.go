// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package reducer

import (
	"encoding/json"
	"reflect"
)

// StableStringify serializes v deterministically: object keys are sorted
// lexicographically (delegated to encoding/json's native map[string]any
// ordering once the tree is sanitized), arrays keep their order, cyclic
// references are replaced with the sentinel string "[Circular]" on
// revisit, and values encoding/json cannot represent fall back to the
// string "[Unserializable]".
func StableStringify(v any) string {
	sanitized := sanitize(v, make(map[uintptr]bool))
	data, err := json.Marshal(sanitized)
	if err != nil {
		return `"[Unserializable]"`
	}
	return string(data)
}

// sanitize walks v, converting it into a tree of nil/bool/string/float64/
// map[string]any/[]any that encoding/json can always marshal, replacing
// any reference already on the ancestors set with "[Circular]".
func sanitize(v any, ancestors map[uintptr]bool) any {
	if v == nil {
		return nil
	}

	switch val := v.(type) {
	case string, bool, float64, float32,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return val
	case map[string]any:
		return sanitizeMapStringAny(val, ancestors)
	case []any:
		return sanitizeSlice(reflect.ValueOf(val), ancestors)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		return sanitizeMap(rv, ancestors)
	case reflect.Slice, reflect.Array:
		return sanitizeSlice(rv, ancestors)
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return sanitizePointer(rv, ancestors)
	case reflect.Struct:
		return sanitizeStruct(rv, ancestors)
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint()
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	default:
		return "[Unserializable]"
	}
}

func sanitizeMapStringAny(m map[string]any, ancestors map[uintptr]bool) any {
	ptr := reflect.ValueOf(m).Pointer()
	if ancestors[ptr] {
		return "[Circular]"
	}
	ancestors[ptr] = true
	defer delete(ancestors, ptr)

	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = sanitize(v, ancestors)
	}
	return out
}

func sanitizeMap(rv reflect.Value, ancestors map[uintptr]bool) any {
	ptr := rv.Pointer()
	if ancestors[ptr] {
		return "[Circular]"
	}
	ancestors[ptr] = true
	defer delete(ancestors, ptr)

	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		key := stringifyKey(iter.Key())
		out[key] = sanitize(iter.Value().Interface(), ancestors)
	}
	return out
}

func stringifyKey(k reflect.Value) string {
	if k.Kind() == reflect.String {
		return k.String()
	}
	return jsonScalar(k.Interface())
}

func jsonScalar(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "[Unserializable]"
	}
	return string(data)
}

func sanitizeSlice(rv reflect.Value, ancestors map[uintptr]bool) any {
	if rv.Kind() == reflect.Slice {
		if rv.IsNil() {
			return []any{}
		}
		ptr := rv.Pointer()
		if ancestors[ptr] {
			return "[Circular]"
		}
		ancestors[ptr] = true
		defer delete(ancestors, ptr)
	}

	out := make([]any, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out[i] = sanitize(rv.Index(i).Interface(), ancestors)
	}
	return out
}

func sanitizePointer(rv reflect.Value, ancestors map[uintptr]bool) any {
	ptr := rv.Pointer()
	if ancestors[ptr] {
		return "[Circular]"
	}
	ancestors[ptr] = true
	defer delete(ancestors, ptr)
	return sanitize(rv.Elem().Interface(), ancestors)
}

func sanitizeStruct(rv reflect.Value, ancestors map[uintptr]bool) any {
	out := make(map[string]any, rv.NumField())
	t := rv.Type()
	for i := 0; i < rv.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		out[field.Name] = sanitize(rv.Field(i).Interface(), ancestors)
	}
	return out
}
