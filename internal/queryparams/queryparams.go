// Package queryparams maps between the typed product filter specification
// and its flat, multi-valued query-string representation. Multi-valued keys
// are comma-joined, absent values (nil, empty slice, blank string) are never
// emitted, and numeric/boolean tokens are re-typed on parse.
package queryparams

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Object is the loosely typed decode of a query string. Values are string,
// float64, bool, or []any of those.
type Object map[string]any

// Parse decodes a raw query string. Comma-joined values become slices and
// numeric or boolean tokens are converted to their typed form.
func Parse(raw string) (Object, error) {
	values, err := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	if err != nil {
		return nil, err
	}

	obj := make(Object, len(values))

	for key, vals := range values {
		var tokens []string
		for _, v := range vals {
			for _, part := range strings.Split(v, ",") {
				if part != "" {
					tokens = append(tokens, part)
				}
			}
		}

		switch len(tokens) {
		case 0:
			continue
		case 1:
			obj[key] = typeToken(tokens[0])
		default:
			typed := make([]any, 0, len(tokens))
			for _, tok := range tokens {
				typed = append(typed, typeToken(tok))
			}
			obj[key] = typed
		}
	}

	return obj, nil
}

// Stringify encodes an Object canonically: keys sorted, slices comma-joined,
// absent values skipped. Decoding the result yields an Object with the same
// effective meaning.
func Stringify(obj Object) string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		if isAbsent(obj[k]) {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(joinValue(obj[k])))
	}

	return b.String()
}

// Upsert applies patch onto current; patch entries with absent values delete
// the key instead of setting it.
func Upsert(current Object, patch Object) Object {
	next := make(Object, len(current)+len(patch))
	for k, v := range current {
		next[k] = v
	}

	for k, v := range patch {
		if isAbsent(v) {
			delete(next, k)
		} else {
			next[k] = v
		}
	}

	return next
}

// Toggle removes value from the key's set when present, adds it otherwise.
// Toggling the same value twice restores the original state.
func Toggle(current Object, key string, value any) Object {
	raw, ok := current[key]

	var arr []any
	if ok {
		if s, isSlice := raw.([]any); isSlice {
			arr = append(arr, s...)
		} else {
			arr = append(arr, raw)
		}
	}

	want := tokenString(value)
	idx := -1
	for i, v := range arr {
		if tokenString(v) == want {
			idx = i
			break
		}
	}

	if idx >= 0 {
		arr = append(arr[:idx], arr[idx+1:]...)
	} else {
		arr = append(arr, value)
	}

	return Upsert(current, Object{key: arr})
}

// RemoveKeys drops the given keys.
func RemoveKeys(current Object, keys ...string) Object {
	next := make(Object, len(current))
	for k, v := range current {
		next[k] = v
	}
	for _, k := range keys {
		delete(next, k)
	}

	return next
}

func typeToken(tok string) any {
	switch tok {
	case "true":
		return true
	case "false":
		return false
	}

	if f, err := strconv.ParseFloat(tok, 64); err == nil {
		return f
	}

	return tok
}

func tokenString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	default:
		return ""
	}
}

func isAbsent(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case []any:
		return len(t) == 0
	case []string:
		return len(t) == 0
	default:
		return false
	}
}

func joinValue(v any) string {
	switch t := v.(type) {
	case []any:
		parts := make([]string, 0, len(t))
		for _, e := range t {
			parts = append(parts, tokenString(e))
		}
		return strings.Join(parts, ",")
	case []string:
		return strings.Join(t, ",")
	default:
		return tokenString(v)
	}
}
