package models

import (
	"encoding/json"
	"errors"
	"reflect"
	"sort"
	"strconv"

	"github.com/mbenaiss/whatsapp-client/format"
)

// decode hydrates out from a loosely typed map. Keys are converted to camel
// case first, then aliases rename intercepted keys (e.g. timestamp -> date).
// Unknown keys are ignored and missing keys keep their zero value. When the
// camel and snake spelling of a key are both present, the camel one wins.
//
// A value whose type does not fit its field never fails the decode: numbers
// are written into string fields as text, anything else leaves the field at
// its zero value.
func decode(raw map[string]any, out any, aliases map[string]string) error {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	normalized := make(map[string]any, len(raw))
	for _, k := range keys {
		camel := format.SnakeToCamel(k)
		if _, seen := normalized[camel]; seen && camel != k {
			continue
		}
		normalized[camel] = raw[k]
	}

	for from, to := range aliases {
		if v, ok := normalized[from]; ok {
			delete(normalized, from)
			normalized[to] = v
		}
	}

	data, err := json.Marshal(normalized)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err == nil {
		return nil
	}

	// Some field did not fit; assign the keys one at a time.
	fields := make([]string, 0, len(normalized))
	for k := range normalized {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	for _, k := range fields {
		decodeField(k, normalized[k], out)
	}
	return nil
}

// decodeField assigns a single key of out. Mismatched values are dropped,
// except numbers bound for string fields.
func decodeField(key string, value any, out any) {
	err := unmarshalField(key, value, out)

	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) || typeErr.Type == nil || typeErr.Type.Kind() != reflect.String {
		return
	}
	if text, ok := numberText(value); ok {
		_ = unmarshalField(key, text, out)
	}
}

func unmarshalField(key string, value any, out any) error {
	data, err := json.Marshal(map[string]any{key: value})
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

// numberText renders a JSON number without exponent or trailing zeros, so a
// phone-shaped id such as 5511999998888 keeps its digits.
func numberText(v any) (string, bool) {
	switch n := v.(type) {
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(n), 'f', -1, 32), true
	case int:
		return strconv.Itoa(n), true
	case int64:
		return strconv.FormatInt(n, 10), true
	case json.Number:
		return n.String(), true
	}
	return "", false
}

// dropNulls returns a copy of raw without nil values.
func dropNulls(raw map[string]any) map[string]any {
	out := make(map[string]any, len(raw))
	for k, v := range raw {
		if v != nil {
			out[k] = v
		}
	}
	return out
}

// decodeList hydrates every map element of items with fn. Elements that are
// not objects, or that fn cannot decode, are skipped.
func decodeList[T any](items []any, fn func(map[string]any) (T, error)) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		raw, ok := item.(map[string]any)
		if !ok {
			continue
		}
		v, err := fn(raw)
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}
