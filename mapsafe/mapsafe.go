// Package mapsafe reads typed values out of loosely typed argument maps, such as those decoded
// from YAML or supplied by callers as map[string]any.
package mapsafe

// Get retrieves a typed value from a map[string]any.
// If the key is missing or the value cannot be converted, it returns the default value.
func Get[T any](m map[string]any, key string, defaultValue T) T {
	val, ok := m[key]
	if !ok {
		return defaultValue
	}

	switch any(defaultValue).(type) {
	case int:
		if f, ok := Number(val); ok && f == float64(int(f)) {
			return any(int(f)).(T)
		}
	case float64:
		if f, ok := Number(val); ok {
			return any(f).(T)
		}
	case []string:
		if s, ok := toStrings(val); ok {
			return any(s).(T)
		}
	default:
		if v, ok := val.(T); ok {
			return v
		}
	}
	return defaultValue
}

// Float returns the value at key as a float64 when it holds any Go number.
func Float(m map[string]any, key string) (float64, bool) {
	val, ok := m[key]
	if !ok {
		return 0, false
	}
	return Number(val)
}

// Number converts any Go integer or floating point value to float64.
func Number(val any) (float64, bool) {
	switch x := val.(type) {
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	}
	return 0, false
}

// Strings returns the value at key as a string slice. It accepts []string and []any holding
// only strings; anything else yields nil.
func Strings(m map[string]any, key string) []string {
	s, _ := toStrings(m[key])
	return s
}

func toStrings(val any) ([]string, bool) {
	switch x := val.(type) {
	case []string:
		return x, true
	case []any:
		out := make([]string, 0, len(x))
		for _, item := range x {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}
