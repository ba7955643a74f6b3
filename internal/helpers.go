package internal

import "strconv"

// ContextValue returns the value stored under key if it has type T.
func ContextValue[T any](c Context, key any) T {
	if v, ok := c.Get(key).(T); ok {
		return v
	}
	var zero T
	return zero
}

// Query returns a typed query parameter, or the zero value if absent or unparsable.
func Query[T ~string | ~int | ~int64 | ~bool](c Context, name string) T {
	v, _ := convert[T](c.Query(name))
	return v
}

// QueryDefault is Query with a fallback.
func QueryDefault[T ~string | ~int | ~int64 | ~bool](c Context, name string, def T) T {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	if v, ok := convert[T](raw); ok {
		return v
	}
	return def
}

func convert[T ~string | ~int | ~int64 | ~bool](raw string) (T, bool) {
	var zero T
	switch any(zero).(type) {
	case string:
		return any(raw).(T), true
	case int:
		v, err := strconv.Atoi(raw)
		if err != nil {
			return zero, false
		}
		return any(v).(T), true
	case int64:
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return zero, false
		}
		return any(v).(T), true
	case bool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return zero, false
		}
		return any(v).(T), true
	}
	return zero, false
}
