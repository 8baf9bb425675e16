package utils

import "strconv"

// Lenient query-parameter parsing: invalid values fall back to the default
// instead of failing the request.

func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	val, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return val
}

func ParseBoolDefault(s string, def bool) bool {
	if s == "" {
		return def
	}
	val, err := strconv.ParseBool(s)
	if err != nil {
		return def
	}
	return val
}
