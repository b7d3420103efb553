package codemod

import (
	"fmt"
	"strconv"
	"strings"
)

// Params configures a codemod, typically decoded from a recipe or CLI flags.
type Params map[string]interface{}

// ParseParams decodes key=value pairs; comma separated values become lists.
func ParseParams(pairs []string) (Params, error) {
	params := Params{}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid param %q, expected key=value", pair)
		}
		if strings.Contains(value, ",") {
			params[key] = strings.Split(value, ",")
			continue
		}
		params[key] = value
	}
	return params, nil
}

// String returns a string param.
func (p Params) String(key, fallback string) string {
	value, ok := p[key]
	if !ok || value == nil {
		return fallback
	}
	return fmt.Sprint(value)
}

// Bool returns a boolean param.
func (p Params) Bool(key string, fallback bool) (bool, error) {
	value, ok := p[key]
	if !ok || value == nil {
		return fallback, nil
	}
	switch actual := value.(type) {
	case bool:
		return actual, nil
	case string:
		parsed, err := strconv.ParseBool(actual)
		if err != nil {
			return false, fmt.Errorf("invalid %s: %w", key, err)
		}
		return parsed, nil
	}
	return false, fmt.Errorf("invalid %s: %v", key, value)
}

// Strings returns a list param; a single string becomes a one element list.
func (p Params) Strings(key string, fallback []string) []string {
	value, ok := p[key]
	if !ok || value == nil {
		return fallback
	}
	switch actual := value.(type) {
	case []string:
		return actual
	case []interface{}:
		result := make([]string, 0, len(actual))
		for _, item := range actual {
			result = append(result, fmt.Sprint(item))
		}
		return result
	case string:
		return []string{actual}
	}
	return []string{fmt.Sprint(value)}
}
