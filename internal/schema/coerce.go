package schema

import (
	"math"
	"strconv"
	"strings"
)

// TextKey holds the character data of an element that also has attributes or children.
const TextKey = "#text"

// asSequence upgrades a lone value to a one-element sequence. Nil stays nil.
func asSequence(v any) []any {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		return t
	default:
		return []any{t}
	}
}

// asObject accepts an element node. An empty element decodes to "" and is
// treated as an element with no fields.
func asObject(v any, path string) (map[string]any, error) {
	switch t := v.(type) {
	case map[string]any:
		return t, nil
	case string:
		if strings.TrimSpace(t) == "" {
			return map[string]any{}, nil
		}
		return nil, invalid(path, "expected element, got text %q", t)
	case []any:
		return nil, invalid(path, "expected a single element, got %d", len(t))
	default:
		return nil, invalid(path, "expected element, got %T", v)
	}
}

// scalarText extracts the text of a leaf value as written.
func scalarText(v any, path string) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(t), nil
	case bool:
		return strconv.FormatBool(t), nil
	case map[string]any:
		if text, ok := t[TextKey]; ok {
			return scalarText(text, path)
		}
		return "", invalid(path, "expected a value, got element")
	case []any:
		return "", invalid(path, "expected a single value, got %d", len(t))
	default:
		return "", invalid(path, "expected a value, got %T", v)
	}
}

// coerceNumber accepts numbers and numeric strings. Missing or empty input
// yields def.
func coerceNumber(v any, def float64, path string) (float64, error) {
	switch t := v.(type) {
	case nil:
		return def, nil
	case float64:
		return t, nil
	case int:
		return float64(t), nil
	}

	text, err := scalarText(v, path)
	if err != nil {
		return 0, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return def, nil
	}

	n, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, invalid(path, "expected number, got %q", text)
	}
	return n, nil
}

// coerceBool accepts the usual textual and numeric spellings of a boolean.
// Missing input yields def; an empty element is false.
func coerceBool(v any, def bool, path string) (bool, error) {
	switch t := v.(type) {
	case nil:
		return def, nil
	case bool:
		return t, nil
	}

	text, err := scalarText(v, path)
	if err != nil {
		return false, err
	}
	text = strings.TrimSpace(text)

	switch strings.ToLower(text) {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off", "":
		return false, nil
	}

	if n, err := strconv.ParseFloat(text, 64); err == nil && !math.IsNaN(n) {
		return n != 0, nil
	}
	return false, invalid(path, "expected boolean, got %q", text)
}

// requireString fails when key is absent. Present but empty is fine, and the
// text is returned untrimmed.
func requireString(obj map[string]any, key, path string) (string, error) {
	v, ok := obj[key]
	if !ok || v == nil {
		return "", invalid(path, "required field is missing")
	}
	return scalarText(v, path)
}

// enumText returns the trimmed text of an optional enum field; "" when absent.
func enumText(obj map[string]any, key, path string) (string, error) {
	s, _, err := optionalString(obj, key, path)
	return strings.TrimSpace(s), err
}

func optionalString(obj map[string]any, key, path string) (string, bool, error) {
	v, ok := obj[key]
	if !ok || v == nil {
		return "", false, nil
	}
	s, err := scalarText(v, path)
	return s, true, err
}
