package lintconfig

// Params is the free-form parameter table of one rule's configuration entry.
// Values come straight from the manifest decoder: strings, numbers, booleans,
// lists and nested tables.
type Params map[string]any

// GetString returns the string value under key, if present.
func (p Params) GetString(key string) (string, bool) {
	v, ok := p[key].(string)
	return v, ok
}

// GetBool returns the boolean value under key, if present.
func (p Params) GetBool(key string) (bool, bool) {
	v, ok := p[key].(bool)
	return v, ok
}

// GetInt returns the integer value under key, if present.
func (p Params) GetInt(key string) (int64, bool) {
	switch v := p[key].(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	default:
		return 0, false
	}
}

// GetStringList returns the list of strings under key. Entries of other
// types inside the list are skipped.
func (p Params) GetStringList(key string) ([]string, bool) {
	raw, ok := p[key].([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out, true
}
