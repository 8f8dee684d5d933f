package session

import "strconv"

// #region coercion

// Extractions arrive from decoded JSON, so numbers are float64, lists are
// []any, and models occasionally return numbers as strings. These helpers
// absorb that looseness at the session boundary so the rest of the code
// works with firm types.

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0, false
		}
		return i, true
	}
	return 0, false
}

func asStrings(v any) ([]string, bool) {
	switch list := v.(type) {
	case []string:
		return append([]string(nil), list...), true
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
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

func asRoster(v any) ([5]string, bool) {
	list, ok := asStrings(v)
	if !ok || len(list) == 0 {
		return [5]string{}, false
	}
	var roster [5]string
	for i := 0; i < len(roster) && i < len(list); i++ {
		roster[i] = list[i]
	}
	return roster, true
}

// asKDA accepts [k, d, a] arrays or "k/d/a" strings.
func asKDA(v any) ([3]int, bool) {
	switch kda := v.(type) {
	case []any:
		if len(kda) != 3 {
			return [3]int{}, false
		}
		var out [3]int
		for i, item := range kda {
			n, ok := asInt(item)
			if !ok {
				return [3]int{}, false
			}
			out[i] = n
		}
		return out, true
	case string:
		return parseKDAString(kda)
	}
	return [3]int{}, false
}

func parseKDAString(s string) ([3]int, bool) {
	var out [3]int
	idx := 0
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == '/' {
			if idx >= 3 {
				return [3]int{}, false
			}
			n, err := strconv.Atoi(s[start:i])
			if err != nil {
				return [3]int{}, false
			}
			out[idx] = n
			idx++
			start = i + 1
		}
	}
	return out, idx == 3
}

func asItemMap(v any) (map[string][]string, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	out := make(map[string][]string, len(m))
	for champ, raw := range m {
		items, ok := asStrings(raw)
		if !ok {
			continue
		}
		out[champ] = items
	}
	return out, true
}

func asIntMap(v any) (map[string]int, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	out := make(map[string]int, len(m))
	for champ, raw := range m {
		n, ok := asInt(raw)
		if !ok {
			continue
		}
		out[champ] = n
	}
	return out, true
}

func sameStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// #endregion coercion
