package analysis

import (
	"encoding/json"
	"fmt"
	"strings"
)

// #region json-extraction

// ExtractJSON pulls a JSON object out of model text. Models wrap answers
// in prose or markdown fences more often than not, so this tries the raw
// text, then fenced blocks, then the outermost brace pair.
func ExtractJSON(text string) (map[string]any, error) {
	text = strings.TrimSpace(text)

	if m, err := tryUnmarshal(text); err == nil {
		return m, nil
	}

	if fenced := stripFence(text); fenced != "" {
		if m, err := tryUnmarshal(fenced); err == nil {
			return m, nil
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		if m, err := tryUnmarshal(text[start : end+1]); err == nil {
			return m, nil
		}
	}

	return nil, fmt.Errorf("no JSON object in response")
}

func tryUnmarshal(s string) (map[string]any, error) {
	var m map[string]any
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return nil, err
	}
	return m, nil
}

func stripFence(text string) string {
	start := strings.Index(text, "```")
	if start < 0 {
		return ""
	}
	rest := text[start+3:]
	if nl := strings.Index(rest, "\n"); nl >= 0 {
		rest = rest[nl+1:]
	}
	end := strings.Index(rest, "```")
	if end < 0 {
		return strings.TrimSpace(rest)
	}
	return strings.TrimSpace(rest[:end])
}

// #endregion json-extraction
