package agent

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyResponse is returned by backends that answered with no text.
	ErrEmptyResponse = errors.New("agent returned an empty response")
	// ErrNoJSONArray means the text held no bracketed array to extract.
	ErrNoJSONArray = errors.New("no JSON array found in agent response")
)

func cleanMarkdownOutput(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// drop an info string such as json or markdown
		if nl := strings.IndexByte(text, '\n'); nl >= 0 && !strings.ContainsAny(text[:nl], "[{") {
			text = text[nl+1:]
		}
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	}
	return strings.TrimSpace(text)
}

// ExtractJSONArray pulls the first-[ to last-] slice out of free-form model
// output and decodes it into a generic value suitable for schema validation.
func ExtractJSONArray(text string) (any, error) {
	text = cleanMarkdownOutput(text)
	start := strings.IndexByte(text, '[')
	end := strings.LastIndexByte(text, ']')
	if start < 0 || end < start {
		return nil, ErrNoJSONArray
	}

	var v any
	if err := json.Unmarshal([]byte(text[start:end+1]), &v); err != nil {
		return nil, fmt.Errorf("decode agent JSON array: %w", err)
	}
	return v, nil
}
