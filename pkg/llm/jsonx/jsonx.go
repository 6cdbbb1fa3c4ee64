// Package jsonx extracts JSON payloads from LLM responses that may wrap
// them in prose or markdown fences.
package jsonx

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Extract returns the first balanced JSON object found in the response,
// or "" when there is none. Braces inside string literals are ignored.
func Extract(response string) string {
	s := stripFences(response)

	start := strings.Index(s, "{")
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return s[start : i+1]
				}
			}
		}
	}
	return ""
}

// Unmarshal extracts the JSON object from the response and decodes it into v.
func Unmarshal(response string, v any) error {
	content := Extract(response)
	if content == "" {
		return fmt.Errorf("no JSON found in response")
	}
	if err := json.Unmarshal([]byte(content), v); err != nil {
		return fmt.Errorf("JSON unmarshal failed: %w", err)
	}
	return nil
}

func stripFences(s string) string {
	if idx := strings.Index(s, "```json"); idx != -1 {
		s = s[idx+len("```json"):]
		if end := strings.Index(s, "```"); end != -1 {
			s = s[:end]
		}
	} else if idx := strings.Index(s, "```"); idx != -1 {
		rest := s[idx+3:]
		if end := strings.Index(rest, "```"); end != -1 {
			s = rest[:end]
		}
	}
	return s
}
