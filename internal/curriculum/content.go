package curriculum

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FallbackContent is shown when a successful response carries no text.
const FallbackContent = "No curriculum returned. Try again."

// ExtractContent returns choices[0].message.content from a chat completion
// body. A missing or empty field yields FallbackContent; only a body that is
// not JSON is an error.
func ExtractContent(body []byte) (string, error) {
	var resp struct {
		Choices []struct {
			Message struct {
				Content any `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		var probe any
		if json.Unmarshal(body, &probe) == nil {
			// valid JSON with an unexpected shape, e.g. "choices" as an object
			return FallbackContent, nil
		}
		return "", fmt.Errorf("decode chat completion response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return FallbackContent, nil
	}
	if content := anyToText(resp.Choices[0].Message.Content); content != "" {
		return content, nil
	}
	return FallbackContent, nil
}

func anyToText(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			if m, ok := item.(map[string]any); ok {
				if txt, ok := m["text"].(string); ok {
					parts = append(parts, txt)
				}
			}
		}
		return strings.Join(parts, "\n")
	default:
		return ""
	}
}
