// Package recovery extracts a structured object from a model reply that is
// expected to be JSON but may arrive wrapped in prose or code fences.
package recovery

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/oleynichenko/ai-tools-api/internal/domain"
)

// Recover attempts a direct JSON parse of text; on failure it retries on the
// substring between the first '{' and the last '}' inclusive, which handles
// replies like "Here you go:\n```json\n{...}\n```". It never guesses or
// fabricates fields: if both attempts fail the caller gets
// domain.ErrUnparsableResponse.
func Recover(text string) (map[string]interface{}, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: empty response content", domain.ErrUnparsableResponse)
	}

	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(text), &obj); err == nil {
		return obj, nil
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("%w: no JSON object found in response", domain.ErrUnparsableResponse)
	}

	if err := json.Unmarshal([]byte(text[start:end+1]), &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnparsableResponse, err)
	}
	return obj, nil
}
