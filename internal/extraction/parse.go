package extraction

import (
	"fmt"
	"strings"
)

// extractJSON pulls the JSON object out of a raw model answer. Models
// sometimes wrap their output in markdown code fences or surround it with
// prose despite the instruction, so look for the outermost braces.
func extractJSON(text string) ([]byte, error) {
	text = strings.TrimSpace(text)

	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	startIdx := strings.Index(text, "{")
	if startIdx == -1 {
		return nil, fmt.Errorf("no JSON object found in response")
	}

	endIdx := strings.LastIndex(text, "}")
	if endIdx == -1 || endIdx < startIdx {
		return nil, fmt.Errorf("invalid JSON object in response")
	}

	return []byte(text[startIdx : endIdx+1]), nil
}
