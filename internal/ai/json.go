package ai

import "strings"

// cleanJSONString strips markdown code fences some models wrap JSON in.
func cleanJSONString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}

// extractJSONObject returns the outermost {...} block, or input unchanged when there is none.
func extractJSONObject(input string) string {
	start := strings.Index(input, "{")
	end := strings.LastIndex(input, "}")
	if start < 0 || end <= start {
		return input
	}
	return input[start : end+1]
}
