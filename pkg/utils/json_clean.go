package utils

import "strings"

// CleanJSONResponse strips markdown code fences and any surrounding prose from a model
// response, returning the first balanced JSON object or array it contains. Models
// sometimes wrap output in ```json fences or prepend a sentence even when asked not to.
func CleanJSONResponse(response string) string {
	response = strings.ReplaceAll(response, "```json", "")
	response = strings.ReplaceAll(response, "```JSON", "")
	response = strings.ReplaceAll(response, "```", "")
	response = strings.TrimSpace(response)

	objStart := strings.Index(response, "{")
	arrStart := strings.Index(response, "[")

	if objStart != -1 && (arrStart == -1 || objStart < arrStart) {
		if end := findMatchingBrace(response, objStart); end != -1 {
			response = response[objStart : end+1]
		}
	} else if arrStart != -1 {
		if end := findMatchingBracket(response, arrStart); end != -1 {
			response = response[arrStart : end+1]
		}
	}

	return strings.TrimSpace(response)
}

func findMatchingBrace(s string, start int) int {
	return findMatchingDelim(s, start, '{', '}')
}

func findMatchingBracket(s string, start int) int {
	return findMatchingDelim(s, start, '[', ']')
}

func findMatchingDelim(s string, start int, open, close byte) int {
	if start >= len(s) || s[start] != open {
		return -1
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		char := s[i]

		if escaped {
			escaped = false
			continue
		}
		if char == '\\' && inString {
			escaped = true
			continue
		}
		if char == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch char {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}
