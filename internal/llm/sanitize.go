package llm

import "strings"

// StripFences trims s and removes a leading ```lang fence and a trailing ``` fence.
// Only the given language tag (or a bare fence) is recognised at the start.
func StripFences(s, lang string) string {
	s = strings.TrimSpace(s)
	if lang != "" {
		s = strings.TrimPrefix(s, "```"+lang)
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// StripHTMLFences cleans a screen body returned by the model.
func StripHTMLFences(s string) string {
	return StripFences(s, "html")
}

// StripJSONFences cleans a configuration document returned by the model.
func StripJSONFences(s string) string {
	return StripFences(s, "json")
}

// CollapseLines trims every line and joins them with no separator.
// Used as a second attempt when a JSON document fails to parse.
func CollapseLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	return strings.Join(lines, "")
}
