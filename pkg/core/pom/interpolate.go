package pom

import "strings"

// Interpolate replaces each ${key} in text with props[key].
//
// The scan runs once, left to right. Substituted values are copied verbatim
// and never re-scanned, and a placeholder whose key is missing (or that is
// not closed) is left exactly as written.
func Interpolate(text string, props map[string]string) string {
	if !strings.Contains(text, "${") {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	for {
		start := strings.Index(text, "${")
		if start < 0 {
			b.WriteString(text)
			return b.String()
		}
		end := strings.IndexByte(text[start+2:], '}')
		if end < 0 {
			b.WriteString(text)
			return b.String()
		}
		end += start + 2

		b.WriteString(text[:start])
		if v, ok := props[text[start+2:end]]; ok {
			b.WriteString(v)
		} else {
			b.WriteString(text[start : end+1])
		}
		text = text[end+1:]
	}
}
