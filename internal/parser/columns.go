package parser

import "strings"

// FindColumn resolves a wanted column against human-entered headers:
// exact match first, then trimmed, then normalized (case/whitespace/accent
// insensitive), then partial match as the last fallback. Returns the header
// actually present, or "".
func FindColumn(fields map[string]string, wanted string) (string, bool) {
	if _, ok := fields[wanted]; ok {
		return wanted, true
	}

	trimmed := strings.TrimSpace(wanted)
	for header := range fields {
		if strings.TrimSpace(header) == trimmed {
			return header, true
		}
	}

	normalized := NormalizeColumnName(wanted)
	if normalized == "" {
		return "", false
	}
	for header := range fields {
		if NormalizeColumnName(header) == normalized {
			return header, true
		}
	}

	for header := range fields {
		h := NormalizeColumnName(header)
		if h != "" && (strings.Contains(h, normalized) || strings.Contains(normalized, h)) {
			return header, true
		}
	}

	return "", false
}

// Field returns the raw value of a column through tolerant header matching,
// trying each candidate name in order.
func Field(fields map[string]string, candidates ...string) string {
	for _, name := range candidates {
		if header, ok := FindColumn(fields, name); ok {
			if v := CleanString(fields[header]); v != "" {
				return v
			}
		}
	}
	return ""
}
