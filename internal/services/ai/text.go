// File: internal/services/ai/text.go
package ai

import "strings"

// ExtractText returns the response's primary text when it is non-blank,
// otherwise the concatenated parts of the first candidate, otherwise
// fallback. The result is trimmed.
func ExtractText(resp *Response, fallback string) string {
	if resp == nil {
		return fallback
	}
	if text := strings.TrimSpace(resp.Text); text != "" {
		return text
	}
	if len(resp.Candidates) > 0 {
		var b strings.Builder
		for _, part := range resp.Candidates[0].Parts {
			b.WriteString(part.Text)
		}
		if joined := strings.TrimSpace(b.String()); joined != "" {
			return joined
		}
	}
	return fallback
}
