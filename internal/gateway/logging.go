package gateway

import (
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
)

const maxLogSnippetRunes = 1024

// logExchange records a rejected backend response with a bounded body snippet.
func logExchange(operation string, status int, body string) {
	trimmed := strings.TrimSpace(body)
	event := log.Warn().Str("operation", operation).Int("status", status)
	if trimmed == "" {
		event.Msg("API Error: <empty>")
		return
	}

	runeCount := utf8.RuneCountInString(trimmed)
	snippet := trimmed
	if runeCount > maxLogSnippetRunes {
		snippet = string([]rune(trimmed)[:maxLogSnippetRunes]) + "…(truncated)"
	}
	event.Int("runes", runeCount).Str("body", snippet).Msg("API Error")
}
