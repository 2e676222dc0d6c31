package vault

import (
	"strings"
	"unicode"
)

// ParseFilterTokens splits a raw filter string into lower-cased tokens.
// Tokens are delimited by '+' or any whitespace character.
func ParseFilterTokens(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return unicode.IsSpace(r) || r == '+'
	})

	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		token := strings.TrimSpace(field)
		if token == "" {
			continue
		}
		tokens = append(tokens, strings.ToLower(token))
	}

	if len(tokens) == 0 {
		return nil
	}

	return tokens
}

// MatchesFilterTokens reports whether the entry satisfies all filter tokens.
// Each token must be contained in the site name or the username. Matching is
// case-insensitive and never looks at the secret.
func MatchesFilterTokens(entry Entry, tokens []string) bool {
	if len(tokens) == 0 {
		return true
	}

	site := strings.ToLower(entry.Site)
	username := strings.ToLower(entry.Username)

	for _, token := range tokens {
		token = strings.ToLower(token)
		if token == "" {
			continue
		}
		if strings.Contains(site, token) || strings.Contains(username, token) {
			continue
		}
		return false
	}

	return true
}
