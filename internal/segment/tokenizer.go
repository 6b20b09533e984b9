package segment

import (
	"strings"
	"unicode"
)

// Tokenize lowercases text, splits it on whitespace and strips punctuation from each
// field. Apostrophes and hyphens survive only between two letters or digits
// ("don't", "well-known"). Fields left empty are dropped.
func Tokenize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	if len(fields) == 0 {
		return nil
	}
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if tok := normalizeToken(f); tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

func normalizeToken(field string) string {
	rs := []rune(field)
	var b strings.Builder
	b.Grow(len(field))
	for i, r := range rs {
		switch {
		case isWordRune(r):
			b.WriteRune(r)
		case isJoiner(r):
			if i > 0 && i < len(rs)-1 && isWordRune(rs[i-1]) && isWordRune(rs[i+1]) {
				if r == '’' {
					r = '\''
				}
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}

func isJoiner(r rune) bool {
	return r == '\'' || r == '’' || r == '-'
}
