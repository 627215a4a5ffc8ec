// Package format holds the small string helpers shared by the client and
// the entity decoders.
package format

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Number strips everything but ASCII digits from a phone number.
func Number(number string) string {
	var b strings.Builder
	b.Grow(len(number))
	for _, r := range number {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SnakeToCamel converts an underscore separated key to camel case. The first
// word is kept as is and every following word is lower cased with its first
// letter upper cased, so keys without underscores pass through unchanged.
func SnakeToCamel(name string) string {
	if !strings.Contains(name, "_") {
		return name
	}

	words := strings.Split(name, "_")

	var b strings.Builder
	b.Grow(len(name))
	b.WriteString(words[0])
	for _, word := range words[1:] {
		if word == "" {
			continue
		}
		word = strings.ToLower(word)
		r, size := utf8.DecodeRuneInString(word)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(word[size:])
	}
	return b.String()
}

// Contains reports whether substr is within s.
func Contains(s, substr string) bool {
	return strings.Contains(s, substr)
}
