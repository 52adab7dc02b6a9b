// Package message prepares raw inbound chat lines for relaying.
package message

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Sanitize - builds a relayable message body from one raw inbound line.
// Invalid unicode sequences and control runes are dropped, any run of
// whitespace is replaced with a single space, edges are trimmed.
// Returns an empty string when nothing relayable remains.
func Sanitize(line string) string {
	b := strings.Builder{}
	b.Grow(len(line))
	space := false
	for _, r := range line {
		switch {
		case r == utf8.RuneError || unicode.IsControl(r):
			// drop
		case unicode.IsSpace(r):
			if !space {
				b.WriteByte(' ')
			}
			space = true
		default:
			b.WriteRune(r)
			space = false
		}
	}
	return strings.TrimSpace(b.String())
}
