package manifest

import (
	"bytes"
	"unicode/utf8"
)

const (
	lineEnd = "\r\n"

	// maxLineBytes is the longest line written, newline excluded
	maxLineBytes = 72
)

// writeHeader writes "name: value" folded so no line exceeds maxLineBytes.
// Folds fall on rune boundaries; continuation lines start with a space.
func writeHeader(buf *bytes.Buffer, name, value string) {
	line := name + ": " + value
	limit := maxLineBytes
	for len(line) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(line[cut]) {
			cut--
		}
		if cut == 0 {
			cut = limit
		}
		buf.WriteString(line[:cut])
		buf.WriteString(lineEnd)
		buf.WriteByte(' ')
		line = line[cut:]
		limit = maxLineBytes - 1
	}
	buf.WriteString(line)
	buf.WriteString(lineEnd)
}
