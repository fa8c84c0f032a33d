package manifest

import (
	"bytes"
	"strings"

	"github.com/arthur-debert/jarreloc/pkg/errors"
)

const (
	// maxInputLine bounds a physical input line including its terminator,
	// so the longest accepted line holds 511 bytes
	maxInputLine = 512

	// maxNameLength bounds a header name
	maxNameLength = 70
)

type header struct {
	name  string
	value string
	line  int
}

// ParseBytes parses a manifest held in memory. The last line need not end
// with a newline.
func ParseBytes(data []byte) (*Manifest, error) {
	blocks, err := splitSections(data)
	if err != nil {
		return nil, err
	}

	m := New()
	for _, h := range blocks[0] {
		m.Main.Set(h.name, h.value)
	}

	for _, block := range blocks[1:] {
		first := block[0]
		if !strings.EqualFold(first.name, SectionName) {
			return nil, errors.Newf(errors.ErrManifestParse,
				"invalid manifest format: section at line %d does not start with %s", first.line, SectionName).
				WithDetail("line", first.line)
		}
		section := m.AddSection(first.value)
		for _, h := range block[1:] {
			section.Attributes.Set(h.name, h.value)
		}
	}
	return m, nil
}

// splitSections folds continuation lines and groups headers into blocks.
// The first block is always the main section, possibly empty; later blocks
// are never empty.
func splitSections(data []byte) ([][]header, error) {
	blocks := [][]header{nil}
	var current []header
	inMain := true

	for i, line := range physicalLines(data) {
		lineNo := i + 1
		if len(line) >= maxInputLine {
			return nil, errors.Newf(errors.ErrManifestParse, "manifest line %d too long", lineNo).
				WithDetail("line", lineNo)
		}

		switch {
		case len(line) == 0:
			if inMain {
				blocks[0] = current
				inMain = false
			} else if len(current) > 0 {
				blocks = append(blocks, current)
			}
			current = nil

		case line[0] == ' ':
			if len(current) == 0 {
				return nil, errors.Newf(errors.ErrManifestParse, "misplaced continuation line %d", lineNo).
					WithDetail("line", lineNo)
			}
			current[len(current)-1].value += string(line[1:])

		default:
			h, err := parseHeader(line, lineNo)
			if err != nil {
				return nil, err
			}
			current = append(current, h)
		}
	}

	if inMain {
		blocks[0] = current
	} else if len(current) > 0 {
		blocks = append(blocks, current)
	}
	return blocks, nil
}

func parseHeader(line []byte, lineNo int) (header, error) {
	colon := bytes.IndexByte(line, ':')
	if colon < 0 || colon+1 >= len(line) || line[colon+1] != ' ' {
		return header{}, errors.Newf(errors.ErrManifestParse, "invalid header field at line %d", lineNo).
			WithDetail("line", lineNo)
	}
	name := string(line[:colon])
	if !validName(name) {
		return header{}, errors.Newf(errors.ErrManifestParse, "invalid header field name %q at line %d", name, lineNo).
			WithDetail("line", lineNo)
	}
	return header{name: name, value: string(line[colon+2:]), line: lineNo}, nil
}

func validName(name string) bool {
	if len(name) == 0 || len(name) > maxNameLength {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_', c == '-':
		default:
			return false
		}
	}
	return true
}

// physicalLines splits on CRLF, LF or CR. A trailing terminator does not
// produce an extra empty line.
func physicalLines(data []byte) [][]byte {
	var lines [][]byte
	start := 0
	for i := 0; i < len(data); i++ {
		switch data[i] {
		case '\n':
			lines = append(lines, data[start:i])
			start = i + 1
		case '\r':
			lines = append(lines, data[start:i])
			if i+1 < len(data) && data[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	if start < len(data) {
		lines = append(lines, data[start:])
	}
	return lines
}
