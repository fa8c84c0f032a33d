package testutil

import (
	"errors"
	"strings"

	"github.com/arthur-debert/jarreloc/pkg/types"
	"github.com/stretchr/testify/mock"
)

// MockSymbolRewriter is a testify mock of types.SymbolRewriter.
type MockSymbolRewriter struct {
	mock.Mock
}

// Rewrite records the call and returns the configured result.
func (m *MockSymbolRewriter) Rewrite(data []byte, remapper types.Remapper) ([]byte, error) {
	args := m.Called(data, remapper)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MalformedMarker makes LineRewriter reject content starting with it
const MalformedMarker = "MALFORMED"

// ErrMalformed is returned by LineRewriter for rejected content
var ErrMalformed = errors.New("malformed compiled code")

// LineRewriter is a fake symbol rewriter for text fixtures: every line of
// the content is treated as a symbolic reference and passed through the
// remapper.
var LineRewriter = types.SymbolRewriterFunc(func(data []byte, remapper types.Remapper) ([]byte, error) {
	content := string(data)
	if strings.HasPrefix(content, MalformedMarker) {
		return nil, ErrMalformed
	}
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = remapper.Map(line)
		}
	}
	return []byte(strings.Join(lines, "\n")), nil
})

// PrefixRemapper returns a remapper that swaps the from prefix for to on
// segment boundaries.
func PrefixRemapper(from, to string) types.Remapper {
	return types.RemapperFunc(func(name string) string {
		if name == from {
			return to
		}
		if strings.HasPrefix(name, from+"/") {
			return to + name[len(from):]
		}
		return name
	})
}
