package fixture

import (
	"bytes"
	"fmt"

	"fortio.org/safecast"

	"datacheck/internal/source"
)

// spanner recovers source spans for fixture tokens. TOML decoding drops
// positions, so spans are reconstructed by scanning the raw content forward
// for each token in document order. A token that cannot be found gets a
// zero-width span at the current cursor, which still sorts sensibly.
type spanner struct {
	file    source.FileID
	content []byte
	cursor  int
}

func newSpanner(file source.FileID, content []byte) *spanner {
	return &spanner{file: file, content: content}
}

func (s *spanner) locate(token string) source.Span {
	at := func(off, length int) source.Span {
		start, err := safecast.Conv[uint32](off)
		if err != nil {
			panic(fmt.Errorf("span offset overflow: %w", err))
		}
		end, err := safecast.Conv[uint32](off + length)
		if err != nil {
			panic(fmt.Errorf("span end overflow: %w", err))
		}
		return source.Span{File: s.file, Start: start, End: end}
	}

	if token == "" || s.cursor >= len(s.content) {
		return at(s.cursor, 0)
	}
	idx := bytes.Index(s.content[s.cursor:], []byte(token))
	if idx < 0 {
		// Token appeared before the cursor (e.g. a repeated literal):
		// fall back to the first occurrence anywhere.
		if first := bytes.Index(s.content, []byte(token)); first >= 0 {
			return at(first, len(token))
		}
		return at(s.cursor, 0)
	}
	off := s.cursor + idx
	s.cursor = off + len(token)
	return at(off, len(token))
}
