package iter

import (
	"github.com/dshills/texteng/internal/engine/pool"
	"github.com/dshills/texteng/internal/engine/tree"
)

// Terminator classifies which line-ending sequence was found at a given
// byte position.
type Terminator int

// Recognized line terminators, per SPEC_FULL.md 4.4.5.
const (
	TermNone Terminator = iota
	TermLF              // U+000A
	TermVT              // U+000B
	TermFF              // U+000C
	TermCR              // U+000D, not followed by U+000A
	TermCRLF            // U+000D U+000A, counted as one break
	TermNEL             // U+0085
	TermLS              // U+2028
	TermPS              // U+2029
)

// Len returns the byte length of the terminator sequence itself.
func (t Terminator) Len() int {
	switch t {
	case TermLF, TermVT, TermFF, TermCR:
		return 1
	case TermCRLF:
		return 2
	case TermNEL:
		return 2
	case TermLS, TermPS:
		return 3
	default:
		return 0
	}
}

// matchTerminator reports the terminator (if any) starting at buf[0].
func matchTerminator(buf []byte) Terminator {
	if len(buf) == 0 {
		return TermNone
	}
	switch buf[0] {
	case '\n':
		return TermLF
	case '\v':
		return TermVT
	case '\f':
		return TermFF
	case '\r':
		if len(buf) > 1 && buf[1] == '\n' {
			return TermCRLF
		}
		return TermCR
	case 0xC2:
		if len(buf) > 1 && buf[1] == 0x85 {
			return TermNEL
		}
	case 0xE2:
		if len(buf) > 2 && buf[1] == 0x80 {
			if buf[2] == 0xA8 {
				return TermLS
			}
			if buf[2] == 0xA9 {
				return TermPS
			}
		}
	}
	return TermNone
}

// LineCursor walks a view line by line, recognizing LF, VT, FF, CR, CRLF
// (as a single break), NEL, LS, and PS terminators.
type LineCursor struct {
	bytes     *ByteCursor
	lineStart uint64
	lineEnd   uint64
	term      Terminator
	total     uint64
	exhausted bool
}

// Lines creates a LineCursor over view, positioned at the first line.
func Lines(view tree.View, pools pool.Pools) *LineCursor {
	l := &LineCursor{bytes: Bytes(view, pools), total: view.Len()}
	l.scan()
	return l
}

// scan finds the end of the line starting at the cursor's current
// position and the terminator that ends it (TermNone at end of buffer).
func (l *LineCursor) scan() {
	start := l.bytes.Position()
	cur := l.bytes.Clone()
	for {
		if cur.AtEnd() {
			l.lineStart = start
			l.lineEnd = cur.Position()
			l.term = TermNone
			return
		}
		buf := cur.PeekN(3)
		if t := matchTerminator(buf); t != TermNone {
			l.lineStart = start
			l.lineEnd = cur.Position()
			l.term = t
			return
		}
		cur.Next()
	}
}

// Position returns the byte offset of the start of the current line.
func (l *LineCursor) Position() uint64 {
	return l.lineStart
}

// Current returns the [start, end) byte range of the current line's
// content, excluding its terminator, and which terminator ends it
// (TermNone for the final line if the buffer doesn't end in one).
func (l *LineCursor) Current() (start, end uint64, term Terminator) {
	return l.lineStart, l.lineEnd, l.term
}

// Next advances to the following line, reporting whether one exists.
func (l *LineCursor) Next() bool {
	if l.exhausted {
		return false
	}
	nextPos := l.lineEnd + uint64(l.term.Len())
	if l.term == TermNone {
		l.exhausted = true
		return false
	}
	l.bytes.Seek(nextPos)
	l.scan()
	if l.lineStart >= l.total && l.term == TermNone {
		l.exhausted = true
		return false
	}
	return true
}
