package iter

import (
	"strings"
	"testing"
	"testing/quick"
	"unicode/utf8"
)

// TestQuickGraphemeConcatenationLaw checks the grapheme-concatenation law:
// walking a string's clusters and concatenating them back together always
// reproduces the original string exactly, for arbitrary valid UTF-8 input
// (quick.Check's default string generator only emits valid runes).
func TestQuickGraphemeConcatenationLaw(t *testing.T) {
	f := func(s string) bool {
		v, pools := viewOf(s)
		g := Graphemes(v, pools)

		var b strings.Builder
		for {
			cluster, ok := g.Current()
			if !ok {
				break
			}
			b.Write(cluster)
			if !g.Next() {
				break
			}
		}
		return b.String() == s
	}
	if err := quick.Check(f, &quick.Config{MaxCount: 500}); err != nil {
		t.Error(err)
	}
}

// TestQuickCharConcatenationLaw is the rune-granularity analogue: decoding
// rune by rune and re-encoding always reproduces the original string.
func TestQuickCharConcatenationLaw(t *testing.T) {
	f := func(s string) bool {
		v, pools := viewOf(s)
		c := Chars(v, pools)

		var b strings.Builder
		for {
			r, size, ok := c.Current()
			if !ok {
				break
			}
			if size == 0 {
				b.WriteRune(utf8.RuneError)
			} else {
				b.WriteRune(r)
			}
			if !c.Next() {
				break
			}
		}
		return b.String() == s
	}
	if err := quick.Check(f, &quick.Config{MaxCount: 500}); err != nil {
		t.Error(err)
	}
}

// TestQuickLineConcatenationLaw checks the line-concatenation law: walking
// a buffer line by line and rejoining each line with the terminator the
// cursor reported for it always reproduces the original content exactly.
func TestQuickLineConcatenationLaw(t *testing.T) {
	f := func(s string) bool {
		v, pools := viewOf(s)
		l := Lines(v, pools)

		var b strings.Builder
		for {
			start, end, term := l.Current()
			b.Write([]byte(s)[start:end])
			switch term {
			case TermLF:
				b.WriteByte('\n')
			case TermVT:
				b.WriteByte('\v')
			case TermFF:
				b.WriteByte('\f')
			case TermCR:
				b.WriteByte('\r')
			case TermCRLF:
				b.WriteString("\r\n")
			case TermNEL:
				b.Write([]byte{0xC2, 0x85})
			case TermLS:
				b.Write([]byte{0xE2, 0x80, 0xA8})
			case TermPS:
				b.Write([]byte{0xE2, 0x80, 0xA9})
			}
			if !l.Next() {
				break
			}
		}
		return b.String() == s
	}
	if err := quick.Check(f, &quick.Config{MaxCount: 500}); err != nil {
		t.Error(err)
	}
}

// TestQuickByteCursorConcatenationLaw is the byte-granularity analogue of
// the above, the simplest possible round-trip check through ByteCursor.
func TestQuickByteCursorConcatenationLaw(t *testing.T) {
	f := func(data []byte) bool {
		view, pools := viewOf(string(data))
		b := Bytes(view, pools)

		var got []byte
		for {
			cur, ok := b.Current()
			if !ok {
				break
			}
			got = append(got, cur)
			if !b.Next() {
				break
			}
		}
		return string(got) == string(data)
	}
	if err := quick.Check(f, &quick.Config{MaxCount: 500}); err != nil {
		t.Error(err)
	}
}
