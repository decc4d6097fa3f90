package autoescape

import "strings"

// tagSpan is one tag-like run of input, value[start:end].
type tagSpan struct {
	start, end int
	// name is the tag name as written, or empty for "<!...>".
	name    string
	closing bool
}

// Quote states of the attribute part of a tag.
const (
	outsideQuotes uint8 = 1 << iota
	inDoubleQuotes
	inSingleQuotes
)

// tagScanner finds the spans matched by the lexical tag grammar
//
//	<(!|/?[A-Za-z][A-Za-z0-9:-]*)([^>'"]|"[^"]*"|'[^']*')*>
//
// from left to right. It is not an HTML tokenizer: comments, CDATA and raw
// text elements get no special treatment.
//
// A "<" whose tag never ends is not a tag, and the scan resumes at the next
// "<". Such a failed attempt always runs to the end of the input, so the
// scanner remembers, per offset, the quote states from which the remainder
// is known to hold no tag end. Later attempts stop as soon as they reach
// one of those states, which keeps the whole scan linear.
type tagScanner struct {
	s   string
	pos int
	// doomed[i] holds quote states that cannot reach a closing ">" from
	// offset i. Allocated on the first failed attempt.
	doomed []uint8
}

func newTagScanner(s string) *tagScanner {
	return &tagScanner{s: s}
}

// next returns the next tag span at or after the scanner position.
func (sc *tagScanner) next() (tagSpan, bool) {
	for sc.pos < len(sc.s) {
		i := strings.IndexByte(sc.s[sc.pos:], '<')
		if i < 0 {
			break
		}
		start := sc.pos + i
		if span, ok := sc.scanAt(start); ok {
			sc.pos = span.end
			return span, true
		}
		sc.pos = start + 1
	}
	sc.pos = len(sc.s)
	return tagSpan{}, false
}

// scanAt tries to match a tag starting at the '<' at s[start].
func (sc *tagScanner) scanAt(start int) (tagSpan, bool) {
	s := sc.s
	span := tagSpan{start: start}
	i := start + 1
	switch {
	case i < len(s) && s[i] == '!':
		i++
	default:
		if i < len(s) && s[i] == '/' {
			span.closing = true
			i++
		}
		if i >= len(s) || !isASCIILetter(s[i]) {
			return tagSpan{}, false
		}
		j := i + 1
		for j < len(s) && isTagNameByte(s[j]) {
			j++
		}
		span.name = s[i:j]
		i = j
	}

	body := i
	state := outsideQuotes
	for ; i < len(s); i++ {
		if sc.doomed != nil && sc.doomed[i]&state != 0 {
			break
		}
		state = stepQuoteState(state, s[i])
		if state == 0 {
			span.end = i + 1
			return span, true
		}
	}
	sc.markDoomed(body, i)
	return tagSpan{}, false
}

// stepQuoteState advances the quote state over c. It returns 0 when c ends
// the tag.
func stepQuoteState(state uint8, c byte) uint8 {
	switch state {
	case inDoubleQuotes:
		if c == '"' {
			return outsideQuotes
		}
	case inSingleQuotes:
		if c == '\'' {
			return outsideQuotes
		}
	default:
		switch c {
		case '>':
			return 0
		case '"':
			return inDoubleQuotes
		case '\'':
			return inSingleQuotes
		}
	}
	return state
}

// markDoomed replays a failed attempt over s[from:to] and records the state
// it was in at every offset.
func (sc *tagScanner) markDoomed(from, to int) {
	if sc.doomed == nil {
		sc.doomed = make([]uint8, len(sc.s))
	}
	state := outsideQuotes
	for i := from; i < to; i++ {
		sc.doomed[i] |= state
		state = stepQuoteState(state, sc.s[i])
	}
}

func isASCIILetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isTagNameByte(c byte) bool {
	return isASCIILetter(c) || '0' <= c && c <= '9' || c == ':' || c == '-'
}

// isTagName reports whether s is a complete tag name under the scanner's
// grammar.
func isTagName(s string) bool {
	if s == "" || !isASCIILetter(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isTagNameByte(s[i]) {
			return false
		}
	}
	return true
}
