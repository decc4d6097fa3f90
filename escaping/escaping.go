// Package escaping holds the per-context escaping conventions used by the
// autoescape sanitizers.
//
// A [Convention] transduces a raw string into a form that is safe inside one
// output context (HTML text, a JS string literal, a URI piece, ...). Some
// conventions also carry a validity filter and an innocuous output that is
// substituted when the filter rejects a value.
//
// Conventions are process-wide values created at init time and never
// mutated, so they are safe for concurrent use.
package escaping

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
)

// InnocuousOutput is emitted in place of values rejected by a filter. It is
// not a keyword in any language, contains no special characters and is easy
// to search for when it shows up in a rendered page.
const InnocuousOutput = "zSoyz"

// filterTimeout bounds a single filter evaluation. A filter that times out
// rejects its input.
const filterTimeout = 50 * time.Millisecond

// An escapeFunc returns the replacement for the rune r, whose UTF-8 encoding
// in the input is raw, and reports whether r must be replaced at all.
type escapeFunc func(r rune, raw string) (string, bool)

// Convention is an escaping convention for one output context.
type Convention struct {
	name      string
	escape    escapeFunc
	filter    *regexp2.Regexp
	innocuous string
}

// Name returns the directive name of the convention, e.g. "escapeHtml".
func (c *Convention) Name() string { return c.name }

// Escape returns s with every character that is unsafe for the convention's
// context replaced. s is returned as is when nothing needs escaping.
func (c *Convention) Escape(s string) string {
	var b strings.Builder
	last := 0
	for i := 0; i < len(s); {
		r, n := utf8.DecodeRuneInString(s[i:])
		if rep, ok := c.escape(r, s[i:i+n]); ok {
			if last == 0 {
				b.Grow(len(s) + len(s)/4 + len(rep))
			}
			b.WriteString(s[last:i])
			b.WriteString(rep)
			last = i + n
		}
		i += n
	}
	if last == 0 {
		return s
	}
	b.WriteString(s[last:])
	return b.String()
}

// HasFilter reports whether the convention validates its input.
func (c *Convention) HasFilter() bool { return c.filter != nil }

// Accepts reports whether s passes the convention's validity filter.
// Conventions without a filter accept everything.
func (c *Convention) Accepts(s string) bool {
	if c.filter == nil {
		return true
	}
	ok, err := c.filter.MatchString(s)
	return err == nil && ok
}

// Innocuous returns the fixed output substituted for rejected values.
func (c *Convention) Innocuous() string { return c.innocuous }

func newConvention(name string, escape escapeFunc) *Convention {
	if escape == nil {
		escape = noEscape
	}
	return &Convention{name: name, escape: escape, innocuous: InnocuousOutput}
}

func newFilter(name string, escape escapeFunc, pattern, innocuous string) *Convention {
	c := newConvention(name, escape)
	c.filter = regexp2.MustCompile(pattern, regexp2.IgnoreCase)
	c.filter.MatchTimeout = filterTimeout
	c.innocuous = innocuous
	return c
}

func noEscape(rune, string) (string, bool) { return "", false }

// table builds an escapeFunc from a fixed replacement table.
func table(m map[rune]string) escapeFunc {
	return func(r rune, _ string) (string, bool) {
		rep, ok := m[r]
		return rep, ok
	}
}

// merge returns a new table holding the entries of every given table, later
// tables winning.
func merge(tables ...map[rune]string) map[rune]string {
	out := make(map[rune]string)
	for _, t := range tables {
		for r, rep := range t {
			out[r] = rep
		}
	}
	return out
}

func without(t map[rune]string, runes ...rune) map[rune]string {
	out := merge(t)
	for _, r := range runes {
		delete(out, r)
	}
	return out
}

const upperHex = "0123456789ABCDEF"

// percentEncode encodes every byte of raw as %XX.
func percentEncode(raw string) string {
	b := make([]byte, 0, 3*len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		b = append(b, '%', upperHex[c>>4], upperHex[c&0xf])
	}
	return string(b)
}
