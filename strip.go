package autoescape

import (
	"strings"

	"golang.org/x/net/html/atom"

	"github.com/njchilds90/autoescape/escaping"
)

// StripHTMLTags returns value with the same text content but only the tags
// that safe allows. Kept tags lose their attributes and are balanced: close
// tags without a matching open tag are dropped, a close tag also closes every
// tag opened inside it, and tags still open at the end are closed.
//
// A nil whitelist allows no tags, and the result can then be embedded in an
// attribute value. rawSpacesAllowed selects whether whitespace may appear
// unescaped in the text, which holds in text nodes and quoted attributes
// but not in unquoted attributes.
func StripHTMLTags(value string, safe *TagWhitelist, rawSpacesAllowed bool) string {
	normalizer := escaping.NormalizeHTML
	if !rawSpacesAllowed {
		normalizer = escaping.NormalizeHTMLNospace
	}

	sc := newTagScanner(value)
	tag, ok := sc.next()
	if !ok {
		return normalizer.Escape(value)
	}

	var sb strings.Builder
	sb.Grow(len(value))
	// Whitelisted tags opened and not yet closed, outermost first.
	var open []string
	pos := 0
	for ; ok; tag, ok = sc.next() {
		if pos < tag.start {
			sb.WriteString(normalizer.Escape(value[pos:tag.start]))
			// "&<b>amp;</b>" must become "&amp;<b>amp;</b>", not a
			// decodable "&amp;".
			if value[tag.start-1] == '&' {
				sb.WriteString("amp;")
			}
		}
		pos = tag.end

		if safe == nil || tag.name == "" {
			continue
		}
		name := strings.ToLower(tag.name)
		if !safe.IsSafe(name) {
			continue
		}
		if tag.closing {
			if i := lastIndex(open, name); i >= 0 {
				// Closing the contained tags as well fails safe for
				// misnested markup such as "<b><i>x</b>y</i>".
				open = closeTags(&sb, open, i)
			}
			continue
		}
		sb.WriteByte('<')
		sb.WriteString(name)
		sb.WriteByte('>')
		if !isVoidElement(name) {
			open = append(open, name)
		}
	}
	sb.WriteString(normalizer.Escape(value[pos:]))
	closeTags(&sb, open, 0)
	return sb.String()
}

// closeTags writes close tags for open[from:], innermost first, and returns
// the remaining open tags.
func closeTags(sb *strings.Builder, open []string, from int) []string {
	for i := len(open) - 1; i >= from; i-- {
		sb.WriteString("</")
		sb.WriteString(open[i])
		sb.WriteByte('>')
	}
	return open[:from]
}

func lastIndex(s []string, v string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == v {
			return i
		}
	}
	return -1
}

// isVoidElement reports whether tag can never have content, so it is
// never closed.
func isVoidElement(tag string) bool {
	switch atom.Lookup([]byte(tag)) {
	case atom.Area, atom.Base, atom.Br, atom.Col, atom.Command, atom.Embed,
		atom.Hr, atom.Img, atom.Input, atom.Keygen, atom.Link, atom.Meta,
		atom.Param, atom.Source, atom.Track, atom.Wbr:
		return true
	}
	return false
}
