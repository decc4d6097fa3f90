package escaping

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

var htmlEscapes = map[rune]string{
	0:    "&#0;",
	'"':  "&quot;",
	'&':  "&amp;",
	'\'': "&#39;",
	'<':  "&lt;",
	'>':  "&gt;",
}

// Characters that end an unquoted attribute value or that some browsers
// treat as space.
var htmlNospaceEscapes = merge(htmlEscapes, map[rune]string{
	'\t':     "&#9;",
	'\n':     "&#10;",
	'\v':     "&#11;",
	'\f':     "&#12;",
	'\r':     "&#13;",
	' ':      "&#32;",
	'-':      "&#45;",
	'/':      "&#47;",
	'=':      "&#61;",
	'`':      "&#96;",
	'\u0085': "&#133;",
	'\u00a0': "&#160;",
	'\u2028': "&#8232;",
	'\u2029': "&#8233;",
})

var jsStringEscapes = map[rune]string{
	0:        `\x00`,
	'\b':     `\x08`,
	'\t':     `\t`,
	'\n':     `\n`,
	'\v':     `\x0b`,
	'\f':     `\f`,
	'\r':     `\r`,
	'"':      `\x22`,
	'&':      `\x26`,
	'\'':     `\x27`,
	'/':      `\/`,
	'<':      `\x3c`,
	'=':      `\x3d`,
	'>':      `\x3e`,
	'\\':     `\\`,
	'\u0085': `\x85`,
	'\u2028': `\u2028`,
	'\u2029': `\u2029`,
}

var jsRegexEscapes = merge(jsStringEscapes, map[rune]string{
	'$': `\x24`,
	'(': `\x28`,
	')': `\x29`,
	'*': `\x2a`,
	'+': `\x2b`,
	',': `\x2c`,
	'-': `\x2d`,
	'.': `\x2e`,
	':': `\x3a`,
	'?': `\x3f`,
	'[': `\x5b`,
	']': `\x5d`,
	'^': `\x5e`,
	'{': `\x7b`,
	'|': `\x7c`,
	'}': `\x7d`,
})

// jsEscape escapes the table entries and any remaining C0 control.
func jsEscape(t map[rune]string) escapeFunc {
	return func(r rune, _ string) (string, bool) {
		if rep, ok := t[r]; ok {
			return rep, true
		}
		if r < 0x20 || r == 0x7f {
			return fmt.Sprintf(`\x%02x`, r), true
		}
		return "", false
	}
}

func cssStringEscape(r rune, _ string) (string, bool) {
	switch r {
	case 0, '\b', '\t', '\n', '\v', '\f', '\r', '"', '&', '\'', '(', ')', '*',
		'/', ':', '<', '=', '>', '@', '[', '\\', ']', '{', '}',
		'\u0085', '\u00a0', '\u2028', '\u2029':
		// The trailing space ends the hex escape.
		return fmt.Sprintf(`\%x `, r), true
	}
	return "", false
}

func uriEscape(r rune, raw string) (string, bool) {
	if r < 0x80 && (isAlnum(byte(r)) || strings.ContainsRune("-_.*", r)) {
		return "", false
	}
	return percentEncode(raw), true
}

// uriNormalizeEscape leaves reserved characters and existing %XX escapes
// alone and encodes only what would break out of an HTML attribute or
// confuse URL parsers.
func uriNormalizeEscape(r rune, raw string) (string, bool) {
	switch {
	case r <= ' ', r == 0x7f:
	case strings.ContainsRune(`"'()<>\{}`, r):
	case r == '\u0085', r == '\u00a0', r == '\u2028', r == '\u2029':
	case isFullwidthURIPunct(r):
	case r == utf8.RuneError && len(raw) == 1:
	default:
		return "", false
	}
	return percentEncode(raw), true
}

// isFullwidthURIPunct matches fullwidth forms some browsers fold to the
// ASCII punctuation that is meaningful in URLs.
func isFullwidthURIPunct(r rune) bool {
	switch r {
	case '\uff01', '\uff03', '\uff04', '\uff06', '\uff07', '\uff08', '\uff09',
		'\uff0a', '\uff0b', '\uff0c', '\uff0f', '\uff1a', '\uff1b', '\uff1d',
		'\uff1f', '\uff20', '\uff3b', '\uff3d':
		return true
	}
	return false
}

func isAlnum(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9'
}

// HTML text and quoted attribute values.
var (
	EscapeHTML           = newConvention("escapeHtml", table(htmlEscapes))
	NormalizeHTML        = newConvention("normalizeHtml", table(without(htmlEscapes, '&')))
	EscapeHTMLNospace    = newConvention("escapeHtmlNospace", table(htmlNospaceEscapes))
	NormalizeHTMLNospace = newConvention("normalizeHtmlNospace", table(without(htmlNospaceEscapes, '&')))
)

// JS and CSS string bodies.
var (
	EscapeJSString  = newConvention("escapeJsString", jsEscape(jsStringEscapes))
	EscapeJSRegex   = newConvention("escapeJsRegex", jsEscape(jsRegexEscapes))
	EscapeCSSString = newConvention("escapeCssString", cssStringEscape)
)

// URIs.
var (
	EscapeURI    = newConvention("escapeUri", uriEscape)
	NormalizeURI = newConvention("normalizeUri", uriNormalizeEscape)

	// FilterNormalizeURI accepts http, https and mailto URIs and URIs without
	// a scheme, and rejects dot-dot segments that could climb out of the
	// intended path.
	FilterNormalizeURI = newFilter("filterNormalizeUri", uriNormalizeEscape,
		`^(?![^#?]*/(?:\.|%2E){2}(?:[/?#]|$))(?:(?:https?|mailto):|[^&:/?#]*(?:[/?#]|$))`,
		"#"+InnocuousOutput)

	// FilterImageDataURI accepts only base64 data URIs of raster image types.
	FilterImageDataURI = newFilter("filterImageDataUri", nil,
		`^data:image/(?:bmp|gif|jpe?g|png|tiff|webp);base64,[a-z0-9+/]+=*\z`,
		"data:image/gif;base64,"+InnocuousOutput)
)

// Values that end up in CSS property values or in tag structure.
var (
	// FilterCSSValue accepts a CSS identifier part, a class or id, a
	// quantity or !important, and rejects expression() and XBL bindings.
	FilterCSSValue = newFilter("filterCssValue", nil,
		`^(?!-*(?:expression|(?:moz-)?binding))(?:[.#]?-?[_a-z0-9-]+|-?(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+)(?:[a-z]{1,2}|%)?|!important|)\z`,
		InnocuousOutput)

	// FilterHTMLAttributes rejects event handlers and attributes whose
	// values are URLs or styles.
	FilterHTMLAttributes = newFilter("filterHtmlAttributes", nil,
		`^(?!on|src|(?:style|action|archive|background|cite|classid|codebase|data|dsync|href|longdesc|usemap)\s*$)(?:[a-z0-9_$:-]*)\z`,
		InnocuousOutput)

	// FilterHTMLElementName rejects elements with special content models.
	FilterHTMLElementName = newFilter("filterHtmlElementName", nil,
		`^(?!script|style|title|textarea|xmp|no)[a-z0-9_$:-]*\z`,
		InnocuousOutput)
)
