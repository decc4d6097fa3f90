package autoescape

import (
	"os"
	"sync/atomic"
	"unicode"
	"unicode/utf8"

	"github.com/njchilds90/autoescape/escaping"
)

// Sanitizer escapes, normalizes and filters values for output contexts.
// Its methods never fail: a value a filter rejects is reported to the
// Sanitizer's Sink and replaced by that context's innocuous output.
//
// A Sanitizer is safe for concurrent use.
type Sanitizer struct {
	sink Sink
}

// Option configures a Sanitizer.
type Option func(*Sanitizer)

// WithSink sets the Sink that receives rejected values.
func WithSink(s Sink) Option {
	return func(z *Sanitizer) {
		if s != nil {
			z.sink = s
		}
	}
}

// New returns a Sanitizer. Without options rejected values are discarded.
func New(opts ...Option) *Sanitizer {
	z := &Sanitizer{sink: NopSink{}}
	for _, o := range opts {
		o(z)
	}
	return z
}

var std atomic.Pointer[Sanitizer]

func init() {
	SetDefaultSink(nil)
}

// Default returns the Sanitizer behind the package-level functions. Until
// SetDefaultSink is called it logs every rejected value as a JSON warning on
// standard error.
func Default() *Sanitizer { return std.Load() }

// SetDefaultSink replaces the Sink used by the package-level functions. A
// nil Sink restores the standard error logger.
func SetDefaultSink(s Sink) {
	if s == nil {
		s = NewZapSink(newWarnLogger(os.Stderr))
	}
	std.Store(New(WithSink(s)))
}

func (z *Sanitizer) reject(d Directive, c *escaping.Convention, value string) string {
	z.sink.Reject(d, value)
	return c.Innocuous()
}

// EscapeHTML escapes v for HTML text. HTML content passes through.
func (z *Sanitizer) EscapeHTML(v Value) string {
	if s, ok := contentOf(v, KindHTML); ok {
		return s
	}
	return escaping.EscapeHTML.Escape(Coerce(v))
}

// CleanHTML strips all but the formatting tags from v and returns the result
// as HTML content that keeps v's direction. HTML content is returned as is.
func (z *Sanitizer) CleanHTML(v Value) *SanitizedContent {
	dir := DirUnknown
	if c, ok := v.(*SanitizedContent); ok && c != nil {
		if c.kind == KindHTML {
			return c
		}
		dir = c.dir
	}
	return Ordain(StripHTMLTags(Coerce(v), FormattingTags, true), KindHTML, dir)
}

// EscapeHTMLRcdata escapes v for the body of an RCDATA element such as
// <textarea> or <title>. HTML content is normalized rather than passed
// through, since its tags could end the element.
func (z *Sanitizer) EscapeHTMLRcdata(v Value) string {
	if s, ok := contentOf(v, KindHTML); ok {
		return escaping.NormalizeHTML.Escape(s)
	}
	return escaping.EscapeHTML.Escape(Coerce(v))
}

// NormalizeHTML escapes quotes and angle brackets in v but keeps entities.
func (z *Sanitizer) NormalizeHTML(v Value) string {
	return escaping.NormalizeHTML.Escape(Coerce(v))
}

// NormalizeHTMLNospace is NormalizeHTML that also escapes whitespace and
// the other characters that end an unquoted attribute value.
func (z *Sanitizer) NormalizeHTMLNospace(v Value) string {
	return escaping.NormalizeHTMLNospace.Escape(Coerce(v))
}

// EscapeHTMLAttribute escapes v for a quoted attribute value. Tags are
// stripped from HTML content.
func (z *Sanitizer) EscapeHTMLAttribute(v Value) string {
	if s, ok := contentOf(v, KindHTML); ok {
		return StripHTMLTags(s, nil, true)
	}
	return escaping.EscapeHTML.Escape(Coerce(v))
}

// EscapeHTMLAttributeNospace escapes v for an unquoted attribute value. Tags
// are stripped from HTML content.
func (z *Sanitizer) EscapeHTMLAttributeNospace(v Value) string {
	if s, ok := contentOf(v, KindHTML); ok {
		return StripHTMLTags(s, nil, false)
	}
	return escaping.EscapeHTMLNospace.Escape(Coerce(v))
}

// EscapeJSString escapes v for the body of a JS string literal.
func (z *Sanitizer) EscapeJSString(v Value) string {
	if s, ok := contentOf(v, KindJSStrChars); ok {
		return s
	}
	return escaping.EscapeJSString.Escape(Coerce(v))
}

// EscapeJSValue renders v as a JS expression: null, a number, a boolean, JS
// content as is, or else a quoted string literal. Values are padded with
// spaces so they cannot merge with adjacent tokens.
func (z *Sanitizer) EscapeJSValue(v Value) string {
	switch v := v.(type) {
	case nil, Null:
		return " null "
	case Number, Bool:
		return " " + Coerce(v) + " "
	case *SanitizedContent:
		if v == nil {
			return " null "
		}
		if v.kind == KindJS {
			return v.content
		}
	}
	return "'" + escaping.EscapeJSString.Escape(Coerce(v)) + "'"
}

// EscapeJSRegex escapes v for the body of a JS regular expression literal.
func (z *Sanitizer) EscapeJSRegex(v Value) string {
	return escaping.EscapeJSRegex.Escape(Coerce(v))
}

// EscapeCSSString escapes v for the body of a CSS string literal.
func (z *Sanitizer) EscapeCSSString(v Value) string {
	return escaping.EscapeCSSString.Escape(Coerce(v))
}

// FilterCSSValue passes v through if it is CSS content or a plain CSS
// identifier, quantity or keyword. Null becomes the empty string.
func (z *Sanitizer) FilterCSSValue(v Value) string {
	if s, ok := contentOf(v, KindCSS); ok {
		return s
	}
	switch v.(type) {
	case nil, Null:
		return ""
	}
	s := Coerce(v)
	if !escaping.FilterCSSValue.Accepts(s) {
		return z.reject(DirectiveFilterCSSValue, escaping.FilterCSSValue, s)
	}
	return s
}

// EscapeURI percent-encodes v for use as a piece of a URI. URI content is
// only normalized.
func (z *Sanitizer) EscapeURI(v Value) string {
	if s, ok := contentOf(v, KindURI); ok {
		return escaping.NormalizeURI.Escape(s)
	}
	return escaping.EscapeURI.Escape(Coerce(v))
}

// NormalizeURI percent-encodes the characters of v that may not appear in a
// URI inside an HTML attribute.
func (z *Sanitizer) NormalizeURI(v Value) string {
	return escaping.NormalizeURI.Escape(Coerce(v))
}

// FilterNormalizeURI normalizes v after checking that it has no dangerous
// scheme such as javascript:. URI content is only normalized.
func (z *Sanitizer) FilterNormalizeURI(v Value) string {
	if s, ok := contentOf(v, KindURI); ok {
		return escaping.NormalizeURI.Escape(s)
	}
	s := Coerce(v)
	if !escaping.FilterNormalizeURI.Accepts(s) {
		return z.reject(DirectiveFilterNormalizeURI, escaping.FilterNormalizeURI, s)
	}
	return escaping.FilterNormalizeURI.Escape(s)
}

// FilterImageDataURI returns v as URI content if it is a base64 data URI of
// an image. It is checked even when v is already URI content, because the
// directive also guarantees that no foreign resource is loaded.
func (z *Sanitizer) FilterImageDataURI(v Value) *SanitizedContent {
	s := Coerce(v)
	if !escaping.FilterImageDataURI.Accepts(s) {
		s = z.reject(DirectiveFilterImageDataURI, escaping.FilterImageDataURI, s)
	}
	return Ordain(s, KindURI, DirLTR)
}

// FilterHTMLAttributes passes attribute content through and checks anything
// else is a harmless attribute name.
func (z *Sanitizer) FilterHTMLAttributes(v Value) string {
	if s, ok := contentOf(v, KindAttributes); ok {
		// "foo=bar" directly followed by more attributes needs a
		// separator; `foo="bar"` does not.
		if r, _ := utf8.DecodeLastRuneInString(s); s != "" && r != '"' && r != '\'' && !unicode.IsSpace(r) {
			s += " "
		}
		return s
	}
	s := Coerce(v)
	if !escaping.FilterHTMLAttributes.Accepts(s) {
		return z.reject(DirectiveFilterHTMLAttributes, escaping.FilterHTMLAttributes, s)
	}
	return s
}

// FilterHTMLElementName checks that v is part of the name of an element
// without a special content model.
func (z *Sanitizer) FilterHTMLElementName(v Value) string {
	s := Coerce(v)
	if !escaping.FilterHTMLElementName.Accepts(s) {
		return z.reject(DirectiveFilterHTMLElementName, escaping.FilterHTMLElementName, s)
	}
	return s
}

// FilterNoAutoescape returns v unchanged unless it is text content, which
// must never be printed unescaped and is replaced by the innocuous output.
func (z *Sanitizer) FilterNoAutoescape(v Value) Value {
	if s, ok := contentOf(v, KindText); ok {
		z.sink.Reject(DirectiveNoAutoescape, s)
		return String(escaping.InnocuousOutput)
	}
	return v
}

// Apply runs the sanitizer named by d over v and returns the result as a
// string.
func (z *Sanitizer) Apply(d Directive, v Value) string {
	switch d {
	case DirectiveEscapeHTML:
		return z.EscapeHTML(v)
	case DirectiveCleanHTML:
		return z.CleanHTML(v).String()
	case DirectiveEscapeHTMLRcdata:
		return z.EscapeHTMLRcdata(v)
	case DirectiveNormalizeHTML:
		return z.NormalizeHTML(v)
	case DirectiveNormalizeHTMLNospace:
		return z.NormalizeHTMLNospace(v)
	case DirectiveEscapeHTMLAttribute:
		return z.EscapeHTMLAttribute(v)
	case DirectiveEscapeHTMLAttributeNospace:
		return z.EscapeHTMLAttributeNospace(v)
	case DirectiveEscapeJSString:
		return z.EscapeJSString(v)
	case DirectiveEscapeJSValue:
		return z.EscapeJSValue(v)
	case DirectiveEscapeJSRegex:
		return z.EscapeJSRegex(v)
	case DirectiveEscapeCSSString:
		return z.EscapeCSSString(v)
	case DirectiveFilterCSSValue:
		return z.FilterCSSValue(v)
	case DirectiveEscapeURI:
		return z.EscapeURI(v)
	case DirectiveNormalizeURI:
		return z.NormalizeURI(v)
	case DirectiveFilterNormalizeURI:
		return z.FilterNormalizeURI(v)
	case DirectiveFilterImageDataURI:
		return z.FilterImageDataURI(v).String()
	case DirectiveFilterHTMLAttributes:
		return z.FilterHTMLAttributes(v)
	case DirectiveFilterHTMLElementName:
		return z.FilterHTMLElementName(v)
	case DirectiveNoAutoescape:
		return Coerce(z.FilterNoAutoescape(v))
	}
	// Unknown directives escape for HTML text, the strictest context.
	return z.EscapeHTML(v)
}
