package autoescape

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ContentKind records the output context a string is already safe for.
type ContentKind int

// The zero ContentKind is KindUnspecified, which no sanitizer trusts.
const (
	KindUnspecified ContentKind = iota
	KindHTML
	KindJS
	KindJSStrChars
	KindCSS
	KindURI
	KindAttributes
	// KindText marks content that must always be escaped, even where the
	// template asked for no autoescaping.
	KindText
)

var kindNames = [...]string{
	KindUnspecified: "unspecified",
	KindHTML:        "html",
	KindJS:          "js",
	KindJSStrChars:  "jsstrchars",
	KindCSS:         "css",
	KindURI:         "uri",
	KindAttributes:  "attributes",
	KindText:        "text",
}

func (k ContentKind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "ContentKind(" + strconv.Itoa(int(k)) + ")"
}

// ParseContentKind maps a kind name as written in a template's kind
// attribute ("html", "uri", ...) to its ContentKind.
func ParseContentKind(name string) (ContentKind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range kindNames {
		if n == name && ContentKind(k) != KindUnspecified {
			return ContentKind(k), nil
		}
	}
	return KindUnspecified, fmt.Errorf("unknown content kind %q", name)
}

// Dir is the text direction of a piece of content.
type Dir int

const (
	DirUnknown Dir = iota
	DirLTR
	DirRTL
)

func (d Dir) String() string {
	switch d {
	case DirLTR:
		return "ltr"
	case DirRTL:
		return "rtl"
	}
	return "unknown"
}

// Value is a template data value handed to a sanitizer. The set of
// implementations is closed: String, Number, Bool, Null and
// *SanitizedContent. A nil Value behaves like Null.
type Value interface {
	value()
}

// String is plain, untrusted text.
type String string

// Number is a numeric template value.
type Number float64

// Bool is a boolean template value.
type Bool bool

// Null is the explicit absence of a value.
type Null struct{}

func (String) value()            {}
func (Number) value()            {}
func (Bool) value()              {}
func (Null) value()              {}
func (*SanitizedContent) value() {}

// SanitizedContent is a string known to be safe in the context named by its
// kind. It is immutable; the only way to create one is Ordain.
type SanitizedContent struct {
	content string
	kind    ContentKind
	dir     Dir
}

// Ordain marks content as safe for kind. Only trusted code, such as
// compiled templates or the sanitizers themselves, may call it: the kind is
// never inferred from, or checked against, the content.
func Ordain(content string, kind ContentKind, dir Dir) *SanitizedContent {
	return &SanitizedContent{content: content, kind: kind, dir: dir}
}

func (c *SanitizedContent) String() string    { return c.content }
func (c *SanitizedContent) Kind() ContentKind { return c.kind }
func (c *SanitizedContent) Dir() Dir          { return c.dir }

// Coerce returns the string form of v as it would be printed by a template.
func Coerce(v Value) string {
	switch v := v.(type) {
	case nil, Null:
		return "null"
	case String:
		return string(v)
	case Number:
		return formatNumber(float64(v))
	case Bool:
		return strconv.FormatBool(bool(v))
	case *SanitizedContent:
		if v == nil {
			return "null"
		}
		return v.content
	}
	// Only reachable through types that embed one of the above.
	return fmt.Sprint(v)
}

// formatNumber renders f the way JavaScript's Number#toString does for the
// common cases: integral values carry no fraction or exponent.
func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == math.Trunc(f) && math.Abs(f) < 1e21:
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// contentOf is the trust gate: it returns v's content and true only when v
// is sanitized content of exactly the given kind.
func contentOf(v Value, kind ContentKind) (string, bool) {
	c, ok := v.(*SanitizedContent)
	if !ok || c == nil || c.kind != kind {
		return "", false
	}
	return c.content, true
}
