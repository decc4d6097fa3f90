package autoescape

import (
	"fmt"
	"strings"
)

// Directive names a sanitizer as it appears in a template print directive.
type Directive int

const (
	DirectiveEscapeHTML Directive = iota
	DirectiveCleanHTML
	DirectiveEscapeHTMLRcdata
	DirectiveNormalizeHTML
	DirectiveNormalizeHTMLNospace
	DirectiveEscapeHTMLAttribute
	DirectiveEscapeHTMLAttributeNospace
	DirectiveEscapeJSString
	DirectiveEscapeJSValue
	DirectiveEscapeJSRegex
	DirectiveEscapeCSSString
	DirectiveFilterCSSValue
	DirectiveEscapeURI
	DirectiveNormalizeURI
	DirectiveFilterNormalizeURI
	DirectiveFilterImageDataURI
	DirectiveFilterHTMLAttributes
	DirectiveFilterHTMLElementName
	DirectiveNoAutoescape

	numDirectives
)

var directiveNames = [numDirectives]string{
	DirectiveEscapeHTML:                 "escapeHtml",
	DirectiveCleanHTML:                  "cleanHtml",
	DirectiveEscapeHTMLRcdata:           "escapeHtmlRcdata",
	DirectiveNormalizeHTML:              "normalizeHtml",
	DirectiveNormalizeHTMLNospace:       "normalizeHtmlNospace",
	DirectiveEscapeHTMLAttribute:        "escapeHtmlAttribute",
	DirectiveEscapeHTMLAttributeNospace: "escapeHtmlAttributeNospace",
	DirectiveEscapeJSString:             "escapeJsString",
	DirectiveEscapeJSValue:              "escapeJsValue",
	DirectiveEscapeJSRegex:              "escapeJsRegex",
	DirectiveEscapeCSSString:            "escapeCssString",
	DirectiveFilterCSSValue:             "filterCssValue",
	DirectiveEscapeURI:                  "escapeUri",
	DirectiveNormalizeURI:               "normalizeUri",
	DirectiveFilterNormalizeURI:         "filterNormalizeUri",
	DirectiveFilterImageDataURI:         "filterImageDataUri",
	DirectiveFilterHTMLAttributes:       "filterHtmlAttributes",
	DirectiveFilterHTMLElementName:      "filterHtmlElementName",
	DirectiveNoAutoescape:               "noAutoescape",
}

// String returns the directive as written in a template, e.g. "|escapeHtml".
func (d Directive) String() string {
	if d >= 0 && d < numDirectives {
		return "|" + directiveNames[d]
	}
	return fmt.Sprintf("Directive(%d)", int(d))
}

// ParseDirective maps a directive name, with or without its leading "|",
// to a Directive.
func ParseDirective(name string) (Directive, error) {
	n := strings.TrimPrefix(strings.TrimSpace(name), "|")
	for d, dn := range directiveNames {
		if dn == n {
			return Directive(d), nil
		}
	}
	return 0, fmt.Errorf("unknown directive %q", name)
}

// Directives returns every directive in declaration order.
func Directives() []Directive {
	out := make([]Directive, numDirectives)
	for i := range out {
		out[i] = Directive(i)
	}
	return out
}
