package autoescape

// The functions below use the Default Sanitizer.

// EscapeHTML escapes v for HTML text. HTML content passes through.
func EscapeHTML(v Value) string { return Default().EscapeHTML(v) }

// CleanHTML strips all but the formatting tags from v and returns HTML
// content.
func CleanHTML(v Value) *SanitizedContent { return Default().CleanHTML(v) }

// EscapeHTMLRcdata escapes v for the body of a <textarea> or <title>.
func EscapeHTMLRcdata(v Value) string { return Default().EscapeHTMLRcdata(v) }

// NormalizeHTML escapes quotes and angle brackets in v but keeps entities.
func NormalizeHTML(v Value) string { return Default().NormalizeHTML(v) }

// NormalizeHTMLNospace normalizes v for an unquoted attribute value.
func NormalizeHTMLNospace(v Value) string { return Default().NormalizeHTMLNospace(v) }

// EscapeHTMLAttribute escapes v for a quoted attribute value.
func EscapeHTMLAttribute(v Value) string { return Default().EscapeHTMLAttribute(v) }

// EscapeHTMLAttributeNospace escapes v for an unquoted attribute value.
func EscapeHTMLAttributeNospace(v Value) string {
	return Default().EscapeHTMLAttributeNospace(v)
}

// EscapeJSString escapes v for the body of a JS string literal.
func EscapeJSString(v Value) string { return Default().EscapeJSString(v) }

// EscapeJSValue renders v as a JS expression.
func EscapeJSValue(v Value) string { return Default().EscapeJSValue(v) }

// EscapeJSRegex escapes v for the body of a JS regular expression literal.
func EscapeJSRegex(v Value) string { return Default().EscapeJSRegex(v) }

// EscapeCSSString escapes v for the body of a CSS string literal.
func EscapeCSSString(v Value) string { return Default().EscapeCSSString(v) }

// FilterCSSValue checks that v is a harmless CSS identifier, quantity or
// keyword.
func FilterCSSValue(v Value) string { return Default().FilterCSSValue(v) }

// EscapeURI percent-encodes v for use as a piece of a URI.
func EscapeURI(v Value) string { return Default().EscapeURI(v) }

// NormalizeURI percent-encodes the characters of v that may not appear in a
// URI inside an HTML attribute.
func NormalizeURI(v Value) string { return Default().NormalizeURI(v) }

// FilterNormalizeURI rejects URIs with dangerous schemes and normalizes the
// rest.
func FilterNormalizeURI(v Value) string { return Default().FilterNormalizeURI(v) }

// FilterImageDataURI checks that v is a base64 image data URI.
func FilterImageDataURI(v Value) *SanitizedContent { return Default().FilterImageDataURI(v) }

// FilterHTMLAttributes checks that v is attribute content or a harmless
// attribute name.
func FilterHTMLAttributes(v Value) string { return Default().FilterHTMLAttributes(v) }

// FilterHTMLElementName checks that v is a harmless element name.
func FilterHTMLElementName(v Value) string { return Default().FilterHTMLElementName(v) }

// FilterNoAutoescape refuses to print text content unescaped.
func FilterNoAutoescape(v Value) Value { return Default().FilterNoAutoescape(v) }

// Apply runs the sanitizer named by d over v.
func Apply(d Directive, v Value) string { return Default().Apply(d, v) }
