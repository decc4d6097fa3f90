// Package autoescape provides run-time sanitizers for contextual
// autoescaping in templates.
//
// # Overview
//
// A template compiler decides, for every value printed by a template,
// which output context the value lands in and which sanitizer must run
// there. This package supplies those sanitizers. Each one takes a [Value]
// and returns a string that cannot change the parse context it is
// embedded in: it cannot close the surrounding tag, end a quoted
// attribute, or terminate a script string.
//
// # Trusted content
//
// A [SanitizedContent] carries a [ContentKind] stating the context it is
// already safe for. Every sanitizer passes content of its own kind through
// untouched (or only normalizes it) and escapes everything else. Content is
// created with [Ordain], which must only be called by trusted code.
//
// # Filters
//
// Some contexts cannot be made safe by escaping: a URI scheme, a CSS
// property value, an attribute or element name. Their sanitizers check the
// value against a pattern instead. A rejected value is reported to a [Sink]
// and replaced with a fixed innocuous output such as "zSoyz", so rendering
// always completes.
//
// # Tag stripping
//
// [StripHTMLTags] removes all tags except those in a [TagWhitelist], drops
// attributes from the tags it keeps, and balances them so the output is
// well formed. It uses a lexical tag scanner, not an HTML parser.
//
// # Thread Safety
//
// All functions are safe for concurrent use. Whitelists and sanitized
// content must not be mutated after creation.
//
// # Example
//
//	autoescape.EscapeHTML(autoescape.String(`<b>"hi"</b>`))
//	// &lt;b&gt;&quot;hi&quot;&lt;/b&gt;
package autoescape
