package autoescape

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// TagWhitelist is a named set of lowercase tag names that StripHTMLTags
// keeps. A TagWhitelist must not be modified after creation.
type TagWhitelist struct {
	name string
	tags map[string]bool
}

// FormattingTags allows simple inline formatting and line breaks.
var FormattingTags = NewTagWhitelist("formatting", "b", "br", "em", "i", "s", "sub", "sup", "u")

// NewTagWhitelist returns a whitelist named name that allows tags.
func NewTagWhitelist(name string, tags ...string) *TagWhitelist {
	return &TagWhitelist{name: name, tags: sliceToSet(tags)}
}

// Name returns the whitelist's name.
func (w *TagWhitelist) Name() string {
	if w == nil {
		return ""
	}
	return w.name
}

// IsSafe reports whether the lowercase tag name may be preserved.
// A nil whitelist allows nothing.
func (w *TagWhitelist) IsSafe(tag string) bool {
	return w != nil && w.tags[tag]
}

// Tags returns the allowed tag names in sorted order.
func (w *TagWhitelist) Tags() []string {
	if w == nil {
		return nil
	}
	out := make([]string, 0, len(w.tags))
	for t := range w.tags {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

type whitelistFile struct {
	Name string   `yaml:"name"`
	Tags []string `yaml:"tags"`
}

// LoadTagWhitelist reads a whitelist from YAML of the form
//
//	name: lists
//	tags: [ul, ol, li]
func LoadTagWhitelist(r io.Reader) (*TagWhitelist, error) {
	var f whitelistFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("parse tag whitelist: empty document")
		}
		return nil, fmt.Errorf("parse tag whitelist: %w", err)
	}
	for i, t := range f.Tags {
		if !isTagName(t) {
			return nil, fmt.Errorf("tags[%d]: %q is not a tag name", i, t)
		}
	}
	if f.Name == "" {
		f.Name = "custom"
	}
	return NewTagWhitelist(f.Name, f.Tags...), nil
}

func sliceToSet(s []string) map[string]bool {
	m := make(map[string]bool, len(s))
	for _, v := range s {
		m[strings.ToLower(v)] = true
	}
	return m
}
