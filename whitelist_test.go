package autoescape_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/njchilds90/autoescape"
)

func TestFormattingTags(t *testing.T) {
	want := []string{"b", "br", "em", "i", "s", "sub", "sup", "u"}
	if diff := cmp.Diff(want, autoescape.FormattingTags.Tags()); diff != "" {
		t.Errorf("FormattingTags mismatch (-want +got):\n%s", diff)
	}
	if autoescape.FormattingTags.IsSafe("script") {
		t.Error("script must not be a formatting tag")
	}
	if autoescape.FormattingTags.Name() != "formatting" {
		t.Errorf("Name() = %q", autoescape.FormattingTags.Name())
	}
}

func TestNewTagWhitelist_Lowercases(t *testing.T) {
	w := autoescape.NewTagWhitelist("x", "UL", "Li")
	if !w.IsSafe("ul") || !w.IsSafe("li") {
		t.Errorf("expected lowercased tags, got %v", w.Tags())
	}
	if w.IsSafe("UL") {
		t.Error("IsSafe expects lowercase names")
	}
}

func TestNilTagWhitelist(t *testing.T) {
	var w *autoescape.TagWhitelist
	if w.IsSafe("b") || w.Name() != "" || w.Tags() != nil {
		t.Error("nil whitelist must allow nothing")
	}
}

func TestLoadTagWhitelist(t *testing.T) {
	w, err := autoescape.LoadTagWhitelist(strings.NewReader("name: lists\ntags: [UL, ol, li]\n"))
	if err != nil {
		t.Fatal(err)
	}
	if w.Name() != "lists" {
		t.Errorf("Name() = %q, want lists", w.Name())
	}
	if diff := cmp.Diff([]string{"li", "ol", "ul"}, w.Tags()); diff != "" {
		t.Errorf("Tags() mismatch (-want +got):\n%s", diff)
	}

	w, err = autoescape.LoadTagWhitelist(strings.NewReader("tags:\n  - b\n"))
	if err != nil {
		t.Fatal(err)
	}
	if w.Name() != "custom" {
		t.Errorf("default name = %q, want custom", w.Name())
	}
}

func TestLoadTagWhitelist_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"garbage", "{{{not yaml"},
		{"bad tag", "tags: [\"b onclick\"]"},
		{"wrong type", "tags: {b: true}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := autoescape.LoadTagWhitelist(strings.NewReader(tt.in)); err == nil {
				t.Errorf("expected error for %q", tt.in)
			}
		})
	}
}

func FuzzLoadTagWhitelist(f *testing.F) {
	f.Add([]byte("name: x\ntags: [b, i]\n"))
	f.Add([]byte{})
	f.Add([]byte("{{{"))
	f.Fuzz(func(t *testing.T, data []byte) {
		w, err := autoescape.LoadTagWhitelist(strings.NewReader(string(data)))
		if err != nil {
			return
		}
		for _, tag := range w.Tags() {
			if strings.ContainsAny(tag, "<>\"' ") {
				t.Fatalf("accepted tag name %q", tag)
			}
		}
	})
}
