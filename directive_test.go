package autoescape_test

import (
	"testing"

	"github.com/njchilds90/autoescape"
)

func TestParseDirective(t *testing.T) {
	ds := autoescape.Directives()
	if len(ds) != 19 {
		t.Fatalf("Directives() returned %d directives", len(ds))
	}
	for _, d := range ds {
		for _, name := range []string{d.String(), d.String()[1:]} {
			got, err := autoescape.ParseDirective(name)
			if err != nil || got != d {
				t.Errorf("ParseDirective(%q) = %v, %v; want %v", name, got, err, d)
			}
		}
	}
	if _, err := autoescape.ParseDirective("escapeEverything"); err == nil {
		t.Error("expected error for unknown directive")
	}
	if got := autoescape.Directive(99).String(); got != "Directive(99)" {
		t.Errorf("got %q", got)
	}
}
