package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func run(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	if args == nil {
		args = []string{}
	}
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRoot(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{"default escapes html", "<b>hi</b>\n", nil, "&lt;b&gt;hi&lt;/b&gt;\n"},
		{"trusted html", "<b>hi</b>", []string{"-k", "html"}, "<b>hi</b>"},
		{"js value", "it's", []string{"--directive", "escapeJsValue"}, `'it\x27s'`},
		{"leading bar", "a b", []string{"-d", "|escapeUri"}, "a%20b"},
		{"rejected uri", "javascript:alert(1)\n", []string{"-d", "filterNormalizeUri"}, "#zSoyz\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, err := run(t, tt.stdin, tt.args...)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRoot_LogsRejections(t *testing.T) {
	_, stderr, err := run(t, "expression(x)", "-d", "filterCssValue")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"level":"warn"`, `"logger":"autoescape"`, `"msg":"|filterCssValue received bad value"`, `"value":"expression(x)"`} {
		if !strings.Contains(stderr, want) {
			t.Errorf("log %q does not contain %s", stderr, want)
		}
	}
}

func TestRoot_LogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "autoescape.log")
	if _, _, err := run(t, "onclick", "-d", "filterHtmlAttributes", "--log-file", path); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "filterHtmlAttributes received bad value") {
		t.Errorf("log file = %q", b)
	}
}

func TestRoot_Errors(t *testing.T) {
	for _, args := range [][]string{
		{"-d", "escapeEverything"},
		{"-k", "xml"},
		{"--log-level", "loud"},
		{filepath.Join(t.TempDir(), "missing.html")},
		{"--config", filepath.Join(t.TempDir(), "missing.yaml")},
	} {
		if _, _, err := run(t, "", args...); err == nil {
			t.Errorf("expected error for %v", args)
		}
	}
}

func TestRoot_Files(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	if err := os.WriteFile(a, []byte("<a>\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(b, []byte(`"b"`+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, _, err := run(t, "", a, b)
	if err != nil {
		t.Fatal(err)
	}
	if want := "&lt;a&gt;\n&quot;b&quot;\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRoot_ConfigAndEnv(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "autoescape.yaml")
	if err := os.WriteFile(cfg, []byte("directive: escapeJsString\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, _, err := run(t, `"`, "--config", cfg)
	if err != nil {
		t.Fatal(err)
	}
	if got != `\x22` {
		t.Errorf("config: got %q", got)
	}

	t.Setenv("AUTOESCAPE_DIRECTIVE", "escapeUri")
	got, _, err = run(t, "a/b", "--config", cfg)
	if err != nil {
		t.Fatal(err)
	}
	if got != "a%2Fb" {
		t.Errorf("env: got %q", got)
	}

	// Flags win over both.
	got, _, err = run(t, "a/b", "--config", cfg, "-d", "normalizeUri")
	if err != nil {
		t.Fatal(err)
	}
	if got != "a/b" {
		t.Errorf("flag: got %q", got)
	}
}

func TestStrip(t *testing.T) {
	got, _, err := run(t, `<b onclick="x">bold<div>x`, "strip")
	if err != nil {
		t.Fatal(err)
	}
	if want := "<b>boldx</b>"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	wl := filepath.Join(t.TempDir(), "lists.yaml")
	if err := os.WriteFile(wl, []byte("name: lists\ntags: [ul, li]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, _, err = run(t, "<ul><li>a b<b>c</b></ul>", "strip", "-w", wl, "--no-spaces")
	if err != nil {
		t.Fatal(err)
	}
	if want := "<ul><li>a&#32;bc</li></ul>"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestStrip_LogsThroughConfiguredLogger(t *testing.T) {
	_, stderr, err := run(t, "<b>x</b>", "strip", "--log-level", "debug")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"msg":"stripping tags"`, `"whitelist":"formatting"`} {
		if !strings.Contains(stderr, want) {
			t.Errorf("log %q does not contain %s", stderr, want)
		}
	}
}

func TestDirectives(t *testing.T) {
	got, _, err := run(t, "", "directives")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(got), "\n")
	if len(lines) != 19 {
		t.Fatalf("got %d directives", len(lines))
	}
	if diff := cmp.Diff([]string{"escapeHtml", "cleanHtml"}, lines[:2]); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}
