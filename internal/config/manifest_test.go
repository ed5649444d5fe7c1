package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	p := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, `
[library]
includes = "lib/includes.txt"
list = "lib/libraries.txt"
files = ["extra.h", "/abs/other.h"]

[cache]
enabled = true
dir = ".cache"
`)
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	m, ok, err := Discover(nested)
	if err != nil || !ok {
		t.Fatalf("Discover: ok=%v err=%v", ok, err)
	}
	if m.Root != root {
		t.Errorf("root = %q, want %q", m.Root, root)
	}
	if got, want := m.IncludesPath(), filepath.Join(root, "lib", "includes.txt"); got != want {
		t.Errorf("includes = %q, want %q", got, want)
	}
	if got, want := m.ListPath(), filepath.Join(root, "lib", "libraries.txt"); got != want {
		t.Errorf("list = %q, want %q", got, want)
	}
	if diff := cmp.Diff([]string{filepath.Join(root, "extra.h"), "/abs/other.h"}, m.Files()); diff != "" {
		t.Errorf("files mismatch (-want +got):\n%s", diff)
	}
	if !m.Config.Cache.Enabled || m.CacheDir() != filepath.Join(root, ".cache") {
		t.Errorf("cache = %+v dir %q", m.Config.Cache, m.CacheDir())
	}
	if m.Config.Output.Color != ColorAuto {
		t.Errorf("color = %q, want default auto", m.Config.Output.Color)
	}
}

func TestDiscoverNone(t *testing.T) {
	// t.TempDir lives under the system temp dir, which has no splice.toml.
	m, ok, err := Discover(t.TempDir())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if ok || m != nil {
		t.Errorf("expected no manifest, got %+v", m)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad toml", "[library", "failed to parse TOML"},
		{"missing includes", "[library]\nlist = \"l.txt\"\n", "missing [library].includes"},
		{"no libraries", "[library]\nincludes = \"i.txt\"\n", "needs list or files"},
		{"bad color", "[output]\ncolor = \"sometimes\"\n", "invalid color mode"},
		{"unknown key", "[cache]\nttl = 5\n", "unknown key cache.ttl"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := writeManifest(t, t.TempDir(), tt.content)
			_, err := Load(p)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Load error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}
