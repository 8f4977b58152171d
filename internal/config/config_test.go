package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"badnames/internal/driver"
)

func write(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	write(t, root, "[check]\njobs = 2\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	m, err := Discover(nested)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if m == nil || m.Root != root {
		t.Fatalf("manifest = %+v", m)
	}
	if m.Config.Check.Jobs != 2 || m.Config.Check.MaxDiagnostics != 100 {
		t.Fatalf("config = %+v", m.Config.Check)
	}
}

func TestDiscoverNone(t *testing.T) {
	// walking up from a temp dir may still hit a file on the host; only the
	// error contract is checked here
	if _, err := Discover(t.TempDir()); err != nil {
		t.Fatalf("Discover: %v", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := write(t, dir, `
[check]
format = "sarif"
max-diagnostics = 5
warnings-as-errors = true
on-malformed = "abort"
exclude = ["vendor", "testdata"]

[cache]
enabled = true
dir = ".cache"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Check.Format != "sarif" || !cfg.Check.WarningsAsErrors || cfg.Check.MaxDiagnostics != 5 {
		t.Fatalf("check = %+v", cfg.Check)
	}
	if cfg.Cache.Dir != filepath.Join(dir, ".cache") {
		t.Fatalf("cache dir = %q", cfg.Cache.Dir)
	}
	opts, err := cfg.DriverOptions()
	if err != nil {
		t.Fatalf("DriverOptions: %v", err)
	}
	if opts.OnMalformed != driver.MalformedAbort || !slices.Equal(opts.Exclude, []string{"vendor", "testdata"}) {
		t.Fatalf("options = %+v", opts)
	}
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name, doc, want string
	}{
		{"bad format", "[check]\nformat = \"xml\"\n", "[check].format"},
		{"bad policy", "[check]\non-malformed = \"explode\"\n", "[check].on-malformed"},
		{"negative jobs", "[check]\njobs = -1\n", "jobs"},
		{"unknown key", "[check]\nrules = [\"BN1001\"]\n", "unknown keys: check.rules"},
		{"bad pattern", "[check]\nexclude = [\"[\"]\n", "bad pattern"},
		{"not toml", "[check\n", "failed to parse TOML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := write(t, t.TempDir(), tt.doc)
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want %q", err, tt.want)
			}
		})
	}
}
