package version

import (
	"strings"
	"testing"
)

func TestColored(t *testing.T) {
	if got := Colored("1.2.3-rc.1", false); got != "1.2.3-rc.1" {
		t.Fatalf("plain = %q", got)
	}
	got := Colored("1.2.3-rc.1", true)
	if !strings.Contains(got, "\x1b[") || !strings.HasSuffix(got, "-rc.1") {
		t.Fatalf("colored = %q", got)
	}
	if got := Colored("dev", true); got != "dev" {
		t.Fatalf("non-semver = %q", got)
	}
}

func TestInfo(t *testing.T) {
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	t.Cleanup(func() { Version, GitCommit, BuildDate = origVersion, origCommit, origDate })

	Version = "1.2.3"
	GitCommit = "abc123"
	BuildDate = ""
	want := "badnames 1.2.3\ncommit: abc123\n"
	if got := Info(false); got != want {
		t.Fatalf("Info = %q, want %q", got, want)
	}
}
