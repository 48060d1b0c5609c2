package version

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	oldVersion, oldCommit := Version, Commit
	t.Cleanup(func() { Version, Commit = oldVersion, oldCommit })

	Version, Commit = "v1.2.3", "abc1234"

	got := String()
	for _, want := range []string{"golink v1.2.3", "commit=abc1234", "go=go"} {
		if !strings.Contains(got, want) {
			t.Errorf("String() = %q, want it to contain %q", got, want)
		}
	}
}

func TestPlatform(t *testing.T) {
	if p := Platform(); !strings.Contains(p, "/") {
		t.Errorf("Platform() = %q, want GOOS/GOARCH", p)
	}
}
