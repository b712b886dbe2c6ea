package paths

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestNewProject(t *testing.T) {
	root := filepath.Join("srv", "app")
	abs, _ := filepath.Abs(filepath.Join("etc", "out.env"))

	p := NewProject(root, "", "legacy.env", abs)
	if p.Source != filepath.Join(root, ".env.json") {
		t.Errorf("Source = %q", p.Source)
	}
	if p.Legacy != filepath.Join(root, "legacy.env") {
		t.Errorf("Legacy = %q", p.Legacy)
	}
	if p.Output != abs {
		t.Errorf("Output = %q; want %q", p.Output, abs)
	}
}

func TestDefaultsLinkPath(t *testing.T) {
	got := DefaultsLinkPath("root", "production")
	want := filepath.Join("root", ".env.production.defaults")
	if got != want {
		t.Errorf("DefaultsLinkPath = %q; want %q", got, want)
	}
}

func TestLockFilePathOverride(t *testing.T) {
	dir := t.TempDir()
	StateHomeOverride = dir
	t.Cleanup(func() { StateHomeOverride = "" })

	a := GetLockFilePath("/projects/one")
	b := GetLockFilePath("/projects/two")
	if !strings.HasPrefix(a, dir) {
		t.Errorf("lock path %q not under override %q", a, dir)
	}
	if a == b {
		t.Error("different projects should use different lock files")
	}
	if a != GetLockFilePath("/projects/one/") {
		t.Error("lock path should not depend on a trailing separator")
	}
}
