package defaults

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"envgen/internal/constants"
	"envgen/internal/errs"
	"envgen/internal/paths"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadNothingConfigured(t *testing.T) {
	res, err := Load(context.Background(), Request{Root: t.TempDir(), Environment: "local"})
	require.NoError(t, err)
	assert.Empty(t, res.Values)
	assert.Empty(t, res.Path)
}

func TestLoadExplicitPath(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, filepath.Join(dir, "shared", "prod.env"), "DB_HOST=db.prod\nAPP_URL=https://shop.example\n")

	res, err := Load(context.Background(), Request{Root: dir, Environment: "production", Path: file})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"DB_HOST": "db.prod", "APP_URL": "https://shop.example"}, res.Values)
	assert.Equal(t, file, res.Path)

	_, statErr := os.Lstat(paths.DefaultsLinkPath(dir, "production"))
	assert.True(t, os.IsNotExist(statErr), "no link should be created without Remember")
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(context.Background(), Request{Root: dir, Environment: "local", Remember: true})
	assert.True(t, errs.Is(err, errs.InvalidArgument), "remember without path: %v", err)

	_, err = Load(context.Background(), Request{Root: dir, Environment: "local", Path: filepath.Join(dir, "missing.env")})
	assert.True(t, errs.Is(err, errs.InvalidArgument), "missing path: %v", err)

	bad := writeFile(t, filepath.Join(dir, "bad.json"), "{nope")
	_, err = Load(context.Background(), Request{Root: dir, Environment: "local", Path: bad})
	assert.True(t, errs.Is(err, errs.MalformedJSON), "malformed json: %v", err)
}

func TestRememberModes(t *testing.T) {
	modes := []string{constants.LinkModeAuto, constants.LinkModeSymlink, constants.LinkModePointer}

	for _, mode := range modes {
		t.Run(mode, func(t *testing.T) {
			if mode == constants.LinkModeSymlink && runtime.GOOS == "windows" {
				t.Skip("symlinks need privileges on windows")
			}
			ctx := context.Background()
			dir := t.TempDir()
			first := writeFile(t, filepath.Join(dir, "a.env"), "A=1\n")
			second := writeFile(t, filepath.Join(dir, "b.env"), "A=2\n")

			_, err := Load(ctx, Request{Root: dir, Environment: "staging", Path: first, Remember: true, LinkMode: mode})
			require.NoError(t, err)

			res, err := Load(ctx, Request{Root: dir, Environment: "staging", LinkMode: mode})
			require.NoError(t, err)
			assert.Equal(t, "1", res.Values["A"])

			// Remembering again replaces the previous link.
			_, err = Load(ctx, Request{Root: dir, Environment: "staging", Path: second, Remember: true, LinkMode: mode})
			require.NoError(t, err)

			res, err = Load(ctx, Request{Root: dir, Environment: "staging", LinkMode: mode})
			require.NoError(t, err)
			assert.Equal(t, "2", res.Values["A"])
			assert.Equal(t, second, res.Path)

			// Other environments are unaffected.
			res, err = Load(ctx, Request{Root: dir, Environment: "production", LinkMode: mode})
			require.NoError(t, err)
			assert.Empty(t, res.Values)
		})
	}
}

func TestPointerFileIsReadable(t *testing.T) {
	dir := t.TempDir()
	link := paths.DefaultsLinkPath(dir, "local")
	writeFile(t, filepath.Join(dir, "config", "local.env"), "X=from-pointer\n")
	writeFile(t, link, "config/local.env\n")

	res, err := Load(context.Background(), Request{Root: dir, Environment: "local"})
	require.NoError(t, err)
	assert.Equal(t, "from-pointer", res.Values["X"])
}

func TestLinkFileHoldingValues(t *testing.T) {
	dir := t.TempDir()
	link := writeFile(t, paths.DefaultsLinkPath(dir, "local"), "X=inline\n")

	res, err := Load(context.Background(), Request{Root: dir, Environment: "local"})
	require.NoError(t, err)
	assert.Equal(t, "inline", res.Values["X"])
	assert.Equal(t, link, res.Path)
}

func TestDanglingPointerIsIgnored(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, paths.DefaultsLinkPath(dir, "local"), "/nowhere/at/all.env\n")

	res, err := Load(context.Background(), Request{Root: dir, Environment: "local"})
	require.NoError(t, err)
	assert.Empty(t, res.Values)
}

func TestDryRunDoesNotRemember(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, filepath.Join(dir, "a.env"), "A=1\n")

	res, err := Load(context.Background(), Request{Root: dir, Environment: "local", Path: file, Remember: true, DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, "1", res.Values["A"])

	_, statErr := os.Lstat(paths.DefaultsLinkPath(dir, "local"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestParsePointer(t *testing.T) {
	tests := []struct {
		content string
		want    string
		ok      bool
	}{
		{"/etc/app/prod.env\n", "/etc/app/prod.env", true},
		{"  relative.env  ", "relative.env", true},
		{"A=1", "", false},
		{"a.env\nb.env", "", false},
		{"# comment", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := parsePointer(tt.content)
		assert.Equal(t, tt.ok, ok, "parsePointer(%q)", tt.content)
		assert.Equal(t, tt.want, got, "parsePointer(%q)", tt.content)
	}
}

func TestRememberLinkItself(t *testing.T) {
	modes := []string{constants.LinkModeAuto, constants.LinkModeSymlink, constants.LinkModePointer}

	for _, mode := range modes {
		t.Run(mode, func(t *testing.T) {
			ctx := context.Background()
			dir := t.TempDir()
			link := writeFile(t, paths.DefaultsLinkPath(dir, "local"), "A=fromdefaults\n")

			res, err := Load(ctx, Request{Root: dir, Environment: "local", Path: link, Remember: true, LinkMode: mode})
			require.NoError(t, err)
			assert.Equal(t, "fromdefaults", res.Values["A"])

			info, err := os.Lstat(link)
			require.NoError(t, err)
			assert.True(t, info.Mode().IsRegular(), "link file was replaced: %v", info.Mode())
			data, err := os.ReadFile(link)
			require.NoError(t, err)
			assert.Equal(t, "A=fromdefaults\n", string(data))

			res, err = Load(ctx, Request{Root: dir, Environment: "local", LinkMode: mode})
			require.NoError(t, err)
			assert.Equal(t, "fromdefaults", res.Values["A"])
		})
	}
}

func TestRememberSameTargetTwice(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	file := writeFile(t, filepath.Join(dir, "a.env"), "A=1\n")

	for i := 0; i < 2; i++ {
		_, err := Load(ctx, Request{Root: dir, Environment: "testing", Path: file, Remember: true, LinkMode: constants.LinkModeAuto})
		require.NoError(t, err)
	}

	res, err := Load(ctx, Request{Root: dir, Environment: "testing"})
	require.NoError(t, err)
	assert.Equal(t, "1", res.Values["A"])
	assert.Equal(t, file, res.Path)
}

func TestRememberKeepsLinkHoldingValues(t *testing.T) {
	dir := t.TempDir()
	link := writeFile(t, paths.DefaultsLinkPath(dir, "local"), "X=inline\n")
	other := writeFile(t, filepath.Join(dir, "other.env"), "X=other\n")

	_, err := Load(context.Background(), Request{Root: dir, Environment: "local", Path: other, Remember: true, LinkMode: constants.LinkModePointer})
	assert.True(t, errs.Is(err, errs.InvalidArgument), "replacing a values file: %v", err)

	data, err := os.ReadFile(link)
	require.NoError(t, err)
	assert.Equal(t, "X=inline\n", string(data))
}

func TestRememberReplacesEmptyLinkFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, paths.DefaultsLinkPath(dir, "local"), "")
	file := writeFile(t, filepath.Join(dir, "a.env"), "A=1\n")

	_, err := Load(context.Background(), Request{Root: dir, Environment: "local", Path: file, Remember: true, LinkMode: constants.LinkModePointer})
	require.NoError(t, err)

	res, err := Load(context.Background(), Request{Root: dir, Environment: "local"})
	require.NoError(t, err)
	assert.Equal(t, "1", res.Values["A"])
}
