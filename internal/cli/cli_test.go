package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/shelf/internal/config"
	"github.com/idilsaglam/shelf/internal/log"
	"github.com/idilsaglam/shelf/internal/model"
	"github.com/idilsaglam/shelf/internal/persist"
	"github.com/idilsaglam/shelf/internal/store"
)

type result struct {
	code           int
	stdout, stderr string
}

func run(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var out, errOut bytes.Buffer
	code := execute(append([]string{"--color", "never"}, args...), strings.NewReader(stdin), &out, &errOut)
	return result{code: code, stdout: out.String(), stderr: errOut.String()}
}

func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv(config.EnvPassword, "")
	return "file:" + filepath.Join(t.TempDir(), "shelf.json")
}

func stored(t *testing.T, dsn string) []model.Item {
	t.Helper()
	kv, err := store.Open(context.Background(), dsn, store.Options{})
	require.NoError(t, err)
	defer kv.Close()
	items, err := persist.New(kv, zerolog.Nop()).Load(context.Background())
	require.NoError(t, err)
	return items
}

func TestAddListDoneRemove(t *testing.T) {
	dsn := isolate(t)

	r := run(t, "", "--store", dsn, "add", "Buy", "milk")
	require.Equal(t, ExitOK, r.code, r.stderr)
	assert.Contains(t, r.stdout, "added Buy milk")

	r = run(t, "", "--store", dsn, "add", "Eggs")
	require.Equal(t, ExitOK, r.code, r.stderr)

	items := stored(t, dsn)
	require.Len(t, items, 2)
	assert.Equal(t, "Buy milk", items[0].Name)
	assert.Equal(t, "Eggs", items[1].Name)
	id := strconv.FormatInt(items[0].ID, 10)

	r = run(t, "", "--store", dsn, "done", id)
	require.Equal(t, ExitOK, r.code, r.stderr)
	assert.Contains(t, r.stdout, "Buy milk marked done")
	assert.True(t, stored(t, dsn)[0].Complete)

	r = run(t, "", "--store", dsn, "ls")
	require.Equal(t, ExitOK, r.code, r.stderr)
	assert.Contains(t, r.stdout, "Buy milk")
	assert.Contains(t, r.stdout, id)
	assert.Contains(t, r.stdout, "50%")

	r = run(t, "", "--store", dsn, "ls", "--group")
	require.Equal(t, ExitOK, r.code, r.stderr)
	assert.Contains(t, r.stdout, "Pending")
	assert.Contains(t, r.stdout, "Done")

	r = run(t, "", "--store", dsn, "rm", id)
	require.Equal(t, ExitOK, r.code, r.stderr)
	items = stored(t, dsn)
	require.Len(t, items, 1)
	assert.Equal(t, "Eggs", items[0].Name)
}

func TestUsageErrors(t *testing.T) {
	dsn := isolate(t)

	cases := []struct {
		name string
		args []string
	}{
		{"blank name", []string{"add", "   "}},
		{"no name", []string{"add"}},
		{"bad id", []string{"done", "abc"}},
		{"unknown id", []string{"rm", "42"}},
		{"toggle unknown id", []string{"done", "42"}},
		{"unknown command", []string{"frob"}},
		{"unknown flag", []string{"ls", "--nope"}},
		{"auth without action", []string{"auth"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := run(t, "", append([]string{"--store", dsn}, tc.args...)...)
			assert.Equal(t, ExitUsage, r.code)
			assert.Contains(t, r.stderr, "✖")
		})
	}
	assert.Empty(t, stored(t, dsn), "failed commands leave the list untouched")
}

func TestNotFoundHints(t *testing.T) {
	dsn := isolate(t)
	r := run(t, "", "--store", dsn, "rm", "7")
	assert.Equal(t, ExitUsage, r.code)
	assert.Contains(t, r.stderr, "shelf ls")
}

func TestUnknownCommandNamesIt(t *testing.T) {
	isolate(t)
	r := run(t, "", "frob")
	assert.Equal(t, ExitUsage, r.code)
	assert.Contains(t, r.stderr, `unknown command "frob"`)
}

func TestStoreOpenFailure(t *testing.T) {
	isolate(t)
	r := run(t, "", "--store", "ftp://nowhere", "ls")
	assert.Equal(t, ExitError, r.code)
	assert.Contains(t, r.stderr, "open store")
}

func TestMalformedStoreStartsEmpty(t *testing.T) {
	dsn := isolate(t)
	path := strings.TrimPrefix(dsn, "file:")
	require.NoError(t, os.WriteFile(path, []byte(`{"items":"not json"}`), 0o644))

	r := run(t, "", "--store", dsn, "ls")
	require.Equal(t, ExitOK, r.code, r.stderr)
	assert.Contains(t, r.stdout, "(none)")

	r = run(t, "", "--store", dsn, "add", "Bread")
	require.Equal(t, ExitOK, r.code, r.stderr)
	require.Len(t, stored(t, dsn), 1)
}

func TestMalformedStoreFileIsRecovered(t *testing.T) {
	dsn := isolate(t)
	path := strings.TrimPrefix(dsn, "file:")
	// Hand-edited: the value is a raw array instead of an encoded string.
	require.NoError(t, os.WriteFile(path, []byte(`{"items":[{"id":1,"name":"Milk","complete":false}]}`), 0o644))

	r := run(t, "", "--store", dsn, "ls")
	require.Equal(t, ExitOK, r.code, r.stderr)
	assert.Contains(t, r.stdout, "(none)")

	r = run(t, "", "--store", dsn, "add", "Bread")
	require.Equal(t, ExitOK, r.code, r.stderr)
	items := stored(t, dsn)
	require.Len(t, items, 1)
	assert.Equal(t, "Bread", items[0].Name)
}

func TestMemoryStore(t *testing.T) {
	isolate(t)
	r := run(t, "", "--store", "memory:", "add", "Tea")
	require.Equal(t, ExitOK, r.code, r.stderr)
	assert.Contains(t, r.stdout, "added Tea")
}

func TestAuthLifecycle(t *testing.T) {
	isolate(t)

	r := run(t, "", "auth", "status")
	require.Equal(t, ExitOK, r.code, r.stderr)
	assert.Contains(t, r.stdout, "no password saved")

	r = run(t, "s3cret\n", "auth", "login")
	require.Equal(t, ExitOK, r.code, r.stderr)
	assert.Contains(t, r.stdout, "password saved")
	pw, err := config.Password()
	require.NoError(t, err)
	assert.Equal(t, "s3cret", pw)

	r = run(t, "", "auth", "status")
	assert.Contains(t, r.stdout, "source: file")

	t.Setenv(config.EnvPassword, "fromenv")
	r = run(t, "", "auth", "logout")
	require.Equal(t, ExitOK, r.code)
	assert.Contains(t, r.stdout, "nothing to delete")

	t.Setenv(config.EnvPassword, "")
	r = run(t, "", "auth", "logout")
	require.Equal(t, ExitOK, r.code, r.stderr)
	pw, err = config.Password()
	require.NoError(t, err)
	assert.Empty(t, pw)
}

func TestAuthLoginEmpty(t *testing.T) {
	isolate(t)
	r := run(t, "", "auth", "login")
	assert.Equal(t, ExitError, r.code)
}

func TestLoadGalleries(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.json")
	b := filepath.Join(dir, "b.json")
	require.NoError(t, os.WriteFile(a, []byte(`{"name":"A","images":[{"src":"x.png","title":"X"}]}`), 0o644))
	require.NoError(t, os.WriteFile(b, []byte(`{"images":[{"src":"https://example.com/y.jpg"},{"src":"z.png"}]}`), 0o644))

	gs, overlay, err := loadGalleries([]string{a, b})
	require.NoError(t, err)
	require.Len(t, gs, 2)
	assert.Equal(t, "A", gs[0].Name)
	assert.Equal(t, "b", gs[1].Name)
	assert.Equal(t, filepath.Join(dir, "x.png"), gs[0].Image(0).Src)

	gs[1].Show(1)
	assert.True(t, overlay.IsOpen())
	assert.Equal(t, filepath.Join(dir, "z.png"), overlay.Src)

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte(`{"images":[]}`), 0o644))
	_, _, err = loadGalleries([]string{a, empty})
	assert.Error(t, err)
}

func TestTUILogFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "shelf.log")
	t.Cleanup(func() { log.Setup(log.Options{Level: "off"}) })

	closeLog := tuiLogger(&App{Config: config.Config{LogFile: p, LogLevel: "info"}})
	log.Warn().Msg("inside the tui")
	closeLog()

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Contains(t, string(b), "tui session started")
	assert.Contains(t, string(b), "inside the tui")

	noop := tuiLogger(&App{Config: config.Config{}})
	assert.NotPanics(t, noop)
}

func TestGalleryFailureReleasesLogFile(t *testing.T) {
	isolate(t)
	p := filepath.Join(t.TempDir(), "shelf.log")
	t.Cleanup(func() { log.Setup(log.Options{Level: "off"}) })

	r := run(t, "", "--log-file", p, "--log-level", "info", "gallery", filepath.Join(t.TempDir(), "missing.json"))
	assert.Equal(t, ExitError, r.code)
	assert.Contains(t, r.stderr, "read manifest")

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Contains(t, string(b), "tui session started")
	require.NoError(t, os.Remove(p))
}

func TestGalleryLogLinesNameTheGalleryOnce(t *testing.T) {
	dir := t.TempDir()
	m := filepath.Join(dir, "trip.json")
	require.NoError(t, os.WriteFile(m, []byte(`{"name":"Trip","images":[{"src":"a.png"}]}`), 0o644))

	var buf bytes.Buffer
	log.Setup(log.Options{Level: "info", Format: "json", Out: &buf})
	t.Cleanup(func() { log.Setup(log.Options{Level: "off"}) })

	gs, _, err := loadGalleries([]string{m})
	require.NoError(t, err)
	gs[0].Show(5)

	line := buf.String()
	assert.Contains(t, line, "no image to show")
	assert.Equal(t, 1, strings.Count(line, `"gallery":"Trip"`))
}

func TestGalleryRequiresManifest(t *testing.T) {
	isolate(t)
	r := run(t, "", "gallery")
	assert.Equal(t, ExitUsage, r.code)
}
