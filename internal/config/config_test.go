package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultAndEnvOverrides(t *testing.T) {
	for _, k := range []string{EnvStore, EnvLogLevel, EnvLogFormat, EnvLogFile, EnvTheme, EnvColor} {
		t.Setenv(k, "")
	}
	c := Default()
	assert.Equal(t, "file:shelf.json", c.Store)
	assert.Equal(t, "warn", c.LogLevel)
	assert.Equal(t, "classic", c.Theme)
	assert.Equal(t, "auto", c.Color)

	t.Setenv(EnvStore, "sqlite:x.db")
	t.Setenv(EnvTheme, "mono")
	c = Default()
	assert.Equal(t, "sqlite:x.db", c.Store)
	assert.Equal(t, "mono", c.Theme)
}

func TestCredentialsLifecycle(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvPassword, "")

	c, err := GetCredentials()
	require.NoError(t, err)
	assert.Nil(t, c)

	assert.Error(t, SetPassword("   "))
	require.NoError(t, SetPassword(" hunter2 "))

	fi, err := os.Stat(filepath.Join(home, ".shelf", credFileName))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())

	pw, err := Password()
	require.NoError(t, err)
	assert.Equal(t, "hunter2", pw)

	t.Setenv(EnvPassword, "from-env")
	c, err = GetCredentials()
	require.NoError(t, err)
	assert.Equal(t, "env", c.Source)
	assert.Equal(t, "from-env", c.Password)

	t.Setenv(EnvPassword, "")
	require.NoError(t, DeleteCredentials())
	require.NoError(t, DeleteCredentials())
	pw, err = Password()
	require.NoError(t, err)
	assert.Empty(t, pw)
}
