package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/michaeldyrynda/fsshell/internal/privileged"
)

// isolate points the search paths at empty temp dirs.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir := t.TempDir()
	chdir(t, dir)
	return dir
}

func TestLoad(t *testing.T) {
	t.Run("defaults without a config file", func(t *testing.T) {
		isolate(t)

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("reads fsshell.yaml from the working directory", func(t *testing.T) {
		dir := isolate(t)
		content := `log_level: debug
temp_prefix: watch-
msize:
  delay: 1s
privileged:
  sudo: doas
  on_failure: FAIL
`
		require.NoError(t, os.WriteFile(filepath.Join(dir, "fsshell.yaml"), []byte(content), 0644))

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "watch-", cfg.TempPrefix)
		assert.Equal(t, time.Second, cfg.Msize.Delay)
		assert.Equal(t, "doas", cfg.Privileged.Sudo)
		assert.Equal(t, privileged.PolicyFail, cfg.Privileged.OnFailure)
	})

	t.Run("reads the global config dir", func(t *testing.T) {
		isolate(t)
		global, err := GetGlobalConfigDir()
		require.NoError(t, err)
		require.NoError(t, os.MkdirAll(global, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(global, "fsshell.yaml"), []byte("temp_prefix: global-\n"), 0644))

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "global-", cfg.TempPrefix)
		assert.Equal(t, DefaultMsizeDelay, cfg.Msize.Delay, "unset keys keep defaults")
	})

	t.Run("environment overrides the file", func(t *testing.T) {
		dir := isolate(t)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "fsshell.yaml"), []byte("msize:\n  delay: 1s\n"), 0644))
		t.Setenv("FSSHELL_MSIZE_DELAY", "50ms")
		t.Setenv("FSSHELL_PRIVILEGED_ON_FAILURE", "fail")

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, 50*time.Millisecond, cfg.Msize.Delay)
		assert.Equal(t, privileged.PolicyFail, cfg.Privileged.OnFailure)
	})

	t.Run("explicit file must exist", func(t *testing.T) {
		dir := isolate(t)

		_, err := Load(filepath.Join(dir, "missing.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("rejects an unknown failure policy", func(t *testing.T) {
		dir := isolate(t)
		file := filepath.Join(dir, "custom.yaml")
		require.NoError(t, os.WriteFile(file, []byte("privileged:\n  on_failure: shrug\n"), 0644))

		_, err := Load(file)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "shrug")
	})
}

func TestSave(t *testing.T) {
	t.Run("creates a config that loads back", func(t *testing.T) {
		isolate(t)
		dir := t.TempDir()
		cfg := Default()
		cfg.Msize.Delay = 750 * time.Millisecond
		cfg.Privileged.OnFailure = privileged.PolicyFail

		path, err := Save(dir, cfg, false)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "fsshell.yaml"), path)

		loaded, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, cfg, loaded)
	})

	t.Run("refuses to overwrite without force", func(t *testing.T) {
		dir := t.TempDir()
		_, err := Save(dir, Default(), false)
		require.NoError(t, err)

		_, err = Save(dir, Default(), false)
		assert.ErrorIs(t, err, ErrConfigExists)
	})

	t.Run("preserves unknown keys when forced", func(t *testing.T) {
		dir := t.TempDir()
		initial := `custom_field: custom_value
privileged:
  sudo: doas
  extra: kept
`
		require.NoError(t, os.WriteFile(filepath.Join(dir, "fsshell.yaml"), []byte(initial), 0644))

		_, err := Save(dir, Default(), true)
		require.NoError(t, err)

		content, err := os.ReadFile(filepath.Join(dir, "fsshell.yaml"))
		require.NoError(t, err)

		var raw map[string]interface{}
		require.NoError(t, yaml.Unmarshal(content, &raw))
		assert.Equal(t, "custom_value", raw["custom_field"])

		priv, ok := raw["privileged"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "kept", priv["extra"])
		assert.Equal(t, "sudo", priv["sudo"])
		assert.Equal(t, "warn", priv["on_failure"])

		msize, ok := raw["msize"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "400ms", msize["delay"])
	})
}
