package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"TASKFLOW_BACKEND", "TASKFLOW_SLOT_KEY", "TASKFLOW_THEME",
		"TASKFLOW_LOG_LEVEL", "TASKFLOW_LOG_FILE", "TASKFLOW_ROLLOVER_AT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("TASKFLOW_DATA_DIR", dir)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, BackendJSON, cfg.Backend)
	assert.Equal(t, DefaultSlotKey, cfg.SlotKey)
	assert.Equal(t, "classic", cfg.Theme)
	assert.Equal(t, filepath.Join(dir, "taskflow.log"), cfg.LogPath())
	assert.Equal(t, filepath.Join(dir, "planner.db"), cfg.DBPath())
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("TASKFLOW_DATA_DIR", dir)
	yml := "backend: SQLite\ntheme: neon\nlog_level: debug\nrollover_at: \"04:30\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yml), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, "neon", cfg.Theme)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "04:30", cfg.RolloverAt)

	t.Setenv("TASKFLOW_THEME", "mono")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "mono", cfg.Theme)
}

func TestLoad_ExplicitPathMustExist(t *testing.T) {
	clearEnv(t)
	t.Setenv("TASKFLOW_DATA_DIR", t.TempDir())
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read config")
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"yaml":     "backend: [",
		"backend":  "backend: postgres",
		"theme":    "theme: rainbow",
		"level":    "log_level: loud",
		"rollover": "rollover_at: 25:00",
		"slot key": "slot_key: \"\"",
	}
	for name, yml := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			dir := t.TempDir()
			t.Setenv("TASKFLOW_DATA_DIR", dir)
			path := filepath.Join(dir, "custom.yaml")
			require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestParseClock(t *testing.T) {
	h, m, err := ParseClock("07:05")
	require.NoError(t, err)
	assert.Equal(t, 7, h)
	assert.Equal(t, 5, m)

	for _, bad := range []string{"7", "24:00", "10:60", "aa:bb", ""} {
		_, _, err := ParseClock(bad)
		assert.Error(t, err, bad)
	}
}
