package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromMissingFileReturnsNilWithoutError(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestLoadFromParsesProjectFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "workspace: /srv/models\ninclude:\n  - \"**/*.sysml\"\nexclude:\n  - \"**/build/**\"\ncache_path: /srv/cache.db\nlog_level: debug\nlog_format: json\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "/srv/models", cfg.Workspace)
	assert.Equal(t, []string{"**/*.sysml"}, cfg.Include)
	assert.Equal(t, []string{"**/build/**"}, cfg.Exclude)
	assert.Equal(t, "/srv/cache.db", cfg.CachePath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadFromRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workspace: [unterminated"), 0o644))

	_, err := LoadFrom(path)
	assert.Error(t, err)
}

func TestResolveStringFlagWins(t *testing.T) {
	assert.Equal(t, "flag", ResolveString("flag", "config"))
	assert.Equal(t, "config", ResolveString("", "config"))
	assert.Equal(t, "", ResolveString("", ""))
}

func TestResolveStringsFlagWinsOutright(t *testing.T) {
	flag := []string{"a"}
	cfg := []string{"b", "c"}
	assert.Equal(t, flag, ResolveStrings(flag, cfg))
	assert.Equal(t, cfg, ResolveStrings(nil, cfg))
	assert.Nil(t, ResolveStrings(nil, nil))
}
