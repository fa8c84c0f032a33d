package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/jarreloc/pkg/errors"
	"github.com/arthur-debert/jarreloc/pkg/remap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the XDG config home at an empty temp dir
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_CONFIG_HOME", dir)
	xdg.Reload()
	return dir
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const tomlConfig = `
prune_sources = true

[[relocations]]
pattern = "com.google.common"
replacement = "com.example.shaded.guava"
excludes = ["com.google.common.annotations.**"]

[[relocations]]
pattern = "org/slf4j"
replacement = "com/example/shaded/slf4j"

[log]
file = "/tmp/jarreloc-test.log"
`

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)

	assert.Empty(t, cfg.Relocations)
	assert.False(t, cfg.PruneSources)
	assert.False(t, cfg.KeepFailedTemp)
	assert.False(t, cfg.DryRun)
	assert.Equal(t, "", cfg.Log.File)
}

func TestLoad_TomlFile(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, filepath.Join(dir, "project", "jarreloc.toml"), tomlConfig)

	cfg, err := Load(LoadOptions{File: path})
	require.NoError(t, err)

	require.Len(t, cfg.Relocations, 2)
	assert.Equal(t, "com.google.common", cfg.Relocations[0].Pattern)
	assert.Equal(t, "com.example.shaded.guava", cfg.Relocations[0].Replacement)
	assert.Equal(t, []string{"com.google.common.annotations.**"}, cfg.Relocations[0].Excludes)
	assert.Equal(t, "org/slf4j", cfg.Relocations[1].Pattern)
	assert.True(t, cfg.PruneSources)
	assert.Equal(t, "/tmp/jarreloc-test.log", cfg.Log.File)
}

func TestLoad_YamlFile(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, filepath.Join(dir, "jarreloc.yaml"), `
keep_failed_temp: true
relocations:
  - pattern: com.old
    replacement: com.new
    includes:
      - com.old.api.*
`)

	cfg, err := Load(LoadOptions{File: path})
	require.NoError(t, err)

	assert.True(t, cfg.KeepFailedTemp)
	require.Len(t, cfg.Relocations, 1)
	assert.Equal(t, "com.old", cfg.Relocations[0].Pattern)
	assert.Equal(t, []string{"com.old.api.*"}, cfg.Relocations[0].Includes)
}

func TestLoad_UserConfig(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "jarreloc", "config.toml"), "dry_run = true\n")

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)
	assert.True(t, cfg.DryRun)

	cfg, err = Load(LoadOptions{SkipUserConfig: true})
	require.NoError(t, err)
	assert.False(t, cfg.DryRun)
}

func TestLoad_Precedence(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "jarreloc", "config.toml"), "prune_sources = true\nkeep_failed_temp = true\n")
	path := writeFile(t, filepath.Join(dir, "explicit.toml"), "prune_sources = false\n")
	t.Setenv("JARRELOC_KEEP_FAILED_TEMP", "false")
	t.Setenv("JARRELOC_LOG__NO_COLOR", "true")

	cfg, err := Load(LoadOptions{
		File:      path,
		Overrides: map[string]interface{}{"dry_run": true, "log.file": "/var/log/jarreloc.log"},
	})
	require.NoError(t, err)

	assert.False(t, cfg.PruneSources, "explicit file overrides user config")
	assert.False(t, cfg.KeepFailedTemp, "env overrides files")
	assert.True(t, cfg.Log.NoColor, "double underscore nests")
	assert.True(t, cfg.DryRun, "overrides come last")
	assert.Equal(t, "/var/log/jarreloc.log", cfg.Log.File)
}

func TestLoad_Errors(t *testing.T) {
	dir := isolate(t)

	tests := []struct {
		name string
		file string
		code errors.ErrorCode
	}{
		{"missing_file", filepath.Join(dir, "missing.toml"), errors.ErrConfigLoad},
		{"unsupported_format", writeFile(t, filepath.Join(dir, "config.ini"), "x=1"), errors.ErrConfigLoad},
		{"bad_toml", writeFile(t, filepath.Join(dir, "bad.toml"), "prune_sources = = true"), errors.ErrConfigParse},
		{
			"empty_pattern",
			writeFile(t, filepath.Join(dir, "empty.toml"), "[[relocations]]\npattern = \"\"\nreplacement = \"x\"\n"),
			errors.ErrConfigValid,
		},
		{
			"bad_glob",
			writeFile(t, filepath.Join(dir, "glob.toml"), "[[relocations]]\npattern = \"a\"\nreplacement = \"b\"\nincludes = [\"a/[\"]\n"),
			errors.ErrConfigValid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(LoadOptions{File: tt.file})
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
		})
	}
}

func TestSampleConfig_Relocations(t *testing.T) {
	cfg := SampleConfig()
	require.NoError(t, cfg.Validate())

	r, err := remap.New(cfg.Relocations...)
	require.NoError(t, err)
	assert.Equal(t, "com/example/shaded/guava/base/Strings", r.Map("com/google/common/base/Strings"))
	assert.Equal(t, "com/google/common/annotations/Beta", r.Map("com/google/common/annotations/Beta"))
}

func TestDefaultAndAccess(t *testing.T) {
	cfg := Default()
	assert.False(t, cfg.PruneSources)
	assert.Empty(t, cfg.Relocations)

	Initialize(nil)
	assert.Equal(t, cfg, Get())

	Initialize(&Config{Log: LogConfig{File: "x.log"}})
	assert.Equal(t, "x.log", GetLogging().File)
	t.Cleanup(func() { Initialize(nil) })
}
