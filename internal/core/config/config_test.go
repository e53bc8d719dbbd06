package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points Home and the CWD at fresh temp dirs so no real config leaks in.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("QCALC_HOME", t.TempDir())
	dir := t.TempDir()
	chdir(t, dir)
	return dir
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Report.Format)
	assert.Equal(t, 1, cfg.Run.Count)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, 100, cfg.History.Keep)

	re, err := cfg.FilterRegexp()
	require.NoError(t, err)
	assert.Nil(t, re)
}

func TestLoadWithoutFilesMatchesDefault(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestEnvOverridesKeyWithEmptyDefault(t *testing.T) {
	isolate(t)
	t.Setenv("QCALC_LOG_FILE", "/tmp/qc.log")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/qc.log", cfg.Log.File)
}

func TestLoadDiscoversProjectFileUpwards(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, ProjectFile), "run:\n  count: 3\n  filter: \"^run\"\n")

	nested := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))
	chdir(t, nested)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Run.Count)

	re, err := cfg.FilterRegexp()
	require.NoError(t, err)
	require.NotNil(t, re)
	assert.True(t, re.MatchString("run method"))
	assert.False(t, re.MatchString("initialization"))
}

func TestEnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	writeFile(t, path, "report:\n  format: text\n")
	t.Setenv("QCALC_REPORT_FORMAT", "json")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Report.Format)
}

func TestDotEnvFeedsEnvironment(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, ".env"), "QCALC_LOG_LEVEL=debug\n")
	t.Cleanup(func() { os.Unsetenv("QCALC_LOG_LEVEL") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestExplicitPathMustExist(t *testing.T) {
	dir := isolate(t)
	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestValidation(t *testing.T) {
	cases := map[string]string{
		"zero count":    "run:\n  count: 0\n",
		"bad format":    "report:\n  format: xml\n",
		"bad filter":    "run:\n  filter: \"(\"\n",
		"negative keep": "history:\n  keep: -1\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			dir := isolate(t)
			path := filepath.Join(dir, ProjectFile)
			writeFile(t, path, body)

			_, err := Load(path)
			assert.ErrorContains(t, err, "config validation")
		})
	}
}

func TestTemplateIsValidConfig(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, ProjectFile)
	writeFile(t, path, DefaultConfigTemplate)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestHomeHonoursOverride(t *testing.T) {
	t.Setenv("QCALC_HOME", "/tmp/qc-home")
	assert.Equal(t, "/tmp/qc-home", Home())
}
