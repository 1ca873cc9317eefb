package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveTheme_CreatesNewFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), ".mlv.yaml")

	require.NoError(t, SaveTheme(configPath, "dracula"))

	cfg := loadConfigFromYAML(t, readFile(t, configPath))
	require.Equal(t, "dracula", cfg.Highlight.Theme)
}

func TestSaveTheme_PreservesOtherConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), ".mlv.yaml")

	initial := `# my settings
archive:
  path: /srv/mail/lkml.mbox # the big one
highlight:
  theme: monokai # changed with t
  format: terminal
ui:
  collapse_depth: 3
`
	require.NoError(t, os.WriteFile(configPath, []byte(initial), 0o600))

	require.NoError(t, SaveTheme(configPath, "github"))

	content := readFile(t, configPath)
	assert.Contains(t, content, "# my settings")
	assert.Contains(t, content, "# the big one")
	assert.Contains(t, content, "# changed with t")
	assert.Contains(t, content, "collapse_depth: 3")
	assert.NotContains(t, content, "monokai")

	cfg := loadConfigFromYAML(t, content)
	require.Equal(t, "github", cfg.Highlight.Theme)
	require.Equal(t, "terminal", cfg.Highlight.Format)
	require.Equal(t, "/srv/mail/lkml.mbox", cfg.Archive.Path)
	require.Equal(t, 3, cfg.UI.CollapseDepth)
}

func TestSaveTheme_AddsMissingSection(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), ".mlv.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("ui:\n  wrap: false\n"), 0o600))

	require.NoError(t, SaveTheme(configPath, "nord"))

	cfg := loadConfigFromYAML(t, readFile(t, configPath))
	require.Equal(t, "nord", cfg.Highlight.Theme)
	require.False(t, cfg.UI.Wrap)
}

func TestSaveTheme_FillsEmptySection(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), ".mlv.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("highlight:\n"), 0o600))

	require.NoError(t, SaveTheme(configPath, "vim"))

	cfg := loadConfigFromYAML(t, readFile(t, configPath))
	require.Equal(t, "vim", cfg.Highlight.Theme)
}

func TestSaveTheme_DefaultTemplateRoundtrip(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefaultConfig(configPath))

	require.NoError(t, SaveTheme(configPath, "solarized-dark"))

	cfg := loadConfigFromYAML(t, readFile(t, configPath))
	require.Equal(t, "solarized-dark", cfg.Highlight.Theme)
	require.Equal(t, Defaults().Diff, cfg.Diff)
	assert.Contains(t, readFile(t, configPath), "# UI settings")
}

func TestSaveValue_RejectsNonMapping(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), ".mlv.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("highlight: monokai\n"), 0o600))

	err := SaveValue(configPath, "highlight.theme", "vim")
	require.Error(t, err)
	require.Contains(t, err.Error(), "not a mapping")
}

func TestSaveValue_InvalidKeyPath(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), ".mlv.yaml")

	require.Error(t, SaveValue(configPath, "highlight..theme", "vim"))
	require.Error(t, SaveValue(configPath, "", "vim"))
}

func TestSaveValue_InvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), ".mlv.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("highlight: [unclosed\n"), 0o600))

	err := SaveValue(configPath, "highlight.theme", "vim")
	require.Error(t, err)
	require.Contains(t, err.Error(), "parsing config")
}

func TestSaveValue_NoTempFilesLeft(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ".mlv.yaml")

	require.NoError(t, SaveValue(configPath, "diff.parser", "lenient"))
	require.NoError(t, SaveValue(configPath, "diff.parser", "gitdiff"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, ".mlv.yaml", entries[0].Name())
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
