package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/keep-cli/keep/internal/vault"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotEmpty(t, cfg.VaultPath)
	assert.Equal(t, "vault.json", filepath.Base(cfg.VaultPath))
	assert.Equal(t, vault.DefaultIterations, cfg.KDF.Iterations)
	assert.Equal(t, 30, cfg.ClipboardTTL)
	assert.True(t, cfg.ConfirmDestructive)
	assert.Equal(t, "organizer.log", cfg.Organizer.LogFile)
	assert.False(t, cfg.Organizer.IncludeHidden)
}

func TestLoadConfigEmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigCreatesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, err := LoadConfig(path)
	assert.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	// The file now exists with owner-only permissions and loads back equal
	fi, err := os.Stat(path)
	assert.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())

	again, err := LoadConfig(path)
	assert.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestLoadConfigPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("vault_path: /tmp/custom/vault.json\nclipboard_ttl: 5\n")
	assert.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := LoadConfig(path)
	assert.NoError(t, err)

	// Overridden keys take effect, omitted keys keep defaults
	assert.Equal(t, "/tmp/custom/vault.json", cfg.VaultPath)
	assert.Equal(t, 5, cfg.ClipboardTTL)
	assert.Equal(t, vault.DefaultIterations, cfg.KDF.Iterations)
	assert.True(t, cfg.ConfirmDestructive)
}

func TestLoadConfigOrganizerCategories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`organizer:
  include_hidden: true
  categories:
    ".foo": Foo_Files
    ".bar": Bar_Files
`)
	assert.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := LoadConfig(path)
	assert.NoError(t, err)
	assert.True(t, cfg.Organizer.IncludeHidden)
	assert.Equal(t, "Foo_Files", cfg.Organizer.Categories[".foo"])
	assert.Equal(t, "Bar_Files", cfg.Organizer.Categories[".bar"])
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	assert.NoError(t, os.WriteFile(path, []byte("vault_path: [not: valid"), 0o600))

	_, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "dir", "config.yaml")

	cfg := DefaultConfig()
	cfg.VaultPath = "/custom/path/vault.json"
	cfg.KDF.Iterations = 600_000

	assert.NoError(t, SaveConfig(cfg, path))

	loaded, err := LoadConfig(path)
	assert.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
