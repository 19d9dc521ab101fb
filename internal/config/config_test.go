package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-gallery-collective/galup/pkg/desc"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad_JSON(t *testing.T) {
	path := writeConfig(t, `{"aryion": "UserAryion", "fa": "UserFA", "weasyl": "User Weasyl"}`)

	cfg, err := Load(path, desc.Builtin())
	require.NoError(t, err)

	assert.Equal(t, desc.Users{
		desc.Aryion:      "UserAryion",
		desc.Furaffinity: "UserFA",
		desc.Weasyl:      "User Weasyl",
	}, cfg.Users)
	assert.Empty(t, cfg.Warnings)
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, "eka: UserAryion\ntwitter: '@lorem'\n")

	cfg, err := Load(path, desc.Builtin())
	require.NoError(t, err)

	assert.Equal(t, desc.Users{
		desc.Aryion:  "UserAryion",
		desc.Twitter: "@lorem",
	}, cfg.Users)
}

func TestLoad_UnknownWebsiteWarns(t *testing.T) {
	path := writeConfig(t, `{"fa": "UserFA", "deviantart": "UserDA"}`)

	cfg, err := Load(path, desc.Builtin())
	require.NoError(t, err)

	assert.Equal(t, desc.Users{desc.Furaffinity: "UserFA"}, cfg.Users)
	require.Len(t, cfg.Warnings, 1)
	assert.Contains(t, cfg.Warnings[0], "deviantart")
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{
			name:    "empty username",
			content: `{"fa": "  "}`,
			errMsg:  "empty username",
		},
		{
			name:    "two aliases of the same site",
			content: `{"aryion": "a", "eka": "b"}`,
			errMsg:  "same site",
		},
		{
			name:    "nothing configured",
			content: `{"deviantart": "UserDA"}`,
			errMsg:  "no valid website",
		},
		{
			name:    "not a mapping",
			content: `["fa"]`,
			errMsg:  "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content), desc.Builtin())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/config.json", desc.Builtin())
	require.Error(t, err)
}

func TestSave_and_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	err := Save(path, map[string]string{"fa": "UserFA", "ib": "UserIB"})
	require.NoError(t, err)

	cfg, err := Load(path, desc.Builtin())
	require.NoError(t, err)
	assert.Equal(t, desc.Users{
		desc.Furaffinity: "UserFA",
		desc.Inkbunny:    "UserIB",
	}, cfg.Users)
}

func TestDefaultPath_PrefersLocalFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, LocalConfigFile), []byte("{}"), 0600))
	t.Chdir(dir)

	assert.Equal(t, LocalConfigFile, DefaultPath())
}

func TestDefaultPath_FallsBackToUserConfig(t *testing.T) {
	t.Chdir(t.TempDir())

	path := DefaultPath()
	assert.Contains(t, path, "galup")
	assert.Equal(t, "config.json", filepath.Base(path))
}
