package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManager_SeedsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	m := NewManager(path)
	s := m.Current()
	assert.Equal(t, DefaultLanguage, s.Language)
	assert.Equal(t, DefaultTheme, s.Theme)
	assert.Equal(t, DefaultWindowWidth, s.WindowWidth)
	assert.Equal(t, DefaultWindowHeight, s.WindowHeight)
	require.NotNil(t, s.AutoSave)
	assert.True(t, *s.AutoSave)
	require.NotNil(t, s.ShowNotifications)
	assert.True(t, *s.ShowNotifications)

	// First load writes the defaults to disk
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestNormalize_BackFillsMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"language": "en", "auto_save": false}`), 0644))

	s := NewManager(path).Current()
	assert.Equal(t, "en", s.Language)
	assert.Equal(t, DefaultTheme, s.Theme)
	assert.Equal(t, DefaultWindowWidth, s.WindowWidth)
	require.NotNil(t, s.AutoSave)
	assert.False(t, *s.AutoSave) // explicit false survives the back-fill
	require.NotNil(t, s.ShowNotifications)
	assert.True(t, *s.ShowNotifications)
}

func TestSetters_PersistAcrossReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	m := NewManager(path)
	require.NoError(t, m.SetLanguage("en"))
	require.NoError(t, m.SetTheme("Dark"))
	require.NoError(t, m.SetWindowSize(1600, 900))
	require.NoError(t, m.SetAutoSave(false))
	require.NoError(t, m.SetShowNotifications(false))

	s := NewManager(path).Current()
	assert.Equal(t, "en", s.Language)
	assert.Equal(t, "Dark", s.Theme)
	assert.Equal(t, 1600, s.WindowWidth)
	assert.Equal(t, 900, s.WindowHeight)
	require.NotNil(t, s.AutoSave)
	assert.False(t, *s.AutoSave)
	require.NotNil(t, s.ShowNotifications)
	assert.False(t, *s.ShowNotifications)
}
