// Package config owns the application settings document.
package config

import (
	"crono/storage"
)

// Settings defaults
const (
	DefaultLanguage     = "tr"
	DefaultTheme        = "Light"
	DefaultWindowWidth  = 1200
	DefaultWindowHeight = 800
)

// Settings is the application settings document. Boolean fields are
// pointers so an absent key can be told apart from an explicit false
// and back-filled with its default.
type Settings struct {
	Language          string `json:"language"` // tr, en
	Theme             string `json:"theme"`    // Dark, Light
	WindowWidth       int    `json:"window_width"`
	WindowHeight      int    `json:"window_height"`
	AutoSave          *bool  `json:"auto_save"`
	ShowNotifications *bool  `json:"show_notifications"`
}

// Normalize back-fills missing settings with their defaults. A nil
// receiver (a document file holding literal null) reports no change and
// is replaced by the manager.
func (s *Settings) Normalize() bool {
	if s == nil {
		return false
	}
	changed := false
	if s.Language == "" {
		s.Language = DefaultLanguage
		changed = true
	}
	if s.Theme == "" {
		s.Theme = DefaultTheme
		changed = true
	}
	if s.WindowWidth == 0 {
		s.WindowWidth = DefaultWindowWidth
		changed = true
	}
	if s.WindowHeight == 0 {
		s.WindowHeight = DefaultWindowHeight
		changed = true
	}
	if s.AutoSave == nil {
		s.AutoSave = boolPtr(true)
		changed = true
	}
	if s.ShowNotifications == nil {
		s.ShowNotifications = boolPtr(true)
		changed = true
	}
	return changed
}

// Manager wraps the settings document with typed accessors that
// persist on every change
type Manager struct {
	store    *storage.Store[*Settings]
	settings *Settings
}

// NewManager loads (or seeds) the settings document at path
func NewManager(path string) *Manager {
	m := &Manager{store: storage.NewStore[*Settings](path)}
	m.settings = m.store.Load(&Settings{})
	if m.settings == nil {
		m.settings = &Settings{}
		m.settings.Normalize()
	}
	return m
}

// Current returns the loaded settings
func (m *Manager) Current() *Settings {
	return m.settings
}

// SetLanguage changes the language and persists
func (m *Manager) SetLanguage(lang string) error {
	m.settings.Language = lang
	return m.store.Save(m.settings)
}

// SetTheme changes the theme and persists
func (m *Manager) SetTheme(theme string) error {
	m.settings.Theme = theme
	return m.store.Save(m.settings)
}

// SetWindowSize changes the remembered window dimensions and persists
func (m *Manager) SetWindowSize(width, height int) error {
	m.settings.WindowWidth = width
	m.settings.WindowHeight = height
	return m.store.Save(m.settings)
}

// SetAutoSave toggles auto-save and persists
func (m *Manager) SetAutoSave(on bool) error {
	m.settings.AutoSave = boolPtr(on)
	return m.store.Save(m.settings)
}

// SetShowNotifications toggles notifications and persists
func (m *Manager) SetShowNotifications(on bool) error {
	m.settings.ShowNotifications = boolPtr(on)
	return m.store.Save(m.settings)
}

func boolPtr(b bool) *bool {
	return &b
}
