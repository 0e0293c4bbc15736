package cmd

import "fmt"

// SettingsCmd shows or changes application settings
type SettingsCmd struct {
	Show SettingsShowCmd `cmd:"show" help:"Show current settings" default:"1"`
	Set  SettingsSetCmd  `cmd:"set" help:"Change a setting"`
}

// SettingsShowCmd prints the current settings
type SettingsShowCmd struct{}

// Run executes the show command
func (s *SettingsShowCmd) Run(cli *CLI) error {
	c := NewContainer(cli.DataHome())
	settings := c.Settings.Current()
	fmt.Printf("language:           %s\n", settings.Language)
	fmt.Printf("theme:              %s\n", settings.Theme)
	fmt.Printf("window:             %dx%d\n", settings.WindowWidth, settings.WindowHeight)
	fmt.Printf("auto_save:          %t\n", *settings.AutoSave)
	fmt.Printf("show_notifications: %t\n", *settings.ShowNotifications)
	return nil
}

// SettingsSetCmd changes one setting
type SettingsSetCmd struct {
	Key   string `arg:"" help:"Setting key" enum:"language,theme,auto_save,show_notifications"`
	Value string `arg:"" help:"New value"`
}

// Run executes the set command
func (s *SettingsSetCmd) Run(cli *CLI) error {
	c := NewContainer(cli.DataHome())

	var err error
	switch s.Key {
	case "language":
		err = c.Settings.SetLanguage(s.Value)
	case "theme":
		err = c.Settings.SetTheme(s.Value)
	case "auto_save":
		err = c.Settings.SetAutoSave(s.Value == "true")
	case "show_notifications":
		err = c.Settings.SetShowNotifications(s.Value == "true")
	}
	if err != nil {
		return err
	}
	fmt.Printf("Set %s to %s\n", s.Key, s.Value)
	return nil
}
