package paths

import (
	"os"
	"path/filepath"
)

// GetCronoHome returns CRONO_HOME or ~/.crono default
func GetCronoHome() string {
	cronoHome := os.Getenv("CRONO_HOME")
	if cronoHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ".crono"
		}
		return filepath.Join(homeDir, ".crono")
	}
	return ExpandPath(cronoHome)
}

// GetDataFile returns the subject/topic document path
func GetDataFile(home string) string {
	return filepath.Join(home, "data.json")
}

// GetSessionsFile returns the study session document path
func GetSessionsFile(home string) string {
	return filepath.Join(home, "study_sessions.json")
}

// GetGoalsFile returns the goal document path
func GetGoalsFile(home string) string {
	return filepath.Join(home, "goals.json")
}

// GetNotesFile returns the note document path
func GetNotesFile(home string) string {
	return filepath.Join(home, "notes.json")
}

// GetSettingsFile returns the application settings document path
func GetSettingsFile(home string) string {
	return filepath.Join(home, "settings.json")
}

// ExpandPath expands ~ to home directory
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			if len(path) == 1 {
				return homeDir
			}
			return filepath.Join(homeDir, path[1:])
		}
	}
	return path
}
