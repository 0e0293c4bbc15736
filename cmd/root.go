// Package cmd is the CLI frontend. It is an external collaborator of
// the stores: every command re-reads state through the container and
// renders results; nothing here holds state between runs.
package cmd

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"crono/logging"
	"crono/paths"
)

// CLI represents the command-line interface structure
type CLI struct {
	Version     kong.VersionFlag `help:"Show version information"`
	Debug       bool             `help:"Enable debug logging to file" short:"d"`
	DebugFile   string           `help:"Custom path for debug log file (disables automatic cleanup)"`
	MaxLogFiles int              `help:"Maximum number of log files to keep (0 = unlimited)" default:"1000"`
	Home        string           `help:"Data directory" type:"path" env:"CRONO_HOME"`

	Subjects  SubjectsCmd  `cmd:"subjects" help:"Manage subjects/projects (list, add, del, rename, solve, target, tag)"`
	Topics    TopicsCmd    `cmd:"topics" help:"Manage topics of a subject (list, add, status, del)"`
	Sessions  SessionsCmd  `cmd:"sessions" help:"Manage study sessions (start, end, list, today, week)"`
	Goals     GoalsCmd     `cmd:"goals" help:"Manage goals (list, add, progress, upcoming)"`
	Notes     NotesCmd     `cmd:"notes" help:"Manage notes and bookmarks (list, add, del, mark, position)"`
	Stats     StatsCmd     `cmd:"stats" help:"Show the study dashboard" default:"1"`
	Trend     TrendCmd     `cmd:"trend" help:"Show the trailing 4-week study trend"`
	Perf      PerfCmd      `cmd:"perf" help:"Show performance metrics for one subject"`
	Recommend RecommendCmd `cmd:"recommend" help:"Show study recommendations"`
	Export    ExportCmd    `cmd:"export" help:"Export data (json, csv, report)"`
	Settings  SettingsCmd  `cmd:"settings" help:"Show or change application settings"`
}

// AfterApply initializes logging after CLI parsing
func (c *CLI) AfterApply() error {
	if err := logging.Initialize(c.Debug, c.DebugFile, c.MaxLogFiles); err != nil {
		return err
	}

	// Child processes inherit debug settings through the environment
	if c.Debug || c.DebugFile != "" {
		os.Setenv("CRONO_DEBUG", "1")
	}
	if c.MaxLogFiles != 1000 {
		os.Setenv("CRONO_MAX_LOG_FILES", fmt.Sprintf("%d", c.MaxLogFiles))
	}
	return nil
}

// DataHome returns the resolved data directory
func (c *CLI) DataHome() string {
	if c.Home != "" {
		return paths.ExpandPath(c.Home)
	}
	return paths.GetCronoHome()
}
