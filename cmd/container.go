package cmd

import (
	"crono/analytics"
	"crono/config"
	"crono/export"
	"crono/goals"
	"crono/notes"
	"crono/paths"
	"crono/sessions"
	"crono/subjects"
)

// Container wires the stores, the analytics engine and the exporter
// for one command run. Each store owns one document under the data
// home and persists itself after every mutation.
type Container struct {
	Subjects  *subjects.Repository
	Sessions  *sessions.Log
	Goals     *goals.Tracker
	Notes     *notes.Book
	Settings  *config.Manager
	Analytics *analytics.Engine
	Exporter  *export.Exporter
}

// NewContainer loads every document from the given data directory
func NewContainer(home string) *Container {
	subjectRepo := subjects.NewRepository(paths.GetDataFile(home))
	sessionLog := sessions.NewLog(paths.GetSessionsFile(home))
	goalTracker := goals.NewTracker(paths.GetGoalsFile(home))
	noteBook := notes.NewBook(paths.GetNotesFile(home))

	return &Container{
		Subjects:  subjectRepo,
		Sessions:  sessionLog,
		Goals:     goalTracker,
		Notes:     noteBook,
		Settings:  config.NewManager(paths.GetSettingsFile(home)),
		Analytics: analytics.NewEngine(subjectRepo, sessionLog, goalTracker),
		Exporter:  export.NewExporter(subjectRepo, sessionLog, goalTracker, noteBook),
	}
}
