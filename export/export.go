// Package export serializes the store snapshots into alternate
// formats. It is a pure read-only consumer and never mutates the
// documents it is handed.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"time"

	"crono/domain"
	"crono/goals"
	"crono/notes"
	"crono/sessions"
	"crono/subjects"
	"crono/version"
)

// Exporter reads from the four stores
type Exporter struct {
	subjects *subjects.Repository
	sessions *sessions.Log
	goals    *goals.Tracker
	notes    *notes.Book
}

// NewExporter wires the exporter to its read-only inputs
func NewExporter(subjectRepo *subjects.Repository, sessionLog *sessions.Log, goalTracker *goals.Tracker, noteBook *notes.Book) *Exporter {
	return &Exporter{
		subjects: subjectRepo,
		sessions: sessionLog,
		goals:    goalTracker,
		notes:    noteBook,
	}
}

// bundle is the full-backup JSON shape
type bundle struct {
	StudyData     domain.SubjectDoc `json:"study_data"`
	StudySessions domain.SessionDoc `json:"study_sessions"`
	Notes         domain.NoteDoc    `json:"notes"`
	Goals         domain.GoalDoc    `json:"goals"`
	ExportDate    string            `json:"export_date"`
	Version       string            `json:"version"`
}

// WriteJSON writes the full data bundle of all four documents
func (e *Exporter) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(bundle{
		StudyData:     e.subjects.All(),
		StudySessions: e.sessions.All(),
		Notes:         e.notes.All(),
		Goals:         e.goals.All(),
		ExportDate:    time.Now().Format(time.RFC3339),
		Version:       version.Version,
	})
}

// WriteSubjectsCSV writes one row per subject with its progress rollup
func (e *Exporter) WriteSubjectsCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Subject", "Solved Questions", "Target Questions", "Progress %", "Last Study", "Topics Count"}); err != nil {
		return err
	}
	doc := e.subjects.All()
	for _, name := range e.subjects.Names() {
		s := doc[name]
		if err := cw.Write([]string{
			name,
			strconv.Itoa(s.SolvedCount),
			strconv.Itoa(s.TargetCount),
			formatFloat(round2(s.Progress())),
			s.LastStudyDate,
			strconv.Itoa(len(s.Topics)),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSessionsCSV writes one row per session, oldest first
func (e *Exporter) WriteSessionsCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Date", "Subject", "Duration (min)", "Questions Solved", "Notes"}); err != nil {
		return err
	}
	doc := e.sessions.All()
	ids := make([]string, 0, len(doc))
	for id := range doc {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		s := doc[id]
		if err := cw.Write([]string{
			domain.Date(s.StartTime),
			s.Subject,
			formatFloat(s.DurationMinutes),
			strconv.Itoa(s.QuestionsSolved),
			s.Notes,
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteGoalsCSV writes one row per goal, grouped by subject name
func (e *Exporter) WriteGoalsCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Subject", "Type", "Target", "Current", "Progress %", "Target Date", "Completed"}); err != nil {
		return err
	}
	doc := e.goals.All()
	names := make([]string, 0, len(doc))
	for name := range doc {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, g := range doc[name] {
			progress := 0.0
			if g.TargetValue > 0 {
				progress = round2(g.CurrentValue / g.TargetValue * 100)
			}
			if err := cw.Write([]string{
				name,
				string(g.Type),
				formatFloat(g.TargetValue),
				formatFloat(g.CurrentValue),
				formatFloat(progress),
				g.TargetDate,
				strconv.FormatBool(g.Completed),
			}); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteReport writes a plain-text summary: the aggregate statistics
// followed by one line per subject
func (e *Exporter) WriteReport(w io.Writer) error {
	stats := e.subjects.Statistics()

	fmt.Fprintf(w, "Crono Study Report - %s\n\n", time.Now().Format("2006-01-02 15:04"))
	fmt.Fprintf(w, "Total solved:     %d\n", stats.TotalSolved)
	fmt.Fprintf(w, "Total target:     %d\n", stats.TotalTarget)
	fmt.Fprintf(w, "Overall progress: %.1f%%\n", stats.Progress)
	fmt.Fprintf(w, "Topics:           %d (%d completed)\n", stats.TotalTopics, stats.CompletedTopics)
	fmt.Fprintf(w, "Remaining:        %d\n\n", stats.Remaining)

	doc := e.subjects.All()
	for _, name := range e.subjects.Names() {
		s := doc[name]
		fmt.Fprintf(w, "%s: %d/%d (%.1f%%), %d topics, last studied %s\n",
			name, s.SolvedCount, s.TargetCount, s.Progress(), len(s.Topics), orDash(s.LastStudyDate))
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
