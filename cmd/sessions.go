package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
)

// SessionsCmd groups session management commands
type SessionsCmd struct {
	Start SessionsStartCmd `cmd:"start" help:"Start a study session"`
	End   SessionsEndCmd   `cmd:"end" help:"End a study session"`
	List  SessionsListCmd  `cmd:"list" help:"List sessions" default:"1"`
	Today SessionsTodayCmd `cmd:"today" help:"Show today's totals"`
	Week  SessionsWeekCmd  `cmd:"week" help:"Show this week's totals"`
}

// SessionsStartCmd starts a study session
type SessionsStartCmd struct {
	Subject string `arg:"" help:"Subject name"`
}

// Run executes the start command
func (s *SessionsStartCmd) Run(cli *CLI) error {
	c := NewContainer(cli.DataHome())
	id, err := c.Sessions.Start(s.Subject)
	if err != nil {
		return err
	}
	fmt.Printf("Started session %s for %q\n", id, s.Subject)
	return nil
}

// SessionsEndCmd ends a study session
type SessionsEndCmd struct {
	ID        string `arg:"" help:"Session id (from 'crono sessions start')"`
	Questions int    `help:"Questions solved during the session" short:"q"`
	Notes     string `help:"Session notes" short:"n"`
	Credit    bool   `help:"Also credit the questions to the subject" short:"c"`
}

// Run executes the end command
func (s *SessionsEndCmd) Run(cli *CLI) error {
	c := NewContainer(cli.DataHome())
	session, err := c.Sessions.End(s.ID, s.Questions, s.Notes)
	if err != nil {
		return err
	}
	fmt.Printf("Ended session %s: %.2f minutes, %d questions\n",
		s.ID, session.DurationMinutes, session.QuestionsSolved)

	// Crediting touches two stores, a crash in between leaves only the
	// session recorded
	if s.Credit && s.Questions > 0 {
		if err := c.Subjects.AddQuestions(session.Subject, s.Questions); err != nil {
			return fmt.Errorf("session ended but crediting failed: %w", err)
		}
		fmt.Printf("Credited %d questions to %q\n", s.Questions, session.Subject)
	}
	return nil
}

// SessionsListCmd lists sessions
type SessionsListCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// Run executes the list command
func (s *SessionsListCmd) Run(cli *CLI) error {
	c := NewContainer(cli.DataHome())
	doc := c.Sessions.All()

	if s.Format == "json" {
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	ids := make([]string, 0, len(doc))
	for id := range doc {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSUBJECT\tSTARTED\tMINUTES\tQUESTIONS\tACTIVE")
	for _, id := range ids {
		session := doc[id]
		active := ""
		if session.Active() {
			active = "✓"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%d\t%s\n",
			id,
			session.Subject,
			session.StartTime.Format("2006-01-02 15:04:05"),
			session.DurationMinutes,
			session.QuestionsSolved,
			active)
	}
	w.Flush()

	fmt.Printf("\nTotal: %d sessions\n", len(doc))
	return nil
}

// SessionsTodayCmd shows today's totals
type SessionsTodayCmd struct{}

// Run executes the today command
func (s *SessionsTodayCmd) Run(cli *CLI) error {
	c := NewContainer(cli.DataHome())
	stats := c.Sessions.TodayStats()
	fmt.Printf("Today: %.1f minutes, %d questions, %d sessions\n",
		stats.TotalTimeMinutes, stats.TotalQuestions, stats.SessionCount)
	return nil
}

// SessionsWeekCmd shows this week's totals grouped by subject
type SessionsWeekCmd struct{}

// Run executes the week command
func (s *SessionsWeekCmd) Run(cli *CLI) error {
	c := NewContainer(cli.DataHome())
	stats := c.Sessions.WeekStats()
	fmt.Printf("This week: %.1f minutes, %d questions, %d sessions\n\n",
		stats.TotalTimeMinutes, stats.TotalQuestions, stats.SessionCount)

	subjects := make([]string, 0, len(stats.BySubject))
	for name := range stats.BySubject {
		subjects = append(subjects, name)
	}
	sort.Strings(subjects)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SUBJECT\tMINUTES\tQUESTIONS\tSESSIONS")
	for _, name := range subjects {
		totals := stats.BySubject[name]
		fmt.Fprintf(w, "%s\t%.1f\t%d\t%d\n", name, totals.TimeMinutes, totals.Questions, totals.Sessions)
	}
	w.Flush()
	return nil
}
