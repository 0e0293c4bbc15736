package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	goodStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	badStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func scoreStyle(score float64) lipgloss.Style {
	switch {
	case score >= 70:
		return goodStyle
	case score >= 40:
		return warnStyle
	default:
		return badStyle
	}
}

// StatsCmd shows the study dashboard: aggregate statistics, the
// productivity score, the streak and the current recommendations
type StatsCmd struct{}

// Run executes the stats command
func (s *StatsCmd) Run(cli *CLI) error {
	c := NewContainer(cli.DataHome())

	stats := c.Subjects.Statistics()
	score := c.Analytics.ProductivityScore()
	streak := c.Analytics.Streak()
	today := c.Sessions.TodayStats()

	fmt.Println(titleStyle.Render("Crono study dashboard"))
	fmt.Println()
	fmt.Printf("%s %s\n", labelStyle.Render("Productivity score:"),
		scoreStyle(score).Render(fmt.Sprintf("%.1f / 100", score)))
	fmt.Printf("%s %d days\n", labelStyle.Render("Study streak:      "), streak)
	fmt.Printf("%s %.1f min, %d questions (%d sessions)\n",
		labelStyle.Render("Today:             "),
		today.TotalTimeMinutes, today.TotalQuestions, today.SessionCount)
	fmt.Println()
	fmt.Printf("%s %d/%d questions (%.1f%%), %d remaining\n",
		labelStyle.Render("Overall:           "),
		stats.TotalSolved, stats.TotalTarget, stats.Progress, stats.Remaining)
	fmt.Printf("%s %d/%d completed\n",
		labelStyle.Render("Topics:            "),
		stats.CompletedTopics, stats.TotalTopics)

	if recs := c.Analytics.Recommendations(); len(recs) > 0 {
		fmt.Println()
		fmt.Println(titleStyle.Render("Recommendations"))
		for _, rec := range recs {
			fmt.Printf("  [%s] %s\n", rec.Type, rec.Message)
		}
	}
	return nil
}

// TrendCmd shows the trailing 4-week study trend
type TrendCmd struct{}

// Run executes the trend command
func (t *TrendCmd) Run(cli *CLI) error {
	c := NewContainer(cli.DataHome())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WEEK\tFROM\tTO\tMINUTES\tQUESTIONS\tSESSIONS")
	for _, week := range c.Analytics.WeeklyTrend() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1f\t%d\t%d\n",
			week.Label, week.StartDate, week.EndDate, week.TotalTime, week.TotalQuestions, week.Sessions)
	}
	w.Flush()
	return nil
}

// PerfCmd shows performance metrics for one subject
type PerfCmd struct {
	Subject string `arg:"" help:"Subject name"`
}

// Run executes the perf command
func (p *PerfCmd) Run(cli *CLI) error {
	c := NewContainer(cli.DataHome())
	perf, err := c.Analytics.SubjectPerformance(p.Subject)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("%s, last 30 days", p.Subject)))
	fmt.Printf("Progress:         %.1f%%\n", perf.ProgressPercentage)
	fmt.Printf("Efficiency:       %.2f questions/hour\n", perf.Efficiency)
	fmt.Printf("Topic completion: %.1f%%\n", perf.CompletionRate)
	fmt.Printf("Time studied:     %.2f hours\n", perf.TotalTimeHours)
	fmt.Printf("Average session:  %.2f minutes\n", perf.AverageSessionTime)
	fmt.Printf("Consistency:      %.1f%%\n", perf.ConsistencyScore)
	return nil
}

// RecommendCmd shows the current recommendations
type RecommendCmd struct{}

// Run executes the recommend command
func (r *RecommendCmd) Run(cli *CLI) error {
	c := NewContainer(cli.DataHome())
	recs := c.Analytics.Recommendations()
	if len(recs) == 0 {
		fmt.Println("Nothing to recommend. Keep going!")
		return nil
	}
	for _, rec := range recs {
		fmt.Printf("[%s/%s] %s\n", rec.Type, rec.Priority, rec.Message)
	}
	return nil
}
