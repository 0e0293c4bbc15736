package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"crono/domain"
)

// GoalsCmd groups goal management commands
type GoalsCmd struct {
	List     GoalsListCmd     `cmd:"list" help:"List goals" default:"1"`
	Add      GoalsAddCmd      `cmd:"add" help:"Add a goal"`
	Progress GoalsProgressCmd `cmd:"progress" help:"Update goal progress"`
	Upcoming GoalsUpcomingCmd `cmd:"upcoming" help:"List goals due soon"`
}

func printGoalTable(goals []*domain.Goal) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SUBJECT\tTYPE\tCURRENT\tTARGET\tDUE\tCOMPLETED")
	for _, g := range goals {
		completed := ""
		if g.Completed {
			completed = g.CompletedDate
		}
		fmt.Fprintf(w, "%s\t%s\t%g\t%g\t%s\t%s\n",
			g.Subject, g.Type, g.CurrentValue, g.TargetValue, g.TargetDate, completed)
	}
	w.Flush()
	fmt.Printf("\nTotal: %d goals\n", len(goals))
}

// GoalsListCmd lists goals
type GoalsListCmd struct {
	Subject   string `help:"Only goals for this subject"`
	Completed bool   `help:"Include completed goals" short:"a"`
}

// Run executes the list command
func (g *GoalsListCmd) Run(cli *CLI) error {
	c := NewContainer(cli.DataHome())
	printGoalTable(c.Goals.Goals(g.Subject, g.Completed))
	return nil
}

// GoalsAddCmd adds a goal
type GoalsAddCmd struct {
	Subject     string  `arg:"" help:"Subject name"`
	Type        string  `arg:"" help:"Goal type: questions, time or topics" enum:"questions,time,topics"`
	Target      float64 `arg:"" help:"Target value"`
	Due         string  `help:"Target date (YYYY-MM-DD)"`
	Description string  `help:"Free-text description"`
}

// Run executes the add command
func (g *GoalsAddCmd) Run(cli *CLI) error {
	c := NewContainer(cli.DataHome())
	goal, err := c.Goals.Add(g.Subject, domain.GoalType(g.Type), g.Target, g.Due, g.Description)
	if err != nil {
		return err
	}
	fmt.Printf("Added goal %s: %s %g for %q\n", goal.ID, goal.Type, goal.TargetValue, goal.Subject)
	return nil
}

// GoalsProgressCmd updates goal progress
type GoalsProgressCmd struct {
	Subject string  `arg:"" help:"Subject name"`
	Type    string  `arg:"" help:"Goal type" enum:"questions,time,topics"`
	Value   float64 `arg:"" help:"Current value"`
}

// Run executes the progress command
func (g *GoalsProgressCmd) Run(cli *CLI) error {
	c := NewContainer(cli.DataHome())
	if !c.Goals.UpdateProgress(g.Subject, domain.GoalType(g.Type), g.Value) {
		fmt.Printf("No incomplete %s goal for %q\n", g.Type, g.Subject)
		return nil
	}
	fmt.Printf("Updated %s goal for %q to %g\n", g.Type, g.Subject, g.Value)
	return nil
}

// GoalsUpcomingCmd lists goals due soon
type GoalsUpcomingCmd struct {
	Days int `help:"Window in days" default:"7"`
}

// Run executes the upcoming command
func (g *GoalsUpcomingCmd) Run(cli *CLI) error {
	c := NewContainer(cli.DataHome())
	printGoalTable(c.Goals.Upcoming(g.Days))
	return nil
}
