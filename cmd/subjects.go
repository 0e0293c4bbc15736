package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"crono/domain"
	"crono/subjects"
)

// SubjectsCmd groups subject management commands
type SubjectsCmd struct {
	List   SubjectsListCmd   `cmd:"list" help:"List subjects" default:"1"`
	Add    SubjectsAddCmd    `cmd:"add" help:"Add a subject"`
	Del    SubjectsDelCmd    `cmd:"del" help:"Delete a subject"`
	Rename SubjectsRenameCmd `cmd:"rename" help:"Rename a subject"`
	Solve  SubjectsSolveCmd  `cmd:"solve" help:"Record solved questions"`
	Target SubjectsTargetCmd `cmd:"target" help:"Set the target question count"`
	Tag    SubjectsTagCmd    `cmd:"tag" help:"Add or remove a tag"`
}

// SubjectsListCmd lists subjects
type SubjectsListCmd struct {
	Format   string `help:"Output format: table or json" enum:"table,json" default:"table"`
	Status   string `help:"Filter by status (active, completed, on_hold, archived)"`
	Category string `help:"Filter by category"`
}

// Run executes the list command
func (s *SubjectsListCmd) Run(cli *CLI) error {
	c := NewContainer(cli.DataHome())

	doc := c.Subjects.All()
	if s.Status != "" {
		doc = c.Subjects.ByStatus(domain.SubjectStatus(s.Status))
	} else if s.Category != "" {
		doc = c.Subjects.ByCategory(s.Category)
	}

	if s.Format == "json" {
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSOLVED\tTARGET\tPROGRESS\tSTATUS\tPRIORITY\tDEADLINE\tLAST STUDY")
	for _, name := range c.Subjects.Names() {
		subject, ok := doc[name]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%.1f%%\t%s\t%s\t%s\t%s\n",
			name,
			subject.SolvedCount,
			subject.TargetCount,
			subject.Progress(),
			subject.Status,
			subject.Priority,
			subject.Deadline,
			subject.LastStudyDate)
	}
	w.Flush()

	fmt.Printf("\nTotal: %d subjects\n", len(doc))
	return nil
}

// SubjectsAddCmd adds a subject
type SubjectsAddCmd struct {
	Name        string `arg:"" help:"Subject name"`
	Target      int    `help:"Target question count" default:"500"`
	Category    string `help:"Category"`
	Priority    string `help:"Priority: high, medium or low" default:"medium"`
	Deadline    string `help:"Deadline (YYYY-MM-DD)"`
	Description string `help:"Free-text description"`
}

// Run executes the add command
func (s *SubjectsAddCmd) Run(cli *CLI) error {
	c := NewContainer(cli.DataHome())
	_, err := c.Subjects.Add(s.Name, subjects.AddParams{
		Target:      s.Target,
		Category:    s.Category,
		Priority:    domain.Priority(s.Priority),
		Deadline:    s.Deadline,
		Description: s.Description,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Added subject %q (target %d)\n", s.Name, s.Target)
	return nil
}

// SubjectsDelCmd deletes a subject
type SubjectsDelCmd struct {
	Name string `arg:"" help:"Subject name"`
}

// Run executes the del command
func (s *SubjectsDelCmd) Run(cli *CLI) error {
	c := NewContainer(cli.DataHome())
	if !c.Subjects.Delete(s.Name) {
		fmt.Printf("Subject %q not found\n", s.Name)
		return nil
	}
	fmt.Printf("Deleted subject %q\n", s.Name)
	return nil
}

// SubjectsRenameCmd renames a subject with optional field overrides
type SubjectsRenameCmd struct {
	Old      string  `arg:"" help:"Current name"`
	New      string  `arg:"" help:"New name"`
	Target   *int    `help:"New target question count"`
	Status   *string `help:"New status"`
	Priority *string `help:"New priority"`
}

// Run executes the rename command
func (s *SubjectsRenameCmd) Run(cli *CLI) error {
	c := NewContainer(cli.DataHome())
	params := subjects.UpdateParams{Target: s.Target}
	if s.Status != nil {
		status := domain.SubjectStatus(*s.Status)
		params.Status = &status
	}
	if s.Priority != nil {
		priority := domain.Priority(*s.Priority)
		params.Priority = &priority
	}
	if err := c.Subjects.Update(s.Old, s.New, params); err != nil {
		return err
	}
	fmt.Printf("Updated subject %q -> %q\n", s.Old, s.New)
	return nil
}

// SubjectsSolveCmd records solved questions
type SubjectsSolveCmd struct {
	Name  string `arg:"" help:"Subject name"`
	Count int    `arg:"" help:"Questions solved"`
}

// Run executes the solve command
func (s *SubjectsSolveCmd) Run(cli *CLI) error {
	c := NewContainer(cli.DataHome())
	if err := c.Subjects.AddQuestions(s.Name, s.Count); err != nil {
		return err
	}
	subject, _ := c.Subjects.Get(s.Name)
	fmt.Printf("%s: %d/%d (%.1f%%)\n", s.Name, subject.SolvedCount, subject.TargetCount, subject.Progress())
	return nil
}

// SubjectsTargetCmd sets the target question count
type SubjectsTargetCmd struct {
	Name   string `arg:"" help:"Subject name"`
	Target int    `arg:"" help:"New target"`
}

// Run executes the target command
func (s *SubjectsTargetCmd) Run(cli *CLI) error {
	c := NewContainer(cli.DataHome())
	if err := c.Subjects.SetTarget(s.Name, s.Target); err != nil {
		return err
	}
	fmt.Printf("Set target of %q to %d\n", s.Name, s.Target)
	return nil
}

// SubjectsTagCmd adds or removes a tag
type SubjectsTagCmd struct {
	Name   string `arg:"" help:"Subject name"`
	Tag    string `arg:"" help:"Tag"`
	Remove bool   `help:"Remove the tag instead of adding it" short:"r"`
}

// Run executes the tag command
func (s *SubjectsTagCmd) Run(cli *CLI) error {
	c := NewContainer(cli.DataHome())
	if s.Remove {
		if !c.Subjects.RemoveTag(s.Name, s.Tag) {
			fmt.Printf("Tag %q not present on %q\n", s.Tag, s.Name)
			return nil
		}
		fmt.Printf("Removed tag %q from %q\n", s.Tag, s.Name)
		return nil
	}
	if err := c.Subjects.AddTag(s.Name, s.Tag); err != nil {
		return err
	}
	fmt.Printf("Tagged %q with %q\n", s.Name, s.Tag)
	return nil
}
