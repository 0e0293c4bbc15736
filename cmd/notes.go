package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
)

// NotesCmd groups note and bookmark commands
type NotesCmd struct {
	List     NotesListCmd     `cmd:"list" help:"List notes" default:"1"`
	Add      NotesAddCmd      `cmd:"add" help:"Add a note"`
	Del      NotesDelCmd      `cmd:"del" help:"Delete a note"`
	Mark     NotesMarkCmd     `cmd:"mark" help:"Set the last-position bookmark for a subject"`
	Position NotesPositionCmd `cmd:"position" help:"Show or clear a subject's bookmark"`
}

// NotesListCmd lists notes
type NotesListCmd struct {
	Subject string `help:"Only notes for this subject"`
	Topic   string `help:"Only notes for this topic (requires --subject)"`
}

// Run executes the list command
func (n *NotesListCmd) Run(cli *CLI) error {
	c := NewContainer(cli.DataHome())

	notes := c.Notes.AllNotes()
	if n.Subject != "" {
		notes = c.Notes.Notes(n.Subject, n.Topic)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tSUBJECT\tTOPIC\tTEXT")
	for _, note := range notes {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			note.ID, note.Date.Format("2006-01-02 15:04"), note.Subject, note.Topic, note.Text)
	}
	w.Flush()

	fmt.Printf("\nTotal: %d notes\n", len(notes))
	return nil
}

// NotesAddCmd adds a note
type NotesAddCmd struct {
	Subject string `arg:"" help:"Subject name"`
	Text    string `arg:"" help:"Note text"`
	Topic   string `help:"Attach to a topic"`
}

// Run executes the add command
func (n *NotesAddCmd) Run(cli *CLI) error {
	c := NewContainer(cli.DataHome())
	note, err := c.Notes.Add(n.Subject, n.Topic, n.Text)
	if err != nil {
		return err
	}
	fmt.Printf("Added note %s\n", note.ID)
	return nil
}

// NotesDelCmd deletes a note
type NotesDelCmd struct {
	Subject string `arg:"" help:"Subject name"`
	ID      string `arg:"" help:"Note id"`
	Topic   string `help:"Topic the note is attached to"`
}

// Run executes the del command
func (n *NotesDelCmd) Run(cli *CLI) error {
	c := NewContainer(cli.DataHome())
	if !c.Notes.Delete(n.Subject, n.Topic, n.ID) {
		fmt.Printf("Note %s not found\n", n.ID)
		return nil
	}
	fmt.Printf("Deleted note %s\n", n.ID)
	return nil
}

// NotesMarkCmd sets the last-position bookmark
type NotesMarkCmd struct {
	Subject string `arg:"" help:"Subject name"`
	Text    string `arg:"" help:"Where you left off"`
}

// Run executes the mark command
func (n *NotesMarkCmd) Run(cli *CLI) error {
	c := NewContainer(cli.DataHome())
	if _, err := c.Notes.SetLastPosition(n.Subject, n.Text); err != nil {
		return err
	}
	fmt.Printf("Bookmarked %q\n", n.Subject)
	return nil
}

// NotesPositionCmd shows or clears a subject's bookmark
type NotesPositionCmd struct {
	Subject string `arg:"" help:"Subject name"`
	Clear   bool   `help:"Clear the bookmark" short:"c"`
}

// Run executes the position command
func (n *NotesPositionCmd) Run(cli *CLI) error {
	c := NewContainer(cli.DataHome())
	if n.Clear {
		if !c.Notes.DeleteLastPosition(n.Subject) {
			fmt.Printf("No bookmark for %q\n", n.Subject)
			return nil
		}
		fmt.Printf("Cleared bookmark for %q\n", n.Subject)
		return nil
	}

	position := c.Notes.LastPosition(n.Subject)
	if position == nil {
		fmt.Printf("No bookmark for %q\n", n.Subject)
		return nil
	}
	fmt.Printf("%s (%s)\n", position.Text, position.Date.Format("2006-01-02 15:04"))
	return nil
}
