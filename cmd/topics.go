package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"crono/domain"
)

// TopicsCmd groups topic management commands
type TopicsCmd struct {
	List   TopicsListCmd   `cmd:"list" help:"List a subject's topics" default:"1"`
	Add    TopicsAddCmd    `cmd:"add" help:"Add a topic"`
	Status TopicsStatusCmd `cmd:"status" help:"Change a topic's status"`
	Del    TopicsDelCmd    `cmd:"del" help:"Delete a topic"`
}

// TopicsListCmd lists a subject's topics
type TopicsListCmd struct {
	Subject string `arg:"" help:"Subject name"`
}

// Run executes the list command
func (t *TopicsListCmd) Run(cli *CLI) error {
	c := NewContainer(cli.DataHome())
	subject, ok := c.Subjects.Get(t.Subject)
	if !ok {
		return fmt.Errorf("subject %q: %w", t.Subject, domain.ErrNotFound)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TOPIC\tSTATUS\tSTARTED\tFINISHED")
	for _, topic := range subject.Topics {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", topic.Name, topic.Status, topic.StartDate, topic.EndDate)
	}
	w.Flush()

	fmt.Printf("\nTotal: %d topics (%d completed)\n", len(subject.Topics), subject.CompletedTopics())
	return nil
}

// TopicsAddCmd adds a topic to a subject
type TopicsAddCmd struct {
	Subject string `arg:"" help:"Subject name"`
	Name    string `arg:"" help:"Topic name"`
}

// Run executes the add command
func (t *TopicsAddCmd) Run(cli *CLI) error {
	c := NewContainer(cli.DataHome())
	if err := c.Subjects.AddTopic(t.Subject, t.Name); err != nil {
		return err
	}
	fmt.Printf("Added topic %q to %q\n", t.Name, t.Subject)
	return nil
}

// TopicsStatusCmd changes a topic's status
type TopicsStatusCmd struct {
	Subject string `arg:"" help:"Subject name"`
	Name    string `arg:"" help:"Topic name"`
	Status  string `arg:"" help:"New status: todo, in_progress or completed" enum:"todo,in_progress,completed"`
}

// Run executes the status command
func (t *TopicsStatusCmd) Run(cli *CLI) error {
	c := NewContainer(cli.DataHome())
	if err := c.Subjects.UpdateTopicStatus(t.Subject, t.Name, domain.TopicStatus(t.Status)); err != nil {
		return err
	}
	fmt.Printf("Topic %q is now %s\n", t.Name, t.Status)
	return nil
}

// TopicsDelCmd deletes a topic
type TopicsDelCmd struct {
	Subject string `arg:"" help:"Subject name"`
	Name    string `arg:"" help:"Topic name"`
}

// Run executes the del command
func (t *TopicsDelCmd) Run(cli *CLI) error {
	c := NewContainer(cli.DataHome())
	if !c.Subjects.DeleteTopic(t.Subject, t.Name) {
		fmt.Printf("Topic %q not found in %q\n", t.Name, t.Subject)
		return nil
	}
	fmt.Printf("Deleted topic %q from %q\n", t.Name, t.Subject)
	return nil
}
