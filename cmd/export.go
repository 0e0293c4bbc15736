package cmd

import (
	"fmt"
	"io"
	"os"
)

// ExportCmd exports the store snapshots in an alternate format
type ExportCmd struct {
	Format string `help:"Export format" enum:"json,subjects-csv,sessions-csv,goals-csv,report" default:"json"`
	Out    string `help:"Output file (stdout when omitted)" short:"o" type:"path"`
}

// Run executes the export command
func (e *ExportCmd) Run(cli *CLI) error {
	c := NewContainer(cli.DataHome())

	var w io.Writer = os.Stdout
	if e.Out != "" {
		f, err := os.Create(e.Out)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch e.Format {
	case "json":
		return c.Exporter.WriteJSON(w)
	case "subjects-csv":
		return c.Exporter.WriteSubjectsCSV(w)
	case "sessions-csv":
		return c.Exporter.WriteSessionsCSV(w)
	case "goals-csv":
		return c.Exporter.WriteGoalsCSV(w)
	case "report":
		return c.Exporter.WriteReport(w)
	}
	return fmt.Errorf("unknown export format %q", e.Format)
}
