package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/projectboard/internal/project"
	"github.com/leapstack-labs/projectboard/internal/validate"
)

// ErrInvalidInputs is returned by check when any rule fails.
var ErrInvalidInputs = errors.New("invalid inputs")

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	var draft project.Draft

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate project inputs without adding them",
		Long: `Run the form validation rules against a title, description and
headcount and print the result of every rule.`,
		Example: `  projectboard check --title "Build API" --description "Create REST endpoints" --people 3`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if ok := renderChecks(cmd.OutOrStdout(), draft); !ok {
				return ErrInvalidInputs
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&draft.Title, "title", "", "Project title")
	cmd.Flags().StringVar(&draft.Description, "description", "", "Project description")
	cmd.Flags().StringVar(&draft.People, "people", "", "Number of people")

	return cmd
}

// renderChecks prints one row per applicable rule and reports whether all passed.
func renderChecks(w io.Writer, d project.Draft) bool {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Field", "Rule", "Limit", "Result"})

	ok := true
	for _, f := range d.Fields() {
		for _, o := range validate.Explain(f.Field) {
			result := "ok"
			if !o.Passed {
				result = "FAIL"
				ok = false
			}
			t.AppendRow(table.Row{f.Name, string(o.Rule), o.Limit, result})
		}
	}
	t.Render()

	if ok {
		_, _ = fmt.Fprintln(w, "All inputs are valid.")
	}
	return ok
}
