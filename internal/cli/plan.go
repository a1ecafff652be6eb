package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/schemacov"
)

// NewPlanCommand creates the plan command.
func NewPlanCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "plan <schema-file>",
		Short: "Print the zero-run coverage report for a schema document",
		Long: `Plan registers every schema in a CUE document and generates the report a
suite with zero validation runs would produce: the complete gap list a test
suite starting from scratch has to burn down.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(rootOpts, args[0], cmd)
		},
	}
}

func runPlan(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	logger := opts.Logger(cmd.ErrOrStderr())

	schemas, err := loadSchemas(path)
	if err != nil {
		return commandError(formatter, err)
	}
	logger.Debug().Str("file", path).Int("schemas", len(schemas)).Msg("compiled schema document")

	registry := schemacov.NewRegistry(schemacov.WithTokenGenerator(&sequentialTokens{}))
	for _, s := range schemas {
		filename, line := entryLocation(path, s)
		registry.Register(s.Root, schemacov.Location{Filename: filename, Line: line})
	}

	report := registry.Report("")
	logger.Debug().Int("gap_records", len(report)).Msg("generated zero-run report")

	if handled, err := formatter.Success(report); handled {
		return err
	}
	printPlanText(cmd, report)
	return nil
}

func printPlanText(cmd *cobra.Command, report []schemacov.GapRecord) {
	w := cmd.OutOrStdout()
	if report == nil {
		fmt.Fprintln(w, "fully covered")
		return
	}
	for _, record := range report {
		fmt.Fprintf(w, "%s:%d\n", record.Filename, record.Line)
		for _, item := range record.Missing {
			fmt.Fprintf(w, "  %s\n", item.Describe())
		}
		fmt.Fprintln(w)
	}
}
