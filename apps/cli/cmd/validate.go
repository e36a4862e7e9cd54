package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/suiterun/suiterun/packages/specfile"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file|directory>",
	Short: "Validate suite files against the schema",
	Long: `Validate suite files against the suite-file schema without
executing anything.

Examples:
  suiterun validate smoke.suite.yml
  suiterun validate ./suites/`,
	Args: cobra.MinimumNArgs(1),
	RunE: validateCommand,
}

func validateCommand(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no .suite.yml files found")
	}

	hasErrors := false
	for _, file := range files {
		if _, err := specfile.Load(file); err != nil {
			fmt.Fprintf(cmd.OutOrStderr(), "Error in %s: %v\n", file, err)
			hasErrors = true
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Valid: %s\n", file)
		}
	}

	if hasErrors {
		os.Exit(ExitParseError)
	}
	return nil
}
