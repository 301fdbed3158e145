package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/jrzesz33/civ6_notif/internal/validation"
	"github.com/spf13/cobra"
)

var (
	passColor    = color.New(color.Bold, color.FgGreen)
	failColor    = color.New(color.Bold, color.FgRed)
	errorColor   = color.New(color.FgRed)
	warningColor = color.New(color.FgYellow)
	infoColor    = color.New(color.FgCyan)
)

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [templates...]",
		Short: "Lint generated templates with cfn-lint",
		Long: `Validate runs cfn-lint on each template file. Without arguments it checks
the files written by a default build.

Examples:
    civ6-notif-template validate
    civ6-notif-template validate dist/relay.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := args
			if len(paths) == 0 {
				paths = []string{
					filepath.Join(defaultOutDir, defaultName+".yaml"),
					filepath.Join(defaultOutDir, defaultName+".json"),
				}
			}
			return lintAndReport(paths, cmd.OutOrStdout())
		},
	}
	return cmd
}

// lintAndReport prints every issue and fails when any template has an error.
func lintAndReport(paths []string, out io.Writer) error {
	results, passed, err := validation.LintFiles(paths)
	if err != nil {
		return err
	}

	for _, r := range results {
		status := passColor.Sprint("ok")
		if !r.Passed {
			status = failColor.Sprint("FAILED")
		}
		fmt.Fprintf(out, "%s: %s (%d issues)\n", r.Path, status, r.TotalIssues())
		for _, e := range r.Errors {
			fmt.Fprintf(out, "  %s   %s\n", errorColor.Sprint("error"), e)
		}
		for _, w := range r.Warnings {
			fmt.Fprintf(out, "  %s %s\n", warningColor.Sprint("warning"), w)
		}
		for _, i := range r.Informational {
			fmt.Fprintf(out, "  %s    %s\n", infoColor.Sprint("info"), i)
		}
	}

	if !passed {
		return fmt.Errorf("template validation failed")
	}
	return nil
}
