package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jrzesz33/civ6_notif/internal/stack"
	"github.com/spf13/cobra"
)

const (
	defaultOutDir = "cloudformation"
	defaultName   = "civ6-notif"
)

type buildOptions struct {
	stack  stack.Options
	outDir string
	name   string
	lint   bool
}

func newBuildCmd() *cobra.Command {
	var opts buildOptions

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Write the template as YAML and JSON",
		Long: `Build assembles the relay template and writes <out-dir>/<name>.yaml and
<out-dir>/<name>.json. Both files describe the same template.

Examples:
    civ6-notif-template build
    civ6-notif-template build --out-dir dist --name relay
    civ6-notif-template build --code-bucket my-artifacts --code-key relay/v2.zip --lint`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(opts, cmd.OutOrStdout())
		},
	}

	addStackFlags(cmd, &opts.stack)
	cmd.Flags().StringVarP(&opts.outDir, "out-dir", "o", defaultOutDir, "Directory for the generated templates")
	cmd.Flags().StringVarP(&opts.name, "name", "n", defaultName, "File name stem of the generated templates")
	cmd.Flags().BoolVar(&opts.lint, "lint", false, "Lint the written templates with cfn-lint")

	return cmd
}

func runBuild(opts buildOptions, out io.Writer) error {
	paths, err := writeTemplates(opts)
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Fprintln(out, p)
	}

	if !opts.lint {
		return nil
	}
	return lintAndReport(paths, out)
}

// writeTemplates renders the template once and writes it in both encodings.
func writeTemplates(opts buildOptions) ([]string, error) {
	if opts.name == "" {
		return nil, fmt.Errorf("template name must not be empty")
	}

	tmpl, err := stack.Build(opts.stack)
	if err != nil {
		return nil, fmt.Errorf("building template: %w", err)
	}
	doc, err := tmpl.Build()
	if err != nil {
		return nil, fmt.Errorf("building template: %w", err)
	}

	yamlData, err := doc.YAML()
	if err != nil {
		return nil, err
	}
	jsonData, err := doc.JSON()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	files := []struct {
		ext  string
		data []byte
	}{
		{".yaml", yamlData},
		{".json", jsonData},
	}
	paths := make([]string, 0, len(files))
	for _, f := range files {
		path := filepath.Join(opts.outDir, opts.name+f.ext)
		if err := os.WriteFile(path, f.data, 0o644); err != nil {
			return nil, fmt.Errorf("writing template: %w", err)
		}
		slog.Debug("template written",
			slog.String("path", path),
			slog.Int("bytes", len(f.data)),
			slog.Int("resources", len(doc.Resources)),
		)
		paths = append(paths, path)
	}
	return paths, nil
}
