package main

import (
	"fmt"
	"io"

	"github.com/jrzesz33/civ6_notif/internal/graph"
	"github.com/jrzesz33/civ6_notif/internal/stack"
	"github.com/spf13/cobra"
)

type graphOptions struct {
	stack             stack.Options
	format            string
	includeParameters bool
	clusterByType     bool
}

func newGraphCmd() *cobra.Command {
	var opts graphOptions

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Generate DOT graph of resource dependencies",
		Long: `Generate a DOT or Mermaid format graph showing resource dependencies.
GetAtt references are drawn blue and explicit DependsOn edges dashed.

The output can be rendered with Graphviz:
    civ6-notif-template graph | dot -Tpng -o deps.png

Examples:
    civ6-notif-template graph -p              # include parameters
    civ6-notif-template graph -c              # cluster by service
    civ6-notif-template graph -f mermaid      # mermaid format`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraph(opts, cmd.OutOrStdout())
		},
	}

	addStackFlags(cmd, &opts.stack)
	cmd.Flags().StringVarP(&opts.format, "format", "f", "dot", "Output format: dot or mermaid")
	cmd.Flags().BoolVarP(&opts.includeParameters, "include-parameters", "p", false, "Include parameter nodes in the graph")
	cmd.Flags().BoolVarP(&opts.clusterByType, "cluster", "c", false, "Cluster resources by AWS service")

	return cmd
}

func runGraph(opts graphOptions, out io.Writer) error {
	var format graph.Format
	switch opts.format {
	case "dot":
		format = graph.FormatDOT
	case "mermaid":
		format = graph.FormatMermaid
	default:
		return fmt.Errorf("unknown format: %s (use 'dot' or 'mermaid')", opts.format)
	}

	tmpl, err := stack.Build(opts.stack)
	if err != nil {
		return fmt.Errorf("building template: %w", err)
	}
	doc, err := tmpl.Build()
	if err != nil {
		return fmt.Errorf("building template: %w", err)
	}

	gen := &graph.Generator{
		Format:            format,
		IncludeParameters: opts.includeParameters,
		ClusterByType:     opts.clusterByType,
	}
	return gen.Generate(doc, out)
}
