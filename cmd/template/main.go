// Command civ6-notif-template generates the CloudFormation template for the
// Civilization 6 Play By Cloud notification relay.
//
// Usage:
//
//	civ6-notif-template build               Write cloudformation/civ6-notif.{yaml,json}
//	civ6-notif-template graph -f mermaid    Show resource dependencies
//	civ6-notif-template validate            Lint the generated templates
//	civ6-notif-template version             Show version
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/jrzesz33/civ6_notif/internal/logging"
	"github.com/jrzesz33/civ6_notif/internal/stack"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "civ6-notif-template",
		Short: "Generate the Civ6 notification relay CloudFormation template",
		Long: `civ6-notif-template writes a CloudFormation template that deploys an API
Gateway endpoint, a Lambda relay function and an SNS topic. Civilization 6
posts Play By Cloud turn notifications to the endpoint; the relay forwards
them to a Discord webhook and the SNS topic.

    civ6-notif-template build
    aws cloudformation deploy --template-file cloudformation/civ6-notif.yaml ...`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := logging.GetLogLevel()
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(logging.NewText(cmd.ErrOrStderr(), level))
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")

	rootCmd.AddCommand(
		newBuildCmd(),
		newGraphCmd(),
		newValidateCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// addStackFlags binds the generator-time stack options shared by subcommands.
func addStackFlags(cmd *cobra.Command, opts *stack.Options) {
	cmd.Flags().StringVar(&opts.StageName, "stage", stack.DefaultStageName, "API Gateway stage name")
	cmd.Flags().StringVar(&opts.PathPart, "path", stack.DefaultPathPart, "Resource path the game client posts to")
	cmd.Flags().StringVar(&opts.CodeBucket, "code-bucket", stack.DefaultCodeBucket, "S3 bucket holding the relay deployment package")
	cmd.Flags().StringVar(&opts.CodeKey, "code-key", stack.DefaultCodeKey, "S3 key of the relay deployment package")
}
