package cli

import (
	"context"
	"log/slog"

	"github.com/arnavsurve/launchcfg/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose  bool
	debug    bool
	logFile  string
	logger   = slog.New(slog.DiscardHandler)
	closeLog = func() error { return nil }
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "launchcfg",
		Short: "Find the build configuration an Xcode scheme launches with",
		Long: `launchcfg reads Xcode workspaces, projects and shared schemes to find which
build configuration a scheme's launch (Run) action uses, without invoking Xcode.

Common workflows:
  launchcfg resolve -s App                 Resolve against the workspace/project in .
  launchcfg resolve -p App.xcworkspace -s App
  launchcfg resolve -s App -w              Re-resolve whenever a scheme changes
  launchcfg project info                   Show the projects a workspace expands to
  launchcfg schemes                        List shared schemes`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger, closeLog = logging.New(logging.Config{Debug: debug, File: logFile}, cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show each candidate project as it is searched")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Write structured debug logs to stderr")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write JSON debug logs to this file (rotated)")

	rootCmd.AddCommand(resolveCmd())
	rootCmd.AddCommand(projectCmd())
	rootCmd.AddCommand(schemesCmd())

	return rootCmd
}

// Execute runs the command tree and returns the process exit status.
func Execute(ctx context.Context, version string) int {
	rootCmd := newRootCmd()
	rootCmd.Version = version
	return run(ctx, rootCmd)
}

func run(ctx context.Context, rootCmd *cobra.Command) int {
	defer func() {
		_ = closeLog()
	}()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !isReported(err) {
			rootCmd.PrintErrln(err)
		}
		return 1
	}
	return 0
}
