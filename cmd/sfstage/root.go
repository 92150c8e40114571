package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/cadence-sf/sfstage/pkg/logging"
)

// Set via ldflags at release build time
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	verbosity int
	noColor   bool

	rootCmd = &cobra.Command{
		Use:   "sfstage",
		Short: "Change-set staging for Salesforce metadata",
		Long: `sfstage classifies changed static resources between two revisions,
assembles one deployable artifact per resource and promotes the artifacts
into the directory the deployment job consumes. It also ships the
supporting reports the release process runs alongside each deployment.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command. Called once from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"Disable styled output")

	initTemplateFormatting()

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(stageCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(authorsCmd)
	rootCmd.AddCommand(normalizeCmd)
	rootCmd.AddCommand(docsCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("sfstage version %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}

// repoRoot resolves the repository the command operates on. The
// scheduler always runs sfstage from the clone root, so the working
// directory is the default.
func repoRoot() (string, error) {
	if root := os.Getenv("SFSTAGE_REPO_ROOT"); root != "" {
		return root, nil
	}
	return os.Getwd()
}
