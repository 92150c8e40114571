package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cadence-sf/sfstage/pkg/authors"
	"github.com/cadence-sf/sfstage/pkg/git"
	"github.com/cadence-sf/sfstage/pkg/output"
)

var authorsCmd = &cobra.Command{
	Use:   "authors <author name>",
	Short: "Show an author's last commit date per branch",
	Long: `Authors lists every branch with the author's most recent commit date
on it, starring the latest. Branches the author never touched show NA.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		author := strings.TrimSpace(strings.Join(args, " "))

		root, err := repoRoot()
		if err != nil {
			return err
		}

		report, err := authors.Report(git.NewCLI(root), author)
		if err != nil {
			return err
		}
		return output.NewRenderer(os.Stdout, noColor).RenderAuthors(report)
	},
}
