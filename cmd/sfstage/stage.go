package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/cadence-sf/sfstage/pkg/changeset"
	"github.com/cadence-sf/sfstage/pkg/config"
	"github.com/cadence-sf/sfstage/pkg/filesystem"
	"github.com/cadence-sf/sfstage/pkg/git"
	"github.com/cadence-sf/sfstage/pkg/logging"
	"github.com/cadence-sf/sfstage/pkg/output"
	"github.com/cadence-sf/sfstage/pkg/paths"
)

var stageCmd = &cobra.Command{
	Use:   "stage <revisionA> <revisionB> <target>",
	Short: "Stage changed static resources for deployment",
	Long: `Stage diffs two revisions, builds one artifact per changed static
resource and promotes the artifacts into the deployable directory.

Pass ` + paths.FullSnapshotRevision + ` as revisionA to stage every resource in the tree instead
of a diff, for fresh targets with no prior deployment.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.GetLogger("cmd.stage")

		root, err := repoRoot()
		if err != nil {
			return err
		}
		cfg, err := config.Load(root)
		if err != nil {
			return err
		}

		pipeline := changeset.New(filesystem.NewOS(), git.NewCLI(root), root, cfg.Layout(root))
		result, err := pipeline.Run(changeset.Options{
			RevisionA: args[0],
			RevisionB: args[1],
			Target:    args[2],
		})

		if result != nil {
			renderer := output.NewRenderer(os.Stdout, noColor)
			if renderErr := renderer.RenderRun(result); renderErr != nil {
				logger.Warn().Err(renderErr).Msg("Failed to render run summary")
			}
		}
		return err
	},
}
