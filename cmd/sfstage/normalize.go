package main

import (
	"github.com/spf13/cobra"

	"github.com/cadence-sf/sfstage/pkg/archive"
	"github.com/cadence-sf/sfstage/pkg/filesystem"
	"github.com/cadence-sf/sfstage/pkg/logging"
	"github.com/cadence-sf/sfstage/pkg/normalize"
)

var (
	normalizeRules   string
	normalizeFromZip string
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize <directory>",
	Short: "Normalize a metadata tree layout",
	Long: `Normalize renames metadata folders to their canonical names and folds
the shared-label file into the standard CustomLabels location. Without
--rules the built-in mapping is applied.

With --from-zip an org dump archive is extracted into the directory
first, then normalized in place.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.GetLogger("cmd.normalize")
		fsys := filesystem.NewOS()
		dir := args[0]

		rules, err := normalize.LoadRules(fsys, normalizeRules)
		if err != nil {
			return err
		}

		if normalizeFromZip != "" {
			if err := archive.Extract(normalizeFromZip, dir); err != nil {
				return err
			}
			logger.Info().Str("zip", normalizeFromZip).Str("dir", dir).Msg("Dump extracted")
		}

		if err := normalize.Apply(fsys, dir, rules); err != nil {
			return err
		}
		logger.Info().Str("dir", dir).Msg("Normalization completed")
		return nil
	},
}

func init() {
	normalizeCmd.Flags().StringVar(&normalizeRules, "rules", "",
		"YAML rule file overriding the built-in mapping")
	normalizeCmd.Flags().StringVar(&normalizeFromZip, "from-zip", "",
		"Org dump archive to extract before normalizing")
}
