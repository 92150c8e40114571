package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cadence-sf/sfstage/pkg/config"
	"github.com/cadence-sf/sfstage/pkg/errors"
	"github.com/cadence-sf/sfstage/pkg/filesystem"
	"github.com/cadence-sf/sfstage/pkg/output"
	"github.com/cadence-sf/sfstage/pkg/scan"
	"github.com/cadence-sf/sfstage/pkg/types"
)

var scanCmd = &cobra.Command{
	Use:   "scan <ENV> <MODE>",
	Short: "Report hard-coded string literals in Apex classes",
	Long: `Scan extracts string literals from Apex class files and writes them to
a CSV for review before deployment.

MODE selects the tree to scan:
  1  src/classes only
  2  changeSetDeploy/src/classes only
  3  both trees, producing both CSVs`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		env := args[0]
		mode := args[1]
		if env == "" {
			return errors.New(errors.ErrInvalidInput, "environment name must not be empty")
		}
		if mode != "1" && mode != "2" && mode != "3" {
			return errors.Newf(errors.ErrInvalidInput, "invalid mode %q, must be 1, 2 or 3", mode)
		}

		root, err := repoRoot()
		if err != nil {
			return err
		}
		cfg, err := config.Load(root)
		if err != nil {
			return err
		}
		srcDir, changesetDir := cfg.ScanDirs(root)

		fsys := filesystem.NewOS()
		renderer := output.NewRenderer(os.Stdout, noColor)

		if mode == "1" || mode == "3" {
			csvPath := filepath.Join(root, fmt.Sprintf("hardcoded_src_classes_%s.csv", env))
			if err := runScan(fsys, srcDir, csvPath, renderer); err != nil {
				return err
			}
		}
		if mode == "2" || mode == "3" {
			csvPath := filepath.Join(root, fmt.Sprintf("hardcoded_changeset_classes_%s.csv", env))
			if err := runScan(fsys, changesetDir, csvPath, renderer); err != nil {
				return err
			}
		}
		return nil
	},
}

func runScan(fsys types.FS, dir, csvPath string, renderer *output.Renderer) error {
	hits, err := scan.ScanDir(fsys, dir)
	if err != nil {
		return err
	}
	if err := scan.WriteCSV(fsys, csvPath, hits); err != nil {
		return err
	}
	return renderer.RenderScanSummary(csvPath, len(hits))
}
