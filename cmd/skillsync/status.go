package main

import (
	"github.com/arthur-debert/skillsync/pkg/config"
	"github.com/arthur-debert/skillsync/pkg/filesystem"
	"github.com/arthur-debert/skillsync/pkg/inventory"
	"github.com/arthur-debert/skillsync/pkg/link"
	"github.com/arthur-debert/skillsync/pkg/ui"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the inventory without syncing",
	Long: `Status scans the active directory against the store and prints what a
sync pass would act on. Nothing is mutated and the store is not
contacted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		fs := filesystem.NewOS()
		scanner := inventory.NewScanner(fs, link.NewManager(fs), cfg.Namespace)

		report, err := scanner.Scan(cfg.ActiveDir, cfg.NamespaceDir())
		if err != nil {
			return err
		}

		ui.NewRenderer(cmd.OutOrStdout()).Inventory(report)
		return nil
	},
}
