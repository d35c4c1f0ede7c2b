package main

import (
	"os"

	"github.com/arthur-debert/skillsync/pkg/classify"
	"github.com/arthur-debert/skillsync/pkg/config"
	"github.com/arthur-debert/skillsync/pkg/errors"
	"github.com/arthur-debert/skillsync/pkg/filesystem"
	"github.com/arthur-debert/skillsync/pkg/logging"
	"github.com/arthur-debert/skillsync/pkg/syncer"
	"github.com/arthur-debert/skillsync/pkg/types"
	"github.com/arthur-debert/skillsync/pkg/ui"
	"github.com/arthur-debert/skillsync/pkg/vcs"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var yes bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run the five-stage sync pass",
	Long: `Sync pulls new store content, links store-only skills into the active
directory, classifies untracked local skills, converts accepted ones
into store entries, and publishes the result.

With --yes (or without a terminal) every pull is accepted and every
untracked skill not matched by a rule is classified global.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.GetLogger("cmd.sync")

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		rules, err := classifyRules(cfg)
		if err != nil {
			return err
		}

		fs := filesystem.NewOS()
		interactive := !yes && isatty.IsTerminal(os.Stdin.Fd())

		var fallback classify.Decider
		var confirmer syncer.Confirmer
		if interactive {
			fallback = classify.NewInteractive(fs)
			confirmer = syncer.TerminalConfirm()
		} else {
			fallback = classify.AutoGlobal()
			confirmer = syncer.AutoConfirm()
		}

		git, err := vcs.NewGit(cmd.Context(), cfg.StoreDir, cfg.Remote, cfg.Branch)
		if err != nil {
			return err
		}

		logger.Info().
			Str("active", cfg.ActiveDir).
			Str("store", cfg.StoreDir).
			Str("namespace", cfg.Namespace).
			Bool("interactive", interactive).
			Msg("starting sync pass")

		orchestrator := syncer.New(syncer.Options{
			Config:    cfg,
			FS:        fs,
			VCS:       git,
			Decider:   classify.NewRules(rules, fallback),
			Confirmer: confirmer,
		})

		result, err := orchestrator.Run(cmd.Context())
		if err != nil {
			return err
		}

		ui.NewRenderer(cmd.OutOrStdout()).Summary(result)

		if result.PublishErr != nil {
			return result.PublishErr
		}
		if result.Failed() {
			itemFailures = true
		}
		return nil
	},
}

// classifyRules converts configured rules into classify rules, checking
// the disposition names up front.
func classifyRules(cfg *config.Config) ([]classify.Rule, error) {
	valid := map[string]types.Disposition{
		string(types.DispositionGlobal):        types.DispositionGlobal,
		string(types.DispositionProjectLocal):  types.DispositionProjectLocal,
		string(types.DispositionExternalVault): types.DispositionExternalVault,
		string(types.DispositionSkip):          types.DispositionSkip,
	}

	rules := make([]classify.Rule, 0, len(cfg.Rules))
	for _, r := range cfg.Rules {
		d, ok := valid[r.Disposition]
		if !ok {
			return nil, errors.Newf(errors.ErrConfigValid, "unknown disposition %q for pattern %q", r.Disposition, r.Pattern)
		}
		rules = append(rules, classify.Rule{Pattern: r.Pattern, Disposition: d})
	}
	return rules, nil
}

func init() {
	syncCmd.Flags().BoolVarP(&yes, "yes", "y", false, "Accept all pulls and classify unmatched skills as global")
}
