package jarreloc

import (
	"fmt"

	"github.com/arthur-debert/jarreloc/pkg/classfile"
	"github.com/arthur-debert/jarreloc/pkg/config"
	"github.com/arthur-debert/jarreloc/pkg/errors"
	"github.com/arthur-debert/jarreloc/pkg/logging"
	"github.com/arthur-debert/jarreloc/pkg/relocator"
	"github.com/arthur-debert/jarreloc/pkg/remap"
	"github.com/arthur-debert/jarreloc/pkg/style"
	"github.com/spf13/cobra"
)

func newRelocateCmd() *cobra.Command {
	var (
		relocations []string
		list        bool
	)

	cmd := &cobra.Command{
		Use:         "relocate <dir>",
		Short:       MsgRelocateShort,
		Long:        MsgRelocateLong,
		Example:     MsgRelocateExample,
		GroupID:     "core",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{annotationConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.relocate")
			cfg := config.Get()

			rules, err := collectRelocations(relocations, cfg.Relocations)
			if err != nil {
				return err
			}
			remapper, err := remap.New(rules...)
			if err != nil {
				return err
			}

			logger.Info().
				Str("root", args[0]).
				Int("relocations", remapper.Len()).
				Bool("prune", cfg.PruneSources).
				Bool("dry_run", cfg.DryRun).
				Msg("Starting relocation")

			r := relocator.New(relocator.Options{
				Root:           args[0],
				Remapper:       remapper,
				Rewriter:       classfile.New(),
				PruneSources:   cfg.PruneSources,
				KeepFailedTemp: cfg.KeepFailedTemp,
				DryRun:         cfg.DryRun,
			})
			result, err := r.Relocate()
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), style.RenderSummary(result, list))
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&relocations, "relocate", "r", nil, MsgFlagRelocate)
	cmd.Flags().Bool("prune", false, MsgFlagPrune)
	cmd.Flags().Bool("keep-temp", false, MsgFlagKeepTemp)
	cmd.Flags().Bool("dry-run", false, MsgFlagDryRun)
	cmd.Flags().BoolVar(&list, "list", false, MsgFlagList)

	return cmd
}

// collectRelocations puts command-line relocations ahead of configured ones
func collectRelocations(flags []string, configured []remap.Relocation) ([]remap.Relocation, error) {
	var rules []remap.Relocation
	for _, spec := range flags {
		rel, err := remap.ParseRelocation(spec)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rel)
	}
	rules = append(rules, configured...)

	if len(rules) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, MsgNoRelocations)
	}
	return rules, nil
}
