package jarreloc

import (
	"fmt"

	"github.com/arthur-debert/jarreloc/internal/version"
	"github.com/arthur-debert/jarreloc/pkg/config"
	"github.com/arthur-debert/jarreloc/pkg/logging"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// annotationConfig marks commands that load the layered configuration
const annotationConfig = "config"

// configFlags maps command-line flags onto configuration keys
var configFlags = map[string]string{
	"prune":     "prune_sources",
	"keep-temp": "keep_failed_temp",
	"dry-run":   "dry_run",
	"log-file":  "log.file",
	"no-color":  "log.no_color",
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var (
		verbosity  int
		configFile string
	)

	rootCmd := &cobra.Command{
		Use:     "jarreloc",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			var loadErr error
			if cmd.Annotations[annotationConfig] == "true" {
				var loaded *config.Config
				loaded, loadErr = config.Load(config.LoadOptions{
					File:      configFile,
					Overrides: flagOverrides(cmd),
				})
				if loadErr == nil {
					cfg = loaded
				}
			} else {
				cfg.Log.File, _ = cmd.Flags().GetString("log-file")
				cfg.Log.NoColor, _ = cmd.Flags().GetBool("no-color")
			}

			logging.SetupLoggerWithOptions(verbosity, logging.Options{
				File:    cfg.Log.File,
				NoColor: cfg.Log.NoColor,
			})
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
			logging.LogCommand(cmd.CommandPath(), args)

			if loadErr != nil {
				return loadErr
			}
			config.Initialize(cfg)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().String("log-file", "", MsgFlagLogFile)
	rootCmd.PersistentFlags().Bool("no-color", false, MsgFlagNoColor)

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.AddCommand(newRelocateCmd())
	rootCmd.AddCommand(newGenConfigCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	return rootCmd
}

// flagOverrides collects the config-backed flags the user set explicitly
func flagOverrides(cmd *cobra.Command) map[string]interface{} {
	overrides := make(map[string]interface{})
	for flag, key := range configFlags {
		if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
			overrides[key] = f.Value.String()
		}
	}
	return overrides
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "jarreloc version %s\n", version.Version)
			fmt.Fprintf(out, "  commit: %s\n", version.Commit)
			fmt.Fprintf(out, "  built:  %s\n", version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

func newManCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "man",
		Short:   MsgManShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			header := &doc.GenManHeader{
				Title:   "JARRELOC",
				Section: "1",
				Source:  "jarreloc " + version.Version,
				Manual:  "jarreloc manual",
			}
			return doc.GenMan(cmd.Root(), header, cmd.OutOrStdout())
		},
	}
}
