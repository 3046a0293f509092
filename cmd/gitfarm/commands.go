package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/gitfarm/internal/version"
	"github.com/arthur-debert/gitfarm/pkg/config"
	"github.com/arthur-debert/gitfarm/pkg/dispatcher"
	"github.com/arthur-debert/gitfarm/pkg/display"
	"github.com/arthur-debert/gitfarm/pkg/editor"
	"github.com/arthur-debert/gitfarm/pkg/logging"
	"github.com/arthur-debert/gitfarm/pkg/paths"
	"github.com/arthur-debert/gitfarm/pkg/settings"
	"github.com/arthur-debert/gitfarm/pkg/types"
)

// globalOpts carries the persistent flag values into subcommand runs
type globalOpts struct {
	verbosity  int
	configPath string
	quiet      bool
	noEmoji    bool
	dryRun     bool
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	opts := &globalOpts{}

	rootCmd := &cobra.Command{
		Use:     "gitfarm",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, MsgFlagQuiet)
	rootCmd.PersistentFlags().BoolVar(&opts.noEmoji, "no-emoji", false, MsgFlagNoEmoji)
	rootCmd.PersistentFlags().BoolVar(&opts.dryRun, "dry-run", false, MsgFlagDryRun)

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.AddCommand(newCloneCmd(opts))
	rootCmd.AddCommand(newPullCmd(opts))
	rootCmd.AddCommand(newAddCmd(opts))
	rootCmd.AddCommand(newCommitCmd(opts))
	rootCmd.AddCommand(newPushCmd(opts))
	rootCmd.AddCommand(newQuickCmd(opts))
	rootCmd.AddCommand(newLinkCmd(opts))
	rootCmd.AddCommand(newUnlinkCmd(opts))
	rootCmd.AddCommand(newListCmd(opts))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// newOperationCmd builds a subcommand that dispatches one operation over
// positional category names, optionally narrowed by --repo.
func newOperationCmd(opts *globalOpts, op types.Operation, use, short, long string) *cobra.Command {
	var repos []string

	cmd := &cobra.Command{
		Use:     use,
		Short:   short,
		Long:    long,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			sel := types.Selection{Categories: args, Repos: repos}
			return runOperation(opts, op, sel, nil)
		},
	}
	cmd.Flags().StringSliceVarP(&repos, "repo", "r", nil, MsgFlagRepos)
	return cmd
}

func newCloneCmd(opts *globalOpts) *cobra.Command {
	return newOperationCmd(opts, types.OpClone, "clone [categories...]", MsgCloneShort, MsgCloneLong)
}

func newPullCmd(opts *globalOpts) *cobra.Command {
	return newOperationCmd(opts, types.OpPull, "pull [categories...]", MsgPullShort, "")
}

func newAddCmd(opts *globalOpts) *cobra.Command {
	return newOperationCmd(opts, types.OpAdd, "add [categories...]", MsgAddShort, "")
}

func newPushCmd(opts *globalOpts) *cobra.Command {
	return newOperationCmd(opts, types.OpPush, "push [categories...]", MsgPushShort, "")
}

func newLinkCmd(opts *globalOpts) *cobra.Command {
	return newOperationCmd(opts, types.OpCreateLinks, "link [categories...]", MsgLinkShort, MsgLinkLong)
}

func newUnlinkCmd(opts *globalOpts) *cobra.Command {
	return newOperationCmd(opts, types.OpRemoveLinks, "unlink [categories...]", MsgUnlinkShort, MsgUnlinkLong)
}

func newCommitCmd(opts *globalOpts) *cobra.Command {
	var (
		repos   []string
		message string
		quick   bool
		fast    bool
		edit    bool
	)

	cmd := &cobra.Command{
		Use:     "commit [categories...]",
		Short:   MsgCommitShort,
		Long:    MsgCommitLong,
		Example: MsgCommitExample,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := settings.Load(paths.SettingsFile())
			if err != nil {
				return err
			}
			var strategy dispatcher.MessageStrategy
			switch {
			case message != "":
				strategy = dispatcher.StaticMessage{Text: message}
			case quick:
				strategy = dispatcher.QuickMessage{Text: s.DefaultMessage}
			case fast:
				strategy = dispatcher.FastMessage{}
			case edit:
				strategy = dispatcher.EditMessage{Editor: editor.New(s.Editor)}
			}
			sel := types.Selection{Categories: args, Repos: repos}
			return runOperation(opts, types.OpCommit, sel, strategy)
		},
	}
	cmd.Flags().StringSliceVarP(&repos, "repo", "r", nil, MsgFlagRepos)
	cmd.Flags().StringVarP(&message, "message", "m", "", "Commit with this message")
	cmd.Flags().BoolVar(&quick, "quick", false, "Commit with the default message, no prompts")
	cmd.Flags().BoolVar(&fast, "fast", false, "Commit with a message derived from category and time")
	cmd.Flags().BoolVar(&edit, "edit", false, "Open the editor for each repository's message")
	cmd.MarkFlagsMutuallyExclusive("message", "quick", "fast", "edit")
	return cmd
}

func newQuickCmd(opts *globalOpts) *cobra.Command {
	var (
		repos   []string
		message string
	)

	cmd := &cobra.Command{
		Use:     "quick [categories...]",
		Short:   MsgQuickShort,
		Long:    MsgQuickLong,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := settings.Load(paths.SettingsFile())
			if err != nil {
				return err
			}
			var strategy dispatcher.MessageStrategy
			if message != "" {
				strategy = dispatcher.StaticMessage{Text: message}
			} else {
				strategy = dispatcher.QuickMessage{Text: s.DefaultMessage}
			}
			sel := types.Selection{Categories: args, Repos: repos}
			return runOperation(opts, types.OpQuick, sel, strategy)
		},
	}
	cmd.Flags().StringSliceVarP(&repos, "repo", "r", nil, MsgFlagRepos)
	cmd.Flags().StringVarP(&message, "message", "m", "", "Commit with this message")
	return cmd
}

func newListCmd(opts *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   MsgListShort,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile(opts))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, name := range cfg.CategoryNames {
				cat := cfg.Categories[name]
				header := name
				if flags := cat.Flags.Strings(); len(flags) > 0 {
					header += " [" + strings.Join(flags, ", ") + "]"
				}
				fmt.Fprintln(out, header)
				entries, err := cfg.Store.Resolve(cat)
				if err != nil {
					return err
				}
				for _, entry := range entries {
					line := "  " + entry.Name
					if entry.Path != "" {
						line += "  " + entry.Dir()
					}
					if flags := entry.Flags.Strings(); len(flags) > 0 {
						line += " [" + strings.Join(flags, ", ") + "]"
					}
					fmt.Fprintln(out, line)
				}
				for _, link := range cat.Links {
					fmt.Fprintf(out, "  %s -> %s\n", link.Source, link.Target)
				}
			}
			if len(cfg.Links) > 0 {
				fmt.Fprintln(out, "global links")
				for _, link := range cfg.Links {
					fmt.Fprintf(out, "  %s -> %s\n", link.Source, link.Target)
				}
			}
			fmt.Fprintf(out, "%d repos in store\n", cfg.Store.Len())
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("gitfarm version %s\n", version.Version)
			fmt.Printf("  commit: %s\n", version.Commit)
			fmt.Printf("  built:  %s\n", version.Date)
		},
	}
}

// runOperation wires the collaborators together and dispatches one run. The
// exit code convention lives here: any failed item makes the command fail,
// regardless of how many.
func runOperation(opts *globalOpts, op types.Operation, sel types.Selection, strategy dispatcher.MessageStrategy) error {
	s, err := settings.Load(paths.SettingsFile())
	if err != nil {
		return err
	}

	cfg, err := config.Load(configFile(opts))
	if err != nil {
		return err
	}

	printer := display.NewPrinter(display.Options{
		Quiet: opts.quiet || s.Quiet,
		Emoji: s.Emoji && !opts.noEmoji,
	})

	disp := dispatcher.New(dispatcher.Options{
		Config:         cfg,
		Executor:       dispatcher.NewSystemExecutor(),
		Editor:         editor.New(s.Editor),
		Reporter:       printer,
		Strategy:       strategy,
		DefaultMessage: s.DefaultMessage,
		DryRun:         opts.dryRun,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := disp.Run(ctx, op, sel)
	if result != nil {
		printer.Summary(result)
	}
	if err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%d item(s) failed", len(result.Failed()))
	}
	return nil
}

func configFile(opts *globalOpts) string {
	if opts.configPath != "" {
		return opts.configPath
	}
	return paths.ConfigFile()
}
