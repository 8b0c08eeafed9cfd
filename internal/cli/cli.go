// Package cli holds the keyremap command line.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/TanaroSch/keyremap/internal/app"
	"github.com/TanaroSch/keyremap/internal/config"
	"github.com/TanaroSch/keyremap/internal/keysend"
	"github.com/TanaroSch/keyremap/internal/logging"
)

// Main runs the command line and exits. On macOS the command runs off the
// main thread, which stays with the hotkey library's event loop.
func Main(version string) {
	runOnMainThread(func() {
		os.Exit(Execute(version))
	})
}

// Execute runs the command line and returns the process exit code.
func Execute(version string) int {
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		return 1
	}
	return 0
}

var rootCmd = &cobra.Command{
	Use:   "keyremap",
	Short: "Remap global keyboard shortcuts to function and media keys",
	Long: `keyremap binds global keyboard shortcuts and answers each press with a
synthesized target key (F13-F24, browser and media keys).

Run without arguments to start the remapper. The other commands edit the
mapping store; a running remapper picks the change up automatically.

Examples:
  keyremap                          # Start the remapper
  keyremap add Ctrl+Alt+1 F13       # Map Ctrl+Alt+1 to F13
  keyremap list                     # Show mappings and their state
  keyremap source 1 Ctrl+Alt+2      # Change the shortcut of mapping 1
  keyremap check                    # Report conflicts (exit 1 if any)`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRemapper(cmd)
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the remapper (default)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRemapper(cmd)
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List mappings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, false, func(s *app.Session) error {
			return printEntries(cmd, s)
		})
	},
}

var addCmd = &cobra.Command{
	Use:   "add <source> <target>",
	Short: "Add a mapping",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, true, func(s *app.Session) error {
			s.Add(args[0], args[1])
			return printEntries(cmd, s)
		})
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <index>",
	Short: "Remove a mapping",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := parseIndex(args[0])
		if err != nil {
			return err
		}
		return withSession(cmd, true, func(s *app.Session) error {
			if err := s.Remove(index); err != nil {
				return err
			}
			return printEntries(cmd, s)
		})
	},
}

var sourceCmd = &cobra.Command{
	Use:   "source <index> <chord>",
	Short: "Change the shortcut of a mapping",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := parseIndex(args[0])
		if err != nil {
			return err
		}
		return withSession(cmd, true, func(s *app.Session) error {
			if err := s.SetSource(index, args[1]); err != nil {
				return err
			}
			return printEntries(cmd, s)
		})
	},
}

var targetCmd = &cobra.Command{
	Use:   "target <index> <key>",
	Short: "Change the target key of a mapping",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := parseIndex(args[0])
		if err != nil {
			return err
		}
		return withSession(cmd, true, func(s *app.Session) error {
			if err := s.SetTarget(index, args[1]); err != nil {
				return err
			}
			return printEntries(cmd, s)
		})
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report conflicting or unusable mappings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, false, func(s *app.Session) error {
			problems := s.Problems()
			out := cmd.OutOrStdout()
			for _, p := range problems {
				fmt.Fprintf(out, "%d\t%s\t%s\n", p.Index+1, app.Describe(p.Source, p.Target), p.Message)
			}
			if len(problems) > 0 {
				return fmt.Errorf("%d problem(s) found", len(problems))
			}
			fmt.Fprintln(out, "No problems found.")
			return nil
		})
	},
}

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "List supported target keys",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range keysend.Targets() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

// Global flags
var (
	flagConfig  string
	flagVerbose bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config.toml (default: user config dir)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(sourceCmd)
	rootCmd.AddCommand(targetCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(targetsCmd)
}

// loadConfig resolves the config path and builds the logger from the
// config and the flags.
func loadConfig(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	path := flagConfig
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return nil, nil, err
		}
	}

	// The settings decide verbosity, so the first load logs at the flag's level.
	bootLogger := logging.New(flagVerbose, cmd.ErrOrStderr())
	cfg, err := config.Load(path, bootLogger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if flagVerbose {
		cfg.Verbose = true
	}
	return cfg, logging.New(cfg.Verbose, cmd.ErrOrStderr()), nil
}

// runRemapper runs the remapper until interrupted.
func runRemapper(cmd *cobra.Command) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	application, err := app.New(cfg, cmd.Root().Version, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return application.Run(ctx)
}

// withSession opens an editing session, runs fn and closes the session.
// Read-only commands skip the write-back.
func withSession(cmd *cobra.Command, save bool, fn func(*app.Session) error) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	s, err := app.OpenSession(cfg, logger)
	if err != nil {
		return err
	}

	fnErr := fn(s)
	if !save {
		return fnErr
	}
	if err := s.Close(); err != nil && fnErr == nil {
		return err
	}
	return fnErr
}

// printEntries prints mappings as a table with one-based indexes.
func printEntries(cmd *cobra.Command, s *app.Session) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tSOURCE\tTARGET\tSTATE")
	for i, e := range s.Entries() {
		state := "ok"
		switch {
		case !e.IsValid():
			state = "incomplete"
		case e.Disabled():
			state = "conflict"
		case !e.IsRegistered():
			state = "invalid shortcut"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i+1, e.Source(), e.Target(), state)
	}
	return w.Flush()
}

// parseIndex converts a one-based index argument.
func parseIndex(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid index %q: want a number starting at 1", arg)
	}
	return n - 1, nil
}
