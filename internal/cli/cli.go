package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/pfrederiksen/nps-explorer/internal/build"
	"github.com/pfrederiksen/nps-explorer/internal/explorer"
	"github.com/pfrederiksen/nps-explorer/internal/logger"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagConfig      string
	flagCacheFile   string
	flagFormat      string
	flagStrictCache bool
	flagVerbose     bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nps-explorer",
		Short: "Explore National Park Service sites and nearby places",
		Long: `An interactive explorer for U.S. National Park Service sites.
Pick a state to list its sites from nps.gov, then pick a site to search for
businesses nearby. Every response is cached on disk, so repeated lookups
do not hit the network.`,
		Version:       build.FullVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          runExplore,
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default ./nps-explorer.toml if present)")
	cmd.PersistentFlags().StringVar(&flagCacheFile, "cache-file", "", "Cache file path (overrides config)")
	cmd.PersistentFlags().BoolVar(&flagStrictCache, "strict-cache", false, "Fail on an unreadable cache file instead of starting empty")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging to stderr")

	cmd.AddCommand(newStatesCmd(), newSitesCmd())

	return cmd
}

// runExplore runs the interactive session
func runExplore(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer logMetrics()

	if err := a.cfg.RequireAPIKey(); err != nil {
		return err
	}

	directory, err := a.scraper.BuildStateDirectory(cmd.Context())
	if err != nil {
		return err
	}

	session := explorer.New(directory, a.scraper, a.places, cmd.InOrStdin(), cmd.OutOrStdout())
	return session.Run(cmd.Context())
}

func newStatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "states",
		Short: "List the states in the nps.gov directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseFormat(flagFormat)
			if err != nil {
				return err
			}

			a, err := newApp(cmd.ErrOrStderr(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer logMetrics()

			directory, err := a.scraper.BuildStateDirectory(cmd.Context())
			if err != nil {
				return err
			}

			return WriteStates(cmd.OutOrStdout(), directory, format)
		},
	}
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	return cmd
}

func newSitesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sites <state>",
		Short:   "List the National Park Service sites in a state",
		Example: "  nps-explorer sites michigan\n  nps-explorer sites new york --format json",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseFormat(flagFormat)
			if err != nil {
				return err
			}

			a, err := newApp(cmd.ErrOrStderr(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer logMetrics()

			directory, err := a.scraper.BuildStateDirectory(cmd.Context())
			if err != nil {
				return err
			}

			state := strings.ToLower(strings.Join(args, " "))
			stateURL, ok := directory[state]
			if !ok {
				return fmt.Errorf("unknown state: %q", state)
			}

			sites, err := a.scraper.ListSitesForState(cmd.Context(), stateURL)
			if err != nil {
				return err
			}

			return WriteSites(cmd.OutOrStdout(), state, sites, format)
		},
	}
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	return cmd
}

func parseFormat(value string) (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(value))
	if format != FormatText && format != FormatJSON {
		return "", fmt.Errorf("invalid format: %s (must be 'text' or 'json')", value)
	}
	return format, nil
}

// Execute runs the CLI
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := execute(ctx, NewRootCmd(), os.Stderr)
	stop()
	os.Exit(code)
}

// execute runs cmd and reports a failure on stderr, returning the exit code.
func execute(ctx context.Context, cmd *cobra.Command, stderr io.Writer) int {
	if err := cmd.ExecuteContext(ctx); err != nil {
		logger.Error("command failed", logger.Fields{"command": cmd.Name()}, err)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitError
	}
	return ExitSuccess
}
