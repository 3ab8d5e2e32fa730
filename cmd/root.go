// Package cmd implements the osintex command line.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/osintex/cli/internal/catalog"
	"github.com/osintex/cli/internal/config"
	"github.com/osintex/cli/internal/favorites"
	"github.com/osintex/cli/internal/logging"
	"github.com/osintex/cli/internal/popup"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// Metadata describes the build.
type Metadata struct {
	Version string
	Commit  string
	Date    string
}

var metadata = Metadata{Version: "dev", Commit: "none", Date: "unknown"}

var (
	cfgFile string
	verbose bool
)

type appKey struct{}

// app holds what every command resolves before it runs.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	closer io.Closer
}

var rootCmd = &cobra.Command{
	Use:   "osintex",
	Short: "Browse a curated catalog of OSINT tools",
	Long: `osintex browses a curated catalog of OSINT tools grouped by category.

Run without a subcommand to open the interactive browser. Favorites are kept
in the configured backend (file, keyring, sqlite or memory).`,
	SilenceUsage:      true,
	PersistentPreRunE: setupApp,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if a, ok := cmd.Context().Value(appKey{}).(*app); ok && a.closer != nil {
			return a.closer.Close()
		}
		return nil
	},
	RunE: runBrowse,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/osintex/config.yaml)")
	pf.String("catalog", "", "catalog JSON file or directory (default is the built-in catalog)")
	pf.String("favorites-backend", "", "where favorites are kept: file, keyring, sqlite or memory")
	pf.String("favorites-path", "", "favorites file or sqlite database path")
	pf.String("log-level", "", "log level: debug, info, warn or error")
	pf.String("log-file", "", "write logs to this file")
	pf.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	addBrowseFlags(rootCmd)

	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(favoritesCmd)
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(completionCmd)
}

// Execute runs the root command with the given build metadata.
func Execute(m Metadata) {
	metadata = m

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fang.Execute(ctx, rootCmd,
		fang.WithVersion(m.Version),
		fang.WithCommit(m.Commit),
	); err != nil {
		stop()
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if verbose && !cmd.Flags().Changed("log-level") {
		level = slog.LevelDebug
	}

	a := &app{cfg: cfg}
	switch {
	case cfg.LogFile != "":
		a.logger, a.closer, err = logging.OpenFile(cfg.LogFile, level)
		if err != nil {
			return err
		}
	case isInteractive(cmd):
		// The TUI owns the terminal
		a.logger = logging.Discard()
	default:
		a.logger = logging.New(os.Stderr, level)
	}
	slog.SetDefault(a.logger)

	cmd.SetContext(context.WithValue(cmd.Context(), appKey{}, a))
	return nil
}

// isInteractive reports whether cmd runs the TUI: the root command or browse.
func isInteractive(cmd *cobra.Command) bool {
	return !cmd.HasParent() || cmd.Name() == "browse"
}

func getApp(cmd *cobra.Command) *app {
	if a, ok := cmd.Context().Value(appKey{}).(*app); ok {
		return a
	}
	return &app{cfg: &config.Config{FavoritesBackend: config.BackendMemory}, logger: logging.Discard()}
}

// openController initializes the popup from the configured catalog and
// favorites backend. The returned cleanup waits for pending favorite writes
// and closes the backend.
func openController(cmd *cobra.Command, opener popup.Opener) (*popup.Controller, func(), error) {
	a := getApp(cmd)
	ctx := cmd.Context()

	kv, closeKV, err := a.cfg.OpenFavoritesKV(ctx)
	if err != nil {
		// Favorites stay usable for the session; Load reports the failure
		a.logger.Warn("failed to open favorites backend",
			slog.String("backend", a.cfg.FavoritesBackend), slog.Any("error", err))
		kv = favorites.UnavailableKV{Err: fmt.Errorf("failed to open favorites: %w", err)}
	}

	store := favorites.New(kv, favorites.Options{
		Key:    a.cfg.FavoritesKey,
		Logger: a.logger,
		OnError: func(err error) {
			if !isInteractive(cmd) {
				pterm.Warning.Println(err.Error())
			}
		},
	})

	ctrl, err := popup.Initialize(ctx, popup.Config{
		Source:    catalog.NewSource(a.cfg.Catalog),
		Favorites: store,
		Opener:    opener,
		Logger:    a.logger,
	})
	cleanup := func() {
		ctrl.Close()
		if err := closeKV(); err != nil {
			a.logger.Warn("failed to close favorites backend", slog.Any("error", err))
		}
	}
	if err != nil && !isInteractive(cmd) {
		cleanup()
		return nil, func() {}, err
	}
	return ctrl, cleanup, nil
}
