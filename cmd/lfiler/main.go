package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	apppkg "github.com/takawasi/LightningFiler-sub000/internal/app"
	"github.com/takawasi/LightningFiler-sub000/internal/catalog"
	"github.com/takawasi/LightningFiler-sub000/internal/config"
	"github.com/takawasi/LightningFiler-sub000/internal/logging"
)

var version = "dev"

type rootOptions struct {
	configPath string
	logFile    string
	logLevel   string
	debug      bool
	cdFile     string
	noCatalog  bool
}

func main() {
	// Fall back to UTF-8 so non-ASCII names render on minimal terminals.
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "lfiler:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "lfiler [path]",
		Short:         "Keyboard-driven image and file browser",
		Args:          cobra.MaximumNArgs(1),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			start := ""
			if len(args) == 1 {
				start = args[0]
			}
			return runBrowser(cmd.Context(), opts, start)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "configuration file (default "+config.DefaultPath()+")")
	flags.StringVar(&opts.logFile, "log-file", "", "write logs to this file")
	flags.StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flags.BoolVar(&opts.debug, "debug", false, "shorthand for --log-level=debug")
	flags.StringVar(&opts.cdFile, "cd-file", "", "write the last visited folder to this file on exit")
	root.Flags().BoolVar(&opts.noCatalog, "no-catalog", false, "run without the tag catalog")

	root.AddCommand(
		newIndexCmd(opts),
		newTagCmd(opts),
		newUntagCmd(opts),
		newTagsCmd(opts),
		newCountCmd(opts),
		newSetupCmd(),
		newConfigCmd(opts),
	)
	return root
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	path := o.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	return config.Load(path)
}

// logger builds the session logger. The TUI owns the terminal, so without
// --log-file nothing is logged while browsing.
func (o *rootOptions) logger(interactive bool) (*logging.Logger, error) {
	level, err := logging.ParseLevel(o.logLevel)
	if err != nil {
		return nil, err
	}
	if o.debug {
		level = zerolog.DebugLevel
	}
	if o.logFile != "" {
		return logging.NewFile(o.logFile, level)
	}
	if interactive {
		return logging.Nop(), nil
	}
	return logging.New(os.Stderr, level), nil
}

func (o *rootOptions) openCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	return catalog.Open(cfg.Catalog.Path)
}

func runBrowser(ctx context.Context, opts *rootOptions, start string) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	logger, err := opts.logger(true)
	if err != nil {
		return err
	}
	defer logger.Close()

	var cat *catalog.Catalog
	if !opts.noCatalog {
		if cat, err = opts.openCatalog(cfg); err != nil {
			logger.Warn().Err(err).Str("path", cfg.Catalog.Path).Msg("catalog unavailable, tags disabled")
			cat = nil
		} else {
			defer cat.Close()
		}
	}

	app, err := apppkg.NewApplication(apppkg.Options{
		Config:    cfg,
		Logger:    logger,
		Catalog:   cat,
		StartPath: start,
	})
	if err != nil {
		return err
	}

	runErr := app.Run(ctx)
	last := app.CurrentPath()
	_ = app.Close()
	if errors.Is(runErr, context.Canceled) {
		runErr = nil
	}
	if runErr != nil {
		return runErr
	}

	if opts.cdFile != "" && last != "" {
		if err := os.WriteFile(filepath.Clean(opts.cdFile), []byte(last), 0o600); err != nil {
			fmt.Fprintf(os.Stderr, "lfiler: could not write %s: %v\n", opts.cdFile, err)
		}
	}
	return nil
}
