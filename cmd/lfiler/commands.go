package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/takawasi/LightningFiler-sub000/internal/config"
	"github.com/takawasi/LightningFiler-sub000/internal/fs"
	"github.com/takawasi/LightningFiler-sub000/internal/navigation"
	"github.com/takawasi/LightningFiler-sub000/internal/shellsetup"
	"github.com/takawasi/LightningFiler-sub000/internal/textutil"
)

func newIndexCmd(opts *rootOptions) *cobra.Command {
	var quiet bool
	cmd := &cobra.Command{
		Use:   "index <folder>...",
		Short: "Record images and archives under folders for the timeline view",
		Long: "Walks each folder and records images and archives in the catalog.\n" +
			"Files that vanished since the last run are dropped unless tagged.\n\n" +
			"Image extensions: " + strings.Join(imageExtensions(), ", "),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			logger, err := opts.logger(false)
			if err != nil {
				return err
			}
			defer logger.Close()

			cat, err := opts.openCatalog(cfg)
			if err != nil {
				return err
			}
			defer cat.Close()

			for _, root := range args {
				var bar *progressbar.ProgressBar
				if !quiet {
					bar = progressbar.NewOptions(-1,
						progressbar.OptionSetDescription("indexing "+filepath.Base(root)),
						progressbar.OptionSetWriter(os.Stderr),
						progressbar.OptionShowCount(),
						progressbar.OptionSpinnerType(14),
						progressbar.OptionThrottle(100*time.Millisecond),
						progressbar.OptionClearOnFinish(),
					)
				}
				start := time.Now()
				n, err := cat.Index(cmd.Context(), root, func(n int) {
					if bar != nil {
						_ = bar.Set(n)
					}
				})
				if bar != nil {
					_ = bar.Finish()
				}
				if err != nil {
					return err
				}
				logger.Info().Str("root", root).Str("catalog", cat.Path()).Int("files", n).Dur("took", time.Since(start)).Msg("indexed")
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s files\n", root, textutil.FormatCount(n))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "no progress output")
	return cmd
}

func newTagCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tag <tag> <file>...",
		Short: "Attach a tag to files",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			cat, err := opts.openCatalog(cfg)
			if err != nil {
				return err
			}
			defer cat.Close()
			for _, path := range args[1:] {
				if err := cat.Tag(path, args[0]); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newUntagCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "untag <tag> <file>...",
		Short: "Remove a tag from files",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			cat, err := opts.openCatalog(cfg)
			if err != nil {
				return err
			}
			defer cat.Close()
			for _, path := range args[1:] {
				if err := cat.Untag(path, args[0]); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newTagsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List tags and how many files carry them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			cat, err := opts.openCatalog(cfg)
			if err != nil {
				return err
			}
			defer cat.Close()

			tags, err := cat.Tags()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, t := range tags {
				fmt.Fprintf(w, "%s\t%d\n", t.Name, t.Count)
			}
			return w.Flush()
		},
	}
}

func newCountCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "count <folder>...",
		Short: "Print how many files each folder holds",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			counter, err := fs.NewCounter(len(args), cfg.Filer.ShowHidden)
			if err != nil {
				return err
			}
			threshold := cfg.Navigation.EnterThreshold
			for _, dir := range args {
				n, err := counter.Count(dir)
				if err != nil {
					return err
				}
				mark := ""
				if n > 0 && n <= threshold {
					mark = "  (opens in viewer)"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d%s\n", dir, n, mark)
			}
			return nil
		},
	}
}

func newSetupCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "setup [shell]",
		Short:     "Print a shell function that changes to the last folder on exit",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: shellsetup.Shells(),
		RunE: func(cmd *cobra.Command, args []string) error {
			shell := ""
			if len(args) == 1 {
				shell = args[0]
			}
			return shellsetup.WriteSetup(cmd.OutOrStdout(), shell, shellsetup.Config{})
		},
	}
}

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the configuration file location",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			path := opts.configPath
			if path == "" {
				path = config.DefaultPath()
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration, keeping existing values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			path := opts.configPath
			if path == "" {
				path = config.DefaultPath()
			}
			if err := cfg.Save(path); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "wrote", path)
			return nil
		},
	})
	return cmd
}

func imageExtensions() []string {
	exts := navigation.ImageExtensions()
	sort.Strings(exts)
	return exts
}
