package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml/v2"
	"github.com/takawasi/LightningFiler-sub000/internal/apperr"
	"github.com/takawasi/LightningFiler-sub000/internal/navigation"
)

const appName = "lfiler"

// History modes for back/forward navigation.
const (
	HistoryFrozen = "frozen"
	HistoryLive   = "live"
)

// Config is the on-disk configuration.
type Config struct {
	Navigation  NavigationConfig    `toml:"navigation"`
	Filer       FilerConfig         `toml:"filer"`
	Catalog     CatalogConfig       `toml:"catalog"`
	Search      SearchConfig        `toml:"search"`
	Keybindings map[string][]string `toml:"keybindings"`
}

type NavigationConfig struct {
	EnterThreshold    int    `toml:"enter_threshold"`
	WrapGrid          bool   `toml:"wrap_grid"`
	WrapItems         bool   `toml:"wrap_items"`
	SkipAmount        int    `toml:"skip_amount"`
	SkipEmptySiblings bool   `toml:"skip_empty_siblings"`
	SiblingHistory    bool   `toml:"sibling_history"`
	History           string `toml:"history"`
}

type FilerConfig struct {
	ShowHidden bool   `toml:"show_hidden"`
	SortBy     string `toml:"sort_by"`
	SortOrder  string `toml:"sort_order"`
}

type CatalogConfig struct {
	Path string `toml:"path"`
}

type SearchConfig struct {
	MaxResults int `toml:"max_results"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Navigation: NavigationConfig{
			EnterThreshold:    navigation.DefaultEnterThreshold,
			WrapGrid:          false,
			WrapItems:         true,
			SkipAmount:        10,
			SkipEmptySiblings: true,
			SiblingHistory:    true,
			History:           HistoryFrozen,
		},
		Filer: FilerConfig{
			ShowHidden: false,
			SortBy:     "name",
			SortOrder:  "asc",
		},
		Catalog: CatalogConfig{
			Path: defaultCatalogPath(),
		},
		Search: SearchConfig{
			MaxResults: 500,
		},
		Keybindings: DefaultKeybindings(),
	}
}

// DefaultPath is $XDG_CONFIG_HOME/lfiler/config.toml or its platform
// equivalent.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", "config.toml")
	}
	return filepath.Join(dir, appName, "config.toml")
}

func defaultCatalogPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(".", "catalog.db")
	}
	return filepath.Join(dir, appName, "catalog.db")
}

// Load reads path. A missing file yields the defaults. Values absent from
// the file keep their defaults, and keybindings are merged per command.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, apperr.FromOS(path, err)
	}

	defaults := cfg.Keybindings
	cfg.Keybindings = nil
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, apperr.New(apperr.KindConfig, path, err)
	}
	merged := make(map[string][]string, len(defaults))
	for id, keys := range defaults {
		merged[id] = keys
	}
	for id, keys := range cfg.Keybindings {
		merged[id] = keys
	}
	cfg.Keybindings = merged

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return apperr.FromOS(path, err)
	}
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(c); err != nil {
		return apperr.New(apperr.KindConfig, path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return apperr.FromOS(path, err)
	}
	return nil
}

// Validate rejects values the navigation engine cannot use.
func (c *Config) Validate() error {
	if c.Navigation.EnterThreshold < 0 {
		return apperr.Config("navigation.enter_threshold must be >= 0, got %d", c.Navigation.EnterThreshold)
	}
	if c.Navigation.SkipAmount < 1 {
		return apperr.Config("navigation.skip_amount must be >= 1, got %d", c.Navigation.SkipAmount)
	}
	switch c.Navigation.History {
	case HistoryFrozen, HistoryLive:
	default:
		return apperr.Config("navigation.history must be %q or %q, got %q", HistoryFrozen, HistoryLive, c.Navigation.History)
	}
	switch c.Filer.SortBy {
	case "name", "size", "modified", "type":
	default:
		return apperr.Config("filer.sort_by: unknown key %q", c.Filer.SortBy)
	}
	switch c.Filer.SortOrder {
	case "asc", "desc":
	default:
		return apperr.Config("filer.sort_order: unknown order %q", c.Filer.SortOrder)
	}
	if c.Search.MaxResults < 1 {
		return apperr.Config("search.max_results must be >= 1, got %d", c.Search.MaxResults)
	}
	return nil
}

// Commands lists the bound command ids in stable order.
func (c *Config) Commands() []string {
	ids := make([]string, 0, len(c.Keybindings))
	for id := range c.Keybindings {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (c *Config) String() string {
	return fmt.Sprintf("threshold=%d wrap_grid=%t wrap_items=%t history=%s sort=%s/%s",
		c.Navigation.EnterThreshold, c.Navigation.WrapGrid, c.Navigation.WrapItems,
		c.Navigation.History, c.Filer.SortBy, c.Filer.SortOrder)
}
