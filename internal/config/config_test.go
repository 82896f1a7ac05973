package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/takawasi/LightningFiler-sub000/internal/apperr"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Navigation.EnterThreshold)
	assert.Equal(t, HistoryFrozen, cfg.Navigation.History)
	assert.True(t, cfg.Navigation.WrapItems)
	assert.False(t, cfg.Navigation.WrapGrid)
	assert.Equal(t, []string{"Right", "l", "Space"}, cfg.Keybindings["nav.next_item"])
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[navigation]
enter_threshold = 12
history = "live"

[keybindings]
"app.quit" = ["Q"]
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Navigation.EnterThreshold)
	assert.Equal(t, HistoryLive, cfg.Navigation.History)
	assert.Equal(t, 10, cfg.Navigation.SkipAmount, "unset values keep defaults")
	assert.Equal(t, "name", cfg.Filer.SortBy)
	assert.Equal(t, []string{"Q"}, cfg.Keybindings["app.quit"])
	assert.Equal(t, []string{"Home", "g"}, cfg.Keybindings["nav.first_item"], "other bindings merged in")
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"negative threshold", "[navigation]\nenter_threshold = -1\n"},
		{"unknown history", "[navigation]\nhistory = \"sometimes\"\n"},
		{"unknown sort", "[filer]\nsort_by = \"color\"\n"},
		{"zero skip", "[navigation]\nskip_amount = 0\n"},
		{"bad toml", "[navigation\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0o644))
			_, err := Load(path)
			require.Error(t, err)
			kind, ok := apperr.KindOf(err)
			require.True(t, ok)
			assert.Equal(t, apperr.KindConfig, kind)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := Default()
	cfg.Navigation.EnterThreshold = 3
	cfg.Filer.ShowHidden = true
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Navigation, loaded.Navigation)
	assert.Equal(t, cfg.Filer, loaded.Filer)
	assert.Equal(t, cfg.Keybindings, loaded.Keybindings)
}

func TestCommandsSorted(t *testing.T) {
	ids := Default().Commands()
	require.NotEmpty(t, ids)
	assert.IsIncreasing(t, ids)
}
