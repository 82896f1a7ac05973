package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfig points the catalog into a temp dir so commands never touch
// the user's cache.
func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := "[catalog]\npath = '" + filepath.ToSlash(filepath.Join(dir, "catalog.db")) + "'\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCountCommand(t *testing.T) {
	cfg := writeConfig(t)
	dir := t.TempDir()
	for _, name := range []string{"a.jpg", "b.jpg"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	out, err := execute(t, "--config", cfg, "count", dir)
	require.NoError(t, err)
	assert.Equal(t, dir+"\t2  (opens in viewer)\n", out)

	_, err = execute(t, "--config", cfg, "count", filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestTagCommands(t *testing.T) {
	cfg := writeConfig(t)
	dir := t.TempDir()
	a := filepath.Join(dir, "a.jpg")
	b := filepath.Join(dir, "b.jpg")
	require.NoError(t, os.WriteFile(a, nil, 0o644))
	require.NoError(t, os.WriteFile(b, nil, 0o644))

	_, err := execute(t, "--config", cfg, "tag", "cats", a, b)
	require.NoError(t, err)
	_, err = execute(t, "--config", cfg, "tag", "dogs", a)
	require.NoError(t, err)
	_, err = execute(t, "--config", cfg, "untag", "cats", b)
	require.NoError(t, err)

	out, err := execute(t, "--config", cfg, "tags")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"cats", "1"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"dogs", "1"}, strings.Fields(lines[1]))
}

func TestIndexCommand(t *testing.T) {
	cfg := writeConfig(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.jpg"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0o644))

	out, err := execute(t, "--config", cfg, "index", "--quiet", dir)
	require.NoError(t, err)
	assert.Contains(t, out, dir+": 1 files")
}

func TestSetupCommand(t *testing.T) {
	out, err := execute(t, "setup", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "--cd-file")

	_, err = execute(t, "setup", "tcsh")
	assert.Error(t, err)
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	out, err := execute(t, "--config", path, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "enter_threshold = 5")
}

func TestRejectsExtraArgs(t *testing.T) {
	_, err := execute(t, "--config", writeConfig(t), "a", "b")
	assert.Error(t, err)
}
