package app

import (
	"os/exec"
	"path"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/takawasi/LightningFiler-sub000/internal/apperr"
	"github.com/takawasi/LightningFiler-sub000/internal/archive"
)

func detectClipboard() ([]string, bool) {
	return detectClipboardInternal(runtime.GOOS, exec.LookPath)
}

func detectClipboardInternal(goos string, lookPath func(string) (string, error)) ([]string, bool) {
	if strings.EqualFold(goos, "windows") {
		for _, candidate := range []string{"clip.exe", "clip"} {
			if resolved, err := lookPath(candidate); err == nil && resolved != "" {
				return []string{resolved}, true
			}
		}
		for _, ps := range []string{"powershell", "powershell.exe", "pwsh"} {
			if resolved, err := lookPath(ps); err == nil && resolved != "" {
				return []string{resolved, "-NoLogo", "-NoProfile", "-Command", "Set-Clipboard"}, true
			}
		}
	}

	for _, cmd := range []string{"pbcopy", "wl-copy", "xclip", "xsel"} {
		resolved, err := lookPath(cmd)
		if err != nil || resolved == "" {
			continue
		}
		switch cmd {
		case "xclip":
			return []string{resolved, "-selection", "clipboard"}, true
		case "xsel":
			return []string{resolved, "--clipboard", "--input"}, true
		default:
			return []string{resolved}, true
		}
	}

	return nil, false
}

// normalizeClipboardPath renders p the way the host shell expects. Archive
// members keep their "!/" separator.
func normalizeClipboardPath(p string, goos string) string {
	outer, inner, member := archive.SplitPath(p)
	if strings.EqualFold(goos, "windows") {
		cleaned := strings.ReplaceAll(filepath.Clean(outer), "/", `\`)
		if member {
			return cleaned + archive.Separator + inner
		}
		return cleaned
	}
	cleaned := path.Clean(filepath.ToSlash(outer))
	if member {
		return cleaned + archive.Separator + inner
	}
	return cleaned
}

// yankText is the marked paths, one per line, or the current path when
// nothing is marked.
func (app *Application) yankText() string {
	var paths []string
	for _, e := range app.state.SelectedEntries() {
		paths = append(paths, normalizeClipboardPath(e.Path, runtime.GOOS))
	}
	if len(paths) == 0 {
		cur, ok := app.state.CurrentFile()
		if !ok {
			return ""
		}
		paths = append(paths, normalizeClipboardPath(cur.Path, runtime.GOOS))
	}
	return strings.Join(paths, "\n")
}

func (app *Application) yank() {
	text := app.yankText()
	if text == "" {
		return
	}
	if !app.clipboardAvail || len(app.clipboardCmd) == 0 {
		app.setError(apperr.New(apperr.KindUnsupportedFormat, "clipboard", exec.ErrNotFound))
		return
	}
	cmd := exec.Command(app.clipboardCmd[0], app.clipboardCmd[1:]...)
	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		app.setError(apperr.New(apperr.KindIO, app.clipboardCmd[0], err))
		return
	}
	app.setMessage("copied " + firstLine(text))
	app.flash()
}

func firstLine(s string) string {
	line, _, more := strings.Cut(s, "\n")
	if more {
		return line + " …"
	}
	return line
}
