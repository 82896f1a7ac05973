package shellsetup

import (
	"fmt"
	"io"
	"os"
	"path"
	"runtime"
	"strconv"
	"strings"
)

// ParentShellFunc reports the name or path of the parent process.
type ParentShellFunc func() string

// Config controls snippet generation.
type Config struct {
	// DetectParent overrides parent process detection.
	DetectParent ParentShellFunc
	// Executable overrides the binary path baked into the snippet.
	Executable string
}

// The wrapper runs lfiler with --cd-file and changes into the folder it
// leaves there on exit.
const posixSnippet = `lf() {
    lf_tmp=$(mktemp "${TMPDIR:-/tmp}/lfiler.XXXXXX") || return 1
    command %[1]s --cd-file "$lf_tmp" "$@"
    lf_status=$?
    if [ -f "$lf_tmp" ] && [ ! -L "$lf_tmp" ] && [ -O "$lf_tmp" ]; then
        lf_dest=$(cat "$lf_tmp" 2>/dev/null)
        if [ -n "$lf_dest" ] && [ -d "$lf_dest" ]; then
            cd "$lf_dest" || true
        fi
    fi
    rm -f "$lf_tmp"
    return $lf_status
}
`

const fishSnippet = `function lf
    set -l lf_tmp (mktemp (set -q TMPDIR; and echo $TMPDIR; or echo /tmp)/lfiler.XXXXXX); or return 1
    command %[1]s --cd-file "$lf_tmp" $argv
    set -l lf_status $status
    if test -f "$lf_tmp" -a ! -L "$lf_tmp" -a -O "$lf_tmp"
        set -l lf_dest (cat "$lf_tmp" 2>/dev/null)
        if test -n "$lf_dest" -a -d "$lf_dest"
            builtin cd "$lf_dest"
        end
    end
    rm -f "$lf_tmp"
    return $lf_status
end
`

const pwshSnippet = `function lf {
    $lfTmp = New-TemporaryFile
    try {
        & %[1]s --cd-file $lfTmp.FullName @args
        $dest = Get-Content $lfTmp.FullName -Raw -ErrorAction SilentlyContinue
        if ($dest) {
            $dest = $dest.Trim()
            if (Test-Path $dest -PathType Container) {
                Set-Location $dest
            }
        }
    } finally {
        Remove-Item $lfTmp.FullName -ErrorAction SilentlyContinue
    }
}
`

var snippets = map[string]string{
	"bash": posixSnippet,
	"zsh":  posixSnippet,
	"sh":   posixSnippet,
	"ksh":  posixSnippet,
	"fish": fishSnippet,
	"pwsh": pwshSnippet,
}

// Shells lists the shells a snippet exists for.
func Shells() []string {
	return []string{"bash", "fish", "ksh", "pwsh", "sh", "zsh"}
}

// WriteSetup writes the cd-on-exit wrapper for shellOverride, or for the
// detected shell when shellOverride is empty.
func WriteSetup(w io.Writer, shellOverride string, cfg Config) error {
	parent := cfg.DetectParent
	if parent == nil {
		parent = DetectParentShellName
	}

	shell := canonicalShellName(normalizeShellName(shellOverride))
	if shell == "" {
		shell = detectShell(parent)
	}

	snippet, ok := snippets[shell]
	if !ok {
		return fmt.Errorf("no shell integration for %q (supported: %s)", shell, strings.Join(Shells(), ", "))
	}

	exe := cfg.Executable
	if exe == "" {
		var err error
		if exe, err = os.Executable(); err != nil {
			exe = "lfiler"
		}
	}
	quoted := strconv.Quote(exe)
	if shell == "pwsh" {
		quoted = "'" + strings.ReplaceAll(exe, "'", "''") + "'"
	}

	_, err := fmt.Fprintf(w, snippet, quoted)
	return err
}

func detectShell(parent ParentShellFunc) string {
	return detectShellInternal(runtime.GOOS, os.Getenv, parent)
}

func detectShellInternal(goos string, getenv func(string) string, parent ParentShellFunc) string {
	if shell := canonicalShellName(normalizeShellName(getenv("SHELL"))); shell != "" {
		return shell
	}

	if parent != nil {
		if shell := canonicalShellName(normalizeShellName(parent())); shell != "" {
			return shell
		}
	}

	if strings.EqualFold(goos, "windows") {
		return "pwsh"
	}
	return "bash"
}

func canonicalShellName(name string) string {
	switch name {
	case "powershell":
		return "pwsh"
	case "-bash", "-zsh", "-sh":
		return strings.TrimPrefix(name, "-")
	default:
		return name
	}
}

func normalizeShellName(value string) string {
	value = extractExecutable(strings.TrimSpace(value))
	if value == "" {
		return ""
	}
	value = strings.ReplaceAll(value, "\\", "/")
	base := strings.ToLower(path.Base(value))
	return strings.TrimSpace(strings.TrimSuffix(base, ".exe"))
}

// extractExecutable returns the first word of a command line, honouring
// surrounding quotes.
func extractExecutable(value string) string {
	if value == "" {
		return ""
	}
	if q := value[0]; q == '"' || q == '\'' {
		value = value[1:]
		if idx := strings.IndexByte(value, q); idx >= 0 {
			return value[:idx]
		}
		return value
	}
	if idx := strings.IndexAny(value, " \t"); idx >= 0 {
		return value[:idx]
	}
	return value
}
