package textutil

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

const ellipsis = "…"

// DisplayWidth reports the printable width of text in terminal cells.
func DisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// Truncate shortens text to at most width cells, marking the cut with an
// ellipsis.
func Truncate(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(text) <= width {
		return text
	}
	if width == 1 {
		return ellipsis
	}
	return runewidth.Truncate(text, width, ellipsis)
}

// Fit truncates text and pads it with spaces to exactly width cells.
func Fit(text string, width int) string {
	return runewidth.FillRight(Truncate(text, width), width)
}

// TruncateLeft keeps the end of text, which is the useful part of a path.
func TruncateLeft(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(text) <= width {
		return text
	}
	runes := []rune(text)
	used := runewidth.StringWidth(ellipsis)
	start := len(runes)
	for start > 0 {
		w := runewidth.RuneWidth(runes[start-1])
		if used+w > width {
			break
		}
		used += w
		start--
	}
	return ellipsis + string(runes[start:])
}

// FormatSize renders a byte count with binary units.
func FormatSize(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	value := fmt.Sprintf("%.1f", float64(n)/float64(div))
	value = strings.TrimSuffix(value, ".0")
	return value + " " + string("KMGTPE"[exp]) + "iB"
}

// FormatCount renders large counts compactly ("1.2k").
func FormatCount(n int) string {
	switch {
	case n >= 1_000_000:
		return trimTrailingZero(fmt.Sprintf("%.1fM", float64(n)/1_000_000.0))
	case n >= 1_000:
		return trimTrailingZero(fmt.Sprintf("%.1fk", float64(n)/1_000.0))
	default:
		return fmt.Sprintf("%d", n)
	}
}

func trimTrailingZero(s string) string {
	if len(s) < 3 {
		return s
	}
	unit := s[len(s)-1:]
	num := strings.TrimSuffix(s[:len(s)-1], ".0")
	return num + unit
}
