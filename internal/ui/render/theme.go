package render

import "github.com/gdamore/tcell/v2"

// ColorTheme defines application colors.
type ColorTheme struct {
	HeaderBg    tcell.Color
	HeaderFg    tcell.Color
	DirectoryFg tcell.Color
	ImageFg     tcell.Color
	FileFg      tcell.Color
	CursorBg    tcell.Color
	CursorFg    tcell.Color
	MarkedFg    tcell.Color
	StatusBg    tcell.Color
	StatusFg    tcell.Color
	ErrorFg     tcell.Color
	FlashBg     tcell.Color
	FlashFg     tcell.Color
	LabelFg     tcell.Color
}

// GetColorTheme returns the default color scheme.
func GetColorTheme() ColorTheme {
	return ColorTheme{
		HeaderBg:    tcell.ColorDefault,
		HeaderFg:    tcell.ColorDefault,
		DirectoryFg: tcell.Color33,
		ImageFg:     tcell.Color44,
		FileFg:      tcell.ColorDefault,
		CursorBg:    tcell.Color33,
		CursorFg:    tcell.ColorWhite,
		MarkedFg:    tcell.ColorYellow,
		StatusBg:    tcell.ColorDefault,
		StatusFg:    tcell.ColorDefault,
		ErrorFg:     tcell.ColorRed,
		FlashBg:     tcell.ColorGreen,
		FlashFg:     tcell.ColorBlack,
		LabelFg:     tcell.ColorLightSlateGray,
	}
}
