package tui

import (
	"sort"

	"github.com/gdamore/tcell/v3"
)

type Theme struct {
	Name     string
	bg       tcell.Color
	fg       tcell.Color
	labelFg  tcell.Color
	sizeFg   tcell.Color
	errorFg  tcell.Color
	headerBg tcell.Color
	headerFg tcell.Color
	footerBg tcell.Color
	footerFg tcell.Color
	fieldBg  tcell.Color
	fieldFg  tcell.Color
	buttonBg tcell.Color
	buttonFg tcell.Color
}

var themes = map[string]Theme{
	"gruvbox-dark": {
		Name:     "Gruvbox Dark",
		bg:       tcell.NewRGBColor(40, 40, 40),
		fg:       tcell.NewRGBColor(235, 219, 178),
		labelFg:  tcell.NewRGBColor(146, 131, 116),
		sizeFg:   tcell.NewRGBColor(215, 153, 33),
		errorFg:  tcell.NewRGBColor(204, 36, 29),
		headerBg: tcell.NewRGBColor(214, 93, 14),
		headerFg: tcell.NewRGBColor(60, 56, 54),
		footerBg: tcell.NewRGBColor(60, 56, 54),
		footerFg: tcell.NewRGBColor(235, 219, 178),
		fieldBg:  tcell.NewRGBColor(60, 56, 54),
		fieldFg:  tcell.NewRGBColor(235, 219, 178),
		buttonBg: tcell.NewRGBColor(214, 93, 14),
		buttonFg: tcell.NewRGBColor(60, 56, 54),
	},
	"nord": {
		Name:     "Nord",
		bg:       tcell.NewRGBColor(46, 52, 64),
		fg:       tcell.NewRGBColor(216, 222, 233),
		labelFg:  tcell.NewRGBColor(143, 188, 187),
		sizeFg:   tcell.NewRGBColor(235, 203, 139),
		errorFg:  tcell.NewRGBColor(191, 97, 106),
		headerBg: tcell.NewRGBColor(129, 161, 193),
		headerFg: tcell.NewRGBColor(46, 52, 64),
		footerBg: tcell.NewRGBColor(67, 76, 94),
		footerFg: tcell.NewRGBColor(216, 222, 233),
		fieldBg:  tcell.NewRGBColor(59, 66, 82),
		fieldFg:  tcell.NewRGBColor(216, 222, 233),
		buttonBg: tcell.NewRGBColor(129, 161, 193),
		buttonFg: tcell.NewRGBColor(46, 52, 64),
	},
	"catppuccin": {
		Name:     "Catppuccin Mocha",
		bg:       tcell.NewRGBColor(30, 30, 46),
		fg:       tcell.NewRGBColor(205, 214, 244),
		labelFg:  tcell.NewRGBColor(148, 226, 213),
		sizeFg:   tcell.NewRGBColor(249, 226, 175),
		errorFg:  tcell.NewRGBColor(243, 139, 168),
		headerBg: tcell.NewRGBColor(137, 180, 250),
		headerFg: tcell.NewRGBColor(30, 30, 46),
		footerBg: tcell.NewRGBColor(49, 50, 68),
		footerFg: tcell.NewRGBColor(205, 214, 244),
		fieldBg:  tcell.NewRGBColor(49, 50, 68),
		fieldFg:  tcell.NewRGBColor(205, 214, 244),
		buttonBg: tcell.NewRGBColor(137, 180, 250),
		buttonFg: tcell.NewRGBColor(30, 30, 46),
	},
	"dracula": {
		Name:     "Dracula",
		bg:       tcell.NewRGBColor(40, 42, 54),
		fg:       tcell.NewRGBColor(248, 248, 242),
		labelFg:  tcell.NewRGBColor(139, 233, 253),
		sizeFg:   tcell.NewRGBColor(255, 184, 108),
		errorFg:  tcell.NewRGBColor(255, 85, 85),
		headerBg: tcell.NewRGBColor(189, 147, 249),
		headerFg: tcell.NewRGBColor(40, 42, 54),
		footerBg: tcell.NewRGBColor(68, 71, 90),
		footerFg: tcell.NewRGBColor(248, 248, 242),
		fieldBg:  tcell.NewRGBColor(68, 71, 90),
		fieldFg:  tcell.NewRGBColor(248, 248, 242),
		buttonBg: tcell.NewRGBColor(189, 147, 249),
		buttonFg: tcell.NewRGBColor(40, 42, 54),
	},
}

const defaultThemeName = "nord"

// getThemeNames returns the theme keys in a stable order.
func getThemeNames() []string {
	names := make([]string, 0, len(themes))
	for n := range themes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// lookupTheme falls back to the default theme for unknown names.
func lookupTheme(name string) (string, Theme) {
	if th, ok := themes[name]; ok {
		return name, th
	}
	return defaultThemeName, themes[defaultThemeName]
}

// nextThemeName cycles through getThemeNames.
func nextThemeName(current string) string {
	names := getThemeNames()
	for i, n := range names {
		if n == current {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}
