package tui

import (
	"path/filepath"
	"strings"

	"codeberg.org/tslocum/cview"
)

func (a *App) replaceHomeWithTilde(p string) string {
	if !a.replaceHome || a.userHomeDir == "" {
		return p
	}
	if after, ok := strings.CutPrefix(p, a.userHomeDir); ok && (after == "" || strings.HasPrefix(after, string(filepath.Separator))) {
		p = "~" + after
	}
	return p
}

func (a *App) switchTheme(themeName string) {
	a.themeName, a.currentTheme = lookupTheme(themeName)
	a.applyTheme()
	a.buildTable()
}

func (a *App) applyTheme() {
	theme := a.currentTheme

	a.header.SetBackgroundColor(theme.headerBg)
	a.header.SetTextColor(theme.headerFg)

	a.footer.SetBackgroundColor(theme.footerBg)
	a.footer.SetTextColor(theme.footerFg)

	a.nameField.SetBackgroundColor(theme.bg)
	a.nameField.SetLabelColor(theme.labelFg)
	a.nameField.SetFieldBackgroundColor(theme.fieldBg)
	a.nameField.SetFieldTextColor(theme.fieldFg)

	a.form.SetBackgroundColor(theme.bg)
	a.form.SetButtonBackgroundColor(theme.buttonBg)
	a.form.SetButtonTextColor(theme.buttonFg)

	a.table.SetBackgroundColor(theme.bg)
	a.layout.SetBackgroundColor(theme.bg)
}

func (a *App) buildTable() *cview.Table {
	theme := a.currentTheme
	table := a.table
	table.Clear()

	for row, r := range a.general.Rows() {
		labelCell := cview.NewTableCell(" " + r.Label)
		labelCell.SetTextColor(theme.labelFg)
		labelCell.SetAlign(cview.AlignLeft)
		table.SetCell(row, 0, labelCell)

		value := r.Value
		valueCell := cview.NewTableCell(value)
		valueCell.SetTextColor(theme.fg)
		switch r.Label {
		case "Location:":
			valueCell.SetText(a.replaceHomeWithTilde(value))
		case "Size:":
			valueCell.SetTextColor(theme.sizeFg)
		}
		valueCell.SetAlign(cview.AlignLeft)
		valueCell.SetExpansion(1)
		table.SetCell(row, 1, valueCell)
	}

	return table
}
