package tui

import "github.com/gdamore/tcell/v3"

func (a *App) handleInput(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyEscape:
		a.cancel()
		return nil
	case tcell.KeyF2:
		a.switchTheme(nextThemeName(a.themeName))
		return nil
	case tcell.KeyEnter:
		// Enter in the name field applies, like the OK button
		if a.app.GetFocus() == a.nameField {
			a.confirm()
			return nil
		}
	}
	return event
}
