package tui

import (
	"fmt"

	"github.com/riadafridishibly/fsprops/scanner"
)

func headerTitle(name string) string {
	return fmt.Sprintf(" %s Properties ", name)
}

func footerStatusMenu() string {
	return " Enter/OK: Apply  Esc/Cancel: Close  Tab: Next  F2: Theme "
}

func footerStatusCounting(theme *Theme, p scanner.Progress) string {
	return fmt.Sprintf(" [%s]Counting:[-] %s", theme.sizeFg.String(), p.Path)
}

func footerStatusIncomplete(theme *Theme, err error) string {
	return fmt.Sprintf(" [%s]Counts are incomplete:[-] %v", theme.errorFg.String(), err)
}

func footerStatusError(theme *Theme, err error) string {
	return fmt.Sprintf(" [%s]Error:[-] %v", theme.errorFg.String(), err)
}
