package tui

import (
	"context"

	"github.com/riadafridishibly/fsprops/logging"
	"github.com/riadafridishibly/fsprops/scanner"
	"go.uber.org/zap"
)

func (a *App) trySendUIUpdate(f func()) {
	select {
	case a.uiUpdates <- f:
	default:
	}
}

func (a *App) processProgressEvents(ctx context.Context, agg *scanner.Aggregator) {
	progressChan := agg.Progress()
	for {
		select {
		case <-ctx.Done():
			return
		case p, ok := <-progressChan:
			if !ok {
				a.trySendUIUpdate(func() { a.updateFinalStatus(agg) })
				return
			}
			if p.Final {
				continue
			}
			a.trySendUIUpdate(func() {
				a.buildTable()
				a.footer.SetText(footerStatusCounting(&a.currentTheme, p))
			})
		}
	}
}

func (a *App) updateFinalStatus(agg *scanner.Aggregator) {
	logging.L().Debug("count finished",
		zap.String("root", agg.Root()),
		zap.Stringer("state", agg.State()),
		zap.Duration("elapsed", agg.ElapsedTime()),
		zap.Error(agg.Err()),
	)
	a.buildTable()
	if err := agg.Err(); err != nil {
		a.footer.SetText(footerStatusIncomplete(&a.currentTheme, err))
		return
	}
	a.footer.SetText(footerStatusMenu())
}
