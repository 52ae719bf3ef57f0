package cli

import (
	"context"
	"errors"

	"github.com/daybook-app/daybook/internal/journal"
)

// Analyze summarizes the viewed day's entries. Repeats for the same day come
// out of the manager's cache without another server call.
func (a *App) Analyze(ctx context.Context) error {
	if len(a.manager.Entries()) == 0 {
		printlnFn("Nothing to analyze on this day.")
		return nil
	}

	printlnFn("Analyzing...")

	text, err := a.manager.Analyze(ctx)
	if err != nil {
		if errors.Is(err, journal.ErrBusy) {
			printlnFn("An analysis is already in progress.")
		} else {
			printlnFn(err.Error())
		}
		return err
	}

	printlnFn("AI analysis:")
	printlnFn("  " + text)
	return nil
}

// Back dismisses the currently displayed analysis.
func (a *App) Back() error {
	a.manager.CloseAnalysis()
	printlnFn("Analysis dismissed.")
	return nil
}
