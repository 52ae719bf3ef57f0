package cli

import (
	"context"
	"errors"

	"github.com/daybook-app/daybook/internal/journal"
)

func (a *App) Previous(ctx context.Context) error {
	if err := a.manager.Navigate(ctx, journal.DirectionPrevious); err != nil {
		printlnFn(err.Error())
		return err
	}
	a.printDay(a.manager.Entries())
	return nil
}

func (a *App) Next(ctx context.Context) error {
	if err := a.manager.Navigate(ctx, journal.DirectionNext); err != nil {
		printlnFn(err.Error())
		return err
	}
	a.printDay(a.manager.Entries())
	return nil
}

func (a *App) Goto(ctx context.Context, day string) error {
	if err := a.manager.JumpToDate(ctx, day); err != nil {
		if errors.Is(err, journal.ErrValidation) {
			printlnFn("Invalid date, expected yyyy-mm-dd.")
		} else {
			printlnFn(err.Error())
		}
		return err
	}
	a.printDay(a.manager.Entries())
	return nil
}

func (a *App) Today(ctx context.Context) error {
	return a.Goto(ctx, a.manager.Today())
}

// Search finds the earliest entry matching the query and jumps to its day.
func (a *App) Search(ctx context.Context, query string) error {
	match, err := a.manager.SearchAndJump(ctx, query, nil)
	if err != nil {
		if errors.Is(err, journal.ErrNoResults) {
			printlnFn("No matching entries.")
		} else {
			printlnFn(err.Error())
		}
		return err
	}

	printlnFn("Found: " + match.Title)
	a.printDay(a.manager.Entries())
	return nil
}

// SemanticSearch asks the server to judge relevance over the viewed day's
// entries and prints both exact and semantic matches.
func (a *App) SemanticSearch(ctx context.Context, query string) error {
	entries := a.manager.Entries()
	if len(entries) == 0 {
		printlnFn("No entries loaded. Use 'list' first.")
		return nil
	}

	exact, semantic, err := a.analysis.SemanticSearch(ctx, query, entries)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	if len(exact) == 0 && len(semantic) == 0 {
		printlnFn("No matching entries.")
		return nil
	}

	for _, m := range exact {
		printlnFn("  [exact] " + m.Title)
	}
	for _, m := range semantic {
		printlnFn("  [semantic] " + m.Title)
	}
	return nil
}
