package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/daybook-app/daybook/internal/journal"
)

func (a *App) List(ctx context.Context) error {
	entries, err := a.manager.LoadActiveDate(ctx)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	a.printDay(entries)
	return nil
}

func (a *App) printDay(entries []journal.Entry) {
	printlnFn(fmt.Sprintf("Entries for %s:", a.manager.ActiveDate()))
	if len(entries) == 0 {
		printlnFn("  (no entries)")
	}
	for i, e := range entries {
		marker := ""
		if e.UpdatedAt != nil {
			marker = " (edited)"
		}
		printlnFn(fmt.Sprintf("  %d. %s%s", i+1, e.Title, marker))
		printlnFn("     " + e.Content)
	}

	if text, status := a.manager.Analysis(); status == journal.StatusDisplaying {
		printlnFn("AI analysis:")
		printlnFn("  " + text)
	}
}

func (a *App) Add(ctx context.Context) error {
	title, err := GetSimpleText(a.reader, "Title", a.out)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	content, err := GetMultiline(a.reader, "Content", a.out)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	result, err := a.manager.AddEntry(ctx, title, content)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	if !result.OnActiveDate {
		printlnFn(fmt.Sprintf("Entry filed under today (%s), not the day you are viewing.", result.FiledUnder))
	} else {
		printlnFn("Saved.")
	}
	return nil
}

func (a *App) Edit(ctx context.Context) error {
	entry, err := a.pickEntry()
	if err != nil {
		return err
	}

	title, err := GetSimpleText(a.reader, fmt.Sprintf("New title (was: %s)", entry.Title), a.out)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	content, err := GetMultiline(a.reader, "New content", a.out)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	if err := a.manager.UpdateEntry(ctx, *entry, title, content); err != nil {
		printlnFn(err.Error())
		return err
	}

	printlnFn("Updated.")
	return nil
}

func (a *App) Delete(ctx context.Context) error {
	entry, err := a.pickEntry()
	if err != nil {
		return err
	}

	if err := a.manager.DeleteEntry(ctx, entry.ID); err != nil {
		printlnFn(err.Error())
		return err
	}

	printlnFn("Deleted.")
	return nil
}

// pickEntry shows the loaded entries and asks for a 1-based number.
func (a *App) pickEntry() (*journal.Entry, error) {
	entries := a.manager.Entries()
	if len(entries) == 0 {
		printlnFn("No entries loaded. Use 'list' first.")
		return nil, fmt.Errorf("no entries")
	}

	for i, e := range entries {
		printlnFn(fmt.Sprintf("  %d. %s", i+1, e.Title))
	}

	input, err := GetSimpleText(a.reader, "Entry number", a.out)
	if err != nil {
		printlnFn(err.Error())
		return nil, err
	}

	n, err := strconv.Atoi(input)
	if err != nil || n < 1 || n > len(entries) {
		printlnFn("Invalid entry number.")
		return nil, fmt.Errorf("invalid entry number")
	}

	return &entries[n-1], nil
}
