package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"hirexpand/internal/driver"
	"hirexpand/internal/ui"
)

type expandOutcome struct {
	result *driver.Result
	err    error
}

// runExpandWithUI expands dir while a progress view renders to stderr;
// stdout stays free for the results.
func runExpandWithUI(ctx context.Context, title, dir string, files []string, opts driver.Options) (*driver.Result, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan expandOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.ExpandDir(ctx, dir, optsCopy)
		outcomeCh <- expandOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
