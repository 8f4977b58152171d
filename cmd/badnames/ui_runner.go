package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"badnames/internal/checker"
	"badnames/internal/driver"
	"badnames/internal/ui"
)

type checkOutcome struct {
	run *driver.Run
	err error
}

// runCheckWithUI runs driver.CheckPaths while a progress view renders its
// events. Quitting the view cancels the run.
func runCheckWithUI(ctx context.Context, title string, ch *checker.Checker, roots []string, opts driver.Options) (*driver.Run, error) {
	files, err := driver.ListFiles(roots, opts.Exclude)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		runOpts := opts
		runOpts.Progress = driver.ChannelSink{Ch: events}
		run, err := driver.CheckPaths(ctx, ch, roots, runOpts)
		close(events)
		outcomeCh <- checkOutcome{run: run, err: err}
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	// события закрываются только после CheckPaths, так что отмена
	// задевает лишь прерванный пользователем прогон
	cancel()
	for range events {
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.run, uiErr
	}
	return outcome.run, outcome.err
}
