package main

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"theorycheck/internal/driver"
	"theorycheck/internal/ui"
)

type checkOutcome struct {
	result *driver.Result
	err    error
}

// runCheckWithUI runs the check in the background and renders its progress
// until the event channel closes.
func runCheckWithUI(ctx context.Context, out io.Writer, title, path string, req driver.Request) (*driver.Result, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		reqCopy := req
		reqCopy.Sink = driver.ChannelSink{Ch: events}
		res, err := driver.CheckPath(ctx, path, reqCopy)
		outcomeCh <- checkOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, events)
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithContext(ctx))
	_, uiErr := program.Run()
	// дочитываем события, если модель вышла раньше
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if outcome.err != nil {
		return nil, outcome.err
	}
	if uiErr != nil && ctx.Err() == nil {
		return outcome.result, uiErr
	}
	return outcome.result, nil
}
