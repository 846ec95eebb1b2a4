// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/kavirubc
// Created: 2026-02-02
// Last Modified: 2026-10-19

package commands

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/similigh/crashbot/internal/core/config"
	"github.com/similigh/crashbot/internal/core/pipeline"
	"github.com/similigh/crashbot/internal/crash"
	"github.com/similigh/crashbot/internal/notifier"
	"github.com/similigh/crashbot/internal/tui"
)

// Wrapper step to send status updates
type statusReportingStep struct {
	inner      pipeline.Step
	statusChan chan<- tui.PipelineStatusMsg
}

func (s *statusReportingStep) Name() string {
	return s.inner.Name()
}

func (s *statusReportingStep) Run(ctx *pipeline.Context) error {
	s.statusChan <- tui.PipelineStatusMsg{Step: s.Name(), Status: tui.StatusStarted}

	if err := s.inner.Run(ctx); err != nil {
		s.statusChan <- tui.PipelineStatusMsg{Step: s.Name(), Status: tui.StatusError, Message: err.Error()}
		return err
	}

	s.statusChan <- tui.PipelineStatusMsg{Step: s.Name(), Status: tui.StatusSuccess, Message: "Completed"}
	return nil
}

// runWithTUI handles the event while showing step progress. Step logs are
// held back until the TUI exits so they don't tear the display.
func runWithTUI(ctx context.Context, cfg *config.Config, deps *pipeline.Dependencies, ev *crash.Event) (*pipeline.Result, error) {
	var logs bytes.Buffer
	deps.Logger = log.New(&logs, "", log.LstdFlags)

	stepList, err := pipeline.ResolveSteps(cfg.Steps, cfg.Workflow)
	if err != nil {
		return nil, err
	}

	// Buffered so the pipeline never blocks if the user quits early.
	statusChan := make(chan tui.PipelineStatusMsg, 2*len(stepList))

	n, err := notifier.New(cfg, deps, notifier.WithStepWrapper(func(step pipeline.Step) pipeline.Step {
		return &statusReportingStep{inner: step, statusChan: statusChan}
	}))
	if err != nil {
		return nil, err
	}

	var (
		result *pipeline.Result
		runErr error
	)
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer close(statusChan)
		result, runErr = n.Handle(ctx, ev)
	}()

	p := tea.NewProgram(tui.NewModel(ev.String(), n.Steps(), statusChan))
	if _, err := p.Run(); err != nil {
		return nil, fmt.Errorf("error running TUI: %w", err)
	}

	<-done
	fmt.Fprint(os.Stderr, logs.String())
	return result, runErr
}
