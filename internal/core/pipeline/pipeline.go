// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-02
// Last Modified: 2026-10-19

// Package pipeline provides the core pipeline engine for crashbot.
// It defines the Step interface and Context structure used by all pipeline steps.
package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/similigh/crashbot/internal/core/config"
	"github.com/similigh/crashbot/internal/crash"
	"github.com/similigh/crashbot/internal/issue"
)

// Step defines the interface that all pipeline steps must implement.
type Step interface {
	// Name returns the unique identifier for this step.
	Name() string

	// Run executes the step's logic. Any error stops the pipeline.
	Run(ctx *Context) error
}

// Result holds the outcome of a single invocation.
type Result struct {
	InvocationID string   `json:"invocation_id"`
	IssueID      string   `json:"issue_id"`
	Title        string   `json:"title,omitempty"`
	Body         string   `json:"body,omitempty"`
	Labels       []string `json:"labels,omitempty"`
	IssueNumber  int      `json:"issue_number,omitempty"`
	IssueURL     string   `json:"issue_url,omitempty"`
	Created      bool     `json:"created"`
	DryRun       bool     `json:"dry_run,omitempty"`
}

// Context carries data through the pipeline steps.
type Context struct {
	// Ctx is the Go context for cancellation and timeouts.
	Ctx context.Context

	// Event is the crash event being forwarded.
	Event *crash.Event

	// Config is the loaded configuration.
	Config *config.Config

	// Request is the issue composed from the event.
	Request *issue.Request

	// Result accumulates the processing results.
	Result *Result
}

// NewContext creates a new pipeline context for an event.
func NewContext(ctx context.Context, ev *crash.Event, cfg *config.Config) *Context {
	result := &Result{InvocationID: uuid.NewString()}
	if ev != nil {
		result.IssueID = ev.IssueID
	}
	return &Context{
		Ctx:    ctx,
		Event:  ev,
		Config: cfg,
		Result: result,
	}
}

// Pipeline executes a sequence of steps.
type Pipeline struct {
	steps []Step
}

// New creates a new pipeline with the given steps.
func New(steps ...Step) *Pipeline {
	return &Pipeline{steps: steps}
}

// Run executes all steps in order and stops on the first error.
func (p *Pipeline) Run(ctx *Context) error {
	for _, step := range p.steps {
		if err := step.Run(ctx); err != nil {
			return fmt.Errorf("step '%s' failed: %w", step.Name(), err)
		}
	}
	return nil
}

// Steps returns the list of steps (for introspection).
func (p *Pipeline) Steps() []Step {
	return p.steps
}
