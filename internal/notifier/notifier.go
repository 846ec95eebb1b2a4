// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

// Package notifier forwards crash events to the issue tracker.
//
// A Notifier owns one built pipeline and can be shared by concurrent
// invocations; each Handle call gets its own pipeline context.
package notifier

import (
	"context"
	"fmt"

	"github.com/similigh/crashbot/internal/core/config"
	"github.com/similigh/crashbot/internal/core/pipeline"
	"github.com/similigh/crashbot/internal/crash"
	"github.com/similigh/crashbot/internal/integrations/github"
	"github.com/similigh/crashbot/internal/issue"
	"github.com/similigh/crashbot/internal/steps"
)

// Option configures a Notifier.
type Option func(*Notifier)

// WithStepWrapper wraps every built step, e.g. to report progress.
func WithStepWrapper(wrap func(pipeline.Step) pipeline.Step) Option {
	return func(n *Notifier) {
		n.wrap = wrap
	}
}

// Notifier turns crash events into tracker issues.
type Notifier struct {
	cfg      *config.Config
	stepList []string
	pipeline *pipeline.Pipeline
	wrap     func(pipeline.Step) pipeline.Step
}

// New builds the pipeline selected by cfg.
func New(cfg *config.Config, deps *pipeline.Dependencies, opts ...Option) (*Notifier, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	stepList, err := pipeline.ResolveSteps(cfg.Steps, cfg.Workflow)
	if err != nil {
		return nil, err
	}

	n := &Notifier{
		cfg:      cfg,
		stepList: stepList,
	}
	for _, opt := range opts {
		opt(n)
	}

	registry := pipeline.NewRegistry()
	steps.RegisterAll(registry)

	built, err := registry.BuildFromNames(n.stepList, deps)
	if err != nil {
		return nil, fmt.Errorf("failed to build pipeline: %w", err)
	}

	if n.wrap != nil {
		wrapped := make([]pipeline.Step, 0, len(built.Steps()))
		for _, step := range built.Steps() {
			wrapped = append(wrapped, n.wrap(step))
		}
		built = pipeline.New(wrapped...)
	}
	n.pipeline = built

	return n, nil
}

// Steps returns the names of the steps every event passes through.
func (n *Notifier) Steps() []string {
	return n.stepList
}

// Handle forwards one crash event. The result is returned even on failure so
// callers can see how far the invocation got.
func (n *Notifier) Handle(ctx context.Context, ev *crash.Event) (*pipeline.Result, error) {
	pCtx := pipeline.NewContext(ctx, ev, n.cfg)
	if err := n.pipeline.Run(pCtx); err != nil {
		return pCtx.Result, err
	}
	return pCtx.Result, nil
}

// Credentials extracts the tracker credentials from the config.
func Credentials(cfg *config.Config) issue.Credentials {
	return issue.Credentials{
		Account:    cfg.GitHub.User,
		Secret:     cfg.GitHub.Password,
		Repository: cfg.GitHub.Repo,
	}
}

// NewDependencies wires a GitHub-backed issue sender from the config.
// Missing credentials are reported when an issue is sent, not here.
func NewDependencies(cfg *config.Config, dryRun bool) (*pipeline.Dependencies, error) {
	creds := Credentials(cfg)

	client, err := github.NewBasicAuthClient(creds.Account, creds.Secret,
		github.WithBaseURL(cfg.GitHub.APIURL),
		github.WithUserAgent(cfg.GitHub.UserAgent),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to init GitHub client: %w", err)
	}

	return &pipeline.Dependencies{
		Sender: issue.NewSender(creds, client),
		DryRun: dryRun,
	}, nil
}

// Handle forwards a single crash event using only the given config. It is the
// entry point for trigger bindings that do not keep a Notifier around.
func Handle(ctx context.Context, ev *crash.Event, cfg *config.Config) error {
	deps, err := NewDependencies(cfg, false)
	if err != nil {
		return err
	}
	n, err := New(cfg, deps)
	if err != nil {
		return err
	}
	_, err = n.Handle(ctx, ev)
	return err
}
