// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

// Package steps provides the issue sender step.
package steps

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/similigh/crashbot/internal/core/pipeline"
)

// IssueSender files the composed issue with the tracker.
type IssueSender struct {
	sender pipeline.IssueSender
	dryRun bool
	logger *log.Logger
}

// NewIssueSender creates a new issue sender step.
func NewIssueSender(deps *pipeline.Dependencies) *IssueSender {
	return &IssueSender{
		sender: deps.Sender,
		dryRun: deps.DryRun,
		logger: deps.Log(),
	}
}

// Name returns the step name.
func (s *IssueSender) Name() string {
	return "issue_sender"
}

// Run sends the issue once. Errors are returned as-is for the caller to handle.
func (s *IssueSender) Run(ctx *pipeline.Context) error {
	if ctx.Request == nil {
		return fmt.Errorf("no issue composed; formatter must run before issue_sender")
	}

	if s.dryRun {
		s.logger.Printf("[issue_sender] DRY RUN: Would create issue %q:\n%s", ctx.Request.Title, ctx.Request.Body)
		ctx.Result.DryRun = true
		return nil
	}

	if s.sender == nil {
		return fmt.Errorf("no issue sender configured")
	}

	if e, ok := s.sender.(pipeline.Endpointer); ok {
		s.logger.Printf("[issue_sender] url = %s", e.Endpoint())
	}
	if payload, err := json.Marshal(ctx.Request); err == nil {
		s.logger.Printf("[issue_sender] issue = %s", payload)
	}

	created, err := s.sender.Send(ctx.Ctx, ctx.Request.Title, ctx.Request.Body)
	if err != nil {
		return err
	}

	ctx.Result.Created = true
	if created != nil {
		ctx.Result.IssueNumber = created.Number
		ctx.Result.IssueURL = created.URL
	}
	return nil
}
