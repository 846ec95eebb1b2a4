// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

// Package steps provides the validator step.
package steps

import (
	"log"

	"github.com/similigh/crashbot/internal/core/pipeline"
)

// Validator rejects crash events that lack an id, title or app version.
type Validator struct {
	logger *log.Logger
}

// NewValidator creates a new validator step.
func NewValidator(deps *pipeline.Dependencies) *Validator {
	return &Validator{logger: deps.Log()}
}

// Name returns the step name.
func (s *Validator) Name() string {
	return "validator"
}

// Run checks the event. Failures wrap crash.ErrMalformedEvent.
func (s *Validator) Run(ctx *pipeline.Context) error {
	if err := ctx.Event.Validate(); err != nil {
		s.logger.Printf("[validator] Rejected event %s: %v", ctx.Event, err)
		return err
	}
	return nil
}
