// Package steps provides the reporter step.
package steps

import (
	"log"

	"github.com/similigh/crashbot/internal/core/pipeline"
)

// Reporter logs the confirmation line for a created issue.
type Reporter struct {
	logger *log.Logger
}

// NewReporter creates a new reporter step.
func NewReporter(deps *pipeline.Dependencies) *Reporter {
	return &Reporter{logger: deps.Log()}
}

// Name returns the step name.
func (s *Reporter) Name() string {
	return "reporter"
}

// Run logs once per created issue. Dry runs are not reported.
func (s *Reporter) Run(ctx *pipeline.Context) error {
	if !ctx.Result.Created {
		return nil
	}
	s.logger.Printf("[reporter] Created new issue: %s in GitHub successfully.", ctx.Result.Title)
	return nil
}
