// Package steps provides the formatter step.
package steps

import (
	"log"

	"github.com/similigh/crashbot/internal/core/pipeline"
	"github.com/similigh/crashbot/internal/issue"
)

// Formatter composes the tracker issue from the crash event.
type Formatter struct {
	logger *log.Logger
}

// NewFormatter creates a new formatter step.
func NewFormatter(deps *pipeline.Dependencies) *Formatter {
	return &Formatter{logger: deps.Log()}
}

// Name returns the step name.
func (s *Formatter) Name() string {
	return "formatter"
}

// Run stores the composed request on the context and in the result.
func (s *Formatter) Run(ctx *pipeline.Context) error {
	req := issue.Compose(ctx.Event)

	ctx.Request = req
	ctx.Result.Title = req.Title
	ctx.Result.Body = req.Body
	ctx.Result.Labels = req.Labels

	s.logger.Printf("[formatter] Composed issue %q with labels %v", req.Title, req.Labels)
	return nil
}
