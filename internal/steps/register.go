// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-02
// Last Modified: 2026-10-19

package steps

import (
	"github.com/similigh/crashbot/internal/core/pipeline"
)

// RegisterAll registers all built-in steps with the registry.
func RegisterAll(r *pipeline.Registry) {
	r.Register("validator", func(deps *pipeline.Dependencies) (pipeline.Step, error) {
		return NewValidator(deps), nil
	})

	r.Register("formatter", func(deps *pipeline.Dependencies) (pipeline.Step, error) {
		return NewFormatter(deps), nil
	})

	r.Register("issue_sender", func(deps *pipeline.Dependencies) (pipeline.Step, error) {
		return NewIssueSender(deps), nil
	})

	r.Register("reporter", func(deps *pipeline.Dependencies) (pipeline.Step, error) {
		return NewReporter(deps), nil
	})
}
