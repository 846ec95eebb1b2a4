// Package pipeline provides step registration and preset workflow building.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/similigh/crashbot/internal/issue"
)

// Registry holds registered step factories.
// Step factories create Step instances, allowing for dependency injection.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]StepFactory
}

// StepFactory is a function that creates a Step.
// It receives dependencies (like clients, config) as parameters.
type StepFactory func(deps *Dependencies) (Step, error)

// IssueSender files a tracker issue for a composed title and body.
type IssueSender interface {
	Send(ctx context.Context, title, body string) (*issue.Created, error)
}

// Endpointer is implemented by senders that can name the URL an issue is
// posted to.
type Endpointer interface {
	Endpoint() string
}

// Dependencies holds the dependencies that can be injected into steps.
type Dependencies struct {
	// Sender files issues with the tracker.
	Sender IssueSender

	// DryRun skips the outbound request and only logs what would be sent.
	DryRun bool

	// Logger receives step log lines. Nil means the standard logger.
	Logger *log.Logger
}

// Log returns the configured logger or the standard logger.
func (d *Dependencies) Log() *log.Logger {
	if d == nil || d.Logger == nil {
		return log.Default()
	}
	return d.Logger
}

// NewRegistry creates a new step registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]StepFactory),
	}
}

// Register adds a step factory to the registry.
func (r *Registry) Register(name string, factory StepFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// Get retrieves a step factory by name.
func (r *Registry) Get(name string) (StepFactory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	factory, ok := r.factories[name]
	return factory, ok
}

// BuildFromNames creates a pipeline from a list of step names.
func (r *Registry) BuildFromNames(names []string, deps *Dependencies) (*Pipeline, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("no steps to build")
	}
	var steps []Step
	for _, name := range names {
		factory, ok := r.Get(name)
		if !ok {
			return nil, fmt.Errorf("unknown step: %s", name)
		}
		step, err := factory(deps)
		if err != nil {
			return nil, fmt.Errorf("failed to create step '%s': %w", name, err)
		}
		steps = append(steps, step)
	}
	return New(steps...), nil
}

// DefaultWorkflow is used when neither steps nor a workflow are configured.
const DefaultWorkflow = "crash-to-issue"

// Presets defines the built-in workflow presets.
var Presets = map[string][]string{
	// crash-to-issue: validate the event, then file the issue
	"crash-to-issue": {
		"validator",
		"formatter",
		"issue_sender",
		"reporter",
	},

	// crash-to-issue-lenient: no validation, missing fields render as "undefined"
	"crash-to-issue-lenient": {
		"formatter",
		"issue_sender",
		"reporter",
	},
}

// GetPreset returns the step names for a preset workflow.
func GetPreset(name string) ([]string, bool) {
	steps, ok := Presets[name]
	return steps, ok
}

// ResolveSteps determines the steps to use based on config.
// Priority: explicit steps > workflow preset > default
// A workflow that names no preset is an error.
func ResolveSteps(explicitSteps []string, workflow string) ([]string, error) {
	if len(explicitSteps) > 0 {
		return explicitSteps, nil
	}
	if workflow == "" {
		return Presets[DefaultWorkflow], nil
	}
	preset, ok := GetPreset(workflow)
	if !ok {
		return nil, fmt.Errorf("unknown workflow %q", workflow)
	}
	return preset, nil
}
