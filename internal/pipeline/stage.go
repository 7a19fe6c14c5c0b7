// Package pipeline provides a small, generic staged-processing abstraction:
// steps within a stage run in parallel for each item, while stages themselves
// execute sequentially. The snapshot worker uses it to build, fetch, and
// archive map images.
package pipeline

import (
	"context"
)

// Step is a single operation that mutates the given item. Implementations
// must be safe to run concurrently with other steps in the same stage
// operating on the same item. If a step fails it returns an error; the
// pipeline logs the error and continues. The context can be used to observe
// cancellation or timeouts.
//
// The item pointer lets steps accumulate results in-place over the run.
type Step[T any] func(ctx context.Context, item *T) error

// Stage groups steps that are safe to execute in parallel for a single item.
// All steps in a stage are started together, and the pipeline waits for them
// to complete before moving to the next stage.
//
// Steps must coordinate on shared fields if they might write to the same
// location concurrently.
type Stage[T any] struct {
	steps []Step[T]
}

// NewStage constructs a Stage from the provided steps.
func NewStage[T any](steps ...Step[T]) Stage[T] {
	return Stage[T]{steps: steps}
}
