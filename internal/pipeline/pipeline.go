package pipeline

import (
	"context"
	"log"
	"sync"
)

// Pipeline applies a sequence of stages to items flowing through a channel.
// For each incoming item, steps within the same stage run in parallel and
// stages run sequentially. Step errors are logged and do not stop processing
// of the current item.
type Pipeline[T any] struct {
	stages []Stage[T]
}

// New constructs a Pipeline from the provided stages. Stages are applied to
// each item in order.
func New[T any](stages ...Stage[T]) *Pipeline[T] {
	return &Pipeline[T]{stages: stages}
}

// Process consumes items from the input channel and applies every stage to
// each. For each item:
//   - All steps in a stage start concurrently and must complete before the
//     next stage runs (a stage barrier).
//   - Errors returned by steps are logged and ignored so the pipeline keeps
//     processing.
//   - Steps can observe ctx for cancellation; the pipeline itself runs until
//     the input channel is closed.
func (p *Pipeline[T]) Process(ctx context.Context, in <-chan *T) {
	for item := range in {
		for _, stage := range p.stages {
			var wg sync.WaitGroup
			for _, step := range stage.steps {
				wg.Add(1)
				go func(step Step[T]) {
					defer wg.Done()
					if err := step(ctx, item); err != nil {
						log.Printf("Step failed: %v", err)
					}
				}(step)
			}
			// stage barrier: all steps finish before the next stage
			wg.Wait()
		}
	}
}
