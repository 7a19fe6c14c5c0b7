// Package service contains helpers used by application services. In
// particular, it provides an Iterator that consumes snapshot requests from a
// message source (e.g., Kafka via pkg/kafkaclient) and decodes them into
// typed values for the worker.
package service

import (
	"context"
	"encoding/json"
	"log"
)

// Iterator consumes messages from a MessageIterator, decodes each message
// body as JSON into T, and yields the decoded values on a channel. It is
// generic over the decoded item type T.
//
// The Iterator does not manage the lifecycle of the underlying message
// source; callers start/stop their consumer outside and pass in an
// implementation of MessageIterator.
type Iterator[T any] struct {
	msgIterator MessageIterator
}

// NewIterator constructs an Iterator for the provided message source.
func NewIterator[T any](iterator MessageIterator) *Iterator[T] {
	return &Iterator[T]{msgIterator: iterator}
}

// Items starts a goroutine that:
//  1. Receives messages from the underlying MessageIterator
//  2. Decodes each message body as JSON into T
//  3. Emits the decoded value on the returned channel
//  4. Commits the message offset after the value has been handed off
//
// Messages that fail to decode are logged and skipped; processing continues
// with subsequent messages. The output channel is closed when the underlying
// Messages() channel is closed or ctx is canceled.
func (it *Iterator[T]) Items(ctx context.Context) <-chan T {
	out := make(chan T)
	go func() {
		defer close(out)

		for msg := range it.msgIterator.Messages() {
			var item T
			if err := json.Unmarshal(msg.Value, &item); err != nil {
				log.Printf("Error unmarshalling message at offset %d: %v", msg.Offset, err)
				continue
			}

			select {
			case out <- item:
			case <-ctx.Done():
				return
			}

			if err := it.msgIterator.CommitOffset(ctx, msg); err != nil {
				log.Printf("Failed to commit offset: %v", err)
			}
		}
	}()
	return out
}
