package service

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// MessageIterator defines the contract for consuming messages from a Kafka
// topic. It is used by the service's Iterator to abstract away the details of
// the underlying consumer.
//
// Implementations are responsible for the lifecycle of the consumer
// connection.
type MessageIterator interface {
	// Messages returns a receive-only channel of Kafka messages. The channel
	// is closed by the implementation when the consumer is stopped or the
	// underlying source is exhausted.
	Messages() <-chan kafka.Message

	// CommitOffset acknowledges that a message has been successfully
	// processed. The provided context should be used for cancellation and
	// deadlines. An error is returned if the commit fails.
	CommitOffset(ctx context.Context, msg kafka.Message) error
}
