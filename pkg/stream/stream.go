// Package stream provides the ordered, partitioned event stream backing the
// order pipeline, built on Kafka. Records carry an opaque payload plus a
// partition key; records sharing a key are delivered in production order,
// records with different keys carry no relative ordering guarantee.
package stream

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/ghuser/mealflow/pkg/logger"
)

// Record is one stream record: an opaque payload routed and ordered by Key.
type Record struct {
	Key   string
	Value []byte
}

// Writer appends records to a stream topic. Records are hash-partitioned by
// key, so every record for a given key lands on the same partition.
type Writer struct {
	w   *kafka.Writer
	log logger.Logger
}

// NewWriter returns a Writer for the given topic. The writer is long-lived
// and safe for concurrent use; callers share one instance per process.
func NewWriter(brokers []string, topic string, log logger.Logger) *Writer {
	return &Writer{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			BatchTimeout: 50 * time.Millisecond,
		},
		log: log,
	}
}

// Append writes one record to the stream, keyed for ordering by key.
func (w *Writer) Append(ctx context.Context, key string, value []byte) error {
	if err := w.w.WriteMessages(ctx, kafka.Message{Key: []byte(key), Value: value}); err != nil {
		return fmt.Errorf("stream: append key %s: %w", key, err)
	}
	w.log.DebugContext(ctx, "stream: record appended", "key", key, "size", len(value))
	return nil
}

// Close flushes and shuts down the writer.
func (w *Writer) Close() error {
	if err := w.w.Close(); err != nil {
		return fmt.Errorf("stream: close writer: %w", err)
	}
	return nil
}

// Reader consumes a stream topic as part of a consumer group. Partition
// ownership is exclusive within the group, so per-key ordering holds across
// consumer instances.
type Reader struct {
	r   *kafka.Reader
	log logger.Logger
}

// NewReader returns a Reader joining groupID on the given topic.
func NewReader(brokers []string, topic, groupID string, log logger.Logger) *Reader {
	return &Reader{
		r: kafka.NewReader(kafka.ReaderConfig{
			Brokers:        brokers,
			Topic:          topic,
			GroupID:        groupID,
			MinBytes:       1,
			MaxBytes:       10 << 20, // 10 MB
			CommitInterval: 0,        // synchronous commits only
		}),
		log: log,
	}
}

// Batch is a group of records fetched together. Offsets are committed only
// when the caller invokes Commit, so an uncommitted batch is redelivered
// after a restart (at-least-once).
type Batch struct {
	Records []Record

	msgs []kafka.Message
	r    *kafka.Reader
}

// Size returns the number of records in the batch.
func (b *Batch) Size() int { return len(b.Records) }

// Commit marks every record in the batch as consumed.
func (b *Batch) Commit(ctx context.Context) error {
	if len(b.msgs) == 0 {
		return nil
	}
	if err := b.r.CommitMessages(ctx, b.msgs...); err != nil {
		return fmt.Errorf("stream: commit batch: %w", err)
	}
	return nil
}

// FetchBatch blocks for the next record, then keeps collecting until max
// records are buffered or maxWait elapses with no further records. Returns
// ctx.Err() when the surrounding context is cancelled before any record
// arrives.
func (r *Reader) FetchBatch(ctx context.Context, max int, maxWait time.Duration) (*Batch, error) {
	first, err := r.r.FetchMessage(ctx)
	if err != nil {
		return nil, fmt.Errorf("stream: fetch: %w", err)
	}

	batch := &Batch{r: r.r}
	batch.append(first)

	for batch.Size() < max {
		waitCtx, cancel := context.WithTimeout(ctx, maxWait)
		msg, err := r.r.FetchMessage(waitCtx)
		cancel()
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				break // window elapsed, ship what we have
			}
			if ctx.Err() != nil {
				break
			}
			r.log.WarnContext(ctx, "stream: fetch during batch window failed", "error", err)
			break
		}
		batch.append(msg)
	}

	r.log.DebugContext(ctx, "stream: batch fetched", "records", batch.Size())
	return batch, nil
}

func (b *Batch) append(msg kafka.Message) {
	b.Records = append(b.Records, Record{Key: string(msg.Key), Value: msg.Value})
	b.msgs = append(b.msgs, msg)
}

// Close leaves the consumer group and releases the reader.
func (r *Reader) Close() error {
	if err := r.r.Close(); err != nil {
		return fmt.Errorf("stream: close reader: %w", err)
	}
	return nil
}

// Health probes broker connectivity for the health endpoint.
type Health struct {
	broker string
}

// NewHealth returns a Health checker dialing the first broker in the list.
func NewHealth(brokers []string) *Health {
	broker := ""
	if len(brokers) > 0 {
		broker = brokers[0]
	}
	return &Health{broker: broker}
}

// Ping dials the broker to verify it is reachable.
func (h *Health) Ping(ctx context.Context) error {
	if h.broker == "" {
		return errors.New("stream: no broker configured")
	}
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", h.broker)
	if err != nil {
		return fmt.Errorf("stream: ping broker: %w", err)
	}
	return conn.Close()
}
