package kinesis

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/kinesis"
	"github.com/google/uuid"
)

// PutRecordAPI interface for mocking
type PutRecordAPI interface {
	PutRecord(ctx context.Context, params *kinesis.PutRecordInput, optFns ...func(*kinesis.Options)) (*kinesis.PutRecordOutput, error)
}

type Streamer struct {
	client     PutRecordAPI
	streamName string
}

// SearchEvent describes one proxy search for analytics consumers
type SearchEvent struct {
	EventID     string    `json:"event_id"`
	RequestID   string    `json:"request_id"`
	Outcome     string    `json:"outcome"` // ok, upstream_error
	Timestamp   time.Time `json:"timestamp"`
	Categories  []string  `json:"categories"`
	Radius      int       `json:"radius"`
	Lat         float64   `json:"lat"`
	Lng         float64   `json:"lng"`
	ResultCount int       `json:"result_count"`
}

func NewStreamer(client PutRecordAPI, streamName string) *Streamer {
	return &Streamer{
		client:     client,
		streamName: streamName,
	}
}

// StreamSearchEvent publishes the event. Failures are logged and dropped.
func (s *Streamer) StreamSearchEvent(ctx context.Context, event SearchEvent) {
	if s == nil || s.client == nil {
		return // Kinesis not enabled
	}

	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	partitionKey := event.RequestID
	if partitionKey == "" {
		partitionKey = event.EventID
	}

	data, err := json.Marshal(event)
	if err != nil {
		slog.Error("Failed to marshal search event", "request_id", event.RequestID, "error", err)
		return
	}

	_, err = s.client.PutRecord(ctx, &kinesis.PutRecordInput{
		StreamName:   aws.String(s.streamName),
		Data:         data,
		PartitionKey: aws.String(partitionKey),
	})

	if err != nil {
		slog.Error("Failed to stream search event", "request_id", event.RequestID, "outcome", event.Outcome, "error", err)
	} else {
		slog.Debug("Streamed search event", "request_id", event.RequestID, "outcome", event.Outcome)
	}
}
