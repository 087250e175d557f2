package kinesis

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/kinesis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockKinesisClient mocks the Kinesis client
type MockKinesisClient struct {
	mock.Mock
}

func (m *MockKinesisClient) PutRecord(ctx context.Context, params *kinesis.PutRecordInput, optFns ...func(*kinesis.Options)) (*kinesis.PutRecordOutput, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(*kinesis.PutRecordOutput), args.Error(1)
}

func TestStreamer_StreamSearchEvent(t *testing.T) {
	mockClient := new(MockKinesisClient)
	streamer := NewStreamer(mockClient, "search-events")

	mockClient.On("PutRecord", mock.Anything, mock.MatchedBy(func(input *kinesis.PutRecordInput) bool {
		var event SearchEvent
		if err := json.Unmarshal(input.Data, &event); err != nil {
			return false
		}
		return *input.StreamName == "search-events" &&
			*input.PartitionKey == "req-1" &&
			event.EventID != "" &&
			!event.Timestamp.IsZero() &&
			event.ResultCount == 3 &&
			len(event.Categories) == 2
	})).Return(&kinesis.PutRecordOutput{}, nil)

	streamer.StreamSearchEvent(context.Background(), SearchEvent{
		RequestID:   "req-1",
		Outcome:     "ok",
		Categories:  []string{"한식", "중식"},
		Radius:      800,
		Lat:         37.5665,
		Lng:         126.978,
		ResultCount: 3,
	})

	mockClient.AssertExpectations(t)
}

func TestStreamer_PartitionKeyFallsBackToEventID(t *testing.T) {
	mockClient := new(MockKinesisClient)
	streamer := NewStreamer(mockClient, "search-events")

	mockClient.On("PutRecord", mock.Anything, mock.MatchedBy(func(input *kinesis.PutRecordInput) bool {
		return *input.PartitionKey == "evt-9"
	})).Return(&kinesis.PutRecordOutput{}, nil)

	streamer.StreamSearchEvent(context.Background(), SearchEvent{EventID: "evt-9", Outcome: "ok"})

	mockClient.AssertExpectations(t)
}

func TestStreamer_PutRecordErrorIsSwallowed(t *testing.T) {
	mockClient := new(MockKinesisClient)
	streamer := NewStreamer(mockClient, "search-events")

	mockClient.On("PutRecord", mock.Anything, mock.Anything).
		Return(&kinesis.PutRecordOutput{}, errors.New("throttled"))

	assert.NotPanics(t, func() {
		streamer.StreamSearchEvent(context.Background(), SearchEvent{RequestID: "req-2", Outcome: "upstream_error"})
	})
	mockClient.AssertExpectations(t)
}

func TestStreamer_Disabled(t *testing.T) {
	var nilStreamer *Streamer
	assert.NotPanics(t, func() {
		nilStreamer.StreamSearchEvent(context.Background(), SearchEvent{})
		NewStreamer(nil, "unused").StreamSearchEvent(context.Background(), SearchEvent{})
	})
}
