package places

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"lunch-roulette/internal/geo"
	"lunch-roulette/internal/kinesis"

	awskinesis "github.com/aws/aws-sdk-go-v2/service/kinesis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProvider implements Provider interface for testing
type MockProvider struct {
	results map[string][]Place
	errs    map[string]error
	calls   []KeywordRequest
}

func NewMockProvider() *MockProvider {
	return &MockProvider{
		results: make(map[string][]Place),
		errs:    make(map[string]error),
	}
}

func (m *MockProvider) SearchKeyword(ctx context.Context, req KeywordRequest) ([]Place, error) {
	m.calls = append(m.calls, req)
	if err, exists := m.errs[req.Keyword]; exists {
		return nil, err
	}
	return m.results[req.Keyword], nil
}

// MockPutRecordClient captures streamed events
type MockPutRecordClient struct {
	mock.Mock
}

func (m *MockPutRecordClient) PutRecord(ctx context.Context, params *awskinesis.PutRecordInput, optFns ...func(*awskinesis.Options)) (*awskinesis.PutRecordOutput, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(*awskinesis.PutRecordOutput), args.Error(1)
}

var seoul = geo.Coordinate{Lat: 37.5665, Lng: 126.978}

func TestSearchService_TwoCategoriesMergedAndDeduped(t *testing.T) {
	provider := NewMockProvider()
	provider.results["한식"] = []Place{{ID: "1", Name: "국밥집"}, {ID: "2", Name: "한식뷔페"}}
	provider.results["중식"] = []Place{{ID: "3", Name: "짜장면집"}, {ID: "2", Name: "한식뷔페"}}

	service := NewSearchService(provider)

	results, err := service.Search(context.Background(), SearchRequest{
		Center:     seoul,
		Categories: ParseCategories("한식,중식"),
		Radius:     800,
	})
	require.NoError(t, err)

	require.Len(t, provider.calls, 2)
	assert.Equal(t, "한식", provider.calls[0].Keyword)
	assert.Equal(t, "중식", provider.calls[1].Keyword)
	for _, call := range provider.calls {
		assert.Equal(t, seoul, call.Center)
		assert.Equal(t, 800, call.Radius)
	}

	require.Len(t, results, 3)
	assert.Equal(t, []string{"1", "2", "3"}, []string{results[0].ID, results[1].ID, results[2].ID})
}

func TestSearchService_Defaults(t *testing.T) {
	provider := NewMockProvider()
	service := NewSearchService(provider)

	results, err := service.Search(context.Background(), SearchRequest{Center: seoul})
	require.NoError(t, err)
	assert.Empty(t, results)

	require.Len(t, provider.calls, 1)
	assert.Equal(t, DefaultCategory, provider.calls[0].Keyword)
	assert.Equal(t, DefaultRadius, provider.calls[0].Radius)
}

func TestSearchService_UpstreamFailureAbortsWithoutPartialResults(t *testing.T) {
	provider := NewMockProvider()
	provider.results["한식"] = []Place{{ID: "1"}}
	provider.errs["중식"] = errors.New("connection reset")
	provider.results["일식"] = []Place{{ID: "9"}}

	service := NewSearchService(provider)

	results, err := service.Search(context.Background(), SearchRequest{
		Center:     seoul,
		Categories: []string{"한식", "중식", "일식"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstream)
	assert.Nil(t, results)

	// Calls stop at the failing category
	assert.Len(t, provider.calls, 2)
}

func TestSearchService_StreamsEvents(t *testing.T) {
	provider := NewMockProvider()
	provider.results["카페"] = []Place{{ID: "1"}, {ID: "1"}, {ID: "2"}}

	mockClient := new(MockPutRecordClient)
	mockClient.On("PutRecord", mock.Anything, mock.MatchedBy(func(input *awskinesis.PutRecordInput) bool {
		var event kinesis.SearchEvent
		if err := json.Unmarshal(input.Data, &event); err != nil {
			return false
		}
		return event.RequestID == "req-7" && event.Outcome == "ok" && event.ResultCount == 2
	})).Return(&awskinesis.PutRecordOutput{}, nil).Once()

	service := NewSearchService(provider)
	service.SetKinesisStreamer(kinesis.NewStreamer(mockClient, "search-events"))

	_, err := service.Search(context.Background(), SearchRequest{
		RequestID:  "req-7",
		Center:     seoul,
		Categories: []string{"카페"},
	})
	require.NoError(t, err)
	mockClient.AssertExpectations(t)
}

func TestSearchService_StreamsFailureEvent(t *testing.T) {
	provider := NewMockProvider()
	provider.errs["술집"] = errors.New("timeout")

	mockClient := new(MockPutRecordClient)
	mockClient.On("PutRecord", mock.Anything, mock.MatchedBy(func(input *awskinesis.PutRecordInput) bool {
		var event kinesis.SearchEvent
		if err := json.Unmarshal(input.Data, &event); err != nil {
			return false
		}
		return event.Outcome == "upstream_error" && event.ResultCount == 0
	})).Return(&awskinesis.PutRecordOutput{}, nil).Once()

	service := NewSearchService(provider)
	service.SetKinesisStreamer(kinesis.NewStreamer(mockClient, "search-events"))

	_, err := service.Search(context.Background(), SearchRequest{Center: seoul, Categories: []string{"술집"}})
	require.Error(t, err)
	mockClient.AssertExpectations(t)
}
