package distance

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/geodistance-microservice/internal/domain"
	"github.com/geodistance-microservice/internal/usecase"
)

// MockStreamRepository - мок для StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) ConsumeBatch(ctx context.Context, stream, group, consumer string, count int) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

func (m *MockStreamRepository) AckMessages(ctx context.Context, stream, group string, messageIDs []string) error {
	args := m.Called(ctx, stream, group, messageIDs)
	return args.Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}

func newTestWorker(streamRepo *MockStreamRepository) *DistanceWorker {
	logger := zap.NewNop()
	computer := usecase.NewDistanceUseCase(logger, 5.0, false)
	return NewDistanceWorker(streamRepo, computer, "test-group", logger)
}

func TestDistanceWorker_Name(t *testing.T) {
	w := newTestWorker(new(MockStreamRepository))
	assert.Equal(t, "distance-worker", w.Name())
}

func TestDistanceWorker_StopIdempotent(t *testing.T) {
	w := newTestWorker(new(MockStreamRepository))

	require.NoError(t, w.Stop())
	// Повторный Stop не должен паниковать на закрытом канале
	require.NoError(t, w.Stop())
	assert.True(t, w.IsStopped())
}

func TestDistanceWorker_StopsOnContextCancel(t *testing.T) {
	streamRepo := new(MockStreamRepository)
	streamRepo.On("CreateConsumerGroup", mock.Anything, domain.StreamDistanceCompute, "test-group").
		Return(nil)
	streamRepo.On("ConsumeBatch", mock.Anything, domain.StreamDistanceCompute, "test-group", mock.Anything, 20).
		Return([]domain.StreamMessage{}, nil).Maybe()

	w := newTestWorker(streamRepo)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.Start(ctx)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop after context cancellation")
	}
}

func TestDistanceWorker_ProcessBatch(t *testing.T) {
	jobID := uuid.New()
	event := domain.DistanceComputeEvent{
		JobID: jobID,
		Pairs: []domain.CoordinatePair{
			// Plaça de Catalunya -> Sagrada Família, ~2 km
			{FromLat: 41.3870, FromLon: 2.1701, ToLat: 41.4036, ToLon: 2.1744},
		},
	}
	data, err := json.Marshal(event)
	require.NoError(t, err)

	streamRepo := new(MockStreamRepository)
	streamRepo.On("ConsumeBatch", mock.Anything, domain.StreamDistanceCompute, "test-group", mock.Anything, 20).
		Return([]domain.StreamMessage{{ID: "1-0", Data: string(data)}}, nil)

	var published domain.DistanceDoneEvent
	streamRepo.On("PublishToStream", mock.Anything, domain.StreamDistanceDone, mock.MatchedBy(func(v interface{}) bool {
		done, ok := v.(domain.DistanceDoneEvent)
		if ok {
			published = done
		}
		return ok
	})).Return(nil)

	streamRepo.On("AckMessages", mock.Anything, domain.StreamDistanceCompute, "test-group", []string{"1-0"}).
		Return(nil)

	w := newTestWorker(streamRepo)
	require.NoError(t, w.processBatch(context.Background()))

	streamRepo.AssertExpectations(t)

	assert.Equal(t, jobID, published.JobID)
	assert.Empty(t, published.Error)
	require.Len(t, published.Results, 1)
	assert.Empty(t, published.Results[0].Error)
	assert.InDelta(t, 1900.0, published.Results[0].Distance, 300.0)
}

func TestDistanceWorker_AcksPoisonMessage(t *testing.T) {
	streamRepo := new(MockStreamRepository)
	streamRepo.On("ConsumeBatch", mock.Anything, domain.StreamDistanceCompute, "test-group", mock.Anything, 20).
		Return([]domain.StreamMessage{{ID: "2-0", Data: "not json"}}, nil)
	streamRepo.On("AckMessages", mock.Anything, domain.StreamDistanceCompute, "test-group", []string{"2-0"}).
		Return(nil)

	w := newTestWorker(streamRepo)
	require.NoError(t, w.processBatch(context.Background()))

	// Нечитаемое сообщение подтверждается без публикации результата
	streamRepo.AssertNotCalled(t, "PublishToStream", mock.Anything, mock.Anything, mock.Anything)
	streamRepo.AssertExpectations(t)
}

func TestDistanceWorker_EmptyEventReportsError(t *testing.T) {
	jobID := uuid.New()
	event := domain.DistanceComputeEvent{JobID: jobID}
	data, err := json.Marshal(event)
	require.NoError(t, err)

	streamRepo := new(MockStreamRepository)
	streamRepo.On("ConsumeBatch", mock.Anything, domain.StreamDistanceCompute, "test-group", mock.Anything, 20).
		Return([]domain.StreamMessage{{ID: "3-0", Data: string(data)}}, nil)

	streamRepo.On("PublishToStream", mock.Anything, domain.StreamDistanceDone, mock.MatchedBy(func(v interface{}) bool {
		done, ok := v.(domain.DistanceDoneEvent)
		return ok && done.JobID == jobID && done.Error != ""
	})).Return(nil)

	streamRepo.On("AckMessages", mock.Anything, domain.StreamDistanceCompute, "test-group", []string{"3-0"}).
		Return(nil)

	w := newTestWorker(streamRepo)
	require.NoError(t, w.processBatch(context.Background()))

	streamRepo.AssertExpectations(t)
}
