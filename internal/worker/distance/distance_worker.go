package distance

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/geodistance-microservice/internal/domain"
	"github.com/geodistance-microservice/internal/domain/repository"
	"github.com/geodistance-microservice/internal/usecase/dto"
	"github.com/geodistance-microservice/internal/worker"
)

const (
	// maxBatchSize - максимальное количество сообщений за одну итерацию
	maxBatchSize = 20

	// emptyQueueSleep - пауза при пустой очереди
	emptyQueueSleep = 100 * time.Millisecond
)

// DistanceComputer вычисляет расстояния для пакета пар координат
type DistanceComputer interface {
	BatchDistance(ctx context.Context, req dto.BatchDistanceRequest) (*dto.BatchDistanceResponse, error)
}

// DistanceWorker потребляет задания на расчёт расстояний из Redis Stream,
// вычисляет результаты и публикует их в done-стрим
type DistanceWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	computer     DistanceComputer
	consumerName string
}

// NewDistanceWorker создает новый DistanceWorker
func NewDistanceWorker(
	streamRepo repository.StreamRepository,
	computer DistanceComputer,
	consumerGroup string,
	logger *zap.Logger,
) *DistanceWorker {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	return &DistanceWorker{
		BaseWorker:   worker.NewBaseWorker("distance-worker", consumerGroup, logger),
		streamRepo:   streamRepo,
		computer:     computer,
		consumerName: consumerName,
	}
}

// Start запускает цикл обработки
func (w *DistanceWorker) Start(ctx context.Context) error {
	w.Logger().Info("Starting distance worker",
		zap.String("stream", domain.StreamDistanceCompute),
		zap.String("group", w.ConsumerGroup()),
		zap.String("consumer", w.consumerName))

	// Consumer group должна существовать до первого чтения
	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamDistanceCompute, w.ConsumerGroup()); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			w.Logger().Info("Distance worker stopped by context")
			return nil
		case <-w.StopChan():
			w.Logger().Info("Distance worker stopped")
			return nil
		default:
			if err := w.processBatch(ctx); err != nil {
				w.Logger().Error("Failed to process batch", zap.Error(err))
				time.Sleep(time.Second)
			}
		}
	}
}

// processBatch читает и обрабатывает пакет сообщений
func (w *DistanceWorker) processBatch(ctx context.Context) error {
	messages, err := w.streamRepo.ConsumeBatch(ctx,
		domain.StreamDistanceCompute, w.ConsumerGroup(), w.consumerName, maxBatchSize)
	if err != nil {
		return fmt.Errorf("failed to consume batch: %w", err)
	}

	if len(messages) == 0 {
		time.Sleep(emptyQueueSleep)
		return nil
	}

	w.Logger().Debug("Processing batch", zap.Int("count", len(messages)))

	ackIDs := make([]string, 0, len(messages))

	for _, msg := range messages {
		var event domain.DistanceComputeEvent
		if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
			// Нечитаемое сообщение подтверждаем, чтобы не зациклиться на нём
			w.Logger().Warn("Failed to parse compute event, acknowledging poison message",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			ackIDs = append(ackIDs, msg.ID)
			continue
		}

		done := w.processEvent(ctx, event)

		if err := w.streamRepo.PublishToStream(ctx, domain.StreamDistanceDone, done); err != nil {
			// Не подтверждаем - сообщение будет обработано повторно
			w.Logger().Error("Failed to publish done event",
				zap.String("job_id", event.JobID.String()),
				zap.Error(err))
			continue
		}

		ackIDs = append(ackIDs, msg.ID)
	}

	if len(ackIDs) > 0 {
		if err := w.streamRepo.AckMessages(ctx,
			domain.StreamDistanceCompute, w.ConsumerGroup(), ackIDs); err != nil {
			return fmt.Errorf("failed to acknowledge messages: %w", err)
		}
	}

	return nil
}

// processEvent вычисляет расстояния для одного задания
func (w *DistanceWorker) processEvent(ctx context.Context, event domain.DistanceComputeEvent) domain.DistanceDoneEvent {
	if len(event.Pairs) == 0 {
		return domain.DistanceDoneEvent{
			JobID: event.JobID,
			Error: "event contains no coordinate pairs",
		}
	}

	pairs := make([]dto.DistancePair, len(event.Pairs))
	for i, p := range event.Pairs {
		pairs[i] = dto.DistancePair{
			From: dto.Point{Lat: p.FromLat, Lon: p.FromLon},
			To:   dto.Point{Lat: p.ToLat, Lon: p.ToLon},
		}
	}

	resp, err := w.computer.BatchDistance(ctx, dto.BatchDistanceRequest{
		Pairs:  pairs,
		Strict: event.Strict,
	})
	if err != nil {
		w.Logger().Error("Failed to compute distances",
			zap.String("job_id", event.JobID.String()),
			zap.Error(err))
		return domain.DistanceDoneEvent{
			JobID: event.JobID,
			Error: err.Error(),
		}
	}

	results := make([]domain.PairResult, len(resp.Results))
	for i, r := range resp.Results {
		results[i] = domain.PairResult{
			Distance: r.Distance,
			Error:    r.Error,
		}
	}

	w.Logger().Info("Job processed",
		zap.String("job_id", event.JobID.String()),
		zap.Int("pairs", len(results)))

	return domain.DistanceDoneEvent{
		JobID:   event.JobID,
		Results: results,
	}
}
