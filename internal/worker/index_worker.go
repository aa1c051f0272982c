package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"aarogya-ai/internal/rag"
)

// IndexWorker consumes report index jobs from the durable queue and feeds
// them to the indexer. Failed jobs are nacked without requeue and logged;
// the report stays saved but unsearchable until re-indexed.
type IndexWorker struct {
	conn      *amqp.Connection
	indexer   *rag.Indexer
	queueName string
	logger    zerolog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewIndexWorker(conn *amqp.Connection, indexer *rag.Indexer, queueName string, logger zerolog.Logger) *IndexWorker {
	return &IndexWorker{
		conn:      conn,
		indexer:   indexer,
		queueName: queueName,
		logger:    logger,
	}
}

func (w *IndexWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	_, err = ch.QueueDeclare(
		w.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("declare worker queue failed: %w", err)
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume queue failed: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}

				var job rag.IndexJob
				if err := json.Unmarshal(d.Body, &job); err != nil {
					w.logger.Error().Err(err).Msg("decode index job failed")
					_ = d.Nack(false, false)
					continue
				}

				if err := w.indexer.IndexReport(workerCtx, job); err != nil {
					w.logger.Error().Err(err).
						Str("report_id", job.ReportID).
						Msg("index report failed")
					_ = d.Nack(false, false)
					continue
				}

				_ = d.Ack(false)
			}
		}
	}()

	return nil
}

func (w *IndexWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
