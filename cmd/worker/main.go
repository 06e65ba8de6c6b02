package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/mealflow/pkg/cache"
	"github.com/ghuser/mealflow/pkg/config"
	"github.com/ghuser/mealflow/pkg/events"
	"github.com/ghuser/mealflow/pkg/httpx"
	"github.com/ghuser/mealflow/pkg/logger"
	"github.com/ghuser/mealflow/pkg/stream"
	"github.com/ghuser/mealflow/pkg/telemetry"
	"github.com/ghuser/mealflow/services/notifier/infrastructure/emit"
	"github.com/ghuser/mealflow/services/notifier/infrastructure/notification"
	"github.com/ghuser/mealflow/services/notifier/pipeline"
	orderevents "github.com/ghuser/mealflow/services/order/domain/events"
)

// Number of times a batch's retryable failures are re-driven in place before
// the worker gives up on them and commits anyway. Keeps a single poisoned
// downstream from stalling the whole partition.
const maxBatchRetries = 3

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	otelShutdown, metricsHandler, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(context.Background()) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	eventBus, err := events.NewEventBus(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic // intentional: startup failure, deferred flushes are best-effort
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck

	reader := stream.NewReader(cfg.Brokers(), cfg.OrderEventsTopic, cfg.ConsumerGroup, log)
	defer reader.Close() //nolint:errcheck

	writer := stream.NewWriter(cfg.Brokers(), cfg.OrderEventsTopic, log)
	defer writer.Close() //nolint:errcheck

	publisher := notification.NewPublisher(eventBus, cfg.NotificationTopic, log)
	emitter := emit.NewEmitter(writer, log)
	orch := pipeline.NewOrchestrator(publisher, emitter, log)

	// Read model: record delivered notifications so the API can answer
	// "was this order's restaurant notified" without replaying the topic.
	notified := cache.NewNotifiedOrders(redisClient)
	errCh, err := eventBus.Subscribe(ctx, cfg.NotificationTopic, notifiedHandler(notified, log))
	if err != nil {
		log.Error("failed to subscribe to notification topic", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	go func() {
		for err := range errCh {
			log.ErrorContext(ctx, "notification subscriber error", "error", err)
		}
	}()

	// Worker health + metrics endpoint.
	mux := http.NewServeMux()
	mux.HandleFunc("/health", httpx.HealthHandler(httpx.HealthChecks{
		Redis:    redisClient,
		EventBus: eventBus,
		Stream:   stream.NewHealth(cfg.Brokers()),
	}))
	mux.Handle("/metrics", metricsHandler)
	srv := httpx.NewServer(cfg.WorkerAddr, mux)
	go func() {
		log.Info("worker metrics listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("worker metrics server error", "error", err)
		}
	}()

	log.Info("worker consuming",
		"topic", cfg.OrderEventsTopic,
		"group", cfg.ConsumerGroup,
		"batch_max", cfg.BatchMaxRecords,
	)

	runPipeline(ctx, cfg, reader, orch, log)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("worker metrics server forced shutdown", "error", err)
	}
	log.Info("worker stopped")
}

// runPipeline fetches batches until ctx is cancelled. Each batch is processed
// once, its retryable failures re-driven in place up to maxBatchRetries, and
// committed. Committing after exhausted retries trades eventual loss of a
// persistently failing record against stalling the partition; the failure is
// logged and counted so it can be replayed by hand.
func runPipeline(ctx context.Context, cfg *config.Config, reader *stream.Reader, orch *pipeline.Orchestrator, log logger.Logger) {
	for {
		batch, err := reader.FetchBatch(ctx, cfg.BatchMaxRecords, cfg.BatchMaxWait)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.ErrorContext(ctx, "fetch batch failed", "error", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Second):
			}
			continue
		}

		result := orch.ProcessBatch(ctx, batch.Records)
		result = redriveFailures(ctx, orch, batch.Records, result, log)

		if failed := result.Failures(); len(failed) > 0 {
			for _, out := range failed {
				log.ErrorContext(ctx, "record abandoned after retries",
					"order_id", out.OrderID,
					"step", out.Step,
					"error", out.Err,
				)
			}
		}

		if err := batch.Commit(ctx); err != nil {
			// Failed commit means redelivery after restart; processing is
			// idempotent downstream so at-least-once still holds.
			log.ErrorContext(ctx, "commit batch failed", "error", err)
		}
	}
}

// redriveFailures reprocesses only the records behind retryable failures,
// leaving already-succeeded siblings untouched.
func redriveFailures(ctx context.Context, orch *pipeline.Orchestrator, records []stream.Record, result pipeline.Result, log logger.Logger) pipeline.Result {
	for attempt := 1; attempt <= maxBatchRetries; attempt++ {
		retryable := result.RetryableFailures()
		if len(retryable) == 0 {
			return result
		}

		keys := make(map[string]bool, len(retryable))
		for _, out := range retryable {
			keys[out.OrderID] = true
		}
		subset := make([]stream.Record, 0, len(retryable))
		for _, rec := range records {
			if keys[rec.Key] {
				subset = append(subset, rec)
			}
		}
		if len(subset) == 0 {
			return result
		}

		delay := time.Duration(attempt) * time.Second
		log.WarnContext(ctx, "re-driving failed records",
			"attempt", attempt,
			"records", len(subset),
			"next_delay", delay,
		)
		select {
		case <-ctx.Done():
			return result
		case <-time.After(delay):
		}

		retried := orch.ProcessBatch(ctx, subset)
		result = mergeResults(result, retried, keys)
	}
	return result
}

// mergeResults replaces the outcomes for re-driven records with their latest
// attempt's outcomes. Outcomes for records outside the retried set pass
// through unchanged.
func mergeResults(prev, retried pipeline.Result, retriedKeys map[string]bool) pipeline.Result {
	merged := pipeline.Result{Skipped: prev.Skipped}
	for _, out := range prev.Outcomes {
		if !retriedKeys[out.OrderID] {
			merged.Outcomes = append(merged.Outcomes, out)
		}
	}
	merged.Outcomes = append(merged.Outcomes, retried.Outcomes...)
	return merged
}

// notifiedHandler updates the notified-orders read model for every delivered
// notification. SetNX makes replays harmless, so the handler is safe under
// at-least-once delivery.
func notifiedHandler(notified *cache.NotifiedOrders, log logger.Logger) func(context.Context, *message.Message) error {
	return func(ctx context.Context, msg *message.Message) error {
		var evt orderevents.OrderEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			// Malformed payloads never become valid: log and ack.
			log.ErrorContext(ctx, "notification payload undecodable", "error", err)
			return nil
		}
		first, err := notified.MarkNotified(ctx, evt.OrderID, evt.RestaurantName)
		if err != nil {
			return err
		}
		if first {
			log.DebugContext(ctx, "order marked notified", "order_id", evt.OrderID)
		}
		return nil
	}
}
