package app

import (
	"github.com/ghuser/mealflow/pkg/cache"
	"github.com/ghuser/mealflow/pkg/config"
	"github.com/ghuser/mealflow/pkg/database"
	"github.com/ghuser/mealflow/pkg/events"
	"github.com/ghuser/mealflow/pkg/logger"
	"github.com/ghuser/mealflow/pkg/stream"
)

// Application holds shared infrastructure dependencies for all services.
// Pass to all service route registrations during process initialization.
//
// Logging: app.Logger is backed by a trace-aware handler — use slog's context
// methods and trace_id, span_id, and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "processing order", "order_id", id)
//	app.Logger.ErrorContext(ctx, "failed to append", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Config   *config.Config
	Db       *database.Database
	Logger   logger.Logger
	EventBus *events.EventBus
	Redis    *cache.RedisClient
	Stream   *stream.Writer // order event stream; nil in processes that never append
}
