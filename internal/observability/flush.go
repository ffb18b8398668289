package observability

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kjstillabower/skysense/internal/traffic"
)

// FlushTelemetry logs the upstream outcome summary for the last window and
// flushes the logger. Call during graceful shutdown after in-flight requests
// have drained.
func FlushTelemetry(ctx context.Context, logger *zap.Logger, window time.Duration) error {
	if logger == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("flush telemetry: %w", err)
	}
	errs, total := traffic.ErrorRate(window)
	logger.Info("upstream summary",
		zap.Duration("window", window),
		zap.Int("requests", total),
		zap.Int("errors", errs),
	)
	if err := logger.Sync(); err != nil {
		return fmt.Errorf("flush logs: %w", err)
	}
	return nil
}
