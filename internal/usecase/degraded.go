package usecase

import (
	"context"
	"errors"

	"github.com/riskibarqy/match-stats/internal/domain/storage"
	"github.com/riskibarqy/match-stats/internal/platform/logging"
)

// degradeRead reports whether a read error should be swallowed. An unreachable store
// degrades reads to an empty result with a warning; every other error propagates.
func degradeRead(ctx context.Context, logger *logging.Logger, op string, err error) bool {
	if err == nil || !errors.Is(err, storage.ErrUnavailable) {
		return false
	}
	logger.WarnContext(ctx, "store unavailable, returning empty result", "operation", op, "error", err)
	return true
}

func warnStoreNotConfigured(ctx context.Context, logger *logging.Logger, op string) {
	logger.WarnContext(ctx, "store not configured, skipping", "operation", op)
}
