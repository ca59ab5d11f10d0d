package worker

// retry_cron.go
// Background goroutine that periodically re-attempts SMTP delivery for
// notificaciones stuck in estado='pendiente' with a next_retry_at in the past.
// Uses the Circuit Breaker to avoid hammering a downed mail server.

import (
	"context"
	"time"

	"github.com/cuevasfm/pan-backend/internal/infra"
	"github.com/cuevasfm/pan-backend/internal/repository"

	"github.com/rs/zerolog/log"
)

const (
	retryTickInterval = 30 * time.Second
	retryBatchSize    = 10
)

// RetryCronConfig holds all dependencies for the retry goroutine.
type RetryCronConfig struct {
	NotifRepo   repository.NotificacionRepository
	EmailWorker *EmailWorker
	CB          *infra.CircuitBreaker
}

// StartRetryCron launches a background goroutine that ticks every 30s,
// queries due notificaciones, and re-attempts delivery through the CB.
// It respects the context for graceful shutdown.
func StartRetryCron(ctx context.Context, cfg RetryCronConfig) {
	go func() {
		ticker := time.NewTicker(retryTickInterval)
		defer ticker.Stop()

		log.Info().Msg("retry_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retry_cron: shutting down")
				return
			case <-ticker.C:
				processRetries(ctx, cfg)
			}
		}
	}()
}

func processRetries(ctx context.Context, cfg RetryCronConfig) {
	// If CB is open, skip entirely — don't hammer a downed mail server
	if cfg.CB.State() == infra.CBOpen {
		log.Debug().Msg("retry_cron: circuit breaker is open, skipping tick")
		return
	}

	notifs, err := cfg.NotifRepo.ListPendingRetries(ctx, time.Now(), retryBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("retry_cron: failed to query pending retries")
		return
	}
	if len(notifs) == 0 {
		return
	}

	log.Info().Int("count", len(notifs)).Msg("retry_cron: processing pending notificaciones")

	for i := range notifs {
		// Check CB state before each call — it may have tripped mid-batch
		if cfg.CB.State() == infra.CBOpen {
			log.Debug().Msg("retry_cron: circuit breaker opened mid-batch, stopping")
			return
		}
		cfg.EmailWorker.Deliver(ctx, &notifs[i])
	}
}
