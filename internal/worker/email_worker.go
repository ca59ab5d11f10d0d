package worker

// email_worker.go
// Processes notification email jobs from QueueEmail.
// SMTP calls go through the circuit breaker; failures schedule a retry
// on the notificaciones table, which the retry cron picks up later.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cuevasfm/pan-backend/internal/infra"
	"github.com/cuevasfm/pan-backend/internal/model"
	"github.com/cuevasfm/pan-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// MaxNotificacionRetries is the cap before a notification goes to the DLQ.
const MaxNotificacionRetries = 3

// EmailJobPayload is the job envelope sent to QueueEmail.
// It carries only the notification id; the body lives in the DB.
type EmailJobPayload struct {
	NotificacionID string `json:"notificacion_id"`
}

// EmailWorker delivers pending notificaciones over SMTP.
type EmailWorker struct {
	mailer    *infra.Mailer
	cb        *infra.CircuitBreaker
	notifRepo repository.NotificacionRepository
	rdb       *redis.Client
}

func NewEmailWorker(mailer *infra.Mailer, cb *infra.CircuitBreaker, notifRepo repository.NotificacionRepository, rdb *redis.Client) *EmailWorker {
	return &EmailWorker{mailer: mailer, cb: cb, notifRepo: notifRepo, rdb: rdb}
}

// Process handles one email job from the queue.
func (w *EmailWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return
	}

	id, err := uuid.Parse(payload.NotificacionID)
	if err != nil {
		log.Error().Str("notificacion_id", payload.NotificacionID).Msg("email_worker: invalid notificacion id")
		return
	}

	notif, err := w.notifRepo.FindByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("notificacion_id", payload.NotificacionID).Msg("email_worker: notificacion not found")
		return
	}
	if notif.Estado != model.NotifPendiente {
		log.Debug().Str("estado", notif.Estado).Str("notificacion_id", notif.ID.String()).Msg("email_worker: skipping non-pending notificacion")
		return
	}

	w.Deliver(ctx, notif)
}

// Deliver attempts an SMTP send through the circuit breaker and records
// the outcome on the notificacion. Shared with the retry cron.
func (w *EmailWorker) Deliver(ctx context.Context, notif *model.Notificacion) {
	sendErr := w.cb.Execute(func() error {
		return w.mailer.Send(notif.Email, notif.Asunto, notif.Cuerpo)
	})

	if sendErr == nil {
		notif.Estado = model.NotifEnviada
		notif.NextRetryAt = nil
		notif.LastError = nil
		if err := w.notifRepo.Update(ctx, notif); err != nil {
			log.Error().Err(err).Str("notificacion_id", notif.ID.String()).Msg("email_worker: failed to mark enviada")
			return
		}
		log.Info().Str("to", notif.Email).Str("notificacion_id", notif.ID.String()).Msg("email_worker: notificacion sent")
		return
	}

	notif.RetryCount++
	errMsg := sendErr.Error()
	notif.LastError = &errMsg

	if notif.RetryCount >= MaxNotificacionRetries {
		notif.Estado = model.NotifFallida
		notif.NextRetryAt = nil
		_ = w.notifRepo.Update(ctx, notif)

		payload := fmt.Sprintf(`{"notificacion_id":"%s","pedido_id":"%s"}`, notif.ID, notif.PedidoID)
		SendToDLQ(ctx, w.rdb, QueueEmail, "email", []byte(payload),
			fmt.Sprintf("max retries (%d) exceeded: %s", MaxNotificacionRetries, errMsg),
			notif.RetryCount)
		log.Error().
			Str("notificacion_id", notif.ID.String()).
			Int("retries", notif.RetryCount).
			Msg("email_worker: max retries exceeded, moved to DLQ")
		return
	}

	nextRetry := time.Now().Add(retryBackoff(notif.RetryCount))
	notif.NextRetryAt = &nextRetry
	_ = w.notifRepo.Update(ctx, notif)

	log.Warn().
		Err(sendErr).
		Str("notificacion_id", notif.ID.String()).
		Int("retry_count", notif.RetryCount).
		Time("next_retry_at", nextRetry).
		Msg("email_worker: send failed, scheduled retry")
}

// retryBackoff returns the wait before the next attempt: 1m, 2m, 4m …
func retryBackoff(retryCount int) time.Duration {
	if retryCount < 1 {
		retryCount = 1
	}
	return time.Duration(1<<uint(retryCount-1)) * time.Minute
}
