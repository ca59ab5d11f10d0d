package model

import (
	"time"

	"github.com/google/uuid"
)

// Estados de notificación.
const (
	NotifPendiente = "pendiente"
	NotifEnviada   = "enviada"
	NotifFallida   = "fallida"
)

// Notificacion is the persisted outbox row for a pedido-confirmation email.
// The worker pool delivers it; on SMTP failure the retry cron re-enqueues it
// with exponential backoff until MaxIntentos, then marks it fallida and the
// job lands in the DLQ.
type Notificacion struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PedidoID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Email       string    `gorm:"not null"`
	Asunto      string    `gorm:"not null"`
	Cuerpo      string    `gorm:"not null"`
	Estado      string    `gorm:"type:varchar(20);not null;default:'pendiente'"`
	RetryCount  int       `gorm:"not null;default:0"`
	NextRetryAt *time.Time
	LastError   *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Notificacion) TableName() string { return "notificaciones" }
