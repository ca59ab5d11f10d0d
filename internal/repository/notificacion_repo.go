package repository

import (
	"context"
	"time"

	"github.com/cuevasfm/pan-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificacionRepository interface {
	Create(ctx context.Context, n *model.Notificacion) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Notificacion, error)
	Update(ctx context.Context, n *model.Notificacion) error
	// ListPendingRetries returns pendientes whose next_retry_at is due.
	ListPendingRetries(ctx context.Context, now time.Time, limit int) ([]model.Notificacion, error)
}

type notificacionRepo struct{ db *gorm.DB }

func NewNotificacionRepository(db *gorm.DB) NotificacionRepository {
	return &notificacionRepo{db: db}
}

func (r *notificacionRepo) Create(ctx context.Context, n *model.Notificacion) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificacionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Notificacion, error) {
	var n model.Notificacion
	err := r.db.WithContext(ctx).First(&n, id).Error
	return &n, err
}

func (r *notificacionRepo) Update(ctx context.Context, n *model.Notificacion) error {
	return r.db.WithContext(ctx).Save(n).Error
}

func (r *notificacionRepo) ListPendingRetries(ctx context.Context, now time.Time, limit int) ([]model.Notificacion, error) {
	var notifs []model.Notificacion
	err := r.db.WithContext(ctx).
		Where("estado = ? AND next_retry_at IS NOT NULL AND next_retry_at <= ?", model.NotifPendiente, now).
		Order("next_retry_at ASC").
		Limit(limit).
		Find(&notifs).Error
	return notifs, err
}
