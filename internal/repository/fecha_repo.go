package repository

import (
	"context"

	"github.com/cuevasfm/pan-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FechaProduccionRepository interface {
	Create(ctx context.Context, f *model.FechaProduccion) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.FechaProduccion, error)
	List(ctx context.Context) ([]model.FechaProduccion, error)
	ListAbiertas(ctx context.Context) ([]model.FechaProduccion, error)
	Update(ctx context.Context, f *model.FechaProduccion) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountPedidos(ctx context.Context, id uuid.UUID) (int64, error)
}

type fechaRepo struct{ db *gorm.DB }

func NewFechaProduccionRepository(db *gorm.DB) FechaProduccionRepository { return &fechaRepo{db: db} }

func (r *fechaRepo) Create(ctx context.Context, f *model.FechaProduccion) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *fechaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.FechaProduccion, error) {
	var f model.FechaProduccion
	err := r.db.WithContext(ctx).First(&f, id).Error
	return &f, err
}

func (r *fechaRepo) List(ctx context.Context) ([]model.FechaProduccion, error) {
	var fechas []model.FechaProduccion
	err := r.db.WithContext(ctx).Order("fecha_horneado DESC").Find(&fechas).Error
	return fechas, err
}

func (r *fechaRepo) ListAbiertas(ctx context.Context) ([]model.FechaProduccion, error) {
	var fechas []model.FechaProduccion
	err := r.db.WithContext(ctx).
		Where("abierta = true").
		Order("fecha_horneado ASC").
		Find(&fechas).Error
	return fechas, err
}

func (r *fechaRepo) Update(ctx context.Context, f *model.FechaProduccion) error {
	return r.db.WithContext(ctx).Save(f).Error
}

func (r *fechaRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.FechaProduccion{}, id).Error
}

func (r *fechaRepo) CountPedidos(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Pedido{}).Where("fecha_produccion_id = ?", id).Count(&n).Error
	return n, err
}
