package repository

import (
	"context"

	"github.com/cuevasfm/pan-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UnidadRepository gives access to units and the conversion table.
type UnidadRepository interface {
	Create(ctx context.Context, u *model.Unidad) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Unidad, error)
	List(ctx context.Context) ([]model.Unidad, error)
	ListByTipo(ctx context.Context, tipo string) ([]model.Unidad, error)

	CreateConversion(ctx context.Context, c *model.UnidadConversion) error
	ListConversiones(ctx context.Context) ([]model.UnidadConversion, error)
}

type unidadRepo struct{ db *gorm.DB }

func NewUnidadRepository(db *gorm.DB) UnidadRepository { return &unidadRepo{db: db} }

func (r *unidadRepo) Create(ctx context.Context, u *model.Unidad) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *unidadRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Unidad, error) {
	var u model.Unidad
	err := r.db.WithContext(ctx).First(&u, id).Error
	return &u, err
}

func (r *unidadRepo) List(ctx context.Context) ([]model.Unidad, error) {
	var unidades []model.Unidad
	err := r.db.WithContext(ctx).Order("tipo ASC, nombre ASC").Find(&unidades).Error
	return unidades, err
}

func (r *unidadRepo) ListByTipo(ctx context.Context, tipo string) ([]model.Unidad, error) {
	var unidades []model.Unidad
	err := r.db.WithContext(ctx).Where("tipo = ?", tipo).Order("nombre ASC").Find(&unidades).Error
	return unidades, err
}

func (r *unidadRepo) CreateConversion(ctx context.Context, c *model.UnidadConversion) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *unidadRepo) ListConversiones(ctx context.Context) ([]model.UnidadConversion, error) {
	var conversiones []model.UnidadConversion
	err := r.db.WithContext(ctx).
		Preload("UnidadOrigen").
		Preload("UnidadDestino").
		Find(&conversiones).Error
	return conversiones, err
}
