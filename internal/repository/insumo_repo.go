package repository

import (
	"context"

	"github.com/cuevasfm/pan-backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type InsumoRepository interface {
	Create(ctx context.Context, i *model.Insumo) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Insumo, error)
	List(ctx context.Context) ([]model.Insumo, error)
	Update(ctx context.Context, i *model.Insumo) error
	Delete(ctx context.Context, id uuid.UUID) error
	AjustarStock(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error
	CountRecetaRefs(ctx context.Context, id uuid.UUID) (int64, error)
}

type insumoRepo struct{ db *gorm.DB }

func NewInsumoRepository(db *gorm.DB) InsumoRepository { return &insumoRepo{db: db} }

func (r *insumoRepo) Create(ctx context.Context, i *model.Insumo) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *insumoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Insumo, error) {
	var i model.Insumo
	err := r.db.WithContext(ctx).Preload("Unidad").First(&i, id).Error
	return &i, err
}

func (r *insumoRepo) List(ctx context.Context) ([]model.Insumo, error) {
	var insumos []model.Insumo
	err := r.db.WithContext(ctx).Preload("Unidad").Order("nombre ASC").Find(&insumos).Error
	return insumos, err
}

func (r *insumoRepo) Update(ctx context.Context, i *model.Insumo) error {
	return r.db.WithContext(ctx).Save(i).Error
}

func (r *insumoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Insumo{}, id).Error
}

func (r *insumoRepo) AjustarStock(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error {
	return r.db.WithContext(ctx).Model(&model.Insumo{}).
		Where("id = ?", id).
		Update("stock_actual", gorm.Expr("stock_actual + ?", delta)).Error
}

func (r *insumoRepo) CountRecetaRefs(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.RecetaItem{}).Where("insumo_id = ?", id).Count(&n).Error
	return n, err
}
