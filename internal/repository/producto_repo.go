package repository

import (
	"context"

	"github.com/cuevasfm/pan-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductoRepository covers productos and their receta subresource.
type ProductoRepository interface {
	Create(ctx context.Context, p *model.Producto) error
	// FindByID returns the producto with its receta (insumo + unidad preloaded).
	FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error)
	List(ctx context.Context) ([]model.Producto, error)
	Update(ctx context.Context, p *model.Producto) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountPedidoRefs(ctx context.Context, id uuid.UUID) (int64, error)

	CreateRecetaItem(ctx context.Context, item *model.RecetaItem) error
	FindRecetaItem(ctx context.Context, productoID, itemID uuid.UUID) (*model.RecetaItem, error)
	UpdateRecetaItem(ctx context.Context, item *model.RecetaItem) error
	DeleteRecetaItem(ctx context.Context, productoID, itemID uuid.UUID) error
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) Create(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).
		Preload("Receta.Insumo.Unidad").
		Preload("Receta.Unidad").
		First(&p, id).Error
	return &p, err
}

func (r *productoRepo) List(ctx context.Context) ([]model.Producto, error) {
	var productos []model.Producto
	err := r.db.WithContext(ctx).
		Preload("Receta.Insumo.Unidad").
		Preload("Receta.Unidad").
		Order("nombre ASC").
		Find(&productos).Error
	return productos, err
}

func (r *productoRepo) Update(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("producto_id = ?", id).Delete(&model.RecetaItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Producto{}, id).Error
	})
}

func (r *productoRepo) CountPedidoRefs(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.PedidoDetalle{}).Where("producto_id = ?", id).Count(&n).Error
	return n, err
}

func (r *productoRepo) CreateRecetaItem(ctx context.Context, item *model.RecetaItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *productoRepo) FindRecetaItem(ctx context.Context, productoID, itemID uuid.UUID) (*model.RecetaItem, error) {
	var item model.RecetaItem
	err := r.db.WithContext(ctx).
		Where("id = ? AND producto_id = ?", itemID, productoID).
		First(&item).Error
	return &item, err
}

func (r *productoRepo) UpdateRecetaItem(ctx context.Context, item *model.RecetaItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *productoRepo) DeleteRecetaItem(ctx context.Context, productoID, itemID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND producto_id = ?", itemID, productoID).
		Delete(&model.RecetaItem{}).Error
}
