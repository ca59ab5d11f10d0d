package repository

import (
	"context"
	"errors"

	"github.com/cuevasfm/pan-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrVersionDesactualizada is returned by UpdateConVersion when the row's
// version no longer matches the caller's copy (lost-update detection).
var ErrVersionDesactualizada = errors.New("version desactualizada")

type PedidoRepository interface {
	Create(ctx context.Context, p *model.Pedido) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Pedido, error)
	List(ctx context.Context) ([]model.Pedido, error)
	ListByCliente(ctx context.Context, clienteID uuid.UUID) ([]model.Pedido, error)
	// ListByFechaProduccion returns every pedido for the fecha; callers that
	// aggregate must filter out cancelled ones themselves.
	ListByFechaProduccion(ctx context.Context, fechaID uuid.UUID) ([]model.Pedido, error)
	// UpdateConVersion saves the pedido and its replaced detalle atomically,
	// guarded by the expected version. Version is incremented on success.
	UpdateConVersion(ctx context.Context, p *model.Pedido, expectedVersion int) error
	UpdateEstado(ctx context.Context, id uuid.UUID, estado string) error
}

type pedidoRepo struct{ db *gorm.DB }

func NewPedidoRepository(db *gorm.DB) PedidoRepository { return &pedidoRepo{db: db} }

func (r *pedidoRepo) Create(ctx context.Context, p *model.Pedido) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *pedidoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Pedido, error) {
	var p model.Pedido
	err := r.db.WithContext(ctx).
		Preload("Cliente").
		Preload("FechaProduccion").
		Preload("Detalle.Producto").
		First(&p, id).Error
	return &p, err
}

func (r *pedidoRepo) List(ctx context.Context) ([]model.Pedido, error) {
	var pedidos []model.Pedido
	err := r.db.WithContext(ctx).
		Preload("Cliente").
		Preload("FechaProduccion").
		Preload("Detalle.Producto").
		Order("created_at DESC").
		Find(&pedidos).Error
	return pedidos, err
}

func (r *pedidoRepo) ListByCliente(ctx context.Context, clienteID uuid.UUID) ([]model.Pedido, error) {
	var pedidos []model.Pedido
	err := r.db.WithContext(ctx).
		Preload("Cliente").
		Preload("FechaProduccion").
		Preload("Detalle.Producto").
		Where("cliente_id = ?", clienteID).
		Order("created_at DESC").
		Find(&pedidos).Error
	return pedidos, err
}

func (r *pedidoRepo) ListByFechaProduccion(ctx context.Context, fechaID uuid.UUID) ([]model.Pedido, error) {
	var pedidos []model.Pedido
	err := r.db.WithContext(ctx).
		Preload("Cliente").
		Preload("Detalle.Producto").
		Where("fecha_produccion_id = ?", fechaID).
		Order("created_at ASC").
		Find(&pedidos).Error
	return pedidos, err
}

func (r *pedidoRepo) UpdateConVersion(ctx context.Context, p *model.Pedido, expectedVersion int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Pedido{}).
			Where("id = ? AND version = ?", p.ID, expectedVersion).
			Updates(map[string]interface{}{
				"fecha_produccion_id": p.FechaProduccionID,
				"notas":               p.Notas,
				"total":               p.Total,
				"version":             expectedVersion + 1,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrVersionDesactualizada
		}

		if err := tx.Where("pedido_id = ?", p.ID).Delete(&model.PedidoDetalle{}).Error; err != nil {
			return err
		}
		for i := range p.Detalle {
			p.Detalle[i].ID = uuid.Nil
			p.Detalle[i].PedidoID = p.ID
		}
		return tx.Create(&p.Detalle).Error
	})
}

func (r *pedidoRepo) UpdateEstado(ctx context.Context, id uuid.UUID, estado string) error {
	return r.db.WithContext(ctx).Model(&model.Pedido{}).
		Where("id = ?", id).
		Update("estado", estado).Error
}
