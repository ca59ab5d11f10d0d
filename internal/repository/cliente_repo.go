package repository

import (
	"context"

	"github.com/cuevasfm/pan-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClienteRepository defines the data access contract for customers.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type ClienteRepository interface {
	Create(ctx context.Context, c *model.Cliente) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error)
	FindByTelefono(ctx context.Context, telefono string) (*model.Cliente, error)
	List(ctx context.Context) ([]model.Cliente, error)
	Search(ctx context.Context, query string) ([]model.Cliente, error)
	Update(ctx context.Context, c *model.Cliente) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountPedidos(ctx context.Context, id uuid.UUID) (int64, error)
}

type clienteRepo struct{ db *gorm.DB }

func NewClienteRepository(db *gorm.DB) ClienteRepository { return &clienteRepo{db: db} }

func (r *clienteRepo) Create(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *clienteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *clienteRepo) FindByTelefono(ctx context.Context, telefono string) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).Where("telefono = ?", telefono).First(&c).Error
	return &c, err
}

func (r *clienteRepo) List(ctx context.Context) ([]model.Cliente, error) {
	var clientes []model.Cliente
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&clientes).Error
	return clientes, err
}

func (r *clienteRepo) Search(ctx context.Context, query string) ([]model.Cliente, error) {
	var clientes []model.Cliente
	like := "%" + query + "%"
	err := r.db.WithContext(ctx).
		Where("nombre ILIKE ? OR telefono ILIKE ?", like, like).
		Order("nombre ASC").
		Find(&clientes).Error
	return clientes, err
}

func (r *clienteRepo) Update(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *clienteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Cliente{}, id).Error
}

func (r *clienteRepo) CountPedidos(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Pedido{}).Where("cliente_id = ?", id).Count(&n).Error
	return n, err
}
