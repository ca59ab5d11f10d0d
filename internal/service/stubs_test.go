package service

// stubs_test.go
// In-memory repository stubs shared by the service unit tests.
// Each stub mirrors the GORM implementation's contract, including
// gorm.ErrRecordNotFound on missing rows.

import (
	"context"
	"time"

	"github.com/cuevasfm/pan-backend/internal/model"
	"github.com/cuevasfm/pan-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── UnidadRepository stub ────────────────────────────────────────────────────

type stubUnidadRepo struct {
	unidades     map[uuid.UUID]*model.Unidad
	conversiones []model.UnidadConversion
}

func newStubUnidadRepo() *stubUnidadRepo {
	return &stubUnidadRepo{unidades: make(map[uuid.UUID]*model.Unidad)}
}

func (r *stubUnidadRepo) agregar(nombre, simbolo, tipo string) *model.Unidad {
	u := &model.Unidad{ID: uuid.New(), Nombre: nombre, Simbolo: simbolo, Tipo: tipo}
	r.unidades[u.ID] = u
	return u
}

func (r *stubUnidadRepo) conectar(origen, destino *model.Unidad, factor string) {
	r.conversiones = append(r.conversiones, model.UnidadConversion{
		ID:              uuid.New(),
		UnidadOrigenID:  origen.ID,
		UnidadDestinoID: destino.ID,
		Factor:          decimal.RequireFromString(factor),
	})
}

func (r *stubUnidadRepo) Create(_ context.Context, u *model.Unidad) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	cloned := *u
	r.unidades[u.ID] = &cloned
	return nil
}

func (r *stubUnidadRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Unidad, error) {
	u, ok := r.unidades[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUnidadRepo) List(_ context.Context) ([]model.Unidad, error) {
	out := make([]model.Unidad, 0, len(r.unidades))
	for _, u := range r.unidades {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUnidadRepo) ListByTipo(_ context.Context, tipo string) ([]model.Unidad, error) {
	var out []model.Unidad
	for _, u := range r.unidades {
		if u.Tipo == tipo {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUnidadRepo) CreateConversion(_ context.Context, c *model.UnidadConversion) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.conversiones = append(r.conversiones, *c)
	return nil
}

func (r *stubUnidadRepo) ListConversiones(_ context.Context) ([]model.UnidadConversion, error) {
	return append([]model.UnidadConversion(nil), r.conversiones...), nil
}

var _ repository.UnidadRepository = (*stubUnidadRepo)(nil)

// ── ClienteRepository stub ───────────────────────────────────────────────────

type stubClienteRepo struct {
	clientes   map[uuid.UUID]*model.Cliente
	numPedidos int64
}

func newStubClienteRepo() *stubClienteRepo {
	return &stubClienteRepo{clientes: make(map[uuid.UUID]*model.Cliente)}
}

func (r *stubClienteRepo) agregar(nombre, telefono string, email *string) *model.Cliente {
	c := &model.Cliente{ID: uuid.New(), Nombre: nombre, Telefono: telefono, Email: email, Rol: model.RolCliente}
	r.clientes[c.ID] = c
	return c
}

func (r *stubClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	cloned := *c
	r.clientes[c.ID] = &cloned
	return nil
}

func (r *stubClienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubClienteRepo) FindByTelefono(_ context.Context, telefono string) (*model.Cliente, error) {
	for _, c := range r.clientes {
		if c.Telefono == telefono {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubClienteRepo) List(_ context.Context) ([]model.Cliente, error) {
	out := make([]model.Cliente, 0, len(r.clientes))
	for _, c := range r.clientes {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubClienteRepo) Search(_ context.Context, _ string) ([]model.Cliente, error) {
	return r.List(context.Background())
}

func (r *stubClienteRepo) Update(_ context.Context, c *model.Cliente) error {
	cloned := *c
	r.clientes[c.ID] = &cloned
	return nil
}

func (r *stubClienteRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.clientes, id)
	return nil
}

func (r *stubClienteRepo) CountPedidos(_ context.Context, _ uuid.UUID) (int64, error) {
	return r.numPedidos, nil
}

var _ repository.ClienteRepository = (*stubClienteRepo)(nil)

// ── FechaProduccionRepository stub ───────────────────────────────────────────

type stubFechaRepo struct {
	fechas     map[uuid.UUID]*model.FechaProduccion
	numPedidos int64
}

func newStubFechaRepo() *stubFechaRepo {
	return &stubFechaRepo{fechas: make(map[uuid.UUID]*model.FechaProduccion)}
}

func (r *stubFechaRepo) agregar(horneado, limite time.Time, abierta bool) *model.FechaProduccion {
	f := &model.FechaProduccion{ID: uuid.New(), FechaHorneado: horneado, FechaLimite: limite, Abierta: abierta}
	r.fechas[f.ID] = f
	return f
}

func (r *stubFechaRepo) Create(_ context.Context, f *model.FechaProduccion) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	cloned := *f
	r.fechas[f.ID] = &cloned
	return nil
}

func (r *stubFechaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.FechaProduccion, error) {
	f, ok := r.fechas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return f, nil
}

func (r *stubFechaRepo) List(_ context.Context) ([]model.FechaProduccion, error) {
	out := make([]model.FechaProduccion, 0, len(r.fechas))
	for _, f := range r.fechas {
		out = append(out, *f)
	}
	return out, nil
}

func (r *stubFechaRepo) ListAbiertas(_ context.Context) ([]model.FechaProduccion, error) {
	var out []model.FechaProduccion
	for _, f := range r.fechas {
		if f.Abierta {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (r *stubFechaRepo) Update(_ context.Context, f *model.FechaProduccion) error {
	cloned := *f
	r.fechas[f.ID] = &cloned
	return nil
}

func (r *stubFechaRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.fechas, id)
	return nil
}

func (r *stubFechaRepo) CountPedidos(_ context.Context, _ uuid.UUID) (int64, error) {
	return r.numPedidos, nil
}

var _ repository.FechaProduccionRepository = (*stubFechaRepo)(nil)

// ── ProductoRepository stub ──────────────────────────────────────────────────

type stubProductoRepo struct {
	productos map[uuid.UUID]*model.Producto
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{productos: make(map[uuid.UUID]*model.Producto)}
}

func (r *stubProductoRepo) agregar(nombre, precio string, receta ...model.RecetaItem) *model.Producto {
	p := &model.Producto{
		ID:     uuid.New(),
		Nombre: nombre,
		Precio: decimal.RequireFromString(precio),
		Receta: receta,
	}
	r.productos[p.ID] = p
	return p
}

func (r *stubProductoRepo) Create(_ context.Context, p *model.Producto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	cloned := *p
	r.productos[p.ID] = &cloned
	return nil
}

func (r *stubProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductoRepo) List(_ context.Context) ([]model.Producto, error) {
	out := make([]model.Producto, 0, len(r.productos))
	for _, p := range r.productos {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubProductoRepo) Update(_ context.Context, p *model.Producto) error {
	cloned := *p
	r.productos[p.ID] = &cloned
	return nil
}

func (r *stubProductoRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.productos, id)
	return nil
}

func (r *stubProductoRepo) CountPedidoRefs(_ context.Context, _ uuid.UUID) (int64, error) {
	return 0, nil
}

func (r *stubProductoRepo) CreateRecetaItem(_ context.Context, item *model.RecetaItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	p, ok := r.productos[item.ProductoID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Receta = append(p.Receta, *item)
	return nil
}

func (r *stubProductoRepo) FindRecetaItem(_ context.Context, productoID, itemID uuid.UUID) (*model.RecetaItem, error) {
	p, ok := r.productos[productoID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	for i := range p.Receta {
		if p.Receta[i].ID == itemID {
			return &p.Receta[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductoRepo) UpdateRecetaItem(_ context.Context, item *model.RecetaItem) error {
	p, ok := r.productos[item.ProductoID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for i := range p.Receta {
		if p.Receta[i].ID == item.ID {
			p.Receta[i] = *item
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubProductoRepo) DeleteRecetaItem(_ context.Context, productoID, itemID uuid.UUID) error {
	p, ok := r.productos[productoID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for i := range p.Receta {
		if p.Receta[i].ID == itemID {
			p.Receta = append(p.Receta[:i], p.Receta[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

var _ repository.ProductoRepository = (*stubProductoRepo)(nil)

// ── PedidoRepository stub ────────────────────────────────────────────────────

type stubPedidoRepo struct {
	pedidos map[uuid.UUID]*model.Pedido
}

func newStubPedidoRepo() *stubPedidoRepo {
	return &stubPedidoRepo{pedidos: make(map[uuid.UUID]*model.Pedido)}
}

func (r *stubPedidoRepo) Create(_ context.Context, p *model.Pedido) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now()
	for i := range p.Detalle {
		if p.Detalle[i].ID == uuid.Nil {
			p.Detalle[i].ID = uuid.New()
		}
		p.Detalle[i].PedidoID = p.ID
	}
	cloned := *p
	r.pedidos[p.ID] = &cloned
	return nil
}

func (r *stubPedidoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Pedido, error) {
	p, ok := r.pedidos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cloned := *p
	cloned.Detalle = append([]model.PedidoDetalle(nil), p.Detalle...)
	return &cloned, nil
}

func (r *stubPedidoRepo) List(_ context.Context) ([]model.Pedido, error) {
	out := make([]model.Pedido, 0, len(r.pedidos))
	for _, p := range r.pedidos {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubPedidoRepo) ListByCliente(_ context.Context, clienteID uuid.UUID) ([]model.Pedido, error) {
	var out []model.Pedido
	for _, p := range r.pedidos {
		if p.ClienteID == clienteID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubPedidoRepo) ListByFechaProduccion(_ context.Context, fechaID uuid.UUID) ([]model.Pedido, error) {
	var out []model.Pedido
	for _, p := range r.pedidos {
		if p.FechaProduccionID == fechaID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubPedidoRepo) UpdateConVersion(_ context.Context, p *model.Pedido, expectedVersion int) error {
	actual, ok := r.pedidos[p.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if actual.Version != expectedVersion {
		return repository.ErrVersionDesactualizada
	}
	cloned := *p
	cloned.Version = expectedVersion + 1
	for i := range cloned.Detalle {
		if cloned.Detalle[i].ID == uuid.Nil {
			cloned.Detalle[i].ID = uuid.New()
		}
		cloned.Detalle[i].PedidoID = p.ID
	}
	r.pedidos[p.ID] = &cloned
	return nil
}

func (r *stubPedidoRepo) UpdateEstado(_ context.Context, id uuid.UUID, estado string) error {
	p, ok := r.pedidos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Estado = estado
	return nil
}

var _ repository.PedidoRepository = (*stubPedidoRepo)(nil)
