package service

import (
	"context"
	"testing"
	"time"

	"github.com/cuevasfm/pan-backend/internal/dto"
	"github.com/cuevasfm/pan-backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pedidoFixture struct {
	svc       PedidoService
	pedidos   *stubPedidoRepo
	clientes  *stubClienteRepo
	fechas    *stubFechaRepo
	productos *stubProductoRepo
	cliente   *model.Cliente
	fecha     *model.FechaProduccion
	pan       *model.Producto
}

func newPedidoFixture() *pedidoFixture {
	f := &pedidoFixture{
		pedidos:   newStubPedidoRepo(),
		clientes:  newStubClienteRepo(),
		fechas:    newStubFechaRepo(),
		productos: newStubProductoRepo(),
	}
	f.svc = NewPedidoService(f.pedidos, f.clientes, f.fechas, f.productos, nil, nil)

	f.cliente = f.clientes.agregar("Maria Lopez", "5551234567", nil)
	manana := time.Now().UTC().Add(48 * time.Hour)
	f.fecha = f.fechas.agregar(manana.Add(24*time.Hour), manana, true)
	f.pan = f.productos.agregar("Pan de masa madre", "120.50")
	return f
}

func (f *pedidoFixture) crearPedido(t *testing.T, cantidad int) *dto.PedidoResponse {
	t.Helper()
	resp, err := f.svc.Crear(context.Background(), dto.CrearPedidoRequest{
		ClienteID:         f.cliente.ID.String(),
		FechaProduccionID: f.fecha.ID.String(),
		Detalle: []dto.DetalleItemRequest{
			{ProductoID: f.pan.ID.String(), Cantidad: cantidad},
		},
	})
	require.NoError(t, err)
	return resp
}

func TestCrearPedidoSnapshotPrecio(t *testing.T) {
	f := newPedidoFixture()

	resp := f.crearPedido(t, 3)

	assert.Equal(t, model.EstadoPendiente, resp.Estado)
	assert.Equal(t, 1, resp.Version)
	require.Len(t, resp.Detalle, 1)
	assert.True(t, resp.Detalle[0].PrecioUnitario.Equal(decimal.RequireFromString("120.50")))
	assert.True(t, resp.Detalle[0].Subtotal.Equal(decimal.RequireFromString("361.50")))
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("361.50")))

	// Subir el precio del producto no toca el pedido ya tomado.
	f.pan.Precio = decimal.RequireFromString("999")
	releido, err := f.svc.ObtenerPorID(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)
	assert.True(t, releido.Total.Equal(decimal.RequireFromString("361.50")))
}

func TestCrearPedidoFechaCerrada(t *testing.T) {
	f := newPedidoFixture()
	f.fecha.Abierta = false

	_, err := f.svc.Crear(context.Background(), dto.CrearPedidoRequest{
		ClienteID:         f.cliente.ID.String(),
		FechaProduccionID: f.fecha.ID.String(),
		Detalle:           []dto.DetalleItemRequest{{ProductoID: f.pan.ID.String(), Cantidad: 1}},
	})
	assert.ErrorIs(t, err, ErrFechaCerrada)
}

func TestCrearPedidoFechaLimiteVencida(t *testing.T) {
	f := newPedidoFixture()
	ayer := time.Now().UTC().Add(-48 * time.Hour)
	vencida := f.fechas.agregar(ayer.Add(24*time.Hour), ayer, true)

	_, err := f.svc.Crear(context.Background(), dto.CrearPedidoRequest{
		ClienteID:         f.cliente.ID.String(),
		FechaProduccionID: vencida.ID.String(),
		Detalle:           []dto.DetalleItemRequest{{ProductoID: f.pan.ID.String(), Cantidad: 1}},
	})
	assert.ErrorIs(t, err, ErrFechaCerrada)
}

func TestCrearPedidoProductoInexistente(t *testing.T) {
	f := newPedidoFixture()

	_, err := f.svc.Crear(context.Background(), dto.CrearPedidoRequest{
		ClienteID:         f.cliente.ID.String(),
		FechaProduccionID: f.fecha.ID.String(),
		Detalle:           []dto.DetalleItemRequest{{ProductoID: uuid.NewString(), Cantidad: 1}},
	})
	assert.ErrorIs(t, err, ErrNoEncontrado)
}

func TestCambiarEstadoTransiciones(t *testing.T) {
	casos := []struct {
		desde string
		hasta string
		ok    bool
	}{
		{model.EstadoPendiente, model.EstadoConfirmado, true},
		{model.EstadoConfirmado, model.EstadoEnPreparacion, true},
		{model.EstadoEnPreparacion, model.EstadoEntregado, true},
		{model.EstadoPendiente, model.EstadoCancelado, true},
		{model.EstadoConfirmado, model.EstadoCancelado, true},
		{model.EstadoEnPreparacion, model.EstadoCancelado, true},
		{model.EstadoPendiente, model.EstadoEnPreparacion, false},
		{model.EstadoPendiente, model.EstadoEntregado, false},
		{model.EstadoConfirmado, model.EstadoPendiente, false},
		{model.EstadoEntregado, model.EstadoCancelado, false},
		{model.EstadoEntregado, model.EstadoPendiente, false},
	}

	for _, c := range casos {
		t.Run(c.desde+"_a_"+c.hasta, func(t *testing.T) {
			f := newPedidoFixture()
			resp := f.crearPedido(t, 1)
			id := uuid.MustParse(resp.ID)
			f.pedidos.pedidos[id].Estado = c.desde

			_, err := f.svc.CambiarEstado(context.Background(), id, c.hasta)
			if c.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrTransicionEstado)
			}
		})
	}
}

func TestCancelarDosVeces(t *testing.T) {
	f := newPedidoFixture()
	resp := f.crearPedido(t, 1)
	id := uuid.MustParse(resp.ID)

	require.NoError(t, f.svc.Cancelar(context.Background(), id))
	err := f.svc.Cancelar(context.Background(), id)
	assert.ErrorIs(t, err, ErrPedidoYaCancelado)
}

func TestCancelarEntregado(t *testing.T) {
	f := newPedidoFixture()
	resp := f.crearPedido(t, 1)
	id := uuid.MustParse(resp.ID)
	f.pedidos.pedidos[id].Estado = model.EstadoEntregado

	err := f.svc.Cancelar(context.Background(), id)
	assert.ErrorIs(t, err, ErrTransicionEstado)
}

func TestActualizarConservaPrecioHistorico(t *testing.T) {
	f := newPedidoFixture()
	resp := f.crearPedido(t, 2)
	id := uuid.MustParse(resp.ID)

	// El precio del pan sube y aparece un producto nuevo en el pedido.
	f.pan.Precio = decimal.RequireFromString("200")
	rol := f.productos.agregar("Rol de canela", "45")

	actualizado, err := f.svc.Actualizar(context.Background(), id, dto.ActualizarPedidoRequest{
		FechaProduccionID: f.fecha.ID.String(),
		Detalle: []dto.DetalleItemRequest{
			{ProductoID: f.pan.ID.String(), Cantidad: 2},
			{ProductoID: rol.ID.String(), Cantidad: 1},
		},
	})
	require.NoError(t, err)
	require.Len(t, actualizado.Detalle, 2)

	porProducto := make(map[string]dto.DetalleItemResponse, 2)
	for _, d := range actualizado.Detalle {
		porProducto[d.ProductoID] = d
	}
	// El pan conserva el snapshot original; el rol toma el precio vigente.
	assert.True(t, porProducto[f.pan.ID.String()].PrecioUnitario.Equal(decimal.RequireFromString("120.50")))
	assert.True(t, porProducto[rol.ID.String()].PrecioUnitario.Equal(decimal.RequireFromString("45")))
	assert.True(t, actualizado.Total.Equal(decimal.RequireFromString("286")))
	assert.Equal(t, 2, actualizado.Version)
}

func TestActualizarVersionDesactualizada(t *testing.T) {
	f := newPedidoFixture()
	resp := f.crearPedido(t, 1)
	id := uuid.MustParse(resp.ID)

	// Primera edición: versión 1 → 2.
	_, err := f.svc.Actualizar(context.Background(), id, dto.ActualizarPedidoRequest{
		FechaProduccionID: f.fecha.ID.String(),
		Detalle:           []dto.DetalleItemRequest{{ProductoID: f.pan.ID.String(), Cantidad: 5}},
	})
	require.NoError(t, err)

	// Un segundo editor que todavía ve la versión 1 debe ser rechazado.
	vieja := 1
	_, err = f.svc.Actualizar(context.Background(), id, dto.ActualizarPedidoRequest{
		FechaProduccionID: f.fecha.ID.String(),
		Detalle:           []dto.DetalleItemRequest{{ProductoID: f.pan.ID.String(), Cantidad: 1}},
		Version:           &vieja,
	})
	assert.ErrorIs(t, err, ErrConflictoVersion)
}

func TestActualizarPedidoTerminal(t *testing.T) {
	f := newPedidoFixture()
	resp := f.crearPedido(t, 1)
	id := uuid.MustParse(resp.ID)

	for _, estado := range []string{model.EstadoEntregado, model.EstadoCancelado} {
		f.pedidos.pedidos[id].Estado = estado
		_, err := f.svc.Actualizar(context.Background(), id, dto.ActualizarPedidoRequest{
			FechaProduccionID: f.fecha.ID.String(),
			Detalle:           []dto.DetalleItemRequest{{ProductoID: f.pan.ID.String(), Cantidad: 1}},
		})
		assert.ErrorIs(t, err, ErrPedidoInmutable, "estado %s", estado)
	}
}

func TestListarPorCliente(t *testing.T) {
	f := newPedidoFixture()
	otro := f.clientes.agregar("Pedro Gomez", "5559876543", nil)
	f.crearPedido(t, 1)
	f.crearPedido(t, 2)

	_, err := f.svc.Crear(context.Background(), dto.CrearPedidoRequest{
		ClienteID:         otro.ID.String(),
		FechaProduccionID: f.fecha.ID.String(),
		Detalle:           []dto.DetalleItemRequest{{ProductoID: f.pan.ID.String(), Cantidad: 1}},
	})
	require.NoError(t, err)

	propios, err := f.svc.ListarPorCliente(context.Background(), f.cliente.ID)
	require.NoError(t, err)
	assert.Len(t, propios, 2)

	ajenos, err := f.svc.ListarPorCliente(context.Background(), otro.ID)
	require.NoError(t, err)
	assert.Len(t, ajenos, 1)
}
