package handler

import (
	"net/http"

	"github.com/cuevasfm/pan-backend/internal/apierror"
	"github.com/cuevasfm/pan-backend/internal/dto"
	"github.com/cuevasfm/pan-backend/internal/middleware"
	"github.com/cuevasfm/pan-backend/internal/model"
	"github.com/cuevasfm/pan-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PedidosHandler struct{ svc service.PedidoService }

func NewPedidosHandler(svc service.PedidoService) *PedidosHandler {
	return &PedidosHandler{svc: svc}
}

// Crear godoc
// @Summary      Crear pedido
// @Description  Crea un pedido en estado pendiente. Los precios del detalle quedan congelados al precio vigente del producto. La fecha de produccion debe estar abierta y dentro del plazo.
// @Tags         pedidos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearPedidoRequest true "Pedido"
// @Success      201  {object} dto.PedidoResponse
// @Failure      400  {object} apierror.APIError "Fecha cerrada o fuera de plazo"
// @Router       /pedidos [post]
func (h *PedidosHandler) Crear(c *gin.Context) {
	var req dto.CrearPedidoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	// Un cliente solo puede crear pedidos a su propio nombre
	claims := middleware.GetClaims(c)
	if claims.Rol == model.RolCliente && req.ClienteID != claims.UserID {
		c.JSON(http.StatusForbidden, apierror.New("Permisos insuficientes"))
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar returns all pedidos for admins, or the caller's own for clientes.
func (h *PedidosHandler) Listar(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims.Rol == model.RolCliente {
		clienteID, err := uuid.Parse(claims.UserID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, apierror.New("Token invalido"))
			return
		}
		resp, err := h.svc.ListarPorCliente(c.Request.Context(), clienteID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, apierror.New("Error al listar pedidos"))
			return
		}
		c.JSON(http.StatusOK, resp)
		return
	}
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar pedidos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PedidosHandler) ObtenerPorID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	// Un cliente solo puede ver sus propios pedidos
	claims := middleware.GetClaims(c)
	if claims.Rol == model.RolCliente && resp.ClienteID != claims.UserID {
		c.JSON(http.StatusForbidden, apierror.New("Permisos insuficientes"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PedidosHandler) ListarPorCliente(c *gin.Context) {
	clienteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.ListarPorCliente(c.Request.Context(), clienteID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar pedidos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PedidosHandler) ListarPorFechaProduccion(c *gin.Context) {
	fechaID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.ListarPorFechaProduccion(c.Request.Context(), fechaID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar pedidos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Actualizar godoc
// @Summary      Modificar pedido
// @Description  Reemplaza el detalle de un pedido no terminal. Los productos que permanecen conservan su precio congelado; los nuevos toman el precio vigente. Si se envia version, una version obsoleta se rechaza con 409.
// @Tags         pedidos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                     true "UUID del pedido"
// @Param        body body dto.ActualizarPedidoRequest true "Cambios"
// @Success      200  {object} dto.PedidoResponse
// @Failure      409  {object} apierror.APIError "Version obsoleta o pedido inmutable"
// @Router       /pedidos/{id} [put]
func (h *PedidosHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ActualizarPedidoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CambiarEstado godoc
// @Summary      Cambiar estado del pedido
// @Description  Transiciones validas: pendiente→confirmado→en_preparacion→entregado; cancelado desde cualquier estado no terminal. Al confirmar se notifica al cliente por email.
// @Tags         pedidos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                   true "UUID del pedido"
// @Param        body body dto.CambiarEstadoRequest true "Nuevo estado"
// @Success      200  {object} dto.PedidoResponse
// @Failure      409  {object} apierror.APIError "Transicion invalida"
// @Router       /pedidos/{id}/estado [patch]
func (h *PedidosHandler) CambiarEstado(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.CambiarEstadoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CambiarEstado(c.Request.Context(), id, req.Estado)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cancelar marks the pedido as cancelado; nothing is physically deleted.
func (h *PedidosHandler) Cancelar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.Cancelar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
