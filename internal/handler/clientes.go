package handler

import (
	"net/http"

	"github.com/cuevasfm/pan-backend/internal/apierror"
	"github.com/cuevasfm/pan-backend/internal/dto"
	"github.com/cuevasfm/pan-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ClientesHandler struct{ svc service.ClienteService }

func NewClientesHandler(svc service.ClienteService) *ClientesHandler {
	return &ClientesHandler{svc: svc}
}

// Crear godoc
// @Summary      Alta de cliente
// @Tags         clientes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearClienteRequest true "Datos del cliente"
// @Success      201  {object} dto.ClienteResponse
// @Failure      400  {object} apierror.APIError
// @Router       /clientes [post]
func (h *ClientesHandler) Crear(c *gin.Context) {
	var req dto.CrearClienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ClientesHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar clientes"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Buscar godoc
// @Summary      Buscar clientes
// @Description  Busca por nombre o telefono (substring, case-insensitive).
// @Tags         clientes
// @Produce      json
// @Security     BearerAuth
// @Param        q query string true "Texto a buscar"
// @Success      200 {array} dto.ClienteResponse
// @Router       /clientes/search [get]
func (h *ClientesHandler) Buscar(c *gin.Context) {
	q := c.Query("q")
	resp, err := h.svc.Buscar(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al buscar clientes"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ClientesHandler) ObtenerPorID(c *gin.Context) {
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
	c.JSON(http.StatusOK, resp)
}

func (h *ClientesHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ActualizarClienteRequest
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

// Eliminar rejects the delete when the cliente has pedidos (409).
func (h *ClientesHandler) Eliminar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
