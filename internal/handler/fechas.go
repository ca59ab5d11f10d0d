package handler

import (
	"net/http"

	"github.com/cuevasfm/pan-backend/internal/apierror"
	"github.com/cuevasfm/pan-backend/internal/dto"
	"github.com/cuevasfm/pan-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type FechasHandler struct{ svc service.FechaProduccionService }

func NewFechasHandler(svc service.FechaProduccionService) *FechasHandler {
	return &FechasHandler{svc: svc}
}

// Crear godoc
// @Summary      Programar fecha de produccion
// @Description  fecha_limite debe ser anterior o igual a fecha_horneado.
// @Tags         fechas-produccion
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearFechaRequest true "Fecha (YYYY-MM-DD)"
// @Success      201  {object} dto.FechaResponse
// @Failure      400  {object} apierror.APIError
// @Router       /fechas-produccion [post]
func (h *FechasHandler) Crear(c *gin.Context) {
	var req dto.CrearFechaRequest
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

func (h *FechasHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar fechas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarAbiertas returns only fechas still accepting pedidos.
func (h *FechasHandler) ListarAbiertas(c *gin.Context) {
	resp, err := h.svc.ListarAbiertas(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar fechas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FechasHandler) ObtenerPorID(c *gin.Context) {
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

func (h *FechasHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ActualizarFechaRequest
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

// ToggleAbierta flips the open/closed flag that gates new pedidos.
func (h *FechasHandler) ToggleAbierta(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.ToggleAbierta(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Eliminar rejects the delete when the fecha has pedidos (409).
func (h *FechasHandler) Eliminar(c *gin.Context) {
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
