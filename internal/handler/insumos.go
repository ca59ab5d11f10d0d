package handler

import (
	"net/http"

	"github.com/cuevasfm/pan-backend/internal/apierror"
	"github.com/cuevasfm/pan-backend/internal/dto"
	"github.com/cuevasfm/pan-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InsumosHandler struct{ svc service.InsumoService }

func NewInsumosHandler(svc service.InsumoService) *InsumosHandler {
	return &InsumosHandler{svc: svc}
}

// Crear godoc
// @Summary      Alta de insumo
// @Tags         insumos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearInsumoRequest true "Insumo con su unidad base y precio"
// @Success      201  {object} dto.InsumoResponse
// @Failure      400  {object} apierror.APIError
// @Router       /insumos [post]
func (h *InsumosHandler) Crear(c *gin.Context) {
	var req dto.CrearInsumoRequest
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

func (h *InsumosHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar insumos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InsumosHandler) ObtenerPorID(c *gin.Context) {
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

func (h *InsumosHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ActualizarInsumoRequest
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

// AjustarStock applies a signed delta to stock_actual.
func (h *InsumosHandler) AjustarStock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.AjustarStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AjustarStock(c.Request.Context(), id, req.Delta)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Eliminar rejects the delete when the insumo appears in a receta (409).
func (h *InsumosHandler) Eliminar(c *gin.Context) {
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
