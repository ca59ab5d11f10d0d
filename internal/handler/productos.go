package handler

import (
	"net/http"

	"github.com/cuevasfm/pan-backend/internal/apierror"
	"github.com/cuevasfm/pan-backend/internal/dto"
	"github.com/cuevasfm/pan-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProductosHandler struct{ svc service.ProductoService }

func NewProductosHandler(svc service.ProductoService) *ProductosHandler {
	return &ProductosHandler{svc: svc}
}

// Crear godoc
// @Summary      Alta de producto
// @Tags         productos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearProductoRequest true "Producto"
// @Success      201  {object} dto.ProductoResponse
// @Failure      400  {object} apierror.APIError
// @Router       /productos [post]
func (h *ProductosHandler) Crear(c *gin.Context) {
	var req dto.CrearProductoRequest
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

func (h *ProductosHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar productos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductosHandler) ObtenerPorID(c *gin.Context) {
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

// Actualizar modifies name, price and description. A price change never
// touches existing pedidos: their lines keep the snapshotted price.
func (h *ProductosHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ActualizarProductoRequest
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

// Eliminar rejects the delete when the producto appears in pedidos (409).
func (h *ProductosHandler) Eliminar(c *gin.Context) {
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

// ── Receta subresource ───────────────────────────────────────────────────────

// AgregarRecetaItem godoc
// @Summary      Agregar ingrediente a la receta
// @Description  La unidad del ingrediente debe ser convertible a la unidad base del insumo.
// @Tags         productos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string               true "UUID del producto"
// @Param        body body dto.RecetaItemRequest true "Ingrediente"
// @Success      201  {object} dto.ProductoResponse
// @Failure      422  {object} apierror.APIError "Unidades incompatibles"
// @Router       /productos/{id}/receta [post]
func (h *ProductosHandler) AgregarRecetaItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.RecetaItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AgregarRecetaItem(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ProductosHandler) ActualizarRecetaItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	itemID, err := uuid.Parse(c.Param("recetaId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID de receta invalido"))
		return
	}
	var req dto.RecetaItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarRecetaItem(c.Request.Context(), id, itemID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductosHandler) EliminarRecetaItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	itemID, err := uuid.Parse(c.Param("recetaId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID de receta invalido"))
		return
	}
	if err := h.svc.EliminarRecetaItem(c.Request.Context(), id, itemID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
