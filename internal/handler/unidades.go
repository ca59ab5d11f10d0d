package handler

import (
	"net/http"

	"github.com/cuevasfm/pan-backend/internal/apierror"
	"github.com/cuevasfm/pan-backend/internal/dto"
	"github.com/cuevasfm/pan-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UnidadesHandler struct{ svc service.UnidadService }

func NewUnidadesHandler(svc service.UnidadService) *UnidadesHandler {
	return &UnidadesHandler{svc: svc}
}

// Crear godoc
// @Summary      Alta de unidad de medida
// @Tags         unidades
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearUnidadRequest true "Unidad (tipo: masa | volumen | unidad)"
// @Success      201  {object} dto.UnidadResponse
// @Failure      400  {object} apierror.APIError
// @Router       /unidades [post]
func (h *UnidadesHandler) Crear(c *gin.Context) {
	var req dto.CrearUnidadRequest
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

func (h *UnidadesHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar unidades"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarPorTipo filters unidades by tipo (masa | volumen | unidad).
func (h *UnidadesHandler) ListarPorTipo(c *gin.Context) {
	resp, err := h.svc.ListarPorTipo(c.Request.Context(), c.Param("tipo"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UnidadesHandler) ObtenerPorID(c *gin.Context) {
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

// CrearConversion godoc
// @Summary      Registrar factor de conversion entre unidades
// @Description  El factor es direccional (origen → destino); la inversa se deriva automaticamente.
// @Tags         unidades
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearConversionRequest true "Conversion"
// @Success      201  {object} dto.ConversionResponse
// @Failure      422  {object} apierror.APIError "Unidades de distinto tipo"
// @Router       /unidades/conversiones [post]
func (h *UnidadesHandler) CrearConversion(c *gin.Context) {
	var req dto.CrearConversionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearConversion(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *UnidadesHandler) ListarConversiones(c *gin.Context) {
	resp, err := h.svc.ListarConversiones(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar conversiones"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
