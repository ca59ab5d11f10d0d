package handler

import (
	"net/http"

	"github.com/cuevasfm/pan-backend/internal/apierror"
	"github.com/cuevasfm/pan-backend/internal/infra"
	"github.com/cuevasfm/pan-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReportesHandler struct {
	svc            service.ReporteService
	pdfStoragePath string
}

func NewReportesHandler(svc service.ReporteService, pdfStoragePath string) *ReportesHandler {
	return &ReportesHandler{svc: svc, pdfStoragePath: pdfStoragePath}
}

// Produccion godoc
// @Summary      Reporte de produccion
// @Description  Agrega los pedidos no cancelados de una fecha: totales, que hornear, lista de compras de insumos (explotando recetas con conversion de unidades) y roster de pedidos. Calculado en vivo, nunca cacheado.
// @Tags         reportes
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la fecha de produccion"
// @Success      200 {object} dto.ReporteProduccion
// @Failure      404 {object} apierror.APIError
// @Failure      422 {object} apierror.APIError "Datos inconsistentes o sin ruta de conversion"
// @Router       /reportes/produccion/{id} [get]
func (h *ReportesHandler) Produccion(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.ReporteProduccion(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ProduccionPDF renders the production report as a printable A4 PDF.
func (h *ReportesHandler) ProduccionPDF(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	reporte, err := h.svc.ReporteProduccion(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	path, err := infra.GenerateReporteProduccionPDF(reporte, h.pdfStoragePath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al generar PDF"))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="reporte_`+reporte.FechaHorneado+`.pdf"`)
	c.File(path)
}

// Pedido godoc
// @Summary      Reporte de pedido individual
// @Description  Detalle de un pedido con sus insumos necesarios y costo.
// @Tags         reportes
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID del pedido"
// @Success      200 {object} dto.ReportePedido
// @Failure      404 {object} apierror.APIError
// @Router       /reportes/pedido/{id} [get]
func (h *ReportesHandler) Pedido(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.ReportePedido(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
