package infra

// pdf.go — Printable production report using go-pdf/fpdf.
// Generates an A4 sheet with:
//   - Header with the baking date
//   - Totals block (pedidos, ventas, costo, margen)
//   - Per-product production summary
//   - Shopping list of insumos with quantities and cost
//   - Order roster with customer contact info
//
// The output file is saved to storagePath/reporte_{fechaID}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cuevasfm/pan-backend/internal/dto"

	"github.com/go-pdf/fpdf"
)

// GenerateReporteProduccionPDF renders a production report to disk and
// returns the absolute path of the generated file.
func GenerateReporteProduccionPDF(reporte *dto.ReporteProduccion, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("reporte_%s.pdf", reporte.FechaProduccionID)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "Reporte de Produccion", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, "Horneado: "+reporte.FechaHorneado, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Totales ──────────────────────────────────────────────────────────────
	t := reporte.Totales
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 6, "Totales", "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	half := contentW / 2
	pdf.CellFormat(half, 5, fmt.Sprintf("Pedidos: %d", t.TotalPedidos), "", 0, "L", false, 0, "")
	pdf.CellFormat(half, 5, "Ventas: $"+t.TotalVentas.StringFixed(2), "", 1, "L", false, 0, "")
	pdf.CellFormat(half, 5, fmt.Sprintf("Productos: %d", t.TotalProductos), "", 0, "L", false, 0, "")
	pdf.CellFormat(half, 5, "Costo insumos: $"+t.CostoInsumos.StringFixed(2), "", 1, "L", false, 0, "")
	pdf.CellFormat(half, 5, "Margen: $"+t.MargenGanancia.StringFixed(2), "", 0, "L", false, 0, "")
	pdf.CellFormat(half, 5, "Margen %: "+t.PorcentajeMargen.StringFixed(2)+"%", "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// ── Resumen de productos ─────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 6, "Que hornear", "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW*0.7, 5, "Producto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.3, 5, "Cantidad", "B", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, p := range reporte.ResumenProductos {
		pdf.CellFormat(contentW*0.7, 5, p.ProductoNombre, "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.3, 5, fmt.Sprintf("%d", p.CantidadTotal), "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	// ── Insumos necesarios ───────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 6, "Insumos necesarios", "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW*0.45, 5, "Insumo", "B", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.30, 5, "Cantidad", "B", 0, "R", false, 0, "")
	pdf.CellFormat(contentW*0.25, 5, "Costo", "B", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, ins := range reporte.InsumosNecesarios {
		pdf.CellFormat(contentW*0.45, 5, ins.InsumoNombre, "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.30, 5, ins.Cantidad.String()+" "+ins.UnidadSimbolo, "", 0, "R", false, 0, "")
		pdf.CellFormat(contentW*0.25, 5, "$"+ins.CostoTotal.StringFixed(2), "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	// ── Pedidos ──────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 6, "Pedidos", "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW*0.35, 5, "Cliente", "B", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.25, 5, "Telefono", "B", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.25, 5, "Domicilio", "B", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.15, 5, "Total", "B", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, ped := range reporte.Pedidos {
		domicilio := ""
		if ped.Domicilio != nil {
			domicilio = *ped.Domicilio
		}
		if len(domicilio) > 24 {
			domicilio = domicilio[:23] + "…"
		}
		pdf.CellFormat(contentW*0.35, 5, ped.ClienteNombre, "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.25, 5, ped.ClienteTelefono, "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.25, 5, domicilio, "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.15, 5, "$"+ped.Total.StringFixed(2), "", 1, "R", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
