package infra

// pdf.go: printable service order (orden de servicio) for one ticket,
// rendered on A5 with go-pdf/fpdf:
//   - Business name header
//   - Ticket number, equipment and status
//   - Dates block (entrada / inicio / fin)
//   - Description
//   - Cost table with bold total

import (
	"bytes"
	"fmt"

	"serviciotecnico/internal/estadisticas"
	"serviciotecnico/internal/model"

	"github.com/go-pdf/fpdf"
)

const formatoFechaPDF = "02/01/2006"

// GenerateOrdenServicioPDF renders the service order and returns the PDF bytes.
func GenerateOrdenServicioPDF(t *model.Ticket, nombreNegocio string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()
	// Core fonts are cp1252; Spanish text needs translating.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 20

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, tr(nombreNegocio), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, tr("Orden de Servicio"), "", 1, "C", false, 0, "")
	pdf.Ln(3)

	// ── Ticket info ───────────────────────────────────────────────────────────
	estado := "Pendiente"
	if t.Completado() {
		estado = "Completado"
	}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, tr("Ticket N° "+t.NumeroTicket), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, tr("Equipo: "+t.Equipo), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, tr("Estado: "+estado), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	// ── Dates ─────────────────────────────────────────────────────────────────
	labelW := contentW * 0.45
	pdf.CellFormat(labelW, 5, "Fecha de entrada:", "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW-labelW, 5, t.FechaEntrada.Format(formatoFechaPDF), "", 1, "L", false, 0, "")
	pdf.CellFormat(labelW, 5, "Inicio del servicio:", "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW-labelW, 5, t.FechaInicioServicio.Format(formatoFechaPDF), "", 1, "L", false, 0, "")
	fin := "-"
	if t.FechaFinServicio != nil {
		dias := estadisticas.DiasDeServicio(t.FechaInicioServicio, *t.FechaFinServicio)
		fin = fmt.Sprintf("%s (%d días)", t.FechaFinServicio.Format(formatoFechaPDF), dias)
	}
	pdf.CellFormat(labelW, 5, "Fin del servicio:", "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW-labelW, 5, tr(fin), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	// ── Description ───────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW, 5, tr("Descripción"), "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.MultiCell(contentW, 5, tr(t.Descripcion), "", "L", false)
	pdf.Ln(3)

	// ── Costs ─────────────────────────────────────────────────────────────────
	col1 := contentW * 0.65
	col2 := contentW - col1
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 5, "Concepto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Importe", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	filas := []struct {
		concepto string
		importe  string
	}{
		{"Repuestos", t.CostoRepuestos.StringFixed(2)},
		{"Mano de obra", t.CostoManoObra.StringFixed(2)},
		{"Costos externos estimados", t.CostosExternosEstimados.StringFixed(2)},
	}
	for _, f := range filas {
		pdf.CellFormat(col1, 5, f.concepto, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, "$"+f.importe, "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(col1, 6, "TOTAL:", "T", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "$"+t.CostoTotal().StringFixed(2), "T", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render: %w", err)
	}
	return buf.Bytes(), nil
}
