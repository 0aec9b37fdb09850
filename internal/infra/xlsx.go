package infra

import (
	"bytes"
	"fmt"

	"serviciotecnico/internal/estadisticas"
	"serviciotecnico/internal/model"

	"github.com/xuri/excelize/v2"
)

const (
	hojaTickets = "Tickets"
	hojaResumen = "Resumen"

	formatoFechaXLSX = "2006-01-02"
)

var encabezadosTickets = []interface{}{
	"ID", "Número", "Equipo", "Fecha entrada", "Inicio servicio", "Fin servicio",
	"Estado", "Descripción", "Repuestos", "Mano de obra", "Costos externos", "Total",
}

// GenerateTicketsXLSX writes every ticket on one sheet and the dashboard
// summary on a second one.
func GenerateTicketsXLSX(tickets []model.Ticket, nombreNegocio string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", hojaTickets); err != nil {
		return nil, fmt.Errorf("xlsx: rename sheet: %w", err)
	}

	if err := f.SetSheetRow(hojaTickets, "A1", &encabezadosTickets); err != nil {
		return nil, fmt.Errorf("xlsx: header: %w", err)
	}
	for i, t := range tickets {
		celda, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		fila := filaTicket(t)
		if err := f.SetSheetRow(hojaTickets, celda, &fila); err != nil {
			return nil, fmt.Errorf("xlsx: row %d: %w", i+2, err)
		}
	}

	if _, err := f.NewSheet(hojaResumen); err != nil {
		return nil, fmt.Errorf("xlsx: summary sheet: %w", err)
	}
	if err := escribirResumen(f, estadisticas.Calcular(tickets), nombreNegocio); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("xlsx: write: %w", err)
	}
	return buf.Bytes(), nil
}

func filaTicket(t model.Ticket) []interface{} {
	fin, estado := "", "Pendiente"
	if t.FechaFinServicio != nil {
		fin = t.FechaFinServicio.Format(formatoFechaXLSX)
		estado = "Completado"
	}
	return []interface{}{
		t.ID,
		t.NumeroTicket,
		t.Equipo,
		t.FechaEntrada.Format(formatoFechaXLSX),
		t.FechaInicioServicio.Format(formatoFechaXLSX),
		fin,
		estado,
		t.Descripcion,
		t.CostoRepuestos.InexactFloat64(),
		t.CostoManoObra.InexactFloat64(),
		t.CostosExternosEstimados.InexactFloat64(),
		t.CostoTotal().InexactFloat64(),
	}
}

func escribirResumen(f *excelize.File, p estadisticas.Panel, nombreNegocio string) error {
	filas := [][]interface{}{
		{nombreNegocio},
		{"Total de tickets", p.Resumen.TotalTickets},
		{"Completados", p.Resumen.Completados},
		{"Pendientes", p.Resumen.Pendientes},
		{"Costo total", p.Resumen.CostoTotal.InexactFloat64()},
		{},
		{"Mes", "Tickets"},
	}
	for _, m := range p.TicketsPorMes {
		filas = append(filas, []interface{}{m.Mes, m.Tickets})
	}
	filas = append(filas, []interface{}{}, []interface{}{"Categoría", "Total"})
	for _, c := range p.DesgloseCostos {
		filas = append(filas, []interface{}{c.Nombre, c.Valor.InexactFloat64()})
	}

	for i := range filas {
		if len(filas[i]) == 0 {
			continue
		}
		celda, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(hojaResumen, celda, &filas[i]); err != nil {
			return fmt.Errorf("xlsx: summary row %d: %w", i+1, err)
		}
	}
	return nil
}
