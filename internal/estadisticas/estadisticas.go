// Package estadisticas computes the dashboard aggregates over a ticket list.
// Every function is pure: it reads the slice it is given and recomputes from scratch.
package estadisticas

import (
	"math"
	"sort"
	"time"

	"serviciotecnico/internal/model"

	"github.com/shopspring/decimal"
)

// MaxDuraciones caps the service-duration series.
const MaxDuraciones = 10

const horasPorDia = 24

// PuntoMensual is the number of tickets that entered during one month.
type PuntoMensual struct {
	Mes     string // YYYY-MM
	Tickets int
}

// CategoriaCosto is the accumulated spend of one cost category.
type CategoriaCosto struct {
	Nombre string
	Valor  decimal.Decimal
	Color  string
}

// DuracionServicio is the whole-day span of one completed ticket.
type DuracionServicio struct {
	Ticket   string
	Duracion int
}

// Resumen holds the headline counters of the dashboard.
type Resumen struct {
	TotalTickets int
	Completados  int
	Pendientes   int
	CostoTotal   decimal.Decimal
}

// Panel bundles every aggregate the dashboard renders.
type Panel struct {
	Resumen            Resumen
	TicketsPorMes      []PuntoMensual
	DesgloseCostos     []CategoriaCosto
	DuracionesServicio []DuracionServicio
}

// Calcular derives the whole dashboard from tickets.
func Calcular(tickets []model.Ticket) Panel {
	return Panel{
		Resumen:            CalcularResumen(tickets),
		TicketsPorMes:      TicketsPorMes(tickets),
		DesgloseCostos:     DesgloseCostos(tickets),
		DuracionesServicio: DuracionesServicio(tickets),
	}
}

// TicketsPorMes groups tickets by the UTC year and month of FechaEntrada,
// ascending by month key.
func TicketsPorMes(tickets []model.Ticket) []PuntoMensual {
	conteo := make(map[string]int)
	for _, t := range tickets {
		conteo[t.FechaEntrada.UTC().Format("2006-01")]++
	}

	puntos := make([]PuntoMensual, 0, len(conteo))
	for mes, n := range conteo {
		puntos = append(puntos, PuntoMensual{Mes: mes, Tickets: n})
	}
	sort.Slice(puntos, func(i, j int) bool { return puntos[i].Mes < puntos[j].Mes })
	return puntos
}

// DesgloseCostos sums each cost category independently. Categories whose
// total is not strictly positive are omitted.
func DesgloseCostos(tickets []model.Ticket) []CategoriaCosto {
	var repuestos, manoObra, externos decimal.Decimal
	for _, t := range tickets {
		repuestos = repuestos.Add(t.CostoRepuestos)
		manoObra = manoObra.Add(t.CostoManoObra)
		externos = externos.Add(t.CostosExternosEstimados)
	}

	categorias := []CategoriaCosto{
		{Nombre: "Repuestos", Valor: repuestos, Color: "#8884d8"},
		{Nombre: "Mano de Obra", Valor: manoObra, Color: "#82ca9d"},
		{Nombre: "Costos Externos", Valor: externos, Color: "#ffc658"},
	}
	out := categorias[:0]
	for _, c := range categorias {
		if c.Valor.IsPositive() {
			out = append(out, c)
		}
	}
	return out
}

// DuracionesServicio returns the first MaxDuraciones completed tickets, in
// list order, with their duration in whole days.
func DuracionesServicio(tickets []model.Ticket) []DuracionServicio {
	out := make([]DuracionServicio, 0, MaxDuraciones)
	for _, t := range tickets {
		if len(out) == MaxDuraciones {
			break
		}
		if t.FechaFinServicio == nil {
			continue
		}
		out = append(out, DuracionServicio{
			Ticket:   t.NumeroTicket,
			Duracion: DiasDeServicio(t.FechaInicioServicio, *t.FechaFinServicio),
		})
	}
	return out
}

// DiasDeServicio is ceil((fin - inicio) in days), never negative. An end
// date before the start is a data-entry error and counts as zero days.
func DiasDeServicio(inicio, fin time.Time) int {
	dias := math.Ceil(fin.Sub(inicio).Hours() / horasPorDia)
	if dias < 0 {
		return 0
	}
	return int(dias)
}

// CalcularResumen counts completed and pending tickets and totals every cost.
func CalcularResumen(tickets []model.Ticket) Resumen {
	r := Resumen{TotalTickets: len(tickets)}
	for _, t := range tickets {
		if t.Completado() {
			r.Completados++
		}
		r.CostoTotal = r.CostoTotal.Add(t.CostoTotal())
	}
	r.Pendientes = r.TotalTickets - r.Completados
	return r
}
