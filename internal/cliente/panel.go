package cliente

import (
	"context"
	"sync"

	"serviciotecnico/internal/dto"
	"serviciotecnico/internal/estadisticas"
	"serviciotecnico/internal/model"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Fuente is what Panel reads from. *Cliente implements it.
type Fuente interface {
	ListarTickets(ctx context.Context) ([]dto.TicketResponse, error)
	Equipos(ctx context.Context) ([]string, error)
}

// Panel holds the single source-of-truth ticket list of a presentation
// layer. The list is never edited locally: every mutation goes through the
// API and is followed by a re-fetch.
//
// Overlapping refreshes are ordered by issue: a response is applied only if
// no refresh issued after it has been applied already.
type Panel struct {
	fuente Fuente

	mu         sync.Mutex
	emitidos   uint64
	aplicado   uint64
	disparador uint64
	tickets    []dto.TicketResponse
	err        error
}

func NuevoPanel(f Fuente) *Panel {
	return &Panel{fuente: f}
}

// Refrescar fetches the list. A response that lost the race against a newer
// refresh is discarded and reported as success.
func (p *Panel) Refrescar(ctx context.Context) error {
	p.mu.Lock()
	p.emitidos++
	seq := p.emitidos
	p.mu.Unlock()

	tickets, err := p.fuente.ListarTickets(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	if seq < p.aplicado {
		log.Debug().Uint64("seq", seq).Uint64("aplicado", p.aplicado).Msg("refresco obsoleto descartado")
		return nil
	}
	p.aplicado = seq
	if err != nil {
		p.err = err
		return err
	}
	p.tickets, p.err = tickets, nil
	return nil
}

// Mutar runs a mutation against the API. On success the refresh counter is
// bumped and the list re-fetched; a failed mutation leaves the state alone.
func (p *Panel) Mutar(ctx context.Context, mutacion func(ctx context.Context) error) error {
	if err := mutacion(ctx); err != nil {
		return err
	}
	p.mu.Lock()
	p.disparador++
	p.mu.Unlock()
	return p.Refrescar(ctx)
}

// Disparador is the refresh counter: it grows by one after each successful mutation.
func (p *Panel) Disparador() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.disparador
}

// Tickets returns a copy of the last applied list.
func (p *Panel) Tickets() []dto.TicketResponse {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]dto.TicketResponse(nil), p.tickets...)
}

// Err is the error of the last applied refresh, nil after a success.
func (p *Panel) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Estadisticas computes the dashboard locally. ok is false until a refresh
// has succeeded and after any refresh that failed.
func (p *Panel) Estadisticas() (panel estadisticas.Panel, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.aplicado == 0 || p.err != nil {
		return estadisticas.Panel{}, false
	}
	modelos := make([]model.Ticket, 0, len(p.tickets))
	for _, t := range p.tickets {
		modelos = append(modelos, aModelo(t))
	}
	return estadisticas.Calcular(modelos), true
}

// Equipos lists known equipment names. Failures are logged and yield an empty list.
func (p *Panel) Equipos(ctx context.Context) []string {
	equipos, err := p.fuente.Equipos(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("no se pudo cargar la lista de equipos")
		return []string{}
	}
	if equipos == nil {
		return []string{}
	}
	return equipos
}

func aModelo(t dto.TicketResponse) model.Ticket {
	return model.Ticket{
		ID:                      t.ID,
		NumeroTicket:            t.NumeroTicket,
		Equipo:                  t.Equipo,
		FechaEntrada:            t.FechaEntrada,
		FechaInicioServicio:     t.FechaInicioServicio,
		FechaFinServicio:        t.FechaFinServicio,
		Descripcion:             t.Descripcion,
		CostoRepuestos:          decimal.NewFromFloat(t.CostoRepuestos),
		CostoManoObra:           decimal.NewFromFloat(t.CostoManoObra),
		CostosExternosEstimados: decimal.NewFromFloat(t.CostosExternosEstimados),
		CreatedAt:               t.CreatedAt,
		UpdatedAt:               t.UpdatedAt,
	}
}
