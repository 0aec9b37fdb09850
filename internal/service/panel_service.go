package service

import (
	"context"

	"serviciotecnico/internal/dto"
	"serviciotecnico/internal/estadisticas"
	"serviciotecnico/internal/infra"
	"serviciotecnico/internal/repository"

	"github.com/rs/zerolog/log"
)

// PanelService builds the dashboard and the derived documents (XLSX, PDF).
type PanelService interface {
	Panel(ctx context.Context) (dto.PanelResponse, error)
	Revision(ctx context.Context) (int64, error)
	ExportarXLSX(ctx context.Context) ([]byte, error)
	OrdenServicioPDF(ctx context.Context, id int64) ([]byte, error)
}

type panelService struct {
	repo          repository.TicketRepository
	revisiones    RevisionService
	nombreNegocio string
}

func NewPanelService(repo repository.TicketRepository, revisiones RevisionService, nombreNegocio string) PanelService {
	return &panelService{repo: repo, revisiones: revisiones, nombreNegocio: nombreNegocio}
}

// Panel aggregates the full ticket list. A failed fetch returns before any
// aggregate is computed.
func (s *panelService) Panel(ctx context.Context) (dto.PanelResponse, error) {
	tickets, err := s.repo.Listar(ctx)
	if err != nil {
		return dto.PanelResponse{}, err
	}

	resp := mapPanel(estadisticas.Calcular(tickets))
	if rev, err := s.revisiones.Actual(ctx); err != nil {
		log.Warn().Err(err).Msg("revisión de tickets no disponible")
	} else {
		resp.Revision = rev
	}
	return resp, nil
}

func (s *panelService) Revision(ctx context.Context) (int64, error) {
	return s.revisiones.Actual(ctx)
}

func (s *panelService) ExportarXLSX(ctx context.Context) ([]byte, error) {
	tickets, err := s.repo.Listar(ctx)
	if err != nil {
		return nil, err
	}
	return infra.GenerateTicketsXLSX(tickets, s.nombreNegocio)
}

func (s *panelService) OrdenServicioPDF(ctx context.Context, id int64) ([]byte, error) {
	t, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, traducirError(err)
	}
	return infra.GenerateOrdenServicioPDF(t, s.nombreNegocio)
}

func mapPanel(p estadisticas.Panel) dto.PanelResponse {
	resp := dto.PanelResponse{
		Resumen: dto.ResumenResponse{
			TotalTickets: p.Resumen.TotalTickets,
			Completados:  p.Resumen.Completados,
			Pendientes:   p.Resumen.Pendientes,
			CostoTotal:   p.Resumen.CostoTotal.InexactFloat64(),
		},
		TicketsPorMes:      make([]dto.PuntoMensualResponse, 0, len(p.TicketsPorMes)),
		DesgloseCostos:     make([]dto.CategoriaCostoResponse, 0, len(p.DesgloseCostos)),
		DuracionesServicio: make([]dto.DuracionServicioResponse, 0, len(p.DuracionesServicio)),
	}
	for _, m := range p.TicketsPorMes {
		resp.TicketsPorMes = append(resp.TicketsPorMes, dto.PuntoMensualResponse{Mes: m.Mes, Tickets: m.Tickets})
	}
	for _, c := range p.DesgloseCostos {
		resp.DesgloseCostos = append(resp.DesgloseCostos, dto.CategoriaCostoResponse{
			Nombre: c.Nombre,
			Valor:  c.Valor.InexactFloat64(),
			Color:  c.Color,
		})
	}
	for _, d := range p.DuracionesServicio {
		resp.DuracionesServicio = append(resp.DuracionesServicio, dto.DuracionServicioResponse{Ticket: d.Ticket, Duracion: d.Duracion})
	}
	return resp
}
