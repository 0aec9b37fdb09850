package service

import (
	"context"
	"strings"

	"serviciotecnico/internal/dto"
	"serviciotecnico/internal/model"
	"serviciotecnico/internal/repository"
)

// TicketService defines the business operations for service tickets.
type TicketService interface {
	Listar(ctx context.Context) ([]dto.TicketResponse, error)
	Crear(ctx context.Context, req dto.CrearTicketRequest) (dto.TicketResponse, error)
	Actualizar(ctx context.Context, id int64, req dto.ActualizarTicketRequest) (dto.TicketResponse, error)
	Eliminar(ctx context.Context, id int64) error
}

type ticketService struct {
	repo       repository.TicketRepository
	equipos    EquipoService
	revisiones RevisionService
}

func NewTicketService(repo repository.TicketRepository, equipos EquipoService, revisiones RevisionService) TicketService {
	return &ticketService{repo: repo, equipos: equipos, revisiones: revisiones}
}

// mapTicket converts a model to a DTO response.
func mapTicket(t model.Ticket) dto.TicketResponse {
	return dto.TicketResponse{
		ID:                      t.ID,
		NumeroTicket:            t.NumeroTicket,
		Equipo:                  t.Equipo,
		FechaEntrada:            t.FechaEntrada,
		FechaInicioServicio:     t.FechaInicioServicio,
		FechaFinServicio:        t.FechaFinServicio,
		Descripcion:             t.Descripcion,
		CostoRepuestos:          t.CostoRepuestos.InexactFloat64(),
		CostoManoObra:           t.CostoManoObra.InexactFloat64(),
		CostosExternosEstimados: t.CostosExternosEstimados.InexactFloat64(),
		CreatedAt:               t.CreatedAt,
		UpdatedAt:               t.UpdatedAt,
	}
}

func (s *ticketService) Listar(ctx context.Context) ([]dto.TicketResponse, error) {
	list, err := s.repo.Listar(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.TicketResponse, 0, len(list))
	for _, t := range list {
		result = append(result, mapTicket(t))
	}
	return result, nil
}

func (s *ticketService) Crear(ctx context.Context, req dto.CrearTicketRequest) (dto.TicketResponse, error) {
	t, err := nuevoTicket(req)
	if err != nil {
		return dto.TicketResponse{}, err
	}
	err = s.repo.Crear(ctx, t)
	registrarMutacion("crear", err)
	if err != nil {
		return dto.TicketResponse{}, traducirError(err)
	}
	s.notificarCambio(ctx)
	return mapTicket(*t), nil
}

func (s *ticketService) Actualizar(ctx context.Context, id int64, req dto.ActualizarTicketRequest) (dto.TicketResponse, error) {
	campos, err := camposActualizacion(req)
	if err != nil {
		return dto.TicketResponse{}, err
	}
	t, err := s.repo.Actualizar(ctx, id, campos)
	registrarMutacion("actualizar", err)
	if err != nil {
		return dto.TicketResponse{}, traducirError(err)
	}
	s.notificarCambio(ctx)
	return mapTicket(*t), nil
}

func (s *ticketService) Eliminar(ctx context.Context, id int64) error {
	err := s.repo.Eliminar(ctx, id)
	registrarMutacion("eliminar", err)
	if err != nil {
		return traducirError(err)
	}
	s.notificarCambio(ctx)
	return nil
}

// notificarCambio bumps the list revision and drops the equipment cache.
func (s *ticketService) notificarCambio(ctx context.Context) {
	s.revisiones.Incrementar(ctx)
	s.equipos.Invalidar(ctx)
}

// nuevoTicket validates required fields in a fixed order and coerces the rest.
func nuevoTicket(req dto.CrearTicketRequest) (*model.Ticket, error) {
	requeridos := []struct{ campo, valor string }{
		{"numero_ticket", req.NumeroTicket},
		{"equipo", req.Equipo},
		{"fecha_entrada", req.FechaEntrada},
		{"fecha_inicio_servicio", req.FechaInicioServicio},
		{"descripcion", req.Descripcion},
	}
	for _, r := range requeridos {
		if strings.TrimSpace(r.valor) == "" {
			return nil, campoRequerido(r.campo)
		}
	}

	t := &model.Ticket{
		NumeroTicket: strings.TrimSpace(req.NumeroTicket),
		Equipo:       strings.TrimSpace(req.Equipo),
		Descripcion:  req.Descripcion,
	}

	var err error
	if t.FechaEntrada, err = parseFecha("fecha_entrada", req.FechaEntrada); err != nil {
		return nil, err
	}
	if t.FechaInicioServicio, err = parseFecha("fecha_inicio_servicio", req.FechaInicioServicio); err != nil {
		return nil, err
	}
	if req.FechaFinServicio != nil && strings.TrimSpace(*req.FechaFinServicio) != "" {
		fin, err := parseFecha("fecha_fin_servicio", *req.FechaFinServicio)
		if err != nil {
			return nil, err
		}
		t.FechaFinServicio = &fin
	}

	if t.CostoRepuestos, err = monto("costo_repuestos", req.CostoRepuestos); err != nil {
		return nil, err
	}
	if t.CostoManoObra, err = monto("costo_mano_obra", req.CostoManoObra); err != nil {
		return nil, err
	}
	if t.CostosExternosEstimados, err = monto("costos_externos_estimados", req.CostosExternosEstimados); err != nil {
		return nil, err
	}
	return t, nil
}

// camposActualizacion turns a patch into the column → value map the
// repository writes. Each present field is validated on its own.
func camposActualizacion(req dto.ActualizarTicketRequest) (map[string]interface{}, error) {
	campos := make(map[string]interface{})

	textos := []struct {
		campo string
		valor *string
		trim  bool
	}{
		{"numero_ticket", req.NumeroTicket, true},
		{"equipo", req.Equipo, true},
		{"descripcion", req.Descripcion, false},
	}
	for _, txt := range textos {
		if txt.valor == nil {
			continue
		}
		v := *txt.valor
		if strings.TrimSpace(v) == "" {
			return nil, campoRequerido(txt.campo)
		}
		if txt.trim {
			v = strings.TrimSpace(v)
		}
		campos[txt.campo] = v
	}

	fechas := []struct {
		campo string
		valor *string
	}{
		{"fecha_entrada", req.FechaEntrada},
		{"fecha_inicio_servicio", req.FechaInicioServicio},
	}
	for _, f := range fechas {
		if f.valor == nil {
			continue
		}
		if strings.TrimSpace(*f.valor) == "" {
			return nil, campoRequerido(f.campo)
		}
		t, err := parseFecha(f.campo, *f.valor)
		if err != nil {
			return nil, err
		}
		campos[f.campo] = t
	}

	if req.FechaFinServicio.Presente {
		if strings.TrimSpace(req.FechaFinServicio.Valor) == "" {
			campos["fecha_fin_servicio"] = nil
		} else {
			fin, err := parseFecha("fecha_fin_servicio", req.FechaFinServicio.Valor)
			if err != nil {
				return nil, err
			}
			campos["fecha_fin_servicio"] = fin
		}
	}

	costos := []struct {
		campo string
		valor *dto.Monto
	}{
		{"costo_repuestos", req.CostoRepuestos},
		{"costo_mano_obra", req.CostoManoObra},
		{"costos_externos_estimados", req.CostosExternosEstimados},
	}
	for _, c := range costos {
		if c.valor == nil {
			continue
		}
		v, err := monto(c.campo, c.valor)
		if err != nil {
			return nil, err
		}
		campos[c.campo] = v
	}

	return campos, nil
}
