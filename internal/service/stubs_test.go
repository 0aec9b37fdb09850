package service_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"serviciotecnico/internal/model"
	"serviciotecnico/internal/repository"

	"github.com/shopspring/decimal"
)

// ── In-memory TicketRepository stub ──────────────────────────────────────────

type stubTicketRepo struct {
	mu      sync.Mutex
	tickets map[int64]*model.Ticket
	nextID  int64
	calls   int
	failAll error

	// trasLeerEquipos runs after ListarEquipos took its snapshot.
	trasLeerEquipos func()
}

func newStubTicketRepo() *stubTicketRepo {
	return &stubTicketRepo{tickets: make(map[int64]*model.Ticket), nextID: 1}
}

var _ repository.TicketRepository = (*stubTicketRepo)(nil)

func (r *stubTicketRepo) Listar(_ context.Context) ([]model.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.failAll != nil {
		return nil, r.failAll
	}
	list := make([]model.Ticket, 0, len(r.tickets))
	for _, t := range r.tickets {
		list = append(list, *t)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID > list[j].ID
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

func (r *stubTicketRepo) ObtenerPorID(_ context.Context, id int64) (*model.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	t, ok := r.tickets[id]
	if !ok {
		return nil, repository.ErrNoEncontrado
	}
	cp := *t
	return &cp, nil
}

func (r *stubTicketRepo) Crear(_ context.Context, t *model.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.failAll != nil {
		return r.failAll
	}
	for _, existing := range r.tickets {
		if existing.NumeroTicket == t.NumeroTicket {
			return repository.ErrNumeroDuplicado
		}
	}
	t.ID = r.nextID
	r.nextID++
	redondearCostos(t)
	now := time.Now()
	t.CreatedAt, t.UpdatedAt = now, now
	cp := *t
	r.tickets[t.ID] = &cp
	return nil
}

func (r *stubTicketRepo) Actualizar(_ context.Context, id int64, campos map[string]interface{}) (*model.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	t, ok := r.tickets[id]
	if !ok {
		return nil, repository.ErrNoEncontrado
	}
	if n, ok := campos["numero_ticket"].(string); ok {
		for _, existing := range r.tickets {
			if existing.ID != id && existing.NumeroTicket == n {
				return nil, repository.ErrNumeroDuplicado
			}
		}
	}
	cp := *t
	for k, v := range campos {
		switch k {
		case "numero_ticket":
			cp.NumeroTicket = v.(string)
		case "equipo":
			cp.Equipo = v.(string)
		case "descripcion":
			cp.Descripcion = v.(string)
		case "fecha_entrada":
			cp.FechaEntrada = v.(time.Time)
		case "fecha_inicio_servicio":
			cp.FechaInicioServicio = v.(time.Time)
		case "fecha_fin_servicio":
			if v == nil {
				cp.FechaFinServicio = nil
			} else {
				f := v.(time.Time)
				cp.FechaFinServicio = &f
			}
		case "costo_repuestos":
			cp.CostoRepuestos = v.(decimal.Decimal)
		case "costo_mano_obra":
			cp.CostoManoObra = v.(decimal.Decimal)
		case "costos_externos_estimados":
			cp.CostosExternosEstimados = v.(decimal.Decimal)
		}
	}
	cp.UpdatedAt = time.Now()
	redondearCostos(&cp)
	r.tickets[id] = &cp
	out := cp
	return &out, nil
}

func (r *stubTicketRepo) Eliminar(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if _, ok := r.tickets[id]; !ok {
		return repository.ErrNoEncontrado
	}
	delete(r.tickets, id)
	return nil
}

func (r *stubTicketRepo) ListarEquipos(_ context.Context) ([]string, error) {
	r.mu.Lock()
	r.calls++
	set := map[string]bool{}
	for _, t := range r.tickets {
		set[t.Equipo] = true
	}
	despues := r.trasLeerEquipos
	r.mu.Unlock()

	out := make([]string, 0, len(set))
	for e := range set {
		out = append(out, e)
	}
	sort.Strings(out)
	// The snapshot is already taken: whatever despues does is not in out.
	if despues != nil {
		despues()
	}
	return out, nil
}

// redondearCostos mimics the NUMERIC(12,2) columns.
func redondearCostos(t *model.Ticket) {
	t.CostoRepuestos = t.CostoRepuestos.Round(2)
	t.CostoManoObra = t.CostoManoObra.Round(2)
	t.CostosExternosEstimados = t.CostosExternosEstimados.Round(2)
}

func (r *stubTicketRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tickets)
}

// ── Notification stubs ────────────────────────────────────────────────────────

type stubRevisiones struct {
	rev int64
	err error
}

func (s *stubRevisiones) Actual(context.Context) (int64, error) { return s.rev, s.err }
func (s *stubRevisiones) Incrementar(context.Context)           { s.rev++ }

type stubEquipos struct{ invalidaciones int }

func (s *stubEquipos) Listar(context.Context) ([]string, error) { return nil, nil }
func (s *stubEquipos) Invalidar(context.Context)                { s.invalidaciones++ }
