package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"serviciotecnico/internal/dto"
	"serviciotecnico/internal/handler"
	"serviciotecnico/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

type nopTickets struct{ calls int }

func (s *nopTickets) Listar(context.Context) ([]dto.TicketResponse, error) {
	s.calls++
	return []dto.TicketResponse{}, nil
}
func (s *nopTickets) Crear(context.Context, dto.CrearTicketRequest) (dto.TicketResponse, error) {
	s.calls++
	return dto.TicketResponse{ID: 1}, nil
}
func (s *nopTickets) Actualizar(_ context.Context, id int64, _ dto.ActualizarTicketRequest) (dto.TicketResponse, error) {
	s.calls++
	return dto.TicketResponse{ID: id}, nil
}
func (s *nopTickets) Eliminar(context.Context, int64) error { s.calls++; return nil }

type nopEquipos struct{}

func (nopEquipos) Listar(context.Context) ([]string, error) { return []string{}, nil }
func (nopEquipos) Invalidar(context.Context)                {}

type nopPanel struct{}

func (nopPanel) Panel(context.Context) (dto.PanelResponse, error)        { return dto.PanelResponse{}, nil }
func (nopPanel) Revision(context.Context) (int64, error)                 { return 0, nil }
func (nopPanel) ExportarXLSX(context.Context) ([]byte, error)            { return []byte("PK"), nil }
func (nopPanel) OrdenServicioPDF(context.Context, int64) ([]byte, error) { return []byte("%PDF"), nil }

func engine(tickets *nopTickets, limit int) *gin.Engine {
	r := gin.New()
	Register(r, Handlers{
		Tickets: handler.NewTicketsHandler(tickets),
		Equipos: handler.NewEquiposHandler(nopEquipos{}),
		Panel:   handler.NewPanelHandler(nopPanel{}),
		Health:  func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) },

		CORSOrigins: []string{"https://panel.taller.com"},
	}, middleware.NewRateLimiter(limit, time.Minute))
	return r
}

func get(r http.Handler, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestRegister_Rutas(t *testing.T) {
	r := engine(&nopTickets{}, 100)

	casos := []struct {
		method, path string
		status       int
	}{
		{http.MethodGet, "/tickets", http.StatusOK},
		{http.MethodGet, "/tickets/export", http.StatusOK},
		{http.MethodGet, "/tickets/3/pdf", http.StatusOK},
		{http.MethodDelete, "/tickets/3", http.StatusOK},
		{http.MethodGet, "/equipment", http.StatusOK},
		{http.MethodGet, "/dashboard", http.StatusOK},
		{http.MethodGet, "/dashboard/revision", http.StatusOK},
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/nada", http.StatusNotFound},
	}
	for _, c := range casos {
		t.Run(c.method+" "+c.path, func(t *testing.T) {
			w := get(r, c.method, c.path)
			assert.Equal(t, c.status, w.Code)
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
		})
	}
}

func TestRegister_PUTConIDNoNumericoNoLlegaAlServicio(t *testing.T) {
	tickets := &nopTickets{}
	w := get(engine(tickets, 100), http.MethodPut, "/tickets/abc")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, tickets.calls)
}

func TestRegister_Metricas(t *testing.T) {
	r := engine(&nopTickets{}, 100)
	get(r, http.MethodGet, "/tickets")

	w := get(r, http.MethodGet, "/metrics")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `serviciotecnico_http_requests_total{method="GET",route="/tickets",status="200"}`)
}

func TestRegister_RateLimitNoAfectaHealth(t *testing.T) {
	r := engine(&nopTickets{}, 1)

	assert.Equal(t, http.StatusOK, get(r, http.MethodGet, "/tickets").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(r, http.MethodGet, "/tickets").Code)
	assert.Equal(t, http.StatusOK, get(r, http.MethodGet, "/health").Code)
}

func TestRegister_CORSUsaOrigenesConfigurados(t *testing.T) {
	r := engine(&nopTickets{}, 100)

	req := httptest.NewRequest(http.MethodOptions, "/tickets", nil)
	req.Header.Set("Origin", "https://panel.taller.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://panel.taller.com", w.Header().Get("Access-Control-Allow-Origin"))
}
