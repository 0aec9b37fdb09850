package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"serviciotecnico/internal/dto"
	"serviciotecnico/internal/handler"
	"serviciotecnico/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

// ── Stub services ─────────────────────────────────────────────────────────────

type stubTicketSvc struct {
	calls     int
	err       error
	creado    dto.CrearTicketRequest
	patch     dto.ActualizarTicketRequest
	patchID   int64
	eliminado int64
}

func (s *stubTicketSvc) Listar(context.Context) ([]dto.TicketResponse, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return []dto.TicketResponse{{ID: 2, NumeroTicket: "B"}, {ID: 1, NumeroTicket: "A"}}, nil
}

func (s *stubTicketSvc) Crear(_ context.Context, req dto.CrearTicketRequest) (dto.TicketResponse, error) {
	s.calls++
	s.creado = req
	if s.err != nil {
		return dto.TicketResponse{}, s.err
	}
	return dto.TicketResponse{ID: 1, NumeroTicket: req.NumeroTicket, CreatedAt: time.Now()}, nil
}

func (s *stubTicketSvc) Actualizar(_ context.Context, id int64, req dto.ActualizarTicketRequest) (dto.TicketResponse, error) {
	s.calls++
	s.patchID, s.patch = id, req
	if s.err != nil {
		return dto.TicketResponse{}, s.err
	}
	return dto.TicketResponse{ID: id}, nil
}

func (s *stubTicketSvc) Eliminar(_ context.Context, id int64) error {
	s.calls++
	s.eliminado = id
	return s.err
}

func ticketsRouter(svc service.TicketService) *gin.Engine {
	h := handler.NewTicketsHandler(svc)
	r := gin.New()
	r.GET("/tickets", h.Listar)
	r.POST("/tickets", h.Crear)
	r.PUT("/tickets/:id", h.Actualizar)
	r.DELETE("/tickets/:id", h.Eliminar)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestListar_Envoltorio(t *testing.T) {
	w := do(ticketsRouter(&stubTicketSvc{}), http.MethodGet, "/tickets", "")

	require.Equal(t, http.StatusOK, w.Code)
	var body dto.Respuesta[[]dto.TicketResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 2)
	assert.Equal(t, "B", body.Data[0].NumeroTicket)
}

func TestListar_ErrorGenerico(t *testing.T) {
	w := do(ticketsRouter(&stubTicketSvc{err: errors.New("dial tcp: refused")}), http.MethodGet, "/tickets", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Error al obtener tickets", errorBody(t, w))
}

func TestCrear_201(t *testing.T) {
	svc := &stubTicketSvc{}
	w := do(ticketsRouter(svc), http.MethodPost, "/tickets",
		`{"numero_ticket":"TCKT-001","equipo":"Printer-A","fecha_entrada":"2024-01-10","fecha_inicio_servicio":"2024-01-11","descripcion":"fix"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"numero_ticket":"TCKT-001"`)
	assert.Equal(t, "Printer-A", svc.creado.Equipo)
}

func TestCrear_JSONInvalido(t *testing.T) {
	svc := &stubTicketSvc{}
	w := do(ticketsRouter(svc), http.MethodPost, "/tickets", `{"numero_ticket":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "JSON inválido", errorBody(t, w))
	assert.Zero(t, svc.calls)
}

func TestCrear_CampoDemasiadoLargo(t *testing.T) {
	svc := &stubTicketSvc{}
	largo := strings.Repeat("x", 101)
	w := do(ticketsRouter(svc), http.MethodPost, "/tickets", `{"numero_ticket":"`+largo+`"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Campo demasiado largo: numero_ticket", errorBody(t, w))
	assert.Zero(t, svc.calls)
}

func TestCrear_MapeoDeErrores(t *testing.T) {
	casos := []struct {
		err     error
		status  int
		mensaje string
	}{
		{&service.ErrValidacion{Mensaje: "Campo requerido: equipo"}, http.StatusBadRequest, "Campo requerido: equipo"},
		{service.ErrNumeroDuplicado, http.StatusBadRequest, "El número de ticket ya existe"},
		{errors.New("tickets: deadlock"), http.StatusInternalServerError, "Error al crear ticket"},
	}
	for _, c := range casos {
		t.Run(c.mensaje, func(t *testing.T) {
			w := do(ticketsRouter(&stubTicketSvc{err: c.err}), http.MethodPost, "/tickets", `{}`)
			assert.Equal(t, c.status, w.Code)
			assert.Equal(t, c.mensaje, errorBody(t, w))
		})
	}
}

func TestActualizar_IDInvalidoNoTocaElStore(t *testing.T) {
	for _, id := range []string{"abc", "1.5", "-3", "0"} {
		t.Run(id, func(t *testing.T) {
			svc := &stubTicketSvc{}
			w := do(ticketsRouter(svc), http.MethodPut, "/tickets/"+id, `{"equipo":"X"}`)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "ID de ticket inválido", errorBody(t, w))
			assert.Zero(t, svc.calls)
		})
	}
}

func TestActualizar_Parcial(t *testing.T) {
	svc := &stubTicketSvc{}
	w := do(ticketsRouter(svc), http.MethodPut, "/tickets/7", `{"fecha_fin_servicio":null,"id":99}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(7), svc.patchID)
	assert.True(t, svc.patch.FechaFinServicio.Presente)
	assert.Nil(t, svc.patch.Equipo)
}

func TestActualizar_NoEncontrado(t *testing.T) {
	w := do(ticketsRouter(&stubTicketSvc{err: service.ErrTicketNoEncontrado}), http.MethodPut, "/tickets/5", `{}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Ticket no encontrado", errorBody(t, w))
}

func TestEliminar(t *testing.T) {
	svc := &stubTicketSvc{}
	w := do(ticketsRouter(svc), http.MethodDelete, "/tickets/3", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":"Ticket eliminado exitosamente"}`, w.Body.String())
	assert.Equal(t, int64(3), svc.eliminado)
}

func TestEliminar_IDNoPositivoEs400(t *testing.T) {
	for _, id := range []string{"0", "-1", "x"} {
		t.Run(id, func(t *testing.T) {
			svc := &stubTicketSvc{}
			w := do(ticketsRouter(svc), http.MethodDelete, "/tickets/"+id, "")

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "ID de ticket inválido", errorBody(t, w))
			assert.Zero(t, svc.calls)
		})
	}
}

func TestEliminar_999NoEncontrado(t *testing.T) {
	w := do(ticketsRouter(&stubTicketSvc{err: service.ErrTicketNoEncontrado}), http.MethodDelete, "/tickets/999", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Ticket no encontrado", errorBody(t, w))
}

func TestEliminar_ErrorGenerico(t *testing.T) {
	w := do(ticketsRouter(&stubTicketSvc{err: errors.New("boom")}), http.MethodDelete, "/tickets/1", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Error al eliminar el ticket", errorBody(t, w))
}
