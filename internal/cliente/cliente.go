// Package cliente is the Go client of the tickets API and the state holder
// used by presentation layers (the ticketctl CLI, dashboards).
package cliente

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"serviciotecnico/internal/dto"
)

// ErrConexion wraps every transport failure: the request never got an HTTP answer.
var ErrConexion = errors.New("Error de conexión")

// ErrorAPI is a non-2xx answer from the API.
type ErrorAPI struct {
	Status  int
	Mensaje string
}

func (e *ErrorAPI) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Mensaje)
}

// Cliente is safe for concurrent use.
type Cliente struct {
	base string
	http *http.Client
}

// Opcion customises a Cliente.
type Opcion func(*Cliente)

// ConHTTPClient replaces the default *http.Client.
func ConHTTPClient(hc *http.Client) Opcion {
	return func(c *Cliente) { c.http = hc }
}

func New(baseURL string, opts ...Opcion) *Cliente {
	c := &Cliente{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: 15 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Cliente) ListarTickets(ctx context.Context) ([]dto.TicketResponse, error) {
	var out dto.Respuesta[[]dto.TicketResponse]
	if err := c.doJSON(ctx, http.MethodGet, "/tickets", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Cliente) CrearTicket(ctx context.Context, req dto.CrearTicketRequest) (dto.TicketResponse, error) {
	var out dto.Respuesta[dto.TicketResponse]
	err := c.doJSON(ctx, http.MethodPost, "/tickets", req, &out)
	return out.Data, err
}

func (c *Cliente) ActualizarTicket(ctx context.Context, id int64, req dto.ActualizarTicketRequest) (dto.TicketResponse, error) {
	var out dto.Respuesta[dto.TicketResponse]
	err := c.doJSON(ctx, http.MethodPut, rutaTicket(id), req, &out)
	return out.Data, err
}

// EliminarTicket returns the confirmation message sent by the API.
func (c *Cliente) EliminarTicket(ctx context.Context, id int64) (string, error) {
	var out dto.Respuesta[string]
	err := c.doJSON(ctx, http.MethodDelete, rutaTicket(id), nil, &out)
	return out.Data, err
}

func (c *Cliente) Equipos(ctx context.Context) ([]string, error) {
	var out dto.Respuesta[[]string]
	if err := c.doJSON(ctx, http.MethodGet, "/equipment", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Cliente) Panel(ctx context.Context) (dto.PanelResponse, error) {
	var out dto.Respuesta[dto.PanelResponse]
	err := c.doJSON(ctx, http.MethodGet, "/dashboard", nil, &out)
	return out.Data, err
}

func (c *Cliente) Revision(ctx context.Context) (int64, error) {
	var out dto.Respuesta[dto.RevisionResponse]
	err := c.doJSON(ctx, http.MethodGet, "/dashboard/revision", nil, &out)
	return out.Data.Revision, err
}

// ExportarXLSX downloads the spreadsheet export.
func (c *Cliente) ExportarXLSX(ctx context.Context) ([]byte, error) {
	return c.doRaw(ctx, "/tickets/export")
}

// OrdenServicioPDF downloads the printable service order of one ticket.
func (c *Cliente) OrdenServicioPDF(ctx context.Context, id int64) ([]byte, error) {
	return c.doRaw(ctx, rutaTicket(id)+"/pdf")
}

func rutaTicket(id int64) string { return "/tickets/" + strconv.FormatInt(id, 10) }

func (c *Cliente) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConexion, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return leerErrorAPI(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: respuesta ilegible: %v", ErrConexion, err)
	}
	return nil
}

func (c *Cliente) doRaw(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConexion, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, leerErrorAPI(resp)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConexion, err)
	}
	return b, nil
}

// leerErrorAPI decodes the {"error": "..."} body, falling back to the status text.
func leerErrorAPI(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if json.Unmarshal(b, &body) != nil || body.Error == "" {
		body.Error = http.StatusText(resp.StatusCode)
	}
	return &ErrorAPI{Status: resp.StatusCode, Mensaje: body.Error}
}
