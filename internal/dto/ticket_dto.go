package dto

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ── Flexible input types ──────────────────────────────────────────────────────

// Monto accepts a JSON number or numeric text. Anything that does not parse
// is treated as 0.
type Monto struct {
	Valor decimal.Decimal
}

// NuevoMonto builds a Monto from a float, used by clients and tests.
func NuevoMonto(v float64) *Monto { return &Monto{Valor: decimal.NewFromFloat(v)} }

func (m *Monto) UnmarshalJSON(b []byte) error {
	m.Valor = parseMonto(b)
	return nil
}

func (m Monto) MarshalJSON() ([]byte, error) {
	return []byte(m.Valor.String()), nil
}

func parseMonto(b []byte) decimal.Decimal {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return decimal.Zero
	}
	if unq, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unq)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// FechaOpcional tells apart an absent field from an explicit null in a patch.
// Presente with an empty Valor clears the date.
type FechaOpcional struct {
	Presente bool
	Valor    string
}

// FechaNula is a present-but-empty FechaOpcional.
func FechaNula() FechaOpcional { return FechaOpcional{Presente: true} }

// ConFecha is a present FechaOpcional carrying s.
func ConFecha(s string) FechaOpcional { return FechaOpcional{Presente: true, Valor: s} }

func (f *FechaOpcional) UnmarshalJSON(b []byte) error {
	f.Presente = true
	if string(b) == "null" {
		f.Valor = ""
		return nil
	}
	return json.Unmarshal(b, &f.Valor)
}

func (f FechaOpcional) MarshalJSON() ([]byte, error) {
	if f.Valor == "" {
		return []byte("null"), nil
	}
	return json.Marshal(f.Valor)
}

// IsZero lets the omitzero tag skip absent fields when encoding a patch.
func (f FechaOpcional) IsZero() bool { return !f.Presente }

// ── Request DTOs ──────────────────────────────────────────────────────────────

type CrearTicketRequest struct {
	NumeroTicket            string  `json:"numero_ticket"             validate:"max=100"`
	Equipo                  string  `json:"equipo"                    validate:"max=200"`
	FechaEntrada            string  `json:"fecha_entrada"`
	FechaInicioServicio     string  `json:"fecha_inicio_servicio"`
	FechaFinServicio        *string `json:"fecha_fin_servicio,omitempty"`
	Descripcion             string  `json:"descripcion"               validate:"max=5000"`
	CostoRepuestos          *Monto  `json:"costo_repuestos,omitempty"`
	CostoManoObra           *Monto  `json:"costo_mano_obra,omitempty"`
	CostosExternosEstimados *Monto  `json:"costos_externos_estimados,omitempty"`
}

// ActualizarTicketRequest is a patch: nil / absent fields are left untouched.
type ActualizarTicketRequest struct {
	NumeroTicket            *string       `json:"numero_ticket,omitempty"             validate:"omitempty,max=100"`
	Equipo                  *string       `json:"equipo,omitempty"                    validate:"omitempty,max=200"`
	FechaEntrada            *string       `json:"fecha_entrada,omitempty"`
	FechaInicioServicio     *string       `json:"fecha_inicio_servicio,omitempty"`
	FechaFinServicio        FechaOpcional `json:"fecha_fin_servicio,omitzero"`
	Descripcion             *string       `json:"descripcion,omitempty"               validate:"omitempty,max=5000"`
	CostoRepuestos          *Monto        `json:"costo_repuestos,omitempty"`
	CostoManoObra           *Monto        `json:"costo_mano_obra,omitempty"`
	CostosExternosEstimados *Monto        `json:"costos_externos_estimados,omitempty"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type TicketResponse struct {
	ID                      int64      `json:"id"`
	NumeroTicket            string     `json:"numero_ticket"`
	Equipo                  string     `json:"equipo"`
	FechaEntrada            time.Time  `json:"fecha_entrada"`
	FechaInicioServicio     time.Time  `json:"fecha_inicio_servicio"`
	FechaFinServicio        *time.Time `json:"fecha_fin_servicio"`
	Descripcion             string     `json:"descripcion"`
	CostoRepuestos          float64    `json:"costo_repuestos"`
	CostoManoObra           float64    `json:"costo_mano_obra"`
	CostosExternosEstimados float64    `json:"costos_externos_estimados"`
	CreatedAt               time.Time  `json:"created_at"`
	UpdatedAt               time.Time  `json:"updated_at"`
}

// Respuesta is the success envelope: {"data": ...}.
type Respuesta[T any] struct {
	Data T `json:"data"`
}
