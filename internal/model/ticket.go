package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ticket is a service order for one piece of equipment.
// Completion and total cost are derived; neither is stored.
type Ticket struct {
	ID                      int64           `gorm:"primaryKey;autoIncrement"`
	NumeroTicket            string          `gorm:"uniqueIndex;not null"`
	Equipo                  string          `gorm:"index;not null"`
	FechaEntrada            time.Time       `gorm:"not null"`
	FechaInicioServicio     time.Time       `gorm:"not null"`
	FechaFinServicio        *time.Time
	Descripcion             string          `gorm:"not null"`
	CostoRepuestos          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CostoManoObra           decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CostosExternosEstimados decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

func (Ticket) TableName() string { return "tickets" }

// Completado reports whether the service has an end date.
func (t Ticket) Completado() bool { return t.FechaFinServicio != nil }

// CostoTotal sums parts, labour and external costs.
func (t Ticket) CostoTotal() decimal.Decimal {
	return t.CostoRepuestos.Add(t.CostoManoObra).Add(t.CostosExternosEstimados)
}
