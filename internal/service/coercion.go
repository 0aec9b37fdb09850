package service

import (
	"strings"
	"time"

	"serviciotecnico/internal/dto"

	"github.com/shopspring/decimal"
)

// Layouts accepted for date fields. Values without a zone are read as UTC.
var layoutsFecha = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseFecha rejects text that is not a date instead of storing garbage.
func parseFecha(campo, valor string) (time.Time, error) {
	valor = strings.TrimSpace(valor)
	for _, layout := range layoutsFecha {
		if t, err := time.Parse(layout, valor); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, &ErrValidacion{Mensaje: "Fecha inválida: " + campo}
}

// montoMaximo is the first value a decimal(12,2) column cannot hold.
var montoMaximo = decimal.New(1, 10)

// monto resolves an optional cost: absent is 0; negative or too large is rejected.
func monto(campo string, m *dto.Monto) (decimal.Decimal, error) {
	if m == nil {
		return decimal.Zero, nil
	}
	if m.Valor.IsNegative() || m.Valor.Round(2).GreaterThanOrEqual(montoMaximo) {
		return decimal.Zero, &ErrValidacion{Mensaje: "Costo inválido: " + campo}
	}
	return m.Valor, nil
}
