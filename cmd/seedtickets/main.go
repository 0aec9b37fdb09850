// cmd/seedtickets/main.go: inserta tickets de demo. Es idempotente.
// Uso: go run ./cmd/seedtickets
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"serviciotecnico/internal/config"
	"serviciotecnico/internal/infra"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type semilla struct {
	numero, equipo, descripcion string
	entrada, inicio             string
	fin                         string
	repuestos, manoObra, extern string
}

var semillas = []semilla{
	{"TCKT-001", "Printer-A", "Atasco de papel recurrente", "2024-01-10", "2024-01-11", "2024-01-15", "45.50", "30", "0"},
	{"TCKT-002", "Laptop Dell 5420", "Cambio de pantalla", "2024-01-22", "2024-01-23", "2024-01-29", "180", "60", "25"},
	{"TCKT-003", "Scanner HP", "No enciende", "2024-02-05", "2024-02-05", "", "0", "0", "0"},
	{"TCKT-004", "Printer-A", "Mantenimiento preventivo", "2024-02-18", "2024-02-19", "2024-02-19", "0", "40", "0"},
	{"TCKT-005", "Servidor Rack 2", "Falla de fuente", "2024-03-02", "2024-03-04", "", "320", "0", "150"},
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	db, err := infra.NewDatabase(cfg.DatabaseURL, infra.DatabaseOptions{MaxOpenConns: 2})
	if err != nil {
		log.Fatal().Err(err).Msg("db connect error")
	}

	ctx := context.Background()
	insertados := 0
	for _, s := range semillas {
		var fin *time.Time
		if s.fin != "" {
			f := mustFecha(s.fin)
			fin = &f
		}
		result := db.WithContext(ctx).Exec(`
			INSERT INTO tickets (numero_ticket, equipo, fecha_entrada, fecha_inicio_servicio,
			                     fecha_fin_servicio, descripcion, costo_repuestos, costo_mano_obra,
			                     costos_externos_estimados)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (numero_ticket) DO NOTHING
		`, s.numero, s.equipo, mustFecha(s.entrada), mustFecha(s.inicio), fin, s.descripcion,
			decimal.RequireFromString(s.repuestos), decimal.RequireFromString(s.manoObra),
			decimal.RequireFromString(s.extern))
		if result.Error != nil {
			log.Fatal().Err(result.Error).Str("numero_ticket", s.numero).Msg("insert error")
		}
		insertados += int(result.RowsAffected)
	}
	fmt.Printf("✅ %d tickets insertados (%d ya existían)\n", insertados, len(semillas)-insertados)
}

func mustFecha(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		log.Fatal().Err(err).Str("fecha", s).Msg("fecha de semilla inválida")
	}
	return t
}
