// cmd/ticketctl: línea de comandos para la API de tickets de servicio.
// Uso: ticketctl --api-url http://localhost:8000 listar
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"serviciotecnico/internal/cliente"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.WarnLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := nuevoRoot().ExecuteContext(ctx); err != nil {
		var apiErr *cliente.ErrorAPI
		switch {
		case errors.As(err, &apiErr):
			fmt.Fprintln(os.Stderr, apiErr.Mensaje)
		case errors.Is(err, cliente.ErrConexion):
			fmt.Fprintln(os.Stderr, cliente.ErrConexion.Error())
		default:
			fmt.Fprintln(os.Stderr, err)
		}
		stop()
		os.Exit(1)
	}
}
