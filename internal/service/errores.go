package service

import (
	"errors"

	"serviciotecnico/internal/repository"
)

var (
	ErrTicketNoEncontrado = errors.New("ticket no encontrado")
	ErrNumeroDuplicado    = errors.New("el número de ticket ya existe")
)

// ErrValidacion carries a user-facing message about invalid input.
type ErrValidacion struct {
	Mensaje string
}

func (e *ErrValidacion) Error() string { return e.Mensaje }

func campoRequerido(campo string) error {
	return &ErrValidacion{Mensaje: "Campo requerido: " + campo}
}

// traducirError maps repository sentinels onto service errors.
func traducirError(err error) error {
	switch {
	case errors.Is(err, repository.ErrNoEncontrado):
		return ErrTicketNoEncontrado
	case errors.Is(err, repository.ErrNumeroDuplicado):
		return ErrNumeroDuplicado
	default:
		return err
	}
}
