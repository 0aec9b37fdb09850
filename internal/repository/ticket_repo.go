package repository

import (
	"context"
	"errors"
	"fmt"

	"serviciotecnico/internal/model"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// pgUniqueViolation is SQLSTATE 23505.
const pgUniqueViolation = "23505"

var (
	// ErrNoEncontrado is returned when no ticket matches the id.
	ErrNoEncontrado = errors.New("ticket no encontrado")
	// ErrNumeroDuplicado is returned when numero_ticket is already taken.
	ErrNumeroDuplicado = errors.New("numero_ticket duplicado")
)

// TicketRepository defines persistence operations for Ticket.
type TicketRepository interface {
	Listar(ctx context.Context) ([]model.Ticket, error)
	ObtenerPorID(ctx context.Context, id int64) (*model.Ticket, error)
	Crear(ctx context.Context, t *model.Ticket) error
	// Actualizar overwrites only the given columns and returns the stored row.
	Actualizar(ctx context.Context, id int64, campos map[string]interface{}) (*model.Ticket, error)
	Eliminar(ctx context.Context, id int64) error
	ListarEquipos(ctx context.Context) ([]string, error)
}

type ticketRepository struct{ db *gorm.DB }

func NewTicketRepository(db *gorm.DB) TicketRepository {
	return &ticketRepository{db: db}
}

func (r *ticketRepository) Listar(ctx context.Context) ([]model.Ticket, error) {
	var list []model.Ticket
	err := r.db.WithContext(ctx).Order("created_at desc").Order("id desc").Find(&list).Error
	return list, err
}

func (r *ticketRepository) ObtenerPorID(ctx context.Context, id int64) (*model.Ticket, error) {
	var t model.Ticket
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, traducirError(err)
	}
	return &t, nil
}

// Crear inserts t and reloads it, so t carries the values as stored
// (costs rounded to the column scale, defaults and timestamps applied).
func (r *ticketRepository) Crear(ctx context.Context, t *model.Ticket) error {
	db := r.db.WithContext(ctx)
	if err := db.Create(t).Error; err != nil {
		return traducirError(err)
	}
	var guardado model.Ticket
	if err := db.First(&guardado, "id = ?", t.ID).Error; err != nil {
		return traducirError(err)
	}
	*t = guardado
	return nil
}

func (r *ticketRepository) Actualizar(ctx context.Context, id int64, campos map[string]interface{}) (*model.Ticket, error) {
	var t model.Ticket
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&t, "id = ?", id).Error; err != nil {
			return err
		}
		if len(campos) == 0 {
			return nil
		}
		if err := tx.Model(&t).Updates(campos).Error; err != nil {
			return err
		}
		return tx.First(&t, "id = ?", id).Error
	})
	if err != nil {
		return nil, traducirError(err)
	}
	return &t, nil
}

func (r *ticketRepository) Eliminar(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Ticket{}, "id = ?", id)
	if res.Error != nil {
		return traducirError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNoEncontrado
	}
	return nil
}

// ListarEquipos returns the distinct equipment names, alphabetically.
func (r *ticketRepository) ListarEquipos(ctx context.Context) ([]string, error) {
	var equipos []string
	err := r.db.WithContext(ctx).
		Model(&model.Ticket{}).
		Distinct("equipo").
		Order("equipo asc").
		Pluck("equipo", &equipos).Error
	return equipos, err
}

// traducirError maps driver errors onto the repository sentinels.
func traducirError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNoEncontrado
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrNumeroDuplicado
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return ErrNumeroDuplicado
	}
	return fmt.Errorf("tickets: %w", err)
}
