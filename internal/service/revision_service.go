package service

import (
	"context"
	"errors"

	"serviciotecnico/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const claveRevision = "tickets:revision"

// RevisionService exposes a counter that grows after every ticket mutation.
// Clients compare it to decide when to re-fetch the list.
type RevisionService interface {
	Actual(ctx context.Context) (int64, error)
	// Incrementar is best effort: a failure is logged, never returned.
	Incrementar(ctx context.Context)
}

type revisionService struct {
	rdb *redis.Client
	cb  *infra.CircuitBreaker
}

func NewRevisionService(rdb *redis.Client, cb *infra.CircuitBreaker) RevisionService {
	return &revisionService{rdb: rdb, cb: cb}
}

func (s *revisionService) Actual(ctx context.Context) (int64, error) {
	var rev int64
	err := s.cb.Execute(func() error {
		v, err := s.rdb.Get(ctx, claveRevision).Int64()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		rev = v
		return err
	})
	return rev, err
}

func (s *revisionService) Incrementar(ctx context.Context) {
	err := s.cb.Execute(func() error {
		return s.rdb.Incr(ctx, claveRevision).Err()
	})
	if err != nil {
		log.Warn().Err(err).Msg("no se pudo incrementar la revisión de tickets")
	}
}
