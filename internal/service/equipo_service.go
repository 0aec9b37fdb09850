package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"serviciotecnico/internal/infra"
	"serviciotecnico/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	claveEquipos        = "equipos:lista"
	claveVersionEquipos = "equipos:version"
)

// guardarSiVigente writes the list only while the version still matches the
// one read before the store query. A missing version counts as "0".
const guardarSiVigente = `
local v = redis.call('GET', KEYS[2]) or '0'
if v ~= ARGV[1] then
  return 0
end
redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
return 1
`

// EquipoService is the equipment directory: distinct names already used on tickets.
type EquipoService interface {
	Listar(ctx context.Context) ([]string, error)
	// Invalidar must run after the mutation committed.
	Invalidar(ctx context.Context)
}

type equipoService struct {
	repo repository.TicketRepository
	rdb  *redis.Client
	cb   *infra.CircuitBreaker
	ttl  time.Duration
}

func NewEquipoService(repo repository.TicketRepository, rdb *redis.Client, cb *infra.CircuitBreaker, ttl time.Duration) EquipoService {
	return &equipoService{repo: repo, rdb: rdb, cb: cb, ttl: ttl}
}

func (s *equipoService) Listar(ctx context.Context) ([]string, error) {
	// 1. Try Redis cache
	var cached []byte
	err := s.cb.Execute(func() error {
		b, err := s.rdb.Get(ctx, claveEquipos).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		cached = b
		return err
	})
	if err != nil {
		log.Warn().Err(err).Msg("cache de equipos no disponible")
	}
	if cached != nil {
		var equipos []string
		if jsonErr := json.Unmarshal(cached, &equipos); jsonErr == nil {
			return equipos, nil
		}
	}

	// 2. Cache miss: remember the version, then query DB
	version, versionOK := s.versionActual(ctx)
	equipos, err := s.repo.ListarEquipos(ctx)
	if err != nil {
		return nil, err
	}
	if equipos == nil {
		equipos = []string{}
	}

	// 3. Populate cache unless an invalidation happened meanwhile
	if versionOK {
		s.poblar(ctx, version, equipos)
	}
	return equipos, nil
}

func (s *equipoService) versionActual(ctx context.Context) (string, bool) {
	version := "0"
	err := s.cb.Execute(func() error {
		v, err := s.rdb.Get(ctx, claveVersionEquipos).Result()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		version = v
		return err
	})
	if err != nil {
		log.Warn().Err(err).Msg("versión de equipos no disponible")
		return "", false
	}
	return version, true
}

func (s *equipoService) poblar(ctx context.Context, version string, equipos []string) {
	b, err := json.Marshal(equipos)
	if err != nil {
		return
	}
	var guardado int64
	err = s.cb.Execute(func() error {
		var err error
		guardado, err = s.rdb.Eval(ctx, guardarSiVigente,
			[]string{claveEquipos, claveVersionEquipos},
			version, string(b), s.ttl.Milliseconds()).Int64()
		return err
	})
	switch {
	case err != nil:
		log.Warn().Err(err).Msg("no se pudo cachear la lista de equipos")
	case guardado == 0:
		log.Debug().Str("version", version).Msg("lista de equipos obsoleta, no se cachea")
	}
}

// Invalidar bumps the version before dropping the key, so a Listar that read
// the store before this call cannot write its stale list back.
func (s *equipoService) Invalidar(ctx context.Context) {
	err := s.cb.Execute(func() error {
		if err := s.rdb.Incr(ctx, claveVersionEquipos).Err(); err != nil {
			return err
		}
		return s.rdb.Del(ctx, claveEquipos).Err()
	})
	if err != nil {
		log.Warn().Err(err).Msg("no se pudo invalidar la lista de equipos")
	}
}
