package doctor

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/medical-appointments/internal/apperror"
	redisclient "github.com/clinicore/medical-appointments/internal/redis"
)

const listCacheKey = "doctors:all"

type Service struct {
	repo     Repository
	cache    redisclient.Cache
	cacheTTL time.Duration
}

// NewService builds the doctor service. cache may be nil, in which case
// every read goes to Postgres. Doctors are immutable after creation, so the
// list cache only needs invalidating on create.
func NewService(repo Repository, cache redisclient.Cache, cacheTTL time.Duration) *Service {
	return &Service{repo: repo, cache: cache, cacheTTL: cacheTTL}
}

func (s *Service) List(ctx context.Context) ([]Doctor, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, listCacheKey); err == nil {
			var result []Doctor
			if jsonErr := json.Unmarshal([]byte(cached), &result); jsonErr == nil {
				return result, nil
			}
			// Unreadable cache entry; fall through and rebuild it.
		} else if !errors.Is(err, redisclient.ErrCacheMiss) {
			log.Printf("doctor list cache read failed: %v", err)
		}
	}

	result, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperror.Storage("list doctors", err)
	}
	if result == nil {
		result = []Doctor{}
	}

	if s.cache != nil {
		if data, err := json.Marshal(result); err == nil {
			if err := s.cache.Set(ctx, listCacheKey, string(data), s.cacheTTL); err != nil {
				log.Printf("doctor list cache write failed: %v", err)
			}
		}
	}

	return result, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Doctor, error) {
	doctorID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperror.NotFound("doctor not found")
	}

	d, err := s.repo.GetByID(ctx, doctorID)
	if err != nil {
		if errors.Is(err, ErrDoctorNotFound) {
			return nil, apperror.NotFound("doctor not found")
		}
		return nil, apperror.Storage("load doctor", err)
	}
	return d, nil
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*Doctor, error) {
	var missing []string
	if strings.TrimSpace(req.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(req.Specialty) == "" {
		missing = append(missing, "specialty")
	}
	if len(missing) > 0 {
		return nil, apperror.Validation("name and specialty are required", missing...)
	}

	created, err := s.repo.Create(ctx, Doctor{
		Name:      strings.TrimSpace(req.Name),
		Specialty: strings.TrimSpace(req.Specialty),
	})
	if err != nil {
		return nil, apperror.Storage("create doctor", err)
	}

	if s.cache != nil {
		if err := s.cache.Del(ctx, listCacheKey); err != nil {
			log.Printf("doctor list cache invalidation failed: %v", err)
		}
	}

	return created, nil
}
