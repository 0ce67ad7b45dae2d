package skills

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/tolkflow/tolkflow-backend/pkg/db/models"
	"github.com/tolkflow/tolkflow-backend/pkg/logger"
	redispkg "github.com/tolkflow/tolkflow-backend/pkg/redis"
)

const cacheKeySkills = "skills"

// SkillDTO is the read-only catalog entry exposed to clients.
type SkillDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Cache is the slice of the redis client the service needs.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CacheKey(parts ...string) string
}

// Service serves the skill catalog, cached in redis because every price
// list render needs the full list.
type Service interface {
	List(ctx context.Context) ([]models.Skill, error)
	ListDTO(ctx context.Context) ([]SkillDTO, error)
	Invalidate(ctx context.Context) error
}

type service struct {
	repo  Repository
	cache Cache
	ttl   time.Duration
	logg  *logger.Logger
}

// NewService builds the catalog service. A nil cache disables caching.
func NewService(repo Repository, cache Cache, ttl time.Duration, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, errors.New("skills: repository is required")
	}
	return &service{repo: repo, cache: cache, ttl: ttl, logg: logg}, nil
}

func (s *service) List(ctx context.Context) ([]models.Skill, error) {
	if s.cache != nil {
		if cached, ok := s.fromCache(ctx); ok {
			return cached, nil
		}
	}

	skills, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && s.ttl > 0 {
		if payload, err := json.Marshal(skills); err == nil {
			if err := s.cache.Set(ctx, s.cache.CacheKey(cacheKeySkills), payload, s.ttl); err != nil && s.logg != nil {
				s.logg.Warn(ctx, "skill catalog cache write failed")
			}
		}
	}
	return skills, nil
}

func (s *service) ListDTO(ctx context.Context) ([]SkillDTO, error) {
	skills, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]SkillDTO, 0, len(skills))
	for _, skill := range skills {
		out = append(out, SkillDTO{ID: skill.ID, Name: skill.Name})
	}
	return out, nil
}

// Invalidate drops the cached catalog, used after admin catalog changes.
func (s *service) Invalidate(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Del(ctx, s.cache.CacheKey(cacheKeySkills))
}

func (s *service) fromCache(ctx context.Context) ([]models.Skill, bool) {
	raw, err := s.cache.Get(ctx, s.cache.CacheKey(cacheKeySkills))
	if err != nil {
		if !errors.Is(err, redispkg.Nil) && s.logg != nil {
			s.logg.Warn(ctx, "skill catalog cache read failed")
		}
		return nil, false
	}
	var skills []models.Skill
	if err := json.Unmarshal([]byte(raw), &skills); err != nil {
		return nil, false
	}
	return skills, true
}
