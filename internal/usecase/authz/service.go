package authz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/interview-realtime/internal/domain/entities"
	"github.com/johnquangdev/interview-realtime/internal/domain/repositories"
	"github.com/johnquangdev/interview-realtime/internal/infrastructure/cache"
	usecaseErrors "github.com/johnquangdev/interview-realtime/internal/usecase/errors"
)

const keyPrefix = "authz:"

// Service answers interview membership and permission queries.
// Memberships are cached; non-members are not, so a newly invited user is admitted at once.
type Service struct {
	members repositories.InterviewParticipantRepository
	cache   cache.Store
	ttl     time.Duration
	logger  *zap.Logger
}

type cachedMembership struct {
	Role        entities.InterviewRole `json:"role"`
	Permissions entities.Permissions   `json:"permissions"`
}

// NewService creates an authorization service. A nil cache disables caching.
func NewService(members repositories.InterviewParticipantRepository, store cache.Store, ttl time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		members: members,
		cache:   store,
		ttl:     ttl,
		logger:  logger,
	}
}

// IsParticipant reports whether userID belongs to interviewID
func (s *Service) IsParticipant(ctx context.Context, userID, interviewID string) (bool, error) {
	m, err := s.lookup(ctx, userID, interviewID)
	if err != nil {
		return false, err
	}
	return m != nil, nil
}

// GetPermissions returns the member's permission set
func (s *Service) GetPermissions(ctx context.Context, userID, interviewID string) (entities.Permissions, error) {
	m, err := s.lookup(ctx, userID, interviewID)
	if err != nil {
		return entities.Permissions{}, err
	}
	if m == nil {
		return entities.Permissions{}, usecaseErrors.ErrNotInterviewMember
	}
	return m.Permissions, nil
}

// Invalidate drops a cached membership after it changes
func (s *Service) Invalidate(ctx context.Context, userID, interviewID string) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Delete(ctx, cacheKey(userID, interviewID))
}

func (s *Service) lookup(ctx context.Context, userID, interviewID string) (*cachedMembership, error) {
	key := cacheKey(userID, interviewID)
	if m, ok := s.fromCache(ctx, key); ok {
		return m, nil
	}

	row, err := s.members.Find(ctx, userID, interviewID)
	if err != nil {
		return nil, fmt.Errorf("failed to load interview membership: %w", err)
	}
	if row == nil {
		return nil, nil
	}

	m := &cachedMembership{Role: row.Role, Permissions: row.Permissions()}
	s.toCache(ctx, key, m)
	return m, nil
}

func (s *Service) fromCache(ctx context.Context, key string) (*cachedMembership, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			s.logger.Warn("⚠️ Authorization cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var m cachedMembership
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		s.logger.Warn("⚠️ Discarding malformed authorization cache entry", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return &m, true
}

func (s *Service) toCache(ctx context.Context, key string, m *cachedMembership) {
	if s.cache == nil || s.ttl <= 0 {
		return
	}
	data, err := json.Marshal(m)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(data), s.ttl); err != nil {
		s.logger.Warn("⚠️ Authorization cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// cacheKey length-prefixes the interview id so ids containing ':' cannot collide
func cacheKey(userID, interviewID string) string {
	return fmt.Sprintf("%s%d:%s:%s", keyPrefix, len(interviewID), interviewID, userID)
}
