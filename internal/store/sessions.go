// Package store composes the durable session repository with the hot cache.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/vettalabs/vetta/internal/domain"
)

// Cache is the hot tier. Get returns domain.ErrNotFound on a miss.
type Cache interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	Set(ctx context.Context, s *domain.Session) error
}

// SessionStore reads through the cache and writes through to the durable
// repository. Cache faults never fail a request; durable-store faults do.
type SessionStore struct {
	backing domain.SessionRepository
	cache   Cache
}

// NewSessionStore builds the two-tier store. cache may be nil, in which case
// every read and write goes straight to the durable repository.
func NewSessionStore(backing domain.SessionRepository, cache Cache) *SessionStore {
	return &SessionStore{backing: backing, cache: cache}
}

// GetOrLoad returns the session from cache when present, falling back to the
// durable store and backfilling the cache on a miss.
func (s *SessionStore) GetOrLoad(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			log.Warn().Err(err).Stringer("session_id", id).Msg("session cache read failed")
		}
	}

	sess, err := s.backing.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("store.SessionStore.GetOrLoad: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, sess); err != nil {
			log.Warn().Err(err).Stringer("session_id", id).Msg("session cache backfill failed")
		}
	}

	return sess, nil
}

// Put writes the session to the durable store, then refreshes the cache. The
// durable write must succeed; the cache refresh is best effort.
func (s *SessionStore) Put(ctx context.Context, sess *domain.Session) error {
	if err := s.backing.Put(ctx, sess); err != nil {
		return fmt.Errorf("store.SessionStore.Put: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, sess); err != nil {
			log.Warn().Err(err).Stringer("session_id", sess.ID).Msg("session cache refresh failed")
		}
	}

	return nil
}
