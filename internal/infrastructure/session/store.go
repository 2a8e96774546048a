package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrSessionNotFound = errors.New("session not found")

// Store keeps issued session IDs in Redis so tokens can be revoked on logout
// or after a failed profile bootstrap.
type Store struct {
	client *redis.Client
}

func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

func key(sessionID string) string {
	return "session:" + sessionID
}

func (s *Store) Save(ctx context.Context, sessionID string, userID uuid.UUID, ttl time.Duration) error {
	if err := s.client.Set(ctx, key(sessionID), userID.String(), ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, sessionID string) (uuid.UUID, error) {
	val, err := s.client.Get(ctx, key(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, ErrSessionNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to read session: %w", err)
	}
	userID, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, fmt.Errorf("corrupt session entry: %w", err)
	}
	return userID, nil
}

func (s *Store) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, key(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
