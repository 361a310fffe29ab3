package session

import (
	"context"
	"encoding/json"
	"fmt"

	backend "github.com/redis/go-redis/v9"

	"coffee-shop-bot/internal/models"
)

// RedisStore implements Store on Redis. Drafts are JSON values, carts are
// lists of JSON lines so append order is preserved.
type RedisStore struct {
	client *backend.Client
	prefix string
}

// RedisOption configures a RedisStore
type RedisOption func(*RedisStore)

// WithPrefix sets the key prefix for session data
func WithPrefix(prefix string) RedisOption {
	return func(s *RedisStore) {
		s.prefix = prefix
	}
}

// NewRedisStore creates a Redis-backed session store
func NewRedisStore(address, password string, db int, opts ...RedisOption) *RedisStore {
	client := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewRedisStoreFromClient(client, opts...)
}

// NewRedisStoreFromClient creates a Redis-backed store from an existing client
func NewRedisStoreFromClient(client *backend.Client, opts ...RedisOption) *RedisStore {
	store := &RedisStore{
		client: client,
		prefix: "coffeebot:session:",
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *RedisStore) cartKey(userID string) string {
	return s.prefix + userID + ":cart"
}

func (s *RedisStore) draftKey(userID string) string {
	return s.prefix + userID + ":draft"
}

func (s *RedisStore) Cart(ctx context.Context, userID string) ([]models.CartLine, error) {
	values, err := s.client.LRange(ctx, s.cartKey(userID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read cart from redis: %w", err)
	}

	lines := make([]models.CartLine, 0, len(values))
	for _, value := range values {
		var line models.CartLine
		if err := json.Unmarshal([]byte(value), &line); err != nil {
			return nil, fmt.Errorf("failed to unmarshal cart line: %w", err)
		}
		lines = append(lines, line)
	}

	return lines, nil
}

func (s *RedisStore) AppendCartLine(ctx context.Context, userID string, line models.CartLine) error {
	data, err := json.Marshal(line)
	if err != nil {
		return fmt.Errorf("failed to marshal cart line: %w", err)
	}

	if err := s.client.RPush(ctx, s.cartKey(userID), data).Err(); err != nil {
		return fmt.Errorf("failed to append cart line to redis: %w", err)
	}

	return nil
}

func (s *RedisStore) ClearCart(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, s.cartKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to clear cart in redis: %w", err)
	}
	return nil
}

func (s *RedisStore) Draft(ctx context.Context, userID string) (models.DraftOrder, error) {
	value, err := s.client.Get(ctx, s.draftKey(userID)).Result()
	if err != nil {
		if err == backend.Nil {
			return models.DraftOrder{}, nil
		}
		return models.DraftOrder{}, fmt.Errorf("failed to read draft from redis: %w", err)
	}

	var draft models.DraftOrder
	if err := json.Unmarshal([]byte(value), &draft); err != nil {
		return models.DraftOrder{}, fmt.Errorf("failed to unmarshal draft: %w", err)
	}

	return draft, nil
}

func (s *RedisStore) SaveDraft(ctx context.Context, userID string, draft models.DraftOrder) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}

	if err := s.client.Set(ctx, s.draftKey(userID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save draft to redis: %w", err)
	}

	return nil
}

func (s *RedisStore) ClearDraft(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, s.draftKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to clear draft in redis: %w", err)
	}
	return nil
}

// Close closes the underlying redis client
func (s *RedisStore) Close() error {
	return s.client.Close()
}
