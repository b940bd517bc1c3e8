package repo

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/pkordes/travelbuddy/internal/domain"
)

// PointsStore keeps the rewards balance of each session.
// Balances never go below zero.
type PointsStore interface {
	// Balance returns the current balance; unknown sessions have zero points.
	Balance(ctx context.Context, sessionID uuid.UUID) (int64, error)

	// Add credits n points and returns the new balance.
	Add(ctx context.Context, sessionID uuid.UUID, n int64) (int64, error)

	// Spend debits n points and returns the new balance.
	// Returns domain.ErrInsufficientPoints, leaving the balance unchanged,
	// when the balance is lower than n.
	Spend(ctx context.Context, sessionID uuid.UUID, n int64) (int64, error)
}

// RedisPointsStore keeps balances under "points:<session id>" keys.
type RedisPointsStore struct {
	client redis.UniversalClient
}

// NewRedisPointsStore constructs a PointsStore on an existing Redis client.
func NewRedisPointsStore(client redis.UniversalClient) *RedisPointsStore {
	return &RedisPointsStore{client: client}
}

// spendScript debits atomically, returning -1 instead of overdrawing.
var spendScript = redis.NewScript(`
local balance = tonumber(redis.call('GET', KEYS[1]) or '0')
local cost = tonumber(ARGV[1])
if balance < cost then
  return -1
end
return redis.call('DECRBY', KEYS[1], cost)
`)

func pointsKey(sessionID uuid.UUID) string {
	return "points:" + sessionID.String()
}

// Balance reads the session balance.
func (s *RedisPointsStore) Balance(ctx context.Context, sessionID uuid.UUID) (int64, error) {
	n, err := s.client.Get(ctx, pointsKey(sessionID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("repo.RedisPointsStore.Balance: %w", err)
	}
	return n, nil
}

// Add increments the session balance.
func (s *RedisPointsStore) Add(ctx context.Context, sessionID uuid.UUID, n int64) (int64, error) {
	bal, err := s.client.IncrBy(ctx, pointsKey(sessionID), n).Result()
	if err != nil {
		return 0, fmt.Errorf("repo.RedisPointsStore.Add: %w", err)
	}
	return bal, nil
}

// Spend decrements the session balance if it covers n.
func (s *RedisPointsStore) Spend(ctx context.Context, sessionID uuid.UUID, n int64) (int64, error) {
	bal, err := spendScript.Run(ctx, s.client, []string{pointsKey(sessionID)}, n).Int64()
	if err != nil {
		return 0, fmt.Errorf("repo.RedisPointsStore.Spend: %w", err)
	}
	if bal < 0 {
		return 0, fmt.Errorf("repo.RedisPointsStore.Spend: %w", domain.ErrInsufficientPoints)
	}
	return bal, nil
}

// MemoryPointsStore is an in-process PointsStore for development and tests.
type MemoryPointsStore struct {
	mu       sync.Mutex
	balances map[uuid.UUID]int64
}

// NewMemoryPointsStore constructs an empty MemoryPointsStore.
func NewMemoryPointsStore() *MemoryPointsStore {
	return &MemoryPointsStore{balances: make(map[uuid.UUID]int64)}
}

func (s *MemoryPointsStore) Balance(_ context.Context, sessionID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balances[sessionID], nil
}

func (s *MemoryPointsStore) Add(_ context.Context, sessionID uuid.UUID, n int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balances[sessionID] += n
	return s.balances[sessionID], nil
}

func (s *MemoryPointsStore) Spend(_ context.Context, sessionID uuid.UUID, n int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.balances[sessionID] < n {
		return 0, fmt.Errorf("repo.MemoryPointsStore.Spend: %w", domain.ErrInsufficientPoints)
	}
	s.balances[sessionID] -= n
	return s.balances[sessionID], nil
}

// compile-time checks: both stores must satisfy PointsStore.
var (
	_ PointsStore = (*RedisPointsStore)(nil)
	_ PointsStore = (*MemoryPointsStore)(nil)
)
