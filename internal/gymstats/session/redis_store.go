package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultSnapshotTTL = 48 * time.Hour
	snapshotKeyPrefix  = "gymstats:session:"
)

// RedisStore keeps the last state of every session, so a workout in progress
// can be picked up again after a restart or from another instance.
type RedisStore struct {
	redisClient *redis.Client
	ttl         time.Duration
}

func NewRedisStore(redisClient *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultSnapshotTTL
	}
	return &RedisStore{
		redisClient: redisClient,
		ttl:         ttl,
	}
}

func SnapshotKey(userID string) string {
	return snapshotKeyPrefix + userID
}

func (s *RedisStore) Load(ctx context.Context, userID string) (*State, error) {
	cmd := s.redisClient.Get(ctx, SnapshotKey(userID))
	if err := cmd.Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get snapshot: %w", err)
	}

	state := &State{}
	if err := json.Unmarshal([]byte(cmd.Val()), state); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return state, nil
}

func (s *RedisStore) Save(ctx context.Context, userID string, state State) error {
	stateJson, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := s.redisClient.Set(ctx, SnapshotKey(userID), string(stateJson), s.ttl).Err(); err != nil {
		return fmt.Errorf("set snapshot: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, userID string) error {
	if err := s.redisClient.Del(ctx, SnapshotKey(userID)).Err(); err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	return nil
}

// StoredSnapshots reads the stored snapshot on every call. For processes that
// don't own the sessions, like the stdio MCP server.
type StoredSnapshots struct {
	store SnapshotStore
}

func NewStoredSnapshots(store SnapshotStore) *StoredSnapshots {
	return &StoredSnapshots{
		store: store,
	}
}

func (s *StoredSnapshots) Snapshot(ctx context.Context, userID string) State {
	stored, err := s.store.Load(ctx, userID)
	if err != nil {
		log.Errorf("load session snapshot for user [%s]: %s", userID, err)
		return State{}
	}
	if stored == nil {
		return State{}
	}
	return *stored
}
