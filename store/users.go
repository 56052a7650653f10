package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	goTask "github.com/MrEthical07/goTask"
)

// userDocument is the stored shape of a user record. PasswordHash is
// serialized here even though the public record hides it from JSON.
type userDocument struct {
	UserID       string `json:"id"`
	UserName     string `json:"userName"`
	PasswordHash string `json:"pw"`
}

// Store implements [goTask.UserStore] and [goTask.TaskStore] on Redis.
type Store struct {
	redis  redis.UniversalClient
	prefix string
}

// New creates a [Store] backed by the given Redis client. prefix sets the
// Redis key namespace.
func New(redis redis.UniversalClient, prefix string) *Store {
	if prefix == "" {
		prefix = "gt"
	}
	return &Store{
		redis:  redis,
		prefix: prefix,
	}
}

func (s *Store) userKey(userID string) string {
	return s.prefix + ":user:" + userID
}

func (s *Store) userNameIndexKey() string {
	return s.prefix + ":users:byname"
}

// CreateUser persists a new user record, assigning its id. User-name
// uniqueness is enforced by HSETNX on the byname index: the index claim is
// the single atomic decision point, so two concurrent registrations of the
// same name cannot both succeed.
//
//	Performance: 1 Redis HSETNX + 1 SET.
func (s *Store) CreateUser(ctx context.Context, input goTask.CreateUserInput) (goTask.UserRecord, error) {
	if input.UserName == "" || input.PasswordHash == "" {
		return goTask.UserRecord{}, goTask.ErrInvalidArgument
	}

	doc := userDocument{
		UserID:       uuid.NewString(),
		UserName:     input.UserName,
		PasswordHash: input.PasswordHash,
	}

	claimed, err := s.redis.HSetNX(ctx, s.userNameIndexKey(), doc.UserName, doc.UserID).Result()
	if err != nil {
		return goTask.UserRecord{}, fmt.Errorf("%w: %v", goTask.ErrStoreUnavailable, err)
	}
	if !claimed {
		return goTask.UserRecord{}, goTask.ErrAccountExists
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return goTask.UserRecord{}, err
	}

	if err := s.redis.Set(ctx, s.userKey(doc.UserID), data, 0).Err(); err != nil {
		// Release the index claim so the name is not burned by a half-write.
		_ = s.redis.HDel(ctx, s.userNameIndexKey(), doc.UserName).Err()
		return goTask.UserRecord{}, fmt.Errorf("%w: %v", goTask.ErrStoreUnavailable, err)
	}

	return goTask.UserRecord{
		UserID:       doc.UserID,
		UserName:     doc.UserName,
		PasswordHash: doc.PasswordHash,
	}, nil
}

// GetUserByName resolves a user name through the byname index and loads the
// record. A missing index entry or document is [goTask.ErrUserNotFound].
//
//	Performance: 1 Redis HGET + 1 GET.
func (s *Store) GetUserByName(ctx context.Context, userName string) (goTask.UserRecord, error) {
	if userName == "" {
		return goTask.UserRecord{}, goTask.ErrUserNotFound
	}

	userID, err := s.redis.HGet(ctx, s.userNameIndexKey(), userName).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return goTask.UserRecord{}, goTask.ErrUserNotFound
		}
		return goTask.UserRecord{}, fmt.Errorf("%w: %v", goTask.ErrStoreUnavailable, err)
	}

	return s.GetUserByID(ctx, userID)
}

// GetUserByID loads a user record by id. A missing document is
// [goTask.ErrUserNotFound].
//
//	Performance: 1 Redis GET.
func (s *Store) GetUserByID(ctx context.Context, userID string) (goTask.UserRecord, error) {
	if userID == "" {
		return goTask.UserRecord{}, goTask.ErrUserNotFound
	}

	data, err := s.redis.Get(ctx, s.userKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return goTask.UserRecord{}, goTask.ErrUserNotFound
		}
		return goTask.UserRecord{}, fmt.Errorf("%w: %v", goTask.ErrStoreUnavailable, err)
	}

	var doc userDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return goTask.UserRecord{}, fmt.Errorf("corrupt user document %s: %w", userID, err)
	}

	return goTask.UserRecord{
		UserID:       doc.UserID,
		UserName:     doc.UserName,
		PasswordHash: doc.PasswordHash,
	}, nil
}
