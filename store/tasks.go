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

func (s *Store) taskKey(taskID string) string {
	return s.prefix + ":task:" + taskID
}

func (s *Store) ownerIndexKey(ownerID string) string {
	return s.prefix + ":tasks:owner:" + ownerID
}

// InsertTask persists a new task document, assigning its id, and appends the
// id to the owner's insertion-order index.
//
//	Performance: 2 Redis commands in one transaction (SET + RPUSH).
func (s *Store) InsertTask(ctx context.Context, task goTask.TaskRecord) (goTask.TaskRecord, error) {
	if task.OwnerID == "" {
		return goTask.TaskRecord{}, goTask.ErrInvalidArgument
	}

	task.TaskID = uuid.NewString()

	data, err := json.Marshal(task)
	if err != nil {
		return goTask.TaskRecord{}, err
	}

	_, err = s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.taskKey(task.TaskID), data, 0)
		pipe.RPush(ctx, s.ownerIndexKey(task.OwnerID), task.TaskID)
		return nil
	})
	if err != nil {
		return goTask.TaskRecord{}, fmt.Errorf("%w: %v", goTask.ErrStoreUnavailable, err)
	}

	return task, nil
}

// GetTask loads a task document by id. A missing document is
// [goTask.ErrTaskNotFound].
//
//	Performance: 1 Redis GET.
func (s *Store) GetTask(ctx context.Context, taskID string) (goTask.TaskRecord, error) {
	if taskID == "" {
		return goTask.TaskRecord{}, goTask.ErrTaskNotFound
	}

	data, err := s.redis.Get(ctx, s.taskKey(taskID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return goTask.TaskRecord{}, goTask.ErrTaskNotFound
		}
		return goTask.TaskRecord{}, fmt.Errorf("%w: %v", goTask.ErrStoreUnavailable, err)
	}

	var task goTask.TaskRecord
	if err := json.Unmarshal(data, &task); err != nil {
		return goTask.TaskRecord{}, fmt.Errorf("corrupt task document %s: %w", taskID, err)
	}

	return task, nil
}

// TasksByOwner loads every task for ownerID in insertion order. Index
// entries whose documents have vanished are skipped rather than failing the
// whole listing. An owner with no tasks gets an empty, non-nil slice.
//
//	Performance: 1 Redis LRANGE + 1 pipelined GET batch.
func (s *Store) TasksByOwner(ctx context.Context, ownerID string) ([]goTask.TaskRecord, error) {
	if ownerID == "" {
		return []goTask.TaskRecord{}, nil
	}

	taskIDs, err := s.redis.LRange(ctx, s.ownerIndexKey(ownerID), 0, -1).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []goTask.TaskRecord{}, nil
		}
		return nil, fmt.Errorf("%w: %v", goTask.ErrStoreUnavailable, err)
	}
	if len(taskIDs) == 0 {
		return []goTask.TaskRecord{}, nil
	}

	pipe := s.redis.Pipeline()
	cmds := make([]*redis.StringCmd, len(taskIDs))
	for i, taskID := range taskIDs {
		cmds[i] = pipe.Get(ctx, s.taskKey(taskID))
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %v", goTask.ErrStoreUnavailable, err)
	}

	tasks := make([]goTask.TaskRecord, 0, len(taskIDs))
	for i, cmd := range cmds {
		data, cmdErr := cmd.Bytes()
		if cmdErr != nil {
			if errors.Is(cmdErr, redis.Nil) {
				continue
			}
			return nil, fmt.Errorf("%w: %v", goTask.ErrStoreUnavailable, cmdErr)
		}

		var task goTask.TaskRecord
		if err := json.Unmarshal(data, &task); err != nil {
			return nil, fmt.Errorf("corrupt task document %s: %w", taskIDs[i], err)
		}
		tasks = append(tasks, task)
	}

	return tasks, nil
}

// UpdateTask merges patch into an existing task document and rewrites it.
// Nil Name and Description leave the stored fields untouched; Status is
// always applied. A missing document is [goTask.ErrTaskNotFound].
//
//	Performance: 1 Redis GET + 1 SET.
func (s *Store) UpdateTask(ctx context.Context, taskID string, patch goTask.TaskPatch) error {
	task, err := s.GetTask(ctx, taskID)
	if err != nil {
		return err
	}

	if patch.Name != nil {
		task.Name = *patch.Name
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	task.Status = patch.Status

	data, err := json.Marshal(task)
	if err != nil {
		return err
	}

	if err := s.redis.Set(ctx, s.taskKey(taskID), data, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", goTask.ErrStoreUnavailable, err)
	}
	return nil
}

// DeleteTask removes a task document and its owner-index entry. A missing
// document is [goTask.ErrTaskNotFound].
//
//	Performance: 1 Redis GET + 2 commands in one transaction (DEL + LREM).
func (s *Store) DeleteTask(ctx context.Context, taskID string) error {
	task, err := s.GetTask(ctx, taskID)
	if err != nil {
		return err
	}

	_, err = s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.taskKey(taskID))
		pipe.LRem(ctx, s.ownerIndexKey(task.OwnerID), 1, taskID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", goTask.ErrStoreUnavailable, err)
	}
	return nil
}
