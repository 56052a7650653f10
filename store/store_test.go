package store

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	goTask "github.com/MrEthical07/goTask"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return New(client, "gt")
}

func mustCreateUser(t *testing.T, s *Store, userName string) goTask.UserRecord {
	t.Helper()

	user, err := s.CreateUser(context.Background(), goTask.CreateUserInput{
		UserName:     userName,
		PasswordHash: "$2a$10$fakefakefakefakefakefakefakefakefakefakefakefakefakef",
	})
	if err != nil {
		t.Fatalf("CreateUser(%s): %v", userName, err)
	}
	return user
}

func TestCreateUserAssignsIDAndRoundTrips(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := mustCreateUser(t, s, "alice")
	if user.UserID == "" {
		t.Fatal("store did not assign a user id")
	}

	byName, err := s.GetUserByName(ctx, "alice")
	if err != nil {
		t.Fatalf("GetUserByName: %v", err)
	}
	if byName.UserID != user.UserID {
		t.Fatalf("byName id = %q, want %q", byName.UserID, user.UserID)
	}
	if byName.PasswordHash != user.PasswordHash {
		t.Fatal("password hash did not round-trip")
	}

	byID, err := s.GetUserByID(ctx, user.UserID)
	if err != nil {
		t.Fatalf("GetUserByID: %v", err)
	}
	if byID.UserName != "alice" {
		t.Fatalf("byID userName = %q, want alice", byID.UserName)
	}
}

func TestCreateUserDuplicateName(t *testing.T) {
	s := newTestStore(t)

	mustCreateUser(t, s, "alice")

	_, err := s.CreateUser(context.Background(), goTask.CreateUserInput{
		UserName:     "alice",
		PasswordHash: "another-hash",
	})
	if !errors.Is(err, goTask.ErrAccountExists) {
		t.Fatalf("err = %v, want ErrAccountExists", err)
	}
}

func TestUserNameIsCaseSensitive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateUser(t, s, "alice")
	mustCreateUser(t, s, "Alice")

	lower, err := s.GetUserByName(ctx, "alice")
	if err != nil {
		t.Fatalf("GetUserByName(alice): %v", err)
	}
	upper, err := s.GetUserByName(ctx, "Alice")
	if err != nil {
		t.Fatalf("GetUserByName(Alice): %v", err)
	}
	if lower.UserID == upper.UserID {
		t.Fatal("distinct casings resolved to the same record")
	}
}

func TestGetUserNotFound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.GetUserByName(ctx, "nobody"); !errors.Is(err, goTask.ErrUserNotFound) {
		t.Fatalf("GetUserByName err = %v, want ErrUserNotFound", err)
	}
	if _, err := s.GetUserByID(ctx, "no-such-id"); !errors.Is(err, goTask.ErrUserNotFound) {
		t.Fatalf("GetUserByID err = %v, want ErrUserNotFound", err)
	}
}

func TestInsertTaskAndListInInsertionOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	names := []string{"first", "second", "third"}
	for _, name := range names {
		if _, err := s.InsertTask(ctx, goTask.TaskRecord{
			OwnerID:     "owner-1",
			Name:        name,
			Description: "d",
		}); err != nil {
			t.Fatalf("InsertTask(%s): %v", name, err)
		}
	}

	tasks, err := s.TasksByOwner(ctx, "owner-1")
	if err != nil {
		t.Fatalf("TasksByOwner: %v", err)
	}
	if len(tasks) != len(names) {
		t.Fatalf("got %d tasks, want %d", len(tasks), len(names))
	}
	for i, task := range tasks {
		if task.Name != names[i] {
			t.Fatalf("task[%d].Name = %q, want %q", i, task.Name, names[i])
		}
		if task.TaskID == "" {
			t.Fatalf("task[%d] missing id", i)
		}
	}
}

func TestTasksByOwnerEmptyIsNonNil(t *testing.T) {
	s := newTestStore(t)

	tasks, err := s.TasksByOwner(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("TasksByOwner: %v", err)
	}
	if tasks == nil {
		t.Fatal("empty listing is nil, want empty slice")
	}
	if len(tasks) != 0 {
		t.Fatalf("got %d tasks, want 0", len(tasks))
	}
}

func TestTasksByOwnerIsolation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.InsertTask(ctx, goTask.TaskRecord{OwnerID: "owner-1", Name: "mine", Description: "d"}); err != nil {
		t.Fatalf("InsertTask: %v", err)
	}
	if _, err := s.InsertTask(ctx, goTask.TaskRecord{OwnerID: "owner-2", Name: "theirs", Description: "d"}); err != nil {
		t.Fatalf("InsertTask: %v", err)
	}

	tasks, err := s.TasksByOwner(ctx, "owner-1")
	if err != nil {
		t.Fatalf("TasksByOwner: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Name != "mine" {
		t.Fatalf("owner-1 listing leaked foreign tasks: %+v", tasks)
	}
}

func TestUpdateTaskPartialMerge(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	task, err := s.InsertTask(ctx, goTask.TaskRecord{
		OwnerID:     "owner-1",
		Name:        "original",
		Description: "original description",
	})
	if err != nil {
		t.Fatalf("InsertTask: %v", err)
	}

	newName := "renamed"
	if err := s.UpdateTask(ctx, task.TaskID, goTask.TaskPatch{
		TaskID: task.TaskID,
		Name:   &newName,
		Status: goTask.TaskStatusDone,
	}); err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}

	updated, err := s.GetTask(ctx, task.TaskID)
	if err != nil {
		t.Fatalf("GetTask: %v", err)
	}
	if updated.Name != "renamed" {
		t.Fatalf("Name = %q, want renamed", updated.Name)
	}
	if updated.Description != "original description" {
		t.Fatalf("Description = %q, want untouched original", updated.Description)
	}
	if updated.Status != goTask.TaskStatusDone {
		t.Fatalf("Status = %d, want done", updated.Status)
	}
	if updated.OwnerID != "owner-1" {
		t.Fatalf("OwnerID = %q, want owner-1", updated.OwnerID)
	}
}

func TestUpdateMissingTask(t *testing.T) {
	s := newTestStore(t)

	err := s.UpdateTask(context.Background(), "no-such-task", goTask.TaskPatch{
		TaskID: "no-such-task",
		Status: goTask.TaskStatusDone,
	})
	if !errors.Is(err, goTask.ErrTaskNotFound) {
		t.Fatalf("err = %v, want ErrTaskNotFound", err)
	}
}

func TestDeleteTaskRemovesDocumentAndIndex(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	task, err := s.InsertTask(ctx, goTask.TaskRecord{OwnerID: "owner-1", Name: "n", Description: "d"})
	if err != nil {
		t.Fatalf("InsertTask: %v", err)
	}

	if err := s.DeleteTask(ctx, task.TaskID); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}

	if _, err := s.GetTask(ctx, task.TaskID); !errors.Is(err, goTask.ErrTaskNotFound) {
		t.Fatalf("GetTask after delete = %v, want ErrTaskNotFound", err)
	}

	tasks, err := s.TasksByOwner(ctx, "owner-1")
	if err != nil {
		t.Fatalf("TasksByOwner: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("owner index still lists %d tasks after delete", len(tasks))
	}

	if err := s.DeleteTask(ctx, task.TaskID); !errors.Is(err, goTask.ErrTaskNotFound) {
		t.Fatalf("second delete = %v, want ErrTaskNotFound", err)
	}
}
