package goTask

import (
	"context"
	"time"
)

// TaskStatus represents the binary completion state of a task record.
type TaskStatus int

const (
	// TaskStatusPending is an exported constant or variable used by the task engine.
	TaskStatusPending TaskStatus = 0
	// TaskStatusDone is an exported constant or variable used by the task engine.
	TaskStatusDone TaskStatus = 1
)

// UserRecord is the full account record returned by [UserStore]. It carries
// the store-assigned id, the unique (case-sensitive) user name, and the
// opaque credential hash. Records are never mutated after creation.
type UserRecord struct {
	UserID       string `json:"id"`
	UserName     string `json:"userName"`
	PasswordHash string `json:"-"`
}

// CreateUserInput is the input for [UserStore.CreateUser]. The store assigns
// the id.
type CreateUserInput struct {
	UserName     string
	PasswordHash string
}

// TaskRecord defines a public type used by goTask APIs.
//
// TaskRecord instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type TaskRecord struct {
	TaskID      string     `json:"id"`
	OwnerID     string     `json:"ownerId"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
}

// TaskPatch carries a partial update for [Engine.UpdateTask]. Nil Name and
// Description leave the stored values untouched. Status is always applied —
// the update contract requires it on every call, even when only renaming.
type TaskPatch struct {
	TaskID      string
	Name        *string
	Description *string
	Status      TaskStatus
}

// TokenPair is returned by [Engine.Register] and [Engine.Login]. The access
// token authorizes individual requests for a short horizon; the renewal
// token mints new access tokens until it expires or is logged out.
type TokenPair struct {
	AccessToken  string `json:"token"`
	RenewalToken string `json:"refreshToken"`
}

// Identity is the verified subject bound to one in-flight request after
// [Engine.Authenticate] succeeds. It is owned by the request's lifetime and
// must not be shared across requests.
type Identity struct {
	SubjectID string
	UserName  string
}

// UserStore is the credential persistence contract that callers must
// implement (or take from store/) to integrate goTask with their database.
// CreateUser must enforce user-name uniqueness and return
// [ErrAccountExists] on a duplicate; lookups return [ErrUserNotFound] when
// no record matches.
type UserStore interface {
	CreateUser(ctx context.Context, input CreateUserInput) (UserRecord, error)
	GetUserByName(ctx context.Context, userName string) (UserRecord, error)
	GetUserByID(ctx context.Context, userID string) (UserRecord, error)
}

// TaskStore persists task records scoped by owner. GetTask returns
// [ErrTaskNotFound] for a missing id; ownership checks are the Engine's
// responsibility, not the store's. TasksByOwner preserves insertion order.
type TaskStore interface {
	InsertTask(ctx context.Context, task TaskRecord) (TaskRecord, error)
	GetTask(ctx context.Context, taskID string) (TaskRecord, error)
	TasksByOwner(ctx context.Context, ownerID string) ([]TaskRecord, error)
	UpdateTask(ctx context.Context, taskID string, patch TaskPatch) error
	DeleteTask(ctx context.Context, taskID string) error
}

// RenewalWhitelist is the persisted set of renewal tokens currently honored.
// Absence from it invalidates an otherwise well-formed, unexpired token —
// this is what makes logout and revocation possible for self-contained
// tokens. Remove is idempotent.
type RenewalWhitelist interface {
	Add(ctx context.Context, token, subjectID string, ttl time.Duration) error
	Contains(ctx context.Context, token string) (bool, error)
	Remove(ctx context.Context, token string) error
}
