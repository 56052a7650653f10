package goTask

import (
	"context"
	"errors"
)

// CreateTask persists a new pending task owned by the authenticated
// identity. Empty name or description fails with [ErrInvalidArgument].
func (e *Engine) CreateTask(ctx context.Context, id *Identity, name, description string) (*TaskRecord, error) {
	if e == nil || e.tasks == nil {
		return nil, ErrEngineNotReady
	}
	if id == nil || id.SubjectID == "" {
		return nil, ErrUnauthorized
	}
	if name == "" || description == "" {
		return nil, ErrInvalidArgument
	}

	task, err := e.tasks.InsertTask(ctx, TaskRecord{
		OwnerID:     id.SubjectID,
		Name:        name,
		Description: description,
		Status:      TaskStatusPending,
	})
	if err != nil {
		return nil, err
	}

	e.metricInc(MetricTaskCreated)
	return &task, nil
}

// Tasks returns every task owned by the authenticated identity, in
// insertion order. Other identities' tasks are never visible.
func (e *Engine) Tasks(ctx context.Context, id *Identity) ([]TaskRecord, error) {
	if e == nil || e.tasks == nil {
		return nil, ErrEngineNotReady
	}
	if id == nil || id.SubjectID == "" {
		return nil, ErrUnauthorized
	}

	return e.tasks.TasksByOwner(ctx, id.SubjectID)
}

// DeleteTask removes a task owned by the authenticated identity. A missing
// record and a record owned by someone else are both [ErrTaskNotFound] —
// ownership violations never surface as a distinct forbidden result, so
// record existence does not leak across identities.
func (e *Engine) DeleteTask(ctx context.Context, id *Identity, taskID string) error {
	if e == nil || e.tasks == nil {
		return ErrEngineNotReady
	}
	if id == nil || id.SubjectID == "" {
		return ErrUnauthorized
	}
	if taskID == "" {
		return ErrInvalidArgument
	}

	if _, err := e.ownedTask(ctx, id, taskID); err != nil {
		return err
	}

	if err := e.tasks.DeleteTask(ctx, taskID); err != nil {
		return err
	}

	e.metricInc(MetricTaskDeleted)
	return nil
}

// UpdateTask merges the supplied fields of patch into a task owned by the
// authenticated identity. Name and Description are optional; Status is
// required on every call and always rewritten. A supplied-but-empty Name or
// Description and a Status outside {0,1} fail with [ErrInvalidArgument].
// The ownership rule matches [Engine.DeleteTask].
func (e *Engine) UpdateTask(ctx context.Context, id *Identity, patch TaskPatch) error {
	if e == nil || e.tasks == nil {
		return ErrEngineNotReady
	}
	if id == nil || id.SubjectID == "" {
		return ErrUnauthorized
	}
	if patch.TaskID == "" {
		return ErrInvalidArgument
	}
	if patch.Status != TaskStatusPending && patch.Status != TaskStatusDone {
		return ErrInvalidArgument
	}
	if patch.Name != nil && *patch.Name == "" {
		return ErrInvalidArgument
	}
	if patch.Description != nil && *patch.Description == "" {
		return ErrInvalidArgument
	}

	if _, err := e.ownedTask(ctx, id, patch.TaskID); err != nil {
		return err
	}

	if err := e.tasks.UpdateTask(ctx, patch.TaskID, patch); err != nil {
		return err
	}

	e.metricInc(MetricTaskUpdated)
	return nil
}

func (e *Engine) ownedTask(ctx context.Context, id *Identity, taskID string) (TaskRecord, error) {
	task, err := e.tasks.GetTask(ctx, taskID)
	if err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			return TaskRecord{}, ErrTaskNotFound
		}
		return TaskRecord{}, err
	}
	if task.OwnerID != id.SubjectID {
		return TaskRecord{}, ErrTaskNotFound
	}
	return task, nil
}
