package goTask

import "errors"

var (
	// ErrUnauthorized is an exported constant or variable used by the task engine.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidCredentials is an exported constant or variable used by the task engine.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountExists is an exported constant or variable used by the task engine.
	ErrAccountExists = errors.New("account already exists")
	// ErrUserNotFound is an exported constant or variable used by the task engine.
	ErrUserNotFound = errors.New("user not found")
	// ErrRenewalInvalid is an exported constant or variable used by the task engine.
	ErrRenewalInvalid = errors.New("invalid renewal token")
	// ErrInvalidArgument is an exported constant or variable used by the task engine.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrTaskNotFound is an exported constant or variable used by the task engine.
	ErrTaskNotFound = errors.New("task not found")
	// ErrStoreUnavailable is an exported constant or variable used by the task engine.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrEngineNotReady is an exported constant or variable used by the task engine.
	ErrEngineNotReady = errors.New("engine not initialized")
)
