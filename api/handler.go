package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	goTask "github.com/MrEthical07/goTask"
	"github.com/MrEthical07/goTask/middleware"
)

type credentialsRequest struct {
	UserName string `json:"userName"`
	Password string `json:"pw"`
}

type createTaskRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type taskIDRequest struct {
	TaskID string `json:"taskId"`
}

type changeTaskRequest struct {
	TaskID      string  `json:"taskId"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Status      *int    `json:"status"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Handler is the mounted goTask HTTP surface.
type Handler struct {
	engine *goTask.Engine
	mux    *http.ServeMux
}

// NewHandler mounts every route on a fresh mux and returns the handler.
func NewHandler(engine *goTask.Engine) *Handler {
	h := &Handler{
		engine: engine,
		mux:    http.NewServeMux(),
	}

	anonymousOnly := middleware.RejectAuthenticated(engine)
	guarded := middleware.Guard(engine)

	h.mux.Handle("POST /register", anonymousOnly(http.HandlerFunc(h.register)))
	h.mux.Handle("POST /login", anonymousOnly(http.HandlerFunc(h.login)))
	h.mux.HandleFunc("POST /refreshToken", h.refreshToken)
	h.mux.HandleFunc("POST /logout", h.logout)

	h.mux.Handle("POST /createTask", guarded(http.HandlerFunc(h.createTask)))
	h.mux.Handle("GET /getTasks", guarded(http.HandlerFunc(h.getTasks)))
	h.mux.Handle("DELETE /deleteTask", guarded(http.HandlerFunc(h.deleteTask)))
	h.mux.Handle("PUT /changeTask", guarded(http.HandlerFunc(h.changeTask)))

	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	creds, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	pair, err := h.engine.Register(r.Context(), creds.UserName, creds.Password)
	if err != nil {
		switch {
		case errors.Is(err, goTask.ErrAccountExists):
			writeMessage(w, http.StatusForbidden, "user already present")
		case errors.Is(err, goTask.ErrInvalidArgument):
			writeMessage(w, http.StatusBadRequest, "userName is not set")
		default:
			internalError(w, "register", err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, pair)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	creds, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	pair, err := h.engine.Login(r.Context(), creds.UserName, creds.Password)
	if err != nil {
		if errors.Is(err, goTask.ErrInvalidCredentials) {
			writeMessage(w, http.StatusForbidden, "login failed")
			return
		}
		internalError(w, "login", err)
		return
	}

	writeJSON(w, http.StatusCreated, pair)
}

func (h *Handler) refreshToken(w http.ResponseWriter, r *http.Request) {
	renewal, ok := bearerToken(r)
	if !ok {
		writeMessage(w, http.StatusForbidden, "invalid refresh token")
		return
	}

	access, err := h.engine.Renew(r.Context(), renewal)
	if err != nil {
		if errors.Is(err, goTask.ErrRenewalInvalid) {
			writeMessage(w, http.StatusForbidden, "invalid refresh token")
			return
		}
		internalError(w, "refreshToken", err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"token": access})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	renewal, ok := bearerToken(r)
	if !ok {
		writeMessage(w, http.StatusForbidden, "invalid refresh token")
		return
	}

	if err := h.engine.Logout(r.Context(), renewal); err != nil {
		if errors.Is(err, goTask.ErrRenewalInvalid) {
			writeMessage(w, http.StatusForbidden, "invalid refresh token")
			return
		}
		internalError(w, "logout", err)
		return
	}

	writeMessage(w, http.StatusOK, "logged out")
}

func (h *Handler) createTask(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusForbidden, "User not authenticated")
		return
	}

	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "name should be a valid string")
		return
	}
	if req.Name == "" {
		writeMessage(w, http.StatusBadRequest, "name should be a valid string")
		return
	}
	if req.Description == "" {
		writeMessage(w, http.StatusBadRequest, "description should be a valid string")
		return
	}

	task, err := h.engine.CreateTask(r.Context(), id, req.Name, req.Description)
	if err != nil {
		if errors.Is(err, goTask.ErrInvalidArgument) {
			writeMessage(w, http.StatusBadRequest, "name should be a valid string")
			return
		}
		internalError(w, "createTask", err)
		return
	}

	writeJSON(w, http.StatusCreated, task)
}

func (h *Handler) getTasks(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusForbidden, "User not authenticated")
		return
	}

	tasks, err := h.engine.Tasks(r.Context(), id)
	if err != nil {
		internalError(w, "getTasks", err)
		return
	}
	if tasks == nil {
		tasks = []goTask.TaskRecord{}
	}

	writeJSON(w, http.StatusOK, tasks)
}

func (h *Handler) deleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusForbidden, "User not authenticated")
		return
	}

	var req taskIDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.TaskID == "" {
		writeMessage(w, http.StatusBadRequest, "taskId cannot be null")
		return
	}

	if err := h.engine.DeleteTask(r.Context(), id, req.TaskID); err != nil {
		switch {
		case errors.Is(err, goTask.ErrTaskNotFound):
			writeMessage(w, http.StatusNotFound, "task not found")
		case errors.Is(err, goTask.ErrInvalidArgument):
			writeMessage(w, http.StatusBadRequest, "taskId cannot be null")
		default:
			internalError(w, "deleteTask", err)
		}
		return
	}

	writeMessage(w, http.StatusOK, "task deleted")
}

func (h *Handler) changeTask(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusForbidden, "User not authenticated")
		return
	}

	var req changeTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "taskId cannot be null")
		return
	}
	if req.TaskID == "" {
		writeMessage(w, http.StatusBadRequest, "taskId cannot be null")
		return
	}
	if req.Name != nil && *req.Name == "" {
		writeMessage(w, http.StatusBadRequest, "name should be a valid string")
		return
	}
	if req.Description != nil && *req.Description == "" {
		writeMessage(w, http.StatusBadRequest, "description should be a valid string")
		return
	}
	if req.Status == nil || (*req.Status != 0 && *req.Status != 1) {
		writeMessage(w, http.StatusBadRequest, "status should be 0 (pregress) or 1 (done)")
		return
	}

	patch := goTask.TaskPatch{
		TaskID:      req.TaskID,
		Name:        req.Name,
		Description: req.Description,
		Status:      goTask.TaskStatus(*req.Status),
	}

	if err := h.engine.UpdateTask(r.Context(), id, patch); err != nil {
		switch {
		case errors.Is(err, goTask.ErrTaskNotFound):
			writeMessage(w, http.StatusNotFound, "task not found")
		case errors.Is(err, goTask.ErrInvalidArgument):
			writeMessage(w, http.StatusBadRequest, "status should be 0 (pregress) or 1 (done)")
		default:
			internalError(w, "changeTask", err)
		}
		return
	}

	writeMessage(w, http.StatusOK, "task updated")
}

func decodeCredentials(w http.ResponseWriter, r *http.Request) (credentialsRequest, bool) {
	var creds credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeMessage(w, http.StatusBadRequest, "userName is not set")
		return credentialsRequest{}, false
	}
	if creds.UserName == "" {
		writeMessage(w, http.StatusBadRequest, "userName is not set")
		return credentialsRequest{}, false
	}
	if creds.Password == "" {
		writeMessage(w, http.StatusBadRequest, "password is not set")
		return credentialsRequest{}, false
	}
	return creds, true
}

func bearerToken(r *http.Request) (string, bool) {
	const bearer = "Bearer "
	value := r.Header.Get("Authorization")
	if !strings.HasPrefix(value, bearer) {
		return "", false
	}

	token := strings.TrimSpace(value[len(bearer):])
	if token == "" {
		return "", false
	}
	return token, true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("goTask: encode response: %v", err)
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, messageResponse{Message: message})
}

func internalError(w http.ResponseWriter, route string, err error) {
	log.Printf("goTask: %s: %v", route, err)
	writeMessage(w, http.StatusInternalServerError, "internal error")
}
