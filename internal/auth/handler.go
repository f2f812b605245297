package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/authgate/authgate/internal/user"
	"github.com/authgate/authgate/internal/user/entity"
)

// Handler exposes the HTTP endpoints for registration, login and the
// protected user listing.
type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

func NewHandler(svc *Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// RegisterRequest is the body for POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterResponse mirrors the historical surface: a message plus the new
// account's id and email. Never the hash.
type RegisterResponse struct {
	Message string       `json:"message"`
	User    RegisteredID `json:"user"`
}

type RegisteredID struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	pub, err := h.svc.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		case errors.Is(err, user.ErrDuplicateEmail):
			h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Email already registered"})
		default:
			h.logger.Errorw("register failed", "err", err)
			h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "registration failed"})
		}
		return
	}
	h.writeJSON(w, http.StatusCreated, RegisterResponse{
		Message: "User registered",
		User:    RegisteredID{ID: pub.ID, Email: pub.Email},
	})
}

// LoginRequest is the body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the bearer token and the public identity.
type LoginResponse struct {
	Token string            `json:"token"`
	User  entity.PublicUser `json:"user"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	res, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrNotFound):
			h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "User not found"})
		case errors.Is(err, ErrInvalidCredentials):
			h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid credentials"})
		default:
			h.logger.Errorw("login failed", "err", err)
			h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "login failed"})
		}
		return
	}
	h.writeJSON(w, http.StatusOK, LoginResponse{Token: res.Token, User: res.User})
}

// Users serves the protected listing. RequireAuth has already validated the
// bearer token by the time this runs.
func (h *Handler) Users(w http.ResponseWriter, r *http.Request) {
	if _, ok := IdentityFrom(r.Context()); !ok {
		unauthorized(w, "Invalid token")
		return
	}
	list, err := h.svc.ListUsers(r.Context())
	if err != nil {
		h.logger.Errorw("list users failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "listing failed"})
		return
	}
	h.writeJSON(w, http.StatusOK, list)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
