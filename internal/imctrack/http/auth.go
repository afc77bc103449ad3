package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bodytraq/imctrack/internal/imctrack/service"
	"github.com/bodytraq/imctrack/pkg/httpx"
	"github.com/bodytraq/imctrack/pkg/slogx"
)

// AuthHandler serves registration, login and token renewal.
type AuthHandler struct {
	AuthService  *service.AuthService
	TokenService *service.TokenService
}

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (req registerRequest) validate() []FieldError {
	var fields []FieldError
	fields = validateEmailField(req.Email, fields)
	if len(req.Password) < minPassword {
		fields = append(fields, FieldError{Field: "password", Message: "must be at least 8 characters"})
	}
	if req.FirstName == "" {
		fields = append(fields, FieldError{Field: "first_name", Message: "must not be empty"})
	}
	if req.LastName == "" {
		fields = append(fields, FieldError{Field: "last_name", Message: "must not be empty"})
	}
	return fields
}

func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ErrBadRequest.Write(w)
		return
	}
	if fields := req.validate(); len(fields) > 0 {
		writeValidationError(w, fields)
		return
	}

	user, err := h.AuthService.Register(ctx, req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			ErrConflict.Write(w)
			return
		}
		log.Error("registration failed", "err", err)
		ErrServerError.Write(w)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toUserResponse(user))
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (req loginRequest) validate() []FieldError {
	var fields []FieldError
	fields = validateEmailField(req.Email, fields)
	if req.Password == "" {
		fields = append(fields, FieldError{Field: "password", Message: "must not be empty"})
	}
	return fields
}

func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ErrBadRequest.Write(w)
		return
	}
	if fields := req.validate(); len(fields) > 0 {
		writeValidationError(w, fields)
		return
	}

	pair, err := h.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownEmail):
			unauthorized(service.ErrUnknownEmail.Error()).Write(w)
		case errors.Is(err, service.ErrWrongPassword):
			unauthorized(service.ErrWrongPassword.Error()).Write(w)
		default:
			log.Error("login failed", "err", err)
			ErrServerError.Write(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, pair)
}

// HandleRefresh renews an access token. The Authorization header carries the
// refresh token; the response includes a refreshToken key only when the
// rotation policy decided to rotate.
func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	raw, ok := bearerToken(r)
	if !ok {
		ErrBadRequest.Write(w)
		return
	}

	pair, err := h.TokenService.Renew(raw)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRefreshMissingExpiry):
			log.Warn("refresh token without expiry claim")
			unauthorized("refresh token has no expiry").Write(w)
		case errors.Is(err, service.ErrInvalidRefresh):
			ErrUnauthorized.Write(w)
		default:
			log.Error("token renewal failed", "err", err)
			ErrServerError.Write(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, pair)
}
