package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bodytraq/imctrack/internal/imctrack/service"
	"github.com/bodytraq/imctrack/internal/imctrack/store"
	"github.com/bodytraq/imctrack/pkg/httpx"
	"github.com/bodytraq/imctrack/pkg/slogx"
)

// UsersHandler serves the user CRUD endpoints.
type UsersHandler struct {
	UserService *service.UserService
}

func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	users, err := h.UserService.ListUsers(ctx)
	if err != nil {
		log.Error("listing users failed", "err", err)
		ErrServerError.Write(w)
		return
	}

	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	user, err := h.UserService.GetUserByID(ctx, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			ErrNotFound.Write(w)
			return
		}
		log.Error("loading user failed", "err", err)
		ErrServerError.Write(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

type updateUserRequest struct {
	Email     *string `json:"email"`
	Password  *string `json:"password"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

func (req updateUserRequest) validate() []FieldError {
	var fields []FieldError
	if req.Email != nil && !validEmail(*req.Email) {
		fields = append(fields, FieldError{Field: "email", Message: "must be a valid email address"})
	}
	if req.Password != nil && len(*req.Password) < minPassword {
		fields = append(fields, FieldError{Field: "password", Message: "must be at least 8 characters"})
	}
	if req.FirstName != nil && *req.FirstName == "" {
		fields = append(fields, FieldError{Field: "first_name", Message: "must not be empty"})
	}
	if req.LastName != nil && *req.LastName == "" {
		fields = append(fields, FieldError{Field: "last_name", Message: "must not be empty"})
	}
	return fields
}

func (h *UsersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ErrBadRequest.Write(w)
		return
	}
	if fields := req.validate(); len(fields) > 0 {
		writeValidationError(w, fields)
		return
	}

	user, err := h.UserService.UpdateUser(ctx, r.PathValue("id"), service.UpdateUserParams{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			ErrNotFound.Write(w)
		case errors.Is(err, service.ErrEmailTaken):
			ErrConflict.Write(w)
		default:
			log.Error("updating user failed", "err", err)
			ErrServerError.Write(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := h.UserService.DeleteUser(ctx, r.PathValue("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			ErrNotFound.Write(w)
			return
		}
		log.Error("deleting user failed", "err", err)
		ErrServerError.Write(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
