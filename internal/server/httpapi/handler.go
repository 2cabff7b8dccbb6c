package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/gophcourses/internal/common"
	"github.com/dmitrijs2005/gophcourses/internal/logging"
	"github.com/dmitrijs2005/gophcourses/internal/server/auth"
	"github.com/dmitrijs2005/gophcourses/internal/server/users"
	"github.com/go-chi/chi/v5"
)

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 1 << 20

// UserService is the account API the handlers call.
type UserService interface {
	Register(ctx context.Context, in users.RegisterInput) (*users.Result, error)
	Login(ctx context.Context, in users.LoginInput) (*users.Result, error)
	UpdateProfile(ctx context.Context, id auth.Identity, targetID string, upd users.ProfileUpdate) (*users.Result, error)
	Profile(ctx context.Context, id auth.Identity) (*users.Profile, error)
}

type handler struct {
	users  UserService
	logger logging.Logger
}

func (h *handler) register(w http.ResponseWriter, r *http.Request) {
	var in users.RegisterInput
	if !h.decode(w, r, &in) {
		return
	}

	res, err := h.users.Register(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	var in users.LoginInput
	if !h.decode(w, r, &in) {
		return
	}

	res, err := h.users.Login(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *handler) me(w http.ResponseWriter, r *http.Request) {
	p, err := h.users.Profile(r.Context(), auth.IdentityFromContext(r.Context()))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *handler) updateUser(w http.ResponseWriter, r *http.Request) {
	var upd users.ProfileUpdate
	if !h.decode(w, r, &upd) {
		return
	}

	res, err := h.users.UpdateProfile(r.Context(), auth.IdentityFromContext(r.Context()), chi.URLParam(r, "id"), upd)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *handler) ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, messageBody{Message: "OK"})
}

func (h *handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		writeError(w, fmt.Errorf("%w: %v", common.ErrValidation, err))
		return false
	}
	return true
}

func (h *handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if !common.IsPublic(err) {
		h.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err.Error())
	}
	writeError(w, err)
}
