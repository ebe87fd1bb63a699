// Package accounts exposes registration and session endpoints.
package accounts

import (
	"net/http"
	"time"

	"github.com/pitchsideapp/pitchside/internal/platform/requestctx"
	"github.com/pitchsideapp/pitchside/internal/services/api/platform/authn"
	"github.com/pitchsideapp/pitchside/internal/services/api/platform/httpjson"
	"github.com/pitchsideapp/pitchside/internal/services/identity"
	identitystorage "github.com/pitchsideapp/pitchside/internal/services/identity/storage"
)

// Module serves account endpoints over the identity service.
type Module struct {
	identity *identity.Service
}

// New creates the accounts module.
func New(identityService *identity.Service) *Module {
	return &Module{identity: identityService}
}

// RegisterRoutes mounts the account endpoints.
func (m *Module) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/accounts", m.handleRegister)
	mux.HandleFunc("POST /v1/sessions", m.handleSession)
	mux.HandleFunc("GET /v1/me", authn.Require(m.handleMe))
}

type userPayload struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

func toUserPayload(user identitystorage.User) userPayload {
	return userPayload{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        string(user.Role),
		CreatedAt:   user.CreatedAt,
	}
}

type registerRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

type sessionResponse struct {
	User  userPayload `json:"user"`
	Token string      `json:"token"`
}

func (m *Module) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body registerRequest
	if err := httpjson.Decode(w, r, &body); err != nil {
		httpjson.WriteError(w, r, err)
		return
	}
	user, token, err := m.identity.Register(r.Context(), identity.RegisterParams{
		Email:       body.Email,
		DisplayName: body.DisplayName,
		Role:        identitystorage.Role(body.Role),
	})
	if err != nil {
		httpjson.WriteError(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusCreated, sessionResponse{User: toUserPayload(user), Token: token})
}

type sessionRequest struct {
	Email string `json:"email"`
}

// handleSession mints a session token for a known email. Password flows are
// delegated to the fronting auth provider; this endpoint backs local and
// demo environments.
func (m *Module) handleSession(w http.ResponseWriter, r *http.Request) {
	var body sessionRequest
	if err := httpjson.Decode(w, r, &body); err != nil {
		httpjson.WriteError(w, r, err)
		return
	}
	user, err := m.identity.GetUserByEmail(r.Context(), body.Email)
	if err != nil {
		httpjson.WriteError(w, r, err)
		return
	}
	token, err := m.identity.SessionToken(r.Context(), user.ID)
	if err != nil {
		httpjson.WriteError(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusOK, sessionResponse{User: toUserPayload(user), Token: token})
}

func (m *Module) handleMe(w http.ResponseWriter, r *http.Request) {
	actor := requestctx.ActorFromContext(r.Context())
	user, err := m.identity.GetUser(r.Context(), actor.UserID)
	if err != nil {
		httpjson.WriteError(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusOK, toUserPayload(user))
}
