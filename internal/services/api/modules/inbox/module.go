// Package inbox exposes the player-facing side of the contact request
// lifecycle: the pending list, the badge count, and the accept/decline
// decisions.
package inbox

import (
	"net/http"
	"time"

	"github.com/pitchsideapp/pitchside/internal/platform/requestctx"
	"github.com/pitchsideapp/pitchside/internal/services/api/platform/authn"
	"github.com/pitchsideapp/pitchside/internal/services/api/platform/httpjson"
	"github.com/pitchsideapp/pitchside/internal/services/requests"
	requeststorage "github.com/pitchsideapp/pitchside/internal/services/requests/storage"
)

// Module serves inbox endpoints over the request engine.
type Module struct {
	engine *requests.Engine
}

// New creates the inbox module.
func New(engine *requests.Engine) *Module {
	return &Module{engine: engine}
}

// RegisterRoutes mounts the player inbox endpoints.
func (m *Module) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/inbox", authn.Require(m.handleList, requestctx.RolePlayer))
	mux.HandleFunc("GET /v1/inbox/count", authn.Require(m.handleCount, requestctx.RolePlayer))
	mux.HandleFunc("POST /v1/requests/{id}/accept", authn.Require(m.handleAccept, requestctx.RolePlayer))
	mux.HandleFunc("POST /v1/requests/{id}/decline", authn.Require(m.handleDecline, requestctx.RolePlayer))
}

// RequestPayload is the wire shape of one contact request.
type RequestPayload struct {
	ID        string     `json:"id"`
	PlayerID  string     `json:"player_id"`
	AgentID   string     `json:"agent_id"`
	Type      string     `json:"type"`
	Message   string     `json:"message,omitempty"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	DecidedAt *time.Time `json:"decided_at,omitempty"`
}

// ToRequestPayload converts a stored request to its wire shape.
func ToRequestPayload(request requeststorage.ContactRequest) RequestPayload {
	payload := RequestPayload{
		ID:        request.ID,
		PlayerID:  request.PlayerID,
		AgentID:   request.AgentID,
		Type:      string(request.Type),
		Message:   request.Message,
		Status:    string(request.Status),
		CreatedAt: request.CreatedAt,
	}
	if !request.DecidedAt.IsZero() {
		decidedAt := request.DecidedAt
		payload.DecidedAt = &decidedAt
	}
	return payload
}

type listResponse struct {
	Requests []RequestPayload `json:"requests"`
}

func (m *Module) handleList(w http.ResponseWriter, r *http.Request) {
	actor := requestctx.ActorFromContext(r.Context())
	pending, err := m.engine.ListPendingForPlayer(r.Context(), actor.UserID)
	if err != nil {
		httpjson.WriteError(w, r, err)
		return
	}
	response := listResponse{Requests: make([]RequestPayload, 0, len(pending))}
	for _, request := range pending {
		response.Requests = append(response.Requests, ToRequestPayload(request))
	}
	httpjson.Write(w, http.StatusOK, response)
}

type countResponse struct {
	Count int `json:"count"`
}

func (m *Module) handleCount(w http.ResponseWriter, r *http.Request) {
	actor := requestctx.ActorFromContext(r.Context())
	count, err := m.engine.PendingCountForPlayer(r.Context(), actor.UserID)
	if err != nil {
		httpjson.WriteError(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusOK, countResponse{Count: count})
}

func (m *Module) handleAccept(w http.ResponseWriter, r *http.Request) {
	actor := requestctx.ActorFromContext(r.Context())
	resolved, err := m.engine.Accept(r.Context(), r.PathValue("id"), actor.UserID)
	if err != nil {
		httpjson.WriteError(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusOK, ToRequestPayload(resolved))
}

func (m *Module) handleDecline(w http.ResponseWriter, r *http.Request) {
	actor := requestctx.ActorFromContext(r.Context())
	resolved, err := m.engine.Decline(r.Context(), r.PathValue("id"), actor.UserID)
	if err != nil {
		httpjson.WriteError(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusOK, ToRequestPayload(resolved))
}
