// Package outbox exposes the agent-facing side of the contact request
// lifecycle: creating requests and tracking their outcomes.
package outbox

import (
	"net/http"

	"github.com/pitchsideapp/pitchside/internal/platform/requestctx"
	"github.com/pitchsideapp/pitchside/internal/services/api/modules/inbox"
	"github.com/pitchsideapp/pitchside/internal/services/api/platform/authn"
	"github.com/pitchsideapp/pitchside/internal/services/api/platform/httpjson"
	"github.com/pitchsideapp/pitchside/internal/services/requests"
	requeststorage "github.com/pitchsideapp/pitchside/internal/services/requests/storage"
)

// Module serves outbox endpoints over the request engine.
type Module struct {
	engine *requests.Engine
}

// New creates the outbox module.
func New(engine *requests.Engine) *Module {
	return &Module{engine: engine}
}

// RegisterRoutes mounts the agent outbox endpoints.
func (m *Module) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/requests", authn.Require(m.handleCreate, requestctx.RoleAgent))
	mux.HandleFunc("GET /v1/outbox", authn.Require(m.handleList, requestctx.RoleAgent))
	mux.HandleFunc("GET /v1/requests/{id}", authn.Require(m.handleGet))
}

type createRequest struct {
	PlayerID string `json:"player_id"`
	Type     string `json:"type"`
	Message  string `json:"message"`
}

func (m *Module) handleCreate(w http.ResponseWriter, r *http.Request) {
	var body createRequest
	if err := httpjson.Decode(w, r, &body); err != nil {
		httpjson.WriteError(w, r, err)
		return
	}
	actor := requestctx.ActorFromContext(r.Context())
	created, err := m.engine.Create(r.Context(), requests.CreateParams{
		AgentID:  actor.UserID,
		PlayerID: body.PlayerID,
		Type:     requeststorage.RequestType(body.Type),
		Message:  body.Message,
	})
	if err != nil {
		httpjson.WriteError(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusCreated, inbox.ToRequestPayload(created))
}

type listResponse struct {
	Requests []inbox.RequestPayload `json:"requests"`
}

func (m *Module) handleList(w http.ResponseWriter, r *http.Request) {
	actor := requestctx.ActorFromContext(r.Context())
	sent, err := m.engine.ListForAgent(r.Context(), actor.UserID)
	if err != nil {
		httpjson.WriteError(w, r, err)
		return
	}
	response := listResponse{Requests: make([]inbox.RequestPayload, 0, len(sent))}
	for _, request := range sent {
		response.Requests = append(response.Requests, inbox.ToRequestPayload(request))
	}
	httpjson.Write(w, http.StatusOK, response)
}

// handleGet returns one request to either of its participants.
func (m *Module) handleGet(w http.ResponseWriter, r *http.Request) {
	actor := requestctx.ActorFromContext(r.Context())
	request, err := m.engine.Get(r.Context(), r.PathValue("id"), actor.UserID)
	if err != nil {
		httpjson.WriteError(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusOK, inbox.ToRequestPayload(request))
}
