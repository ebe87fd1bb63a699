// Package shortlistweb exposes the agent shortlist endpoints.
package shortlistweb

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pitchsideapp/pitchside/internal/platform/requestctx"
	"github.com/pitchsideapp/pitchside/internal/services/api/platform/apperrors"
	"github.com/pitchsideapp/pitchside/internal/services/api/platform/authn"
	"github.com/pitchsideapp/pitchside/internal/services/api/platform/httpjson"
	"github.com/pitchsideapp/pitchside/internal/services/shortlist"
)

// Module serves shortlist endpoints over the shortlist service.
type Module struct {
	shortlist *shortlist.Service
}

// New creates the shortlist module.
func New(shortlistService *shortlist.Service) *Module {
	return &Module{shortlist: shortlistService}
}

// RegisterRoutes mounts the shortlist endpoints. All are agent-only.
func (m *Module) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/shortlist", authn.Require(m.handleList, requestctx.RoleAgent))
	mux.HandleFunc("DELETE /v1/shortlist", authn.Require(m.handleClear, requestctx.RoleAgent))
	mux.HandleFunc("GET /v1/shortlist/summary", authn.Require(m.handleSummary, requestctx.RoleAgent))
	mux.HandleFunc("PUT /v1/shortlist/{playerID}", authn.Require(m.handleAdd, requestctx.RoleAgent))
	mux.HandleFunc("DELETE /v1/shortlist/{playerID}", authn.Require(m.handleRemove, requestctx.RoleAgent))
	mux.HandleFunc("POST /v1/shortlist/{playerID}/toggle", authn.Require(m.handleToggle, requestctx.RoleAgent))
}

type entryPayload struct {
	PlayerID  string    `json:"player_id"`
	CreatedAt time.Time `json:"created_at"`
}

type listResponse struct {
	Entries       []entryPayload `json:"entries"`
	NextPageToken string         `json:"next_page_token,omitempty"`
}

func (m *Module) handleList(w http.ResponseWriter, r *http.Request) {
	actor := requestctx.ActorFromContext(r.Context())
	pageSize := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("page_size")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			httpjson.WriteError(w, r, apperrors.New(apperrors.KindInvalid, "page_size must be a non-negative integer"))
			return
		}
		pageSize = parsed
	}

	page, err := m.shortlist.List(r.Context(), actor.UserID, pageSize, r.URL.Query().Get("page_token"))
	if err != nil {
		httpjson.WriteError(w, r, err)
		return
	}
	response := listResponse{
		Entries:       make([]entryPayload, 0, len(page.Entries)),
		NextPageToken: page.NextPageToken,
	}
	for _, entry := range page.Entries {
		response.Entries = append(response.Entries, entryPayload{
			PlayerID:  entry.PlayerID,
			CreatedAt: entry.CreatedAt,
		})
	}
	httpjson.Write(w, http.StatusOK, response)
}

func (m *Module) handleClear(w http.ResponseWriter, r *http.Request) {
	actor := requestctx.ActorFromContext(r.Context())
	if err := m.shortlist.Clear(r.Context(), actor.UserID); err != nil {
		httpjson.WriteError(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusNoContent, nil)
}

type summaryResponse struct {
	Total        int            `json:"total"`
	ByPosition   map[string]int `json:"by_position"`
	Unpositioned int            `json:"unpositioned,omitempty"`
}

func (m *Module) handleSummary(w http.ResponseWriter, r *http.Request) {
	actor := requestctx.ActorFromContext(r.Context())
	summary, err := m.shortlist.Summarize(r.Context(), actor.UserID)
	if err != nil {
		httpjson.WriteError(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusOK, summaryResponse{
		Total:        summary.Total,
		ByPosition:   summary.ByPosition,
		Unpositioned: summary.Unpositioned,
	})
}

func (m *Module) handleAdd(w http.ResponseWriter, r *http.Request) {
	actor := requestctx.ActorFromContext(r.Context())
	if err := m.shortlist.Add(r.Context(), actor.UserID, r.PathValue("playerID")); err != nil {
		httpjson.WriteError(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusNoContent, nil)
}

func (m *Module) handleRemove(w http.ResponseWriter, r *http.Request) {
	actor := requestctx.ActorFromContext(r.Context())
	if err := m.shortlist.Remove(r.Context(), actor.UserID, r.PathValue("playerID")); err != nil {
		httpjson.WriteError(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusNoContent, nil)
}

type toggleResponse struct {
	Shortlisted bool `json:"shortlisted"`
}

func (m *Module) handleToggle(w http.ResponseWriter, r *http.Request) {
	actor := requestctx.ActorFromContext(r.Context())
	shortlisted, err := m.shortlist.Toggle(r.Context(), actor.UserID, r.PathValue("playerID"))
	if err != nil {
		httpjson.WriteError(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusOK, toggleResponse{Shortlisted: shortlisted})
}
