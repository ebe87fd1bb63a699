// Package adminweb exposes the operator endpoints: user listing, role
// reassignment, and the platform overview.
package adminweb

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pitchsideapp/pitchside/internal/platform/requestctx"
	"github.com/pitchsideapp/pitchside/internal/services/admin"
	"github.com/pitchsideapp/pitchside/internal/services/api/platform/apperrors"
	"github.com/pitchsideapp/pitchside/internal/services/api/platform/authn"
	"github.com/pitchsideapp/pitchside/internal/services/api/platform/httpjson"
	identitystorage "github.com/pitchsideapp/pitchside/internal/services/identity/storage"
)

// Module serves operator endpoints over the admin service.
type Module struct {
	admin *admin.Service
}

// New creates the adminweb module.
func New(adminService *admin.Service) *Module {
	return &Module{admin: adminService}
}

// RegisterRoutes mounts the operator endpoints. The admin service enforces
// the role check; Require keeps unauthenticated traffic out early.
func (m *Module) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/admin/users", authn.Require(m.handleListUsers))
	mux.HandleFunc("PUT /v1/admin/users/{id}/role", authn.Require(m.handleChangeRole))
	mux.HandleFunc("GET /v1/admin/stats", authn.Require(m.handleStats))
}

type userPayload struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name,omitempty"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

type listUsersResponse struct {
	Users         []userPayload `json:"users"`
	NextPageToken string        `json:"next_page_token,omitempty"`
}

func (m *Module) handleListUsers(w http.ResponseWriter, r *http.Request) {
	pageSize := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("page_size")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			httpjson.WriteError(w, r, apperrors.New(apperrors.KindInvalid, "page_size must be a non-negative integer"))
			return
		}
		pageSize = parsed
	}
	if pageSize <= 0 {
		pageSize = 20
	}

	actor := requestctx.ActorFromContext(r.Context())
	page, err := m.admin.ListUsers(r.Context(), actor, pageSize, r.URL.Query().Get("page_token"))
	if err != nil {
		httpjson.WriteError(w, r, err)
		return
	}
	response := listUsersResponse{
		Users:         make([]userPayload, 0, len(page.Users)),
		NextPageToken: page.NextPageToken,
	}
	for _, user := range page.Users {
		response.Users = append(response.Users, userPayload{
			ID:          user.ID,
			Email:       user.Email,
			DisplayName: user.DisplayName,
			Role:        string(user.Role),
			CreatedAt:   user.CreatedAt,
		})
	}
	httpjson.Write(w, http.StatusOK, response)
}

type changeRoleRequest struct {
	Role string `json:"role"`
}

func (m *Module) handleChangeRole(w http.ResponseWriter, r *http.Request) {
	var body changeRoleRequest
	if err := httpjson.Decode(w, r, &body); err != nil {
		httpjson.WriteError(w, r, err)
		return
	}
	actor := requestctx.ActorFromContext(r.Context())
	err := m.admin.ChangeRole(r.Context(), actor, r.PathValue("id"), identitystorage.Role(body.Role))
	if err != nil {
		httpjson.WriteError(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusNoContent, nil)
}

type statsResponse struct {
	TotalUsers       int     `json:"total_users"`
	Players          int     `json:"players"`
	Agents           int     `json:"agents"`
	Admins           int     `json:"admins"`
	TotalRequests    int     `json:"total_requests"`
	PendingRequests  int     `json:"pending_requests"`
	AcceptedRequests int     `json:"accepted_requests"`
	DeclinedRequests int     `json:"declined_requests"`
	AverageRating    float64 `json:"average_rating"`
}

func (m *Module) handleStats(w http.ResponseWriter, r *http.Request) {
	actor := requestctx.ActorFromContext(r.Context())
	stats, err := m.admin.PlatformStats(r.Context(), actor)
	if err != nil {
		httpjson.WriteError(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusOK, statsResponse{
		TotalUsers:       stats.TotalUsers,
		Players:          stats.Players,
		Agents:           stats.Agents,
		Admins:           stats.Admins,
		TotalRequests:    stats.TotalRequests,
		PendingRequests:  stats.PendingRequests,
		AcceptedRequests: stats.AcceptedRequests,
		DeclinedRequests: stats.DeclinedRequests,
		AverageRating:    stats.AverageRating,
	})
}
