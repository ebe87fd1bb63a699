// Package profile exposes self-service profile management for players and
// agents: profile upserts, season stats, career history, endorsements, and
// highlight videos.
package profile

import (
	"net/http"
	"time"

	"github.com/pitchsideapp/pitchside/internal/platform/requestctx"
	"github.com/pitchsideapp/pitchside/internal/services/api/platform/apperrors"
	"github.com/pitchsideapp/pitchside/internal/services/api/platform/authn"
	"github.com/pitchsideapp/pitchside/internal/services/api/platform/httpjson"
	"github.com/pitchsideapp/pitchside/internal/services/directory"
)

// Module serves profile endpoints over the directory service.
type Module struct {
	directory *directory.Service
}

// New creates the profile module.
func New(directoryService *directory.Service) *Module {
	return &Module{directory: directoryService}
}

// RegisterRoutes mounts the profile endpoints.
func (m *Module) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("PUT /v1/profile/player", authn.Require(m.handleUpsertPlayer, requestctx.RolePlayer))
	mux.HandleFunc("PUT /v1/profile/agent", authn.Require(m.handleUpsertAgent, requestctx.RoleAgent))
	mux.HandleFunc("PUT /v1/profile/stats", authn.Require(m.handleRecordStats, requestctx.RolePlayer))
	mux.HandleFunc("POST /v1/profile/career", authn.Require(m.handleAddCareer, requestctx.RolePlayer))
	mux.HandleFunc("POST /v1/profile/videos", authn.Require(m.handleAddVideo, requestctx.RolePlayer))
	mux.HandleFunc("DELETE /v1/profile/videos/{id}", authn.Require(m.handleRemoveVideo, requestctx.RolePlayer))
	mux.HandleFunc("POST /v1/players/{id}/endorsements", authn.Require(m.handleAddEndorsement, requestctx.RoleAdmin))
	mux.HandleFunc("GET /v1/agents/{id}", authn.Require(m.handleGetAgent))
}

type playerProfileRequest struct {
	FullName      string `json:"full_name"`
	DateOfBirth   string `json:"date_of_birth,omitempty"`
	Position      string `json:"position,omitempty"`
	Country       string `json:"country,omitempty"`
	City          string `json:"city,omitempty"`
	HeightCM      int    `json:"height_cm,omitempty"`
	WeightKG      int    `json:"weight_kg,omitempty"`
	PreferredFoot string `json:"preferred_foot,omitempty"`
	Availability  string `json:"availability,omitempty"`
	Bio           string `json:"bio,omitempty"`
	AvatarURL     string `json:"avatar_url,omitempty"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
}

func (m *Module) handleUpsertPlayer(w http.ResponseWriter, r *http.Request) {
	var body playerProfileRequest
	if err := httpjson.Decode(w, r, &body); err != nil {
		httpjson.WriteError(w, r, err)
		return
	}
	var dateOfBirth time.Time
	if body.DateOfBirth != "" {
		parsed, err := time.Parse("2006-01-02", body.DateOfBirth)
		if err != nil {
			httpjson.WriteError(w, r, apperrors.New(apperrors.KindInvalid, "date_of_birth must be YYYY-MM-DD"))
			return
		}
		dateOfBirth = parsed
	}

	actor := requestctx.ActorFromContext(r.Context())
	err := m.directory.SavePlayerProfile(r.Context(), actor.UserID, directory.PlayerProfileParams{
		FullName:      body.FullName,
		DateOfBirth:   dateOfBirth,
		Position:      body.Position,
		Country:       body.Country,
		City:          body.City,
		HeightCM:      body.HeightCM,
		WeightKG:      body.WeightKG,
		PreferredFoot: body.PreferredFoot,
		Availability:  body.Availability,
		Bio:           body.Bio,
		AvatarURL:     body.AvatarURL,
		Email:         body.Email,
		Phone:         body.Phone,
	})
	if err != nil {
		httpjson.WriteError(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusNoContent, nil)
}

type agentProfileRequest struct {
	FullName  string `json:"full_name"`
	Agency    string `json:"agency,omitempty"`
	Country   string `json:"country,omitempty"`
	Bio       string `json:"bio,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

func (m *Module) handleUpsertAgent(w http.ResponseWriter, r *http.Request) {
	var body agentProfileRequest
	if err := httpjson.Decode(w, r, &body); err != nil {
		httpjson.WriteError(w, r, err)
		return
	}
	actor := requestctx.ActorFromContext(r.Context())
	err := m.directory.SaveAgentProfile(r.Context(), actor.UserID, directory.AgentProfileParams{
		FullName:  body.FullName,
		Agency:    body.Agency,
		Country:   body.Country,
		Bio:       body.Bio,
		AvatarURL: body.AvatarURL,
	})
	if err != nil {
		httpjson.WriteError(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusNoContent, nil)
}

type seasonStatsRequest struct {
	Season        string  `json:"season"`
	Goals         int     `json:"goals"`
	Assists       int     `json:"assists"`
	Matches       int     `json:"matches"`
	MinutesPlayed int     `json:"minutes_played"`
	PassAccuracy  float64 `json:"pass_accuracy"`
	ShotsOnTarget int     `json:"shots_on_target"`
}

func (m *Module) handleRecordStats(w http.ResponseWriter, r *http.Request) {
	var body seasonStatsRequest
	if err := httpjson.Decode(w, r, &body); err != nil {
		httpjson.WriteError(w, r, err)
		return
	}
	actor := requestctx.ActorFromContext(r.Context())
	err := m.directory.RecordSeasonStats(r.Context(), actor.UserID, directory.SeasonStatsParams{
		Season:        body.Season,
		Goals:         body.Goals,
		Assists:       body.Assists,
		Matches:       body.Matches,
		MinutesPlayed: body.MinutesPlayed,
		PassAccuracy:  body.PassAccuracy,
		ShotsOnTarget: body.ShotsOnTarget,
	})
	if err != nil {
		httpjson.WriteError(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusNoContent, nil)
}

type careerEntryRequest struct {
	Club     string `json:"club"`
	Season   string `json:"season,omitempty"`
	Division string `json:"division,omitempty"`
	Note     string `json:"note,omitempty"`
}

type careerEntryResponse struct {
	ID string `json:"id"`
}

func (m *Module) handleAddCareer(w http.ResponseWriter, r *http.Request) {
	var body careerEntryRequest
	if err := httpjson.Decode(w, r, &body); err != nil {
		httpjson.WriteError(w, r, err)
		return
	}
	actor := requestctx.ActorFromContext(r.Context())
	entry, err := m.directory.AddCareerEntry(r.Context(), actor.UserID, directory.CareerEntryParams{
		Club:     body.Club,
		Season:   body.Season,
		Division: body.Division,
		Note:     body.Note,
	})
	if err != nil {
		httpjson.WriteError(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusCreated, careerEntryResponse{ID: entry.ID})
}

type videoRequest struct {
	YouTubeURL string `json:"youtube_url"`
	Title      string `json:"title,omitempty"`
}

type videoResponse struct {
	ID string `json:"id"`
}

func (m *Module) handleAddVideo(w http.ResponseWriter, r *http.Request) {
	var body videoRequest
	if err := httpjson.Decode(w, r, &body); err != nil {
		httpjson.WriteError(w, r, err)
		return
	}
	actor := requestctx.ActorFromContext(r.Context())
	video, err := m.directory.AddVideo(r.Context(), actor.UserID, directory.VideoParams{
		YouTubeURL: body.YouTubeURL,
		Title:      body.Title,
	})
	if err != nil {
		httpjson.WriteError(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusCreated, videoResponse{ID: video.ID})
}

func (m *Module) handleRemoveVideo(w http.ResponseWriter, r *http.Request) {
	actor := requestctx.ActorFromContext(r.Context())
	if err := m.directory.RemoveVideo(r.Context(), actor.UserID, r.PathValue("id")); err != nil {
		httpjson.WriteError(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusNoContent, nil)
}

type endorsementRequest struct {
	CoachName string `json:"coach_name"`
	Academy   string `json:"academy,omitempty"`
	Quote     string `json:"quote,omitempty"`
}

type endorsementResponse struct {
	ID string `json:"id"`
}

func (m *Module) handleAddEndorsement(w http.ResponseWriter, r *http.Request) {
	var body endorsementRequest
	if err := httpjson.Decode(w, r, &body); err != nil {
		httpjson.WriteError(w, r, err)
		return
	}
	endorsement, err := m.directory.AddEndorsement(r.Context(), directory.EndorsementParams{
		PlayerID:  r.PathValue("id"),
		CoachName: body.CoachName,
		Academy:   body.Academy,
		Quote:     body.Quote,
	})
	if err != nil {
		httpjson.WriteError(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusCreated, endorsementResponse{ID: endorsement.ID})
}

type agentProfileResponse struct {
	UserID    string    `json:"user_id"`
	FullName  string    `json:"full_name"`
	Agency    string    `json:"agency,omitempty"`
	Country   string    `json:"country,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (m *Module) handleGetAgent(w http.ResponseWriter, r *http.Request) {
	agent, err := m.directory.GetAgentProfile(r.Context(), r.PathValue("id"))
	if err != nil {
		httpjson.WriteError(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusOK, agentProfileResponse{
		UserID:    agent.UserID,
		FullName:  agent.FullName,
		Agency:    agent.Agency,
		Country:   agent.Country,
		Bio:       agent.Bio,
		AvatarURL: agent.AvatarURL,
		UpdatedAt: agent.UpdatedAt,
	})
}
