// Package browse exposes agent-facing player discovery and the player
// detail view with its gated contact card.
package browse

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pitchsideapp/pitchside/internal/platform/requestctx"
	"github.com/pitchsideapp/pitchside/internal/services/api/platform/apperrors"
	"github.com/pitchsideapp/pitchside/internal/services/api/platform/authn"
	"github.com/pitchsideapp/pitchside/internal/services/api/platform/httpjson"
	"github.com/pitchsideapp/pitchside/internal/services/directory"
)

// Module serves browse endpoints over the directory service.
type Module struct {
	directory *directory.Service
}

// New creates the browse module.
func New(directoryService *directory.Service) *Module {
	return &Module{directory: directoryService}
}

// RegisterRoutes mounts the discovery endpoints.
func (m *Module) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/players", authn.Require(m.handleBrowse, requestctx.RoleAgent, requestctx.RoleAdmin))
	mux.HandleFunc("GET /v1/players/{id}", authn.Require(m.handleDetail))
}

// ageBracket translates the fixed browse brackets to age bounds.
func ageBracket(value string) (int, int, bool) {
	switch strings.TrimSpace(value) {
	case "":
		return 0, 0, true
	case "16-18":
		return 16, 18, true
	case "19-21":
		return 19, 21, true
	case "22-25":
		return 22, 25, true
	case "26+":
		return 26, 0, true
	default:
		return 0, 0, false
	}
}

type seasonSummaryPayload struct {
	Season         string  `json:"season"`
	Goals          int     `json:"goals"`
	Assists        int     `json:"assists"`
	Matches        int     `json:"matches"`
	MinutesPlayed  int     `json:"minutes_played"`
	PassAccuracy   float64 `json:"pass_accuracy"`
	ShotsOnTarget  int     `json:"shots_on_target"`
	GoalsPerGame   float64 `json:"goals_per_game"`
	AssistsPerGame float64 `json:"assists_per_game"`
	Rating         float64 `json:"rating"`
}

func toSeasonPayload(summary directory.SeasonSummary) seasonSummaryPayload {
	return seasonSummaryPayload{
		Season:         summary.Season,
		Goals:          summary.Goals,
		Assists:        summary.Assists,
		Matches:        summary.Matches,
		MinutesPlayed:  summary.MinutesPlayed,
		PassAccuracy:   summary.PassAccuracy,
		ShotsOnTarget:  summary.ShotsOnTarget,
		GoalsPerGame:   summary.GoalsPerGame,
		AssistsPerGame: summary.AssistsPerGame,
		Rating:         summary.Rating,
	}
}

type playerCardPayload struct {
	UserID       string                `json:"user_id"`
	FullName     string                `json:"full_name"`
	Age          int                   `json:"age,omitempty"`
	Position     string                `json:"position,omitempty"`
	Country      string                `json:"country,omitempty"`
	City         string                `json:"city,omitempty"`
	Availability string                `json:"availability,omitempty"`
	AvatarURL    string                `json:"avatar_url,omitempty"`
	Latest       *seasonSummaryPayload `json:"latest_season,omitempty"`
	Endorsed     bool                  `json:"endorsed"`
}

type browseResponse struct {
	Players       []playerCardPayload `json:"players"`
	NextPageToken string              `json:"next_page_token,omitempty"`
}

func (m *Module) handleBrowse(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	minAge, maxAge, ok := ageBracket(query.Get("age_bracket"))
	if !ok {
		httpjson.WriteError(w, r, apperrors.New(apperrors.KindInvalid, "unrecognized age bracket"))
		return
	}
	pageSize := 0
	if raw := strings.TrimSpace(query.Get("page_size")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			httpjson.WriteError(w, r, apperrors.New(apperrors.KindInvalid, "page_size must be a non-negative integer"))
			return
		}
		pageSize = parsed
	}

	page, err := m.directory.BrowsePlayers(r.Context(), directory.BrowseParams{
		Position:  query.Get("position"),
		Country:   query.Get("country"),
		MinAge:    minAge,
		MaxAge:    maxAge,
		PageSize:  pageSize,
		PageToken: query.Get("page_token"),
	})
	if err != nil {
		httpjson.WriteError(w, r, err)
		return
	}

	response := browseResponse{
		Players:       make([]playerCardPayload, 0, len(page.Cards)),
		NextPageToken: page.NextPageToken,
	}
	for _, card := range page.Cards {
		payload := playerCardPayload{
			UserID:       card.UserID,
			FullName:     card.FullName,
			Age:          card.Age,
			Position:     card.Position,
			Country:      card.Country,
			City:         card.City,
			Availability: card.Availability,
			AvatarURL:    card.AvatarURL,
			Endorsed:     card.Endorsed,
		}
		if card.Latest.Season != "" {
			latest := toSeasonPayload(card.Latest)
			payload.Latest = &latest
		}
		response.Players = append(response.Players, payload)
	}
	httpjson.Write(w, http.StatusOK, response)
}

type contactPayload struct {
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type careerEntryPayload struct {
	ID       string `json:"id"`
	Club     string `json:"club"`
	Season   string `json:"season,omitempty"`
	Division string `json:"division,omitempty"`
	Note     string `json:"note,omitempty"`
}

type endorsementPayload struct {
	ID        string `json:"id"`
	CoachName string `json:"coach_name"`
	Academy   string `json:"academy,omitempty"`
	Quote     string `json:"quote,omitempty"`
}

type videoPayload struct {
	ID         string `json:"id"`
	YouTubeURL string `json:"youtube_url"`
	Title      string `json:"title,omitempty"`
}

type playerDetailResponse struct {
	UserID        string                 `json:"user_id"`
	FullName      string                 `json:"full_name"`
	Age           int                    `json:"age,omitempty"`
	Position      string                 `json:"position,omitempty"`
	Country       string                 `json:"country,omitempty"`
	City          string                 `json:"city,omitempty"`
	HeightCM      int                    `json:"height_cm,omitempty"`
	WeightKG      int                    `json:"weight_kg,omitempty"`
	PreferredFoot string                 `json:"preferred_foot,omitempty"`
	Availability  string                 `json:"availability,omitempty"`
	Bio           string                 `json:"bio,omitempty"`
	AvatarURL     string                 `json:"avatar_url,omitempty"`
	Seasons       []seasonSummaryPayload `json:"seasons"`
	Career        []careerEntryPayload   `json:"career"`
	Endorsements  []endorsementPayload   `json:"endorsements"`
	Videos        []videoPayload         `json:"videos"`
	Contact       *contactPayload        `json:"contact,omitempty"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

func (m *Module) handleDetail(w http.ResponseWriter, r *http.Request) {
	actor := requestctx.ActorFromContext(r.Context())
	view, err := m.directory.GetPlayerView(r.Context(), actor, r.PathValue("id"))
	if err != nil {
		httpjson.WriteError(w, r, err)
		return
	}

	response := playerDetailResponse{
		UserID:        view.Profile.UserID,
		FullName:      view.Profile.FullName,
		Age:           view.Age,
		Position:      view.Profile.Position,
		Country:       view.Profile.Country,
		City:          view.Profile.City,
		HeightCM:      view.Profile.HeightCM,
		WeightKG:      view.Profile.WeightKG,
		PreferredFoot: view.Profile.PreferredFoot,
		Availability:  view.Profile.Availability,
		Bio:           view.Profile.Bio,
		AvatarURL:     view.Profile.AvatarURL,
		Seasons:       make([]seasonSummaryPayload, 0, len(view.Seasons)),
		Career:        make([]careerEntryPayload, 0, len(view.Career)),
		Endorsements:  make([]endorsementPayload, 0, len(view.Endorsements)),
		Videos:        make([]videoPayload, 0, len(view.Videos)),
		UpdatedAt:     view.Profile.UpdatedAt,
	}
	for _, season := range view.Seasons {
		response.Seasons = append(response.Seasons, toSeasonPayload(season))
	}
	for _, entry := range view.Career {
		response.Career = append(response.Career, careerEntryPayload{
			ID:       entry.ID,
			Club:     entry.Club,
			Season:   entry.Season,
			Division: entry.Division,
			Note:     entry.Note,
		})
	}
	for _, endorsement := range view.Endorsements {
		response.Endorsements = append(response.Endorsements, endorsementPayload{
			ID:        endorsement.ID,
			CoachName: endorsement.CoachName,
			Academy:   endorsement.Academy,
			Quote:     endorsement.Quote,
		})
	}
	for _, video := range view.Videos {
		response.Videos = append(response.Videos, videoPayload{
			ID:         video.ID,
			YouTubeURL: video.YouTubeURL,
			Title:      video.Title,
		})
	}
	if view.Contact != nil {
		response.Contact = &contactPayload{Email: view.Contact.Email, Phone: view.Contact.Phone}
	}
	httpjson.Write(w, http.StatusOK, response)
}
