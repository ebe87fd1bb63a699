// Package directory exposes player and agent profiles, season statistics,
// and the agent-facing browse surface. Player contact details stay hidden
// until the contact gate opens for the viewing agent.
package directory

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/pitchsideapp/pitchside/internal/platform/id"
	"github.com/pitchsideapp/pitchside/internal/platform/requestctx"
	"github.com/pitchsideapp/pitchside/internal/services/directory/storage"
)

// Sentinel errors returned by directory operations.
var (
	ErrNotFound   = errors.New("profile not found")
	ErrForbidden  = errors.New("viewer is not allowed to perform this action")
	ErrValidation = errors.New("invalid directory input")
)

const (
	bioMaxLength   = 1500
	quoteMaxLength = 500
)

// ContactGate reports whether an agent has earned access to a player's
// contact details. Acceptance of a contact request is the only way in.
type ContactGate interface {
	AllowContact(ctx context.Context, agentID string, playerID string) (bool, error)
}

// Service coordinates directory reads and writes over a DirectoryStore.
type Service struct {
	store storage.DirectoryStore
	gate  ContactGate
	clock func() time.Time
	newID func() (string, error)
}

// NewService wires a directory service over its store and contact gate.
func NewService(store storage.DirectoryStore, gate ContactGate) *Service {
	return &Service{
		store: store,
		gate:  gate,
		clock: time.Now,
		newID: id.NewID,
	}
}

// PlayerProfileParams carries the editable fields of a player profile.
type PlayerProfileParams struct {
	FullName      string
	DateOfBirth   time.Time
	Position      string
	Country       string
	City          string
	HeightCM      int
	WeightKG      int
	PreferredFoot string
	Availability  string
	Bio           string
	AvatarURL     string
	Email         string
	Phone         string
}

// SavePlayerProfile creates or updates the caller's own player profile.
func (s *Service) SavePlayerProfile(ctx context.Context, userID string, params PlayerProfileParams) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return fmt.Errorf("%w: user id is required", ErrValidation)
	}
	fullName := strings.TrimSpace(params.FullName)
	if fullName == "" {
		return fmt.Errorf("%w: full name is required", ErrValidation)
	}
	if len(params.Bio) > bioMaxLength {
		return fmt.Errorf("%w: bio exceeds %d characters", ErrValidation, bioMaxLength)
	}
	if params.HeightCM < 0 || params.WeightKG < 0 {
		return fmt.Errorf("%w: physical attributes must not be negative", ErrValidation)
	}

	now := s.clock().UTC()
	profile := storage.PlayerProfile{
		UserID:        userID,
		FullName:      fullName,
		DateOfBirth:   params.DateOfBirth,
		Position:      strings.TrimSpace(params.Position),
		Country:       strings.TrimSpace(params.Country),
		City:          strings.TrimSpace(params.City),
		HeightCM:      params.HeightCM,
		WeightKG:      params.WeightKG,
		PreferredFoot: strings.TrimSpace(params.PreferredFoot),
		Availability:  strings.TrimSpace(params.Availability),
		Bio:           strings.TrimSpace(params.Bio),
		AvatarURL:     strings.TrimSpace(params.AvatarURL),
		Email:         strings.TrimSpace(params.Email),
		Phone:         strings.TrimSpace(params.Phone),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if existing, err := s.store.GetPlayerProfile(ctx, userID); err == nil {
		profile.CreatedAt = existing.CreatedAt
	} else if !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("load player profile: %w", err)
	}
	if err := s.store.UpsertPlayerProfile(ctx, profile); err != nil {
		return fmt.Errorf("save player profile: %w", err)
	}
	return nil
}

// AgentProfileParams carries the editable fields of an agent profile.
type AgentProfileParams struct {
	FullName  string
	Agency    string
	Country   string
	Bio       string
	AvatarURL string
}

// SaveAgentProfile creates or updates the caller's own agent profile.
func (s *Service) SaveAgentProfile(ctx context.Context, userID string, params AgentProfileParams) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return fmt.Errorf("%w: user id is required", ErrValidation)
	}
	fullName := strings.TrimSpace(params.FullName)
	if fullName == "" {
		return fmt.Errorf("%w: full name is required", ErrValidation)
	}
	if len(params.Bio) > bioMaxLength {
		return fmt.Errorf("%w: bio exceeds %d characters", ErrValidation, bioMaxLength)
	}

	now := s.clock().UTC()
	profile := storage.AgentProfile{
		UserID:    userID,
		FullName:  fullName,
		Agency:    strings.TrimSpace(params.Agency),
		Country:   strings.TrimSpace(params.Country),
		Bio:       strings.TrimSpace(params.Bio),
		AvatarURL: strings.TrimSpace(params.AvatarURL),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if existing, err := s.store.GetAgentProfile(ctx, userID); err == nil {
		profile.CreatedAt = existing.CreatedAt
	} else if !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("load agent profile: %w", err)
	}
	if err := s.store.UpsertAgentProfile(ctx, profile); err != nil {
		return fmt.Errorf("save agent profile: %w", err)
	}
	return nil
}

// GetAgentProfile returns one agent's public profile.
func (s *Service) GetAgentProfile(ctx context.Context, userID string) (storage.AgentProfile, error) {
	profile, err := s.store.GetAgentProfile(ctx, strings.TrimSpace(userID))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return storage.AgentProfile{}, ErrNotFound
		}
		return storage.AgentProfile{}, fmt.Errorf("get agent profile: %w", err)
	}
	return profile, nil
}

// PlayerExists reports whether a player profile exists. It backs the
// contact-request engine's player lookup.
func (s *Service) PlayerExists(ctx context.Context, playerID string) (bool, error) {
	return s.store.PlayerExists(ctx, strings.TrimSpace(playerID))
}

// PlayerPositions returns the playing position for each known player id.
// Unknown ids are skipped rather than reported as errors.
func (s *Service) PlayerPositions(ctx context.Context, playerIDs []string) (map[string]string, error) {
	positions := make(map[string]string, len(playerIDs))
	for _, playerID := range playerIDs {
		profile, err := s.store.GetPlayerProfile(ctx, strings.TrimSpace(playerID))
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("get player profile: %w", err)
		}
		positions[profile.UserID] = profile.Position
	}
	return positions, nil
}

// ContactDetails carries a player's gated contact channels.
type ContactDetails struct {
	Email string
	Phone string
}

// PlayerView is the full profile page for one player. Contact is nil
// unless the viewer has earned access.
type PlayerView struct {
	Profile      storage.PlayerProfile
	Age          int
	Seasons      []SeasonSummary
	Career       []storage.CareerEntry
	Endorsements []storage.Endorsement
	Videos       []storage.Video
	Contact      *ContactDetails
}

// GetPlayerView assembles a player's profile page for the given viewer.
// Contact details appear only for the player themself, admins, and agents
// cleared by the contact gate.
func (s *Service) GetPlayerView(ctx context.Context, viewer requestctx.Actor, playerID string) (PlayerView, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return PlayerView{}, fmt.Errorf("%w: player id is required", ErrValidation)
	}

	profile, err := s.store.GetPlayerProfile(ctx, playerID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return PlayerView{}, ErrNotFound
		}
		return PlayerView{}, fmt.Errorf("get player profile: %w", err)
	}

	view := PlayerView{
		Profile: profile,
		Age:     ageAt(profile.DateOfBirth, s.clock().UTC()),
	}

	seasons, err := s.store.ListSeasonStats(ctx, playerID)
	if err != nil {
		return PlayerView{}, fmt.Errorf("list season stats: %w", err)
	}
	for _, stats := range seasons {
		view.Seasons = append(view.Seasons, summarize(stats))
	}

	if view.Career, err = s.store.ListCareerEntries(ctx, playerID); err != nil {
		return PlayerView{}, fmt.Errorf("list career entries: %w", err)
	}
	if view.Endorsements, err = s.store.ListEndorsements(ctx, playerID); err != nil {
		return PlayerView{}, fmt.Errorf("list endorsements: %w", err)
	}
	if view.Videos, err = s.store.ListVideos(ctx, playerID); err != nil {
		return PlayerView{}, fmt.Errorf("list videos: %w", err)
	}

	allowed, err := s.contactAllowed(ctx, viewer, playerID)
	if err != nil {
		return PlayerView{}, err
	}
	if allowed {
		view.Contact = &ContactDetails{Email: profile.Email, Phone: profile.Phone}
	}
	// Contact channels never ride along on the public profile fields.
	view.Profile.Email = ""
	view.Profile.Phone = ""
	return view, nil
}

func (s *Service) contactAllowed(ctx context.Context, viewer requestctx.Actor, playerID string) (bool, error) {
	switch {
	case viewer.UserID == "":
		return false, nil
	case viewer.UserID == playerID:
		return true, nil
	case viewer.Role == requestctx.RoleAdmin:
		return true, nil
	case viewer.Role == requestctx.RoleAgent:
		allowed, err := s.gate.AllowContact(ctx, viewer.UserID, playerID)
		if err != nil {
			return false, fmt.Errorf("check contact gate: %w", err)
		}
		return allowed, nil
	default:
		return false, nil
	}
}

// BrowseParams narrows the agent-facing player listing.
type BrowseParams struct {
	Position  string
	Country   string
	MinAge    int
	MaxAge    int
	PageSize  int
	PageToken string
}

const (
	defaultBrowsePageSize = 20
	maxBrowsePageSize     = 100
)

// PlayerCard is one row of the browse listing: public profile fields,
// the latest season summary, and an endorsement badge. No contact details.
type PlayerCard struct {
	UserID       string
	FullName     string
	Age          int
	Position     string
	Country      string
	City         string
	Availability string
	AvatarURL    string
	Latest       SeasonSummary
	Endorsed     bool
}

// BrowsePage is one page of the browse listing.
type BrowsePage struct {
	Cards         []PlayerCard
	NextPageToken string
}

// BrowsePlayers lists players for discovery, filtered by position, country,
// and age bracket.
func (s *Service) BrowsePlayers(ctx context.Context, params BrowseParams) (BrowsePage, error) {
	if params.MinAge < 0 || params.MaxAge < 0 {
		return BrowsePage{}, fmt.Errorf("%w: age bounds must not be negative", ErrValidation)
	}
	if params.MaxAge > 0 && params.MinAge > params.MaxAge {
		return BrowsePage{}, fmt.Errorf("%w: minimum age exceeds maximum age", ErrValidation)
	}
	pageSize := params.PageSize
	if pageSize <= 0 {
		pageSize = defaultBrowsePageSize
	}
	if pageSize > maxBrowsePageSize {
		pageSize = maxBrowsePageSize
	}

	now := s.clock().UTC()
	page, err := s.store.ListPlayers(ctx, storage.PlayerFilter{
		Position:  strings.TrimSpace(params.Position),
		Country:   strings.TrimSpace(params.Country),
		MinAge:    params.MinAge,
		MaxAge:    params.MaxAge,
		Now:       now,
		PageSize:  pageSize,
		PageToken: strings.TrimSpace(params.PageToken),
	})
	if err != nil {
		return BrowsePage{}, fmt.Errorf("list players: %w", err)
	}

	playerIDs := make([]string, 0, len(page.Players))
	for _, profile := range page.Players {
		playerIDs = append(playerIDs, profile.UserID)
	}
	endorsed, err := s.store.EndorsedPlayerIDs(ctx, playerIDs)
	if err != nil {
		return BrowsePage{}, fmt.Errorf("list endorsed players: %w", err)
	}

	result := BrowsePage{
		Cards:         make([]PlayerCard, 0, len(page.Players)),
		NextPageToken: page.NextPageToken,
	}
	for _, profile := range page.Players {
		card := PlayerCard{
			UserID:       profile.UserID,
			FullName:     profile.FullName,
			Age:          ageAt(profile.DateOfBirth, now),
			Position:     profile.Position,
			Country:      profile.Country,
			City:         profile.City,
			Availability: profile.Availability,
			AvatarURL:    profile.AvatarURL,
			Endorsed:     endorsed[profile.UserID],
		}
		latest, err := s.store.LatestSeasonStats(ctx, profile.UserID)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return BrowsePage{}, fmt.Errorf("latest season stats: %w", err)
		}
		if err == nil {
			card.Latest = summarize(latest)
		}
		result.Cards = append(result.Cards, card)
	}
	return result, nil
}

// AverageLatestRating averages the derived rating of every player's most
// recent season. Players without stat lines are excluded. Returns zero when
// no stats exist.
func (s *Service) AverageLatestRating(ctx context.Context) (float64, error) {
	all, err := s.store.ListAllSeasonStats(ctx)
	if err != nil {
		return 0, fmt.Errorf("list season stats: %w", err)
	}
	var (
		total float64
		seen  = make(map[string]bool)
	)
	// Lines arrive newest season first per player, so the first line per
	// user id is their latest.
	for _, stats := range all {
		if seen[stats.UserID] {
			continue
		}
		seen[stats.UserID] = true
		total += summarize(stats).Rating
	}
	if len(seen) == 0 {
		return 0, nil
	}
	return round1(total / float64(len(seen))), nil
}

// SeasonStatsParams carries one season's raw numbers for a player.
type SeasonStatsParams struct {
	Season        string
	Goals         int
	Assists       int
	Matches       int
	MinutesPlayed int
	PassAccuracy  float64
	ShotsOnTarget int
}

// RecordSeasonStats creates or replaces the caller's stat line for a season.
func (s *Service) RecordSeasonStats(ctx context.Context, userID string, params SeasonStatsParams) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return fmt.Errorf("%w: user id is required", ErrValidation)
	}
	season := strings.TrimSpace(params.Season)
	if season == "" {
		return fmt.Errorf("%w: season is required", ErrValidation)
	}
	if params.Goals < 0 || params.Assists < 0 || params.Matches < 0 || params.MinutesPlayed < 0 || params.ShotsOnTarget < 0 {
		return fmt.Errorf("%w: statistics must not be negative", ErrValidation)
	}
	if params.PassAccuracy < 0 || params.PassAccuracy > 100 {
		return fmt.Errorf("%w: pass accuracy must be between 0 and 100", ErrValidation)
	}

	err := s.store.UpsertSeasonStats(ctx, storage.SeasonStats{
		UserID:        userID,
		Season:        season,
		Goals:         params.Goals,
		Assists:       params.Assists,
		Matches:       params.Matches,
		MinutesPlayed: params.MinutesPlayed,
		PassAccuracy:  params.PassAccuracy,
		ShotsOnTarget: params.ShotsOnTarget,
		UpdatedAt:     s.clock().UTC(),
	})
	if err != nil {
		return fmt.Errorf("record season stats: %w", err)
	}
	return nil
}

// CareerEntryParams carries one club spell for a player's history.
type CareerEntryParams struct {
	Club     string
	Season   string
	Division string
	Note     string
}

// AddCareerEntry appends a club spell to the caller's career history.
func (s *Service) AddCareerEntry(ctx context.Context, userID string, params CareerEntryParams) (storage.CareerEntry, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return storage.CareerEntry{}, fmt.Errorf("%w: user id is required", ErrValidation)
	}
	club := strings.TrimSpace(params.Club)
	if club == "" {
		return storage.CareerEntry{}, fmt.Errorf("%w: club is required", ErrValidation)
	}

	entryID, err := s.newID()
	if err != nil {
		return storage.CareerEntry{}, fmt.Errorf("generate entry id: %w", err)
	}
	entry := storage.CareerEntry{
		ID:        entryID,
		UserID:    userID,
		Club:      club,
		Season:    strings.TrimSpace(params.Season),
		Division:  strings.TrimSpace(params.Division),
		Note:      strings.TrimSpace(params.Note),
		CreatedAt: s.clock().UTC(),
	}
	if err := s.store.AddCareerEntry(ctx, entry); err != nil {
		return storage.CareerEntry{}, fmt.Errorf("add career entry: %w", err)
	}
	return entry, nil
}

// EndorsementParams carries one coach endorsement for a player.
type EndorsementParams struct {
	PlayerID  string
	CoachName string
	Academy   string
	Quote     string
}

// AddEndorsement records a coach endorsement against a player.
func (s *Service) AddEndorsement(ctx context.Context, params EndorsementParams) (storage.Endorsement, error) {
	playerID := strings.TrimSpace(params.PlayerID)
	if playerID == "" {
		return storage.Endorsement{}, fmt.Errorf("%w: player id is required", ErrValidation)
	}
	coachName := strings.TrimSpace(params.CoachName)
	if coachName == "" {
		return storage.Endorsement{}, fmt.Errorf("%w: coach name is required", ErrValidation)
	}
	if len(params.Quote) > quoteMaxLength {
		return storage.Endorsement{}, fmt.Errorf("%w: quote exceeds %d characters", ErrValidation, quoteMaxLength)
	}
	exists, err := s.store.PlayerExists(ctx, playerID)
	if err != nil {
		return storage.Endorsement{}, fmt.Errorf("check player: %w", err)
	}
	if !exists {
		return storage.Endorsement{}, ErrNotFound
	}

	endorsementID, err := s.newID()
	if err != nil {
		return storage.Endorsement{}, fmt.Errorf("generate endorsement id: %w", err)
	}
	endorsement := storage.Endorsement{
		ID:        endorsementID,
		PlayerID:  playerID,
		CoachName: coachName,
		Academy:   strings.TrimSpace(params.Academy),
		Quote:     strings.TrimSpace(params.Quote),
		CreatedAt: s.clock().UTC(),
	}
	if err := s.store.AddEndorsement(ctx, endorsement); err != nil {
		return storage.Endorsement{}, fmt.Errorf("add endorsement: %w", err)
	}
	return endorsement, nil
}

// VideoParams carries one highlight video for a player.
type VideoParams struct {
	YouTubeURL string
	Title      string
}

// AddVideo attaches a highlight video to the caller's profile.
func (s *Service) AddVideo(ctx context.Context, userID string, params VideoParams) (storage.Video, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return storage.Video{}, fmt.Errorf("%w: user id is required", ErrValidation)
	}
	rawURL := strings.TrimSpace(params.YouTubeURL)
	if rawURL == "" {
		return storage.Video{}, fmt.Errorf("%w: video url is required", ErrValidation)
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return storage.Video{}, fmt.Errorf("%w: video url must be absolute", ErrValidation)
	}

	videoID, err := s.newID()
	if err != nil {
		return storage.Video{}, fmt.Errorf("generate video id: %w", err)
	}
	video := storage.Video{
		ID:         videoID,
		UserID:     userID,
		YouTubeURL: rawURL,
		Title:      strings.TrimSpace(params.Title),
		CreatedAt:  s.clock().UTC(),
	}
	if err := s.store.AddVideo(ctx, video); err != nil {
		return storage.Video{}, fmt.Errorf("add video: %w", err)
	}
	return video, nil
}

// RemoveVideo deletes one of the caller's own videos.
func (s *Service) RemoveVideo(ctx context.Context, userID string, videoID string) error {
	userID = strings.TrimSpace(userID)
	videoID = strings.TrimSpace(videoID)
	if userID == "" || videoID == "" {
		return fmt.Errorf("%w: user id and video id are required", ErrValidation)
	}

	video, err := s.store.GetVideo(ctx, videoID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("get video: %w", err)
	}
	if video.UserID != userID {
		return ErrForbidden
	}
	if err := s.store.DeleteVideo(ctx, videoID); err != nil {
		return fmt.Errorf("delete video: %w", err)
	}
	return nil
}
