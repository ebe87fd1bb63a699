// Package seed populates a local data directory with demo marketplace data:
// accounts, player profiles, season stats, and contact requests in every
// lifecycle state.
package seed

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	entrypoint "github.com/pitchsideapp/pitchside/internal/platform/cmd"
	"github.com/pitchsideapp/pitchside/internal/platform/id"
	"github.com/pitchsideapp/pitchside/internal/services/api/app"
	"github.com/pitchsideapp/pitchside/internal/services/directory"
	identitystorage "github.com/pitchsideapp/pitchside/internal/services/identity/storage"
	"github.com/pitchsideapp/pitchside/internal/services/requests"
	requeststorage "github.com/pitchsideapp/pitchside/internal/services/requests/storage"
	"github.com/pitchsideapp/pitchside/internal/services/shortlist"
)

// Config holds seed command configuration.
type Config struct {
	DataDir string `env:"PITCHSIDE_DATA_DIR" envDefault:"data"`
	Reset   bool
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "directory holding the service databases")
	fs.BoolVar(&cfg.Reset, "reset", false, "delete existing databases before seeding")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

type playerFixture struct {
	email         string
	name          string
	dateOfBirth   string
	position      string
	country       string
	city          string
	heightCM      int
	preferredFoot string
	availability  string
	bio           string
	phone         string
	stats         []directory.SeasonStatsParams
	clubs         []directory.CareerEntryParams
	endorsement   *directory.EndorsementParams
	videoURL      string
}

var playerFixtures = []playerFixture{
	{
		email:         "marco.jensen@example.com",
		name:          "Marco Jensen",
		dateOfBirth:   "2007-04-12",
		position:      "striker",
		country:       "DK",
		city:          "Aarhus",
		heightCM:      183,
		preferredFoot: "right",
		availability:  "available",
		bio:           "Academy striker with a habit of finding space in the box.",
		phone:         "+45 2041 8876",
		stats: []directory.SeasonStatsParams{
			{Season: "2024/25", Goals: 9, Assists: 4, Matches: 22, MinutesPlayed: 1710, PassAccuracy: 78.2, ShotsOnTarget: 31},
			{Season: "2025/26", Goals: 12, Assists: 7, Matches: 24, MinutesPlayed: 2015, PassAccuracy: 81.5, ShotsOnTarget: 44},
		},
		clubs: []directory.CareerEntryParams{
			{Club: "AGF U17", Season: "2023/24", Division: "U17 Ligaen"},
			{Club: "AGF U19", Season: "2024/25", Division: "U19 Ligaen"},
		},
		endorsement: &directory.EndorsementParams{CoachName: "Henrik Dalgaard", Academy: "AGF Academy", Quote: "Best movement off the ball I have coached in years."},
		videoURL:    "https://www.youtube.com/watch?v=demo-marco-highlights",
	},
	{
		email:         "ines.ferreira@example.com",
		name:          "Ines Ferreira",
		dateOfBirth:   "2005-11-03",
		position:      "midfielder",
		country:       "PT",
		city:          "Braga",
		heightCM:      168,
		preferredFoot: "left",
		availability:  "contract_ending",
		bio:           "Box-to-box midfielder, two-footed, reads the game early.",
		phone:         "+351 912 334 785",
		stats: []directory.SeasonStatsParams{
			{Season: "2025/26", Goals: 5, Assists: 11, Matches: 26, MinutesPlayed: 2290, PassAccuracy: 88.9, ShotsOnTarget: 18},
		},
		clubs: []directory.CareerEntryParams{
			{Club: "SC Braga B", Season: "2024/25", Division: "Liga 3"},
		},
		videoURL: "https://www.youtube.com/watch?v=demo-ines-highlights",
	},
	{
		email:         "kofi.owusu@example.com",
		name:          "Kofi Owusu",
		dateOfBirth:   "2008-02-27",
		position:      "defender",
		country:       "GH",
		city:          "Accra",
		heightCM:      189,
		preferredFoot: "right",
		availability:  "available",
		bio:           "Centre back. Wins everything in the air.",
		phone:         "+233 24 555 0198",
		stats: []directory.SeasonStatsParams{
			{Season: "2025/26", Goals: 1, Assists: 0, Matches: 18, MinutesPlayed: 1620, PassAccuracy: 74.0, ShotsOnTarget: 3},
		},
	},
}

type agentFixture struct {
	email   string
	name    string
	agency  string
	country string
}

var agentFixtures = []agentFixture{
	{email: "silva.agent@example.com", name: "Paulo Silva", agency: "Iberia Talent Group", country: "PT"},
	{email: "rivera.agent@example.com", name: "Carmen Rivera", agency: "Northline Sports", country: "ES"},
}

// Run seeds the marketplace databases with demo data.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if cfg.Reset {
		for _, name := range []string{"requests.db", "directory.db", "shortlist.db", "identity.db"} {
			if err := os.Remove(filepath.Join(cfg.DataDir, name)); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("reset %s: %w", name, err)
			}
		}
	}

	stores, err := app.OpenStores(cfg.DataDir)
	if err != nil {
		return err
	}
	defer stores.Close()

	engine := requests.NewEngine(stores.Requests, stores.Directory)
	directoryService := directory.NewService(stores.Directory, engine)
	shortlistService := shortlist.NewService(stores.Shortlist, directoryService)

	now := time.Now().UTC()
	createUser := func(email, name string, role identitystorage.Role) (string, error) {
		userID, err := id.NewID()
		if err != nil {
			return "", fmt.Errorf("generate user id: %w", err)
		}
		err = stores.Identity.CreateUser(ctx, identitystorage.User{
			ID:          userID,
			Email:       email,
			DisplayName: name,
			Role:        role,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return "", fmt.Errorf("create user %s (re-run with -reset?): %w", email, err)
		}
		return userID, nil
	}

	playerIDs := make([]string, 0, len(playerFixtures))
	for _, fixture := range playerFixtures {
		playerID, err := createUser(fixture.email, fixture.name, identitystorage.RolePlayer)
		if err != nil {
			return err
		}
		dateOfBirth, err := time.Parse("2006-01-02", fixture.dateOfBirth)
		if err != nil {
			return fmt.Errorf("parse date of birth for %s: %w", fixture.email, err)
		}
		err = directoryService.SavePlayerProfile(ctx, playerID, directory.PlayerProfileParams{
			FullName:      fixture.name,
			DateOfBirth:   dateOfBirth,
			Position:      fixture.position,
			Country:       fixture.country,
			City:          fixture.city,
			HeightCM:      fixture.heightCM,
			PreferredFoot: fixture.preferredFoot,
			Availability:  fixture.availability,
			Bio:           fixture.bio,
			Email:         fixture.email,
			Phone:         fixture.phone,
		})
		if err != nil {
			return fmt.Errorf("save profile for %s: %w", fixture.email, err)
		}
		for _, stats := range fixture.stats {
			if err := directoryService.RecordSeasonStats(ctx, playerID, stats); err != nil {
				return fmt.Errorf("record stats for %s: %w", fixture.email, err)
			}
		}
		for _, club := range fixture.clubs {
			if _, err := directoryService.AddCareerEntry(ctx, playerID, club); err != nil {
				return fmt.Errorf("add career entry for %s: %w", fixture.email, err)
			}
		}
		if fixture.endorsement != nil {
			endorsement := *fixture.endorsement
			endorsement.PlayerID = playerID
			if _, err := directoryService.AddEndorsement(ctx, endorsement); err != nil {
				return fmt.Errorf("add endorsement for %s: %w", fixture.email, err)
			}
		}
		if fixture.videoURL != "" {
			_, err := directoryService.AddVideo(ctx, playerID, directory.VideoParams{
				YouTubeURL: fixture.videoURL,
				Title:      fixture.name + " highlights",
			})
			if err != nil {
				return fmt.Errorf("add video for %s: %w", fixture.email, err)
			}
		}
		playerIDs = append(playerIDs, playerID)
	}

	agentIDs := make([]string, 0, len(agentFixtures))
	for _, fixture := range agentFixtures {
		agentID, err := createUser(fixture.email, fixture.name, identitystorage.RoleAgent)
		if err != nil {
			return err
		}
		err = directoryService.SaveAgentProfile(ctx, agentID, directory.AgentProfileParams{
			FullName: fixture.name,
			Agency:   fixture.agency,
			Country:  fixture.country,
		})
		if err != nil {
			return fmt.Errorf("save agent profile for %s: %w", fixture.email, err)
		}
		agentIDs = append(agentIDs, agentID)
	}

	if _, err := createUser("ops@example.com", "Platform Ops", identitystorage.RoleAdmin); err != nil {
		return err
	}

	// One request per lifecycle state, plus a shortlist for the first agent.
	accepted, err := engine.Create(ctx, requests.CreateParams{
		AgentID:  agentIDs[0],
		PlayerID: playerIDs[0],
		Type:     requeststorage.TypeTrial,
		Message:  "We would like to invite you for a trial week.",
	})
	if err != nil {
		return fmt.Errorf("create accepted request: %w", err)
	}
	if _, err := engine.Accept(ctx, accepted.ID, playerIDs[0]); err != nil {
		return fmt.Errorf("accept request: %w", err)
	}

	declined, err := engine.Create(ctx, requests.CreateParams{
		AgentID:  agentIDs[1],
		PlayerID: playerIDs[0],
		Type:     requeststorage.TypeRepresentation,
		Message:  "Interested in representing you next season.",
	})
	if err != nil {
		return fmt.Errorf("create declined request: %w", err)
	}
	if _, err := engine.Decline(ctx, declined.ID, playerIDs[0]); err != nil {
		return fmt.Errorf("decline request: %w", err)
	}

	_, err = engine.Create(ctx, requests.CreateParams{
		AgentID:  agentIDs[0],
		PlayerID: playerIDs[1],
		Type:     requeststorage.TypeRepresentation,
		Message:  "Your contract situation caught our attention.",
	})
	if err != nil {
		return fmt.Errorf("create pending request: %w", err)
	}

	for _, playerID := range playerIDs[:2] {
		if err := shortlistService.Add(ctx, agentIDs[0], playerID); err != nil {
			return fmt.Errorf("shortlist player: %w", err)
		}
	}

	fmt.Fprintf(out, "seeded %d players, %d agents, 1 admin, 3 requests into %s\n",
		len(playerIDs), len(agentIDs), cfg.DataDir)
	return nil
}
