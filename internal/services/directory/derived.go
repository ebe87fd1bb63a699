package directory

import (
	"math"
	"time"

	"github.com/pitchsideapp/pitchside/internal/services/directory/storage"
)

// SeasonSummary carries one season's raw numbers plus per-game derivations.
type SeasonSummary struct {
	Season         string
	Goals          int
	Assists        int
	Matches        int
	MinutesPlayed  int
	PassAccuracy   float64
	ShotsOnTarget  int
	GoalsPerGame   float64
	AssistsPerGame float64
	Rating         float64
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

func round1(value float64) float64 {
	return math.Round(value*10) / 10
}

// summarize derives per-game figures from a raw stat line. All derived
// values are zero when no matches were played.
func summarize(stats storage.SeasonStats) SeasonSummary {
	summary := SeasonSummary{
		Season:        stats.Season,
		Goals:         stats.Goals,
		Assists:       stats.Assists,
		Matches:       stats.Matches,
		MinutesPlayed: stats.MinutesPlayed,
		PassAccuracy:  stats.PassAccuracy,
		ShotsOnTarget: stats.ShotsOnTarget,
	}
	if stats.Matches <= 0 {
		return summary
	}
	matches := float64(stats.Matches)
	summary.GoalsPerGame = round2(float64(stats.Goals) / matches)
	summary.AssistsPerGame = round2(float64(stats.Assists) / matches)
	summary.Rating = round1(float64(stats.Goals+stats.Assists)/matches*2 + 5)
	return summary
}

// ageAt computes whole years between a date of birth and a reference time.
// Returns zero when the date of birth is unset.
func ageAt(dateOfBirth time.Time, now time.Time) int {
	if dateOfBirth.IsZero() {
		return 0
	}
	age := now.Year() - dateOfBirth.Year()
	anniversary := dateOfBirth.AddDate(age, 0, 0)
	if anniversary.After(now) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}
