package rounddomain

import (
	"math"
	"slices"
	"sort"
)

// ClubStats summarises the full shots played with one club.
type ClubStats struct {
	Club            string  `json:"club"`
	Shots           int     `json:"shots"`
	AverageDistance float64 `json:"average_distance"`
	LongestDistance int     `json:"longest_distance"`
}

// Stats summarises a player's saved rounds.
type Stats struct {
	RoundsPlayed        int         `json:"rounds_played"`
	HolesPlayed         int         `json:"holes_played"`
	AverageScore        float64     `json:"average_score"`
	BestScore           *int        `json:"best_score,omitempty"`
	AveragePuttsPerHole float64     `json:"average_putts_per_hole"`
	AverageStableford   *float64    `json:"average_stableford,omitempty"`
	Clubs               []ClubStats `json:"clubs"`
}

// ComputeStats aggregates rounds. Rounds without holes are ignored. Best score
// is the lowest total among rounds of the most common length, so nine-hole
// rounds do not beat full rounds.
func ComputeStats(rounds []Round) Stats {
	stats := Stats{Clubs: []ClubStats{}}

	var (
		totalScore, totalPutts int
		stablefordSum          int
		stablefordRounds       int
		lengths                = map[int]int{}
		clubs                  = map[string]*ClubStats{}
		clubDistance           = map[string]int{}
	)

	for _, r := range rounds {
		if len(r.Holes) == 0 {
			continue
		}
		stats.RoundsPlayed++
		stats.HolesPlayed += len(r.Holes)
		totalScore += r.TotalScore()
		lengths[len(r.Holes)]++

		if card := r.Scorecard(); card.HasStableford {
			stablefordSum += card.Stableford
			stablefordRounds++
		}

		for _, h := range r.Holes {
			totalPutts += h.Putts
			for _, sh := range h.Shots {
				if sh.IsPutt() || sh.IsPenalty() || sh.DistancePlayed <= 0 {
					continue
				}
				c, ok := clubs[sh.Club]
				if !ok {
					c = &ClubStats{Club: sh.Club}
					clubs[sh.Club] = c
				}
				c.Shots++
				clubDistance[sh.Club] += sh.DistancePlayed
				c.LongestDistance = max(c.LongestDistance, sh.DistancePlayed)
			}
		}
	}

	if stats.RoundsPlayed == 0 {
		return stats
	}

	stats.AverageScore = round1(float64(totalScore) / float64(stats.RoundsPlayed))
	stats.AveragePuttsPerHole = round1(float64(totalPutts) / float64(stats.HolesPlayed))
	if stablefordRounds > 0 {
		avg := round1(float64(stablefordSum) / float64(stablefordRounds))
		stats.AverageStableford = &avg
	}

	common := mostCommonLength(lengths)
	for _, r := range rounds {
		if len(r.Holes) != common {
			continue
		}
		if score := r.TotalScore(); stats.BestScore == nil || score < *stats.BestScore {
			stats.BestScore = &score
		}
	}

	for name, c := range clubs {
		c.AverageDistance = round1(float64(clubDistance[name]) / float64(c.Shots))
		stats.Clubs = append(stats.Clubs, *c)
	}
	sort.Slice(stats.Clubs, func(i, j int) bool {
		return clubLess(stats.Clubs[i].Club, stats.Clubs[j].Club)
	})
	return stats
}

func mostCommonLength(lengths map[int]int) int {
	best, bestCount := 0, 0
	for n, count := range lengths {
		if count > bestCount || (count == bestCount && n > best) {
			best, bestCount = n, count
		}
	}
	return best
}

// clubLess orders clubs as they sit in the bag, unknown clubs last by name.
func clubLess(a, b string) bool {
	ia, ib := slices.Index(AllClubs, a), slices.Index(AllClubs, b)
	switch {
	case ia >= 0 && ib >= 0:
		return ia < ib
	case ia >= 0:
		return true
	case ib >= 0:
		return false
	default:
		return a < b
	}
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
