// Package statistics aggregates the outcomes of simulated Sabaac games.
package statistics

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// GameRecord is the outcome of a single simulated game
type GameRecord struct {
	Seed          int64  // RNG seed for this game (for replay)
	Winner        string // strategy of the surviving player, empty without one
	Rounds        int
	Resolutions   int // rounds that reached resolution
	Forfeits      int // rounds won because everyone else folded
	Rollovers     int // rounds whose hand pot rolled into the Sabaac pot
	PureSabaacs   int // rounds won with a Pure Sabaac
	IdiotsArrays  int // rounds won with an Idiot's Array
	Shifts        int
	SabaacPaid    int // chips paid out of the Sabaac pot
	DeckExhausted bool
	LimitReached  bool
}

// Statistics tracks aggregate simulation statistics
type Statistics struct {
	Games  int
	Wins   map[string]int // by strategy
	Values []float64      // rounds per game, for median and percentiles

	SumRounds  float64
	SumRounds2 float64 // sum of squares for variance calculation
	MaxRounds  int

	NoWinner        int
	Resolutions     int
	Forfeits        int
	Rollovers       int
	PureSabaacs     int
	IdiotsArrays    int
	Shifts          int
	SabaacPaid      int
	DeckExhaustions int
	RoundLimits     int
}

// Add incorporates a game record into the statistics
func (s *Statistics) Add(r GameRecord) {
	if s.Wins == nil {
		s.Wins = make(map[string]int)
	}
	s.Games++
	if r.Winner == "" {
		s.NoWinner++
	} else {
		s.Wins[r.Winner]++
	}

	rounds := float64(r.Rounds)
	s.SumRounds += rounds
	s.SumRounds2 += rounds * rounds
	s.Values = append(s.Values, rounds)
	s.MaxRounds = max(s.MaxRounds, r.Rounds)

	s.Resolutions += r.Resolutions
	s.Forfeits += r.Forfeits
	s.Rollovers += r.Rollovers
	s.PureSabaacs += r.PureSabaacs
	s.IdiotsArrays += r.IdiotsArrays
	s.Shifts += r.Shifts
	s.SabaacPaid += r.SabaacPaid
	if r.DeckExhausted {
		s.DeckExhaustions++
	}
	if r.LimitReached {
		s.RoundLimits++
	}
}

// Mean returns the mean number of rounds per game
func (s *Statistics) Mean() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.SumRounds / float64(s.Games)
}

// Variance returns the sample variance of rounds per game
func (s *Statistics) Variance() float64 {
	if s.Games < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumRounds2 - float64(s.Games)*mean*mean) / float64(s.Games-1)
}

// StdDev returns the sample standard deviation of rounds per game
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// Median returns the median number of rounds per game
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the rounds per game at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// WinRate returns the share of games won by strategy
func (s *Statistics) WinRate(strategy string) float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Wins[strategy]) / float64(s.Games)
}

// Validate performs consistency checks on the aggregate
func (s *Statistics) Validate() error {
	if s.Games <= 0 {
		return fmt.Errorf("invalid games count: %d", s.Games)
	}
	if len(s.Values) != s.Games {
		return fmt.Errorf("values array length (%d) does not match games count (%d)", len(s.Values), s.Games)
	}
	wins := s.NoWinner
	for _, n := range s.Wins {
		wins += n
	}
	if wins != s.Games {
		return fmt.Errorf("wins plus games without winner (%d) does not match games count (%d)", wins, s.Games)
	}
	if bonus := s.PureSabaacs + s.IdiotsArrays; bonus > s.Resolutions {
		return fmt.Errorf("bonus wins (%d) exceed resolutions (%d)", bonus, s.Resolutions)
	}
	return nil
}

// Summary returns a human-readable report
func (s *Statistics) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Games: %d, rounds per game: mean %.1f, median %.1f, sd %.1f, max %d\n",
		s.Games, s.Mean(), s.Median(), s.StdDev(), s.MaxRounds)

	strategies := make([]string, 0, len(s.Wins))
	for name := range s.Wins {
		strategies = append(strategies, name)
	}
	sort.Strings(strategies)
	for _, name := range strategies {
		fmt.Fprintf(&b, "  %-8s won %4d (%.1f%%)\n", name, s.Wins[name], 100*s.WinRate(name))
	}
	if s.NoWinner > 0 {
		fmt.Fprintf(&b, "  no winner %d\n", s.NoWinner)
	}

	fmt.Fprintf(&b, "Resolutions: %d, forfeits %d, rollovers %d\n", s.Resolutions, s.Forfeits, s.Rollovers)
	fmt.Fprintf(&b, "Bonus hands: %d Pure Sabaac, %d Idiot's Array, %d chips from the Sabaac pot\n",
		s.PureSabaacs, s.IdiotsArrays, s.SabaacPaid)
	fmt.Fprintf(&b, "Shifts: %d, deck exhaustions: %d, round limits: %d", s.Shifts, s.DeckExhaustions, s.RoundLimits)
	return b.String()
}

// Report is the serializable form of the aggregate
type Report struct {
	Games           int                `json:"games"`
	MeanRounds      float64            `json:"mean_rounds"`
	MedianRounds    float64            `json:"median_rounds"`
	StdDevRounds    float64            `json:"stddev_rounds"`
	MaxRounds       int                `json:"max_rounds"`
	Wins            map[string]int     `json:"wins"`
	WinRates        map[string]float64 `json:"win_rates"`
	NoWinner        int                `json:"no_winner"`
	Resolutions     int                `json:"resolutions"`
	Forfeits        int                `json:"forfeits"`
	Rollovers       int                `json:"rollovers"`
	PureSabaacs     int                `json:"pure_sabaacs"`
	IdiotsArrays    int                `json:"idiots_arrays"`
	Shifts          int                `json:"shifts"`
	SabaacPaid      int                `json:"sabaac_paid"`
	DeckExhaustions int                `json:"deck_exhaustions"`
	RoundLimits     int                `json:"round_limits"`
}

// Report returns the aggregate with derived figures filled in
func (s *Statistics) Report() Report {
	r := Report{
		Games:           s.Games,
		MeanRounds:      s.Mean(),
		MedianRounds:    s.Median(),
		StdDevRounds:    s.StdDev(),
		MaxRounds:       s.MaxRounds,
		Wins:            make(map[string]int, len(s.Wins)),
		WinRates:        make(map[string]float64, len(s.Wins)),
		NoWinner:        s.NoWinner,
		Resolutions:     s.Resolutions,
		Forfeits:        s.Forfeits,
		Rollovers:       s.Rollovers,
		PureSabaacs:     s.PureSabaacs,
		IdiotsArrays:    s.IdiotsArrays,
		Shifts:          s.Shifts,
		SabaacPaid:      s.SabaacPaid,
		DeckExhaustions: s.DeckExhaustions,
		RoundLimits:     s.RoundLimits,
	}
	for name, n := range s.Wins {
		r.Wins[name] = n
		r.WinRates[name] = s.WinRate(name)
	}
	return r
}
