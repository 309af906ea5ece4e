package game

import (
	"slices"
	"time"

	"github.com/lox/sabaac/internal/deck"
)

// Phase identifies a step of the round
type Phase int

const (
	PhaseAnte Phase = iota
	PhaseDeal
	PhaseBetting
	PhaseDrawing
	PhaseResolution
	PhaseContinuation
)

func (p Phase) String() string {
	return [...]string{"ante", "deal", "betting", "drawing", "resolution", "continuation"}[p]
}

// RoundState is everything a round mutates. The engine keeps one RoundState
// for the whole game and passes it to each phase; Roster and Pots persist
// between rounds while the rest is rebuilt by the round reset.
type RoundState struct {
	Round  int
	Roster []*Player // persistent players, shrinks on elimination and quitting
	Active []*Player // players still contesting this round
	Pots   Pots
	Deck   *deck.Deck
	Log    ActionLog
}

// IsActive reports whether p is still contesting the current round.
func (st *RoundState) IsActive(p *Player) bool {
	return slices.Contains(st.Active, p)
}

func (st *RoundState) removeActive(p *Player) {
	st.Active = slices.DeleteFunc(st.Active, func(q *Player) bool { return q == p })
}

func (st *RoundState) removeFromRoster(p *Player) {
	st.Roster = slices.DeleteFunc(st.Roster, func(q *Player) bool { return q == p })
	st.removeActive(p)
}

// CardCount returns the number of cards in the deck plus every roster
// player's hand and interference field.
func (st *RoundState) CardCount() int {
	n := 0
	if st.Deck != nil {
		n = st.Deck.Len()
	}
	for _, p := range st.Roster {
		n += len(p.Hand) + len(p.Field)
	}
	return n
}

// LogEntry is a single line of the action log
type LogEntry struct {
	At   time.Time
	Text string
}

// ActionLog is the append-only, per-round record of what happened, kept for display.
type ActionLog struct {
	entries []LogEntry
}

// Append adds an entry
func (l *ActionLog) Append(at time.Time, text string) {
	l.entries = append(l.entries, LogEntry{At: at, Text: text})
}

// Reset removes all entries
func (l *ActionLog) Reset() {
	l.entries = nil
}

// Entries returns a copy of the log entries
func (l *ActionLog) Entries() []LogEntry {
	return slices.Clone(l.entries)
}

// Lines returns the entries' text in order.
func (l *ActionLog) Lines() []string {
	lines := make([]string, len(l.entries))
	for i, e := range l.entries {
		lines[i] = e.Text
	}
	return lines
}

// Len returns the number of entries
func (l *ActionLog) Len() int {
	return len(l.entries)
}

// SeatView is the public state of one roster player. Hand is only populated
// for the player the view was built for.
type SeatView struct {
	Name     string
	Chips    int
	HandSize int
	Hand     []deck.Card
	Field    []deck.Card // interference fields are face up
	Active   bool
}

// TableView is the read-only state handed to an Agent for one decision.
type TableView struct {
	Round     int
	Phase     Phase
	Pass      int // drawing pass, starting at 1; zero outside the drawing phase
	HandPot   int
	SabaacPot int
	MinCost   int // betting: cost to stay in this phase
	Owed      int // betting: what the acting player still has to pay
	DeckSize  int
	Self      SeatView
	Players   []SeatView // every roster player, including Self, in seat order
	Log       []string
	Rules     Rules
}

// HandValue returns the acting player's current hand value
func (v TableView) HandValue() int {
	return HandValue(append(slices.Clone(v.Self.Hand), v.Self.Field...))
}

func newView(st *RoundState, rules Rules, self *Player, phase Phase) TableView {
	v := TableView{
		Round:     st.Round,
		Phase:     phase,
		HandPot:   st.Pots.Hand,
		SabaacPot: st.Pots.Sabaac,
		Log:       st.Log.Lines(),
		Rules:     rules,
	}
	if st.Deck != nil {
		v.DeckSize = st.Deck.Len()
	}
	for _, p := range st.Roster {
		seat := seatView(st, p)
		if p == self {
			seat.Hand = slices.Clone(p.Hand)
			v.Self = seat
		}
		v.Players = append(v.Players, seat)
	}
	return v
}

func seatView(st *RoundState, p *Player) SeatView {
	return SeatView{
		Name:     p.Name,
		Chips:    p.Chips(),
		HandSize: len(p.Hand),
		Field:    slices.Clone(p.Field),
		Active:   st.IsActive(p),
	}
}
