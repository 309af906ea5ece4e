package game

import (
	"fmt"
	"strings"
	"time"

	"github.com/lox/sabaac/internal/deck"
)

// EventType represents a game event type with type safety
type EventType string

// EventType constants for game domain events
const (
	EventTypeRoundStart  EventType = "round_start"
	EventTypeAnte        EventType = "ante"
	EventTypeElimination EventType = "elimination"
	EventTypePhase       EventType = "phase"
	EventTypeBet         EventType = "bet"
	EventTypeDraw        EventType = "draw"
	EventTypeShift       EventType = "shift"
	EventTypeResolution  EventType = "resolution"
	EventTypeQuit        EventType = "quit"
	EventTypeRoundAbort  EventType = "round_abort"
	EventTypeGameEnd     EventType = "game_end"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents any event that occurs during a game
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// RoundStartEvent is published before the ante of every round
type RoundStartEvent struct {
	Round     int
	Players   []string
	SabaacPot int
	timestamp time.Time
}

func (e RoundStartEvent) EventType() EventType { return EventTypeRoundStart }
func (e RoundStartEvent) Timestamp() time.Time { return e.timestamp }

// AnteEvent is published when a player pays the Sabaac pot ante
type AnteEvent struct {
	Player    string
	Amount    int
	Chips     int
	timestamp time.Time
}

func (e AnteEvent) EventType() EventType { return EventTypeAnte }
func (e AnteEvent) Timestamp() time.Time { return e.timestamp }

// EliminationEvent is published when a player cannot cover the ante
type EliminationEvent struct {
	Player    string
	Chips     int
	Taunt     string // set when the player leaves with chips
	timestamp time.Time
}

func (e EliminationEvent) EventType() EventType { return EventTypeElimination }
func (e EliminationEvent) Timestamp() time.Time { return e.timestamp }

// PhaseEvent is published when the deal, a betting phase or the drawing phase starts
type PhaseEvent struct {
	Round     int
	Phase     Phase
	MinCost   int
	timestamp time.Time
}

func (e PhaseEvent) EventType() EventType { return EventTypePhase }
func (e PhaseEvent) Timestamp() time.Time { return e.timestamp }

// BetEvent is published after every betting action
type BetEvent struct {
	Player    string
	Action    Action
	Amount    int // chips moved into the hand pot
	Raise     int
	Chips     int // player's balance afterwards
	HandPot   int
	Reasoning string
	timestamp time.Time
}

func (e BetEvent) EventType() EventType { return EventTypeBet }
func (e BetEvent) Timestamp() time.Time { return e.timestamp }

// DrawEvent is published after every drawing action. Card is the card that
// became or stopped being visible in the interference field, if any.
type DrawEvent struct {
	Player    string
	Action    DrawAction
	Pass      int
	Card      *deck.Card
	Reasoning string
	timestamp time.Time
}

func (e DrawEvent) EventType() EventType { return EventTypeDraw }
func (e DrawEvent) Timestamp() time.Time { return e.timestamp }

// ShiftEvent is published when the active hands are redistributed
type ShiftEvent struct {
	Players   int
	Cards     int
	timestamp time.Time
}

func (e ShiftEvent) EventType() EventType { return EventTypeShift }
func (e ShiftEvent) Timestamp() time.Time { return e.timestamp }

// ResolutionEvent is published once the pots are settled
type ResolutionEvent struct {
	Round      int
	Resolution Resolution
	HandPot    int // before settlement
	SabaacPot  int // after settlement
	timestamp  time.Time
}

func (e ResolutionEvent) EventType() EventType { return EventTypeResolution }
func (e ResolutionEvent) Timestamp() time.Time { return e.timestamp }

// QuitEvent is published when a player leaves at the continuation phase
type QuitEvent struct {
	Player    string
	Chips     int
	timestamp time.Time
}

func (e QuitEvent) EventType() EventType { return EventTypeQuit }
func (e QuitEvent) Timestamp() time.Time { return e.timestamp }

// RoundAbortEvent is published when a round cannot complete
type RoundAbortEvent struct {
	Round      int
	Err        error
	RolledOver int
	timestamp  time.Time
}

func (e RoundAbortEvent) EventType() EventType { return EventTypeRoundAbort }
func (e RoundAbortEvent) Timestamp() time.Time { return e.timestamp }

// GameEndEvent is published when the game loop stops
type GameEndEvent struct {
	Winner    string // empty without a single survivor
	Rounds    int
	SabaacPot int
	timestamp time.Time
}

func (e GameEndEvent) EventType() EventType { return EventTypeGameEnd }
func (e GameEndEvent) Timestamp() time.Time { return e.timestamp }

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventSubscriberFunc adapts a function to EventSubscriber
type EventSubscriberFunc func(event GameEvent)

// OnEvent calls f(event)
func (f EventSubscriberFunc) OnEvent(event GameEvent) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a basic in-memory event bus implementation.
// Subscribers are called synchronously in subscription order.
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() *SimpleEventBus {
	return &SimpleEventBus{}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}

// FormattingOptions controls how events are formatted
type FormattingOptions struct {
	ShowReasonings bool // append agent reasoning to actions
}

// EventFormatter turns events into action log lines
type EventFormatter struct {
	opts FormattingOptions
}

// NewEventFormatter creates a new event formatter with the given options
func NewEventFormatter(opts FormattingOptions) *EventFormatter {
	return &EventFormatter{opts: opts}
}

// Format returns the log line for an event
func (ef *EventFormatter) Format(event GameEvent) string {
	switch e := event.(type) {
	case RoundStartEvent:
		return fmt.Sprintf("Round %d: %s (Sabaac pot %d)", e.Round, strings.Join(e.Players, ", "), e.SabaacPot)
	case AnteEvent:
		return fmt.Sprintf("%s antes %d (%d chips left)", e.Player, e.Amount, e.Chips)
	case EliminationEvent:
		if e.Taunt != "" {
			return e.Taunt
		}
		return fmt.Sprintf("%s is out of chips", e.Player)
	case PhaseEvent:
		return ef.formatPhase(e)
	case BetEvent:
		return ef.withReasoning(ef.formatBet(e), e.Reasoning)
	case DrawEvent:
		return ef.withReasoning(ef.formatDraw(e), e.Reasoning)
	case ShiftEvent:
		return fmt.Sprintf("A shift! %d cards change hands", e.Cards)
	case ResolutionEvent:
		return ef.formatResolution(e)
	case QuitEvent:
		return fmt.Sprintf("%s leaves the table with %d chips", e.Player, e.Chips)
	case RoundAbortEvent:
		return fmt.Sprintf("Round %d aborted: %v (%d rolled into the Sabaac pot)", e.Round, e.Err, e.RolledOver)
	case GameEndEvent:
		if e.Winner == "" {
			return fmt.Sprintf("Game over after %d rounds with no winner", e.Rounds)
		}
		return fmt.Sprintf("%s wins the game after %d rounds", e.Winner, e.Rounds)
	default:
		return event.EventType().String()
	}
}

func (ef *EventFormatter) formatPhase(e PhaseEvent) string {
	switch e.Phase {
	case PhaseDeal:
		return "Cards dealt"
	case PhaseBetting:
		if e.MinCost > 0 {
			return fmt.Sprintf("Betting, %d to stay in", e.MinCost)
		}
		return "Betting"
	case PhaseDrawing:
		return "Drawing"
	default:
		return e.Phase.String()
	}
}

func (ef *EventFormatter) formatBet(e BetEvent) string {
	switch e.Action {
	case Fold:
		return fmt.Sprintf("%s folds", e.Player)
	case Check:
		return fmt.Sprintf("%s checks", e.Player)
	case Call:
		return fmt.Sprintf("%s calls %d (hand pot now: %d)", e.Player, e.Amount, e.HandPot)
	case AllIn:
		return fmt.Sprintf("%s goes all-in with %d (hand pot now: %d)", e.Player, e.Amount, e.HandPot)
	case Raise:
		return fmt.Sprintf("%s raises by %d (hand pot now: %d)", e.Player, e.Raise, e.HandPot)
	default:
		return fmt.Sprintf("%s %s", e.Player, e.Action)
	}
}

func (ef *EventFormatter) formatDraw(e DrawEvent) string {
	card := ""
	if e.Card != nil {
		card = e.Card.String()
	}
	switch e.Action {
	case Stand:
		return fmt.Sprintf("%s stands", e.Player)
	case Draw:
		return fmt.Sprintf("%s draws a card", e.Player)
	case Exchange:
		return fmt.Sprintf("%s exchanges a card", e.Player)
	case Insert:
		return fmt.Sprintf("%s puts %s into the interference field", e.Player, card)
	case Remove:
		return fmt.Sprintf("%s takes %s back from the interference field", e.Player, card)
	case Swap:
		return fmt.Sprintf("%s swaps %s into the interference field", e.Player, card)
	default:
		return fmt.Sprintf("%s %s", e.Player, e.Action)
	}
}

func (ef *EventFormatter) formatResolution(e ResolutionEvent) string {
	res := e.Resolution
	var parts []string
	for _, h := range res.Hands {
		parts = append(parts, fmt.Sprintf("%s %d (%s)", h.Player.Name, h.Value, h.Rank))
	}
	hands := strings.Join(parts, ", ")

	switch {
	case res.Winner != nil && res.Forfeit:
		return fmt.Sprintf("%s wins %d by forfeit%s", res.Winner.Name, res.HandPotWon, sabaacSuffix(res))
	case res.Winner != nil:
		return fmt.Sprintf("%s. %s wins the hand pot (%d)%s", hands, res.Winner.Name, res.HandPotWon, sabaacSuffix(res))
	case len(res.Candidates) > 1:
		return fmt.Sprintf("%s. It's a tie! %d rolls into the Sabaac pot", hands, res.RolledOver)
	default:
		return fmt.Sprintf("%s. No winner, %d rolls into the Sabaac pot", hands, res.RolledOver)
	}
}

func sabaacSuffix(res Resolution) string {
	if res.SabaacPotWon == 0 && !res.Rank.Bonus() {
		return ""
	}
	return fmt.Sprintf(" and the Sabaac pot (%d) with %s", res.SabaacPotWon, res.Rank)
}

func (ef *EventFormatter) withReasoning(text, reasoning string) string {
	if !ef.opts.ShowReasonings || reasoning == "" {
		return text
	}
	return fmt.Sprintf("%s [%s]", text, reasoning)
}
