package bot

import (
	"github.com/charmbracelet/log"

	"github.com/lox/sabaac/internal/deck"
	"github.com/lox/sabaac/internal/game"
)

const (
	// standValue is the hand value from which the target bot stops drawing.
	standValue = 18
	// raiseValue is the hand value from which the target bot raises.
	raiseValue = 20
	// maxPasses bounds how long the target bot keeps improving its hand.
	maxPasses = 4
)

// TargetBot draws toward a high hand under the bust threshold, protects bonus
// hands in the interference field and raises with strong hands.
type TargetBot struct {
	logger *log.Logger
}

// NewTargetBot creates a new TargetBot instance
func NewTargetBot(logger *log.Logger) *TargetBot {
	return &TargetBot{logger: logger}
}

// ChooseBet folds bust hands, raises strong ones and otherwise takes the call slot.
func (b *TargetBot) ChooseBet(view game.TableView, options []game.BetOption) (game.BetDecision, error) {
	value, rank := view.Rules.Evaluate(selfCards(view))
	b.logger.Debug("target-bot betting", "player", view.Self.Name, "value", value, "rank", rank, "owed", view.Owed)

	switch {
	case rank == game.RankBust && view.Owed > 0:
		return findBet(game.Fold, options, "target-bot folds a bust hand"), nil
	case rank.Bonus() || value >= raiseValue:
		raise, ok := option(options, game.Raise)
		// one raise per phase, a requeued bot has already paid
		if ok && rank != game.RankBust && view.Owed == view.MinCost {
			amount := min(raise.MaxRaise, max(raise.MinRaise, view.HandPot/2))
			return game.BetDecision{Action: game.Raise, Raise: amount, Reasoning: "target-bot raises a strong hand"}, nil
		}
	}
	slot := options[1]
	return game.BetDecision{Action: slot.Action, Reasoning: "target-bot " + slot.Action.String()}, nil
}

// ChooseDraw protects bonus hands, exchanges out of a bust and draws until the hand is strong.
func (b *TargetBot) ChooseDraw(view game.TableView, options []game.DrawAction) (game.DrawDecision, error) {
	cards := selfCards(view)
	value, rank := view.Rules.Evaluate(cards)

	switch {
	case rank.Bonus():
		if len(view.Self.Hand) > 0 {
			return game.DrawDecision{Action: game.Insert, Reasoning: "target-bot protects a bonus hand"}, nil
		}
		return game.DrawDecision{Action: game.Stand, Reasoning: "target-bot holds a bonus hand"}, nil
	case view.Pass > maxPasses:
		return game.DrawDecision{Action: game.Stand, Reasoning: "target-bot is done drawing"}, nil
	case rank == game.RankBust:
		if len(view.Self.Hand) == 0 {
			return game.DrawDecision{Action: game.Stand, Reasoning: "target-bot cannot exchange"}, nil
		}
		return game.DrawDecision{
			Action:    game.Exchange,
			HandIndex: worstCard(view.Self.Hand, signedSum(cards), view.Rules.BustThreshold),
			Reasoning: "target-bot exchanges out of a bust",
		}, nil
	case value >= standValue:
		return game.DrawDecision{Action: game.Stand, Reasoning: "target-bot stands on a strong hand"}, nil
	case view.DeckSize > 0:
		return game.DrawDecision{Action: game.Draw, Reasoning: "target-bot draws toward the target"}, nil
	default:
		return game.DrawDecision{Action: game.Stand, Reasoning: "target-bot has nothing to draw"}, nil
	}
}

// ChooseContinue always stays.
func (b *TargetBot) ChooseContinue(view game.TableView) (bool, error) {
	return true, nil
}

func selfCards(view game.TableView) []deck.Card {
	cards := make([]deck.Card, 0, len(view.Self.Hand)+len(view.Self.Field))
	cards = append(cards, view.Self.Hand...)
	return append(cards, view.Self.Field...)
}

func signedSum(cards []deck.Card) int {
	sum := 0
	for _, c := range cards {
		sum += c.Value()
	}
	return sum
}

// worstCard returns the index of the hand card whose removal leaves the
// highest value within limit, or the lowest value when every removal busts.
func worstCard(hand []deck.Card, sum, limit int) int {
	best, bestValue, bestFits := 0, 0, false
	for i, c := range hand {
		v := sum - c.Value()
		if v < 0 {
			v = -v
		}
		fits := v <= limit
		switch {
		case i == 0,
			fits && !bestFits,
			fits && v > bestValue,
			!fits && !bestFits && v < bestValue:
			best, bestValue, bestFits = i, v, fits
		}
	}
	return best
}
