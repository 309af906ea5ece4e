package bot

import (
	"github.com/charmbracelet/log"

	"github.com/lox/sabaac/internal/game"
)

// CallBot is a calling station: it takes the call slot every time, never
// touches its cards and always plays another round.
type CallBot struct {
	logger *log.Logger
}

// NewCallBot creates a new CallBot instance
func NewCallBot(logger *log.Logger) *CallBot {
	return &CallBot{logger: logger}
}

// ChooseBet always takes the call slot.
func (c *CallBot) ChooseBet(view game.TableView, options []game.BetOption) (game.BetDecision, error) {
	slot := options[1]
	c.logger.Debug("call-bot betting", "player", view.Self.Name, "action", slot.Action, "cost", slot.Cost)
	return game.BetDecision{Action: slot.Action, Reasoning: "call-bot " + slot.Action.String()}, nil
}

// ChooseDraw always stands.
func (c *CallBot) ChooseDraw(view game.TableView, options []game.DrawAction) (game.DrawDecision, error) {
	return game.DrawDecision{Action: game.Stand, Reasoning: "call-bot stands"}, nil
}

// ChooseContinue always stays.
func (c *CallBot) ChooseContinue(view game.TableView) (bool, error) {
	return true, nil
}
