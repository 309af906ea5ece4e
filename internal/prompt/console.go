package prompt

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/lox/sabaac/internal/deck"
	"github.com/lox/sabaac/internal/game"
)

// Console plays every human seat at a hot-seat table through one Prompter.
// It announces a handover whenever the acting human changes.
type Console struct {
	prompter Prompter
	logger   *log.Logger
	current  string
}

// NewConsole creates a console over p
func NewConsole(p Prompter, logger *log.Logger) *Console {
	return &Console{prompter: p, logger: logger.WithPrefix("console")}
}

// ChooseBet shows the table to the acting human and asks for a betting action.
func (c *Console) ChooseBet(view game.TableView, options []game.BetOption) (game.BetDecision, error) {
	if err := c.turn(view); err != nil {
		return game.BetDecision{}, err
	}
	labels := make([]string, len(options))
	for i, o := range options {
		labels[i] = betLabel(o)
	}
	i, err := c.prompter.ChooseOne(fmt.Sprintf("%s, your bet:", view.Self.Name), labels)
	if err != nil {
		return game.BetDecision{}, err
	}
	opt := options[i]
	dec := game.BetDecision{Action: opt.Action, Reasoning: "human"}
	if opt.Action == game.Raise {
		c.prompter.Display(fmt.Sprintf("Raise by how much? You hold %d and owe %d.", view.Self.Chips, view.Owed))
		if dec.Raise, err = c.prompter.ChooseNumber(opt.MinRaise, opt.MaxRaise); err != nil {
			return game.BetDecision{}, err
		}
	}
	c.logger.Debug("Human bet", "player", view.Self.Name, "action", dec.Action, "raise", dec.Raise)
	return dec, nil
}

// ChooseDraw asks the acting human for a drawing action and the cards it uses.
func (c *Console) ChooseDraw(view game.TableView, options []game.DrawAction) (game.DrawDecision, error) {
	if err := c.turn(view); err != nil {
		return game.DrawDecision{}, err
	}
	labels := make([]string, len(options))
	for i, o := range options {
		labels[i] = o.Label()
	}
	i, err := c.prompter.ChooseOne(fmt.Sprintf("%s, what will you do?", view.Self.Name), labels)
	if err != nil {
		return game.DrawDecision{}, err
	}
	dec := game.DrawDecision{Action: options[i], Reasoning: "human"}
	if dec.Action.UsesHand() {
		if dec.HandIndex, err = c.prompter.ChooseOne("Which card from your hand?", cardLabels(view.Self.Hand)); err != nil {
			return game.DrawDecision{}, err
		}
	}
	if dec.Action.UsesField() {
		if dec.FieldIndex, err = c.prompter.ChooseOne("Which card from your interference field?", cardLabels(view.Self.Field)); err != nil {
			return game.DrawDecision{}, err
		}
	}
	c.logger.Debug("Human draw", "player", view.Self.Name, "action", dec.Action)
	return dec, nil
}

// ChooseContinue asks whether the human stays for another round.
func (c *Console) ChooseContinue(view game.TableView) (bool, error) {
	if err := c.turn(view); err != nil {
		return false, err
	}
	i, err := c.prompter.ChooseOne(fmt.Sprintf("%s, play another round?", view.Self.Name), []string{"Continue", "Quit"})
	if err != nil {
		return false, err
	}
	return i == 0, nil
}

// turn announces a handover if needed and shows the table.
func (c *Console) turn(view game.TableView) error {
	if view.Self.Name != c.current {
		if err := c.prompter.AnnounceActor(view.Self.Name); err != nil {
			return err
		}
		c.current = view.Self.Name
	}
	c.prompter.Display(RenderView(view)...)
	return nil
}

func betLabel(o game.BetOption) string {
	switch o.Action {
	case game.Call, game.AllIn:
		return fmt.Sprintf("%s (%d)", o.Action.Label(), o.Cost)
	case game.Raise:
		return fmt.Sprintf("%s (%d-%d)", o.Action.Label(), o.MinRaise, o.MaxRaise)
	default:
		return o.Action.Label()
	}
}

func cardLabels(cards []deck.Card) []string {
	labels := make([]string, len(cards))
	for i, c := range cards {
		labels[i] = c.String()
	}
	return labels
}
