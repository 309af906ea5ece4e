package game

// BetDecision is an agent's answer to a betting turn.
type BetDecision struct {
	Action    Action
	Raise     int    // chips added to the cost to stay in, for Raise
	Reasoning string // human-readable explanation
}

// DrawDecision is an agent's answer to a drawing turn. The indices are only
// read by the actions that use them.
type DrawDecision struct {
	Action     DrawAction
	HandIndex  int
	FieldIndex int
	Reasoning  string
}

// Agent is anything that makes decisions for a player, human or bot.
// Agents receive immutable game state and the currently legal options and
// return a decision; they never mutate game state themselves. An error aborts
// the round (for example, closed input).
type Agent interface {
	ChooseBet(view TableView, options []BetOption) (BetDecision, error)
	ChooseDraw(view TableView, options []DrawAction) (DrawDecision, error)
	ChooseContinue(view TableView) (bool, error)
}
