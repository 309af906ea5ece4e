// Package game implements the Sabaac round engine.
//
// The main type is Engine, which owns the persistent roster and the pot
// ledger and plays rounds until one or zero players remain. Each round runs
// the same fixed phase order:
//
//	ante -> reset -> deal -> betting (with hand-pot ante) -> shift ->
//	drawing -> betting -> shift -> resolution -> continuation
//
// # Basic Usage
//
//	rng := randutil.New(42)
//	players := []*game.Player{game.NewPlayer("Han", 30), game.NewPlayer("Lando", 30)}
//	agents := map[string]game.Agent{"Han": han, "Lando": lando}
//	e, err := game.NewEngine(rng, players, agents)
//	if err != nil {
//	    return err
//	}
//	result, err := e.RunGame(ctx)
//
// # Decisions
//
// Every choice a player makes goes through the Agent interface. Agents receive
// a read-only TableView and the options that are legal right now and return a
// decision; the engine validates the decision and performs all state changes.
// Humans are adapted to Agent by the prompt package, bots live in the bot package.
//
// # Deterministic Testing
//
// All randomness (deck shuffles, the shift trial, shift redistribution) comes
// from the RNG passed to NewEngine. WithDeckFactory supplies a pre-arranged
// deck and WithRules can set ShiftChance to zero.
package game
