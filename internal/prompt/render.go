package prompt

import (
	"fmt"
	"slices"
	"strings"

	"github.com/lox/sabaac/internal/deck"
	"github.com/lox/sabaac/internal/game"
)

// recentLog is how many action log lines the table display shows.
const recentLog = 8

// RenderView returns the table display for the acting player: pots, the
// other players, the player's own hand and the recent action log.
func RenderView(view game.TableView) []string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", HeaderStyle.Render(fmt.Sprintf(" Round %d - %s ", view.Round, phaseTitle(view))))
	fmt.Fprintf(&b, "Hand pot: %d   Sabaac pot: %d   Deck: %d\n", view.HandPot, view.SabaacPot, view.DeckSize)
	if view.Phase == game.PhaseBetting && view.MinCost > 0 {
		fmt.Fprintf(&b, "Cost to stay in: %d (you owe %d)\n", view.MinCost, view.Owed)
	}

	b.WriteString("\n")
	for _, seat := range view.Players {
		if seat.Name == view.Self.Name {
			continue
		}
		line := fmt.Sprintf("%-12s %4d chips  %d cards", seat.Name, seat.Chips, seat.HandSize)
		if len(seat.Field) > 0 {
			line += "  field: " + FieldStyle.Render(joinCards(seat.Field))
		}
		if !seat.Active {
			b.WriteString(FoldedStyle.Render(line) + InfoStyle.Render(" (out)") + "\n")
			continue
		}
		b.WriteString(PlayerStyle.Render(line) + "\n")
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "%s  %d chips\n", view.Self.Name, view.Self.Chips)
	fmt.Fprintf(&b, "Hand:  %s\n", HandStyle.Render(joinCards(view.Self.Hand)))
	if len(view.Self.Field) > 0 {
		fmt.Fprintf(&b, "Field: %s\n", FieldStyle.Render(joinCards(view.Self.Field)))
	}
	value, rank := view.Rules.Evaluate(append(append([]deck.Card(nil), view.Self.Hand...), view.Self.Field...))
	fmt.Fprintf(&b, "Total: %d (%s)", value, rank)

	lines := []string{TableStyle.Render(b.String())}
	if n := len(view.Log); n > 0 {
		start := max(0, n-recentLog)
		for _, entry := range view.Log[start:] {
			lines = append(lines, InfoStyle.Render("  "+entry))
		}
	}
	return lines
}

// RenderStandings returns one line per player, most chips first.
func RenderStandings(players []*game.Player) []string {
	sorted := slices.Clone(players)
	slices.SortStableFunc(sorted, func(a, b *game.Player) int { return b.Chips() - a.Chips() })
	lines := make([]string, 0, len(sorted))
	for _, p := range sorted {
		lines = append(lines, fmt.Sprintf("%-12s %4d chips", p.Name, p.Chips()))
	}
	return lines
}

func phaseTitle(view game.TableView) string {
	switch view.Phase {
	case game.PhaseBetting:
		return "Betting"
	case game.PhaseDrawing:
		return fmt.Sprintf("Drawing, pass %d", view.Pass)
	case game.PhaseContinuation:
		return "Round over"
	default:
		return view.Phase.String()
	}
}

func joinCards(cards []deck.Card) string {
	if len(cards) == 0 {
		return "(none)"
	}
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}
