// Package prompt is the human side of the table: prompters that read menu
// choices and numbers from a terminal, and a hot-seat Console that adapts
// them to game.Agent.
package prompt

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
)

var (
	// ErrInputClosed is returned when the input ends before a valid choice.
	ErrInputClosed = errors.New("input closed")

	// ErrAborted is returned when the user cancels a prompt.
	ErrAborted = errors.New("prompt aborted")
)

// Prompter is the prompt surface. ChooseOne and ChooseNumber keep asking
// until they get a valid answer and only fail when input is closed or aborted.
type Prompter interface {
	// ChooseOne returns the index of the selected option
	ChooseOne(title string, options []string) (int, error)
	// ChooseNumber returns a number within [min, max]
	ChooseNumber(min, max int) (int, error)
	Display(lines ...string)
	// AnnounceActor marks a turn handover to the named player
	AnnounceActor(name string) error
}

// ForTerminal returns the interactive Terminal prompter when both files are
// terminals and a Line prompter otherwise.
func ForTerminal(in, out *os.File) Prompter {
	if isTerminal(in) && isTerminal(out) {
		return NewTerminal(in, out)
	}
	return NewLine(in, out)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// parseChoice validates a typed number against [min, max].
func parseChoice(text string, min, max int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, errors.New("Must be a number!")
	}
	if n < min || n > max {
		return 0, fmt.Errorf("Must be between %d and %d!", min, max)
	}
	return n, nil
}
