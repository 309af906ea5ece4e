package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Line is a prompter for plain line-based input, used when stdin is not a
// terminal (pipes, scripts, tests).
type Line struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewLine creates a line prompter reading from in and writing to out
func NewLine(in io.Reader, out io.Writer) *Line {
	return &Line{in: bufio.NewScanner(in), out: out}
}

// ChooseOne prints a numbered menu and reads choices until one is valid.
func (l *Line) ChooseOne(title string, options []string) (int, error) {
	fmt.Fprintln(l.out, TitleStyle.Render(title))
	for i, opt := range options {
		fmt.Fprintf(l.out, "  %d. %s\n", i+1, opt)
	}
	for {
		text, err := l.readLine("Choice: ")
		if err != nil {
			return 0, err
		}
		n, err := parseChoice(text, 1, len(options))
		if err != nil {
			fmt.Fprintln(l.out, ErrorStyle.Render(err.Error()))
			continue
		}
		return n - 1, nil
	}
}

// ChooseNumber reads numbers until one falls within [min, max].
func (l *Line) ChooseNumber(min, max int) (int, error) {
	for {
		text, err := l.readLine(fmt.Sprintf("Amount (%d-%d): ", min, max))
		if err != nil {
			return 0, err
		}
		n, err := parseChoice(text, min, max)
		if err != nil {
			fmt.Fprintln(l.out, ErrorStyle.Render(err.Error()))
			continue
		}
		return n, nil
	}
}

// Display prints each line.
func (l *Line) Display(lines ...string) {
	for _, line := range lines {
		fmt.Fprintln(l.out, line)
	}
}

// AnnounceActor asks for the device to be handed over and waits for Enter.
func (l *Line) AnnounceActor(name string) error {
	fmt.Fprintln(l.out)
	fmt.Fprintln(l.out, HeaderStyle.Render(fmt.Sprintf(" %s's turn ", name)))
	_, err := l.readLine(fmt.Sprintf("Pass the device to %s and press Enter. ", name))
	return err
}

func (l *Line) readLine(prompt string) (string, error) {
	fmt.Fprint(l.out, prompt)
	if !l.in.Scan() {
		if err := l.in.Err(); err != nil {
			return "", fmt.Errorf("%w: %w", ErrInputClosed, err)
		}
		return "", ErrInputClosed
	}
	return strings.TrimSpace(l.in.Text()), nil
}
