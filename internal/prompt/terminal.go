package prompt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
)

// Terminal is an interactive prompter: arrow-key menus and a validated
// number input, each run as a short Bubble Tea program.
type Terminal struct {
	in     io.Reader
	out    io.Writer
	output *termenv.Output
}

// NewTerminal creates a terminal prompter
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: in, out: out, output: termenv.NewOutput(out)}
}

// ChooseOne runs an interactive menu and returns the selected index.
func (t *Terminal) ChooseOne(title string, options []string) (int, error) {
	m, err := t.run(newMenuModel(title, options))
	if err != nil {
		return 0, err
	}
	menu := m.(menuModel)
	if menu.aborted {
		return 0, ErrAborted
	}
	return menu.chosen, nil
}

// ChooseNumber runs a text input that only accepts numbers within [min, max].
func (t *Terminal) ChooseNumber(min, max int) (int, error) {
	m, err := t.run(newNumberModel(min, max))
	if err != nil {
		return 0, err
	}
	num := m.(numberModel)
	if num.aborted {
		return 0, ErrAborted
	}
	return num.value, nil
}

// Display writes each line to the terminal.
func (t *Terminal) Display(lines ...string) {
	for _, line := range lines {
		fmt.Fprintln(t.out, line)
	}
}

// AnnounceActor clears the screen so the previous player's hand is hidden,
// then waits until the next player is ready.
func (t *Terminal) AnnounceActor(name string) error {
	t.output.ClearScreen()
	m, err := t.run(waitModel{message: fmt.Sprintf("Pass the device to %s", name)})
	if err != nil {
		return err
	}
	if m.(waitModel).aborted {
		return ErrAborted
	}
	t.output.ClearScreen()
	return nil
}

func (t *Terminal) run(model tea.Model) (tea.Model, error) {
	final, err := tea.NewProgram(model, tea.WithInput(t.in), tea.WithOutput(t.out)).Run()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInputClosed, err)
	}
	return final, nil
}

// menuModel selects one option with the arrow keys or its number.
type menuModel struct {
	title   string
	options []string
	cursor  int
	chosen  int
	aborted bool
	done    bool
}

func newMenuModel(title string, options []string) menuModel {
	return menuModel{title: title, options: options, chosen: -1}
}

func (m menuModel) Init() tea.Cmd {
	return nil
}

func (m menuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "ctrl+c", "esc":
		m.aborted = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case "enter":
		m.chosen = m.cursor
		m.done = true
		return m, tea.Quit
	default:
		if n, err := strconv.Atoi(key.String()); err == nil && n >= 1 && n <= len(m.options) {
			m.chosen = n - 1
			m.cursor = n - 1
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m menuModel) View() string {
	if m.done {
		return fmt.Sprintf("%s %s\n", TitleStyle.Render(m.title), SelectedStyle.Render(m.options[m.chosen]))
	}
	var b strings.Builder
	b.WriteString(TitleStyle.Render(m.title) + "\n")
	for i, opt := range m.options {
		line := fmt.Sprintf("%d. %s", i+1, opt)
		if i == m.cursor {
			b.WriteString(SelectedStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}
	b.WriteString(InfoStyle.Render("up/down to move, enter to select") + "\n")
	return b.String()
}

// numberModel reads a number within [min, max].
type numberModel struct {
	input   textinput.Model
	min     int
	max     int
	value   int
	err     string
	aborted bool
	done    bool
}

func newNumberModel(min, max int) numberModel {
	ti := textinput.New()
	ti.Placeholder = fmt.Sprintf("%d-%d", min, max)
	ti.Focus()
	ti.CharLimit = 10
	ti.Prompt = "Amount > "
	ti.PromptStyle = SelectedStyle
	return numberModel{input: ti, min: min, max: max}
}

func (m numberModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m numberModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		case "enter":
			n, err := parseChoice(m.input.Value(), m.min, m.max)
			if err != nil {
				m.err = err.Error()
				m.input.SetValue("")
				return m, nil
			}
			m.value = n
			m.done = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m numberModel) View() string {
	if m.done {
		return fmt.Sprintf("Amount > %s\n", SelectedStyle.Render(strconv.Itoa(m.value)))
	}
	view := m.input.View() + "\n"
	if m.err != "" {
		view += ErrorStyle.Render(m.err) + "\n"
	}
	return view
}

// waitModel shows a message until enter is pressed.
type waitModel struct {
	message string
	aborted bool
}

func (m waitModel) Init() tea.Cmd {
	return nil
}

func (m waitModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		case "enter":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m waitModel) View() string {
	return HeaderStyle.Render(" "+m.message+" ") + "\n" + InfoStyle.Render("press enter when ready") + "\n"
}
