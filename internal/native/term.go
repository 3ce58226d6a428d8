//go:build !windows && !darwin

package native

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"

	"commondlg.app/commondlg/internal/pattern"
)

// termPickFile prompts for a path on the controlling terminal. It is the
// last resort when no graphical chooser can run at all.
func termPickFile(opts FileOptions) (string, error) {
	if !stdinIsTerminal() {
		return "", errors.New("no graphical dialog helper available and stdin is not a terminal")
	}

	opts.Logger.Debug().Msg("prompting on the terminal")
	m, err := tea.NewProgram(newPromptModel(opts.Mode.title(), patternHint(opts.Filters))).Run()
	if err != nil {
		return "", errors.Wrap(err, "terminal prompt")
	}

	prompt := m.(promptModel)
	path := strings.TrimSpace(prompt.value)
	if prompt.cancelled || path == "" {
		return "", ErrCancelled
	}
	return path, nil
}

// termAnnounce prints the message and waits for acknowledgement when a
// terminal is attached.
func termAnnounce(opts MessageOptions) error {
	tag := "info"
	if opts.Severity == SeverityError {
		tag = "error"
	}
	fmt.Fprintf(os.Stderr, "[%s] %s: %s\n", tag, opts.Title, opts.Description)

	if !stdinIsTerminal() {
		return nil
	}
	fmt.Fprint(os.Stderr, "press enter to continue ")
	_, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return errors.Wrap(err, "terminal acknowledgement")
	}
	return nil
}

func stdinIsTerminal() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// patternHint shows the accepted patterns next to the prompt, so the
// filter list stays visible even in the terminal fallback.
func patternHint(filters []pattern.Filter) string {
	var list pattern.List
	pattern.Apply(filters, &list)

	var globs []string
	for _, g := range list.Groups {
		globs = append(globs, g.Patterns...)
	}
	if len(globs) == 0 {
		return ""
	}
	return " (" + strings.Join(globs, ", ") + ")"
}

type promptModel struct {
	title     string
	hint      string
	value     string
	cancelled bool
}

func newPromptModel(title, hint string) promptModel {
	return promptModel{title: title, hint: hint}
}

func (m promptModel) Init() tea.Cmd { return nil }

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.cancelled = true
		return m, tea.Quit
	case tea.KeyEnter:
		return m, tea.Quit
	case tea.KeyBackspace:
		if len(m.value) > 0 {
			runes := []rune(m.value)
			m.value = string(runes[:len(runes)-1])
		}
	case tea.KeySpace:
		m.value += " "
	case tea.KeyRunes:
		m.value += string(key.Runes)
	}
	return m, nil
}

func (m promptModel) View() string {
	return m.title + m.hint + "\npath: " + m.value + "\n(enter to accept, esc to cancel)\n"
}
