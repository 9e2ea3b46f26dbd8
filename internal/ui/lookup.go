package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/cookbook/internal/catalog"
)

// lookupModal asks for a category name and resolves it before opening the
// delete form.
type lookupModal struct {
	input       textinput.Model
	message     string
	suggestions []string
}

type lookupSubmitMsg struct {
	name string
}

func newLookupModal() (*lookupModal, tea.Cmd) {
	l := &lookupModal{input: newTextInput("Category name", 80, 30)}
	return l, l.input.Focus()
}

// Update implements Modal.
func (l *lookupModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return l, nil, false
	}
	switch {
	case key.Matches(km, keys.Back):
		return l, nil, true
	case key.Matches(km, keys.Submit):
		name := l.input.Value()
		return l, func() tea.Msg { return lookupSubmitMsg{name: name} }, false
	}

	var cmd tea.Cmd
	l.input, cmd = l.input.Update(km)
	l.message = ""
	l.suggestions = nil
	return l, cmd, false
}

func (l *lookupModal) fail(err error) {
	var nf *catalog.NotFoundError
	switch {
	case errors.As(err, &nf):
		l.setMessage(nf.Error(), nf.Suggestions)
	case errors.Is(err, catalog.ErrEmptyName):
		l.setMessage("Enter a category name.", nil)
	default:
		l.setMessage(err.Error(), nil)
	}
}

func (l *lookupModal) setMessage(msg string, suggestions []string) {
	l.message = msg
	l.suggestions = suggestions
}

// View implements Modal.
func (l *lookupModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Delete Category"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 36)))
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render("Which category should be deleted?"))
	b.WriteString("\n\n")
	b.WriteString(l.input.View())
	b.WriteString("\n")
	if l.message != "" {
		b.WriteString("\n")
		b.WriteString(styles.DangerText.Render(l.message))
		b.WriteString("\n")
	}
	if len(l.suggestions) > 0 {
		b.WriteString(styles.MutedText.Render("Did you mean: "))
		b.WriteString(styles.AccentText.Render(strings.Join(l.suggestions, ", ")))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("Enter: Continue  •  Esc: Cancel"))

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		styles.Panel.Width(44).Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}
