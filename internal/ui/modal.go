package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Modal is an overlay that captures input until it closes. Update returns
// the updated modal, a command, and whether the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}
