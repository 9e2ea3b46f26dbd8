package ui

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
)

// cursorMode applies to every text field the UI creates.
var cursorMode = cursor.CursorBlink

func newTextInput(placeholder string, limit, width int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Width = width
	_ = in.Cursor.SetMode(cursorMode)
	return in
}

func newTextArea(placeholder string, height int) textarea.Model {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.CharLimit = 8000
	ta.SetHeight(height)
	_ = ta.Cursor.SetMode(cursorMode)
	return ta
}
