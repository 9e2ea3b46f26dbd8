package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/cookbook/internal/mutation"
)

// formScreen hosts one mutation.Form: add category, delete category or
// delete recipe.
type formScreen struct {
	form  *mutation.Form
	input textinput.Model
}

type mutationDoneMsg struct {
	form *mutation.Form
	err  error
}

// redirectMsg fires when a success redirect timer expires.
type redirectMsg struct {
	token uint64
}

func (m *Model) mountForm(cfg mutation.Config, resourceID string) tea.Cmd {
	placeholder := cfg.InputPlaceholder
	if cfg.Action == mutation.ActionDelete {
		placeholder = cfg.ConfirmPlaceholder
	}
	m.form = &formScreen{
		form:  mutation.NewForm(cfg, resourceID),
		input: newTextInput(placeholder, 120, 40),
	}
	return m.form.input.Focus()
}

// handleFormKey processes keyboard input for the mutation form.
func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.form
	if s == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		return m, m.navigate(m.formCancelPath())
	case key.Matches(msg, m.keys.Submit):
		sub, err := s.form.Submit()
		if errors.Is(err, mutation.ErrBusy) {
			return m, nil
		}
		if err != nil {
			m.logger.Debug("form rejected", "kind", string(s.form.Config().Kind), "error", err)
			return m, nil
		}
		m.logger.Info("submitting mutation", "method", sub.Method, "url", sub.URL)
		return m, m.runMutation(s.form, sub)
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	if s.form.Config().Action == mutation.ActionDelete {
		s.form.SetConfirmation(s.input.Value())
	} else {
		s.form.SetInput(s.input.Value())
	}
	return m, cmd
}

func (m *Model) runMutation(form *mutation.Form, sub mutation.Submission) tea.Cmd {
	api, ctx, timeout := m.api, m.ctx, m.timeout
	return func() tea.Msg {
		reqCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return mutationDoneMsg{form: form, err: sub.Run(reqCtx, api)}
	}
}

// handleMutationDone resolves the form that issued the call. Results for a
// form that was already torn down are ignored by the form itself.
func (m *Model) handleMutationDone(msg mutationDoneMsg) tea.Cmd {
	cfg := msg.form.Config()
	if msg.err != nil {
		m.logger.Warn("mutation failed", "action", string(cfg.Action), "kind", string(cfg.Kind), "error", msg.err)
	}
	redirect, armed := msg.form.Resolve(msg.err)
	if !armed {
		return nil
	}
	m.logger.Info("mutation succeeded", "action", string(cfg.Action), "kind", string(cfg.Kind))
	return m.scheduleRedirect(redirect.After, redirect.Token)
}

func (m *Model) scheduleRedirect(after time.Duration, token uint64) tea.Cmd {
	return m.after(after, func(time.Time) tea.Msg {
		return redirectMsg{token: token}
	})
}

// handleRedirect navigates only when the token belongs to the mounted
// screen.
func (m *Model) handleRedirect(msg redirectMsg) tea.Cmd {
	if m.form != nil {
		if path, ok := m.form.form.Fire(msg.token); ok {
			return m.navigate(path)
		}
	}
	if m.editor != nil {
		if path, ok := m.editor.redirect.Fire(msg.token); ok {
			return m.navigate(path)
		}
	}
	m.logger.Debug("dropped redirect", "token", msg.token)
	return nil
}

func (m Model) formCancelPath() string {
	if m.route.kind == routeDeleteRecipe {
		return recipePath(m.route.id)
	}
	return "/"
}

// renderForm renders the mutation form centered in the content area.
func (m Model) renderForm() string {
	s := m.form
	if s == nil {
		return ""
	}
	styles := m.theme.Styles()
	cfg := s.form.Config()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(cfg.FormTitle))
	b.WriteString("\n\n")

	var prompt, action string
	if cfg.Action == mutation.ActionDelete {
		prompt = fmt.Sprintf("Are you sure you want to delete this %s? Type delete below to confirm.", cfg.Kind)
		action = "Confirm Deletion"
	} else {
		prompt = fmt.Sprintf("Enter the new %s name:", cfg.Kind)
		action = "Add " + string(cfg.Kind)
	}
	b.WriteString(styles.MutedText.Render(prompt))
	b.WriteString("\n\n")
	b.WriteString(s.input.View())
	b.WriteString("\n\n")

	switch s.form.Status() {
	case mutation.StatusPending:
		b.WriteString(m.spinner.View() + " " + styles.MutedText.Render("Working..."))
	case mutation.StatusError:
		b.WriteString(styles.DangerText.Render(s.form.Message()))
	case mutation.StatusSuccess:
		b.WriteString(styles.SuccessText.Render(s.form.Message()))
	}
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("Enter: " + action + "  •  Esc: Cancel"))

	panel := styles.Panel.Width(52)
	if cfg.Action == mutation.ActionDelete {
		panel = panel.BorderForeground(lipgloss.Color(m.theme.Danger))
	}
	return lipgloss.Place(
		m.contentWidth(),
		m.contentHeight(),
		lipgloss.Center,
		lipgloss.Center,
		panel.Render(b.String()),
	)
}
