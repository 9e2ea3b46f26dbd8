package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/cookbook/internal/recipes"
)

// detailScreen shows one recipe in a scrollable viewport.
type detailScreen struct {
	id       int64
	recipe   *recipes.Recipe
	err      string
	viewport viewport.Model
}

type recipeMsg struct {
	screen *detailScreen
	recipe recipes.Recipe
	err    error
}

func (m *Model) mountDetail(id int64) tea.Cmd {
	s := &detailScreen{id: id, viewport: viewport.New(m.contentWidth(), m.contentHeight())}
	m.detail = s

	api, ctx, timeout := m.api, m.ctx, m.timeout
	if api == nil {
		return nil
	}
	return func() tea.Msg {
		reqCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		r, err := api.FetchRecipe(reqCtx, id)
		return recipeMsg{screen: s, recipe: r, err: err}
	}
}

func (m *Model) handleRecipe(msg recipeMsg) {
	s := m.detail
	if s == nil || msg.screen != s {
		return
	}
	if msg.err != nil {
		m.logger.Warn("fetch recipe failed", "id", s.id, "error", msg.err)
		s.err = describeRecipeLoad(msg.err)
		return
	}
	r := msg.recipe
	s.recipe = &r
	s.err = ""
	m.refreshDetail()
}

// describeRecipeLoad is the inline text for a failed GET /recipes/{id}.
func describeRecipeLoad(err error) string {
	if recipes.IsNotFound(err) {
		return "Recipe not found."
	}
	return recipes.Describe(err,
		"Failed to fetch recipe details.",
		"An unexpected error occurred while fetching the recipe details.")
}

// refreshDetail re-renders the recipe body into the viewport.
func (m *Model) refreshDetail() {
	s := m.detail
	if s == nil || s.recipe == nil {
		return
	}
	s.viewport.SetContent(m.renderRecipeBody(*s.recipe))
}

// handleDetailKey processes keyboard input for the recipe detail screen.
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.detail
	if s == nil {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Back):
		return m, m.navigate("/")
	case key.Matches(msg, m.keys.Edit):
		return m, m.navigate(route{kind: routeEditRecipe, id: s.id}.String())
	case key.Matches(msg, m.keys.DeleteRecipe):
		return m, m.navigate(route{kind: routeDeleteRecipe, id: s.id}.String())
	case key.Matches(msg, m.keys.Down):
		s.viewport.ScrollDown(1)
	case key.Matches(msg, m.keys.Up):
		s.viewport.ScrollUp(1)
	case key.Matches(msg, m.keys.HalfPageDown):
		s.viewport.HalfPageDown()
	case key.Matches(msg, m.keys.HalfPageUp):
		s.viewport.HalfPageUp()
	}
	return m, nil
}

func (m Model) renderDetail() string {
	s := m.detail
	if s == nil {
		return ""
	}
	styles := m.theme.Styles()
	switch {
	case s.err != "":
		return styles.DangerText.Render(s.err)
	case s.recipe == nil:
		return m.spinner.View() + " " + styles.MutedText.Render("Loading...")
	}
	return s.viewport.View()
}

// renderRecipeBody lays out title, description, instructions, ingredients
// and categories. Absent fields get placeholders.
func (m Model) renderRecipeBody(r recipes.Recipe) string {
	styles := m.theme.Styles()
	width := m.contentWidth() - 2

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render(r.DisplayTitle()))
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Width(width).Render(r.DisplayDescription()))
	b.WriteString("\n")

	section := func(title string, items []string, empty string) {
		b.WriteString("\n")
		b.WriteString(styles.WarningText.Bold(true).Render(title))
		b.WriteString("\n")
		if len(items) == 0 {
			b.WriteString(styles.FaintText.Render("  " + empty))
			b.WriteString("\n")
			return
		}
		for _, item := range items {
			b.WriteString(styles.Text.Width(width).Render("  • " + item))
			b.WriteString("\n")
		}
	}

	section("Instructions", r.Instructions, "No instructions provided.")

	ingredients := make([]string, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		ingredients = append(ingredients, ing.String())
	}
	section("Ingredients", ingredients, "No ingredients listed.")
	section("Categories", r.Categories, "Uncategorized.")

	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(fmt.Sprintf("e: Edit  •  d: Delete  •  esc: Back  (recipe #%d)", r.ID)))
	return b.String()
}
