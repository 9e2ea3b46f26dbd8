package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/cookbook/internal/mutation"
	"github.com/five82/cookbook/internal/recipes"
)

type editorField int

const (
	fieldImport editorField = iota
	fieldTitle
	fieldDescription
	fieldInstructions
	fieldIngredients
	fieldCategories
	fieldImage
	fieldCount
)

var fieldLabels = [fieldCount]string{
	fieldImport:       "Import URL",
	fieldTitle:        "Title",
	fieldDescription:  "Description",
	fieldInstructions: "Instructions",
	fieldIngredients:  "Ingredients",
	fieldCategories:   "Categories",
	fieldImage:        "Image file",
}

// editorScreen creates a recipe (id zero) or edits an existing one.
type editorScreen struct {
	id      int64
	loading bool
	busy    bool
	focus   editorField

	source     textinput.Model
	title      textinput.Model
	categories textinput.Model
	image      textinput.Model

	description  textarea.Model
	instructions textarea.Model
	ingredients  textarea.Model

	message  string
	failed   bool
	redirect mutation.Redirector
}

type editorLoadedMsg struct {
	screen *editorScreen
	recipe recipes.Recipe
	err    error
}

type editorSavedMsg struct {
	screen *editorScreen
	recipe recipes.Recipe
	err    error
}

type editorParsedMsg struct {
	screen *editorScreen
	parsed recipes.ParsedRecipe
	err    error
}

func newEditorScreen(id int64, width int) *editorScreen {
	line := func(placeholder string, limit int) textinput.Model {
		return newTextInput(placeholder, limit, 0)
	}
	area := newTextArea

	s := &editorScreen{
		id:           id,
		focus:        fieldTitle,
		source:       line("https://example.com/some-recipe", 500),
		title:        line("Recipe title", 200),
		categories:   line("Dinner, Vegan", 300),
		image:        line("~/Pictures/dish.jpg", 500),
		description:  area("A short description", 2),
		instructions: area("One step per line", 5),
		ingredients:  area("2 cups | flour", 5),
	}
	s.resize(width)
	return s
}

func (s *editorScreen) resize(width int) {
	w := max(width-18, 20)
	s.source.Width = w
	s.title.Width = w
	s.categories.Width = w
	s.image.Width = w
	s.description.SetWidth(w)
	s.instructions.SetWidth(w)
	s.ingredients.SetWidth(w)
}

// focusField moves focus to f and blurs every other field.
func (s *editorScreen) focusField(f editorField) tea.Cmd {
	s.focus = f
	s.source.Blur()
	s.title.Blur()
	s.categories.Blur()
	s.image.Blur()
	s.description.Blur()
	s.instructions.Blur()
	s.ingredients.Blur()

	switch f {
	case fieldImport:
		return s.source.Focus()
	case fieldTitle:
		return s.title.Focus()
	case fieldDescription:
		return s.description.Focus()
	case fieldInstructions:
		return s.instructions.Focus()
	case fieldIngredients:
		return s.ingredients.Focus()
	case fieldCategories:
		return s.categories.Focus()
	case fieldImage:
		return s.image.Focus()
	}
	return nil
}

func (s *editorScreen) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch s.focus {
	case fieldImport:
		s.source, cmd = s.source.Update(msg)
	case fieldTitle:
		s.title, cmd = s.title.Update(msg)
	case fieldDescription:
		s.description, cmd = s.description.Update(msg)
	case fieldInstructions:
		s.instructions, cmd = s.instructions.Update(msg)
	case fieldIngredients:
		s.ingredients, cmd = s.ingredients.Update(msg)
	case fieldCategories:
		s.categories, cmd = s.categories.Update(msg)
	case fieldImage:
		s.image, cmd = s.image.Update(msg)
	}
	return cmd
}

func (s *editorScreen) singleLine(f editorField) bool {
	switch f {
	case fieldDescription, fieldInstructions, fieldIngredients:
		return false
	}
	return true
}

// draft collects the form into a create/update payload.
func (s *editorScreen) draft() recipes.Draft {
	return recipes.Draft{
		Title:        strings.TrimSpace(s.title.Value()),
		Description:  strings.TrimSpace(s.description.Value()),
		Instructions: splitLines(s.instructions.Value()),
		Ingredients:  parseIngredients(s.ingredients.Value()),
		Categories:   splitCategories(s.categories.Value()),
		ImagePath:    strings.TrimSpace(s.image.Value()),
	}
}

func (s *editorScreen) fill(title, description string, instructions []string, ingredients []recipes.Ingredient, categories []string) {
	s.title.SetValue(title)
	s.description.SetValue(description)
	s.instructions.SetValue(strings.Join(instructions, "\n"))
	s.ingredients.SetValue(formatIngredients(ingredients))
	s.categories.SetValue(strings.Join(categories, ", "))
}

func (s *editorScreen) setResult(msg string, failed bool) {
	s.message = msg
	s.failed = failed
}

func (m *Model) mountEditor(id int64) tea.Cmd {
	s := newEditorScreen(id, m.contentWidth())
	m.editor = s
	focus := s.focusField(fieldTitle)
	if id == 0 || m.api == nil {
		return focus
	}

	s.loading = true
	api, ctx, timeout := m.api, m.ctx, m.timeout
	return tea.Batch(focus, func() tea.Msg {
		reqCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		r, err := api.FetchRecipe(reqCtx, id)
		return editorLoadedMsg{screen: s, recipe: r, err: err}
	})
}

func (m *Model) handleEditorLoaded(msg editorLoadedMsg) {
	s := m.editor
	if s == nil || msg.screen != s {
		return
	}
	s.loading = false
	if msg.err != nil {
		m.logger.Warn("load recipe for edit failed", "id", s.id, "error", msg.err)
		s.setResult(describeRecipeLoad(msg.err), true)
		return
	}
	r := msg.recipe
	s.fill(r.TitleText(), r.DescriptionText(), r.Instructions, r.Ingredients, r.Categories)
}

// handleEditorKey processes keyboard input for the recipe editor.
func (m Model) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.editor
	if s == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		if s.id > 0 {
			return m, m.navigate(recipePath(s.id))
		}
		return m, m.navigate("/")
	case key.Matches(msg, m.keys.NextField):
		return m, s.focusField((s.focus + 1) % fieldCount)
	case key.Matches(msg, m.keys.PrevField):
		return m, s.focusField((s.focus + fieldCount - 1) % fieldCount)
	case key.Matches(msg, m.keys.Save):
		return m, m.saveEditor()
	case key.Matches(msg, m.keys.Import):
		return m, m.importIntoEditor()
	case key.Matches(msg, m.keys.Submit) && s.singleLine(s.focus):
		if s.focus == fieldImport {
			return m, m.importIntoEditor()
		}
		return m, s.focusField((s.focus + 1) % fieldCount)
	}
	return m, s.updateFocused(msg)
}

// saveEditor validates the form and starts the create or update call.
func (m *Model) saveEditor() tea.Cmd {
	s := m.editor
	if s.busy || s.loading || s.redirect.Armed() {
		return nil
	}
	draft := s.draft()
	if draft.Title == "" {
		s.setResult("You must provide a recipe title.", true)
		return nil
	}
	if m.api == nil {
		s.setResult("An unexpected error occurred.", true)
		return nil
	}

	s.busy = true
	s.setResult("", false)
	api, ctx, timeout, id := m.api, m.ctx, m.timeout, s.id
	return func() tea.Msg {
		reqCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		var (
			saved recipes.Recipe
			err   error
		)
		if id > 0 {
			saved, err = api.UpdateRecipe(reqCtx, id, draft)
		} else {
			saved, err = api.CreateRecipe(reqCtx, draft)
		}
		return editorSavedMsg{screen: s, recipe: saved, err: err}
	}
}

func (m *Model) handleEditorSaved(msg editorSavedMsg) tea.Cmd {
	s := m.editor
	if s == nil || msg.screen != s {
		return nil
	}
	s.busy = false

	verb := "create"
	if s.id > 0 {
		verb = "update"
	}
	if msg.err != nil {
		m.logger.Warn("save recipe failed", "id", s.id, "error", msg.err)
		s.setResult(recipes.Describe(msg.err, "Failed to "+verb+" recipe.", "An unexpected error occurred."), true)
		return nil
	}

	m.logger.Info("recipe saved", "id", msg.recipe.ID, "action", verb)
	if s.id > 0 {
		s.setResult("Recipe updated successfully!", false)
	} else {
		s.setResult("Recipe created successfully!", false)
	}
	redirect, ok := s.redirect.Arm("/")
	if !ok {
		return nil
	}
	return m.scheduleRedirect(redirect.After, redirect.Token)
}

// importIntoEditor asks the API to extract a recipe from the import URL.
func (m *Model) importIntoEditor() tea.Cmd {
	s := m.editor
	if s.busy || s.redirect.Armed() {
		return nil
	}
	pageURL := strings.TrimSpace(s.source.Value())
	if pageURL == "" {
		s.setResult("Enter a recipe URL to import.", true)
		return s.focusField(fieldImport)
	}
	if m.api == nil {
		s.setResult("An unexpected error occurred while fetching the recipe.", true)
		return nil
	}

	s.busy = true
	s.setResult("", false)
	api, ctx, timeout := m.api, m.ctx, m.timeout
	return func() tea.Msg {
		reqCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		parsed, err := api.ParseRecipe(reqCtx, pageURL)
		return editorParsedMsg{screen: s, parsed: parsed, err: err}
	}
}

func (m *Model) handleEditorParsed(msg editorParsedMsg) {
	s := m.editor
	if s == nil || msg.screen != s {
		return
	}
	s.busy = false
	if msg.err != nil {
		m.logger.Warn("import recipe failed", "error", msg.err)
		s.setResult(recipes.Describe(msg.err,
			"Failed to import recipe.",
			"An unexpected error occurred while fetching the recipe."), true)
		return
	}
	p := msg.parsed
	s.fill(p.Title, p.Description, p.Instructions, p.Ingredients, p.Categories)
	s.setResult("Recipe successfully retrieved from AI!", false)
}

func (m Model) renderEditor() string {
	s := m.editor
	if s == nil {
		return ""
	}
	styles := m.theme.Styles()

	heading := "New Recipe"
	if s.id > 0 {
		heading = "Edit Recipe"
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(heading))
	if s.loading || s.busy {
		b.WriteString(" " + m.spinner.View())
	}
	b.WriteString("\n\n")

	label := func(f editorField) string {
		text := lipgloss.NewStyle().Width(14).Render(fieldLabels[f])
		if s.focus == f {
			return styles.AccentText.Render(text)
		}
		return styles.MutedText.Render(text)
	}
	row := func(f editorField, view string) {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, label(f), view))
		b.WriteString("\n")
	}

	row(fieldImport, s.source.View())
	b.WriteString("\n")
	row(fieldTitle, s.title.View())
	row(fieldDescription, s.description.View())
	row(fieldInstructions, s.instructions.View())
	row(fieldIngredients, s.ingredients.View())
	row(fieldCategories, s.categories.View())
	row(fieldImage, s.image.View())

	if s.message != "" {
		b.WriteString("\n")
		if s.failed {
			b.WriteString(styles.DangerText.Render(s.message))
		} else {
			b.WriteString(styles.SuccessText.Render(s.message))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("tab: Next field  •  ctrl+s: Save  •  ctrl+o: Import  •  esc: Cancel"))
	return b.String()
}
