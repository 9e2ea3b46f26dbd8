package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/cookbook/internal/catalog"
	"github.com/five82/cookbook/internal/recipes"
)

// Each card renders as a bordered title and description.
const cardHeight = 4

// catalogScreen is the "/" screen: tabs, search and the recipe cards.
type catalogScreen struct {
	view      *catalog.View
	cursor    int
	search    textinput.Model
	searching bool
}

func newCatalogScreen() *catalogScreen {
	search := newTextInput("Search recipes by title", 80, 40)
	search.Prompt = "/ "
	return &catalogScreen{view: catalog.New(), search: search}
}

// Catalog messages carry the view that issued the fetch so results from a
// previous mount are dropped.

type recipesMsg struct {
	view    *catalog.View
	fetch   catalog.Fetch
	recipes []recipes.Recipe
	err     error
}

type categoriesMsg struct {
	view       *catalog.View
	fetch      catalog.Fetch
	categories []recipes.Category
	err        error
}

func (m *Model) mountCatalog() tea.Cmd {
	screen := newCatalogScreen()
	m.catalog = screen
	return m.fetchAll(screen.view, screen.view.Mount())
}

func (m *Model) fetchAll(view *catalog.View, fetches []catalog.Fetch) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(fetches))
	for _, f := range fetches {
		cmds = append(cmds, m.fetchCmd(view, f))
	}
	return tea.Batch(cmds...)
}

// fetchCmd performs one catalog fetch off the update loop.
func (m *Model) fetchCmd(view *catalog.View, f catalog.Fetch) tea.Cmd {
	api, ctx, timeout := m.api, m.ctx, m.timeout
	if api == nil {
		return nil
	}
	if f.Kind == catalog.FetchCategories {
		return func() tea.Msg {
			reqCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()
			list, err := api.FetchCategories(reqCtx)
			return categoriesMsg{view: view, fetch: f, categories: list, err: err}
		}
	}
	return func() tea.Msg {
		reqCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		list, err := api.FetchRecipes(reqCtx, f.CategoryID())
		return recipesMsg{view: view, fetch: f, recipes: list, err: err}
	}
}

func (m *Model) handleRecipes(msg recipesMsg) {
	s := m.catalog
	if s == nil || msg.view != s.view {
		return
	}
	if !s.view.ApplyRecipes(msg.fetch, msg.recipes, msg.err) {
		m.logger.Debug("discarded stale recipe list", "tab", string(msg.fetch.Tab), "seq", msg.fetch.Seq)
		return
	}
	if msg.err != nil {
		m.logger.Warn("fetch recipes failed", "tab", string(msg.fetch.Tab), "error", msg.err)
	}
	s.clampCursor()
}

func (m *Model) handleCategories(msg categoriesMsg) {
	s := m.catalog
	if s == nil || msg.view != s.view {
		return
	}
	if !s.view.ApplyCategories(msg.fetch, msg.categories, msg.err) {
		m.logger.Debug("discarded stale category list", "seq", msg.fetch.Seq)
		return
	}
	if msg.err != nil {
		m.logger.Warn("fetch categories failed", "error", msg.err)
	}
	s.clampCursor()
}

func (s *catalogScreen) clampCursor() {
	n := len(s.view.Visible())
	if s.cursor >= n {
		s.cursor = n - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

func (s *catalogScreen) selected() (recipes.Recipe, bool) {
	visible := s.view.Visible()
	if s.cursor < 0 || s.cursor >= len(visible) {
		return recipes.Recipe{}, false
	}
	return visible[s.cursor], true
}

// handleCatalogKey processes keyboard input for the catalog screen.
func (m Model) handleCatalogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.catalog
	if s == nil {
		return m, nil
	}
	if s.searching {
		return m.handleSearchInput(msg)
	}

	switch {
	case key.Matches(msg, m.keys.PrevTab):
		return m, m.shiftTab(-1)
	case key.Matches(msg, m.keys.NextTab):
		return m, m.shiftTab(1)
	case key.Matches(msg, m.keys.JumpTab):
		idx := int(msg.String()[0] - '1')
		tabs := s.view.Tabs()
		if idx < len(tabs) {
			return m, m.selectTab(tabs[idx].Key)
		}
		return m, nil
	case key.Matches(msg, m.keys.Up):
		if s.cursor > 0 {
			s.cursor--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if s.cursor < len(s.view.Visible())-1 {
			s.cursor++
		}
		return m, nil
	case key.Matches(msg, m.keys.Open):
		if r, ok := s.selected(); ok {
			return m, m.navigate(recipePath(r.ID))
		}
		return m, nil
	case key.Matches(msg, m.keys.Search):
		s.searching = true
		s.view.SetSearchMode(true)
		s.search.SetValue(s.view.Selection().SearchQuery)
		return m, s.search.Focus()
	case key.Matches(msg, m.keys.Back):
		if s.view.Selection().SearchMode {
			s.view.SetSearchMode(false)
			s.search.SetValue("")
			s.clampCursor()
		}
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		return m, m.fetchAll(s.view, s.view.Refresh())
	case key.Matches(msg, m.keys.NewRecipe):
		return m, m.navigate(route{kind: routeNewRecipe}.String())
	case key.Matches(msg, m.keys.NewCategory):
		return m, m.navigate(route{kind: routeNewCategory}.String())
	case key.Matches(msg, m.keys.DeleteCategory):
		modal, cmd := newLookupModal()
		m.modal = modal
		return m, cmd
	}
	return m, nil
}

// handleSearchInput feeds keys to the search box. The filter updates on
// every keystroke; enter keeps it, esc clears it.
func (m Model) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.catalog
	switch {
	case key.Matches(msg, m.keys.Submit):
		s.searching = false
		s.search.Blur()
		if strings.TrimSpace(s.search.Value()) == "" {
			s.view.SetSearchMode(false)
		}
		return m, nil
	case key.Matches(msg, m.keys.Back):
		s.searching = false
		s.search.Blur()
		s.search.SetValue("")
		s.view.SetSearchMode(false)
		s.clampCursor()
		return m, nil
	}

	var cmd tea.Cmd
	s.search, cmd = s.search.Update(msg)
	s.view.SetQuery(s.search.Value())
	s.cursor = 0
	return m, cmd
}

func (m *Model) shiftTab(delta int) tea.Cmd {
	s := m.catalog
	tabs := s.view.Tabs()
	current := 0
	for i, t := range tabs {
		if t.Key == s.view.Selection().ActiveTab {
			current = i
			break
		}
	}
	next := (current + delta + len(tabs)) % len(tabs)
	return m.selectTab(tabs[next].Key)
}

func (m *Model) selectTab(tab catalog.TabKey) tea.Cmd {
	s := m.catalog
	f := s.view.SelectTab(tab)
	s.cursor = 0
	return m.fetchCmd(s.view, f)
}

// handleLookup resolves the name typed into the delete-category prompt.
func (m *Model) handleLookup(msg lookupSubmitMsg) tea.Cmd {
	lm, ok := m.modal.(*lookupModal)
	if !ok || m.catalog == nil {
		return nil
	}
	if !m.catalog.view.HasCategories() {
		lm.setMessage("Categories have not loaded yet.", nil)
		return nil
	}
	id, err := m.catalog.view.LookupCategory(msg.name)
	if err != nil {
		lm.fail(err)
		return nil
	}
	m.modal = nil
	return m.navigate(categoryDeletePath(id))
}

// renderCatalog renders tabs, the search box and recipe cards.
func (m Model) renderCatalog() string {
	s := m.catalog
	if s == nil {
		return ""
	}
	styles := m.theme.Styles()
	width := m.contentWidth()

	lines := []string{m.renderTabs(), ""}
	sel := s.view.Selection()
	if sel.SearchMode {
		lines = append(lines, s.search.View(), "")
	}
	if msg := s.view.Err(); msg != "" {
		lines = append(lines, styles.DangerText.Render(msg), "")
	}

	visible := s.view.Visible()
	switch {
	case len(visible) == 0 && s.view.Loading():
		lines = append(lines, m.spinner.View()+" "+styles.MutedText.Render("Loading recipes..."))
	case len(visible) == 0 && sel.SearchMode && sel.SearchQuery != "":
		lines = append(lines, styles.MutedText.Render(fmt.Sprintf("No recipes match %q.", sel.SearchQuery)))
	case len(visible) == 0:
		lines = append(lines, styles.MutedText.Render("No recipes found."))
	default:
		used := lipgloss.Height(strings.Join(lines, "\n"))
		room := (m.contentHeight() - used) / cardHeight
		if room < 1 {
			room = 1
		}
		start := 0
		if s.cursor >= room {
			start = s.cursor - room + 1
		}
		end := min(start+room, len(visible))
		for i := start; i < end; i++ {
			lines = append(lines, m.renderCard(visible[i], i == s.cursor, width))
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderTabs() string {
	s := m.catalog
	styles := m.theme.Styles()
	active := s.view.Selection().ActiveTab

	parts := make([]string, 0, len(s.view.Tabs()))
	for i, t := range s.view.Tabs() {
		label := t.Label
		if i < 9 {
			label = fmt.Sprintf("%d %s", i+1, t.Label)
		}
		if t.Key == active {
			parts = append(parts, styles.ActiveTab.Render(label))
		} else {
			parts = append(parts, styles.Tab.Render(label))
		}
	}
	if s.view.Loading() {
		parts = append(parts, " "+m.spinner.View())
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) renderCard(r recipes.Recipe, selected bool, width int) string {
	styles := m.theme.Styles()
	inner := max(width-4, 10)
	box := styles.Card
	title := styles.Text.Bold(true).Render(truncate(r.DisplayTitle(), inner))
	if selected {
		box = styles.SelectedCard
		title = styles.AccentText.Bold(true).Render(truncate(r.DisplayTitle(), inner))
	}
	desc := styles.MutedText.Render(truncate(r.DisplayDescription(), inner))
	return box.Width(width - 2).Render(title + "\n" + desc)
}

// truncate shortens s to at most n cells, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if lipgloss.Width(s) <= n {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > n {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
