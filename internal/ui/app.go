package ui

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/cookbook/internal/mutation"
	"github.com/five82/cookbook/internal/prefs"
	"github.com/five82/cookbook/internal/recipes"
)

const defaultRequestTimeout = 10 * time.Second

// API is the part of the recipe client the UI drives. *recipes.Client
// satisfies it.
type API interface {
	recipes.Catalog
	mutation.Executor
	BaseURL() string
	CreateRecipe(ctx context.Context, draft recipes.Draft) (recipes.Recipe, error)
	UpdateRecipe(ctx context.Context, id int64, draft recipes.Draft) (recipes.Recipe, error)
	ParseRecipe(ctx context.Context, pageURL string) (recipes.ParsedRecipe, error)
}

var _ API = (*recipes.Client)(nil)

// Options configures the UI.
type Options struct {
	Context        context.Context
	Client         API
	Logger         *slog.Logger
	RequestTimeout time.Duration
	ThemeName      string
	PrefsPath      string
	// Notice is shown in the footer until the first navigation.
	Notice string
	// StartPath is the first screen; empty means the catalog.
	StartPath string
}

type afterFunc func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	api       API
	logger    *slog.Logger
	timeout   time.Duration
	prefsPath string
	after     afterFunc

	keys     keyMap
	theme    Theme
	width    int
	height   int
	ready    bool
	showHelp bool
	modal    Modal
	notice   string
	spinner  spinner.Model
	initCmd  tea.Cmd

	// Exactly one screen is mounted, selected by route.
	route   route
	catalog *catalogScreen
	form    *formScreen
	detail  *detailScreen
	editor  *editorScreen
}

// New creates the root model and mounts the start screen.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.Default().Theme
	}

	m := Model{
		ctx:       ctx,
		api:       opts.Client,
		logger:    logger,
		timeout:   timeout,
		prefsPath: prefsPath,
		after:     tea.Tick,
		keys:      DefaultKeyMap(),
		theme:     GetTheme(themeName),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	m.initCmd = m.navigate(opts.StartPath)
	m.notice = opts.Notice
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.initCmd, m.spinner.Tick)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case recipesMsg:
		m.handleRecipes(msg)
		return m, nil

	case categoriesMsg:
		m.handleCategories(msg)
		return m, nil

	case lookupSubmitMsg:
		return m, m.handleLookup(msg)

	case mutationDoneMsg:
		return m, m.handleMutationDone(msg)

	case redirectMsg:
		return m, m.handleRedirect(msg)

	case recipeMsg:
		m.handleRecipe(msg)
		return m, nil

	case editorLoadedMsg:
		m.handleEditorLoaded(msg)
		return m, nil

	case editorSavedMsg:
		return m, m.handleEditorSaved(msg)

	case editorParsedMsg:
		m.handleEditorParsed(msg)
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}
	return m.renderMain()
}

// navigate tears down the mounted screen and mounts the one for path.
// Unknown paths fall back to the catalog.
func (m *Model) navigate(path string) tea.Cmd {
	next, err := parseRoute(path)
	if err != nil {
		m.logger.Warn("navigation failed", "path", path, "error", err)
		next = route{kind: routeCatalog}
	}
	m.teardown()
	m.route = next
	m.notice = ""
	m.logger.Debug("navigate", "path", next.String())

	switch next.kind {
	case routeNewCategory:
		return m.mountForm(mutation.CreateCategory(m.baseURL()), "")
	case routeDeleteCategory:
		return m.mountForm(mutation.DeleteCategory(m.baseURL()), strconv.FormatInt(next.id, 10))
	case routeDeleteRecipe:
		return m.mountForm(mutation.DeleteRecipe(m.baseURL()), strconv.FormatInt(next.id, 10))
	case routeRecipe:
		return m.mountDetail(next.id)
	case routeNewRecipe:
		return m.mountEditor(0)
	case routeEditRecipe:
		return m.mountEditor(next.id)
	default:
		return m.mountCatalog()
	}
}

// teardown discards the mounted screen. Forms and the editor are closed so
// a pending redirect can no longer fire.
func (m *Model) teardown() {
	if m.form != nil {
		m.form.form.Close()
	}
	if m.editor != nil {
		m.editor.redirect.Close()
	}
	m.catalog = nil
	m.form = nil
	m.detail = nil
	m.editor = nil
	m.modal = nil
}

func (m *Model) baseURL() string {
	if m.api == nil {
		return ""
	}
	return m.api.BaseURL()
}

// handleKey processes keyboard input. Global keys are ignored while a text
// field has focus so they can be typed.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.modal != nil {
		modal, cmd, closed := m.modal.Update(msg, m.keys)
		if closed {
			m.modal = nil
		} else {
			m.modal = modal
		}
		return m, cmd
	}

	if !m.capturingText() {
		switch {
		case key.Matches(msg, m.keys.Help):
			m.showHelp = true
			return m, nil
		case key.Matches(msg, m.keys.CycleTheme):
			m.cycleTheme()
			return m, nil
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		}
	}

	switch m.route.kind {
	case routeCatalog:
		return m.handleCatalogKey(msg)
	case routeNewCategory, routeDeleteCategory, routeDeleteRecipe:
		return m.handleFormKey(msg)
	case routeRecipe:
		return m.handleDetailKey(msg)
	case routeNewRecipe, routeEditRecipe:
		return m.handleEditorKey(msg)
	}
	return m, nil
}

func (m Model) capturingText() bool {
	switch m.route.kind {
	case routeCatalog:
		return m.catalog != nil && m.catalog.searching
	case routeRecipe:
		return false
	default:
		return true
	}
}

func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name}); err != nil {
		m.logger.Warn("save preferences failed", "path", m.prefsPath, "error", err)
	}
	m.refreshDetail()
}

func (m *Model) resize() {
	if m.detail != nil {
		m.detail.viewport.Width = m.contentWidth()
		m.detail.viewport.Height = m.contentHeight()
		m.refreshDetail()
	}
	if m.editor != nil {
		m.editor.resize(m.contentWidth())
	}
}

func (m Model) contentWidth() int {
	if m.width <= 0 {
		return 80
	}
	return m.width
}

// contentHeight is the space between the header and footer bars.
func (m Model) contentHeight() int {
	if m.height <= 2 {
		return 20
	}
	return m.height - 2
}

// renderMain renders header, the mounted screen and the footer.
func (m Model) renderMain() string {
	content := ""
	switch m.route.kind {
	case routeCatalog:
		content = m.renderCatalog()
	case routeNewCategory, routeDeleteCategory, routeDeleteRecipe:
		content = m.renderForm()
	case routeRecipe:
		content = m.renderDetail()
	case routeNewRecipe, routeEditRecipe:
		content = m.renderEditor()
	}
	content = lipgloss.NewStyle().
		Width(m.contentWidth()).
		Height(m.contentHeight()).
		MaxHeight(m.contentHeight()).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), content, m.renderFooter())
}

func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	left := bg.Join([]string{
		bg.Render("cookbook", styles.Logo),
		bg.Render(m.route.String(), styles.MutedText),
	}, "  ")
	right := bg.Render(hostOf(m.baseURL()), styles.FaintText)
	return bg.Spread(bg.Spaces(1)+left, right+bg.Spaces(1), m.contentWidth())
}

func (m Model) renderFooter() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	var left string
	if m.notice != "" {
		left = bg.Render(m.notice, styles.WarningText)
	}
	hints := make([]string, 0, 3)
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		hints = append(hints, bg.Render(h.Key, styles.AccentText)+bg.Space()+bg.Render(h.Desc, styles.MutedText))
	}
	right := bg.Join(hints, "  ")
	return bg.Spread(bg.Spaces(1)+left, right+bg.Spaces(1), m.contentWidth())
}

func hostOf(base string) string {
	return strings.TrimPrefix(strings.TrimPrefix(base, "http://"), "https://")
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		programOpts = append(programOpts, tea.WithContext(opts.Context))
	}
	p := tea.NewProgram(m, programOpts...)
	_, err := p.Run()
	return err
}
