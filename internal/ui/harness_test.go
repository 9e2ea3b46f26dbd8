package ui

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/cookbook/internal/recipes"
	"github.com/five82/cookbook/internal/testutil"
)

// cmdWait bounds how long a command may block. Text fields use a static
// cursor under test and the spinner tick is never started, so only API
// calls are waited on.
const cmdWait = 2 * time.Second

func TestMain(m *testing.M) {
	cursorMode = cursor.CursorStatic
	os.Exit(m.Run())
}

type scheduled struct {
	after time.Duration
	fn    func(time.Time) tea.Msg
}

// harness drives a Model synchronously: commands run to completion and
// their messages are fed back through Update.
type harness struct {
	t     *testing.T
	model Model
	timer []scheduled
	prefs string
}

func fixtures() ([]recipes.Category, []recipes.Recipe) {
	tofu := recipes.Recipe{
		ID:           1,
		Title:        recipes.StringPtr("Tofu Bowl"),
		Description:  recipes.StringPtr("Crispy tofu over rice"),
		Instructions: []string{"Press the tofu", "Bake until golden"},
		Ingredients:  []recipes.Ingredient{{Name: "tofu", Quantity: "1 block"}, {Name: "rice"}},
		Categories:   []string{"Vegan"},
	}
	bread := recipes.Recipe{ID: 2, Title: recipes.StringPtr("Banana Bread"), Categories: []string{"Breakfast"}}
	pancakes := recipes.Recipe{ID: 3, Title: recipes.StringPtr("Pancakes"), Categories: []string{"Breakfast"}}

	categories := []recipes.Category{
		{ID: 1, Name: "Breakfast", Recipes: []recipes.Recipe{bread, pancakes}},
		{ID: 2, Name: "Vegan", Recipes: []recipes.Recipe{tofu}},
	}
	return categories, []recipes.Recipe{tofu, bread, pancakes}
}

func newFake(t *testing.T) *testutil.FakeAPI {
	t.Helper()
	categories, all := fixtures()
	return testutil.NewFakeAPI(t, categories, all)
}

// newHarness mounts start against fake and runs the mount commands.
func newHarness(t *testing.T, fake *testutil.FakeAPI, start string) *harness {
	t.Helper()
	client, err := recipes.NewClient(fake.URL())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	h := &harness{t: t, prefs: filepath.Join(t.TempDir(), "prefs.toml")}
	h.model = New(Options{Client: client, PrefsPath: h.prefs, StartPath: start})
	h.model.after = func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
		h.timer = append(h.timer, scheduled{after: d, fn: fn})
		return nil
	}
	h.send(tea.WindowSizeMsg{Width: 100, Height: 40})
	h.run(h.model.initCmd)
	return h
}

func (h *harness) send(msg tea.Msg) {
	h.t.Helper()
	next, cmd := h.model.Update(msg)
	h.model = next.(Model)
	h.run(cmd)
}

func (h *harness) run(cmd tea.Cmd) {
	for _, msg := range collect(cmd) {
		h.send(msg)
	}
}

// sendOnly updates the model and returns the messages its command
// produced without delivering them.
func (h *harness) sendOnly(msg tea.Msg) []tea.Msg {
	next, cmd := h.model.Update(msg)
	h.model = next.(Model)
	return collect(cmd)
}

func (h *harness) deliver(msgs ...tea.Msg) {
	for _, msg := range msgs {
		h.send(msg)
	}
}

// fireTimers expires every scheduled redirect.
func (h *harness) fireTimers() {
	pending := h.timer
	h.timer = nil
	for _, s := range pending {
		h.send(s.fn(time.Now()))
	}
}

func (h *harness) press(keys ...tea.KeyType) {
	for _, k := range keys {
		h.send(tea.KeyMsg{Type: k})
	}
}

// typeText delivers s as one rune burst, the way a paste arrives.
func (h *harness) typeText(s string) {
	h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

// collect runs cmd and returns the application messages it produced.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(cmdWait):
		return nil
	}

	switch msg := msg.(type) {
	case tea.BatchMsg:
		results := make([][]tea.Msg, len(msg))
		var wg sync.WaitGroup
		for i, c := range msg {
			wg.Add(1)
			go func() {
				defer wg.Done()
				results[i] = collect(c)
			}()
		}
		wg.Wait()
		var out []tea.Msg
		for _, r := range results {
			out = append(out, r...)
		}
		return out
	case recipesMsg, categoriesMsg, lookupSubmitMsg, mutationDoneMsg, redirectMsg,
		recipeMsg, editorLoadedMsg, editorSavedMsg, editorParsedMsg, tea.QuitMsg:
		return []tea.Msg{msg}
	}
	return nil
}

func titles(items []recipes.Recipe) []string {
	out := make([]string, 0, len(items))
	for _, r := range items {
		out = append(out, r.DisplayTitle())
	}
	return out
}
