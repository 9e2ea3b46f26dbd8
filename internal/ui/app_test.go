package ui

import (
	"net/http"
	"reflect"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/cookbook/internal/catalog"
	"github.com/five82/cookbook/internal/mutation"
	"github.com/five82/cookbook/internal/prefs"
)

func TestModel_MountLoadsCatalog(t *testing.T) {
	fake := newFake(t)
	h := newHarness(t, fake, "")

	if h.model.route.kind != routeCatalog {
		t.Fatalf("route = %q, want /", h.model.route.String())
	}
	view := h.model.catalog.view
	if got, want := titles(view.Visible()), []string{"Tofu Bowl", "Banana Bread", "Pancakes"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("visible = %v, want %v", got, want)
	}
	if got := len(view.Tabs()); got != 3 {
		t.Fatalf("tabs = %d, want 3", got)
	}
	if fake.CallCount(http.MethodGet, "/recipes") != 1 || fake.CallCount(http.MethodGet, "/categories") != 1 {
		t.Fatalf("calls = %+v, want one recipes and one categories fetch", fake.Calls())
	}
	if out := h.model.View(); !strings.Contains(out, "Tofu Bowl") {
		t.Fatalf("View() missing recipe card:\n%s", out)
	}
}

func TestModel_TabsAndSearch(t *testing.T) {
	fake := newFake(t)
	h := newHarness(t, fake, "")

	h.typeText("l")
	view := h.model.catalog.view
	if got := view.Selection().ActiveTab; got != catalog.TabKey("1") {
		t.Fatalf("active tab = %q, want 1", got)
	}
	if got, want := titles(view.Visible()), []string{"Banana Bread", "Pancakes"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("breakfast tab = %v, want %v", got, want)
	}
	scoped := false
	for _, c := range fake.Calls() {
		if c.Path == "/recipes" && c.Query == "category_id=1" {
			scoped = true
		}
	}
	if !scoped {
		t.Fatalf("calls = %+v, want a category_id=1 fetch", fake.Calls())
	}

	h.typeText("/")
	if !h.model.catalog.searching {
		t.Fatalf("searching = false after /")
	}
	h.typeText("BAN")
	if got, want := titles(view.Visible()), []string{"Banana Bread"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("search = %v, want %v", got, want)
	}

	h.press(tea.KeyEnter)
	if h.model.catalog.searching {
		t.Fatalf("searching = true after enter")
	}
	if got := view.Selection().SearchQuery; got != "BAN" {
		t.Fatalf("query after enter = %q, want BAN", got)
	}

	h.press(tea.KeyEsc)
	if got := len(view.Visible()); got != 2 {
		t.Fatalf("visible after clearing search = %d, want 2", got)
	}

	h.typeText("3")
	if got, want := titles(view.Visible()), []string{"Tofu Bowl"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("vegan tab = %v, want %v", got, want)
	}
}

func TestModel_SearchCapturesGlobalKeys(t *testing.T) {
	h := newHarness(t, newFake(t), "")

	h.typeText("/")
	for _, msg := range h.sendOnly(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}) {
		if _, ok := msg.(tea.QuitMsg); ok {
			t.Fatalf("q quit while searching")
		}
	}
	if got := h.model.catalog.search.Value(); got != "q" {
		t.Fatalf("search value = %q, want q", got)
	}
}

func TestModel_StaleTabResultsDropped(t *testing.T) {
	h := newHarness(t, newFake(t), "")

	breakfast := h.sendOnly(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2")})
	vegan := h.sendOnly(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("3")})
	if len(breakfast) != 1 || len(vegan) != 1 {
		t.Fatalf("fetch messages = %d and %d, want 1 each", len(breakfast), len(vegan))
	}

	// The later tab answers first; the earlier one must not overwrite it.
	h.deliver(vegan...)
	h.deliver(breakfast...)

	view := h.model.catalog.view
	if got := view.Selection().ActiveTab; got != catalog.TabKey("2") {
		t.Fatalf("active tab = %q, want 2", got)
	}
	if got, want := titles(view.Visible()), []string{"Tofu Bowl"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("visible = %v, want %v", got, want)
	}
}

func TestModel_ResultsFromPreviousMountDropped(t *testing.T) {
	h := newHarness(t, newFake(t), "")

	old := h.sendOnly(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	if len(old) != 2 {
		t.Fatalf("refresh messages = %d, want 2", len(old))
	}

	h.press(tea.KeyEnter) // open the first recipe
	if h.model.route.kind != routeRecipe {
		t.Fatalf("route = %q, want recipe detail", h.model.route.String())
	}
	// The remount's own fetches are withheld.
	_ = h.sendOnly(tea.KeyMsg{Type: tea.KeyEsc})

	h.deliver(old...)
	if got := len(h.model.catalog.view.Visible()); got != 0 {
		t.Fatalf("visible = %d after stale delivery, want 0", got)
	}
}

func TestModel_DeleteCategoryLookup(t *testing.T) {
	h := newHarness(t, newFake(t), "")

	h.typeText("x")
	lm, ok := h.model.modal.(*lookupModal)
	if !ok {
		t.Fatalf("modal = %T, want *lookupModal", h.model.modal)
	}
	h.typeText("lunch")
	h.press(tea.KeyEnter)
	if want := `Category "lunch" not found.`; lm.message != want {
		t.Fatalf("message = %q, want %q", lm.message, want)
	}
	if h.model.route.kind != routeCatalog {
		t.Fatalf("route = %q, want /", h.model.route.String())
	}

	h.press(tea.KeyEsc)
	if h.model.modal != nil {
		t.Fatalf("modal still open after esc")
	}

	h.typeText("x")
	h.typeText("BREAKFAST")
	h.press(tea.KeyEnter)
	if got := h.model.route.String(); got != "/categories/1/delete" {
		t.Fatalf("route = %q, want /categories/1/delete", got)
	}
	if h.model.modal != nil {
		t.Fatalf("modal still open after navigation")
	}
}

func TestModel_DeleteCategoryForm(t *testing.T) {
	fake := newFake(t)
	h := newHarness(t, fake, "/categories/1/delete")

	h.typeText("nope")
	h.press(tea.KeyEnter)
	form := h.model.form.form
	if form.Status() != mutation.StatusError || form.Message() != "You must type 'delete' to confirm." {
		t.Fatalf("status = %s %q, want validation error", form.Status(), form.Message())
	}
	if n := fake.CallCount(http.MethodDelete, "/categories/1"); n != 0 {
		t.Fatalf("DELETE calls = %d, want 0", n)
	}

	h.press(tea.KeyBackspace, tea.KeyBackspace, tea.KeyBackspace, tea.KeyBackspace)
	h.typeText("DELETE")
	h.press(tea.KeyEnter)
	if form.Status() != mutation.StatusSuccess || form.Message() != "Category deleted successfully!" {
		t.Fatalf("status = %s %q, want success", form.Status(), form.Message())
	}
	if n := fake.CallCount(http.MethodDelete, "/categories/1"); n != 1 {
		t.Fatalf("DELETE calls = %d, want 1", n)
	}
	if len(h.timer) != 1 || h.timer[0].after != mutation.RedirectDelay {
		t.Fatalf("timers = %+v, want one %s redirect", h.timer, mutation.RedirectDelay)
	}

	// A second enter while the redirect is armed sends nothing.
	h.press(tea.KeyEnter)
	if n := fake.CallCount(http.MethodDelete, "/categories/1"); n != 1 {
		t.Fatalf("DELETE calls after resubmit = %d, want 1", n)
	}

	h.fireTimers()
	if h.model.route.kind != routeCatalog {
		t.Fatalf("route = %q after redirect, want /", h.model.route.String())
	}
	if got := fake.Categories(); !reflect.DeepEqual(got, []string{"Vegan"}) {
		t.Fatalf("categories = %v, want [Vegan]", got)
	}
}

func TestModel_MutationErrorShown(t *testing.T) {
	fake := newFake(t)
	h := newHarness(t, fake, "/categories/new")

	h.typeText("breakfast")
	h.press(tea.KeyEnter)
	form := h.model.form.form
	if form.Status() != mutation.StatusError || form.Message() != "Category already exists" {
		t.Fatalf("status = %s %q, want server message", form.Status(), form.Message())
	}
	if len(h.timer) != 0 {
		t.Fatalf("timers = %d, want none", len(h.timer))
	}
	if h.model.route.kind != routeNewCategory {
		t.Fatalf("route = %q, want form to stay mounted", h.model.route.String())
	}
}

func TestModel_RedirectDroppedAfterLeaving(t *testing.T) {
	fake := newFake(t)
	h := newHarness(t, fake, "/categories/new")

	h.typeText("Lunch")
	h.press(tea.KeyEnter)
	if got := h.model.form.form.Message(); got != "Category added successfully!" {
		t.Fatalf("message = %q, want success", got)
	}
	stale := h.timer
	h.timer = nil

	h.press(tea.KeyEsc)
	if h.model.route.kind != routeCatalog {
		t.Fatalf("route = %q after esc, want /", h.model.route.String())
	}

	next := h.model.navigate("/categories/new")
	h.run(next)
	for _, s := range stale {
		h.send(s.fn(time.Now()))
	}
	if h.model.route.kind != routeNewCategory {
		t.Fatalf("route = %q, stale redirect navigated away", h.model.route.String())
	}
}

func TestModel_RecipeDetail(t *testing.T) {
	h := newHarness(t, newFake(t), "/recipes/1")

	d := h.model.detail
	if d.recipe == nil || d.recipe.DisplayTitle() != "Tofu Bowl" {
		t.Fatalf("recipe = %+v, want Tofu Bowl", d.recipe)
	}
	body := h.model.renderRecipeBody(*d.recipe)
	for _, want := range []string{"Press the tofu", "1 block of tofu", "rice", "Vegan"} {
		if !strings.Contains(body, want) {
			t.Fatalf("detail body missing %q:\n%s", want, body)
		}
	}

	h.typeText("e")
	if got := h.model.route.String(); got != "/recipes/1/edit" {
		t.Fatalf("route = %q, want /recipes/1/edit", got)
	}
}

func TestModel_RecipeDetailMissing(t *testing.T) {
	h := newHarness(t, newFake(t), "/recipes/99")

	if got := h.model.detail.err; got != "Recipe not found." {
		t.Fatalf("err = %q, want %q", got, "Recipe not found.")
	}
}

func TestModel_UnknownStartPathFallsBack(t *testing.T) {
	h := newHarness(t, newFake(t), "/nowhere")

	if h.model.route.kind != routeCatalog || h.model.catalog == nil {
		t.Fatalf("route = %q, want catalog", h.model.route.String())
	}
}

func TestModel_GlobalKeys(t *testing.T) {
	h := newHarness(t, newFake(t), "")

	h.typeText("?")
	if !h.model.showHelp {
		t.Fatalf("showHelp = false after ?")
	}
	if out := h.model.View(); !strings.Contains(out, "Browse") {
		t.Fatalf("help view missing section:\n%s", out)
	}
	h.typeText("j")
	if h.model.showHelp {
		t.Fatalf("any key should dismiss help")
	}

	quit := false
	for _, msg := range h.sendOnly(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}) {
		if _, ok := msg.(tea.QuitMsg); ok {
			quit = true
		}
	}
	if !quit {
		t.Fatalf("q did not quit")
	}
}

func TestModel_CycleThemeSavesPrefs(t *testing.T) {
	h := newHarness(t, newFake(t), "")

	h.typeText("T")
	if got := h.model.theme.Name; got != "Kanagawa" {
		t.Fatalf("theme = %q, want Kanagawa", got)
	}
	p, err := prefs.Load(h.prefs)
	if err != nil {
		t.Fatalf("prefs.Load: %v", err)
	}
	if p.Theme != "Kanagawa" {
		t.Fatalf("saved theme = %q, want Kanagawa", p.Theme)
	}
}
