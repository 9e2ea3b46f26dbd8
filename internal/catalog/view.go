package catalog

import (
	"strconv"
	"strings"

	"github.com/five82/cookbook/internal/recipes"
)

// TabKey identifies a tab: "all" or a category id rendered as a string.
type TabKey string

// AllTab is the unfiltered tab shown on mount.
const AllTab TabKey = "all"

// CategoryTab returns the tab key for a category id.
func CategoryTab(id int64) TabKey {
	return TabKey(strconv.FormatInt(id, 10))
}

// CategoryID returns the category id the key refers to. It reports false
// for the "all" tab and for malformed keys.
func (k TabKey) CategoryID() (int64, bool) {
	if k == AllTab {
		return 0, false
	}
	id, err := strconv.ParseInt(string(k), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// Tab is a selectable grouping shown above the recipe list.
type Tab struct {
	Key   TabKey
	Label string
}

// FetchKind distinguishes the two collections the view requests.
type FetchKind int

const (
	FetchRecipes FetchKind = iota
	FetchCategories
)

// Fetch describes a request the caller must perform. The stamp (Tab, Seq)
// is handed back with the result so stale completions can be dropped.
type Fetch struct {
	Kind FetchKind
	Tab  TabKey
	Seq  uint64
}

// CategoryID returns the category filter for a recipe fetch, zero for "all".
func (f Fetch) CategoryID() int64 {
	id, _ := f.Tab.CategoryID()
	return id
}

// Selection is the user-controlled part of the view state.
type Selection struct {
	ActiveTab   TabKey
	SearchMode  bool
	SearchQuery string
}

// View reconciles tab selection, search and fetched collections into the
// visible recipe list. It is not safe for concurrent use; callers drive it
// from a single event loop.
type View struct {
	sel Selection

	seq            uint64
	latest         map[TabKey]uint64
	resolved       map[TabKey]uint64
	latestCategory uint64

	snapshots     map[TabKey][]recipes.Recipe
	authoritative map[TabKey]bool
	categories    []recipes.Category
	hasCategories bool

	// Recipe and category fetches complete independently, so each keeps
	// its own error and a success only clears its own.
	recipesErr    string
	categoriesErr string
}

// New returns a view in its initial state: the "all" tab selected and
// nothing fetched yet.
func New() *View {
	return &View{
		sel:           Selection{ActiveTab: AllTab},
		latest:        make(map[TabKey]uint64),
		resolved:      make(map[TabKey]uint64),
		snapshots:     make(map[TabKey][]recipes.Recipe),
		authoritative: make(map[TabKey]bool),
	}
}

// Mount returns the two independent fetches issued when the view appears.
func (v *View) Mount() []Fetch {
	return []Fetch{v.issueRecipes(v.sel.ActiveTab), v.issueCategories()}
}

// Refresh re-requests the active tab and the category list.
func (v *View) Refresh() []Fetch {
	return v.Mount()
}

// SelectTab makes key active and returns the scoped fetch for it.
func (v *View) SelectTab(key TabKey) Fetch {
	if key == "" {
		key = AllTab
	}
	v.sel.ActiveTab = key
	return v.issueRecipes(key)
}

func (v *View) issueRecipes(key TabKey) Fetch {
	v.seq++
	v.latest[key] = v.seq
	return Fetch{Kind: FetchRecipes, Tab: key, Seq: v.seq}
}

func (v *View) issueCategories() Fetch {
	v.seq++
	v.latestCategory = v.seq
	return Fetch{Kind: FetchCategories, Seq: v.seq}
}

// ApplyRecipes commits the result of a recipe fetch. Results whose stamp no
// longer matches the active tab, or that were superseded by a newer fetch
// for the same tab, are discarded and false is returned. A failed fetch
// records the error and keeps the previous list.
func (v *View) ApplyRecipes(f Fetch, list []recipes.Recipe, err error) bool {
	if f.Kind != FetchRecipes || f.Tab != v.sel.ActiveTab || f.Seq != v.latest[f.Tab] {
		return false
	}
	v.resolved[f.Tab] = f.Seq
	if err != nil {
		v.recipesErr = recipes.UserMessage(err, "Failed to load recipes.")
		return true
	}
	v.snapshots[f.Tab] = recipes.CloneRecipes(list)
	v.authoritative[f.Tab] = true
	v.recipesErr = ""
	return true
}

// ApplyCategories commits the result of a category fetch. Only the most
// recently issued category fetch is accepted. Category tabs without a
// scoped result yet are seeded from the nested recipes.
func (v *View) ApplyCategories(f Fetch, list []recipes.Category, err error) bool {
	if f.Kind != FetchCategories || f.Seq != v.latestCategory {
		return false
	}
	if err != nil {
		v.categoriesErr = recipes.UserMessage(err, "Failed to load categories.")
		return true
	}
	v.categories = cloneCategories(list)
	v.hasCategories = true
	for _, c := range v.categories {
		key := CategoryTab(c.ID)
		if v.authoritative[key] {
			continue
		}
		v.snapshots[key] = recipes.CloneRecipes(c.Recipes)
	}
	v.categoriesErr = ""
	return true
}

// SetSearchMode toggles the title filter. Turning it off clears the query.
func (v *View) SetSearchMode(on bool) {
	v.sel.SearchMode = on
	if !on {
		v.sel.SearchQuery = ""
	}
}

// SetQuery updates the search text. It never triggers a fetch.
func (v *View) SetQuery(q string) {
	v.sel.SearchQuery = q
}

// Selection returns the current selection.
func (v *View) Selection() Selection {
	return v.sel
}

// Visible derives the rendered list from the active tab's snapshot and the
// search state.
func (v *View) Visible() []recipes.Recipe {
	snap := v.snapshots[v.sel.ActiveTab]
	if !v.sel.SearchMode || v.sel.SearchQuery == "" {
		return recipes.CloneRecipes(snap)
	}
	return FilterByTitle(snap, v.sel.SearchQuery)
}

// FilterByTitle keeps recipes whose title contains query, ignoring case.
// Recipes without a title only match the empty query.
func FilterByTitle(list []recipes.Recipe, query string) []recipes.Recipe {
	needle := strings.ToLower(query)
	out := make([]recipes.Recipe, 0, len(list))
	for _, r := range list {
		if strings.Contains(strings.ToLower(r.TitleText()), needle) {
			out = append(out, r)
		}
	}
	return out
}

// Tabs lists "all" followed by the fetched categories in server order.
func (v *View) Tabs() []Tab {
	tabs := make([]Tab, 0, len(v.categories)+1)
	tabs = append(tabs, Tab{Key: AllTab, Label: "All"})
	for _, c := range v.categories {
		tabs = append(tabs, Tab{Key: CategoryTab(c.ID), Label: c.Name})
	}
	return tabs
}

// Categories returns a copy of the fetched categories.
func (v *View) Categories() []recipes.Category {
	return cloneCategories(v.categories)
}

// HasCategories reports whether a category fetch has succeeded.
func (v *View) HasCategories() bool {
	return v.hasCategories
}

// Loading reports whether the active tab's latest fetch is still in flight.
func (v *View) Loading() bool {
	key := v.sel.ActiveTab
	return v.latest[key] > v.resolved[key]
}

// Err returns the inline error message: the recipe error and the category
// error, whichever are set, one per line. It is empty once both kinds of
// fetch have succeeded since their last failure.
func (v *View) Err() string {
	msgs := make([]string, 0, 2)
	for _, msg := range []string{v.recipesErr, v.categoriesErr} {
		if msg != "" {
			msgs = append(msgs, msg)
		}
	}
	return strings.Join(msgs, "\n")
}

func cloneCategories(items []recipes.Category) []recipes.Category {
	if len(items) == 0 {
		return nil
	}
	dup := make([]recipes.Category, len(items))
	for i, c := range items {
		dup[i] = c
		dup[i].Recipes = recipes.CloneRecipes(c.Recipes)
	}
	return dup
}
