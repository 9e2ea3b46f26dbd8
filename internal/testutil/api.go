// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/five82/cookbook/internal/recipes"
)

// Call records one request received by the fake API.
type Call struct {
	Method string
	Path   string
	Query  string
	Body   map[string]string
}

type failure struct {
	status  int
	message string
}

// FakeAPI is an in-memory stand-in for the recipe API.
type FakeAPI struct {
	Server *httptest.Server

	mu         sync.Mutex
	categories []recipes.Category
	recipes    []recipes.Recipe
	nextID     int64
	calls      []Call
	failures   map[string]failure
	parsed     recipes.ParsedRecipe
}

// NewFakeAPI starts a fake API seeded with categories and recipes. The
// server is closed when the test ends.
func NewFakeAPI(t *testing.T, categories []recipes.Category, all []recipes.Recipe) *FakeAPI {
	t.Helper()
	api := &FakeAPI{
		categories: categories,
		recipes:    all,
		nextID:     1000,
		failures:   make(map[string]failure),
	}
	api.Server = httptest.NewServer(api.routes())
	t.Cleanup(api.Server.Close)
	return api
}

// URL returns the server root.
func (a *FakeAPI) URL() string {
	return a.Server.URL
}

// FailNext makes the next request matching method and path fail with
// status. An empty message omits the error envelope.
func (a *FakeAPI) FailNext(method, path string, status int, message string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.failures[method+" "+path] = failure{status: status, message: message}
}

// SetParsed configures the /parse-recipe response.
func (a *FakeAPI) SetParsed(p recipes.ParsedRecipe) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.parsed = p
}

// Calls returns every request received so far.
func (a *FakeAPI) Calls() []Call {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Call, len(a.calls))
	copy(out, a.calls)
	return out
}

// CallCount returns how many requests matched method and path.
func (a *FakeAPI) CallCount(method, path string) int {
	n := 0
	for _, c := range a.Calls() {
		if c.Method == method && c.Path == path {
			n++
		}
	}
	return n
}

// Categories returns the current category names, sorted.
func (a *FakeAPI) Categories() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	names := make([]string, 0, len(a.categories))
	for _, c := range a.categories {
		names = append(names, c.Name)
	}
	sort.Strings(names)
	return names
}

func (a *FakeAPI) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(a.record)
	r.Get("/recipes", a.listRecipes)
	r.Post("/recipes", a.saveRecipe)
	r.Get("/recipes/{id}", a.getRecipe)
	r.Put("/recipes/{id}", a.saveRecipe)
	r.Delete("/recipes/{id}", a.deleteRecipe)
	r.Get("/categories", a.listCategories)
	r.Post("/categories", a.createCategory)
	r.Delete("/categories/{id}", a.deleteCategory)
	r.Post("/login", a.login)
	r.Post("/parse-recipe", a.parseRecipe)
	return r
}

func (a *FakeAPI) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		call := Call{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery}
		if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			call.Body = body
		} else if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
			if err := r.ParseMultipartForm(1 << 20); err == nil {
				call.Body = make(map[string]string)
				for k, v := range r.MultipartForm.Value {
					call.Body[k] = strings.Join(v, ",")
				}
				for k, files := range r.MultipartForm.File {
					call.Body[k] = files[0].Filename
				}
			}
		}

		a.mu.Lock()
		a.calls = append(a.calls, call)
		key := r.Method + " " + r.URL.Path
		fail, failing := a.failures[key]
		if failing {
			delete(a.failures, key)
		}
		a.mu.Unlock()

		if failing {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(fail.status)
			if fail.message != "" {
				_ = json.NewEncoder(w).Encode(map[string]string{"error": fail.message})
			}
			return
		}
		if call.Body != nil {
			r = r.WithContext(withBody(r.Context(), call.Body))
		}
		next.ServeHTTP(w, r)
	})
}

func (a *FakeAPI) listRecipes(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()
	raw := r.URL.Query().Get("category_id")
	if raw == "" {
		writeJSON(w, http.StatusOK, a.recipes)
		return
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid category_id")
		return
	}
	for _, c := range a.categories {
		if c.ID == id {
			writeJSON(w, http.StatusOK, c.Recipes)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Category not found")
}

func (a *FakeAPI) getRecipe(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, rec := range a.recipes {
		if rec.ID == id {
			writeJSON(w, http.StatusOK, rec)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Recipe not found")
}

func (a *FakeAPI) saveRecipe(w http.ResponseWriter, r *http.Request) {
	body := bodyFrom(r.Context())
	title := body["title"]
	if strings.TrimSpace(title) == "" {
		writeError(w, http.StatusBadRequest, "Title, instructions, and ingredients are required.")
		return
	}
	rec := recipes.Recipe{
		Title:        recipes.StringPtr(title),
		Description:  recipes.StringPtr(body["description"]),
		Instructions: strings.Split(body["instructions"], "\n"),
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if raw := chi.URLParam(r, "id"); raw != "" {
		id, _ := strconv.ParseInt(raw, 10, 64)
		for i := range a.recipes {
			if a.recipes[i].ID == id {
				rec.ID = id
				a.recipes[i] = rec
				writeJSON(w, http.StatusOK, rec)
				return
			}
		}
		writeError(w, http.StatusNotFound, "Recipe not found")
		return
	}
	a.nextID++
	rec.ID = a.nextID
	a.recipes = append(a.recipes, rec)
	writeJSON(w, http.StatusCreated, rec)
}

func (a *FakeAPI) deleteRecipe(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	for i, rec := range a.recipes {
		if rec.ID == id {
			a.recipes = append(a.recipes[:i], a.recipes[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Recipe not found")
}

func (a *FakeAPI) listCategories(w http.ResponseWriter, _ *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()
	writeJSON(w, http.StatusOK, a.categories)
}

func (a *FakeAPI) createCategory(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(bodyFrom(r.Context())["name"])
	if name == "" {
		writeError(w, http.StatusBadRequest, "Category name is required")
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, c := range a.categories {
		if strings.EqualFold(c.Name, name) {
			writeError(w, http.StatusConflict, "Category already exists")
			return
		}
	}
	a.nextID++
	cat := recipes.Category{ID: a.nextID, Name: name}
	a.categories = append(a.categories, cat)
	writeJSON(w, http.StatusCreated, cat)
}

func (a *FakeAPI) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	for i, c := range a.categories {
		if c.ID == id {
			a.categories = append(a.categories[:i], a.categories[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"message": "Category deleted"})
			return
		}
	}
	writeError(w, http.StatusNotFound, "Category not found")
}

func (a *FakeAPI) login(w http.ResponseWriter, r *http.Request) {
	body := bodyFrom(r.Context())
	if body["email"] == "" || body["password"] == "" {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	http.SetCookie(w, &http.Cookie{Name: "session", Value: "ok", Path: "/"})
	writeJSON(w, http.StatusOK, recipes.User{ID: 1, Email: body["email"]})
}

func (a *FakeAPI) parseRecipe(w http.ResponseWriter, r *http.Request) {
	if bodyFrom(r.Context())["url"] == "" {
		writeError(w, http.StatusBadRequest, "URL is required")
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	writeJSON(w, http.StatusOK, a.parsed)
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid id %q", chi.URLParam(r, "id")))
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
