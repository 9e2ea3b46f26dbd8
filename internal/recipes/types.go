package recipes

import (
	"fmt"
	"strings"
)

const (
	placeholderTitle       = "No Title"
	placeholderDescription = "No description available"
)

// Ingredient mirrors the ingredient objects nested in recipe payloads.
type Ingredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
}

// String formats the ingredient the way the detail view lists it.
func (i Ingredient) String() string {
	qty := strings.TrimSpace(i.Quantity)
	if qty == "" {
		return i.Name
	}
	return fmt.Sprintf("%s of %s", qty, i.Name)
}

// Recipe describes a recipe in transport-friendly form. List endpoints may
// return summaries, so Title, Description and Instructions can be absent.
type Recipe struct {
	ID           int64        `json:"id"`
	Title        *string      `json:"title,omitempty"`
	Description  *string      `json:"description,omitempty"`
	Instructions []string     `json:"instructions,omitempty"`
	Ingredients  []Ingredient `json:"ingredients,omitempty"`
	Categories   []string     `json:"categories,omitempty"`
}

// DisplayTitle returns the title or a placeholder when it is missing.
func (r Recipe) DisplayTitle() string {
	if r.Title == nil || strings.TrimSpace(*r.Title) == "" {
		return placeholderTitle
	}
	return *r.Title
}

// DisplayDescription returns the description or a placeholder when it is missing.
func (r Recipe) DisplayDescription() string {
	if r.Description == nil || strings.TrimSpace(*r.Description) == "" {
		return placeholderDescription
	}
	return *r.Description
}

// TitleText returns the raw title, empty when absent.
func (r Recipe) TitleText() string {
	if r.Title == nil {
		return ""
	}
	return *r.Title
}

// DescriptionText returns the raw description, empty when absent.
func (r Recipe) DescriptionText() string {
	if r.Description == nil {
		return ""
	}
	return *r.Description
}

// Category is a named group of recipes as returned by /categories.
type Category struct {
	ID      int64    `json:"id"`
	Name    string   `json:"name"`
	Recipes []Recipe `json:"recipes"`
}

// Draft carries the structured fields of a recipe create or update. Image is
// an optional path to a file sent as the multipart "image" part.
type Draft struct {
	Title        string
	Description  string
	Instructions []string
	Ingredients  []Ingredient
	Categories   []string
	ImagePath    string
}

// Credentials are posted to /login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// User is the account payload returned by /login.
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email"`
}

// ParsedRecipe is the payload returned by /parse-recipe.
type ParsedRecipe struct {
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Instructions []string     `json:"instructions"`
	Ingredients  []Ingredient `json:"ingredients"`
	Categories   []string     `json:"categories"`
}

// StringPtr is a convenience for building recipes in tests and fixtures.
func StringPtr(s string) *string {
	return &s
}

// CloneRecipes returns a copy of items so the caller's slice is not aliased.
func CloneRecipes(items []Recipe) []Recipe {
	if len(items) == 0 {
		return nil
	}
	dup := make([]Recipe, len(items))
	copy(dup, items)
	return dup
}
