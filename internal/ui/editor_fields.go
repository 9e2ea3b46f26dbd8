package ui

import (
	"strings"

	"github.com/five82/cookbook/internal/recipes"
)

// Recipe fields are edited as plain text:
//
//	instructions  one step per line
//	ingredients   one per line, "quantity | name" or just "name"
//	categories    comma separated

const ingredientSep = "|"

func splitLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func parseIngredients(text string) []recipes.Ingredient {
	var out []recipes.Ingredient
	for _, line := range splitLines(text) {
		qty, name, found := strings.Cut(line, ingredientSep)
		if !found {
			out = append(out, recipes.Ingredient{Name: line})
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		out = append(out, recipes.Ingredient{Name: name, Quantity: strings.TrimSpace(qty)})
	}
	return out
}

func formatIngredients(items []recipes.Ingredient) string {
	lines := make([]string, 0, len(items))
	for _, ing := range items {
		name := strings.TrimSpace(ing.Name)
		if name == "" {
			continue
		}
		if qty := strings.TrimSpace(ing.Quantity); qty != "" {
			lines = append(lines, qty+" "+ingredientSep+" "+name)
			continue
		}
		lines = append(lines, name)
	}
	return strings.Join(lines, "\n")
}

// splitCategories splits a comma separated list, dropping blanks and
// case-insensitive duplicates while keeping the first spelling.
func splitCategories(text string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, part := range strings.Split(text, ",") {
		name := strings.TrimSpace(part)
		if name == "" || seen[strings.ToLower(name)] {
			continue
		}
		seen[strings.ToLower(name)] = true
		out = append(out, name)
	}
	return out
}
