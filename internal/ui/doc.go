// Package ui is the Bubble Tea front end of cookbook.
//
// A single Model owns routing and exactly one mounted screen: the catalog
// (tabs, search and recipe cards), a recipe detail, the recipe editor, or
// one of the create/delete forms driven by the mutation package. Paths
// mirror the web client ("/", "/categories/new", "/recipes/7/edit", ...)
// and navigate always tears the current screen down first, closing any
// form so its redirect can no longer fire.
//
// Network calls run inside tea.Cmd closures and come back as messages
// tagged with the screen or fetch that issued them. Messages for a screen
// that is no longer mounted are dropped.
//
// Themes and key bindings live in theme.go and keys.go; "?" shows the
// full binding list.
package ui
