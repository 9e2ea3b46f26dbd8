package ui

import (
	"fmt"
	"strconv"
	"strings"
)

type routeKind int

const (
	routeCatalog routeKind = iota
	routeNewCategory
	routeDeleteCategory
	routeNewRecipe
	routeRecipe
	routeEditRecipe
	routeDeleteRecipe
)

// route is a parsed screen path.
type route struct {
	kind routeKind
	id   int64
}

// parseRoute maps a path onto a screen. Recognized paths:
//
//	/
//	/categories/new
//	/categories/{id}/delete
//	/recipes/new
//	/recipes/{id}
//	/recipes/{id}/edit
//	/recipes/{id}/delete
func parseRoute(path string) (route, error) {
	trimmed := strings.Trim(strings.TrimSpace(path), "/")
	if trimmed == "" {
		return route{kind: routeCatalog}, nil
	}
	parts := strings.Split(trimmed, "/")

	switch parts[0] {
	case "categories":
		if len(parts) == 2 && parts[1] == "new" {
			return route{kind: routeNewCategory}, nil
		}
		if len(parts) == 3 && parts[2] == "delete" {
			id, err := parseRouteID(parts[1])
			if err != nil {
				return route{}, fmt.Errorf("route %q: %w", path, err)
			}
			return route{kind: routeDeleteCategory, id: id}, nil
		}
	case "recipes":
		if len(parts) == 2 && parts[1] == "new" {
			return route{kind: routeNewRecipe}, nil
		}
		if len(parts) < 2 || len(parts) > 3 {
			break
		}
		id, err := parseRouteID(parts[1])
		if err != nil {
			return route{}, fmt.Errorf("route %q: %w", path, err)
		}
		if len(parts) == 2 {
			return route{kind: routeRecipe, id: id}, nil
		}
		switch parts[2] {
		case "edit":
			return route{kind: routeEditRecipe, id: id}, nil
		case "delete":
			return route{kind: routeDeleteRecipe, id: id}, nil
		}
	}
	return route{}, fmt.Errorf("unknown route %q", path)
}

func parseRouteID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

// String renders the route back into its path.
func (r route) String() string {
	switch r.kind {
	case routeNewCategory:
		return "/categories/new"
	case routeDeleteCategory:
		return fmt.Sprintf("/categories/%d/delete", r.id)
	case routeNewRecipe:
		return "/recipes/new"
	case routeRecipe:
		return fmt.Sprintf("/recipes/%d", r.id)
	case routeEditRecipe:
		return fmt.Sprintf("/recipes/%d/edit", r.id)
	case routeDeleteRecipe:
		return fmt.Sprintf("/recipes/%d/delete", r.id)
	default:
		return "/"
	}
}

func categoryDeletePath(id int64) string {
	return route{kind: routeDeleteCategory, id: id}.String()
}

func recipePath(id int64) string {
	return route{kind: routeRecipe, id: id}.String()
}
