package catalog

import (
	"errors"
	"testing"

	"github.com/five82/cookbook/internal/recipes"
)

func viewWithCategories(t *testing.T, cats ...recipes.Category) *View {
	t.Helper()
	v := New()
	f := v.Mount()[1]
	if !v.ApplyCategories(f, cats, nil) {
		t.Fatalf("ApplyCategories rejected the mount fetch")
	}
	return v
}

func TestLookupCategory_CaseInsensitiveExactMatch(t *testing.T) {
	v := viewWithCategories(t, recipes.Category{ID: 1, Name: "Breakfast"})

	for _, name := range []string{"breakfast", "BREAKFAST", "Breakfast", "  bReAkFaSt "} {
		id, err := v.LookupCategory(name)
		if err != nil {
			t.Fatalf("LookupCategory(%q) returned error: %v", name, err)
		}
		if id != 1 {
			t.Fatalf("LookupCategory(%q) = %d, want 1", name, id)
		}
	}
}

func TestLookupCategory_NotFoundQuotesNameVerbatim(t *testing.T) {
	v := viewWithCategories(t, recipes.Category{ID: 1, Name: "Breakfast"})

	_, err := v.LookupCategory("lunch")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("LookupCategory error = %v, want *NotFoundError", err)
	}
	if nf.Name != "lunch" {
		t.Fatalf("NotFoundError.Name = %q, want lunch", nf.Name)
	}
	if err.Error() != `Category "lunch" not found.` {
		t.Fatalf("Error = %q", err.Error())
	}

	if _, err := v.LookupCategory("break"); err == nil {
		t.Fatalf("prefix matched, want exact match only")
	}
}

func TestLookupCategory_SuggestsCloseNames(t *testing.T) {
	v := viewWithCategories(t,
		recipes.Category{ID: 1, Name: "Breakfast"},
		recipes.Category{ID: 2, Name: "Brunch"},
		recipes.Category{ID: 3, Name: "Dinner"},
	)
	_, err := v.LookupCategory("brkfst")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("error = %v, want *NotFoundError", err)
	}
	if len(nf.Suggestions) == 0 || nf.Suggestions[0] != "Breakfast" {
		t.Fatalf("Suggestions = %v, want Breakfast first", nf.Suggestions)
	}
}

func TestLookupCategory_EmptyName(t *testing.T) {
	v := viewWithCategories(t, recipes.Category{ID: 1, Name: "Breakfast"})
	if _, err := v.LookupCategory("   "); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("error = %v, want ErrEmptyName", err)
	}
}
