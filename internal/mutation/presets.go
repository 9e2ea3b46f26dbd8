package mutation

import "strings"

// CreateCategory configures the "Add Category" form against base.
func CreateCategory(base string) Config {
	root := strings.TrimRight(base, "/")
	return Config{
		Action:           ActionCreate,
		Kind:             KindCategory,
		FormTitle:        "Add Category",
		InputPlaceholder: "Category name",
		SuccessMessage:   "Category added successfully!",
		Endpoint:         func(string) string { return root + "/categories" },
		RedirectPath:     "/",
	}
}

// DeleteCategory configures the category deletion form against base.
func DeleteCategory(base string) Config {
	root := strings.TrimRight(base, "/")
	return Config{
		Action:             ActionDelete,
		Kind:               KindCategory,
		FormTitle:          "Delete Category",
		ConfirmPlaceholder: "Type 'delete' to confirm",
		SuccessMessage:     "Category deleted successfully!",
		Endpoint:           func(id string) string { return root + "/categories/" + id },
		RedirectPath:       "/",
	}
}

// DeleteRecipe configures the recipe deletion form against base.
func DeleteRecipe(base string) Config {
	root := strings.TrimRight(base, "/")
	return Config{
		Action:             ActionDelete,
		Kind:               KindRecipe,
		FormTitle:          "Delete Recipe",
		ConfirmPlaceholder: "Type 'delete' to confirm",
		SuccessMessage:     "Recipe deleted successfully!",
		Endpoint:           func(id string) string { return root + "/recipes/" + id },
		RedirectPath:       "/",
	}
}
