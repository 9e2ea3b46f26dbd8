// Package catalog holds the browse state of the recipe catalog: which tab
// is active, what each tab last fetched, and the search overlay.
//
// View never performs I/O. Callers ask it for Fetch descriptors (Mount,
// SelectTab, Refresh), run them however they like and hand the results
// back through ApplyRecipes or ApplyCategories. Each Fetch carries a
// sequence number; a result is committed only if it answers the newest
// fetch for the tab that is still active, so out-of-order responses can
// never show one tab's recipes under another tab's heading.
//
// Visible is derived on every call from the active tab's snapshot and the
// search query. There is no way to set it directly.
package catalog
