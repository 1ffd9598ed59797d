// Package model defines the catalog domain types shared by the fetch layer,
// the controllers and the renderers.
package model

// ItemSummary is one entry of a catalog page.
type ItemSummary struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ItemDetail is the full view of a single catalog item.
type ItemDetail struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
	Height   int    `json:"height"`
}

// Page is the ordered result of one list fetch at a given offset.
// Order is display order.
type Page struct {
	Items []ItemSummary `json:"items"`
}

// Len returns the number of items in the page.
func (p Page) Len() int {
	return len(p.Items)
}

// IsEmpty reports whether the page carries no items.
func (p Page) IsEmpty() bool {
	return len(p.Items) == 0
}
