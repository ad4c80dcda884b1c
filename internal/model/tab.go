package model

import "context"

// RenderFunc produces the body of a product tab at render time.
type RenderFunc func(ctx context.Context) (string, error)

// Tab is an entry in the extensible product tab list.
type Tab struct {
	Title    string
	Priority int
	Render   RenderFunc
}

// TabList holds product tabs keyed by their tab key.
type TabList map[string]Tab

// RenderedTab is a tab after its render callback ran, ready for the product page.
type RenderedTab struct {
	Key      string `json:"key"`
	Title    string `json:"title"`
	Priority int    `json:"priority"`
	Content  string `json:"content"`
	// Managed is false when tab-management extensions must leave the tab alone.
	Managed  bool   `json:"managed"`
}

// TabEditor is the admin edit surface payload for a product's bought tab.
type TabEditor struct {
	ProductID string `json:"productId"`
	Content   string `json:"content"`
	EditorID  string `json:"editorId"`
	FieldName string `json:"fieldName"`
}

// TabContentRequest is the admin save payload.
type TabContentRequest struct {
	Content string `json:"content"`
}

// TabContentRecord is a seed record pairing a product with its tab content.
type TabContentRecord struct {
	ProductID string `json:"product_id"`
	Content   string `json:"content"`
}

// AdminNotice is a warning surfaced to administrators.
type AdminNotice struct {
	Level   string `json:"level"`
	Message string `json:"message"`
	Link    string `json:"link,omitempty"`
}
