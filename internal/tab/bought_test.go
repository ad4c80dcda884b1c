package tab

import (
	"context"
	"errors"
	"testing"

	"bought-tab/internal/config"
	"bought-tab/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore serves fixed content per product.
type fakeStore struct {
	contents map[string]string
	err      error
}

func (f *fakeStore) Get(_ context.Context, productID string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.contents[productID], nil
}

func (f *fakeStore) Editor(_ context.Context, productID string) (*model.TabEditor, error) {
	return &model.TabEditor{ProductID: productID, Content: f.contents[productID]}, nil
}

func (f *fakeStore) Save(_ context.Context, productID, content string) error {
	if f.contents == nil {
		f.contents = map[string]string{}
	}
	f.contents[productID] = content
	return nil
}

// fakeVerifier reports purchases from a customer -> products table.
type fakeVerifier struct {
	purchases map[string][]string
	calls     int
}

func (f *fakeVerifier) HasPurchased(_ context.Context, viewer model.Viewer, productIDs []string) bool {
	f.calls++
	for _, bought := range f.purchases[viewer.CustomerID] {
		for _, id := range productIDs {
			if bought == id {
				return true
			}
		}
	}
	return false
}

func testTabConfig() config.TabConfig {
	return config.TabConfig{
		Title:       config.DefaultTabTitle,
		Priority:    config.DefaultTabPriority,
		Placeholder: config.DefaultTabPlaceholder,
	}
}

func newPageRegistry(store *fakeStore, verifier *fakeVerifier) *Registry {
	r := NewRegistry(zerolog.Nop())
	r.Register(DescriptionTab{})
	r.Register(AdditionalInfoTab{})
	r.Register(NewBoughtTab(store, verifier, testTabConfig(), zerolog.Nop()))
	return r
}

func findTab(tabs []model.RenderedTab, key string) (model.RenderedTab, int) {
	var found model.RenderedTab
	count := 0
	for _, t := range tabs {
		if t.Key == key {
			found = t
			count++
		}
	}
	return found, count
}

var bonusGuide = model.Product{ID: "42", Name: "Bonus guide", Category: "Books", Price: 15}

func TestBoughtTab_HiddenWithoutContent(t *testing.T) {
	store := &fakeStore{contents: map[string]string{}}
	verifier := &fakeVerifier{}
	r := newPageRegistry(store, verifier)

	tabs := r.Build(context.Background(), bonusGuide, model.Viewer{CustomerID: "V"})

	_, count := findTab(tabs, BoughtKey)
	assert.Equal(t, 0, count)
	assert.Len(t, tabs, 2)
	assert.Equal(t, 0, verifier.calls, "verifier must not run when the tab is absent")
}

func TestBoughtTab_PresentOnceAtPriority30(t *testing.T) {
	store := &fakeStore{contents: map[string]string{"42": "<p>Chapter 13</p>"}}
	r := newPageRegistry(store, &fakeVerifier{})

	tabs := r.Build(context.Background(), bonusGuide, model.AnonymousViewer)

	bought, count := findTab(tabs, BoughtKey)
	require.Equal(t, 1, count)
	assert.Equal(t, 30, bought.Priority)
	assert.Equal(t, "Extra info", bought.Title)
	assert.False(t, bought.Managed)
	assert.Equal(t, []string{DescriptionKey, AdditionalInfoKey, BoughtKey}, keys(tabs))
}

func TestBoughtTab_Render(t *testing.T) {
	store := &fakeStore{contents: map[string]string{"42": "<p>Chapter 13</p>"}}
	verifier := &fakeVerifier{purchases: map[string][]string{"V": {"42"}, "W": {"5", "9"}}}

	tests := []struct {
		name     string
		viewer   model.Viewer
		expected string
	}{
		{name: "Buyer sees content", viewer: model.Viewer{CustomerID: "V"}, expected: "<p>Chapter 13</p>"},
		{name: "Customer who bought other products sees placeholder", viewer: model.Viewer{CustomerID: "W"}, expected: config.DefaultTabPlaceholder},
		{name: "Anonymous viewer sees placeholder", viewer: model.AnonymousViewer, expected: config.DefaultTabPlaceholder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newPageRegistry(store, verifier)
			tabs := r.Build(context.Background(), bonusGuide, tt.viewer)

			bought, count := findTab(tabs, BoughtKey)
			require.Equal(t, 1, count)
			assert.Equal(t, tt.expected, bought.Content)
		})
	}
}

func TestBoughtTab_PlaceholderText(t *testing.T) {
	assert.Equal(t,
		"The contents of this tab will be visible once you purchase the current product.",
		config.DefaultTabPlaceholder)
}

func TestBoughtTab_ContentLookupFailureHidesTab(t *testing.T) {
	store := &fakeStore{err: errors.New("db down")}
	r := newPageRegistry(store, &fakeVerifier{})

	tabs := r.Build(context.Background(), bonusGuide, model.Viewer{CustomerID: "V"})

	_, count := findTab(tabs, BoughtKey)
	assert.Equal(t, 0, count)
}

func TestBoughtTab_CustomSettings(t *testing.T) {
	store := &fakeStore{contents: map[string]string{"42": "body"}}
	cfg := config.TabConfig{Title: "Members only", Priority: 45, Placeholder: "Buy first."}

	r := NewRegistry(zerolog.Nop())
	r.Register(NewBoughtTab(store, &fakeVerifier{}, cfg, zerolog.Nop()))

	tabs := r.Build(context.Background(), bonusGuide, model.AnonymousViewer)
	require.Len(t, tabs, 1)
	assert.Equal(t, "Members only", tabs[0].Title)
	assert.Equal(t, 45, tabs[0].Priority)
	assert.Equal(t, "Buy first.", tabs[0].Content)
}

func TestBoughtTab_DefaultsForEmptySettings(t *testing.T) {
	b := NewBoughtTab(&fakeStore{}, &fakeVerifier{}, config.TabConfig{}, zerolog.Nop())

	assert.Equal(t, config.DefaultTabTitle, b.title)
	assert.Equal(t, config.DefaultTabPriority, b.priority)
	assert.Equal(t, config.DefaultTabPlaceholder, b.placeholder)
}

func TestBoughtTab_FilterNilList(t *testing.T) {
	store := &fakeStore{contents: map[string]string{"42": "body"}}
	b := NewBoughtTab(store, &fakeVerifier{}, testTabConfig(), zerolog.Nop())

	tabs := b.Filter(context.Background(), TabContext{Product: bonusGuide}, nil)
	assert.Contains(t, tabs, BoughtKey)
}
