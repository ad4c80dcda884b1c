package model

// Viewer is the identity of whoever is requesting a product page.
// The zero value is the anonymous viewer.
type Viewer struct {
	CustomerID string
}

// AnonymousViewer is the unauthenticated requester.
var AnonymousViewer = Viewer{}

// IsAnonymous reports whether no customer is attached to the viewer.
func (v Viewer) IsAnonymous() bool {
	return v.CustomerID == ""
}
