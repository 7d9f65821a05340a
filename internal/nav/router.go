// Package nav maps address fragments to catalog selections and back.
package nav

import (
	"strings"

	"github.com/ziadkadry99/botdocs/internal/catalog"
)

// View discriminates a Selection.
type View string

const (
	ViewHome  View = "home"
	ViewItem  View = "item"
	ViewLegal View = "legal"
)

// LegalKind names one of the static legal pages.
type LegalKind string

const (
	LegalTerms   LegalKind = "terms"
	LegalPrivacy LegalKind = "privacy"
)

// Reserved fragments that do not name catalog items.
const (
	FragmentHome    = "home"
	FragmentTerms   = "legal/terms"
	FragmentPrivacy = "legal/privacy"
)

// Selection is what the router resolved. Item is set for ViewItem and Legal
// for ViewLegal. ID is the active id, empty for Home.
type Selection struct {
	View  View
	ID    string
	Item  catalog.Item
	Legal LegalKind
}

// Home is the selection shown when nothing is active.
func Home() Selection { return Selection{View: ViewHome} }

// Options controls Select.
type Options struct {
	// UpdateAddress pushes the selected id onto the address.
	UpdateAddress bool
}

// Router holds the active id. It is not safe for concurrent use; the
// controller serializes access.
type Router struct {
	catalog  *catalog.Catalog
	address  Address
	activeID string
}

// NewRouter returns a router over cat writing to addr. A nil addr is
// allowed and never updated.
func NewRouter(cat *catalog.Catalog, addr Address) *Router {
	return &Router{catalog: cat, address: addr}
}

// Resolve maps id to a selection without touching router state. Catalog
// items are tried in command, listener, audit order; the reserved home and
// legal fragments come after. Anything else is Home.
func Resolve(cat *catalog.Catalog, id string) Selection {
	if id == "" {
		return Home()
	}
	if cat != nil {
		if it, ok := cat.Find(id); ok {
			return Selection{View: ViewItem, ID: id, Item: it}
		}
	}
	switch strings.ToLower(id) {
	case FragmentTerms:
		return Selection{View: ViewLegal, ID: FragmentTerms, Legal: LegalTerms}
	case FragmentPrivacy:
		return Selection{View: ViewLegal, ID: FragmentPrivacy, Legal: LegalPrivacy}
	}
	return Home()
}

// Select makes id active. Unknown ids resolve to Home and clear the active
// id. With UpdateAddress set the resolved id is pushed onto the address.
func (r *Router) Select(id string, opts Options) Selection {
	sel := Resolve(r.catalog, id)
	r.activeID = sel.ID
	if opts.UpdateAddress && r.address != nil {
		r.address.Push(EncodeFragment(sel.ID))
	}
	return sel
}

// SyncFromAddress selects whatever the address currently names without
// writing to the address.
func (r *Router) SyncFromAddress() Selection {
	if r.address == nil {
		return r.Select("", Options{})
	}
	return r.Select(DecodeFragment(r.address.Fragment()), Options{})
}

// Current re-resolves the active id. It never touches the address.
func (r *Router) Current() Selection {
	return Resolve(r.catalog, r.activeID)
}

// ActiveID returns the active id, empty when Home is shown.
func (r *Router) ActiveID() string { return r.activeID }

// Address returns the router's address.
func (r *Router) Address() Address { return r.address }
