package app

import "github.com/ziadkadry99/botdocs/internal/prefs"

// EventKind names what happened.
type EventKind string

const (
	// EventNavigate selects ID and pushes it onto the address.
	EventNavigate EventKind = "navigate"
	// EventHome selects the Home view and pushes it onto the address.
	EventHome EventKind = "home"
	// EventAddressChanged re-reads the address without pushing.
	EventAddressChanged EventKind = "address"
	// EventSetLocale stores Locale and re-renders the active view.
	EventSetLocale EventKind = "locale"
	// EventSetTheme stores Theme and re-renders the active view.
	EventSetTheme EventKind = "theme"
	// EventSearch sets the navigation filters: Query and the command
	// group Group. Both are replaced; an empty Group shows every group.
	EventSearch EventKind = "search"
	// EventSystemTheme reports an OS light/dark change.
	EventSystemTheme EventKind = "system-theme"
	// EventRefresh re-renders the active view.
	EventRefresh EventKind = "refresh"
)

// Event is one input to the controller. Only the fields relevant to Kind
// are read.
type Event struct {
	Kind   EventKind       `json:"kind"`
	ID     string          `json:"id,omitempty"`
	Locale string          `json:"locale,omitempty"`
	Theme  prefs.ThemeMode `json:"theme,omitempty"`
	Query  string          `json:"query,omitempty"`
	Group  string          `json:"group,omitempty"`
	Dark   bool            `json:"dark,omitempty"`
}
