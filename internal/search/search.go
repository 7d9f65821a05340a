// Package search implements the catalog's substring filter.
package search

import (
	"strings"

	"github.com/ziadkadry99/botdocs/internal/catalog"
)

// Normalize prepares a query for Matches. Queries are compared lowercased
// with surrounding whitespace removed.
func Normalize(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// Matches reports whether item matches query. An empty query matches every
// item. Otherwise the query is a case-insensitive substring of the item's
// visible text: its name or title, description, group label and, for
// commands, the name, type and description of every option, including
// options of nested subcommands. Components also match on their type, file
// and custom ids.
func Matches(item catalog.Item, groupLabel, query string) bool {
	q := Normalize(query)
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(Haystack(item, groupLabel)), q)
}

// Haystack concatenates the searchable fields of item, separated by
// newlines so matches cannot span two fields.
func Haystack(item catalog.Item, groupLabel string) string {
	fields := []string{item.DisplayName(), item.Description(), groupLabel}

	switch item.Kind {
	case catalog.KindCommand:
		if c := item.Command; c != nil {
			fields = append(fields, c.Name)
			for _, o := range c.AllOptions() {
				fields = append(fields, o.Name, o.Type, o.Description)
			}
		}
	case catalog.KindListener:
		if l := item.Listener; l != nil {
			fields = append(fields, l.Name)
		}
	case catalog.KindAudit:
		if a := item.Audit; a != nil {
			fields = append(fields, a.Key)
		}
	case catalog.KindComponent:
		if c := item.Component; c != nil {
			fields = append(fields, c.Type, c.File)
			fields = append(fields, c.CustomIDs...)
		}
	}
	return strings.Join(fields, "\n")
}
