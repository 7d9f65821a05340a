// Package grouping partitions catalog items into ordered, labeled buckets
// according to a section's group definitions.
package grouping

import (
	"sort"

	"github.com/ziadkadry99/botdocs/internal/catalog"
	"github.com/ziadkadry99/botdocs/internal/locale"
)

// Bucket is one group of items under a single definition.
type Bucket struct {
	Definition catalog.GroupDefinition
	Items      []catalog.Item
}

// Label resolves a definition's title for the resolver's locale. The
// definition id is the last resort.
func Label(def catalog.GroupDefinition, loc locale.Resolver) string {
	return loc.PickText(def.Title, def.ID)
}

// GroupItems assigns every item to exactly one bucket. The first definition
// whose match set contains the item's raw group wins. Items that match no
// definition are bucketed under a synthesized definition whose id and title
// are the raw group itself.
//
// Configured buckets come first in declared order, followed by synthesized
// buckets sorted by their localized title. Definitions with no items are
// left out; items are kept in input order within each bucket.
func GroupItems(defs []catalog.GroupDefinition, items []catalog.Item, loc locale.Resolver) []Bucket {
	configured := make([][]catalog.Item, len(defs))
	var synthesized []Bucket
	synthIndex := make(map[string]int)

	for _, it := range items {
		if i := firstMatch(defs, it.RawGroup); i >= 0 {
			configured[i] = append(configured[i], it)
			continue
		}
		j, ok := synthIndex[it.RawGroup]
		if !ok {
			j = len(synthesized)
			synthIndex[it.RawGroup] = j
			synthesized = append(synthesized, Bucket{Definition: Synthesize(it.RawGroup)})
		}
		synthesized[j].Items = append(synthesized[j].Items, it)
	}

	out := make([]Bucket, 0, len(defs)+len(synthesized))
	for i, def := range defs {
		if len(configured[i]) > 0 {
			out = append(out, Bucket{Definition: def, Items: configured[i]})
		}
	}

	coll := loc.Collator()
	sort.SliceStable(synthesized, func(a, b int) bool {
		la := Label(synthesized[a].Definition, loc)
		lb := Label(synthesized[b].Definition, loc)
		if c := coll.CompareString(la, lb); c != 0 {
			return c < 0
		}
		return synthesized[a].Definition.ID < synthesized[b].Definition.ID
	})
	return append(out, synthesized...)
}

// Synthesize builds the fallback definition for an unmatched raw group.
func Synthesize(raw string) catalog.GroupDefinition {
	def := catalog.GroupDefinition{
		ID:          raw,
		Match:       []string{raw},
		Synthesized: true,
	}
	if raw != "" {
		def.Title = catalog.LocalizedText{"en": raw}
	}
	return def
}

// Resolve returns the definition item falls under, synthesizing one when no
// definition matches.
func Resolve(defs []catalog.GroupDefinition, item catalog.Item) catalog.GroupDefinition {
	if i := firstMatch(defs, item.RawGroup); i >= 0 {
		return defs[i]
	}
	return Synthesize(item.RawGroup)
}

func firstMatch(defs []catalog.GroupDefinition, raw string) int {
	for i, def := range defs {
		if def.Matches(raw) {
			return i
		}
	}
	return -1
}
