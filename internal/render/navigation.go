package render

import (
	"sort"
	"strings"

	"github.com/ziadkadry99/botdocs/internal/catalog"
	"github.com/ziadkadry99/botdocs/internal/grouping"
	"github.com/ziadkadry99/botdocs/internal/nav"
	"github.com/ziadkadry99/botdocs/internal/search"
)

// BuildNavigation groups every section of the catalog and applies the
// search query and the command group filter. Entries that do not match are
// hidden, buckets left without entries are dropped and so are sections left
// without buckets.
func BuildNavigation(env Env, activeID string) Navigation {
	n := Navigation{Query: search.Normalize(env.Query), Group: strings.TrimSpace(env.Group)}
	if env.Catalog == nil {
		return n
	}

	for _, section := range catalog.Sections {
		items := env.Catalog.Section(section)
		n.Total += len(items)

		buckets := grouping.GroupItems(env.Groups[section], items, env.Locale)
		if section == catalog.SectionCommands {
			n.Chips = env.groupChips(buckets, len(items), n.Group)
		}

		ns := NavSection{Section: section, Title: env.sectionTitle(section)}
		for _, b := range buckets {
			if section == catalog.SectionCommands && n.Group != "" && b.Definition.ID != n.Group {
				continue
			}
			label := grouping.Label(b.Definition, env.Locale)
			nb := NavBucket{
				ID:          b.Definition.ID,
				Label:       label,
				Description: env.Locale.PickText(b.Definition.Description, ""),
				Synthesized: b.Definition.Synthesized,
			}
			for _, it := range b.Items {
				if !search.Matches(it, label, n.Query) {
					continue
				}
				nb.Entries = append(nb.Entries, navEntry(it, activeID))
			}
			if len(nb.Entries) == 0 {
				continue
			}
			ns.Count += len(nb.Entries)
			ns.Buckets = append(ns.Buckets, nb)
		}
		if len(ns.Buckets) == 0 {
			continue
		}
		n.Visible += ns.Count
		n.Sections = append(n.Sections, ns)
	}
	return n
}

// groupChips builds the command group filter: an "all" chip first, then
// one chip per group sorted by label. Counts ignore the search query.
func (e Env) groupChips(buckets []grouping.Bucket, total int, active string) []GroupChip {
	if len(buckets) == 0 {
		return nil
	}
	chips := make([]GroupChip, 0, len(buckets))
	for _, b := range buckets {
		chips = append(chips, GroupChip{
			GroupID: b.Definition.ID,
			Label:   grouping.Label(b.Definition, e.Locale),
			Count:   len(b.Items),
			Active:  b.Definition.ID == active,
		})
	}
	coll := e.Locale.Collator()
	sort.SliceStable(chips, func(i, j int) bool {
		return coll.CompareString(chips[i].Label, chips[j].Label) < 0
	})
	all := GroupChip{Label: e.text(msgChipAll), Count: total, Active: active == ""}
	return append([]GroupChip{all}, chips...)
}

func navEntry(it catalog.Item, activeID string) NavEntry {
	e := NavEntry{
		ID:       it.ID,
		Fragment: nav.EncodeFragment(it.ID),
		Label:    it.DisplayName(),
		Active:   it.ID == activeID,
	}
	if it.Command != nil {
		e.OptionCount = it.Command.OptionCount()
	}
	return e
}

func (e Env) sectionTitle(s catalog.Section) string {
	switch s {
	case catalog.SectionListeners:
		return e.text(msgSectionListeners)
	case catalog.SectionAudits:
		return e.text(msgSectionAudits)
	case catalog.SectionComponents:
		return e.text(msgSectionComps)
	default:
		return e.text(msgSectionCommands)
	}
}
