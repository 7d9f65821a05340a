package render

import (
	"sort"
	"strings"

	"github.com/ziadkadry99/botdocs/internal/catalog"
	"github.com/ziadkadry99/botdocs/internal/grouping"
	"github.com/ziadkadry99/botdocs/internal/nav"
)

func (e Env) homeView() *HomeView {
	h := &HomeView{
		ProductName: e.ProductName(),
		Kicker:      e.Site.Kicker,
		Tagline:     e.Site.Tagline,
		HeroLead:    e.Site.HeroLead,
	}
	if e.Catalog == nil {
		return h
	}

	h.Counts = e.Catalog.Counts()
	h.GeneratedAt = e.Catalog.Meta.GeneratedAt
	h.Stats = []Stat{
		{Section: catalog.SectionCommands, Label: e.text(msgSectionCommands), Count: h.Counts.Commands},
		{Section: catalog.SectionListeners, Label: e.text(msgSectionListeners), Count: h.Counts.Listeners},
		{Section: catalog.SectionAudits, Label: e.text(msgSectionAudits), Count: h.Counts.Audits},
		{Section: catalog.SectionComponents, Label: e.text(msgSectionComps), Count: h.Counts.Components},
	}
	h.Pills = e.pills()
	h.Featured = e.featured()
	if len(h.Featured) == 0 {
		h.FeaturedEmpty = e.text(msgFeaturedNone)
	}
	for _, step := range e.Catalog.Guide {
		body := e.Locale.PickText(step.Body, "")
		v := GuideStepView{
			ID:       step.ID,
			Title:    e.Locale.PickText(step.Title, step.ID),
			Markdown: body,
		}
		if e.Markup != nil && body != "" {
			v.HTML = e.Markup.HTML(body)
		}
		h.Guide = append(h.Guide, v)
	}
	return h
}

// pills returns the largest command groups, biggest first, ties broken by
// label.
func (e Env) pills() []Pill {
	var pills []Pill
	for _, b := range grouping.GroupItems(e.Groups[catalog.SectionCommands], e.Catalog.Commands, e.Locale) {
		pills = append(pills, Pill{
			GroupID: b.Definition.ID,
			Label:   grouping.Label(b.Definition, e.Locale),
			Count:   len(b.Items),
		})
	}
	coll := e.Locale.Collator()
	sort.SliceStable(pills, func(i, j int) bool {
		if pills[i].Count != pills[j].Count {
			return pills[i].Count > pills[j].Count
		}
		return coll.CompareString(pills[i].Label, pills[j].Label) < 0
	})
	if len(pills) > MaxPills {
		pills = pills[:MaxPills]
	}
	return pills
}

// featured returns the configured featured commands in catalog order.
func (e Env) featured() []FeaturedCommand {
	if len(e.Site.Featured) == 0 {
		return nil
	}
	wanted := make(map[string]bool, len(e.Site.Featured))
	for _, name := range e.Site.Featured {
		wanted[strings.TrimPrefix(strings.TrimSpace(name), "/")] = true
	}
	var out []FeaturedCommand
	for _, it := range e.Catalog.Commands {
		if !wanted[it.Command.Name] {
			continue
		}
		out = append(out, FeaturedCommand{
			ID:          it.ID,
			Fragment:    nav.EncodeFragment(it.ID),
			Name:        it.DisplayName(),
			Description: it.Command.Description,
			OptionCount: it.Command.OptionCount(),
		})
		if len(out) == MaxFeatured {
			break
		}
	}
	return out
}
