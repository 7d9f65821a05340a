// Package tui paints view models on a terminal with tcell.
package tui

import (
	"fmt"
	"strings"

	"github.com/ziadkadry99/botdocs/internal/render"
)

// LineKind styles one painted line.
type LineKind int

const (
	LinePlain LineKind = iota
	LineTitle
	LineHeading
	LineMuted
	LineEntry
	LineActive
)

// Line is one row of text with its style.
type Line struct {
	Kind LineKind
	Text string
	// ID is set on navigation entries.
	ID string
}

// NavLines flattens the sidebar: the active group filter, section
// headings, bucket headings and entries in display order.
func NavLines(n render.Navigation) []Line {
	var lines []Line
	if n.Group != "" {
		for _, c := range n.Chips {
			if c.Active {
				lines = append(lines, Line{Kind: LineMuted, Text: fmt.Sprintf("[%s • %d]", c.Label, c.Count)})
			}
		}
	}
	for _, sec := range n.Sections {
		lines = append(lines, Line{Kind: LineTitle, Text: fmt.Sprintf("%s (%d)", sec.Title, sec.Count)})
		for _, b := range sec.Buckets {
			lines = append(lines, Line{Kind: LineHeading, Text: " " + b.Label})
			for _, e := range b.Entries {
				kind := LineEntry
				if e.Active {
					kind = LineActive
				}
				text := "   " + e.Label
				if e.OptionCount > 0 {
					text += fmt.Sprintf(" [%d]", e.OptionCount)
				}
				lines = append(lines, Line{Kind: kind, Text: text, ID: e.ID})
			}
		}
	}
	return lines
}

// EntryIndexes returns the positions of the selectable lines.
func EntryIndexes(lines []Line) []int {
	var idx []int
	for i, l := range lines {
		if l.ID != "" {
			idx = append(idx, i)
		}
	}
	return idx
}

// BodyLines renders the main pane of vm as plain lines.
func BodyLines(vm render.ViewModel) []Line {
	var b bodyBuilder
	switch vm.Kind {
	case render.KindHome:
		b.home(vm.Home)
	case render.KindCommand:
		b.command(vm.Command)
	case render.KindListener:
		b.listener(vm.Listener)
	case render.KindAudit:
		b.audit(vm.Audit)
	case render.KindComponent:
		b.component(vm.Component)
	case render.KindLegal:
		b.legal(vm.Legal)
	case render.KindError:
		b.errorView(vm.Error)
	}
	return b.lines
}

type bodyBuilder struct {
	lines []Line
}

func (b *bodyBuilder) add(kind LineKind, format string, args ...any) {
	b.lines = append(b.lines, Line{Kind: kind, Text: fmt.Sprintf(format, args...)})
}

func (b *bodyBuilder) text(kind LineKind, text string) {
	for _, l := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		b.lines = append(b.lines, Line{Kind: kind, Text: l})
	}
}

func (b *bodyBuilder) blank() {
	b.lines = append(b.lines, Line{})
}

func (b *bodyBuilder) badges(badges []render.Badge) {
	if len(badges) == 0 {
		return
	}
	parts := make([]string, 0, len(badges))
	for _, bd := range badges {
		parts = append(parts, bd.Label+": "+bd.Value)
	}
	b.text(LineMuted, strings.Join(parts, " | "))
}

func (b *bodyBuilder) home(h *render.HomeView) {
	if h == nil {
		return
	}
	if h.Kicker != "" {
		b.text(LineMuted, h.Kicker)
	}
	b.text(LineTitle, h.ProductName)
	if h.Tagline != "" {
		b.text(LinePlain, h.Tagline)
	}
	if h.HeroLead != "" {
		b.text(LinePlain, h.HeroLead)
	}
	b.blank()

	stats := make([]string, 0, len(h.Stats))
	for _, s := range h.Stats {
		stats = append(stats, fmt.Sprintf("%d %s", s.Count, s.Label))
	}
	b.text(LineMuted, strings.Join(stats, " • "))

	if len(h.Pills) > 0 {
		pills := make([]string, 0, len(h.Pills))
		for _, p := range h.Pills {
			pills = append(pills, fmt.Sprintf("%s (%d)", p.Label, p.Count))
		}
		b.text(LineMuted, strings.Join(pills, "  "))
	}
	b.blank()

	if len(h.Featured) == 0 {
		b.text(LineMuted, h.FeaturedEmpty)
	}
	for _, f := range h.Featured {
		b.add(LineHeading, "/%s", f.Name)
		if f.Description != "" {
			b.text(LinePlain, "  "+f.Description)
		}
	}

	for _, step := range h.Guide {
		b.blank()
		b.text(LineHeading, step.Title)
		b.text(LinePlain, step.Markdown)
	}
	if h.GeneratedAt != "" {
		b.blank()
		b.text(LineMuted, h.GeneratedAt)
	}
}

func (b *bodyBuilder) command(c *render.CommandView) {
	if c == nil {
		return
	}
	b.text(LineTitle, c.CopyText)
	if c.Description != "" {
		b.text(LinePlain, c.Description)
	}
	b.badges(c.Badges)
	b.blank()
	b.params(c.Parameters, "")
}

func (b *bodyBuilder) params(p render.Params, indent string) {
	if p.Heading != "" {
		b.text(LineHeading, indent+p.Heading)
	}
	if p.NoParameters {
		b.text(LineMuted, indent+p.EmptyText)
		return
	}
	for _, o := range p.Options {
		line := fmt.Sprintf("%s%s <%s>", indent, o.Name, o.Type)
		if o.Required {
			line += " " + o.RequiredLabel
		}
		b.text(LinePlain, line)
		if o.Description != "" {
			b.text(LineMuted, indent+"    "+o.Description)
		}
		for _, ch := range o.Choices {
			b.add(LineMuted, "%s    - %s = %s", indent, ch.Name, ch.Value)
		}
	}
	for _, blk := range p.Blocks {
		b.add(LineHeading, "%s%s", indent, blk.Name)
		if blk.Description != "" {
			b.text(LineMuted, indent+"  "+blk.Description)
		}
		b.params(blk.Params, indent+"  ")
	}
}

func (b *bodyBuilder) listener(l *render.ListenerView) {
	if l == nil {
		return
	}
	b.text(LineTitle, l.Title)
	b.text(LineMuted, l.Event)
	b.badges(l.Badges)
	b.blank()
	b.text(LinePlain, l.Body)
}

func (b *bodyBuilder) audit(a *render.AuditView) {
	if a == nil {
		return
	}
	b.text(LineTitle, a.Title)
	b.badges(a.Badges)
	b.blank()
	b.text(LinePlain, a.Description)
}

func (b *bodyBuilder) component(c *render.ComponentView) {
	if c == nil {
		return
	}
	b.text(LineTitle, c.Title)
	b.add(LineMuted, "%s • %s", c.TypeLabel, c.Group)
	b.badges(c.Badges)
	if c.Description != "" {
		b.blank()
		b.text(LinePlain, c.Description)
	}
	if len(c.CustomIDs) > 0 {
		b.blank()
		for _, id := range c.CustomIDs {
			b.add(LinePlain, "  %s", id)
		}
		if c.MoreCustomIDs > 0 {
			b.add(LineMuted, "  +%d", c.MoreCustomIDs)
		}
	}
}

func (b *bodyBuilder) legal(l *render.LegalView) {
	if l == nil {
		return
	}
	b.text(LineTitle, l.Title)
	b.blank()
	b.text(LinePlain, l.Markdown)
}

func (b *bodyBuilder) errorView(e *render.ErrorView) {
	if e == nil {
		return
	}
	b.text(LineTitle, e.Title)
	b.text(LinePlain, e.Message)
	if e.Detail != "" {
		b.blank()
		b.text(LineMuted, e.Detail)
	}
}

// Wrap breaks text into rows no wider than width, splitting on spaces
// where possible.
func Wrap(text string, width int) []string {
	if width <= 0 {
		return nil
	}
	runes := []rune(text)
	if len(runes) <= width {
		return []string{text}
	}
	var rows []string
	for len(runes) > width {
		cut := width
		for i := width; i > width/2; i-- {
			if runes[i] == ' ' {
				cut = i
				break
			}
		}
		rows = append(rows, string(runes[:cut]))
		runes = runes[cut:]
		for len(runes) > 0 && runes[0] == ' ' {
			runes = runes[1:]
		}
	}
	if len(runes) > 0 {
		rows = append(rows, string(runes))
	}
	return rows
}
