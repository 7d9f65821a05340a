// Package catalog holds the validated, immutable in-memory representation of
// the documented bot: commands, listeners, audit modules, interaction
// components and guide steps.
package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidCatalog is wrapped by every validation error returned by Build
// and BuildGroups.
var ErrInvalidCatalog = errors.New("invalid catalog")

// Catalog is the loaded catalog. It is never mutated after Build.
type Catalog struct {
	Commands   []Item
	Listeners  []Item
	Audits     []Item
	Components []Item
	Guide      []GuideStep
	Meta       Meta

	commands   map[string]int
	listeners  map[string]int
	audits     map[string]int
	components map[string]int
}

// Counts holds per-section totals.
type Counts struct {
	Commands   int `json:"commands"`
	Listeners  int `json:"listeners"`
	Audits     int `json:"audits"`
	Components int `json:"components"`
}

// Counts returns the number of items per section.
func (c *Catalog) Counts() Counts {
	return Counts{
		Commands:   len(c.Commands),
		Listeners:  len(c.Listeners),
		Audits:     len(c.Audits),
		Components: len(c.Components),
	}
}

// Section returns the items listed under s.
func (c *Catalog) Section(s Section) []Item {
	switch s {
	case SectionCommands:
		return c.Commands
	case SectionListeners:
		return c.Listeners
	case SectionAudits:
		return c.Audits
	case SectionComponents:
		return c.Components
	}
	return nil
}

// Command looks up a command by id.
func (c *Catalog) Command(id string) (Item, bool) {
	return lookup(c.Commands, c.commands, id)
}

// Listener looks up a listener by id.
func (c *Catalog) Listener(id string) (Item, bool) {
	return lookup(c.Listeners, c.listeners, id)
}

// Audit looks up an audit module by id.
func (c *Catalog) Audit(id string) (Item, bool) {
	return lookup(c.Audits, c.audits, id)
}

// Component looks up an interaction component by id.
func (c *Catalog) Component(id string) (Item, bool) {
	return lookup(c.Components, c.components, id)
}

// Find resolves id against commands, listeners, audit modules and
// components, in that order.
func (c *Catalog) Find(id string) (Item, bool) {
	if it, ok := c.Command(id); ok {
		return it, true
	}
	if it, ok := c.Listener(id); ok {
		return it, true
	}
	if it, ok := c.Audit(id); ok {
		return it, true
	}
	return c.Component(id)
}

// CommandByName returns the command whose name is name.
func (c *Catalog) CommandByName(name string) (Item, bool) {
	for _, it := range c.Commands {
		if it.Command.Name == name {
			return it, true
		}
	}
	return Item{}, false
}

func lookup(items []Item, index map[string]int, id string) (Item, bool) {
	i, ok := index[id]
	if !ok {
		return Item{}, false
	}
	return items[i], true
}

// Build validates doc and returns the catalog. Missing ids are derived from
// the item kind and name; duplicate ids and unnamed items are rejected.
func Build(doc Document) (*Catalog, error) {
	c := &Catalog{
		Meta:      Meta{GeneratedAt: doc.Meta.GeneratedAt, BotName: doc.Meta.BotName},
		commands:   make(map[string]int, len(doc.Commands)),
		listeners:  make(map[string]int, len(doc.Listeners)),
		audits:     make(map[string]int, len(doc.AuditModules)),
		components: make(map[string]int, len(doc.Components)),
	}
	seen := make(map[string]string)

	claim := func(id, where string) error {
		if id == "" {
			return fmt.Errorf("%w: %s has no id", ErrInvalidCatalog, where)
		}
		if prev, dup := seen[id]; dup {
			return fmt.Errorf("%w: duplicate id %q (%s and %s)", ErrInvalidCatalog, id, prev, where)
		}
		seen[id] = where
		return nil
	}

	for i, raw := range doc.Commands {
		where := fmt.Sprintf("commands[%d]", i)
		name := strings.TrimSpace(raw.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: %s has no name", ErrInvalidCatalog, where)
		}
		id := firstNonEmpty(raw.ID, "command/"+name)
		if err := claim(id, where); err != nil {
			return nil, err
		}
		c.commands[id] = len(c.Commands)
		c.Commands = append(c.Commands, Item{
			Kind:     KindCommand,
			ID:       id,
			RawGroup: firstNonEmpty(raw.Group, raw.Category),
			Command: &Command{
				Name:        name,
				Description: raw.Description,
				Who:         raw.Who,
				BotPerms:    append([]string(nil), raw.BotPerms...),
				SourceFile:  raw.SourceFile,
				Body:        commandBody(raw),
			},
		})
	}

	for i, raw := range doc.Listeners {
		where := fmt.Sprintf("listeners[%d]", i)
		if strings.TrimSpace(raw.Title) == "" && strings.TrimSpace(raw.Name) == "" {
			return nil, fmt.Errorf("%w: %s has neither title nor name", ErrInvalidCatalog, where)
		}
		id := firstNonEmpty(raw.ID, "listener/"+firstNonEmpty(raw.Name, raw.Title))
		if err := claim(id, where); err != nil {
			return nil, err
		}
		c.listeners[id] = len(c.Listeners)
		c.Listeners = append(c.Listeners, Item{
			Kind:     KindListener,
			ID:       id,
			RawGroup: firstNonEmpty(raw.Group, raw.Category),
			Listener: &Listener{
				Title:       raw.Title,
				Name:        raw.Name,
				Description: raw.Description,
				File:        raw.File,
			},
		})
	}

	for i, raw := range doc.AuditModules {
		where := fmt.Sprintf("auditModules[%d]", i)
		if strings.TrimSpace(raw.Title) == "" && strings.TrimSpace(raw.Key) == "" {
			return nil, fmt.Errorf("%w: %s has neither title nor key", ErrInvalidCatalog, where)
		}
		id := firstNonEmpty(raw.ID, "audit/"+firstNonEmpty(raw.Key, raw.Title))
		if err := claim(id, where); err != nil {
			return nil, err
		}
		c.audits[id] = len(c.Audits)
		c.Audits = append(c.Audits, Item{
			Kind:     KindAudit,
			ID:       id,
			RawGroup: firstNonEmpty(raw.Group, raw.GroupLabel),
			Audit: &AuditModule{
				Title:       raw.Title,
				Description: firstNonEmpty(raw.Description, raw.Subtitle),
				Key:         raw.Key,
				File:        raw.File,
			},
		})
	}

	for i, raw := range doc.Components {
		where := fmt.Sprintf("components[%d]", i)
		title := strings.TrimSpace(raw.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: %s has no title", ErrInvalidCatalog, where)
		}
		id := firstNonEmpty(raw.ID, "component/"+title)
		if err := claim(id, where); err != nil {
			return nil, err
		}
		c.components[id] = len(c.Components)
		c.Components = append(c.Components, Item{
			Kind:     KindComponent,
			ID:       id,
			RawGroup: firstNonEmpty(raw.Group, raw.Kind),
			Component: &Component{
				Title:       title,
				Type:        firstNonEmpty(strings.ToLower(strings.TrimSpace(raw.Kind)), ComponentButton),
				Description: raw.Description,
				File:        raw.File,
				CustomIDs:   append([]string(nil), raw.CustomIDs...),
			},
		})
	}

	for i, raw := range doc.Guide {
		id := raw.ID
		if id == "" {
			id = "step-" + strconv.Itoa(i+1)
		}
		c.Guide = append(c.Guide, GuideStep{ID: id, Title: raw.Title, Body: raw.Body})
	}

	return c, nil
}

// BuildGroups validates the grouping configuration. Unknown section keys
// are rejected; definitions without an id are rejected.
func BuildGroups(doc GroupsDocument) (GroupTables, error) {
	tables := make(GroupTables, len(doc))
	for key, defs := range doc {
		section := Section(key)
		switch section {
		case SectionCommands, SectionListeners, SectionAudits, SectionComponents:
		default:
			return nil, fmt.Errorf("%w: unknown group section %q", ErrInvalidCatalog, key)
		}
		out := make([]GroupDefinition, 0, len(defs))
		for i, d := range defs {
			if strings.TrimSpace(d.ID) == "" {
				return nil, fmt.Errorf("%w: groups.%s[%d] has no id", ErrInvalidCatalog, key, i)
			}
			d.Synthesized = false
			out = append(out, d)
		}
		tables[section] = out
	}
	return tables, nil
}

func commandBody(raw RawCommand) CommandBody {
	switch {
	case len(raw.Groups) > 0:
		b := GroupedBody{Subcommands: subcommands(raw.Subcommands)}
		for _, g := range raw.Groups {
			b.Groups = append(b.Groups, SubcommandGroup{
				Name:        g.Name,
				Description: g.Description,
				Subcommands: subcommands(g.Subcommands),
			})
		}
		return b
	case len(raw.Subcommands) > 0:
		return SimpleBody{Subcommands: subcommands(raw.Subcommands)}
	default:
		return FlatBody{Options: options(raw.Options)}
	}
}

func subcommands(raw []RawSubcommand) []Subcommand {
	if len(raw) == 0 {
		return nil
	}
	out := make([]Subcommand, 0, len(raw))
	for _, s := range raw {
		out = append(out, Subcommand{Name: s.Name, Description: s.Description, Options: options(s.Options)})
	}
	return out
}

func options(raw []RawOption) []Option {
	if len(raw) == 0 {
		return nil
	}
	out := make([]Option, 0, len(raw))
	for _, o := range raw {
		opt := Option{
			Name:        o.Name,
			Type:        optionType(o.Type),
			Required:    o.Required,
			Description: o.Description,
		}
		for _, ch := range o.Choices {
			opt.Choices = append(opt.Choices, Choice{Name: ch.Name, Value: scalarString(ch.Value)})
		}
		out = append(out, opt)
	}
	return out
}

// optionTypeNames maps the numeric application command option types to names.
var optionTypeNames = map[int]string{
	1:  "SUB_COMMAND",
	2:  "SUB_COMMAND_GROUP",
	3:  "STRING",
	4:  "INTEGER",
	5:  "BOOLEAN",
	6:  "USER",
	7:  "CHANNEL",
	8:  "ROLE",
	9:  "MENTIONABLE",
	10: "NUMBER",
	11: "ATTACHMENT",
}

func optionType(v any) string {
	s := scalarString(v)
	if n, err := strconv.Atoi(s); err == nil {
		if name, ok := optionTypeNames[n]; ok {
			return name
		}
	}
	return s
}

func scalarString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	default:
		return fmt.Sprint(x)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
