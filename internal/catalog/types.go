package catalog

// Kind discriminates the payload carried by an Item.
type Kind string

const (
	KindCommand   Kind = "command"
	KindListener  Kind = "listener"
	KindAudit     Kind = "audit"
	KindComponent Kind = "component"
)

// Section identifies one navigation section and its grouping table.
type Section string

const (
	SectionCommands   Section = "commands"
	SectionListeners  Section = "listeners"
	SectionAudits     Section = "audits"
	SectionComponents Section = "components"
)

// Sections lists every section in display order.
var Sections = []Section{SectionCommands, SectionListeners, SectionAudits, SectionComponents}

// SectionOf returns the section an item kind is listed under.
func SectionOf(k Kind) Section {
	switch k {
	case KindListener:
		return SectionListeners
	case KindAudit:
		return SectionAudits
	case KindComponent:
		return SectionComponents
	default:
		return SectionCommands
	}
}

// Item is one documented catalog entry. Exactly one of Command, Listener,
// Audit or Component is set, matching Kind.
type Item struct {
	Kind     Kind   `json:"kind"`
	ID       string `json:"id"`
	RawGroup string `json:"rawGroup"`

	Command   *Command     `json:"command,omitempty"`
	Listener  *Listener    `json:"listener,omitempty"`
	Audit     *AuditModule `json:"audit,omitempty"`
	Component *Component   `json:"component,omitempty"`
}

// DisplayName is the label shown in navigation.
func (it Item) DisplayName() string {
	switch it.Kind {
	case KindCommand:
		if it.Command != nil {
			return "/" + it.Command.Name
		}
	case KindListener:
		if it.Listener != nil {
			if it.Listener.Title != "" {
				return it.Listener.Title
			}
			return it.Listener.Name
		}
	case KindAudit:
		if it.Audit != nil {
			if it.Audit.Title != "" {
				return it.Audit.Title
			}
			return it.Audit.Key
		}
	case KindComponent:
		if it.Component != nil {
			return it.Component.Title
		}
	}
	return it.ID
}

// Description returns the item's own description text.
func (it Item) Description() string {
	switch {
	case it.Command != nil:
		return it.Command.Description
	case it.Listener != nil:
		return it.Listener.Description
	case it.Audit != nil:
		return it.Audit.Description
	case it.Component != nil:
		return it.Component.Description
	}
	return ""
}

// Command documents one slash command.
type Command struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Who         string      `json:"who,omitempty"`
	BotPerms    []string    `json:"botPerms,omitempty"`
	SourceFile  string      `json:"sourceFile,omitempty"`
	Body        CommandBody `json:"-"`
}

// OptionCount returns the number of top-level parameters or subcommands.
func (c *Command) OptionCount() int {
	switch b := c.Body.(type) {
	case FlatBody:
		return len(b.Options)
	case SimpleBody:
		return len(b.Subcommands)
	case GroupedBody:
		n := len(b.Subcommands)
		for _, g := range b.Groups {
			n += len(g.Subcommands)
		}
		return n
	}
	return 0
}

// AllOptions returns every option reachable from the command, including the
// options of nested subcommands.
func (c *Command) AllOptions() []Option {
	var out []Option
	switch b := c.Body.(type) {
	case FlatBody:
		out = append(out, b.Options...)
	case SimpleBody:
		for _, s := range b.Subcommands {
			out = append(out, s.Options...)
		}
	case GroupedBody:
		for _, g := range b.Groups {
			for _, s := range g.Subcommands {
				out = append(out, s.Options...)
			}
		}
		for _, s := range b.Subcommands {
			out = append(out, s.Options...)
		}
	}
	return out
}

// CommandBody is one of FlatBody, SimpleBody or GroupedBody.
type CommandBody interface {
	isCommandBody()
}

// FlatBody is a command that takes options directly.
type FlatBody struct {
	Options []Option
}

// SimpleBody is a command made of subcommands.
type SimpleBody struct {
	Subcommands []Subcommand
}

// GroupedBody is a command whose subcommands are organised in groups.
// Loose subcommands next to the groups are kept in Subcommands.
type GroupedBody struct {
	Groups      []SubcommandGroup
	Subcommands []Subcommand
}

func (FlatBody) isCommandBody()    {}
func (SimpleBody) isCommandBody()  {}
func (GroupedBody) isCommandBody() {}

// Subcommand is a named block of options under a command.
type Subcommand struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Options     []Option `json:"options,omitempty"`
}

// SubcommandGroup holds subcommands sharing a prefix.
type SubcommandGroup struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Subcommands []Subcommand `json:"subcommands,omitempty"`
}

// Option is one command parameter.
type Option struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Required    bool     `json:"required"`
	Description string   `json:"description"`
	Choices     []Choice `json:"choices,omitempty"`
}

// Choice is a fixed value an option accepts.
type Choice struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Listener documents a gateway event handler.
type Listener struct {
	Title       string `json:"title"`
	Name        string `json:"name"`
	Description string `json:"description"`
	File        string `json:"file,omitempty"`
}

// AuditModule documents one audit-log module.
type AuditModule struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Key         string `json:"key"`
	File        string `json:"file,omitempty"`
}

// Component types.
const (
	ComponentModal  = "modal"
	ComponentButton = "button"
)

// Component documents one interaction handler module: a modal or a set of
// buttons, identified by the custom ids it answers to.
type Component struct {
	Title       string   `json:"title"`
	Type        string   `json:"type"`
	Description string   `json:"description,omitempty"`
	File        string   `json:"file,omitempty"`
	CustomIDs   []string `json:"customIds,omitempty"`
}

// GroupDefinition labels and orders a bucket of items sharing a raw group.
type GroupDefinition struct {
	ID          string        `json:"id" yaml:"id"`
	Match       []string      `json:"match" yaml:"match"`
	Title       LocalizedText `json:"title" yaml:"title"`
	Description LocalizedText `json:"description,omitempty" yaml:"description,omitempty"`
	Synthesized bool          `json:"synthesized,omitempty" yaml:"-"`
}

// Matches reports whether rawGroup belongs to this definition.
func (d GroupDefinition) Matches(rawGroup string) bool {
	for _, m := range d.Match {
		if m == rawGroup {
			return true
		}
	}
	return false
}

// GroupTables maps each section to its ordered group definitions.
type GroupTables map[Section][]GroupDefinition

// LanguageEntry populates the locale switcher.
type LanguageEntry struct {
	Locale   string `json:"locale" yaml:"locale"`
	Market   string `json:"market" yaml:"market"`
	Flag     string `json:"flag" yaml:"flag"`
	Name     string `json:"name" yaml:"name"`
	LangName string `json:"langName" yaml:"langName"`
}

// GuideStep is one step of the setup guide. Body is Markdown.
type GuideStep struct {
	ID    string        `json:"id"`
	Title LocalizedText `json:"title"`
	Body  LocalizedText `json:"body"`
}

// Meta carries catalog generation metadata.
type Meta struct {
	GeneratedAt string `json:"generatedAt"`
	BotName     string `json:"botName,omitempty"`
}
