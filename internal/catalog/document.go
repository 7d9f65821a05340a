package catalog

// The Raw* types mirror the catalog resource as it is published. They are
// decoded from JSON or YAML and normalised by Build.

// Document is the catalog resource.
type Document struct {
	Commands     []RawCommand   `json:"commands" yaml:"commands"`
	Listeners    []RawListener  `json:"listeners" yaml:"listeners"`
	AuditModules []RawAudit     `json:"auditModules" yaml:"auditModules"`
	Components   []RawComponent `json:"components" yaml:"components"`
	Guide        []RawGuideStep `json:"guide" yaml:"guide"`
	Meta         RawMeta        `json:"meta" yaml:"meta"`
}

// RawCommand is a command record as published.
type RawCommand struct {
	ID          string               `json:"id" yaml:"id"`
	Name        string               `json:"name" yaml:"name"`
	Description string               `json:"description" yaml:"description"`
	Group       string               `json:"group" yaml:"group"`
	Category    string               `json:"categoryLabel" yaml:"categoryLabel"`
	Who         string               `json:"who" yaml:"who"`
	BotPerms    []string             `json:"botPerms" yaml:"botPerms"`
	SourceFile  string               `json:"sourceFile" yaml:"sourceFile"`
	Options     []RawOption          `json:"options" yaml:"options"`
	Subcommands []RawSubcommand      `json:"subcommands" yaml:"subcommands"`
	Groups      []RawSubcommandGroup `json:"groups" yaml:"groups"`
}

// RawSubcommand is a subcommand record.
type RawSubcommand struct {
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description" yaml:"description"`
	Options     []RawOption `json:"options" yaml:"options"`
}

// RawSubcommandGroup is a subcommand group record.
type RawSubcommandGroup struct {
	Name        string          `json:"name" yaml:"name"`
	Description string          `json:"description" yaml:"description"`
	Subcommands []RawSubcommand `json:"subcommands" yaml:"subcommands"`
}

// RawOption is an option record. Type may be a name or a numeric code.
type RawOption struct {
	Name        string      `json:"name" yaml:"name"`
	Type        any         `json:"type" yaml:"type"`
	Required    bool        `json:"required" yaml:"required"`
	Description string      `json:"description" yaml:"description"`
	Choices     []RawChoice `json:"choices" yaml:"choices"`
}

// RawChoice is a choice record; Value may be a string or a number.
type RawChoice struct {
	Name  string `json:"name" yaml:"name"`
	Value any    `json:"value" yaml:"value"`
}

// RawListener is a listener record.
type RawListener struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Group       string `json:"group" yaml:"group"`
	Category    string `json:"categoryLabel" yaml:"categoryLabel"`
	File        string `json:"file" yaml:"file"`
}

// RawAudit is an audit module record.
type RawAudit struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Subtitle    string `json:"subtitle" yaml:"subtitle"`
	Key         string `json:"key" yaml:"key"`
	Group       string `json:"group" yaml:"group"`
	GroupLabel  string `json:"groupLabel" yaml:"groupLabel"`
	File        string `json:"file" yaml:"file"`
}

// RawComponent is an interaction component record. Kind is "modal" or
// "button".
type RawComponent struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Kind        string   `json:"kind" yaml:"kind"`
	Description string   `json:"description" yaml:"description"`
	Group       string   `json:"group" yaml:"group"`
	File        string   `json:"file" yaml:"file"`
	CustomIDs   []string `json:"customIds" yaml:"customIds"`
}

// RawGuideStep is a setup guide record.
type RawGuideStep struct {
	ID    string        `json:"id" yaml:"id"`
	Title LocalizedText `json:"title" yaml:"title"`
	Body  LocalizedText `json:"body" yaml:"body"`
}

// RawMeta is the catalog metadata record.
type RawMeta struct {
	GeneratedAt string `json:"generatedAt" yaml:"generatedAt"`
	BotName     string `json:"botName" yaml:"botName"`
}

// GroupsDocument is the grouping configuration resource.
type GroupsDocument map[string][]GroupDefinition

// ListenerDocs maps a listener event name to localized body text.
type ListenerDocs map[string]LocalizedText
