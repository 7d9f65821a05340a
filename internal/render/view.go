package render

import (
	"github.com/ziadkadry99/botdocs/internal/catalog"
	"github.com/ziadkadry99/botdocs/internal/prefs"
)

// Kind discriminates a ViewModel.
type Kind string

const (
	KindHome      Kind = "home"
	KindCommand   Kind = "command"
	KindListener  Kind = "listener"
	KindAudit     Kind = "audit"
	KindComponent Kind = "component"
	KindLegal     Kind = "legal"
	KindError     Kind = "error"
)

// ViewModel is everything a presentation layer needs to paint one screen.
// Exactly one of the per-kind views is set, matching Kind.
type ViewModel struct {
	Kind      Kind            `json:"kind"`
	Title     string          `json:"title"`
	ActiveID  string          `json:"activeId"`
	Fragment  string          `json:"fragment"`
	Locale    string          `json:"locale"`
	Lang      string          `json:"lang"`
	Theme     prefs.Theme     `json:"theme"`
	ThemeMode prefs.ThemeMode `json:"themeMode"`

	Site       SiteView         `json:"site"`
	Navigation Navigation       `json:"navigation"`
	Languages  []LanguageOption `json:"languages"`

	Home      *HomeView      `json:"home,omitempty"`
	Command   *CommandView   `json:"command,omitempty"`
	Listener  *ListenerView  `json:"listener,omitempty"`
	Audit     *AuditView     `json:"audit,omitempty"`
	Component *ComponentView `json:"component,omitempty"`
	Legal     *LegalView     `json:"legal,omitempty"`
	Error     *ErrorView     `json:"error,omitempty"`
}

// SiteView is the chrome shared by every screen.
type SiteView struct {
	ProductName string `json:"productName"`
	Tagline     string `json:"tagline,omitempty"`
	Links       []Link `json:"links,omitempty"`
	FooterStats string `json:"footerStats,omitempty"`
}

// Link is an outbound link. Links with an empty URL are never emitted.
type Link struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Badge is a small labeled value shown next to a header.
type Badge struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// CommandView is the detail view of one command.
type CommandView struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	CopyText    string  `json:"copyText"`
	Group       string  `json:"group"`
	SourceFile  string  `json:"sourceFile,omitempty"`
	Badges      []Badge `json:"badges,omitempty"`
	Parameters  Params  `json:"parameters"`
}

// Params is the options section of a command or subcommand. NoParameters
// is set when Options and Blocks are both empty.
type Params struct {
	Heading      string        `json:"heading"`
	NoParameters bool          `json:"noParameters"`
	EmptyText    string        `json:"emptyText,omitempty"`
	Options      []OptionRow   `json:"options,omitempty"`
	Blocks       []OptionBlock `json:"blocks,omitempty"`
}

// OptionBlock is a labeled sub-block: a subcommand, or a subcommand group
// whose own Params hold its subcommands as nested blocks.
type OptionBlock struct {
	Kind        string `json:"kind"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Params      Params `json:"params"`
}

// Block kinds.
const (
	BlockSubcommand = "subcommand"
	BlockGroup      = "group"
)

// OptionRow is one option in an options table.
type OptionRow struct {
	Name          string      `json:"name"`
	Type          string      `json:"type"`
	Required      bool        `json:"required"`
	RequiredLabel string      `json:"requiredLabel"`
	Description   string      `json:"description,omitempty"`
	Choices       []ChoiceRow `json:"choices,omitempty"`
}

// ChoiceRow is one name → value pair.
type ChoiceRow struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ListenerView is the detail view of one listener.
type ListenerView struct {
	Title      string  `json:"title"`
	Event      string  `json:"event"`
	Body       string  `json:"body"`
	Overridden bool    `json:"overridden"`
	Group      string  `json:"group"`
	Badges     []Badge `json:"badges,omitempty"`
}

// AuditView is the detail view of one audit module.
type AuditView struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Group       string  `json:"group"`
	Badges      []Badge `json:"badges"`
}

// ComponentView is the detail view of one interaction component.
// CustomIDs holds at most MaxCustomIDs ids; MoreCustomIDs counts the rest.
type ComponentView struct {
	Title         string   `json:"title"`
	Type          string   `json:"type"`
	TypeLabel     string   `json:"typeLabel"`
	Description   string   `json:"description,omitempty"`
	Group         string   `json:"group"`
	CustomIDCount int      `json:"customIdCount"`
	CustomIDs     []string `json:"customIds,omitempty"`
	MoreCustomIDs int      `json:"moreCustomIds,omitempty"`
	Badges        []Badge  `json:"badges,omitempty"`
}

// HomeView is the landing screen.
type HomeView struct {
	ProductName   string            `json:"productName"`
	Kicker        string            `json:"kicker,omitempty"`
	Tagline       string            `json:"tagline,omitempty"`
	HeroLead      string            `json:"heroLead,omitempty"`
	Counts        catalog.Counts    `json:"counts"`
	Stats         []Stat            `json:"stats"`
	Pills         []Pill            `json:"pills,omitempty"`
	Featured      []FeaturedCommand `json:"featured,omitempty"`
	FeaturedEmpty string            `json:"featuredEmpty,omitempty"`
	Guide         []GuideStepView   `json:"guide,omitempty"`
	GeneratedAt   string            `json:"generatedAt,omitempty"`
}

// Stat is one labeled count.
type Stat struct {
	Section catalog.Section `json:"section"`
	Label   string          `json:"label"`
	Count   int             `json:"count"`
}

// Pill is a command group with its size.
type Pill struct {
	GroupID string `json:"groupId"`
	Label   string `json:"label"`
	Count   int    `json:"count"`
}

// FeaturedCommand is a command highlighted on Home.
type FeaturedCommand struct {
	ID          string `json:"id"`
	Fragment    string `json:"fragment"`
	Name        string `json:"name"`
	Description string `json:"description"`
	OptionCount int    `json:"optionCount"`
}

// GuideStepView is one localized setup step. HTML is set only when a
// Markup is configured.
type GuideStepView struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Markdown string `json:"markdown"`
	HTML     string `json:"html,omitempty"`
}

// LegalView is a static legal page.
type LegalView struct {
	Kind     string `json:"kind"`
	Title    string `json:"title"`
	Markdown string `json:"markdown"`
	HTML     string `json:"html,omitempty"`
}

// ErrorView replaces the whole UI when loading failed.
type ErrorView struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

// Navigation is the sidebar model after search and group filtering. Group
// is the command group filter; Chips lists the choices for it.
type Navigation struct {
	Query    string       `json:"query,omitempty"`
	Group    string       `json:"group,omitempty"`
	Total    int          `json:"total"`
	Visible  int          `json:"visible"`
	Chips    []GroupChip  `json:"chips,omitempty"`
	Sections []NavSection `json:"sections"`
}

// GroupChip is one command group filter choice. The chip with an empty
// GroupID clears the filter and counts every command.
type GroupChip struct {
	GroupID string `json:"groupId"`
	Label   string `json:"label"`
	Count   int    `json:"count"`
	Active  bool   `json:"active,omitempty"`
}

// NavSection is one top-level section of the sidebar.
type NavSection struct {
	Section catalog.Section `json:"section"`
	Title   string          `json:"title"`
	Count   int             `json:"count"`
	Buckets []NavBucket     `json:"buckets"`
}

// NavBucket is one group within a section.
type NavBucket struct {
	ID          string     `json:"id"`
	Label       string     `json:"label"`
	Description string     `json:"description,omitempty"`
	Synthesized bool       `json:"synthesized,omitempty"`
	Entries     []NavEntry `json:"entries"`
}

// NavEntry links to one item.
type NavEntry struct {
	ID          string `json:"id"`
	Fragment    string `json:"fragment"`
	Label       string `json:"label"`
	OptionCount int    `json:"optionCount,omitempty"`
	Active      bool   `json:"active,omitempty"`
}

// LanguageOption is one row of the locale switcher.
type LanguageOption struct {
	Locale     string `json:"locale"`
	Market     string `json:"market"`
	Flag       string `json:"flag"`
	Name       string `json:"name"`
	LangName   string `json:"langName"`
	RegionName string `json:"regionName"`
	Active     bool   `json:"active,omitempty"`
}
