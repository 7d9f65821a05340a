package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"text/template"

	"github.com/ziadkadry99/botdocs/internal/catalog"
	"github.com/ziadkadry99/botdocs/internal/locale"
	"github.com/ziadkadry99/botdocs/internal/nav"
	"github.com/ziadkadry99/botdocs/internal/prefs"
)

const testCatalogJSON = `{
  "meta": {"generatedAt": "2025-03-01T10:00:00Z", "botName": "CatalogBot"},
  "commands": [
    {"name": "ping", "description": "Latency check", "group": "util", "who": "Everyone", "botPerms": ["SendMessages", "EmbedLinks"]},
    {"name": "create-poll", "description": "Start a vote", "group": "community",
     "options": [{"name": "question", "type": 3, "required": true, "description": "What to ask"}]},
    {"name": "create-ticket", "description": "Open a support ticket", "group": "support"},
    {"name": "logging", "description": "Audit log setup", "group": "admin",
     "groups": [{"name": "channel", "description": "Log channel", "subcommands": [
       {"name": "set", "options": [{"name": "target", "type": 7, "required": true}]},
       {"name": "clear"}
     ]}],
     "subcommands": [{"name": "status", "description": "Show status"}]}
  ],
  "listeners": [
    {"title": "Member join", "name": "guildMemberAdd", "description": "Greets new members", "group": "members", "file": "events/join.js"},
    {"title": "Message delete", "name": "messageDelete", "description": "Logs deleted messages", "group": "messages"}
  ],
  "auditModules": [
    {"title": "Role changes", "key": "roles", "description": "Role create/delete", "group": "guild", "file": "audit/roles.js"}
  ],
  "components": [
    {"id": "component/feedback", "title": "Feedback form", "kind": "modal", "file": "components/feedback.js",
     "customIds": ["fb:1", "fb:2", "fb:3", "fb:4", "fb:5", "fb:6", "fb:7", "fb:8"]}
  ],
  "guide": [
    {"id": "invite", "title": {"en": "Invite the bot", "hu": "Hívd meg a botot"}, "body": {"en": "Click **Invite**.", "hu": "Kattints a **Meghívás** gombra."}}
  ]
}`

func testEnv(t *testing.T) Env {
	t.Helper()
	var doc catalog.Document
	if err := json.Unmarshal([]byte(testCatalogJSON), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	cat, err := catalog.Build(doc)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return Env{
		Catalog: cat,
		Groups: catalog.GroupTables{
			catalog.SectionCommands: {
				{ID: "admin", Match: []string{"admin"}, Title: catalog.LocalizedText{"en": "Admin", "hu": "Adminisztráció"}},
				{ID: "community", Match: []string{"community"}, Title: catalog.LocalizedText{"en": "Community", "hu": "Közösség"}},
				{ID: "support", Match: []string{"support"}, Title: catalog.LocalizedText{"en": "Tickets", "hu": "Ticket / Support"}},
			},
			catalog.SectionAudits: {
				{ID: "guild", Match: []string{"guild"}, Title: catalog.LocalizedText{"en": "Server", "hu": "Szerver"}},
			},
		},
		Languages: []catalog.LanguageEntry{
			{Locale: "hu-HU", Market: "hu", Flag: "hu", Name: "Magyarország", LangName: "Magyar"},
			{Locale: "en-GB", Market: "uk", Flag: "gb", Name: "United Kingdom", LangName: "English"},
		},
		ListenerDocs: catalog.ListenerDocs{
			"guildMemberAdd": {"en": "Sends a welcome card.", "hu": "Üdvözlő kártyát küld."},
		},
		Site: Site{
			BotName:   "Brian the Barbarian",
			InviteURL: "https://example.com/invite",
		},
		Locale:    locale.New("en-US"),
		Theme:     prefs.ThemeDark,
		ThemeMode: prefs.ModeSystem,
	}
}

func selectID(env Env, id string) nav.Selection {
	return nav.Resolve(env.Catalog, id)
}

func TestRenderIdempotent(t *testing.T) {
	env := testEnv(t)
	env.Markup = upperMarkup{}
	for _, id := range []string{"", "command/ping", "command/logging", "listener/guildMemberAdd", "audit/roles", "component/feedback", "legal/terms", "legal/privacy", "nope"} {
		sel := selectID(env, id)
		a := Render(sel, env)
		b := Render(sel, env)
		if !reflect.DeepEqual(a, b) {
			t.Errorf("Render(%q) differs between calls", id)
		}
	}
}

func TestRenderDoesNotMutateCatalog(t *testing.T) {
	env := testEnv(t)
	before, _ := json.Marshal(env.Catalog.Commands)
	Render(selectID(env, ""), env)
	Render(selectID(env, "command/logging"), env)
	after, _ := json.Marshal(env.Catalog.Commands)
	if string(before) != string(after) {
		t.Error("catalog commands changed during render")
	}
}

func TestRenderCommandWithoutOptions(t *testing.T) {
	env := testEnv(t)
	vm := Render(selectID(env, "command/ping"), env)

	if vm.Kind != KindCommand || vm.Command == nil {
		t.Fatalf("Kind = %q", vm.Kind)
	}
	p := vm.Command.Parameters
	if !p.NoParameters {
		t.Error("expected the no-parameters marker")
	}
	if len(p.Options) != 0 || len(p.Blocks) != 0 {
		t.Errorf("expected no table, got %d options %d blocks", len(p.Options), len(p.Blocks))
	}
	if p.EmptyText != "No parameters." {
		t.Errorf("EmptyText = %q", p.EmptyText)
	}
	if vm.Command.CopyText != "/ping" {
		t.Errorf("CopyText = %q", vm.Command.CopyText)
	}
	if vm.Title != "/ping" || vm.ActiveID != "command/ping" {
		t.Errorf("Title %q ActiveID %q", vm.Title, vm.ActiveID)
	}

	var perms []string
	for _, b := range vm.Command.Badges {
		if b.Key == "perm" {
			perms = append(perms, b.Value)
		}
	}
	if vm.Command.Badges[0].Key != "who" || vm.Command.Badges[0].Value != "Everyone" {
		t.Errorf("first badge = %+v", vm.Command.Badges[0])
	}
	if fmt.Sprint(perms) != "[SendMessages EmbedLinks]" {
		t.Errorf("perm badges = %v", perms)
	}
}

func TestRenderFlatOptions(t *testing.T) {
	env := testEnv(t)
	env.Locale = locale.New("hu-HU")
	vm := Render(selectID(env, "command/create-poll"), env)

	rows := vm.Command.Parameters.Options
	if len(rows) != 1 {
		t.Fatalf("got %d rows", len(rows))
	}
	r := rows[0]
	if r.Name != "question" || r.Type != "STRING" || !r.Required || r.RequiredLabel != "kötelező" {
		t.Errorf("row = %+v", r)
	}
	if vm.Command.Group != "Közösség" {
		t.Errorf("Group = %q", vm.Command.Group)
	}
}

func TestRenderGroupedCommand(t *testing.T) {
	env := testEnv(t)
	vm := Render(selectID(env, "command/logging"), env)

	blocks := vm.Command.Parameters.Blocks
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want group + loose subcommand", len(blocks))
	}
	group := blocks[0]
	if group.Kind != BlockGroup || group.Name != "channel" || len(group.Params.Blocks) != 2 {
		t.Fatalf("group block = %+v", group)
	}
	set := group.Params.Blocks[0]
	if set.Kind != BlockSubcommand || len(set.Params.Options) != 1 || set.Params.Options[0].Type != "CHANNEL" {
		t.Errorf("set block = %+v", set)
	}
	if !group.Params.Blocks[1].Params.NoParameters {
		t.Error("clear subcommand should carry the no-parameters marker")
	}
	if blocks[1].Kind != BlockSubcommand || blocks[1].Name != "status" {
		t.Errorf("loose block = %+v", blocks[1])
	}
}

func TestRenderTruncatesChoices(t *testing.T) {
	var choices []catalog.RawChoice
	for i := 0; i < 25; i++ {
		choices = append(choices, catalog.RawChoice{Name: fmt.Sprintf("c%d", i), Value: float64(i)})
	}
	cat, err := catalog.Build(catalog.Document{Commands: []catalog.RawCommand{{
		Name:    "pick",
		Options: []catalog.RawOption{{Name: "which", Type: "STRING", Choices: choices}},
	}}})
	if err != nil {
		t.Fatal(err)
	}
	env := Env{Catalog: cat, Locale: locale.New("en")}

	vm := Render(nav.Resolve(cat, "command/pick"), env)
	got := vm.Command.Parameters.Options[0].Choices
	if len(got) != MaxChoices {
		t.Fatalf("got %d choices, want %d", len(got), MaxChoices)
	}
	if got[17].Name != "c17" || got[17].Value != "17" {
		t.Errorf("last choice = %+v", got[17])
	}
	if n := len(cat.Commands[0].Command.AllOptions()[0].Choices); n != 25 {
		t.Errorf("catalog choices were modified: %d", n)
	}
}

func TestRenderListenerOverride(t *testing.T) {
	env := testEnv(t)

	vm := Render(selectID(env, "listener/guildMemberAdd"), env)
	if vm.Listener.Body != "Sends a welcome card." || !vm.Listener.Overridden {
		t.Errorf("en body = %q overridden %v", vm.Listener.Body, vm.Listener.Overridden)
	}

	env.Locale = locale.New("hu")
	vm = Render(selectID(env, "listener/guildMemberAdd"), env)
	if vm.Listener.Body != "Üdvözlő kártyát küld." {
		t.Errorf("hu body = %q", vm.Listener.Body)
	}

	vm = Render(selectID(env, "listener/messageDelete"), env)
	if vm.Listener.Body != "Logs deleted messages" || vm.Listener.Overridden {
		t.Errorf("no-override body = %q overridden %v", vm.Listener.Body, vm.Listener.Overridden)
	}
	if vm.Listener.Group != "messages" {
		t.Errorf("synthesized group label = %q", vm.Listener.Group)
	}
}

func TestRenderAudit(t *testing.T) {
	env := testEnv(t)
	vm := Render(selectID(env, "audit/roles"), env)
	if vm.Kind != KindAudit {
		t.Fatalf("Kind = %q", vm.Kind)
	}
	want := []Badge{
		{Key: "key", Label: "Key", Value: "roles"},
		{Key: "group", Label: "Group", Value: "Server"},
		{Key: "file", Label: "File", Value: "audit/roles.js"},
	}
	if !reflect.DeepEqual(vm.Audit.Badges, want) {
		t.Errorf("badges = %+v", vm.Audit.Badges)
	}
}

func TestRenderUnknownIsHome(t *testing.T) {
	env := testEnv(t)
	vm := Render(selectID(env, "command/missing"), env)
	if vm.Kind != KindHome || vm.ActiveID != "" {
		t.Errorf("Kind %q ActiveID %q", vm.Kind, vm.ActiveID)
	}

	// An item selection without a catalog also degrades to Home.
	sel := selectID(env, "command/ping")
	env.Catalog = nil
	if vm := Render(sel, env); vm.Kind != KindHome {
		t.Errorf("Kind = %q without catalog", vm.Kind)
	}
}

func TestRenderHome(t *testing.T) {
	env := testEnv(t)
	vm := Render(nav.Home(), env)
	h := vm.Home
	if h == nil {
		t.Fatal("Home view missing")
	}
	if h.ProductName != "Brian the Barbarian" || vm.Title != "Brian the Barbarian" {
		t.Errorf("ProductName = %q", h.ProductName)
	}
	if h.Counts != (catalog.Counts{Commands: 4, Listeners: 2, Audits: 1, Components: 1}) {
		t.Errorf("Counts = %+v", h.Counts)
	}
	if h.FeaturedEmpty == "" || len(h.Featured) != 0 {
		t.Errorf("featured = %v, empty marker %q", h.Featured, h.FeaturedEmpty)
	}
	if h.GeneratedAt != "2025-03-01T10:00:00Z" {
		t.Errorf("GeneratedAt = %q", h.GeneratedAt)
	}
	if len(h.Guide) != 1 || h.Guide[0].Title != "Invite the bot" || h.Guide[0].HTML != "" {
		t.Errorf("guide = %+v", h.Guide)
	}
	if len(vm.Site.Links) != 1 || vm.Site.Links[0].Key != "invite" {
		t.Errorf("links = %+v, empty URLs must be hidden", vm.Site.Links)
	}
}

func TestRenderHomeProductNameFallback(t *testing.T) {
	env := testEnv(t)
	env.Site.BotName = ""
	if got := Render(nav.Home(), env).Home.ProductName; got != "CatalogBot" {
		t.Errorf("ProductName = %q, want catalog bot name", got)
	}
	env.Catalog = nil
	if got := Render(nav.Home(), env).Home.ProductName; got != defaultProductName {
		t.Errorf("ProductName = %q", got)
	}
}

func TestRenderHomeFeatured(t *testing.T) {
	env := testEnv(t)
	env.Site.Featured = []string{"logging", "/ping", "not-a-command"}
	h := Render(nav.Home(), env).Home

	if h.FeaturedEmpty != "" {
		t.Errorf("FeaturedEmpty = %q", h.FeaturedEmpty)
	}
	var names []string
	for _, f := range h.Featured {
		names = append(names, f.Name)
	}
	if fmt.Sprint(names) != "[/ping /logging]" {
		t.Errorf("featured = %v, want catalog order", names)
	}
	if h.Featured[1].OptionCount != 3 {
		t.Errorf("logging option count = %d", h.Featured[1].OptionCount)
	}
}

func TestRenderHomeFeaturedLimit(t *testing.T) {
	doc := catalog.Document{}
	var names []string
	for i := 0; i < 9; i++ {
		n := fmt.Sprintf("cmd%d", i)
		names = append(names, n)
		doc.Commands = append(doc.Commands, catalog.RawCommand{Name: n})
	}
	cat, err := catalog.Build(doc)
	if err != nil {
		t.Fatal(err)
	}
	env := Env{Catalog: cat, Locale: locale.New("en"), Site: Site{Featured: names}}
	if got := len(Render(nav.Home(), env).Home.Featured); got != MaxFeatured {
		t.Errorf("got %d featured, want %d", got, MaxFeatured)
	}
}

func TestRenderHomePills(t *testing.T) {
	doc := catalog.Document{}
	add := func(group string, n int) {
		for i := 0; i < n; i++ {
			doc.Commands = append(doc.Commands, catalog.RawCommand{Name: fmt.Sprintf("%s-%d", group, i), Group: group})
		}
	}
	add("zeta", 3)
	add("alpha", 3)
	add("big", 5)
	for i := 0; i < 8; i++ {
		add(fmt.Sprintf("small%d", i), 1)
	}
	cat, err := catalog.Build(doc)
	if err != nil {
		t.Fatal(err)
	}
	env := Env{Catalog: cat, Locale: locale.New("en")}
	pills := Render(nav.Home(), env).Home.Pills

	if len(pills) != MaxPills {
		t.Fatalf("got %d pills", len(pills))
	}
	want := []string{"big", "alpha", "zeta"}
	for i, w := range want {
		if pills[i].Label != w {
			t.Errorf("pill %d = %q, want %q", i, pills[i].Label, w)
		}
	}
	if pills[0].Count != 5 || pills[3].Count != 1 {
		t.Errorf("counts = %d, %d", pills[0].Count, pills[3].Count)
	}
}

func TestRenderSearchHidesEmptyBuckets(t *testing.T) {
	env := testEnv(t)
	env.Query = "poll"
	n := Render(nav.Home(), env).Navigation

	if n.Total != 8 || n.Visible != 1 {
		t.Errorf("Total %d Visible %d", n.Total, n.Visible)
	}
	if len(n.Sections) != 1 || n.Sections[0].Section != catalog.SectionCommands {
		t.Fatalf("sections = %+v", n.Sections)
	}
	buckets := n.Sections[0].Buckets
	if len(buckets) != 1 || buckets[0].ID != "community" {
		t.Fatalf("buckets = %+v", buckets)
	}
	for _, b := range buckets {
		for _, e := range b.Entries {
			if e.ID == "command/create-ticket" {
				t.Error("create-ticket should be hidden")
			}
		}
	}
	if buckets[0].Entries[0].ID != "command/create-poll" {
		t.Errorf("entries = %+v", buckets[0].Entries)
	}
}

func TestRenderNavigationUnfiltered(t *testing.T) {
	env := testEnv(t)
	n := Render(selectID(env, "command/create-poll"), env).Navigation

	if n.Total != n.Visible || len(n.Sections) != 4 {
		t.Fatalf("Total %d Visible %d sections %d", n.Total, n.Visible, len(n.Sections))
	}
	cmds := n.Sections[0]
	var order []string
	for _, b := range cmds.Buckets {
		order = append(order, b.ID)
	}
	// Configured buckets first, then the synthesized "util".
	if fmt.Sprint(order) != "[admin community support util]" {
		t.Errorf("bucket order = %v", order)
	}
	active := 0
	for _, b := range cmds.Buckets {
		for _, e := range b.Entries {
			if e.Active {
				active++
				if e.ID != "command/create-poll" {
					t.Errorf("active entry = %q", e.ID)
				}
			}
		}
	}
	if active != 1 {
		t.Errorf("%d active entries", active)
	}
	if !cmds.Buckets[3].Synthesized {
		t.Error("util bucket should be synthesized")
	}
}

func TestRenderSearchGroupLabel(t *testing.T) {
	env := testEnv(t)
	env.Query = "tickets"
	n := Render(nav.Home(), env).Navigation
	if n.Visible != 1 || n.Sections[0].Buckets[0].Entries[0].ID != "command/create-ticket" {
		t.Errorf("group label search = %+v", n)
	}
}

func TestRenderLegal(t *testing.T) {
	env := testEnv(t)
	env.Site.SupportURL = "https://example.com/support"
	env.Markup = upperMarkup{}

	vm := Render(selectID(env, "legal/terms"), env)
	if vm.Kind != KindLegal || vm.Legal.Kind != "terms" || vm.Title != "Terms of Service" {
		t.Fatalf("vm = %+v", vm.Legal)
	}
	if !strings.Contains(vm.Legal.Markdown, "Brian the Barbarian") || !strings.Contains(vm.Legal.Markdown, "support server") {
		t.Errorf("markdown = %q", vm.Legal.Markdown)
	}
	if vm.Legal.HTML != strings.ToUpper(vm.Legal.Markdown) {
		t.Error("markup not applied")
	}

	env.Locale = locale.New("hu-HU")
	env.Site.SupportURL = ""
	vm = Render(selectID(env, "legal/privacy"), env)
	if vm.Title != "Adatkezelési tájékoztató" || strings.Contains(vm.Legal.Markdown, "support") {
		t.Errorf("hu privacy = %q / %q", vm.Title, vm.Legal.Markdown)
	}

	env.Locale = locale.New("de")
	vm = Render(selectID(env, "legal/privacy"), env)
	if !strings.HasPrefix(vm.Legal.Markdown, "## Privacy Policy") {
		t.Errorf("de privacy should use English template, got %q", vm.Legal.Markdown)
	}
}

func TestLegalTemplateFallbackChain(t *testing.T) {
	en := template.Must(template.New("en").Parse("en"))
	hu := template.Must(template.New("hu").Parse("hu"))

	tests := []struct {
		name  string
		tmpls map[string]*template.Template
		lang  string
		want  *template.Template
	}{
		{"requested", map[string]*template.Template{"en": en, "hu": hu}, "hu", hu},
		{"english next", map[string]*template.Template{"en": en, "hu": hu}, "de", en},
		{"hungarian last", map[string]*template.Template{"hu": hu}, "de", hu},
		{"none", map[string]*template.Template{}, "de", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pickTemplate(tt.tmpls, tt.lang); got != tt.want {
				t.Errorf("pickTemplate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRenderComponent(t *testing.T) {
	env := testEnv(t)
	vm := Render(selectID(env, "component/feedback"), env)
	if vm.Kind != KindComponent || vm.Component == nil {
		t.Fatalf("Kind = %q", vm.Kind)
	}
	c := vm.Component
	if c.Title != "Feedback form" || vm.Title != "Feedback form" || c.TypeLabel != "Modal" {
		t.Errorf("component = %+v", c)
	}
	if c.CustomIDCount != 8 || len(c.CustomIDs) != MaxCustomIDs || c.MoreCustomIDs != 2 {
		t.Errorf("custom ids = %d shown %v more %d", c.CustomIDCount, c.CustomIDs, c.MoreCustomIDs)
	}
	if c.CustomIDs[5] != "fb:6" {
		t.Errorf("last shown id = %q", c.CustomIDs[5])
	}
	var keys []string
	for _, b := range c.Badges {
		keys = append(keys, b.Key)
	}
	if fmt.Sprint(keys) != "[type customIds file]" {
		t.Errorf("badges = %v", keys)
	}

	env.Locale = locale.New("hu-HU")
	sidebar := Render(selectID(env, "component/feedback"), env).Navigation
	last := sidebar.Sections[len(sidebar.Sections)-1]
	if last.Section != catalog.SectionComponents || last.Title != "Interakciók" || last.Count != 1 {
		t.Errorf("components section = %+v", last)
	}
}

func TestRenderGroupChips(t *testing.T) {
	env := testEnv(t)
	n := Render(nav.Home(), env).Navigation

	var labels []string
	for _, c := range n.Chips {
		labels = append(labels, fmt.Sprintf("%s:%d", c.Label, c.Count))
	}
	if fmt.Sprint(labels) != "[All:4 Admin:1 Community:1 Tickets:1 util:1]" {
		t.Errorf("chips = %v", labels)
	}
	if !n.Chips[0].Active || n.Chips[0].GroupID != "" {
		t.Errorf("all chip = %+v", n.Chips[0])
	}
}

func TestRenderGroupFilter(t *testing.T) {
	env := testEnv(t)
	env.Group = "community"
	n := Render(nav.Home(), env).Navigation

	if n.Group != "community" || n.Total != 8 || n.Visible != 5 {
		t.Errorf("Group %q Total %d Visible %d", n.Group, n.Total, n.Visible)
	}
	cmds := n.Sections[0]
	if len(cmds.Buckets) != 1 || cmds.Buckets[0].ID != "community" {
		t.Fatalf("command buckets = %+v", cmds.Buckets)
	}
	if len(n.Sections) != 4 {
		t.Errorf("other sections should be unaffected, got %d", len(n.Sections))
	}
	for _, c := range n.Chips {
		if c.Active != (c.GroupID == "community") {
			t.Errorf("chip %q active = %v", c.GroupID, c.Active)
		}
	}

	// The group filter and the query combine.
	env.Query = "poll"
	env.Group = "support"
	n = Render(nav.Home(), env).Navigation
	if n.Visible != 0 || len(n.Sections) != 0 {
		t.Errorf("Visible %d sections %+v", n.Visible, n.Sections)
	}
	if n.Chips[3].Count != 1 {
		t.Errorf("chip counts should ignore the query: %+v", n.Chips)
	}
}

func TestRenderLanguages(t *testing.T) {
	env := testEnv(t)
	env.Locale = locale.New("en-GB")
	langs := Render(nav.Home(), env).Languages
	if len(langs) != 2 {
		t.Fatalf("got %d languages", len(langs))
	}
	if langs[1].RegionName != "United Kingdom" || !langs[1].Active || langs[0].Active {
		t.Errorf("languages = %+v", langs)
	}
	if langs[0].RegionName != "Hungary" {
		t.Errorf("hu region = %q", langs[0].RegionName)
	}
}

func TestRenderError(t *testing.T) {
	env := Env{Locale: locale.New("hu-HU"), Theme: prefs.ThemeLight}
	vm := RenderError(errors.New("fetch catalog: 404"), env)
	if vm.Kind != KindError || vm.Error.Title != "Hiba" || vm.Error.Detail != "fetch catalog: 404" {
		t.Errorf("error vm = %+v", vm.Error)
	}
	if vm.Home != nil || vm.Command != nil || len(vm.Navigation.Sections) != 0 {
		t.Error("error view must not carry partial UI")
	}
	if vm.Theme != prefs.ThemeLight {
		t.Errorf("Theme = %q", vm.Theme)
	}
}

type upperMarkup struct{}

func (upperMarkup) HTML(md string) string { return strings.ToUpper(md) }
