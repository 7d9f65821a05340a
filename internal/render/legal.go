package render

import (
	"bytes"
	"text/template"

	"github.com/ziadkadry99/botdocs/internal/locale"
	"github.com/ziadkadry99/botdocs/internal/nav"
)

// legalData is exposed to the legal templates.
type legalData struct {
	BotName    string
	SupportURL string
	RepoURL    string
}

// legalTemplates holds one Markdown template per page and language. Pages
// follow the same fallback chain as interface text.
var legalTemplates = map[nav.LegalKind]map[string]*template.Template{
	nav.LegalTerms: {
		"en": template.Must(template.New("terms.en").Parse(`## Terms of Service

By adding **{{.BotName}}** to a server you agree to use it in line with the
platform's own terms and community guidelines.

- The bot is provided as is, without any warranty.
- Features may change or be removed at any time.
- Abuse of the bot may result in the server being blocked.
{{if .SupportURL}}
Questions can be raised on the [support server]({{.SupportURL}}).
{{end}}`)),
		"hu": template.Must(template.New("terms.hu").Parse(`## Felhasználási feltételek

A **{{.BotName}}** szerverhez adásával elfogadod, hogy a platform saját
feltételeivel és közösségi irányelveivel összhangban használod.

- A bot jelenlegi állapotában, mindenféle garancia nélkül érhető el.
- A funkciók bármikor változhatnak vagy megszűnhetnek.
- A bot rendeltetésellenes használata a szerver kitiltását vonhatja maga után.
{{if .SupportURL}}
Kérdés esetén keress minket a [support szerveren]({{.SupportURL}}).
{{end}}`)),
	},
	nav.LegalPrivacy: {
		"en": template.Must(template.New("privacy.en").Parse(`## Privacy Policy

**{{.BotName}}** stores only the data it needs to work: server, channel and
role identifiers, and the settings configured through its commands.

- Message content is processed only for the features that need it.
- Stored data is removed when the bot leaves the server.
{{if .RepoURL}}
The source code is public: [{{.RepoURL}}]({{.RepoURL}}).
{{end}}{{if .SupportURL}}
Data removal can be requested on the [support server]({{.SupportURL}}).
{{end}}`)),
		"hu": template.Must(template.New("privacy.hu").Parse(`## Adatkezelési tájékoztató

A **{{.BotName}}** csak a működéséhez szükséges adatokat tárolja: szerver-,
csatorna- és rangazonosítókat, valamint a parancsokkal megadott beállításokat.

- Az üzenetek tartalmát csak az azt igénylő funkciók dolgozzák fel.
- A tárolt adatok törlődnek, amikor a bot elhagyja a szervert.
{{if .RepoURL}}
A forráskód nyilvános: [{{.RepoURL}}]({{.RepoURL}}).
{{end}}{{if .SupportURL}}
Adattörlést a [support szerveren]({{.SupportURL}}) kérhetsz.
{{end}}`)),
	},
}

func (e Env) legalView(kind nav.LegalKind) *LegalView {
	v := &LegalView{Kind: string(kind)}
	switch kind {
	case nav.LegalPrivacy:
		v.Title = e.text(msgLegalPrivacy)
	default:
		kind = nav.LegalTerms
		v.Kind = string(kind)
		v.Title = e.text(msgLegalTerms)
	}

	tmpl := pickTemplate(legalTemplates[kind], e.Locale.Lang())
	var buf bytes.Buffer
	data := legalData{
		BotName:    e.ProductName(),
		SupportURL: e.Site.SupportURL,
		RepoURL:    e.Site.RepoURL,
	}
	if tmpl == nil {
		buf.WriteString("## " + v.Title + "\n")
	} else if err := tmpl.Execute(&buf, data); err != nil {
		buf.Reset()
		buf.WriteString("## " + v.Title + "\n")
	}
	v.Markdown = buf.String()
	if e.Markup != nil {
		v.HTML = e.Markup.HTML(v.Markdown)
	}
	return v
}

// pickTemplate returns the template for lang, then English, then Hungarian.
func pickTemplate(tmpls map[string]*template.Template, lang string) *template.Template {
	for _, l := range append([]string{lang}, locale.FallbackChain()...) {
		if t, ok := tmpls[l]; ok {
			return t
		}
	}
	return nil
}
