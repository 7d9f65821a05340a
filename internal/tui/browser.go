package tui

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/ziadkadry99/botdocs/internal/app"
	"github.com/ziadkadry99/botdocs/internal/observability"
	"github.com/ziadkadry99/botdocs/internal/prefs"
	"github.com/ziadkadry99/botdocs/internal/render"
)

const maxNavWidth = 34

// Dispatcher receives the events the browser produces.
type Dispatcher interface {
	Dispatch(ev app.Event)
}

// History moves through the session's address history.
type History interface {
	Back() bool
	Forward() bool
}

// Browser is an app.Presenter drawing on a tcell screen. It keeps only
// presentation state: the sidebar cursor, body scroll and search input.
type Browser struct {
	screen tcell.Screen
	logger *zap.Logger

	mu         sync.Mutex
	vm         render.ViewModel
	hasView    bool
	nav        []Line
	entries    []int
	cursor     int
	scroll     int
	lastActive string
	searching  bool
	query      []rune
}

// NewBrowser returns a browser drawing on an initialized screen.
func NewBrowser(screen tcell.Screen, logger *zap.Logger) *Browser {
	return &Browser{screen: screen, logger: observability.OrNop(logger)}
}

// Present implements app.Presenter.
func (b *Browser) Present(vm render.ViewModel) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.vm = vm
	b.hasView = true
	b.nav = NavLines(vm.Navigation)
	b.entries = EntryIndexes(b.nav)
	if vm.ActiveID != b.lastActive {
		b.lastActive = vm.ActiveID
		b.scroll = 0
		for i, idx := range b.entries {
			if b.nav[idx].Kind == LineActive {
				b.cursor = i
			}
		}
	}
	b.clampCursor()
	b.draw()
}

// Run reads terminal events until the user quits or the screen is
// finalized.
func (b *Browser) Run(d Dispatcher, h History) error {
	b.redraw()
	for {
		ev := b.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if !b.handle(ev, d, h) {
			return nil
		}
	}
}

// handle applies one terminal event. It returns false to quit. Dispatch is
// always called without b.mu held since it presents synchronously.
func (b *Browser) handle(ev tcell.Event, d Dispatcher, h History) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		b.screen.Sync()
		b.redraw()
		return true
	case *tcell.EventKey:
		out, quit := b.key(ev, h)
		if quit {
			return false
		}
		if out != nil {
			d.Dispatch(*out)
		}
	}
	return true
}

// key maps a key press to an optional controller event.
func (b *Browser) key(ev *tcell.EventKey, h History) (*app.Event, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ev.Key() == tcell.KeyCtrlC {
		return nil, true
	}
	if b.searching {
		return b.searchKey(ev), false
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		return nil, true
	case tcell.KeyDown:
		b.move(1)
	case tcell.KeyUp:
		b.move(-1)
	case tcell.KeyPgDn:
		b.scroll += 10
		b.draw()
	case tcell.KeyPgUp:
		b.scroll = max(0, b.scroll-10)
		b.draw()
	case tcell.KeyEnter:
		if id := b.selectedID(); id != "" {
			return &app.Event{Kind: app.EventNavigate, ID: id}, false
		}
	case tcell.KeyHome:
		return &app.Event{Kind: app.EventHome}, false
	case tcell.KeyLeft:
		return b.history(h.Back), false
	case tcell.KeyRight:
		return b.history(h.Forward), false
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return nil, true
		case 'j':
			b.move(1)
		case 'k':
			b.move(-1)
		case '/':
			b.searching = true
			b.draw()
		case 'h':
			return &app.Event{Kind: app.EventHome}, false
		case 'b':
			return b.history(h.Back), false
		case 'f':
			return b.history(h.Forward), false
		case 'L':
			if loc := nextLocale(b.vm.Languages); loc != "" {
				return &app.Event{Kind: app.EventSetLocale, Locale: loc}, false
			}
		case 't':
			return &app.Event{Kind: app.EventSetTheme, Theme: nextThemeMode(b.vm.ThemeMode)}, false
		case 'g':
			if chips := b.vm.Navigation.Chips; len(chips) > 0 {
				return &app.Event{Kind: app.EventSearch, Query: string(b.query), Group: nextGroup(chips)}, false
			}
		}
	}
	return nil, false
}

func (b *Browser) searchKey(ev *tcell.EventKey) *app.Event {
	switch ev.Key() {
	case tcell.KeyEnter:
		b.searching = false
		b.draw()
		return nil
	case tcell.KeyEscape:
		b.searching = false
		b.query = nil
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(b.query) == 0 {
			return nil
		}
		b.query = b.query[:len(b.query)-1]
	case tcell.KeyRune:
		b.query = append(b.query, ev.Rune())
	default:
		return nil
	}
	return &app.Event{Kind: app.EventSearch, Query: string(b.query), Group: b.vm.Navigation.Group}
}

func (b *Browser) history(step func() bool) *app.Event {
	if !step() {
		return nil
	}
	return &app.Event{Kind: app.EventAddressChanged}
}

func (b *Browser) move(delta int) {
	b.cursor += delta
	b.clampCursor()
	b.draw()
}

func (b *Browser) clampCursor() {
	if b.cursor >= len(b.entries) {
		b.cursor = len(b.entries) - 1
	}
	if b.cursor < 0 {
		b.cursor = 0
	}
}

func (b *Browser) selectedID() string {
	if len(b.entries) == 0 {
		return ""
	}
	return b.nav[b.entries[b.cursor]].ID
}

func (b *Browser) redraw() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.draw()
}

// nextLocale returns the language after the active one, wrapping around.
func nextLocale(langs []render.LanguageOption) string {
	if len(langs) == 0 {
		return ""
	}
	for i, l := range langs {
		if l.Active {
			return langs[(i+1)%len(langs)].Locale
		}
	}
	return langs[0].Locale
}

// nextGroup returns the group id of the chip after the active one, wrapping
// around to the "all" chip.
func nextGroup(chips []render.GroupChip) string {
	for i, c := range chips {
		if c.Active {
			return chips[(i+1)%len(chips)].GroupID
		}
	}
	return chips[0].GroupID
}

func nextThemeMode(m prefs.ThemeMode) prefs.ThemeMode {
	switch m {
	case prefs.ModeSystem:
		return prefs.ModeDark
	case prefs.ModeDark:
		return prefs.ModeLight
	default:
		return prefs.ModeSystem
	}
}

type palette struct {
	base, title, heading, muted, entry, active, cursor, bar tcell.Style
}

func paletteFor(theme prefs.Theme) palette {
	fg, bg := tcell.ColorWhite, tcell.ColorBlack
	accent, muted := tcell.ColorYellow, tcell.ColorGray
	if theme == prefs.ThemeLight {
		fg, bg = tcell.ColorBlack, tcell.ColorWhite
		accent, muted = tcell.ColorNavy, tcell.ColorGray
	}
	base := tcell.StyleDefault.Foreground(fg).Background(bg)
	return palette{
		base:    base,
		title:   base.Bold(true),
		heading: base.Foreground(accent),
		muted:   base.Foreground(muted),
		entry:   base,
		active:  base.Foreground(accent).Bold(true),
		cursor:  base.Reverse(true),
		bar:     base.Reverse(true),
	}
}

func (p palette) style(k LineKind) tcell.Style {
	switch k {
	case LineTitle:
		return p.title
	case LineHeading:
		return p.heading
	case LineMuted:
		return p.muted
	case LineEntry:
		return p.entry
	case LineActive:
		return p.active
	}
	return p.base
}

// draw paints the whole screen. b.mu must be held.
func (b *Browser) draw() {
	w, h := b.screen.Size()
	if !b.hasView {
		b.screen.Clear()
		putString(b.screen, 1, h/2, w-1, "Loading...", tcell.StyleDefault)
		b.screen.Show()
		return
	}
	pal := paletteFor(b.vm.Theme)
	b.screen.SetStyle(pal.base)
	b.screen.Clear()
	if w <= 0 || h < 3 {
		b.screen.Show()
		return
	}

	header := fmt.Sprintf(" %s | %s | %s", b.vm.Site.ProductName, b.vm.Locale, b.vm.ThemeMode)
	fillRow(b.screen, 0, w, header, pal.bar)

	navWidth := 0
	if b.vm.Kind != render.KindError {
		navWidth = min(maxNavWidth, w/3)
	}
	rows := h - 2
	if navWidth > 0 {
		b.drawNav(1, navWidth, rows, pal)
	}

	x := navWidth
	if navWidth > 0 {
		x++
	}
	body := BodyLines(b.vm)
	var wrapped []Line
	for _, l := range body {
		for _, row := range Wrap(l.Text, w-x-1) {
			wrapped = append(wrapped, Line{Kind: l.Kind, Text: row})
		}
	}
	if b.scroll > len(wrapped)-1 {
		b.scroll = max(0, len(wrapped)-1)
	}
	for i := 0; i < rows && b.scroll+i < len(wrapped); i++ {
		l := wrapped[b.scroll+i]
		putString(b.screen, x+1, 1+i, w-x-1, l.Text, pal.style(l.Kind))
	}

	status := " j/k move  enter open  / search  g group  h home  b/f back/forward  L locale  t theme  q quit"
	if b.searching {
		status = " /" + string(b.query)
	} else if q := b.vm.Navigation.Query; q != "" {
		status = fmt.Sprintf(" /%s  %d/%d", q, b.vm.Navigation.Visible, b.vm.Navigation.Total)
	}
	fillRow(b.screen, h-1, w, status, pal.bar)
	b.screen.Show()
}

func (b *Browser) drawNav(top, width, rows int, pal palette) {
	start := 0
	if len(b.entries) > 0 {
		if line := b.entries[b.cursor]; line >= rows {
			start = line - rows + 1
		}
	}
	selected := -1
	if len(b.entries) > 0 {
		selected = b.entries[b.cursor]
	}
	for i := 0; i < rows && start+i < len(b.nav); i++ {
		l := b.nav[start+i]
		style := pal.style(l.Kind)
		if start+i == selected {
			style = pal.cursor
		}
		putString(b.screen, 0, top+i, width, l.Text, style)
	}
	for y := top; y < top+rows; y++ {
		b.screen.SetContent(width, y, tcell.RuneVLine, nil, pal.muted)
	}
}

func putString(s tcell.Screen, x, y, width int, text string, style tcell.Style) {
	col := 0
	for _, r := range text {
		if col >= width {
			return
		}
		s.SetContent(x+col, y, r, nil, style)
		col++
	}
}

func fillRow(s tcell.Screen, y, width int, text string, style tcell.Style) {
	for x := 0; x < width; x++ {
		s.SetContent(x, y, ' ', nil, style)
	}
	putString(s, 0, y, width, text, style)
}
