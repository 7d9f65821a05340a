// Package app owns a viewing session: it loads content, serializes events
// and hands one freshly rendered view model to the presenter per event.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ziadkadry99/botdocs/internal/locale"
	"github.com/ziadkadry99/botdocs/internal/nav"
	"github.com/ziadkadry99/botdocs/internal/observability"
	"github.com/ziadkadry99/botdocs/internal/prefs"
	"github.com/ziadkadry99/botdocs/internal/render"
	"github.com/ziadkadry99/botdocs/internal/resources"
)

var (
	// ErrNotReady is returned when a view is requested before content has
	// loaded.
	ErrNotReady = errors.New("controller not ready")
	// ErrAlreadyStarted is returned by Load and Start after the first call.
	ErrAlreadyStarted = errors.New("controller already started")
)

// Phase is the load lifecycle.
type Phase string

const (
	PhaseUninitialized Phase = "uninitialized"
	PhaseLoading       Phase = "loading"
	PhaseReady         Phase = "ready"
	PhaseError         Phase = "error"
)

// Presenter applies a view model to a screen. Present is called with the
// controller's lock held and must not call back into the controller.
type Presenter interface {
	Present(vm render.ViewModel)
}

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(vm render.ViewModel)

// Present implements Presenter.
func (f PresenterFunc) Present(vm render.ViewModel) { f(vm) }

// State is a snapshot of the session.
type State struct {
	Phase     Phase
	Content   *Content
	Locale    string
	ThemeMode prefs.ThemeMode
	Theme     prefs.Theme
	ActiveID  string
	Query     string
	Group     string
	Err       error
}

// Options configures a Controller.
type Options struct {
	Loader    resources.Loader
	Resources ResourceNames
	Timeout   time.Duration
	Prefs     *prefs.Store
	Address   nav.Address
	Presenter Presenter
	Site      render.Site
	Markup    render.Markup
	Logger    *zap.Logger
}

// Controller is a single viewing session.
type Controller struct {
	opts   Options
	logger *zap.Logger
	store  *prefs.Store

	mu          sync.Mutex
	phase       Phase
	content     *Content
	router      *nav.Router
	query       string
	group       string
	err         error
	pending     []Event
	unsubscribe func()
}

// New returns an uninitialized controller. A nil Prefs store is replaced by
// an in-memory one and a zero Timeout by DefaultLoadTimeout.
func New(opts Options) *Controller {
	logger := observability.OrNop(opts.Logger)
	if opts.Prefs == nil {
		opts.Prefs = prefs.NewStore(prefs.NewMemoryBackend(), locale.DefaultLocale, logger)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultLoadTimeout
	}
	if opts.Resources == (ResourceNames{}) {
		opts.Resources = DefaultResourceNames()
	}
	c := &Controller{
		opts:   opts,
		logger: logger,
		store:  opts.Prefs,
		phase:  PhaseUninitialized,
	}
	c.unsubscribe = c.store.SubscribeSystemTheme(func(dark bool) {
		c.Dispatch(Event{Kind: EventSystemTheme, Dark: dark})
	})
	return c
}

// Load fetches content through the configured loader. It moves the
// controller to ready, or to error when loading fails; in both cases the
// presenter receives one view model. Events dispatched meanwhile are
// replayed in arrival order once ready.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	if c.phase != PhaseUninitialized {
		c.mu.Unlock()
		return ErrAlreadyStarted
	}
	c.phase = PhaseLoading
	c.mu.Unlock()

	if c.opts.Loader == nil {
		err := errors.New("no resource loader configured")
		c.fail(err)
		return err
	}

	start := time.Now()
	content, err := LoadContent(ctx, c.opts.Loader, c.opts.Resources, c.opts.Timeout)
	if err != nil {
		c.fail(err)
		return err
	}
	c.logger.Info("content loaded",
		zap.Int("commands", len(content.Catalog.Commands)),
		zap.Int("listeners", len(content.Catalog.Listeners)),
		zap.Int("audits", len(content.Catalog.Audits)),
		zap.Int("components", len(content.Catalog.Components)),
		zap.Duration("took", time.Since(start)),
	)
	c.ready(content)
	return nil
}

// Start makes the controller ready with content that was loaded elsewhere.
func (c *Controller) Start(content *Content) error {
	if content == nil || content.Catalog == nil {
		return fmt.Errorf("starting controller: %w", ErrNotReady)
	}
	c.mu.Lock()
	if c.phase != PhaseUninitialized {
		c.mu.Unlock()
		return ErrAlreadyStarted
	}
	c.phase = PhaseLoading
	c.mu.Unlock()

	c.ready(content)
	return nil
}

func (c *Controller) ready(content *Content) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.content = content
	c.router = nav.NewRouter(content.Catalog, c.opts.Address)
	c.phase = PhaseReady
	c.present(c.router.SyncFromAddress())

	pending := c.pending
	c.pending = nil
	for _, ev := range pending {
		c.handle(ev)
	}
}

func (c *Controller) fail(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.Error("loading content", zap.Error(err))
	c.phase = PhaseError
	c.err = err
	if dropped := len(c.pending); dropped > 0 {
		c.logger.Debug("dropping queued events", zap.Int("count", dropped))
	}
	c.pending = nil
	if c.opts.Presenter != nil {
		c.opts.Presenter.Present(render.RenderError(err, c.env()))
	}
}

// Dispatch handles ev. Before the controller is ready events are queued;
// after a failed load they are dropped.
func (c *Controller) Dispatch(ev Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.phase {
	case PhaseUninitialized, PhaseLoading:
		c.pending = append(c.pending, ev)
	case PhaseError:
		c.logger.Debug("dropping event after failed load", zap.String("kind", string(ev.Kind)))
	case PhaseReady:
		c.handle(ev)
	}
}

// NotifySystemTheme forwards the OS light/dark signal to the preference
// store. Subscribed controllers re-render while the theme mode is system.
func (c *Controller) NotifySystemTheme(dark bool) {
	c.store.NotifySystemTheme(dark)
}

// handle applies ev and presents the result. c.mu must be held.
func (c *Controller) handle(ev Event) {
	var sel nav.Selection
	switch ev.Kind {
	case EventNavigate:
		sel = c.router.Select(ev.ID, nav.Options{UpdateAddress: true})
	case EventHome:
		sel = c.router.Select("", nav.Options{UpdateAddress: true})
	case EventAddressChanged:
		sel = c.router.SyncFromAddress()
	case EventSetLocale:
		c.store.SetLocale(ev.Locale)
		sel = c.router.Current()
	case EventSetTheme:
		c.store.SetTheme(ev.Theme)
		sel = c.router.Current()
	case EventSearch:
		c.query = ev.Query
		c.group = ev.Group
		sel = c.router.Current()
	case EventSystemTheme, EventRefresh:
		sel = c.router.Current()
	default:
		c.logger.Warn("ignoring unknown event", zap.String("kind", string(ev.Kind)))
		return
	}
	c.present(sel)
}

func (c *Controller) present(sel nav.Selection) {
	if c.opts.Presenter == nil {
		return
	}
	c.opts.Presenter.Present(render.Render(sel, c.env()))
}

// env builds the render environment. c.mu must be held.
func (c *Controller) env() render.Env {
	env := render.Env{
		Site:      c.opts.Site,
		Locale:    locale.New(c.store.Locale()),
		Theme:     c.store.EffectiveTheme(),
		ThemeMode: c.store.Theme(),
		Query:     c.query,
		Group:     c.group,
		Markup:    c.opts.Markup,
	}
	if c.content != nil {
		env.Catalog = c.content.Catalog
		env.Groups = c.content.Groups
		env.Languages = c.content.Languages
		env.ListenerDocs = c.content.ListenerDocs
	}
	return env
}

// View renders the current selection without changing any state. After a
// failed load it returns the error view together with the load error.
func (c *Controller) View() (render.ViewModel, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.phase {
	case PhaseReady:
		return render.Render(c.router.Current(), c.env()), nil
	case PhaseError:
		return render.RenderError(c.err, c.env()), c.err
	}
	return render.ViewModel{}, ErrNotReady
}

// State returns a snapshot of the session.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := State{
		Phase:     c.phase,
		Content:   c.content,
		Locale:    c.store.Locale(),
		ThemeMode: c.store.Theme(),
		Theme:     c.store.EffectiveTheme(),
		Query:     c.query,
		Group:     c.group,
		Err:       c.err,
	}
	if c.router != nil {
		s.ActiveID = c.router.ActiveID()
	}
	return s
}

// Prefs returns the preference store the controller reads.
func (c *Controller) Prefs() *prefs.Store { return c.store }

// Close removes the controller's system theme subscription.
func (c *Controller) Close() {
	c.unsubscribe()
}
