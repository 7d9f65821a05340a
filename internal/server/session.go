package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ziadkadry99/botdocs/internal/app"
	"github.com/ziadkadry99/botdocs/internal/nav"
	"github.com/ziadkadry99/botdocs/internal/render"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Message kinds handled by the session itself rather than the controller.
const (
	kindBack    app.EventKind = "back"
	kindForward app.EventKind = "forward"
)

// sessionResponse is the outgoing websocket message format.
type sessionResponse struct {
	Type      string            `json:"type"` // "view" or "error"
	SessionID string            `json:"session_id"`
	View      *render.ViewModel `json:"view,omitempty"`
	Error     string            `json:"error,omitempty"`
}

// session is one websocket client with its own controller and address.
type session struct {
	id      string
	conn    *websocket.Conn
	address *nav.MemoryAddress
	ctrl    *app.Controller
	logger  *zap.Logger

	writeMu sync.Mutex
}

// Present implements app.Presenter.
func (s *session) Present(vm render.ViewModel) {
	s.send(sessionResponse{Type: "view", SessionID: s.id, View: &vm})
}

func (s *session) sendError(msg string) {
	s.send(sessionResponse{Type: "error", SessionID: s.id, Error: msg})
}

func (s *session) send(resp sessionResponse) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := s.conn.WriteJSON(resp); err != nil {
		s.logger.Debug("websocket write", zap.Error(err))
	}
}

// handleSession upgrades the connection and runs one viewing session. The
// initial view follows ?fragment=.
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade", zap.Error(err))
		return
	}
	defer conn.Close()

	sess := &session{
		id:      uuid.NewString(),
		conn:    conn,
		address: nav.NewMemoryAddress(r.URL.Query().Get("fragment")),
	}
	sess.logger = s.logger.With(zap.String("session_id", sess.id))
	sess.ctrl = app.New(app.Options{
		Prefs:     s.prefs,
		Address:   sess.address,
		Presenter: sess,
		Site:      s.site,
		Markup:    s.markup,
		Logger:    sess.logger,
	})
	defer sess.ctrl.Close()

	s.sessions.add(sess)
	defer s.sessions.remove(sess.id)
	sess.logger.Info("session opened")

	if err := sess.ctrl.Start(s.content); err != nil {
		sess.sendError("starting session: " + err.Error())
		return
	}

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				sess.logger.Warn("websocket read", zap.Error(err))
			}
			sess.logger.Info("session closed")
			return
		}

		// Incoming messages are controller events plus back/forward through
		// the session's address history.
		var ev app.Event
		if err := json.Unmarshal(msg, &ev); err != nil {
			sess.sendError("invalid message format")
			continue
		}
		sess.handle(ev)
	}
}

func (s *session) handle(ev app.Event) {
	switch ev.Kind {
	case kindBack:
		if s.address.Back() {
			s.ctrl.Dispatch(app.Event{Kind: app.EventAddressChanged})
		}
	case kindForward:
		if s.address.Forward() {
			s.ctrl.Dispatch(app.Event{Kind: app.EventAddressChanged})
		}
	case app.EventSystemTheme:
		s.ctrl.NotifySystemTheme(ev.Dark)
	case app.EventNavigate, app.EventHome, app.EventAddressChanged,
		app.EventSetLocale, app.EventSetTheme, app.EventSearch, app.EventRefresh:
		s.ctrl.Dispatch(ev)
	default:
		s.sendError("unknown message kind: " + string(ev.Kind))
	}
}

// sessionRegistry tracks open sessions so shutdown can close them.
type sessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*session
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{sessions: make(map[string]*session)}
}

func (r *sessionRegistry) add(s *session) {
	r.mu.Lock()
	r.sessions[s.id] = s
	r.mu.Unlock()
}

func (r *sessionRegistry) remove(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

func (r *sessionRegistry) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *sessionRegistry) closeAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sessions {
		s.writeMu.Lock()
		s.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(writeWait))
		s.writeMu.Unlock()
		s.conn.Close()
	}
}
