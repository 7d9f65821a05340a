package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ziadkadry99/botdocs/internal/locale"
	"github.com/ziadkadry99/botdocs/internal/nav"
	"github.com/ziadkadry99/botdocs/internal/prefs"
	"github.com/ziadkadry99/botdocs/internal/render"
)

// RegisterRoutes mounts the view API on r.
func RegisterRoutes(r chi.Router, s *Server) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/view", s.handleView)
		r.Get("/languages", s.handleLanguages)
		r.Get("/prefs", s.handleGetPrefs)
		r.Put("/prefs", s.handleSetPrefs)
	})
}

// handleView renders the view addressed by ?fragment=. The locale and
// theme query parameters override the stored preferences for this request
// only; q and group filter the navigation.
func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	mode := s.prefs.Theme()
	if v := q.Get("theme"); v != "" {
		m, ok := prefs.ParseThemeMode(v)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid theme: "+v)
			return
		}
		mode = m
	}

	env := s.env(q.Get("locale"), mode, q.Get("q"))
	env.Group = q.Get("group")
	sel := nav.Resolve(s.content.Catalog, nav.DecodeFragment(q.Get("fragment")))
	writeJSON(w, http.StatusOK, render.Render(sel, env))
}

func (s *Server) handleLanguages(w http.ResponseWriter, r *http.Request) {
	env := s.env(r.URL.Query().Get("locale"), s.prefs.Theme(), "")
	options := env.LanguageOptions()
	if options == nil {
		options = []render.LanguageOption{}
	}
	writeJSON(w, http.StatusOK, options)
}

type prefsPayload struct {
	Theme          prefs.ThemeMode `json:"theme"`
	Locale         string          `json:"locale"`
	EffectiveTheme prefs.Theme     `json:"effectiveTheme,omitempty"`
}

func (s *Server) handleGetPrefs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.currentPrefs())
}

// handleSetPrefs stores the fields present in the body. Unknown theme
// values are rejected; omitted fields are left alone.
func (s *Server) handleSetPrefs(w http.ResponseWriter, r *http.Request) {
	var req prefsPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Theme != "" {
		mode, ok := prefs.ParseThemeMode(string(req.Theme))
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid theme: "+string(req.Theme))
			return
		}
		s.prefs.SetTheme(mode)
	}
	if strings.TrimSpace(req.Locale) != "" {
		s.prefs.SetLocale(req.Locale)
	}
	s.logger.Info("preferences updated", zap.String("theme", string(req.Theme)), zap.String("locale", req.Locale))
	writeJSON(w, http.StatusOK, s.currentPrefs())
}

func (s *Server) currentPrefs() prefsPayload {
	return prefsPayload{
		Theme:          s.prefs.Theme(),
		Locale:         s.prefs.Locale(),
		EffectiveTheme: s.prefs.EffectiveTheme(),
	}
}

// env builds a render environment for one request. An empty loc falls
// back to the stored locale.
func (s *Server) env(loc string, mode prefs.ThemeMode, query string) render.Env {
	if strings.TrimSpace(loc) == "" {
		loc = s.prefs.Locale()
	}
	theme := s.prefs.SystemTheme()
	switch mode {
	case prefs.ModeDark:
		theme = prefs.ThemeDark
	case prefs.ModeLight:
		theme = prefs.ThemeLight
	}
	return render.Env{
		Catalog:      s.content.Catalog,
		Groups:       s.content.Groups,
		Languages:    s.content.Languages,
		ListenerDocs: s.content.ListenerDocs,
		Site:         s.site,
		Locale:       locale.New(loc),
		Theme:        theme,
		ThemeMode:    mode,
		Query:        query,
		Markup:       s.markup,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
