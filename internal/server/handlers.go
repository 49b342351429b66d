package server

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/goliatone/go-taskform/pkg/orchestrator"
	"github.com/goliatone/go-taskform/pkg/render"
	"github.com/goliatone/go-taskform/pkg/selection"
)

// Query parameters that configure the render rather than the selections.
const (
	paramFormat   = "format"
	paramLocale   = "locale"
	paramTheme    = "theme"
	paramVariant  = "variant"
	paramValidate = "validate"
)

type cachedRender struct {
	body        []byte
	contentType string
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleRenderers(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string][]string{"renderers": s.orch.Registry().List()})
}

// handleGetForm renders the form for the default selections overridden by
// query parameters named after state fields.
func (s *Server) handleGetForm(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	cacheKey := "GET?" + query.Encode() + "|" + acceptLanguage(r.Header.Get("Accept-Language"))
	if s.cache != nil {
		if cached, ok := s.cache.Get(cacheKey); ok {
			entry := cached.(cachedRender)
			if renderer, err := s.orch.Renderer(query.Get(paramFormat)); err == nil {
				s.metrics.hit(renderer.Name())
			}
			w.Header().Set("X-Cache", "HIT")
			writeBody(w, entry.contentType, entry.body)
			return
		}
	}

	state := selection.Default()
	for key, values := range query {
		if isRenderParam(key) || len(values) == 0 {
			continue
		}
		if key == selection.FieldLocalParams {
			writeError(w, r, http.StatusBadRequest, CodeInvalidParameter, "localParams can only be sent in a POST body")
			return
		}
		if err := state.Set(key, values[len(values)-1]); err != nil {
			writeError(w, r, http.StatusBadRequest, CodeInvalidParameter, err.Error())
			return
		}
	}

	validate, _ := strconv.ParseBool(query.Get(paramValidate))
	req := s.request(r, query, state, validate)
	body, contentType, ok := s.render(w, r, req)
	if !ok {
		return
	}
	if s.cache != nil {
		s.cache.SetDefault(cacheKey, cachedRender{body: body, contentType: contentType})
		w.Header().Set("X-Cache", "MISS")
	}
	writeBody(w, contentType, body)
}

// handlePostForm renders the form for a full selection state sent as JSON
// and attaches validation messages for its values. Nothing is stored.
func (s *Server) handlePostForm(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Server.MaxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxBodyBytes)
	}

	state := selection.Default()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&state); err != nil {
		writeError(w, r, http.StatusBadRequest, CodeBadRequest, "decode selection state: "+err.Error())
		return
	}

	req := s.request(r, r.URL.Query(), state, true)
	body, contentType, ok := s.render(w, r, req)
	if !ok {
		return
	}
	writeBody(w, contentType, body)
}

func (s *Server) request(r *http.Request, query url.Values, state selection.State, validate bool) orchestrator.Request {
	locale := query.Get(paramLocale)
	if locale == "" {
		locale = acceptLanguage(r.Header.Get("Accept-Language"))
	}
	return orchestrator.Request{
		State:        state,
		Renderer:     query.Get(paramFormat),
		Locale:       locale,
		Validate:     validate,
		ThemeName:    query.Get(paramTheme),
		ThemeVariant: query.Get(paramVariant),
	}
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, req orchestrator.Request) ([]byte, string, bool) {
	renderer, err := s.orch.Renderer(req.Renderer)
	if err != nil {
		s.fail(w, r, err)
		return nil, "", false
	}
	req.Renderer = renderer.Name()

	start := time.Now()
	body, err := s.orch.Generate(r.Context(), req)
	if err != nil {
		s.fail(w, r, err)
		return nil, "", false
	}
	s.metrics.observe(renderer.Name(), time.Since(start).Seconds())
	return body, renderer.ContentType(), true
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, render.ErrRendererNotFound):
		writeError(w, r, http.StatusBadRequest, CodeBadRequest, err.Error())
	case errors.Is(err, render.ErrThemeNotFound):
		writeError(w, r, http.StatusBadRequest, CodeInvalidParameter, err.Error())
	case errors.Is(err, context.Canceled):
		s.logger.Debug("render cancelled", zap.String("request_id", RequestIDFrom(r.Context())))
	default:
		s.logger.Error("render failed", zap.Error(err), zap.String("request_id", RequestIDFrom(r.Context())))
		writeError(w, r, http.StatusInternalServerError, CodeInternal, "render failed")
	}
}

func writeBody(w http.ResponseWriter, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func isRenderParam(key string) bool {
	switch key {
	case paramFormat, paramLocale, paramTheme, paramVariant, paramValidate:
		return true
	default:
		return false
	}
}

// acceptLanguage returns the first language tag of an Accept-Language header.
func acceptLanguage(header string) string {
	first, _, _ := strings.Cut(header, ",")
	tag, _, _ := strings.Cut(first, ";")
	return strings.TrimSpace(tag)
}
