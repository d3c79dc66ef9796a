// Copyright 2026 The Triage Authors
// SPDX-License-Identifier: MIT

// Package web serves the dashboard over HTTP: the interactive HTML page at
// "/" and a JSON API under "/api/" with one endpoint per dashboard action.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/davetashner/triage/internal/dashboard"
	"github.com/davetashner/triage/internal/i18n"
	"github.com/davetashner/triage/internal/issue"
	"github.com/davetashner/triage/internal/output"
	"github.com/davetashner/triage/internal/pipeline"
	"github.com/davetashner/triage/internal/report"
	"github.com/davetashner/triage/internal/severity"
	"github.com/davetashner/triage/internal/source"
	"github.com/davetashner/triage/internal/view"
)

// maxBody caps request bodies, including uploaded reports.
const maxBody = source.MaxReportSize

// Options configures a Server.
type Options struct {
	// Demo loads the demo report. When nil the demo endpoint returns 404.
	Demo dashboard.Loader
	// Notices, when set, is reported by /api/view.
	Notices *NoticeBoard
}

// Server exposes one dashboard over HTTP.
type Server struct {
	dash *dashboard.Dashboard
	opts Options
	mux  *http.ServeMux
}

// New returns a server for d.
func New(d *dashboard.Dashboard, opts Options) *Server {
	s := &Server{dash: d, opts: opts, mux: http.NewServeMux()}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.mux.HandleFunc("GET /api/view", s.handleView)
	s.mux.HandleFunc("GET /api/export", s.handleExport)
	s.mux.HandleFunc("POST /api/import", s.handleImport)
	s.mux.HandleFunc("POST /api/demo", s.handleDemo)
	s.mux.HandleFunc("POST /api/toggle", s.handleToggle)
	s.mux.HandleFunc("POST /api/done", s.handleDone)
	s.mux.HandleFunc("POST /api/filter", s.handleFilter)
	s.mux.HandleFunc("POST /api/file", s.handleFile)
	s.mux.HandleFunc("POST /api/sort", s.handleSort)
	s.mux.HandleFunc("POST /api/reset", s.handleReset)
	s.mux.HandleFunc("POST /api/theme", s.handleTheme)
	s.mux.HandleFunc("POST /api/lang", s.handleLang)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	s.mux.ServeHTTP(w, r)
	slog.Debug("http request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully. ready, when non-nil, receives the bound address once the
// listener is open.
func (s *Server) ListenAndServe(ctx context.Context, addr string, ready func(net.Addr)) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if ready != nil {
		ready(ln.Addr())
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	r := &output.HTMLRenderer{Interactive: true}
	if err := r.Render(s.dash.Snapshot(), w); err != nil {
		slog.Error("render dashboard", "error", err)
	}
}

// viewResponse is the body of /api/view and of every successful action.
type viewResponse struct {
	output.JSONEnvelope
	Theme  dashboard.Theme `json:"theme"`
	Lang   i18n.Lang       `json:"lang"`
	Notice string          `json:"notice,omitempty"`
}

func (s *Server) viewBody() viewResponse {
	snap := s.dash.Snapshot()
	resp := viewResponse{
		JSONEnvelope: output.NewJSONRenderer().Envelope(snap),
		Theme:        snap.Theme,
		Lang:         snap.Lang,
	}
	if s.opts.Notices != nil {
		resp.Notice = s.opts.Notices.Last()
	}
	return resp
}

func (s *Server) handleView(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.viewBody())
}

func (s *Server) handleExport(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="triage-state.json"`)
	if err := s.dash.ExportCompletion(w); err != nil {
		slog.Error("export completion", "error", err)
	}
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBody))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, err)
		return
	}
	name := r.URL.Query().Get("name")
	if name == "" {
		name = "upload"
	}
	s.ingestResult(w, s.dash.Ingest(data, name))
}

func (s *Server) handleDemo(w http.ResponseWriter, r *http.Request) {
	if s.opts.Demo == nil {
		writeError(w, http.StatusNotFound, errors.New(i18n.T(s.dash.Lang(), i18n.MsgDemoMissing)))
		return
	}
	s.ingestResult(w, s.dash.Import(r.Context(), s.opts.Demo))
}

func (s *Server) ingestResult(w http.ResponseWriter, err error) {
	var pe *report.ParseError
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, s.viewBody())
	case errors.Is(err, report.ErrEmptyInput):
		writeError(w, http.StatusUnprocessableEntity, errors.New(i18n.T(s.dash.Lang(), i18n.MsgEmpty)))
	case errors.As(err, &pe):
		writeError(w, http.StatusBadRequest, errors.New(i18n.T(s.dash.Lang(), i18n.MsgParseError, pe)))
	case errors.Is(err, dashboard.ErrSuperseded):
		writeError(w, http.StatusConflict, err)
	case source.IsNetwork(err):
		writeError(w, http.StatusBadGateway, errors.New(i18n.T(s.dash.Lang(), i18n.MsgNetworkError, err)))
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}

type idRequest struct {
	ID   string `json:"id"`
	Done *bool  `json:"done,omitempty"`
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	var req idRequest
	if !decode(w, r, &req) {
		return
	}
	id, ok := s.resolve(w, req.ID)
	if !ok {
		return
	}
	s.dash.Toggle(id)
	writeJSON(w, http.StatusOK, s.viewBody())
}

func (s *Server) handleDone(w http.ResponseWriter, r *http.Request) {
	var req idRequest
	if !decode(w, r, &req) {
		return
	}
	id, ok := s.resolve(w, req.ID)
	if !ok {
		return
	}
	done := true
	if req.Done != nil {
		done = *req.Done
	}
	s.dash.SetDone(id, done)
	writeJSON(w, http.StatusOK, s.viewBody())
}

// filterRequest changes only the fields that are present.
type filterRequest struct {
	Severities     *[]string `json:"severities,omitempty"`
	Query          *string   `json:"query,omitempty"`
	OnlyIncomplete *bool     `json:"only_incomplete,omitempty"`
}

func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	var req filterRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Severities != nil {
		set := severity.NewSet()
		for _, name := range *req.Severities {
			l, ok := severity.Parse(name)
			if !ok {
				writeError(w, http.StatusBadRequest, fmt.Errorf("unknown severity %q", name))
				return
			}
			set[l] = true
		}
		for _, l := range severity.All() {
			if !set[l] {
				set[l] = false
			}
		}
		s.dash.SetSeverities(set)
	}
	if req.Query != nil {
		s.dash.SetQuery(*req.Query)
	}
	if req.OnlyIncomplete != nil {
		s.dash.SetOnlyIncomplete(*req.OnlyIncomplete)
	}
	writeJSON(w, http.StatusOK, s.viewBody())
}

func (s *Server) handleFile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		File string `json:"file"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.File == "" {
		s.dash.ClearActiveFile()
	} else {
		s.dash.SetActiveFile(req.File)
	}
	writeJSON(w, http.StatusOK, s.viewBody())
}

func (s *Server) handleSort(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Key string `json:"key"`
		Dir string `json:"dir,omitempty"`
	}
	if !decode(w, r, &req) {
		return
	}
	k, err := view.ParseKey(req.Key)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Dir == "" {
		s.dash.SortBy(k)
	} else {
		s.dash.SetSort(view.Sort{Key: k, Desc: view.ParseDir(req.Dir)})
	}
	writeJSON(w, http.StatusOK, s.viewBody())
}

func (s *Server) handleReset(w http.ResponseWriter, _ *http.Request) {
	s.dash.Reset()
	writeJSON(w, http.StatusOK, s.viewBody())
}

func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Theme string `json:"theme,omitempty"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.Theme == "" {
		s.dash.ToggleTheme()
	} else {
		t, err := dashboard.ParseTheme(req.Theme)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		s.dash.SetTheme(t)
	}
	writeJSON(w, http.StatusOK, s.viewBody())
}

func (s *Server) handleLang(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Lang string `json:"lang,omitempty"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.Lang == "" {
		s.dash.ToggleLanguage()
	} else {
		l, err := i18n.Parse(req.Lang)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		s.dash.SetLanguage(l)
	}
	writeJSON(w, http.StatusOK, s.viewBody())
}

func (s *Server) resolve(w http.ResponseWriter, ref string) (issue.ID, bool) {
	id, err := s.dash.Resolve(ref)
	switch {
	case err == nil:
		return id, true
	case errors.Is(err, dashboard.ErrAmbiguous):
		writeError(w, http.StatusConflict, err)
	case errors.Is(err, dashboard.ErrNoDataset):
		writeError(w, http.StatusConflict, err)
	default:
		writeError(w, http.StatusNotFound, err)
	}
	return "", false
}

// decode reads an optional JSON body into v. An empty body leaves v as is.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// NoticeBoard is a dashboard.Observer that keeps the latest notice.
type NoticeBoard struct {
	mu   sync.Mutex
	last string
}

var _ dashboard.Observer = (*NoticeBoard)(nil)

// Loaded implements dashboard.Observer.
func (n *NoticeBoard) Loaded(*pipeline.Dataset) {}

// Notice records msg.
func (n *NoticeBoard) Notice(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.last = msg
}

// Last returns the most recent notice.
func (n *NoticeBoard) Last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.last
}
