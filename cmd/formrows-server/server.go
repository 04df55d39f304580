package main

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	formrows "github.com/goliatone/go-formrows"
	"github.com/goliatone/go-formrows/components/places"
	"github.com/goliatone/go-formrows/pkg/orchestrator"
	"github.com/goliatone/go-formrows/pkg/record"
	"github.com/goliatone/go-formrows/pkg/render"
	"github.com/goliatone/go-formrows/pkg/renderers/vanilla"
)

const (
	formPath     = "/form"
	versionField = "_version"
	csrfField    = "_csrf"
)

type formServer struct {
	cfg       Config
	generator *orchestrator.Orchestrator
	store     *datasetStore
	logger    *slog.Logger
}

func newFormServer(cfg Config, store *datasetStore, logger *slog.Logger) (*formServer, http.Handler, error) {
	component := places.New(places.WithCountries(cfg.Countries...))
	widget, err := component.Widget()
	if err != nil {
		return nil, nil, fmt.Errorf("places: %w", err)
	}

	html, err := vanilla.New(
		vanilla.WithLogger(logger),
		vanilla.WithComponentConfig(map[string]any{"placesEndpoint": component.Endpoint("")}),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("renderer: %w", err)
	}
	registry := render.NewRegistry()
	registry.MustRegister(html)

	options := []orchestrator.Option{
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(html.Name()),
		orchestrator.WithPlaces(widget),
		orchestrator.WithLogger(logger),
	}
	if cfg.ConfigDir != "" {
		options = append(options, orchestrator.WithConfigFS(os.DirFS(cfg.ConfigDir)))
	}

	s := &formServer{
		cfg:       cfg,
		generator: formrows.NewOrchestrator(options...),
		store:     store,
		logger:    logger,
	}

	router := mux.NewRouter()
	router.Use(s.logRequests)
	router.Handle("/", http.RedirectHandler(formPath, http.StatusFound)).Methods(http.MethodGet)
	router.HandleFunc(formPath, s.showForm).Methods(http.MethodGet, http.MethodHead)
	router.HandleFunc(formPath, s.submitForm).Methods(http.MethodPost)
	router.HandleFunc("/api/dataset", s.dataset).Methods(http.MethodGet)
	router.Handle(component.Endpoint(""), component.Handler()).Methods(http.MethodGet, http.MethodHead)
	router.PathPrefix("/assets/").Handler(http.StripPrefix("/assets/", http.FileServer(http.FS(formrows.AssetsFS()))))
	router.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return s, router, nil
}

func (s *formServer) renderOptions(version int) render.RenderOptions {
	fields := []render.HiddenField{render.VersionField(versionField, version)}
	if s.cfg.CSRFToken != "" {
		fields = append(fields, render.CSRFToken(csrfField, s.cfg.CSRFToken))
	}
	return render.RenderOptions{
		Action:       formPath,
		HiddenFields: render.MergeHiddenFields(nil, fields...),
	}
}

func (s *formServer) showForm(w http.ResponseWriter, r *http.Request) {
	values, version := s.store.Snapshot()
	output, err := s.generator.GenerateForm(r.Context(), orchestrator.FormRequest{
		Editors:       s.cfg.Editors,
		Values:        values,
		Lang:          s.cfg.Lang,
		RenderOptions: s.renderOptions(version),
	})
	if err != nil {
		s.fail(w, "generate form", err, http.StatusInternalServerError)
		return
	}
	s.writePage(w, http.StatusOK, output)
}

func (s *formServer) submitForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form payload", http.StatusBadRequest)
		return
	}
	if !s.validCSRF(r.PostForm.Get(csrfField)) {
		http.Error(w, "invalid csrf token", http.StatusForbidden)
		return
	}
	version, err := strconv.Atoi(r.PostForm.Get(versionField))
	if err != nil {
		http.Error(w, "missing form version", http.StatusBadRequest)
		return
	}

	stored, _ := s.store.Snapshot()
	result, err := s.generator.SubmitForm(r.Context(), orchestrator.FormRequest{
		Editors:       s.cfg.Editors,
		Values:        stored,
		Lang:          s.cfg.Lang,
		Form:          r.PostForm,
		RenderOptions: s.renderOptions(version),
	})
	if err != nil {
		s.fail(w, "submit form", err, http.StatusBadRequest)
		return
	}
	if result.Pending() {
		s.writePage(w, http.StatusOK, result.Output)
		return
	}

	next, err := s.store.Save(result.Values, version)
	if errors.Is(err, errConflict) {
		s.logger.Warn("stale submission", "version", version, "current", next)
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	s.logger.Info("dataset saved", "version", next)
	http.Redirect(w, r, formPath, http.StatusSeeOther)
}

func (s *formServer) dataset(w http.ResponseWriter, _ *http.Request) {
	values, version := s.store.Snapshot()
	payload := struct {
		Version int                        `json:"version"`
		Data    map[string][]record.Record `json:"data"`
	}{Version: version, Data: make(map[string][]record.Record, len(s.cfg.Editors))}
	for _, key := range s.cfg.Editors {
		payload.Data[key] = record.Parse(values[key])
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("write dataset", "error", err)
	}
}

func (s *formServer) writePage(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	page := fmt.Sprintf(pageLayout, s.cfg.Lang, body)
	if _, err := w.Write([]byte(page)); err != nil {
		s.logger.Error("write response", "error", err)
	}
}

func (s *formServer) fail(w http.ResponseWriter, msg string, err error, status int) {
	s.logger.Error(msg, "error", err)
	http.Error(w, fmt.Sprintf("%s: %v", msg, err), status)
}

func (s *formServer) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

const pageLayout = `<!doctype html>
<html lang="%s">
<head>
<meta charset="utf-8">
<title>Dataset metadata</title>
</head>
<body>
%s
</body>
</html>
`

// validCSRF reports whether token matches the configured one. Without a
// configured token every submission passes.
func (s *formServer) validCSRF(token string) bool {
	if s.cfg.CSRFToken == "" {
		return true
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(s.cfg.CSRFToken)) == 1
}
