package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newTestServer(t *testing.T, cfg Config, seed map[string]string) (*datasetStore, http.Handler) {
	t.Helper()
	if cfg.Lang == "" {
		cfg.Lang = "it"
	}
	if len(cfg.Editors) == 0 {
		cfg.Editors = []string{"creator", "temporal_coverage"}
	}
	store := newDatasetStore(seed)
	_, handler, err := newFormServer(cfg, store, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return store, handler
}

func serve(handler http.Handler, method, target string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestShowForm(t *testing.T) {
	_, handler := newTestServer(t, Config{}, map[string]string{
		"creator": `[{"creator_name":{"it":"Ada"},"creator_identifier":"IT-1"}]`,
	})

	rec := serve(handler, http.MethodGet, "/form", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	for _, want := range []string{
		`<form method="post" action="/form"`,
		`name="_version" value="1"`,
		`data-module="creator"`,
		`data-module="temporal-coverage"`,
		`value="Ada"`,
		`<html lang="it">`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in page:\n%s", want, body)
		}
	}
}

func TestSubmitForm_SavesAndRedirects(t *testing.T) {
	store, handler := newTestServer(t, Config{}, nil)

	rec := serve(handler, http.MethodPost, "/form", url.Values{
		"_version":                       {"1"},
		"creator[__rows]":                {"", "0"},
		"creator[0][creator_name]":       {"Ada"},
		"creator[0][creator_identifier]": {"IT-1"},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d: %s", rec.Code, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); loc != "/form" {
		t.Fatalf("unexpected redirect %q", loc)
	}

	values, version := store.Snapshot()
	if version != 2 {
		t.Fatalf("expected version 2, got %d", version)
	}
	want := `[{"creator_identifier":"IT-1","creator_name":{"it":"Ada"}}]`
	if diff := cmp.Diff(want, values["creator"]); diff != "" {
		t.Fatalf("stored value mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmitForm_ActionRerendersWithoutSaving(t *testing.T) {
	store, handler := newTestServer(t, Config{}, nil)

	rec := serve(handler, http.MethodPost, "/form", url.Values{
		"_version":        {"1"},
		"creator[__rows]": {""},
		"creator[__add]":  {"1"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `data-row="0"`) {
		t.Fatalf("expected the added row in the page:\n%s", rec.Body.String())
	}
	if _, version := store.Snapshot(); version != 1 {
		t.Fatalf("expected nothing saved, version %d", version)
	}
}

func TestSubmitForm_RejectsStaleVersion(t *testing.T) {
	store, handler := newTestServer(t, Config{}, nil)
	if _, err := store.Save(map[string]string{"creator": "[]"}, 1); err != nil {
		t.Fatalf("save: %v", err)
	}

	rec := serve(handler, http.MethodPost, "/form", url.Values{
		"_version":        {"1"},
		"creator[__rows]": {""},
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestSubmitForm_CSRF(t *testing.T) {
	_, handler := newTestServer(t, Config{CSRFToken: "secret"}, nil)

	page := serve(handler, http.MethodGet, "/form", nil).Body.String()
	if !strings.Contains(page, `name="_csrf" value="secret"`) {
		t.Fatalf("expected csrf field in page:\n%s", page)
	}

	for _, token := range []string{"wrong", "secre", "secret2", ""} {
		rec := serve(handler, http.MethodPost, "/form", url.Values{"_version": {"1"}, "_csrf": {token}})
		if rec.Code != http.StatusForbidden {
			t.Fatalf("token %q: expected 403, got %d", token, rec.Code)
		}
	}
	rec := serve(handler, http.MethodPost, "/form", url.Values{"_version": {"1"}, "_csrf": {"secret"}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestPlacesAndAssets(t *testing.T) {
	_, handler := newTestServer(t, Config{Countries: []string{"IT"}}, nil)

	rec := serve(handler, http.MethodGet, "/api/places?id=3169070", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var payload struct {
		Data []struct {
			Value string `json:"value"`
			Label string `json:"label"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(payload.Data) != 1 || payload.Data[0].Value != "http://www.geonames.org/3169070" {
		t.Fatalf("unexpected places payload %+v", payload)
	}

	if rec := serve(handler, http.MethodPost, "/api/places?q=roma", nil); rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 for POST, got %d", rec.Code)
	}

	rec = serve(handler, http.MethodGet, "/assets/formrows.js", nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "requestSubmit") {
		t.Fatalf("expected runtime script, got %d", rec.Code)
	}
}

func TestDatasetEndpoint(t *testing.T) {
	_, handler := newTestServer(t, Config{}, map[string]string{"creator": `[{"creator_identifier":"IT-1"}]`})

	rec := serve(handler, http.MethodGet, "/api/dataset", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var got struct {
		Version int                         `json:"version"`
		Data    map[string][]map[string]any `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := map[string][]map[string]any{
		"creator":           {{"creator_identifier": "IT-1"}},
		"temporal_coverage": {},
	}
	if diff := cmp.Diff(want, got.Data); diff != "" {
		t.Fatalf("dataset mismatch (-want +got):\n%s", diff)
	}
}
