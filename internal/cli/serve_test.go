package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/boxlay/boxlay/pkg/config"
	"github.com/boxlay/boxlay/pkg/graph"
	"github.com/boxlay/boxlay/pkg/pipeline"
	"github.com/boxlay/boxlay/pkg/store"
)

func testServer(t *testing.T) *server {
	t.Helper()
	c := New(io.Discard, LogInfo)
	return &server{
		cfg:    config.Default(),
		runner: pipeline.NewRunner(nil, nil, c.Logger),
		store:  store.NewMemoryStore(),
		cli:    c,
	}
}

func createBody(t *testing.T) *bytes.Buffer {
	t.Helper()
	g := graph.New()
	if err := g.AddNode("web", 160, 60); err != nil {
		t.Fatalf("AddNode: %v", err)
	}
	if err := g.AddNode("db", 120, 80); err != nil {
		t.Fatalf("AddNode: %v", err)
	}
	g.AddEdge("web", "db")
	g.Finalize()

	body, err := json.Marshal(createRequest{Name: "test", Graph: graph.Export(g)})
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	return bytes.NewBuffer(body)
}

func TestServeHealth(t *testing.T) {
	srv := testServer(t)
	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("response missing X-Request-ID header")
	}
}

func TestServeCreateAndFetch(t *testing.T) {
	srv := testServer(t)
	handler := srv.routes()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/layouts", createBody(t)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}

	var created store.Record
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.ID == "" {
		t.Fatal("created record has empty ID")
	}
	if len(created.Document.Nodes) != 2 {
		t.Fatalf("created document has %d nodes, want 2", len(created.Document.Nodes))
	}

	// Fetch it back
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/layouts/"+created.ID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}

	// List contains it
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/layouts", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var recs []store.Record
	if err := json.Unmarshal(rec.Body.Bytes(), &recs); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("list returned %d records, want 1", len(recs))
	}

	// Render an artifact
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/layouts/"+created.ID+"/artifact?format=svg", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("artifact status = %d, body %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Fatalf("artifact Content-Type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "<svg") {
		t.Fatal("artifact response is not SVG")
	}

	// Delete and verify gone
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/layouts/"+created.ID, nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/layouts/"+created.ID, nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d, want 404", rec.Code)
	}
}

func TestServeCreateRejectsBadBody(t *testing.T) {
	srv := testServer(t)
	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/layouts", strings.NewReader("not json")))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestServeArtifactRejectsUnknownFormat(t *testing.T) {
	srv := testServer(t)
	handler := srv.routes()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/layouts", createBody(t)))
	var created store.Record
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/layouts/"+created.ID+"/artifact?format=tiff", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
