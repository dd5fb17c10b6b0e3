package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/viralforge/product-event-service/internal/application"
	"github.com/viralforge/product-event-service/internal/domain"
)

type recordedMessage struct {
	Topic   string
	Key     string
	Payload []byte
}

type fakePublisher struct {
	mu       sync.Mutex
	messages []recordedMessage
	err      error
}

func (f *fakePublisher) Publish(_ context.Context, topic string, key string, payload []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, recordedMessage{Topic: topic, Key: key, Payload: payload})
	return nil
}

func (f *fakePublisher) recorded() []recordedMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]recordedMessage, len(f.messages))
	copy(out, f.messages)
	return out
}

func newTestServer(pub *fakePublisher) http.Handler {
	service := application.NewService(application.Dependencies{
		Config:    application.Config{ServiceName: "product-event-service", Topic: "products"},
		Publisher: pub,
	})
	return NewRouter(NewHandler(service))
}

func doJSON(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func eventFromResponse(t *testing.T, rec *httptest.ResponseRecorder) domain.ProductEvent {
	t.Helper()
	var envelope struct {
		Status string              `json:"status"`
		Data   domain.ProductEvent `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Status != "success" {
		t.Fatalf("expected success envelope, got %q", envelope.Status)
	}
	return envelope.Data
}

func TestCreateProductReturnsCreated(t *testing.T) {
	t.Parallel()

	pub := &fakePublisher{}
	srv := newTestServer(pub)

	rec := doJSON(t, srv, http.MethodPost, "/products", `{"name":"Widget","type":"Gadget"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	event := eventFromResponse(t, rec)
	if event.ID == "" || event.Version != "v1" || event.Event != domain.EventTypeCreated {
		t.Fatalf("unexpected event: %+v", event)
	}
	if len(pub.recorded()) != 1 {
		t.Fatalf("expected exactly one publish")
	}
}

func TestUpdateProductIncrementsVersion(t *testing.T) {
	t.Parallel()

	pub := &fakePublisher{}
	srv := newTestServer(pub)

	rec := doJSON(t, srv, http.MethodPut, "/products/p1",
		`{"id":"p1","name":"Widget","type":"Gadget","version":"v3"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	event := eventFromResponse(t, rec)
	if event.ID != "p1" || event.Version != "v4" || event.Event != domain.EventTypeUpdated {
		t.Fatalf("unexpected event: %+v", event)
	}
}

func TestDeleteProductEmitsDeletedEvent(t *testing.T) {
	t.Parallel()

	pub := &fakePublisher{}
	srv := newTestServer(pub)

	rec := doJSON(t, srv, http.MethodDelete, "/products/p1",
		`{"id":"p1","name":"Widget","type":"Gadget","version":"v9"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	event := eventFromResponse(t, rec)
	if event.Version != "v10" || event.Event != domain.EventTypeDeleted {
		t.Fatalf("unexpected event: %+v", event)
	}
}

func TestUpdateAdoptsPathIDWhenBodyOmitsIt(t *testing.T) {
	t.Parallel()

	pub := &fakePublisher{}
	srv := newTestServer(pub)

	rec := doJSON(t, srv, http.MethodPut, "/products/p42",
		`{"name":"Widget","type":"Gadget","version":"v1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if event := eventFromResponse(t, rec); event.ID != "p42" {
		t.Fatalf("expected path id adopted, got %q", event.ID)
	}
}

func TestWirePayloadFieldNames(t *testing.T) {
	t.Parallel()

	pub := &fakePublisher{}
	srv := newTestServer(pub)

	rec := doJSON(t, srv, http.MethodPost, "/products",
		`{"id":"p1","name":"Widget","type":"Gadget","version":"v1"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var decoded map[string]any
	if err := json.Unmarshal(pub.recorded()[0].Payload, &decoded); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	for _, field := range []string{"id", "name", "type", "version", "event"} {
		if _, ok := decoded[field]; !ok {
			t.Fatalf("wire payload missing field %q: %s", field, pub.recorded()[0].Payload)
		}
	}
	if decoded["event"] != "CREATED" {
		t.Fatalf("expected event CREATED, got %v", decoded["event"])
	}
}

func TestMalformedVersionIsBadRequest(t *testing.T) {
	t.Parallel()

	pub := &fakePublisher{}
	srv := newTestServer(pub)

	for _, version := range []string{"version2", "v", "1"} {
		body := fmt.Sprintf(`{"id":"p1","name":"Widget","type":"Gadget","version":%q}`, version)
		rec := doJSON(t, srv, http.MethodPut, "/products/p1", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("version %q: expected 400, got %d", version, rec.Code)
		}
	}
	if len(pub.recorded()) != 0 {
		t.Fatalf("expected no publishes for malformed versions")
	}
}

func TestInvalidBodyIsBadRequest(t *testing.T) {
	t.Parallel()

	srv := newTestServer(&fakePublisher{})

	rec := doJSON(t, srv, http.MethodPost, "/products", `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	rec = doJSON(t, srv, http.MethodPost, "/products", `{"type":"Gadget"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing name, got %d", rec.Code)
	}
}

func TestDeliveryFailureIsServiceUnavailable(t *testing.T) {
	t.Parallel()

	pub := &fakePublisher{err: fmt.Errorf("%w: leader not available", domain.ErrPublishFailed)}
	srv := newTestServer(pub)

	rec := doJSON(t, srv, http.MethodPost, "/products", `{"name":"Widget","type":"Gadget"}`)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()

	srv := newTestServer(&fakePublisher{})

	for _, path := range []string{"/healthz", "/readyz"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
	}
}

func TestRequestIDHeaderEchoed(t *testing.T) {
	t.Parallel()

	srv := newTestServer(&fakePublisher{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-Id", "req-123")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-Id"); got != "req-123" {
		t.Fatalf("expected request id echoed, got %q", got)
	}
}
