package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/emberlit/afterglow/engine"
	"github.com/emberlit/afterglow/event"
	"github.com/emberlit/afterglow/stage"
)

func newTestServer() (*Server, *engine.World) {
	w := engine.NewWorld()
	return NewServer(w, stage.Default(), nil), w
}

func postEvent(t *testing.T, s *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/events", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestIngestMapsTaxonomy(t *testing.T) {
	tests := []struct {
		name string
		body string
		want event.EventType
	}{
		{"keystroke", `{"type":"keystroke","key":"a","inputLength":3,"timestampMs":100}`, event.EventKeystroke},
		{"typing speed", `{"type":"typingSpeed","speed":2.1}`, event.EventTypingSpeedSample},
		{"submission", `{"type":"submission","questionIndex":1,"responseLength":42,"timestampMs":200}`, event.EventSubmission},
		{"question change", `{"type":"questionChange","fromIndex":0,"toIndex":1}`, event.EventQuestionChange},
		{"click", `{"type":"click","timestampMs":300}`, event.EventClick},
		{"pointer move", `{"type":"pointerMove","x":0.25,"y":0.75}`, event.EventPointerMove},
		{"scroll", `{"type":"scroll","deltaY":-120}`, event.EventScroll},
		{"reset", `{"type":"reset"}`, event.EventSessionReset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, w := newTestServer()

			rec := postEvent(t, s, tt.body)
			if rec.Code != http.StatusAccepted {
				t.Fatalf("status = %d, want 202", rec.Code)
			}

			events := w.Resource.Event.Queue.Consume()
			if len(events) != 1 {
				t.Fatalf("queued %d events, want 1", len(events))
			}
			if events[0].Type != tt.want {
				t.Errorf("queued type = %v, want %v", events[0].Type, tt.want)
			}
		})
	}
}

func TestIngestKeystrokePayloadFields(t *testing.T) {
	s, w := newTestServer()

	postEvent(t, s, `{"type":"keystroke","key":"q","inputLength":7,"timestampMs":5000}`)

	events := w.Resource.Event.Queue.Consume()
	if len(events) != 1 {
		t.Fatalf("queued %d events, want 1", len(events))
	}
	p, ok := events[0].Payload.(*event.KeystrokePayload)
	if !ok {
		t.Fatalf("payload type %T", events[0].Payload)
	}
	if p.Key != 'q' || p.InputLength != 7 || p.TimestampMs != 5000 {
		t.Errorf("payload = %+v", p)
	}
}

func TestIngestRejectsUnknownType(t *testing.T) {
	s, w := newTestServer()

	rec := postEvent(t, s, `{"type":"teleport"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d for unknown type, want 400", rec.Code)
	}
	rec = postEvent(t, s, `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d for malformed body, want 400", rec.Code)
	}

	if events := w.Resource.Event.Queue.Consume(); len(events) != 0 {
		t.Errorf("%d events queued from rejected requests", len(events))
	}
}

func TestStagesEndpoint(t *testing.T) {
	s, _ := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/api/stages", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var script stage.Script
	if err := json.Unmarshal(rec.Body.Bytes(), &script); err != nil {
		t.Fatalf("invalid stages JSON: %v", err)
	}
	if script.Count() != stage.Default().Count() {
		t.Errorf("stage count = %d, want %d", script.Count(), stage.Default().Count())
	}
}

func TestStatusEndpoint(t *testing.T) {
	s, w := newTestServer()
	w.Resource.Status.Ints.Get("cascade.fires").Store(3)

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body struct {
		Frame   int64          `json:"frame"`
		Metrics map[string]any `json:"metrics"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid status JSON: %v", err)
	}
	if v, ok := body.Metrics["cascade.fires"]; !ok || v.(float64) != 3 {
		t.Errorf("cascade.fires metric = %v, want 3", v)
	}
}
