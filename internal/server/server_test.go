package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jgae23/EEG-ECG-Multichannel/internal/classify"
	"github.com/jgae23/EEG-ECG-Multichannel/internal/layout"
	"github.com/jgae23/EEG-ECG-Multichannel/internal/recording"
)

func setupTestServer(t *testing.T) *Server {
	t.Helper()
	rec := &recording.Recording{
		Path:       "rec.csv",
		SampleRate: 200,
		Time:       []float64{0, 0.005, 0.01},
		Channels: []recording.Channel{
			{Name: "Fp1", Unit: classify.Microvolt, Category: classify.EEG, Samples: []float64{10, 12, 9}},
			{Name: "X1_LEOG", Unit: classify.Millivolt, Category: classify.ECG, Samples: []float64{1.0, 1.1, 0.9}},
		},
	}
	plan := layout.Build(rec, layout.Options{})
	return NewServer(rec, plan, "127.0.0.1:0")
}

func TestHandleHealthz(t *testing.T) {
	server := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	server.handleHealthz(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Result().StatusCode)
	}
}

func TestHandleRecording(t *testing.T) {
	server := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/recording", nil)
	w := httptest.NewRecorder()
	server.handleRecording(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected JSON content type, got %q", ct)
	}

	var payload recordingPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(payload.Channels) != 2 {
		t.Errorf("expected 2 channels, got %d", len(payload.Channels))
	}
	if len(payload.Time) != 3 {
		t.Errorf("expected 3 timestamps, got %d", len(payload.Time))
	}
	if payload.Channels[1].Category != "ecg" {
		t.Errorf("expected ecg, got %q", payload.Channels[1].Category)
	}
}

func TestHandleRecordingMethodNotAllowed(t *testing.T) {
	server := setupTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/recording", nil)
	w := httptest.NewRecorder()
	server.handleRecording(w, req)

	if w.Result().StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", w.Result().StatusCode)
	}
}

func TestHandleLayout(t *testing.T) {
	server := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/layout", nil)
	w := httptest.NewRecorder()
	server.handleLayout(w, req)

	var plan layout.Plan
	if err := json.NewDecoder(w.Result().Body).Decode(&plan); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(plan.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(plan.Rows))
	}
	for _, row := range plan.Rows {
		if row.HeightPx != layout.DefaultRowHeight {
			t.Errorf("expected height %d, got %d", layout.DefaultRowHeight, row.HeightPx)
		}
		if row.AxisGroup != layout.SharedAxisGroup {
			t.Errorf("expected axis group %q, got %q", layout.SharedAxisGroup, row.AxisGroup)
		}
	}
}

func TestHandleIndex(t *testing.T) {
	server := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	server.handleIndex(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body := w.Body.String()
	if !strings.Contains(body, "rec.csv") {
		t.Error("page should name the file")
	}
	if !strings.Contains(body, "/api/recording") {
		t.Error("page should fetch the recording API")
	}
}

func TestHandleIndexNotFound(t *testing.T) {
	server := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	w := httptest.NewRecorder()
	server.handleIndex(w, req)

	if w.Result().StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Result().StatusCode)
	}
}
