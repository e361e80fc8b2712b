// Package server hosts a one-shot local browser session for a loaded
// recording. All interaction (pan, zoom, selection, PNG export) happens in
// the served page; the server only hands out the data arrays and the plan.
package server

import (
	"context"
	"encoding/json"
	"html/template"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/jgae23/EEG-ECG-Multichannel/internal/layout"
	"github.com/jgae23/EEG-ECG-Multichannel/internal/recording"
)

type Server struct {
	rec     *recording.Recording
	plan    *layout.Plan
	address string
	page    *template.Template
	server  *http.Server
}

func NewServer(rec *recording.Recording, plan *layout.Plan, address string) *Server {
	return &Server{
		rec:     rec,
		plan:    plan,
		address: address,
		page:    template.Must(template.New("viewer").Parse(viewerPage)),
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Write([]byte("ok"))
}

type channelPayload struct {
	Name     string    `json:"name"`
	Unit     string    `json:"unit"`
	Category string    `json:"category"`
	Samples  []float64 `json:"samples"`
}

type recordingPayload struct {
	Path       string           `json:"path"`
	SampleRate float64          `json:"sample_rate"`
	Time       []float64        `json:"time"`
	Channels   []channelPayload `json:"channels"`
}

func (s *Server) handleRecording(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "GET only", http.StatusMethodNotAllowed)
		return
	}
	payload := recordingPayload{
		Path:       s.rec.Path,
		SampleRate: s.rec.SampleRate,
		Time:       s.rec.Time,
		Channels:   make([]channelPayload, len(s.rec.Channels)),
	}
	for i, ch := range s.rec.Channels {
		payload.Channels[i] = channelPayload{
			Name:     ch.Name,
			Unit:     string(ch.Unit),
			Category: ch.Category.String(),
			Samples:  ch.Samples,
		}
	}
	writeJSON(w, payload)
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "GET only", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, s.plan)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	data := struct {
		File       string
		Channels   int
		SampleRate float64
	}{
		File:       filepath.Base(s.rec.Path),
		Channels:   len(s.plan.Rows),
		SampleRate: s.rec.SampleRate,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.page.Execute(w, data); err != nil {
		log.Printf("template error: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode error: %v", err)
	}
}

func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/api/recording", s.handleRecording)
	mux.HandleFunc("/api/layout", s.handleLayout)
	return mux
}

func (s *Server) Start() error {
	mux := s.setupRoutes()
	s.server = &http.Server{
		Addr:         s.address,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	// Graceful shutdown
	shutdownChannel := make(chan os.Signal, 1)
	signal.Notify(shutdownChannel, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("serving %s on http://%s", filepath.Base(s.rec.Path), s.address)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start:", err)
		}
	}()

	<-shutdownChannel
	log.Println("Shutting down server...")

	shutdownContext, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.server.Shutdown(shutdownContext); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
	return nil
}
