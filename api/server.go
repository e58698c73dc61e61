package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/matt-g-everett/ledanim/scene"
	"github.com/matt-g-everett/ledanim/stream"
	"github.com/pkg/errors"
)

// Queue accepts commands for the frame loop.
type Queue interface {
	Enqueue(cmd stream.Command) error
}

// StatusSource reports the state of every animation.
type StatusSource interface {
	Status() []scene.Status
}

// Api serves animation status and accepts playback commands over HTTP.
type Api struct {
	queue  Queue
	status StatusSource
	mux    *http.ServeMux
}

// NewApi creates an Api.
func NewApi(queue Queue, status StatusSource) *Api {
	a := new(Api)
	a.queue = queue
	a.status = status
	a.mux = http.NewServeMux()
	a.mux.HandleFunc("GET /animations", a.handleStatus)
	a.mux.HandleFunc("POST /animations/{name}/{command}", a.handleCommand)
	return a
}

// ServeHTTP implements http.Handler.
func (a *Api) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mux.ServeHTTP(w, r)
}

func (a *Api) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(a.status.Status()); err != nil {
		log.Printf("encode status: %v", err)
	}
}

func (a *Api) handleCommand(w http.ResponseWriter, r *http.Request) {
	cmd := stream.Command{Animation: r.PathValue("name"), Name: r.PathValue("command")}
	if !scene.IsCommand(cmd.Name) {
		http.Error(w, "unknown command "+cmd.Name, http.StatusBadRequest)
		return
	}
	if err := a.queue.Enqueue(cmd); err != nil {
		if errors.Is(err, stream.ErrQueueFull) {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// Serve listens on addr until the server fails.
func (a *Api) Serve(addr string) error {
	log.Printf("Listening on %s...", addr)
	return http.ListenAndServe(addr, a)
}
