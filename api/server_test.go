package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/matt-g-everett/ledanim/scene"
	"github.com/matt-g-everett/ledanim/stream"
)

type fakeQueue struct {
	cmds []stream.Command
	err  error
}

func (q *fakeQueue) Enqueue(cmd stream.Command) error {
	if q.err != nil {
		return q.err
	}
	q.cmds = append(q.cmds, cmd)
	return nil
}

type fakeStatus []scene.Status

func (s fakeStatus) Status() []scene.Status { return s }

func TestApi_Status(t *testing.T) {
	status := fakeStatus{{Name: "glow", State: "playing", Active: true, NormalizedTime: 0.5}}
	a := NewApi(&fakeQueue{}, status)

	rec := httptest.NewRecorder()
	a.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/animations", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var got []scene.Status
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != status[0] {
		t.Errorf("unexpected status %+v", got)
	}
}

func TestApi_Command(t *testing.T) {
	q := &fakeQueue{}
	a := NewApi(q, fakeStatus{})

	rec := httptest.NewRecorder()
	a.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/animations/glow/Restart", nil))

	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rec.Code)
	}
	if len(q.cmds) != 1 || q.cmds[0] != (stream.Command{Animation: "glow", Name: "Restart"}) {
		t.Errorf("unexpected commands %v", q.cmds)
	}
}

func TestApi_CommandQueueFull(t *testing.T) {
	q := &fakeQueue{err: stream.ErrQueueFull}
	a := NewApi(q, fakeStatus{})

	rec := httptest.NewRecorder()
	a.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/animations/glow/Play", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", rec.Code)
	}
}

func TestApi_MethodNotAllowed(t *testing.T) {
	a := NewApi(&fakeQueue{}, fakeStatus{})

	rec := httptest.NewRecorder()
	a.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/animations/glow/Play", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
}

func TestApi_UnknownCommand(t *testing.T) {
	q := &fakeQueue{}
	a := NewApi(q, fakeStatus{})

	rec := httptest.NewRecorder()
	a.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/animations/glow/Explode", nil))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if len(q.cmds) != 0 {
		t.Errorf("unknown command was queued: %v", q.cmds)
	}

	rec = httptest.NewRecorder()
	a.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/animations/glow/Deactivate", nil))
	if rec.Code != http.StatusAccepted {
		t.Errorf("expected layer command to be accepted, got %d", rec.Code)
	}
}
