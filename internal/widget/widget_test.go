package widget

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap/zaptest"

	"github.com/sandeepkv93/deadlinetodo/internal/model"
	"github.com/sandeepkv93/deadlinetodo/internal/storage"
)

var testNow = time.Date(2026, 2, 11, 15, 0, 0, 0, time.UTC)

func seededRepo(t *testing.T) *storage.SQLiteRepository {
	t.Helper()
	repo, err := storage.OpenSQLite(t.Context(), filepath.Join(t.TempDir(), "widget.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })

	soon := model.NewTask("a", model.Draft{Content: "Soon", AddDate: testNow.Add(-time.Hour), EndDate: testNow.Add(time.Hour), NeedTime: time.Hour}, testNow)
	later := model.NewTask("b", model.Draft{Content: "Later", Priority: model.PriorityHigh, EndDate: testNow.Add(48 * time.Hour), NeedTime: time.Hour}, testNow)
	later.Doing = true
	later.StartDoingDate = testNow
	done := model.NewTask("c", model.Draft{Content: "Done", AddDate: testNow.Add(-4 * time.Hour), EndDate: testNow.Add(time.Hour)}, testNow)
	done.State = model.StateDone
	done.DoneDate = testNow.Add(-time.Hour)
	done.Score = 80

	for _, task := range []model.Task{soon, later, done} {
		if err := repo.CreateTask(t.Context(), task); err != nil {
			t.Fatalf("seed %s: %v", task.ID, err)
		}
	}
	return repo
}

func TestBuildSnapshot(t *testing.T) {
	tasks := []model.Task{
		{ID: "a", Content: "Soon", EmergencyDate: testNow.Add(-time.Hour), EndDate: testNow.Add(time.Hour), State: model.StatePending},
		{ID: "b", Content: "Later", EmergencyDate: testNow.Add(time.Hour), EndDate: testNow.Add(2 * time.Hour), State: model.StatePending, Doing: true},
		{ID: "c", Content: "Third", EmergencyDate: testNow.Add(time.Hour), EndDate: testNow.Add(3 * time.Hour), State: model.StatePending},
		{ID: "d", State: model.StateDone, DoneDate: testNow, Score: 60},
	}
	snap := BuildSnapshot(tasks, testNow, 2)
	if snap.Pending != 3 || snap.Urgent != 1 || snap.Doing != 1 || snap.WeeklyScore != 60 {
		t.Fatalf("unexpected counts: %+v", snap)
	}
	if len(snap.Next) != 2 || snap.Next[0].ID != "a" || !snap.Next[0].Urgent || snap.Next[1].ID != "b" {
		t.Fatalf("unexpected next list: %+v", snap.Next)
	}
}

func TestHubReloadBumpsGeneration(t *testing.T) {
	repo := seededRepo(t)
	hub := NewHub(repo, 0, zaptest.NewLogger(t))
	hub.now = func() time.Time { return testNow }

	if got := hub.Snapshot().Generation; got != 0 {
		t.Fatalf("expected empty hub before reload, got generation %d", got)
	}
	hub.ReloadAllTimelines()
	hub.ReloadAllTimelines()
	snap := hub.Snapshot()
	if snap.Generation != 2 {
		t.Fatalf("expected generation 2, got %d", snap.Generation)
	}
	if snap.Pending != 2 || snap.Doing != 1 || snap.WeeklyScore != 80 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if snap.Next[0].ID != "a" || snap.Next[1].Priority != "High" {
		t.Fatalf("expected tasks ordered by deadline, got %+v", snap.Next)
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	hub := NewHub(seededRepo(t), 0, zaptest.NewLogger(t))
	hub.now = func() time.Time { return testNow }
	srv := NewServer(hub, 4, zaptest.NewLogger(t))
	srv.now = func() time.Time { return testNow }
	return srv
}

func get(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func TestServerHealth(t *testing.T) {
	srv := newTestServer(t)
	w := get(t, srv, "/healthz")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestServerWidgetLoadsLazily(t *testing.T) {
	srv := newTestServer(t)
	w := get(t, srv, "/api/widget")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var snap Snapshot
	if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if snap.Generation != 1 || snap.Pending != 2 || len(snap.Next) != 2 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}

func TestServerStats(t *testing.T) {
	srv := newTestServer(t)
	w := get(t, srv, "/api/stats/week")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var body reportJSON
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if body.Period != "week" || body.Completed != 1 || len(body.Series) != 3 {
		t.Fatalf("unexpected report: %+v", body)
	}
	if len(body.Series[0].Values) != 7 || body.Series[0].Values[2] != 80 {
		t.Fatalf("expected Wednesday efficiency of 80, got %v", body.Series[0].Values)
	}
	if len(body.HeatMap) != 28 {
		t.Fatalf("expected 4 weeks of heat map cells, got %d", len(body.HeatMap))
	}

	bad := get(t, srv, "/api/stats/decade")
	if bad.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown period, got %d", bad.Code)
	}
}
