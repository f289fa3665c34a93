package testutil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"nba-surprise-service/internal/archive"
	"nba-surprise-service/internal/domain/games"
)

func TestClockHelpers(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	if got := NowAt(now)(); !got.Equal(now) {
		t.Fatalf("expected fixed time, got %v", got)
	}
	if MustParseRFC3339(now.Format(time.RFC3339)) != now {
		t.Fatalf("expected parse round trip")
	}
	if got := Eastern(2024, time.November, 5, 19, 30).UTC(); got.Hour() != 0 || got.Day() != 6 {
		t.Fatalf("expected 7:30pm Eastern to be 00:30 UTC next day, got %v", got)
	}
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic on invalid RFC3339")
		}
	}()
	MustParseRFC3339("not-a-time")
}

func TestCatalogHelper(t *testing.T) {
	c := NewCatalog(t)
	if _, ok := c.Season(2024); !ok {
		t.Fatalf("expected season 2024")
	}
	if cands := c.Candidates(2024); !cands.Has("BOS") || !cands.Has("MIA") || cands.Has("CHA") {
		t.Fatalf("unexpected 2024 candidates %v", cands.Sorted())
	}
}

func TestFixturesHelper(t *testing.T) {
	g := SampleGame("2024-11-01", 2024, "MIA", 106, "BOS", 108)
	if g.ID != "2024-11-01/BOS__MIA" || g.Teams[0].Score != 108 {
		t.Fatalf("unexpected game fixture %+v", g)
	}
	sched := BostonMiamiSchedule()
	if len(sched.Slates) != 4 {
		t.Fatalf("expected four slates, got %d", len(sched.Slates))
	}
}

func TestServeHelpers(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	rr := Serve(handler, http.MethodPost, "/test", strings.NewReader("{}"))
	AssertStatus(t, rr, http.StatusCreated)
	var body map[string]bool
	DecodeJSON(t, rr, &body)
	if !body["ok"] {
		t.Fatalf("expected ok=true")
	}

	req := httptest.NewRequest(http.MethodGet, "/req", nil)
	rr2 := ServeRequest(handler, req)
	AssertStatus(t, rr2, http.StatusCreated)

	failing := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"busy","code":"CONFLICT"}`))
	})
	if code := ErrorCode(t, Serve(failing, http.MethodPost, "/x", nil)); code != "CONFLICT" {
		t.Fatalf("expected CONFLICT, got %q", code)
	}
}

func TestArchiveHelpers(t *testing.T) {
	w, fs := NewTempArchive(t)
	list := []games.Game{SampleGame("2024-01-02", 2023, "DET", 90, "NYK", 100)}
	WriteArchivedSeason(t, w, 2023, list)

	got, err := fs.LoadSeason(2023)
	if err != nil {
		t.Fatalf("expected archived season, got %v", err)
	}
	if len(got) != 1 || got[0].ID != list[0].ID {
		t.Fatalf("unexpected archive contents %+v", got)
	}
}

func TestStoreHelpers(t *testing.T) {
	s := NewCountingStore()
	s.Seed(games.CacheRecord{SeasonID: 2024})
	rec, err := s.Get(context.Background(), 2024)
	if err != nil || rec == nil {
		t.Fatalf("expected seeded record, got %v err %v", rec, err)
	}
	if s.Gets.Load() != 1 || s.Puts.Load() != 0 {
		t.Fatalf("unexpected counts gets=%d puts=%d", s.Gets.Load(), s.Puts.Load())
	}

	s.PutErr = errors.New("down")
	if err := s.Put(context.Background(), games.CacheRecord{SeasonID: 2024}); !errors.Is(err, s.PutErr) {
		t.Fatalf("expected put error passthrough")
	}

	a := &StubArchive{Seasons: map[int][]games.Game{2023: {}}}
	if _, err := a.LoadSeason(2023); err != nil {
		t.Fatalf("expected archived season, got %v", err)
	}
	if _, err := a.LoadSeason(2022); !errors.Is(err, archive.ErrNotArchived) {
		t.Fatalf("expected not-archived error, got %v", err)
	}
}

func TestProviderHelpers(t *testing.T) {
	ctx := context.Background()
	p := &StubScheduleProvider{Schedule: BostonMiamiSchedule(), Notify: make(chan struct{})}
	got, err := p.FetchSchedule(ctx)
	if err != nil || len(got.Slates) != 4 {
		t.Fatalf("expected schedule copy, got %v err %v", got, err)
	}
	select {
	case <-p.Notify:
	default:
		t.Fatalf("expected notify channel closed")
	}
	got.Slates[0].Games[0].Home.Score = 0
	again, _ := p.FetchSchedule(ctx)
	if again.Slates[0].Games[0].Home.Score == 0 {
		t.Fatalf("expected stub to return independent copies")
	}
	if p.Calls.Load() != 2 {
		t.Fatalf("expected two calls, got %d", p.Calls.Load())
	}

	errProv := &StubGameLogProvider{Err: errors.New("boom")}
	if _, err := errProv.FetchGameLog(ctx, 2023); !errors.Is(err, errProv.Err) {
		t.Fatalf("expected error passthrough")
	}
}

func TestServerStubs(t *testing.T) {
	p := &StubPoller{Err: errors.New("stop")}
	p.Start(context.Background())
	if err := p.Stop(context.Background()); !errors.Is(err, p.Err) {
		t.Fatalf("expected stop error")
	}
	if p.StartCalls != 1 || p.StopCalls != 1 {
		t.Fatalf("unexpected call counts %+v", p)
	}
	if p.Status() != p.StatusVal {
		t.Fatalf("expected status passthrough")
	}

	sh := &StubHTTPServer{ListenErr: errors.New("boom"), ShutdownErr: errors.New("down")}
	_ = sh.ListenAndServe()
	_ = sh.Shutdown(context.Background())
	if listen, shutdown := sh.Calls(); listen != 1 || shutdown != 1 {
		t.Fatalf("expected one listen and shutdown, got %d/%d", listen, shutdown)
	}
	if sh.Handler() == nil {
		t.Fatalf("expected default handler")
	}

	blocked := &StubHTTPServer{Block: make(chan struct{})}
	done := make(chan error, 1)
	go func() { done <- blocked.Shutdown(context.Background()) }()
	close(blocked.Block)
	if err := <-done; err != nil {
		t.Fatalf("expected nil shutdown err, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := (&StubHTTPServer{Block: make(chan struct{})}).Shutdown(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}

	sched := &StubScheduler{}
	if err := sched.Start(context.Background()); err != nil {
		t.Fatalf("unexpected scheduler start error %v", err)
	}
	sched.Stop()
	if sched.StartCalls != 1 || sched.StopCalls != 1 {
		t.Fatalf("unexpected scheduler calls %+v", sched)
	}
}

func TestLoggerAndMetricsHelpers(t *testing.T) {
	logger, buf := NewBufferLogger()
	logger.Debug("hello", "k", "v")
	if !strings.Contains(buf.String(), "k=v") {
		t.Fatalf("expected debug output, got %q", buf.String())
	}

	rec, handler := NewTelemetry(t)
	rec.RecordCacheDecision("hit")
	if body := Scrape(t, handler); !strings.Contains(body, "cache_decisions_total") {
		t.Fatalf("expected cache decisions in exposition, got:\n%s", body)
	}
}
