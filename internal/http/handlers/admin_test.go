package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"nba-surprise-service/internal/archive"
	"nba-surprise-service/internal/testutil"
)

type stubRunner struct {
	result   archive.Result
	err      error
	selector string
}

func (s *stubRunner) Run(ctx context.Context, selector string) (archive.Result, error) {
	_ = ctx
	s.selector = selector
	return s.result, s.err
}

// slowRunner takes longer than the test server's write timeout.
type slowRunner struct {
	delay       time.Duration
	hasDeadline atomic.Bool
}

func (s *slowRunner) Run(ctx context.Context, selector string) (archive.Result, error) {
	_, ok := ctx.Deadline()
	s.hasDeadline.Store(ok)
	select {
	case <-time.After(s.delay):
	case <-ctx.Done():
		return archive.Result{}, ctx.Err()
	}
	return archive.Result{Processed: []int{2023}, TotalGames: 1230}, nil
}

// shortWriteServer serves h behind a server whose write timeout is shorter than slowRunner's delay.
func shortWriteServer(t *testing.T, h *AdminHandler) *httptest.Server {
	t.Helper()
	r := mux.NewRouter()
	r.HandleFunc("/admin/archive/{selector}", h.RunArchive).Methods(http.MethodPost)
	srv := httptest.NewUnstartedServer(r)
	srv.Config.WriteTimeout = 50 * time.Millisecond
	srv.Start()
	t.Cleanup(srv.Close)
	return srv
}

func postArchive(srv *httptest.Server, selector string) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/admin/archive/"+selector, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer secret")
	return srv.Client().Do(req)
}

type stubManifest struct {
	manifest archive.Manifest
	err      error
}

func (s stubManifest) Manifest() (archive.Manifest, error) {
	return s.manifest, s.err
}

func archiveRequest(selector, token string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/admin/archive/"+selector, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return mux.SetURLVars(req, map[string]string{"selector": selector})
}

func TestAdminArchiveRequiresAuth(t *testing.T) {
	runner := &stubRunner{}
	h := NewAdminHandler(runner, nil, "secret", nil)

	rr := testutil.ServeRequest(http.HandlerFunc(h.RunArchive), archiveRequest("latest", ""))
	testutil.AssertStatus(t, rr, http.StatusUnauthorized)

	rr = testutil.ServeRequest(http.HandlerFunc(h.RunArchive), archiveRequest("latest", "wrong"))
	testutil.AssertStatus(t, rr, http.StatusUnauthorized)

	if runner.selector != "" {
		t.Fatalf("expected runner not invoked without auth")
	}
}

func TestAdminArchiveDisabledWithoutToken(t *testing.T) {
	h := NewAdminHandler(&stubRunner{}, nil, "", nil)
	rr := testutil.ServeRequest(http.HandlerFunc(h.RunArchive), archiveRequest("latest", ""))
	testutil.AssertStatus(t, rr, http.StatusUnauthorized)
}

func TestAdminArchiveRunsSelector(t *testing.T) {
	runner := &stubRunner{result: archive.Result{
		Processed:  []int{2023},
		Failed:     []archive.Failure{{SeasonID: 2022, Error: "integrity"}},
		TotalGames: 41,
	}}
	h := NewAdminHandler(runner, nil, "secret", nil)

	rr := testutil.ServeRequest(http.HandlerFunc(h.RunArchive), archiveRequest("all", "secret"))
	testutil.AssertStatus(t, rr, http.StatusOK)

	var res archive.Result
	testutil.DecodeJSON(t, rr, &res)
	if runner.selector != "all" {
		t.Fatalf("expected selector all, got %s", runner.selector)
	}
	if len(res.Processed) != 1 || res.TotalGames != 41 || len(res.Failed) != 1 {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestAdminArchiveMapsSelectorErrors(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: fmt.Errorf("%w: %q", archive.ErrInvalidSelector, "x"), want: http.StatusBadRequest},
		{err: fmt.Errorf("%w: 1900", archive.ErrUnknownSeason), want: http.StatusNotFound},
		{err: fmt.Errorf("%w: 2025", archive.ErrSeasonNotConcluded), want: http.StatusConflict},
		{err: errors.New("disk full"), want: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		h := NewAdminHandler(&stubRunner{err: tt.err}, nil, "secret", nil)
		rr := testutil.ServeRequest(http.HandlerFunc(h.RunArchive), archiveRequest("x", "secret"))
		testutil.AssertStatus(t, rr, tt.want)
	}
}

func TestAdminArchiveWithoutRunner(t *testing.T) {
	h := NewAdminHandler(nil, nil, "secret", nil)
	rr := testutil.ServeRequest(http.HandlerFunc(h.RunArchive), archiveRequest("latest", "secret"))
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
}

func TestAdminManifest(t *testing.T) {
	m := archive.Manifest{Version: 1, Seasons: []archive.SeasonEntry{{SeasonID: 2023, Source: "gamelog", Games: 40}}}
	h := NewAdminHandler(nil, stubManifest{manifest: m}, "secret", nil)

	req := httptest.NewRequest(http.MethodGet, "/admin/archive/manifest", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rr := testutil.ServeRequest(http.HandlerFunc(h.Manifest), req)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var got archive.Manifest
	testutil.DecodeJSON(t, rr, &got)
	if len(got.Seasons) != 1 || got.Seasons[0].SeasonID != 2023 {
		t.Fatalf("unexpected manifest %+v", got)
	}

	h = NewAdminHandler(nil, stubManifest{err: errors.New("corrupt")}, "secret", nil)
	rr = testutil.ServeRequest(http.HandlerFunc(h.Manifest), req)
	testutil.AssertStatus(t, rr, http.StatusInternalServerError)
}

func TestAdminArchiveOutlivesServerWriteTimeout(t *testing.T) {
	runner := &slowRunner{delay: 200 * time.Millisecond}
	h := NewAdminHandler(runner, nil, "secret", nil, WithRunTimeout(5*time.Second))
	srv := shortWriteServer(t, h)

	resp, err := postArchive(srv, "all")
	if err != nil {
		t.Fatalf("archive request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var res archive.Result
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if res.TotalGames != 1230 {
		t.Fatalf("unexpected result %+v", res)
	}
	if !runner.hasDeadline.Load() {
		t.Fatalf("expected run context to carry the run timeout")
	}
}

func TestAdminArchiveWithoutRunTimeoutHitsWriteTimeout(t *testing.T) {
	h := NewAdminHandler(&slowRunner{delay: 200 * time.Millisecond}, nil, "secret", nil)
	srv := shortWriteServer(t, h)

	resp, err := postArchive(srv, "all")
	if err == nil {
		resp.Body.Close()
		t.Fatalf("expected the write timeout to drop the response, got %d", resp.StatusCode)
	}
}

func TestAdminArchiveRunTimeoutCancelsRun(t *testing.T) {
	runner := &slowRunner{delay: time.Second}
	h := NewAdminHandler(runner, nil, "secret", nil, WithRunTimeout(20*time.Millisecond))

	rr := testutil.ServeRequest(http.HandlerFunc(h.RunArchive), archiveRequest("all", "secret"))
	testutil.AssertStatus(t, rr, http.StatusInternalServerError)
}
