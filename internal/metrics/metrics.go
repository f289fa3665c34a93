package metrics

import (
	"sync"
	"time"
)

type sourceStats struct {
	calls           int
	errors          int
	lastCallLatency time.Duration
}

// Recorder captures lightweight, in-memory metrics about upstream fetches and
// cache decisions, and forwards them to OpenTelemetry when configured.
type Recorder struct {
	mu              sync.Mutex
	sources         map[string]*sourceStats
	outcomes        map[string]int
	refreshFailures map[string]int
	archived        map[string]int
	otel            *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		sources:         make(map[string]*sourceStats),
		outcomes:        make(map[string]int),
		refreshFailures: make(map[string]int),
		archived:        make(map[string]int),
		otel:            otel,
	}
}

// RecordUpstreamFetch increments counters for a remote fetch and stores the last observed latency.
func (r *Recorder) RecordUpstreamFetch(source string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats, ok := r.sources[source]
	if !ok {
		stats = &sourceStats{}
		r.sources[source] = stats
	}
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordUpstreamFetch(source, duration, err)
	}
}

// RecordCacheDecision counts how a season request was answered.
func (r *Recorder) RecordCacheDecision(outcome string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.outcomes[outcome]++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordCacheDecision(outcome)
	}
}

// RecordRefreshFailure counts a failed refresh that was absorbed or surfaced.
func (r *Recorder) RecordRefreshFailure(kind string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.refreshFailures[kind]++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordRefreshFailure(kind)
	}
}

// RecordArchiveSeason counts an archived season by result ("ok" or "failed").
func (r *Recorder) RecordArchiveSeason(result string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.archived[result]++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordArchiveSeason(result)
	}
}

// Snapshot is a copy of the current stats for one upstream source.
type Snapshot struct {
	Calls           int
	Errors          int
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(source string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.sources[source]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		LastCallLatency: stats.lastCallLatency,
	}
}

// UpstreamCalls returns the total fetches recorded for a source.
func (r *Recorder) UpstreamCalls(source string) int {
	return r.Snapshot(source).Calls
}

// UpstreamErrors returns the failed fetches recorded for a source.
func (r *Recorder) UpstreamErrors(source string) int {
	return r.Snapshot(source).Errors
}

// CacheDecisions returns how many requests ended with the given outcome.
func (r *Recorder) CacheDecisions(outcome string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.outcomes[outcome]
}

// RefreshFailures returns the failures recorded for kind.
func (r *Recorder) RefreshFailures(kind string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.refreshFailures[kind]
}

// ArchivedSeasons returns the archived season count for result.
func (r *Recorder) ArchivedSeasons(result string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.archived[result]
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordPollerCycle tracks poller cycles and errors.
func (r *Recorder) RecordPollerCycle(duration time.Duration, err error) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordPoller(duration, err)
}
