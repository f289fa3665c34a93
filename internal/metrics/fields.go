package metrics

// Common metric attribute keys to keep telemetry consistent/searchable.
const (
	AttrMethod  = "method"
	AttrPath    = "path"
	AttrStatus  = "status"
	AttrSource  = "source"
	AttrOutcome = "outcome"
	AttrResult  = "result"
)

// Cache decision outcomes recorded by the season service.
const (
	OutcomeHit       = "hit"
	OutcomeTerminal  = "terminal"
	OutcomeRefreshed = "refreshed"
	OutcomeFallback  = "fallback"
	OutcomeArchive   = "archive"
	OutcomeUpcoming  = "upcoming"
)

// Archive run results per season.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)
