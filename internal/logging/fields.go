package logging

import "log/slog"

// Structured log keys shared across packages.
const (
	FieldService    = "service"
	FieldVersion    = "version"
	FieldEnv        = "env"
	FieldError      = "error"
	FieldProvider   = "provider"
	FieldRequestID  = "request_id"
	FieldPath       = "path"
	FieldMethod     = "method"
	FieldStatusCode = "status_code"
	FieldSeasonID   = "season_id"
	FieldOutcome    = "outcome"
	FieldExpiresAt  = "expires_at"
	FieldCount      = "count"
	FieldDurationMS = "duration_ms"
)

// WithCommon appends the process identity attributes that are set.
func WithCommon(attrs []slog.Attr, service, version, env string) []slog.Attr {
	for _, a := range []slog.Attr{
		slog.String(FieldService, service),
		slog.String(FieldVersion, version),
		slog.String(FieldEnv, env),
	} {
		if a.Value.String() != "" {
			attrs = append(attrs, a)
		}
	}
	return attrs
}
