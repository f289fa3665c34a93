// Package gamelog decodes the league game log result set, where every row is
// one team's line in one game.
package gamelog

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"nba-surprise-service/internal/domain/teams"
	"nba-surprise-service/internal/timeutil"
)

// Column headers the reducer relies on.
const (
	HeaderGameDate = "GAME_DATE"
	HeaderMatchup  = "MATCHUP"
	HeaderPoints   = "PTS"
	HeaderTeam     = "TEAM_ABBREVIATION"
)

var requiredHeaders = []string{HeaderGameDate, HeaderMatchup, HeaderPoints, HeaderTeam}

// SchemaError reports a game log document or row that does not match the expected shape.
type SchemaError struct {
	Path string
	Err  error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("game log schema violation at %s: %v", e.Path, e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// AsSchemaError unwraps a SchemaError if present.
func AsSchemaError(err error) (*SchemaError, bool) {
	var se *SchemaError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// Log is the first result set of a game log response.
type Log struct {
	Rows []Row
}

// Row is one raw team-game line.
type Row struct {
	index  int
	values []any
	cols   columns
}

type columns struct {
	date, matchup, points, team int
}

// Entry is a validated team-game line.
type Entry struct {
	PlayedOn string
	Team     teams.Code
	Points   int
}

type rawResultSet struct {
	Headers []string `json:"headers"`
	RowSet  [][]any  `json:"rowSet"`
}

type rawResponse struct {
	ResultSets []rawResultSet `json:"resultSets"`
}

// Parse validates the result set envelope and locates the required columns.
// Individual rows are validated lazily through Row.Matchup and Row.Entry.
func Parse(data []byte) (*Log, error) {
	var resp rawResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, &SchemaError{Path: "$", Err: err}
	}
	if len(resp.ResultSets) == 0 {
		return nil, &SchemaError{Path: "resultSets", Err: errors.New("empty")}
	}
	set := resp.ResultSets[0]
	if len(set.Headers) == 0 {
		return nil, &SchemaError{Path: "resultSets[0].headers", Err: errors.New("empty")}
	}
	if len(set.RowSet) == 0 {
		return nil, &SchemaError{Path: "resultSets[0].rowSet", Err: errors.New("empty")}
	}

	idx := make(map[string]int, len(requiredHeaders))
	for i, h := range set.Headers {
		if _, seen := idx[h]; !seen {
			idx[h] = i
		}
	}
	for _, h := range requiredHeaders {
		if _, ok := idx[h]; !ok {
			return nil, &SchemaError{Path: "resultSets[0].headers", Err: fmt.Errorf("missing %s", h)}
		}
	}
	cols := columns{
		date:    idx[HeaderGameDate],
		matchup: idx[HeaderMatchup],
		points:  idx[HeaderPoints],
		team:    idx[HeaderTeam],
	}

	out := &Log{Rows: make([]Row, 0, len(set.RowSet))}
	for i, values := range set.RowSet {
		if len(values) == 0 {
			return nil, &SchemaError{Path: fmt.Sprintf("resultSets[0].rowSet[%d]", i), Err: errors.New("empty")}
		}
		out.Rows = append(out.Rows, Row{index: i, values: values, cols: cols})
	}
	return out, nil
}

func (r Row) path(col int) string {
	return fmt.Sprintf("resultSets[0].rowSet[%d][%d]", r.index, col)
}

func (r Row) value(col int) (any, error) {
	if col >= len(r.values) {
		return nil, &SchemaError{Path: r.path(col), Err: errors.New("missing column")}
	}
	return r.values[col], nil
}

func (r Row) stringAt(col int) (string, error) {
	v, err := r.value(col)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", &SchemaError{Path: r.path(col), Err: fmt.Errorf("expected string, got %T", v)}
	}
	return s, nil
}

// Matchup returns both participants named by the MATCHUP column
// ("PHX @ GSW" or "GSW vs. PHX"), with legacy codes resolved.
func (r Row) Matchup() (teams.Code, teams.Code, error) {
	raw, err := r.stringAt(r.cols.matchup)
	if err != nil {
		return "", "", err
	}
	parts := strings.Fields(raw)
	if len(parts) != 3 {
		return "", "", &SchemaError{Path: r.path(r.cols.matchup), Err: fmt.Errorf("unrecognized matchup %q", raw)}
	}
	return teams.Canonical(parts[0]), teams.Canonical(parts[2]), nil
}

// Entry validates and returns the row's date, team and points.
func (r Row) Entry() (Entry, error) {
	playedOn, err := r.stringAt(r.cols.date)
	if err != nil {
		return Entry{}, err
	}
	if _, err := timeutil.ParseDate(playedOn); err != nil {
		return Entry{}, &SchemaError{Path: r.path(r.cols.date), Err: err}
	}

	rawTeam, err := r.stringAt(r.cols.team)
	if err != nil {
		return Entry{}, err
	}
	if len(rawTeam) != teams.CodeLength {
		return Entry{}, &SchemaError{Path: r.path(r.cols.team), Err: fmt.Errorf("unexpected team code %q", rawTeam)}
	}

	v, err := r.value(r.cols.points)
	if err != nil {
		return Entry{}, err
	}
	pts, ok := v.(float64)
	if !ok || pts <= 0 || pts != math.Trunc(pts) {
		return Entry{}, &SchemaError{Path: r.path(r.cols.points), Err: fmt.Errorf("expected positive integer points, got %v", v)}
	}

	return Entry{PlayedOn: playedOn, Team: teams.Canonical(rawTeam), Points: int(pts)}, nil
}
