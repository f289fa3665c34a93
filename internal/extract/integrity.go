package extract

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"nba-surprise-service/internal/domain/seasons"
	"nba-surprise-service/internal/domain/teams"
)

// IntegrityError reports a reduced season that fails its completeness checks.
type IntegrityError struct {
	SeasonID int
	Expected int
	// Mismatched maps each candidate with the wrong number of games to its count.
	Mismatched map[teams.Code]int
	Total      int
	Distinct   int
	// Unscored lists game ids missing a score for either side.
	Unscored []string
}

func (e *IntegrityError) Error() string {
	var parts []string
	if len(e.Mismatched) > 0 {
		codes := make([]string, 0, len(e.Mismatched))
		for code, n := range e.Mismatched {
			codes = append(codes, fmt.Sprintf("%s=%d", code, n))
		}
		sort.Strings(codes)
		parts = append(parts, fmt.Sprintf("expected %d games for each team, got %s", e.Expected, strings.Join(codes, ", ")))
	}
	if e.Total != e.Distinct {
		parts = append(parts, fmt.Sprintf("counted %d games, collected %d", e.Total, e.Distinct))
	}
	if len(e.Unscored) > 0 {
		parts = append(parts, fmt.Sprintf("%d games without a final score (first %s)", len(e.Unscored), e.Unscored[0]))
	}
	return fmt.Sprintf("[%d] integrity check failed: %s", e.SeasonID, strings.Join(parts, "; "))
}

// AsIntegrityError unwraps an IntegrityError if present.
func AsIntegrityError(err error) (*IntegrityError, bool) {
	var ie *IntegrityError
	if errors.As(err, &ie) {
		return ie, true
	}
	return nil, false
}

// Verify checks that every candidate played the season's full schedule, that
// the distinct game count matches the running counter and that every game is scored.
func Verify(season seasons.Season, candidates teams.Set, res Result) error {
	expected := season.ExpectedGames()
	ie := &IntegrityError{
		SeasonID: season.ID,
		Expected: expected,
		Total:    res.Total,
		Distinct: len(res.Games),
	}

	for code := range candidates {
		if n := res.Counts[code]; n != expected {
			if ie.Mismatched == nil {
				ie.Mismatched = make(map[teams.Code]int)
			}
			ie.Mismatched[code] = n
		}
	}
	for _, g := range res.Games {
		if g.Teams[0].Score <= 0 || g.Teams[1].Score <= 0 {
			ie.Unscored = append(ie.Unscored, g.ID)
		}
	}

	if len(ie.Mismatched) > 0 || ie.Total != ie.Distinct || len(ie.Unscored) > 0 {
		return ie
	}
	return nil
}
