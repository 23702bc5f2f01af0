package cricbuzz

import (
	"fmt"
	"strconv"
	"strings"
)

// The live feed nests optional objects at every level; every pointer here is
// a field the provider may omit for a given match.

type LiveMatchesResponse struct {
	TypeMatches []TypeMatch `json:"typeMatches"`
}

type TypeMatch struct {
	MatchType     string        `json:"matchType"`
	SeriesMatches []SeriesMatch `json:"seriesMatches"`
}

type SeriesMatch struct {
	SeriesAdWrapper *SeriesWrapper `json:"seriesAdWrapper"`
}

type SeriesWrapper struct {
	SeriesName string       `json:"seriesName"`
	Matches    []MatchEntry `json:"matches"`
}

type MatchEntry struct {
	MatchInfo  *MatchInfo  `json:"matchInfo"`
	MatchScore *MatchScore `json:"matchScore"`
}

type MatchInfo struct {
	MatchID    int64      `json:"matchId"`
	MatchDesc  string     `json:"matchDesc"`
	SeriesName string     `json:"seriesName"`
	Team1      *TeamInfo  `json:"team1"`
	Team2      *TeamInfo  `json:"team2"`
	VenueInfo  *VenueInfo `json:"venueInfo"`
}

type TeamInfo struct {
	TeamName string `json:"teamName"`
}

type VenueInfo struct {
	Ground string `json:"ground"`
	City   string `json:"city"`
}

type MatchScore struct {
	Team1Score *TeamScore `json:"team1Score"`
	Team2Score *TeamScore `json:"team2Score"`
}

type TeamScore struct {
	Innings1 *Innings `json:"inngs1"`
}

type Innings struct {
	Runs    *RunTotal  `json:"runs"`
	Wickets *int       `json:"wickets"`
	Overs   *OverCount `json:"overs"`
}

// RunTotal tolerates the provider's mixed encodings: a plain number, a
// numeric string, or a string with a trailing asterisk marking an innings in
// progress ("215*").
type RunTotal int

func (r *RunTotal) UnmarshalJSON(data []byte) error {
	text := strings.TrimSpace(string(data))
	if text == "null" {
		return nil
	}
	text = strings.Trim(text, `"`)
	text = strings.TrimSuffix(text, "*")
	text = strings.ReplaceAll(text, ",", "")
	if text == "" {
		return nil
	}

	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return fmt.Errorf("invalid run total %s: %w", string(data), err)
	}
	*r = RunTotal(int(value))
	return nil
}

// OverCount preserves balls-per-over notation exactly as sent, whether the
// provider encodes it as a number or a string.
type OverCount string

func (o *OverCount) UnmarshalJSON(data []byte) error {
	text := strings.TrimSpace(string(data))
	if text == "null" {
		return nil
	}
	text = strings.Trim(text, `"`)
	if text == "" {
		return nil
	}

	if _, err := strconv.ParseFloat(text, 64); err != nil {
		return fmt.Errorf("invalid over count %s: %w", string(data), err)
	}
	*o = OverCount(text)
	return nil
}

// Top-stat catalog: /stats/v1/topstats lists categories of stat types.

type TopStatsCatalog struct {
	StatsTypesList []StatsCategory `json:"statsTypesList"`
}

type StatsCategory struct {
	Category string      `json:"category"`
	Types    []StatsType `json:"types"`
}

type StatsType struct {
	Value  string `json:"value"`
	Header string `json:"header"`
}

// Leaderboard page: /stats/v1/topstats/0?statsType=...&formatType=... returns
// column headers plus rows of positional string values.

type TopStatsPage struct {
	Headers []string      `json:"headers"`
	Values  []TopStatsRow `json:"values"`
}

type TopStatsRow struct {
	Values []string `json:"values"`
}

// PlayerName returns the first positional column, the player display name.
func (r TopStatsRow) PlayerName() string {
	if len(r.Values) == 0 {
		return ""
	}
	return strings.TrimSpace(r.Values[0])
}

// StatValue parses the primary stat column (second position), stripping the
// in-progress asterisk and thousands separators.
func (r TopStatsRow) StatValue() (float64, bool) {
	if len(r.Values) < 2 {
		return 0, false
	}
	text := strings.TrimSpace(r.Values[1])
	text = strings.TrimSuffix(text, "*")
	text = strings.ReplaceAll(text, ",", "")
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// MatchCount finds the match column by header ("Mat" or "Matches").
func (r TopStatsRow) MatchCount(headers []string) int {
	for idx, header := range headers {
		if idx >= len(r.Values) {
			break
		}
		if !strings.Contains(header, "Mat") {
			continue
		}
		count, err := strconv.Atoi(strings.TrimSpace(r.Values[idx]))
		if err != nil {
			return 0
		}
		return count
	}
	return 0
}
