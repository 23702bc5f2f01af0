package cricbuzz

import (
	"testing"

	sonic "github.com/bytedance/sonic"
)

func TestLiveMatchesDecodeToleratesMixedEncodings(t *testing.T) {
	payload := `{
		"typeMatches": [
			{
				"matchType": "International",
				"seriesMatches": [
					{"adDetail": {"name": "native ad slot"}},
					{
						"seriesAdWrapper": {
							"seriesName": "Border-Gavaskar Trophy",
							"matches": [
								{
									"matchInfo": {
										"matchId": 91702,
										"matchDesc": "3rd Test",
										"team1": {"teamName": "India"},
										"team2": {"teamName": "Australia"},
										"venueInfo": {"ground": "MCG", "city": "Melbourne"}
									},
									"matchScore": {
										"team1Score": {"inngs1": {"runs": "215*", "wickets": 4, "overs": 67.3}},
										"team2Score": {"inngs1": {"runs": 310, "wickets": 10, "overs": "98"}}
									}
								}
							]
						}
					}
				]
			}
		]
	}`

	var out LiveMatchesResponse
	if err := sonic.Unmarshal([]byte(payload), &out); err != nil {
		t.Fatalf("decode live matches: %v", err)
	}

	if len(out.TypeMatches) != 1 {
		t.Fatalf("unexpected type match count: %d", len(out.TypeMatches))
	}
	series := out.TypeMatches[0].SeriesMatches
	if len(series) != 2 {
		t.Fatalf("unexpected series entry count: %d", len(series))
	}
	if series[0].SeriesAdWrapper != nil {
		t.Fatalf("ad-only entry should leave seriesAdWrapper nil")
	}

	matches := series[1].SeriesAdWrapper.Matches
	if len(matches) != 1 {
		t.Fatalf("unexpected match count: %d", len(matches))
	}
	entry := matches[0]
	if entry.MatchInfo.MatchID != 91702 {
		t.Fatalf("unexpected match id: %d", entry.MatchInfo.MatchID)
	}

	first := entry.MatchScore.Team1Score.Innings1
	if first.Runs == nil || int(*first.Runs) != 215 {
		t.Fatalf("asterisk run total should decode to 215, got %v", first.Runs)
	}
	if first.Overs == nil || string(*first.Overs) != "67.3" {
		t.Fatalf("numeric overs should keep ball notation, got %v", first.Overs)
	}

	second := entry.MatchScore.Team2Score.Innings1
	if second.Runs == nil || int(*second.Runs) != 310 {
		t.Fatalf("numeric run total should decode to 310, got %v", second.Runs)
	}
	if second.Overs == nil || string(*second.Overs) != "98" {
		t.Fatalf("string overs should decode verbatim, got %v", second.Overs)
	}
}

func TestLiveMatchesDecodeKeepsAbsentScoresNil(t *testing.T) {
	payload := `{
		"typeMatches": [
			{
				"matchType": "League",
				"seriesMatches": [
					{
						"seriesAdWrapper": {
							"seriesName": "County Championship",
							"matches": [
								{"matchInfo": {"matchId": 5, "matchDesc": "Match 1"}}
							]
						}
					}
				]
			}
		]
	}`

	var out LiveMatchesResponse
	if err := sonic.Unmarshal([]byte(payload), &out); err != nil {
		t.Fatalf("decode live matches: %v", err)
	}

	entry := out.TypeMatches[0].SeriesMatches[0].SeriesAdWrapper.Matches[0]
	if entry.MatchScore != nil {
		t.Fatalf("absent matchScore should stay nil")
	}
	if entry.MatchInfo.VenueInfo != nil {
		t.Fatalf("absent venueInfo should stay nil")
	}
}

func TestRunTotalRejectsGarbage(t *testing.T) {
	var r RunTotal
	if err := sonic.Unmarshal([]byte(`"not-a-number"`), &r); err == nil {
		t.Fatalf("expected error for non-numeric run total")
	}
}

func TestTopStatsRowAccessors(t *testing.T) {
	page := TopStatsPage{
		Headers: []string{"Player", "Runs", "Mat", "Inns"},
		Values: []TopStatsRow{
			{Values: []string{"Sachin Tendulkar", "18,426", "463", "452"}},
			{Values: []string{"Virat Kohli", "14,181*", "302", "290"}},
			{Values: []string{"Incomplete Row"}},
		},
	}

	if name := page.Values[0].PlayerName(); name != "Sachin Tendulkar" {
		t.Fatalf("unexpected player name: %q", name)
	}
	value, ok := page.Values[0].StatValue()
	if !ok || value != 18426 {
		t.Fatalf("unexpected stat value: %v ok=%v", value, ok)
	}
	if got := page.Values[0].MatchCount(page.Headers); got != 463 {
		t.Fatalf("unexpected match count: %d", got)
	}

	value, ok = page.Values[1].StatValue()
	if !ok || value != 14181 {
		t.Fatalf("asterisk stat should parse, got %v ok=%v", value, ok)
	}

	if _, ok := page.Values[2].StatValue(); ok {
		t.Fatalf("short row should not yield a stat value")
	}
	if got := page.Values[2].MatchCount(page.Headers); got != 0 {
		t.Fatalf("short row should yield zero matches, got %d", got)
	}
}
