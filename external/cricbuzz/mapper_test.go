package cricbuzz

import "testing"

func TestFlattenLiveFeed(t *testing.T) {
	runs := RunTotal(182)
	wickets := 6
	overs := OverCount("41.2")

	feed := LiveMatchesResponse{
		TypeMatches: []TypeMatch{
			{
				MatchType: "International",
				SeriesMatches: []SeriesMatch{
					{},
					{
						SeriesAdWrapper: &SeriesWrapper{
							SeriesName: "Asia Cup",
							Matches: []MatchEntry{
								{
									MatchInfo: &MatchInfo{
										MatchID:   40381,
										MatchDesc: "Final",
										Team1:     &TeamInfo{TeamName: "India"},
										Team2:     &TeamInfo{TeamName: "Sri Lanka"},
										VenueInfo: &VenueInfo{Ground: "R.Premadasa Stadium", City: "Colombo"},
									},
									MatchScore: &MatchScore{
										Team1Score: &TeamScore{Innings1: &Innings{Runs: &runs, Wickets: &wickets, Overs: &overs}},
									},
								},
								{MatchScore: &MatchScore{}},
							},
						},
					},
				},
			},
		},
	}

	entries := flattenLiveFeed(feed)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	entry := entries[0]
	if entry.MatchID != 40381 || entry.SeriesName != "Asia Cup" || entry.MatchType != "International" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if entry.Team1Name != "India" || entry.Team2Name != "Sri Lanka" {
		t.Fatalf("unexpected team names: %+v", entry)
	}
	if entry.VenueGround != "R.Premadasa Stadium" || entry.VenueCity != "Colombo" {
		t.Fatalf("unexpected venue: %+v", entry)
	}
	if entry.Team1Score == nil || entry.Team1Score.Runs == nil || *entry.Team1Score.Runs != 182 {
		t.Fatalf("unexpected team1 score: %+v", entry.Team1Score)
	}
	if entry.Team1Score.Wickets != 6 || entry.Team1Score.Overs != "41.2" {
		t.Fatalf("unexpected team1 totals: %+v", entry.Team1Score)
	}
	if entry.Team2Score != nil {
		t.Fatalf("absent team2 innings should map to nil")
	}
}

func TestFlattenLiveFeedKeepsUnusableEntries(t *testing.T) {
	feed := LiveMatchesResponse{
		TypeMatches: []TypeMatch{
			{
				MatchType: "League",
				SeriesMatches: []SeriesMatch{
					{
						SeriesAdWrapper: &SeriesWrapper{
							SeriesName: "The Hundred",
							Matches: []MatchEntry{
								{MatchInfo: &MatchInfo{MatchID: 0, MatchDesc: "Match 7"}},
								{MatchInfo: &MatchInfo{MatchID: 12, Team1: &TeamInfo{TeamName: "  "}}},
							},
						},
					},
				},
			},
		},
	}

	entries := flattenLiveFeed(feed)
	if len(entries) != 2 {
		t.Fatalf("unusable entries must survive flattening, got %d", len(entries))
	}
	if entries[0].MatchID != 0 {
		t.Fatalf("zero match id should pass through, got %d", entries[0].MatchID)
	}
}

func TestMapLeaderboardPageMarksUnparsableValues(t *testing.T) {
	page := TopStatsPage{
		Headers: []string{"Player", "Wkts", "Matches"},
		Values: []TopStatsRow{
			{Values: []string{"M Muralidaran", "800", "133"}},
			{Values: []string{"Broken Row", "-"}},
		},
	}

	rows := mapLeaderboardPage(page)
	if len(rows) != 2 {
		t.Fatalf("unexpected row count: %d", len(rows))
	}
	if !rows[0].HasValue || rows[0].Value != 800 || rows[0].Matches != 133 {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
	if rows[1].HasValue {
		t.Fatalf("unparsable stat value should clear HasValue")
	}
}
