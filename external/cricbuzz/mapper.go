package cricbuzz

import (
	"strings"

	"github.com/adityaverma/cricsync/internal/usecase"
)

// flattenLiveFeed walks typeMatches -> seriesMatches -> seriesAdWrapper ->
// matches and emits one entry per match element that has a matchInfo. Ad-only
// series entries carry no wrapper and are passed over. Entries keep whatever
// ids and names the provider sent; filtering is the pipeline's job.
func flattenLiveFeed(feed LiveMatchesResponse) []usecase.LiveMatchEntry {
	out := make([]usecase.LiveMatchEntry, 0, 16)
	for _, typeMatch := range feed.TypeMatches {
		for _, seriesMatch := range typeMatch.SeriesMatches {
			wrapper := seriesMatch.SeriesAdWrapper
			if wrapper == nil {
				continue
			}
			for _, entry := range wrapper.Matches {
				info := entry.MatchInfo
				if info == nil {
					continue
				}

				row := usecase.LiveMatchEntry{
					MatchID:     info.MatchID,
					MatchType:   strings.TrimSpace(typeMatch.MatchType),
					SeriesName:  firstNonEmpty(info.SeriesName, wrapper.SeriesName),
					Description: strings.TrimSpace(info.MatchDesc),
				}
				if info.Team1 != nil {
					row.Team1Name = info.Team1.TeamName
				}
				if info.Team2 != nil {
					row.Team2Name = info.Team2.TeamName
				}
				if info.VenueInfo != nil {
					row.VenueGround = info.VenueInfo.Ground
					row.VenueCity = info.VenueInfo.City
				}
				if entry.MatchScore != nil {
					row.Team1Score = mapInnings(entry.MatchScore.Team1Score)
					row.Team2Score = mapInnings(entry.MatchScore.Team2Score)
				}

				out = append(out, row)
			}
		}
	}
	return out
}

func mapInnings(score *TeamScore) *usecase.InningsScore {
	if score == nil || score.Innings1 == nil {
		return nil
	}
	innings := score.Innings1

	out := &usecase.InningsScore{}
	if innings.Runs != nil {
		runs := int(*innings.Runs)
		out.Runs = &runs
	}
	if innings.Wickets != nil {
		out.Wickets = *innings.Wickets
	}
	if innings.Overs != nil {
		out.Overs = string(*innings.Overs)
	}
	return out
}

func mapStatsCatalog(catalog TopStatsCatalog) []usecase.StatCategory {
	out := make([]usecase.StatCategory, 0, len(catalog.StatsTypesList))
	for _, category := range catalog.StatsTypesList {
		mapped := usecase.StatCategory{
			Category: strings.TrimSpace(category.Category),
			Types:    make([]usecase.StatType, 0, len(category.Types)),
		}
		for _, statType := range category.Types {
			value := strings.TrimSpace(statType.Value)
			if value == "" {
				continue
			}
			mapped.Types = append(mapped.Types, usecase.StatType{
				Value:  value,
				Header: strings.TrimSpace(statType.Header),
			})
		}
		out = append(out, mapped)
	}
	return out
}

func mapLeaderboardPage(page TopStatsPage) []usecase.LeaderboardRow {
	out := make([]usecase.LeaderboardRow, 0, len(page.Values))
	for _, row := range page.Values {
		value, ok := row.StatValue()
		out = append(out, usecase.LeaderboardRow{
			PlayerName: row.PlayerName(),
			Value:      value,
			HasValue:   ok,
			Matches:    row.MatchCount(page.Headers),
		})
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
