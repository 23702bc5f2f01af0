package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/adityaverma/cricsync/internal/domain/match"
	"github.com/adityaverma/cricsync/internal/infrastructure/repository/postgres"
)

const defaultLimit = 20

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	dbURL := strings.TrimSpace(os.Getenv("DB_URL"))
	if dbURL == "" {
		log.Fatal("DB_URL is required")
	}

	ctx := context.Background()
	db, err := postgres.Connect(ctx, dbURL, postgres.ConnectOptions{})
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer db.Close()

	analytics := postgres.NewAnalyticsRepository(db)

	switch strings.ToLower(strings.TrimSpace(os.Args[1])) {
	case "totals":
		totals, err := analytics.Totals(ctx)
		if err != nil {
			log.Fatalf("read totals: %v", err)
		}
		fmt.Printf("teams: %d\n", totals.Teams)
		fmt.Printf("venues: %d\n", totals.Venues)
		fmt.Printf("matches: %d\n", totals.Matches)
		fmt.Printf("scores: %d\n", totals.Scores)
	case "matches":
		limit, parseErr := parseLimit(os.Args[2:])
		if parseErr != nil {
			log.Fatal(parseErr)
		}
		summaries, err := analytics.ListSummaries(ctx, limit)
		if err != nil {
			log.Fatalf("read match summaries: %v", err)
		}
		printMatchSummaries(summaries)
	case "venues":
		limit, parseErr := parseLimit(os.Args[2:])
		if parseErr != nil {
			log.Fatal(parseErr)
		}
		usage, err := analytics.VenueUsage(ctx, limit)
		if err != nil {
			log.Fatalf("read venue usage: %v", err)
		}
		printVenueUsage(usage)
	default:
		printUsage()
		os.Exit(2)
	}
}

func parseLimit(args []string) (int, error) {
	if len(args) == 0 {
		return defaultLimit, nil
	}

	limit, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return 0, fmt.Errorf("invalid limit %q: %w", args[0], err)
	}
	if limit <= 0 {
		return 0, fmt.Errorf("limit must be > 0")
	}

	return limit, nil
}

func printMatchSummaries(summaries []match.Summary) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MATCH\tDESCRIPTION\tVENUE\tTEAM\tSCORE")
	for _, s := range summaries {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			s.MatchID, s.Description, orDash(s.VenueName), orDash(s.TeamName), formatScoreline(s))
	}
	_ = w.Flush()
}

func printVenueUsage(usage []match.VenueUsage) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "VENUE\tCITY\tMATCHES")
	for _, v := range usage {
		fmt.Fprintf(w, "%s\t%s\t%d\n", v.VenueName, v.City, v.MatchCount)
	}
	_ = w.Flush()
}

func formatScoreline(s match.Summary) string {
	if s.Runs == nil {
		return "-"
	}
	wickets := 0
	if s.Wickets != nil {
		wickets = *s.Wickets
	}
	overs := "0.0"
	if s.Overs != nil {
		overs = *s.Overs
	}
	return fmt.Sprintf("%d/%d (%s ov)", *s.Runs, wickets, overs)
}

func orDash(value *string) string {
	if value == nil || strings.TrimSpace(*value) == "" {
		return "-"
	}
	return *value
}

func printUsage() {
	name := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "usage: %s <totals|matches|venues> [limit]\n", name)
	fmt.Fprintf(os.Stderr, "  %s totals\n", name)
	fmt.Fprintf(os.Stderr, "  %s matches 50\n", name)
	fmt.Fprintf(os.Stderr, "  %s venues 10\n", name)
}
