package match

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Match is one fixture. The key comes from the upstream source; the row is
// insert-once, later ingestions of the same id leave it untouched.
type Match struct {
	ID          int64
	Description string
	Date        time.Time
	VenueID     *int64
}

// Score is the latest innings total for one team in one match. Re-ingestion
// overwrites runs/wickets/overs, modeling a live scoreboard.
type Score struct {
	MatchID int64 `validate:"gt=0"`
	TeamID  int64 `validate:"gt=0"`
	Runs    int   `validate:"gte=0"`
	Wickets int   `validate:"gte=0,lte=10"`
	Overs   Overs
}

// Overs carries balls-per-over notation: "45.3" is 45 overs and 3 balls,
// not a decimal fraction. It is never arithmetic input.
type Overs string

const ZeroOvers Overs = "0.0"

// ParseOvers validates the notation. The fractional digit counts balls and
// must stay below a six-ball over.
func ParseOvers(value string) (Overs, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return ZeroOvers, nil
	}

	whole, balls, found := strings.Cut(value, ".")
	if _, err := strconv.Atoi(whole); err != nil {
		return "", fmt.Errorf("invalid overs %q: %w", value, err)
	}
	if !found {
		return Overs(whole + ".0"), nil
	}
	if len(balls) != 1 || balls[0] < '0' || balls[0] > '5' {
		return "", fmt.Errorf("invalid overs %q: ball count must be a single digit 0-5", value)
	}
	return Overs(value), nil
}

func (o Overs) String() string {
	if o == "" {
		return string(ZeroOvers)
	}
	return string(o)
}
