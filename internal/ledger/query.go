package ledger

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultLookback is the window applied when a caller omits both bounds.
const DefaultLookback = 30 * 24 * time.Hour

var (
	// ErrInvalidDate marks a supplied bound that could not be parsed.
	ErrInvalidDate = errors.New("invalid date")
	// ErrInvalidRange marks a resolved window whose start is after its end.
	ErrInvalidRange = errors.New("invalid range: start after end")
)

// Query is a resolved, closed time interval plus an optional trader filter.
type Query struct {
	TraderID *string
	Start    time.Time
	End      time.Time
}

var boundLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseBound(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range boundLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
}

// Resolve validates the external filter input and produces a closed
// interval [start, end]. When trader, start, and end are all absent it
// returns a nil query: callers that want the default window use
// DefaultQuery, callers doing unfiltered discovery (cache keys) treat nil
// as "no filter".
func Resolve(traderID, startRaw, endRaw string, now time.Time) (*Query, error) {
	traderID = strings.TrimSpace(traderID)
	startRaw = strings.TrimSpace(startRaw)
	endRaw = strings.TrimSpace(endRaw)
	if traderID == "" && startRaw == "" && endRaw == "" {
		return nil, nil
	}

	end := now.UTC()
	if endRaw != "" {
		ts, err := parseBound(endRaw)
		if err != nil {
			return nil, err
		}
		end = ts
	}

	start := end.Add(-DefaultLookback)
	if startRaw != "" {
		ts, err := parseBound(startRaw)
		if err != nil {
			return nil, err
		}
		start = ts
	}

	if start.After(end) {
		return nil, fmt.Errorf("%w (start=%s end=%s)", ErrInvalidRange,
			start.Format(time.RFC3339), end.Format(time.RFC3339))
	}

	q := &Query{Start: start, End: end}
	if traderID != "" {
		q.TraderID = &traderID
	}
	return q, nil
}

// DefaultQuery is the window used when a caller asks for history without
// any filter: the last 30 days ending now, all traders.
func DefaultQuery(now time.Time) *Query {
	end := now.UTC()
	return &Query{Start: end.Add(-DefaultLookback), End: end}
}
