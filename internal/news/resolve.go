package news

import (
	"errors"
	"log"
	"strings"
	"time"

	"StockSight/internal/model"
)

// ErrNoDateContext indicates a time-only row appeared before any row
// established a date. Carry-forward is explicit state here: using it before
// it is set is a domain error, not an inherited loop variable.
var ErrNoDateContext = errors.New("time-only headline row before any dateline")

const (
	dateLayout = "Jan-02-06"
	todayToken = "Today"
)

// ResolveDates folds over the scraped rows, newest first, carrying the last
// explicit dateline forward onto time-only rows. The literal "Today" token
// resolves to now's calendar date. Rows whose date token fails to parse are
// skipped with a log; a time-only row before any dateline fails fast.
func ResolveDates(rows []RawRow, now time.Time) ([]model.Headline, error) {
	var lastDate time.Time
	dateSet := false

	out := make([]model.Headline, 0, len(rows))
	for i, row := range rows {
		tokens := strings.Fields(row.Cell)
		var clock string
		switch {
		case len(tokens) == 1:
			if !dateSet {
				return nil, ErrNoDateContext
			}
			clock = tokens[0]
		case len(tokens) >= 2 && tokens[0] == todayToken:
			lastDate = day(now)
			dateSet = true
			clock = tokens[1]
		case len(tokens) >= 2:
			d, err := time.Parse(dateLayout, tokens[0])
			if err != nil {
				log.Printf("[WARN] news row %d: bad date token %q, skipping", i, tokens[0])
				continue
			}
			lastDate = day(d)
			dateSet = true
			clock = tokens[1]
		default:
			log.Printf("[WARN] news row %d: empty timestamp cell, skipping", i)
			continue
		}

		out = append(out, model.Headline{
			Date:       lastDate,
			Time:       clock,
			Title:      row.Title,
			Source:     row.Source,
			SourceLink: row.Link,
		})
	}
	return out, nil
}

func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
