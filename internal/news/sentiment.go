package news

import (
	"sort"
	"time"

	"github.com/jonreiter/govader"

	"StockSight/internal/model"
)

// Scorer wraps the VADER lexicon analyzer. The lexicon is loaded once at
// construction and read-only thereafter; scoring is a pure function of the
// input text.
type Scorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewScorer builds the analyzer with its bundled lexicon.
func NewScorer() *Scorer {
	return &Scorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Compound returns the compound polarity score of text in [-1, 1].
func (s *Scorer) Compound(text string) float64 {
	return s.analyzer.PolarityScores(text).Compound
}

// Pipeline ties the scraper, date resolver, and scorer together.
type Pipeline struct {
	Scraper *Scraper
	Scorer  *Scorer
}

// NewPipeline creates a pipeline over the given scraper.
func NewPipeline(scraper *Scraper) *Pipeline {
	return &Pipeline{Scraper: scraper, Scorer: NewScorer()}
}

// Headlines fetches, resolves, and scores the news rows for a ticker. No
// deduplication or normalization: repeated headlines score repeatedly.
func (p *Pipeline) Headlines(ticker string) ([]model.Headline, error) {
	rows, err := p.Scraper.Fetch(ticker)
	if err != nil {
		return nil, err
	}
	headlines, err := ResolveDates(rows, time.Now())
	if err != nil {
		return nil, err
	}
	for i := range headlines {
		headlines[i].Compound = p.Scorer.Compound(headlines[i].Title)
	}
	return headlines, nil
}

// DailyMean groups scored headlines by resolved date and averages the
// compound score per date, ascending. Sign keys the bar color: non-negative
// means render positive.
func DailyMean(headlines []model.Headline) []model.DailySentiment {
	sums := make(map[time.Time]float64)
	counts := make(map[time.Time]int)
	for _, h := range headlines {
		sums[h.Date] += h.Compound
		counts[h.Date]++
	}

	out := make([]model.DailySentiment, 0, len(sums))
	for d, sum := range sums {
		mean := sum / float64(counts[d])
		sign := "positive"
		if mean < 0 {
			sign = "negative"
		}
		out = append(out, model.DailySentiment{Date: d, Mean: mean, Sign: sign, Count: counts[d]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}
