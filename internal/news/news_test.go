package news

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"StockSight/internal/model"
)

var testNow = time.Date(2024, 6, 14, 15, 30, 0, 0, time.UTC)

func TestResolveDates_CarryForward(t *testing.T) {
	rows := []RawRow{
		{Cell: "Today 09:00AM", Title: "first"},
		{Cell: "08:30AM", Title: "second"},
		{Cell: "Jun-12-24 04:15PM", Title: "third"},
		{Cell: "11:00AM", Title: "fourth"},
	}
	got, err := ResolveDates(rows, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("expected 4 headlines, got %d", len(got))
	}

	today := time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC)
	older := time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC)
	want := []struct {
		date  time.Time
		clock string
	}{
		{today, "09:00AM"},
		{today, "08:30AM"},
		{older, "04:15PM"},
		{older, "11:00AM"},
	}
	for i, w := range want {
		if !got[i].Date.Equal(w.date) {
			t.Errorf("row %d: date = %v, want %v", i, got[i].Date, w.date)
		}
		if got[i].Time != w.clock {
			t.Errorf("row %d: time = %q, want %q", i, got[i].Time, w.clock)
		}
	}
}

func TestResolveDates_TimeOnlyFirstRow(t *testing.T) {
	rows := []RawRow{{Cell: "09:00AM", Title: "orphan"}}
	_, err := ResolveDates(rows, testNow)
	if !errors.Is(err, ErrNoDateContext) {
		t.Fatalf("expected ErrNoDateContext, got %v", err)
	}
}

func TestResolveDates_BadDateTokenSkipped(t *testing.T) {
	rows := []RawRow{
		{Cell: "NotADate 09:00AM", Title: "bad"},
		{Cell: "Jun-12-24 08:00AM", Title: "good"},
	}
	got, err := ResolveDates(rows, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Title != "good" {
		t.Fatalf("expected only the parseable row, got %+v", got)
	}
}

func TestResolveDates_Empty(t *testing.T) {
	got, err := ResolveDates(nil, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no headlines, got %d", len(got))
	}
}

const newsPageFixture = `<html><body>
<table id="news-table">
<tr>
  <td align="right">Jun-13-24 07:45AM</td>
  <td><a class="tab-link-news" href="https://example.com/a">Shares rally after earnings beat</a>
      <div class="news-link-right">Example Wire</div></td>
</tr>
<tr>
  <td align="right">06:30AM</td>
  <td><a class="tab-link-news" href="https://example.com/b">Analysts raise price target</a>
      <div class="news-link-right">Example News</div></td>
</tr>
<tr>
  <td align="right">Jun-12-24 04:00PM</td>
  <td><a class="tab-link-news" href="https://example.com/c">Quarterly report filed</a></td>
</tr>
<tr><td colspan="2">spacer row without a headline link</td></tr>
</table>
</body></html>`

func TestScraper_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("t"); got != "AAPL" {
			t.Errorf("ticker query = %q, want AAPL", got)
		}
		if r.Header.Get("User-Agent") == "" {
			t.Error("expected a browser user agent header")
		}
		w.Write([]byte(newsPageFixture))
	}))
	defer srv.Close()

	s := NewScraper(5 * time.Second)
	s.BaseURL = srv.URL
	rows, err := s.Fetch("AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].Cell != "Jun-13-24 07:45AM" {
		t.Errorf("cell = %q", rows[0].Cell)
	}
	if rows[0].Title != "Shares rally after earnings beat" {
		t.Errorf("title = %q", rows[0].Title)
	}
	if rows[0].Source != "Example Wire" {
		t.Errorf("source = %q", rows[0].Source)
	}
	if rows[0].Link != "https://example.com/a" {
		t.Errorf("link = %q", rows[0].Link)
	}
	if rows[1].Cell != "06:30AM" {
		t.Errorf("time-only cell = %q", rows[1].Cell)
	}
	if rows[2].Source != "" {
		t.Errorf("row without a source div should be kept, source = %q", rows[2].Source)
	}
}

func TestScraper_FetchBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	s := NewScraper(5 * time.Second)
	s.BaseURL = srv.URL
	if _, err := s.Fetch("AAPL"); err == nil {
		t.Fatal("expected error on non-200 status")
	}
}

func TestScorer_Compound(t *testing.T) {
	s := NewScorer()
	if got := s.Compound("Stock soars on great earnings, an amazing win for investors"); got <= 0 {
		t.Errorf("positive text scored %f", got)
	}
	if got := s.Compound("Shares crash in terrible selloff, a disastrous loss"); got >= 0 {
		t.Errorf("negative text scored %f", got)
	}
	if got := s.Compound("The company filed its quarterly report"); got < -0.2 || got > 0.2 {
		t.Errorf("neutral text scored %f", got)
	}
}

func TestDailyMean(t *testing.T) {
	d1 := time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 6, 13, 0, 0, 0, 0, time.UTC)
	headlines := []model.Headline{
		{Date: d2, Compound: 0.5},
		{Date: d2, Compound: 0.25},
		{Date: d1, Compound: -0.5},
	}
	got := DailyMean(headlines)
	if len(got) != 2 {
		t.Fatalf("expected 2 days, got %d", len(got))
	}
	if !got[0].Date.Equal(d1) || !got[1].Date.Equal(d2) {
		t.Fatal("expected ascending date order")
	}
	if got[0].Mean != -0.5 || got[0].Sign != "negative" || got[0].Count != 1 {
		t.Errorf("day 1: %+v", got[0])
	}
	if got[1].Mean != 0.375 || got[1].Sign != "positive" || got[1].Count != 2 {
		t.Errorf("day 2: %+v", got[1])
	}
}

func TestDailyMean_ZeroIsPositive(t *testing.T) {
	d := time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC)
	got := DailyMean([]model.Headline{{Date: d, Compound: 0}})
	if got[0].Sign != "positive" {
		t.Errorf("zero mean should render positive, got %q", got[0].Sign)
	}
}
