// Package news scrapes ticker headlines, resolves their order-dependent
// datelines, and scores each title with a lexicon polarity analyzer.
package news

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const finvizBaseURL = "https://finviz.com"

// RawRow is one unparsed row from the headlines table. Cell holds the
// timestamp text, which may carry a date token, a time token, or both.
type RawRow struct {
	Cell   string
	Title  string
	Source string
	Link   string
}

// Scraper fetches the news table for a ticker. The page schema is external
// and fragile; rows with missing fields are skipped, never fatal.
type Scraper struct {
	BaseURL string
	Client  *http.Client
}

// NewScraper creates a Scraper with a bounded request timeout.
func NewScraper(timeout time.Duration) *Scraper {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Scraper{
		BaseURL: finvizBaseURL,
		Client:  &http.Client{Timeout: timeout},
	}
}

// Fetch downloads and parses the headline rows for a ticker, newest first
// as the page orders them.
func (s *Scraper) Fetch(ticker string) ([]RawRow, error) {
	u := fmt.Sprintf("%s/quote.ashx?t=%s", s.BaseURL, url.QueryEscape(ticker))
	req, err := http.NewRequest("GET", u, nil)
	if err != nil {
		return nil, err
	}
	// The page rejects default Go client headers.
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.11 (KHTML, like Gecko) Chrome/23.0.1271.64 Safari/537.11")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.8")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch news page: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch news page: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse news page: %w", err)
	}
	return s.parseTable(doc), nil
}

func (s *Scraper) parseTable(doc *goquery.Document) []RawRow {
	var rows []RawRow
	doc.Find("#news-table tr").Each(func(i int, tr *goquery.Selection) {
		link := tr.Find("a.tab-link-news")
		title := strings.TrimSpace(link.Text())
		if title == "" {
			return // spacer or malformed row
		}
		href, _ := link.Attr("href")
		source := strings.TrimSpace(tr.Find("div.news-link-right").Text())
		cell := strings.TrimSpace(tr.Find(`td[align="right"]`).First().Text())
		if cell == "" {
			log.Printf("[WARN] news row %d: missing timestamp cell, skipping: %q", i, title)
			return
		}
		rows = append(rows, RawRow{Cell: cell, Title: title, Source: source, Link: href})
	})
	return rows
}
