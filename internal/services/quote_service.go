package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"execmode/internal/infrastructure/logging"
	"execmode/internal/repository"
	"execmode/internal/types"

	"github.com/gocolly/colly/v2"
)

const quoteSourceURL = "https://www.brainyquote.com/topics/discipline-quotes"

// fallbackQuotes is served when the remote fetch fails. Fallbacks are not
// cached so the next request retries the fetch.
var fallbackQuotes = []types.Quote{
	{Text: "Discipline is the bridge between goals and accomplishment.", Author: "Jim Rohn"},
	{Text: "Success is nothing more than a few simple disciplines, practiced every day.", Author: "Jim Rohn"},
	{Text: "Consistency is what transforms average into excellence.", Author: "Tony Robbins"},
}

// cachedQuote is the persisted shape of the daily quote cache.
type cachedQuote struct {
	Date   string `json:"date"`
	Text   string `json:"text"`
	Author string `json:"author"`
}

// QuoteService serves one motivational quote per calendar day. The first
// request of a day fetches remotely and caches the result; later requests
// are served from the cache.
type QuoteService struct {
	store  repository.Store
	logger logging.Logger
	now    func() time.Time

	// fetch is swappable for tests
	fetch func() ([]types.Quote, error)
}

// NewQuoteService creates a quote service with a repository dependency.
func NewQuoteService(store repository.Store, logger logging.Logger) *QuoteService {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	qs := &QuoteService{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
	qs.fetch = qs.scrapeQuotes
	return qs
}

// GetDailyQuote returns today's quote. The remote source is consulted at most
// once per day; a failed fetch falls back to the built-in list without
// poisoning the cache.
func (qs *QuoteService) GetDailyQuote(ctx context.Context) (*types.Quote, error) {
	now := qs.now()
	today := types.DayKey(now)

	if cached := qs.loadCached(ctx, today); cached != nil {
		return cached, nil
	}

	quotes, err := qs.fetch()
	if err != nil || len(quotes) == 0 {
		if err != nil {
			qs.logger.Warn("Quote fetch failed, serving fallback", "error", err.Error())
		}
		fallback := fallbackQuotes[now.YearDay()%len(fallbackQuotes)]
		return &fallback, nil
	}

	quote := quotes[now.YearDay()%len(quotes)]
	qs.cacheQuote(ctx, today, quote)
	return &quote, nil
}

// loadCached returns the cached quote when it was stored today, nil otherwise.
// Cache problems are never fatal; the caller just refetches.
func (qs *QuoteService) loadCached(ctx context.Context, today string) *types.Quote {
	raw, found, err := qs.store.GetStateValue(ctx, repository.StateKeyDailyQuote)
	if err != nil || !found {
		return nil
	}

	var cached cachedQuote
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		qs.logger.Warn("Cached quote is malformed, refetching", "error", err.Error())
		return nil
	}
	if cached.Date != today || cached.Text == "" {
		return nil
	}

	return &types.Quote{Text: cached.Text, Author: cached.Author}
}

func (qs *QuoteService) cacheQuote(ctx context.Context, today string, quote types.Quote) {
	data, err := json.Marshal(cachedQuote{Date: today, Text: quote.Text, Author: quote.Author})
	if err != nil {
		return
	}
	if err := qs.store.SetStateValue(ctx, repository.StateKeyDailyQuote, string(data)); err != nil {
		qs.logger.Warn("Failed to cache daily quote", "error", err.Error())
	}
}

// scrapeQuotes fetches candidate quotes from the remote source.
func (qs *QuoteService) scrapeQuotes() ([]types.Quote, error) {
	c := colly.NewCollector(
		colly.UserAgent("Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"),
	)

	c.Limit(&colly.LimitRule{
		DomainGlob:  "*brainyquote.com*",
		Parallelism: 2,
		Delay:       1 * time.Second,
	})

	var quotes []types.Quote
	var scrapingError error

	c.OnHTML("div.grid-item.qb", func(e *colly.HTMLElement) {
		text := strings.TrimSpace(e.ChildText("a.b-qt"))
		author := strings.TrimSpace(e.ChildText("a.bq-aut"))
		if text != "" && author != "" {
			quotes = append(quotes, types.Quote{Text: text, Author: author})
		}
	})

	c.OnError(func(r *colly.Response, err error) {
		scrapingError = fmt.Errorf("scraping error: %v", err)
	})

	if err := c.Visit(quoteSourceURL); err != nil {
		return nil, fmt.Errorf("failed to visit quote source: %w", err)
	}
	if scrapingError != nil {
		return nil, scrapingError
	}
	if len(quotes) == 0 {
		return nil, fmt.Errorf("no quotes extracted, the page structure might have changed")
	}

	return quotes, nil
}
