// Package treasury reads published exchange rates from the U.S. Treasury
// Reporting Rates of Exchange API.
package treasury

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/SscSPs/purchase_fx_app/internal/apperrors"
	"github.com/SscSPs/purchase_fx_app/internal/core/domain"
	"github.com/SscSPs/purchase_fx_app/internal/core/ports/repositories"
	"github.com/SscSPs/purchase_fx_app/internal/platform/metrics"
	"github.com/SscSPs/purchase_fx_app/internal/platform/resilience"
)

const currencyListPageSize = 1000

// Query outcomes reported to metrics.
const (
	outcomeFound     = "found"
	outcomeEmpty     = "empty"
	outcomeError     = "error"
	outcomeMalformed = "malformed"
)

// StatusError is returned for any non-200 response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("treasury API returned status %d: %s", e.StatusCode, e.Body)
}

// Config configures a Client.
type Config struct {
	BaseURL            string
	Timeout            time.Duration
	RateLimitPerSecond float64
	UserAgent          string
	LookbackDays       int
}

// Client talks to the rates_of_exchange endpoint. Every HTTP request goes
// through the resilience policy; a nil policy sends each request once.
type Client struct {
	baseURL      string
	userAgent    string
	lookbackDays int
	httpClient   *http.Client
	limiter      *rate.Limiter
	policy       resilience.Policy
	metrics      *metrics.RateMetrics
	logger       *slog.Logger
}

var _ repositories.ExchangeRateSourceFacade = (*Client)(nil)

func NewClient(cfg Config, policy resilience.Policy, m *metrics.RateMetrics, logger *slog.Logger) *Client {
	if policy == nil {
		policy = resilience.Direct{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	limit := rate.Inf
	if cfg.RateLimitPerSecond > 0 {
		limit = rate.Limit(cfg.RateLimitPerSecond)
	}
	lookback := cfg.LookbackDays
	if lookback <= 0 {
		lookback = 180
	}

	return &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "?"),
		userAgent:    cfg.UserAgent,
		lookbackDays: lookback,
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		limiter:      rate.NewLimiter(limit, 1),
		policy:       policy,
		metrics:      m,
		logger:       logger.With(slog.String("client", "treasury")),
	}
}

// FindExchangeRate returns the most recent rate for currency published in
// [date - lookback days, date]. Query shapes are tried in order and the first
// one returning a record wins. A transport failure stops the search.
func (c *Client) FindExchangeRate(ctx context.Context, currency string, date time.Time) (*domain.ExchangeRate, error) {
	to := domain.DateOnly(date)
	from := to.AddDate(0, 0, -c.lookbackDays)

	for _, shape := range rateQueryShapes {
		var resp ratesResponse
		start := time.Now()
		err := c.fetch(ctx, shape.params(currency, from, to), &resp)
		if err != nil {
			c.metrics.ObserveQuery(shape.name, outcomeError, time.Since(start).Seconds())
			return nil, fmt.Errorf("treasury %s query for %s: %w", shape.name, currency, err)
		}

		if len(resp.Data) == 0 {
			c.metrics.ObserveQuery(shape.name, outcomeEmpty, time.Since(start).Seconds())
			c.logger.Debug("No exchange rate record for query shape",
				slog.String("shape", shape.name), slog.String("currency", currency))
			continue
		}

		rec := resp.Data[0]
		found, err := c.parseRecord(shape, rec, currency)
		if err != nil {
			c.metrics.ObserveQuery(shape.name, outcomeMalformed, time.Since(start).Seconds())
			c.metrics.MalformedRecord()
			c.logger.Error("Discarding malformed exchange rate record",
				slog.String("shape", shape.name),
				slog.String("currency", currency),
				slog.String("exchange_rate", rec.ExchangeRate),
				slog.String("date", shape.recordDate(rec)),
				slog.String("error", err.Error()))
			return nil, c.notFound(currency, to)
		}

		// A record the filter should have excluded is treated like an empty
		// page, so the fallback shape still gets its turn.
		if found.EffectiveDate.Before(from) || found.EffectiveDate.After(to) {
			c.metrics.ObserveQuery(shape.name, outcomeEmpty, time.Since(start).Seconds())
			c.logger.Warn("Exchange rate record outside lookback window",
				slog.String("shape", shape.name),
				slog.String("currency", currency),
				slog.String("date", found.EffectiveDate.Format(time.DateOnly)))
			continue
		}

		c.metrics.ObserveQuery(shape.name, outcomeFound, time.Since(start).Seconds())
		c.logger.Info("Found exchange rate",
			slog.String("shape", shape.name),
			slog.String("currency", currency),
			slog.String("rate", found.Rate.String()),
			slog.String("effective_date", found.EffectiveDate.Format(time.DateOnly)))
		return found, nil
	}

	return nil, c.notFound(currency, to)
}

// ListCurrencies returns the distinct currency descriptions in the most recent
// page of published rates.
func (c *Client) ListCurrencies(ctx context.Context) ([]string, error) {
	var resp ratesResponse
	start := time.Now()
	if err := c.fetch(ctx, currencyListParams(currencyListPageSize), &resp); err != nil {
		c.metrics.ObserveQuery("currencies", outcomeError, time.Since(start).Seconds())
		return nil, fmt.Errorf("treasury currency list query: %w", err)
	}
	c.metrics.ObserveQuery("currencies", outcomeFound, time.Since(start).Seconds())

	seen := make(map[string]struct{}, len(resp.Data))
	currencies := make([]string, 0, len(resp.Data))
	for _, rec := range resp.Data {
		name := strings.TrimSpace(rec.CountryCurrencyDesc)
		if name == "" {
			name = strings.TrimSpace(rec.Currency)
		}
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		currencies = append(currencies, name)
	}
	sort.Strings(currencies)

	return currencies, nil
}

func (c *Client) notFound(currency string, date time.Time) error {
	return fmt.Errorf("%w: no exchange rate for '%s' within %d days before %s",
		apperrors.ErrNotFound, currency, c.lookbackDays, date.Format(time.DateOnly))
}

func (c *Client) parseRecord(shape queryShape, rec rateRecord, requested string) (*domain.ExchangeRate, error) {
	value, err := decimal.NewFromString(strings.TrimSpace(rec.ExchangeRate))
	if err != nil {
		return nil, fmt.Errorf("invalid exchange_rate %q: %w", rec.ExchangeRate, err)
	}

	rawDate := shape.recordDate(rec)
	effective, err := time.Parse(time.DateOnly, strings.TrimSpace(rawDate))
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", shape.dateField, rawDate, err)
	}

	currency := shape.recordCurrency(rec)
	if strings.TrimSpace(currency) == "" {
		currency = requested
	}

	return domain.NewExchangeRate(rec.Country, currency, value, effective)
}

// fetch runs one GET through the policy and decodes the body into out.
func (c *Client) fetch(ctx context.Context, params url.Values, out *ratesResponse) error {
	return c.policy.Execute(ctx, func(ctx context.Context) error {
		return c.get(ctx, params, out)
	})
}

func (c *Client) get(ctx context.Context, params url.Values, out *ratesResponse) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("waiting for treasury rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("building treasury request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("treasury request: %w", ctx.Err())
		}
		return resilience.Transient(fmt.Errorf("treasury request: %w", err))
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		statusErr := &StatusError{StatusCode: res.StatusCode, Body: strings.TrimSpace(string(body))}
		if isTransientStatus(res.StatusCode) {
			return resilience.Transient(statusErr)
		}
		return statusErr
	}

	*out = ratesResponse{}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		var netErr interface{ Timeout() bool }
		if errors.As(err, &netErr) && netErr.Timeout() {
			return resilience.Transient(fmt.Errorf("reading treasury response: %w", err))
		}
		return fmt.Errorf("decoding treasury response: %w", err)
	}
	return nil
}

func isTransientStatus(code int) bool {
	return code == http.StatusRequestTimeout || code == http.StatusTooManyRequests || code >= 500
}
