package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"MarketDash/internal/model"
)

// HTTPFetcher implements Fetcher against the dashboard backend's REST API.
type HTTPFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPFetcher creates a new fetcher with optional proxy support.
func NewHTTPFetcher(baseURL, proxyURL string, timeout time.Duration) *HTTPFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPFetcher{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

func (f *HTTPFetcher) Name() string { return "http" }

func (f *HTTPFetcher) FetchTopMovers(ctx context.Context) ([]model.Mover, error) {
	var movers []model.Mover
	if err := f.getJSON(ctx, f.BaseURL+"/top_movers", &movers); err != nil {
		return nil, fmt.Errorf("fetch top movers: %w", err)
	}
	return movers, nil
}

func (f *HTTPFetcher) FetchStock(ctx context.Context, ticker string) (*model.FinancialSnapshot, error) {
	endpoint := fmt.Sprintf("%s/stock/%s", f.BaseURL, url.PathEscape(ticker))
	var snap model.FinancialSnapshot
	if err := f.getJSON(ctx, endpoint, &snap); err != nil {
		return nil, fmt.Errorf("fetch stock %s: %w", ticker, err)
	}
	if snap.Error != "" {
		return nil, fmt.Errorf("fetch stock %s: %w", ticker, &APIError{Status: http.StatusOK, Message: snap.Error})
	}
	return &snap, nil
}

func (f *HTTPFetcher) FetchPriceSeries(ctx context.Context, ticker string, rng model.TimeRange) (*model.PriceSeries, error) {
	endpoint := fmt.Sprintf("%s/stock/%s/price/%s", f.BaseURL, url.PathEscape(ticker), url.PathEscape(string(rng)))
	var series model.PriceSeries
	if err := f.getJSON(ctx, endpoint, &series); err != nil {
		return nil, fmt.Errorf("fetch price %s/%s: %w", ticker, rng, err)
	}
	if series.Error != "" {
		return nil, fmt.Errorf("fetch price %s/%s: %w", ticker, rng, &APIError{Status: http.StatusOK, Message: series.Error})
	}
	return &series, nil
}

// errorBody is the {error} payload the backend sends on failure.
type errorBody struct {
	Error string `json:"error"`
}

func (f *HTTPFetcher) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := f.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var eb errorBody
		if json.Unmarshal(body, &eb) == nil {
			apiErr.Message = eb.Error
		}
		return apiErr
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s: %w", endpoint, err)
	}
	return nil
}
