package marketplace

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

var _ Client = (*HTTPClient)(nil)

// Client abstracts the marketplace search API. All calls may fail transiently;
// callers decide whether a failure aborts a batch or only degrades one listing.
type Client interface {
	Search(ctx context.Context, query SearchQuery) ([]RawListing, error)
	FetchItemDetail(ctx context.Context, itemID int64) (*ItemDetail, error)
	FetchSeller(ctx context.Context, userID int64) (*SellerInfo, error)
}

// HTTPClient talks to the marketplace's public JSON API.
type HTTPClient struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	timeout    time.Duration
}

func NewHTTPClient(baseURL string, userAgent string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		httpClient: &http.Client{},
		baseURL:    baseURL,
		userAgent:  userAgent,
		timeout:    timeout,
	}
}

func (c *HTTPClient) Search(ctx context.Context, query SearchQuery) ([]RawListing, error) {
	params := url.Values{}
	params.Set("search_text", query.Keywords)
	if query.MaxPrice != nil {
		params.Set("price_to", strconv.Itoa(int(*query.MaxPrice)))
	}

	endpoint := fmt.Sprintf("%s/api/v2/catalog/items?%s", c.baseURL, params.Encode())

	var payload struct {
		Items []RawListing `json:"items"`
	}
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, fmt.Errorf("failed to search catalog: %w", err)
	}

	return payload.Items, nil
}

func (c *HTTPClient) FetchItemDetail(ctx context.Context, itemID int64) (*ItemDetail, error) {
	endpoint := fmt.Sprintf("%s/api/v2/items/%d", c.baseURL, itemID)

	var payload struct {
		Item *ItemDetail `json:"item"`
	}
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, fmt.Errorf("failed to fetch item detail: %w", err)
	}

	return payload.Item, nil
}

func (c *HTTPClient) FetchSeller(ctx context.Context, userID int64) (*SellerInfo, error) {
	endpoint := fmt.Sprintf("%s/api/v2/users/%d", c.baseURL, userID)

	var payload struct {
		User *SellerInfo `json:"user"`
	}
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, fmt.Errorf("failed to fetch seller: %w", err)
	}

	return payload.User, nil
}

func (c *HTTPClient) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	timeoutCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	return nil
}
