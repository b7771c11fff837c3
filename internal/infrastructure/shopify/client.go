package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"

	"github.com/shopsync/backend/internal/domain/ingest"
	"go.uber.org/zap"
)

// AccessTokenHeader carries the per-store API credential
const AccessTokenHeader = "X-Shopify-Access-Token"

// pageInfoPattern extracts the continuation token from a Link header entry
// marked rel="next".
var pageInfoPattern = regexp.MustCompile(`<[^>]*[?&]page_info=([^&>]+)[^>]*>;\s*rel="next"`)

// ClientConfig holds the Admin API client settings
type ClientConfig struct {
	APIVersion string
	PageSize   int
	// BaseURL overrides the https://{shop} endpoint. Tests point it at a
	// local server; leave empty in production.
	BaseURL string
}

// Client lists store data from the Admin REST API. It implements PageFetcher:
// one FetchPage call issues one HTTP request, pacing only before continuation
// requests so first pages and final pages pay no delay.
type Client struct {
	httpClient *http.Client
	cfg        ClientConfig
	pacer      Pacer
	logger     *zap.Logger
}

// NewClient creates an Admin API client
func NewClient(httpClient *http.Client, cfg ClientConfig, pacer Pacer, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if pacer == nil {
		pacer = NewNopPacer()
	}
	return &Client{
		httpClient: httpClient,
		cfg:        cfg,
		pacer:      pacer,
		logger:     logger,
	}
}

// FetchPage requests one page of the given resource. The returned cursor is
// Done when the listing is exhausted; a non-success upstream status comes
// back as *ingest.UpstreamError with no items.
func (c *Client) FetchPage(ctx context.Context, shopDomain, accessToken string, resource ingest.Resource, cursor ingest.Cursor) (ingest.Page, error) {
	if cursor.IsDone() {
		return ingest.Page{Next: ingest.Done()}, nil
	}

	if !isFirstPage(cursor) {
		if err := c.pacer.Wait(ctx); err != nil {
			return ingest.Page{}, err
		}
	}

	reqURL, err := c.buildURL(shopDomain, resource, cursor)
	if err != nil {
		return ingest.Page{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return ingest.Page{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set(AccessTokenHeader, accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ingest.Page{}, fmt.Errorf("request to %s failed: %w", shopDomain, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return ingest.Page{}, fmt.Errorf("failed to read response from %s: %w", shopDomain, err)
	}

	if resp.StatusCode >= 400 {
		return ingest.Page{}, &ingest.UpstreamError{
			StatusCode: resp.StatusCode,
			Body:       truncate(string(body), 256),
		}
	}

	items, err := decodeEnvelope(body, resource)
	if err != nil {
		return ingest.Page{}, fmt.Errorf("failed to decode %s response: %w", resource, err)
	}

	next, err := nextCursor(resource, items, resp.Header.Get("Link"))
	if err != nil {
		return ingest.Page{}, err
	}

	return ingest.Page{Items: items, Next: next}, nil
}

// isFirstPage reports whether the cursor addresses the opening request of a
// listing. Only follow-up requests are paced.
func isFirstPage(cursor ingest.Cursor) bool {
	switch cursor.Kind() {
	case ingest.CursorKindSinceID:
		return cursor.SinceID() == 0
	case ingest.CursorKindPageToken:
		return cursor.Token() == ""
	}
	return false
}

// buildURL assembles the paginated listing URL for one resource
func (c *Client) buildURL(shopDomain string, resource ingest.Resource, cursor ingest.Cursor) (string, error) {
	base := c.cfg.BaseURL
	if base == "" {
		base = "https://" + shopDomain
	}

	q := url.Values{}
	q.Set("limit", strconv.Itoa(c.cfg.PageSize))

	switch cursor.Kind() {
	case ingest.CursorKindSinceID:
		if cursor.SinceID() > 0 {
			q.Set("since_id", strconv.FormatInt(cursor.SinceID(), 10))
		}
	case ingest.CursorKindPageToken:
		if cursor.Token() == "" {
			// Filters are only legal on the first request; continuation
			// pages carry them inside the token.
			q.Set("status", "any")
		} else {
			q.Set("page_info", cursor.Token())
		}
	default:
		return "", fmt.Errorf("cannot build URL for cursor %s", cursor)
	}

	return fmt.Sprintf("%s/admin/api/%s/%s.json?%s", base, c.cfg.APIVersion, resource, q.Encode()), nil
}

// decodeEnvelope unwraps the {"<resource>": [...]} response body
func decodeEnvelope(body []byte, resource ingest.Resource) ([]json.RawMessage, error) {
	var envelope map[string][]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, err
	}
	return envelope[string(resource)], nil
}

// nextCursor derives the cursor for the following page. Since-id listings
// advance past the last item of the page; token listings follow the Link
// header.
func nextCursor(resource ingest.Resource, items []json.RawMessage, linkHeader string) (ingest.Cursor, error) {
	if resource.CursorMode() == ingest.CursorModePageToken {
		if token := parseNextPageInfo(linkHeader); token != "" {
			return ingest.PageToken(token), nil
		}
		return ingest.Done(), nil
	}

	if len(items) == 0 {
		return ingest.Done(), nil
	}
	var last struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(items[len(items)-1], &last); err != nil {
		return ingest.Cursor{}, fmt.Errorf("failed to read id of last %s item: %w", resource, err)
	}
	return ingest.SinceID(last.ID), nil
}

// parseNextPageInfo extracts the rel="next" continuation token from a Link
// header, empty when there is no next page.
func parseNextPageInfo(linkHeader string) string {
	m := pageInfoPattern.FindStringSubmatch(linkHeader)
	if m == nil {
		return ""
	}
	return m[1]
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// Ensure Client implements PageFetcher
var _ ingest.PageFetcher = (*Client)(nil)
