package ingest

import (
	"context"
	"encoding/json"
)

// Page is one batch of raw records plus the cursor addressing the next batch
type Page struct {
	Items []json.RawMessage
	Next  Cursor
}

// PageFetcher lists one store's records from the upstream platform. FetchPage
// returns a single page at the given cursor; implementations pace their
// requests to respect upstream rate limits.
type PageFetcher interface {
	FetchPage(ctx context.Context, shopDomain, accessToken string, resource Resource, cursor Cursor) (Page, error)
}
