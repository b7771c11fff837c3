package ingest

import (
	"fmt"

	"github.com/shopsync/backend/internal/domain/shared"
)

// ErrInvalidSignature indicates a webhook body did not authenticate against
// the shared secret. The caller must reject the delivery without reading the
// payload.
var ErrInvalidSignature = shared.NewDomainError("INVALID_SIGNATURE", "Webhook signature verification failed")

// UpstreamError is a non-success HTTP status from the platform API. Backfill
// treats it as the end of the listing: progress so far is kept and the error
// is logged, not propagated.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned status %d: %s", e.StatusCode, e.Body)
}
