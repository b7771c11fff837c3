package ingest

import "strconv"

// CursorMode selects which pagination scheme a resource uses
type CursorMode string

const (
	// CursorModeSinceID pages an id-ordered collection by requesting items
	// with ids strictly greater than the last one seen.
	CursorModeSinceID CursorMode = "since_id"
	// CursorModePageToken pages via opaque continuation tokens handed back
	// by the upstream with each page.
	CursorModePageToken CursorMode = "page_token"
)

// CursorKind discriminates the cursor variants
type CursorKind int

const (
	CursorKindSinceID CursorKind = iota
	CursorKindPageToken
	CursorKindDone
)

// Cursor is the position within a paginated listing. It is one of three
// variants: a since-id watermark, an opaque page token, or done. The zero
// value is the first since-id page.
type Cursor struct {
	kind    CursorKind
	sinceID int64
	token   string
}

// FirstPage returns the cursor addressing the first page under the given mode
func FirstPage(mode CursorMode) Cursor {
	if mode == CursorModePageToken {
		return Cursor{kind: CursorKindPageToken}
	}
	return Cursor{kind: CursorKindSinceID}
}

// SinceID returns a cursor positioned after the given upstream id
func SinceID(id int64) Cursor {
	return Cursor{kind: CursorKindSinceID, sinceID: id}
}

// PageToken returns a cursor holding an opaque continuation token
func PageToken(token string) Cursor {
	return Cursor{kind: CursorKindPageToken, token: token}
}

// Done returns the terminal cursor
func Done() Cursor {
	return Cursor{kind: CursorKindDone}
}

// Kind returns the cursor variant
func (c Cursor) Kind() CursorKind { return c.kind }

// IsDone reports whether pagination has terminated
func (c Cursor) IsDone() bool { return c.kind == CursorKindDone }

// SinceID returns the watermark of a since-id cursor, zero otherwise
func (c Cursor) SinceID() int64 { return c.sinceID }

// Token returns the continuation token of a page-token cursor, empty for the
// first page and for other variants.
func (c Cursor) Token() string { return c.token }

// String renders the cursor for logs
func (c Cursor) String() string {
	switch c.kind {
	case CursorKindSinceID:
		return "since_id=" + strconv.FormatInt(c.sinceID, 10)
	case CursorKindPageToken:
		if c.token == "" {
			return "page_token=<first>"
		}
		return "page_token=" + c.token
	default:
		return "done"
	}
}
