package domain

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100

	pageTokenVersion = 1
)

// SortMode selects the deterministic ordering of a result set.
type SortMode string

const (
	// SortByRank orders by text-search rank desc, creation time desc, id asc.
	SortByRank SortMode = "rank"
	// SortByYearPrice orders by manufacture year desc, price asc, id asc.
	SortByYearPrice SortMode = "year_price"
)

// SortMode returns the ordering this filter produces.
func (f VehicleFilter) SortMode() SortMode {
	if f.HasFreeText() {
		return SortByRank
	}
	return SortByYearPrice
}

// PageCursor is the decoded form of a page token: the sort-key tuple of the
// last row the caller has seen. Keyset continuation from it never skips or
// duplicates rows for a store that does not delete.
type PageCursor struct {
	Version   int       `json:"v"`
	Mode      SortMode  `json:"m"`
	Rank      float64   `json:"r,omitempty"`
	Year      int       `json:"y,omitempty"`
	Price     float64   `json:"p,omitempty"`
	CreatedAt time.Time `json:"c,omitempty"`
	ID        string    `json:"id"`
}

// CursorFromHit builds the continuation cursor for the page ending at hit.
func CursorFromHit(hit SearchHit, mode SortMode) PageCursor {
	c := PageCursor{Version: pageTokenVersion, Mode: mode, ID: hit.ID}
	switch mode {
	case SortByRank:
		c.Rank = hit.Rank
		c.CreatedAt = hit.CreatedAt
	case SortByYearPrice:
		c.Year = hit.YearManufacture
		c.Price = hit.Price
	}
	return c
}

// EncodePageToken serializes a cursor into an opaque URL-safe token.
func EncodePageToken(c PageCursor) string {
	data, err := json.Marshal(c)
	if err != nil {
		// PageCursor marshals from plain fields; this cannot happen.
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(data)
}

// DecodePageToken parses and checks a token against the sort mode the
// current filter produces. Any malformed, tampered or mismatched token
// yields ErrInvalidPageToken; callers recover by restarting pagination.
func DecodePageToken(token string, mode SortMode) (*PageCursor, error) {
	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPageToken, err)
	}
	var c PageCursor
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPageToken, err)
	}
	if c.Version != pageTokenVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidPageToken, c.Version)
	}
	if c.ID == "" {
		return nil, fmt.Errorf("%w: missing sort key", ErrInvalidPageToken)
	}
	if c.Mode != mode {
		return nil, fmt.Errorf("%w: token was issued for a different ordering", ErrInvalidPageToken)
	}
	return &c, nil
}

// ClampPageSize applies the default and the fixed maximum. Oversized
// requests truncate instead of failing.
func ClampPageSize(size int) int {
	if size <= 0 {
		return DefaultPageSize
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}
