package telegraph

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// ViewsQuery narrows GetViews to a time window. Zero fields are
// omitted from the request. Hour is a pointer because 0 is a valid
// hour; each finer field requires the coarser ones (hour needs day,
// day needs month, month needs year).
type ViewsQuery struct {
	Year  int
	Month int
	Day   int
	Hour  *int
}

// Hour returns a pointer suitable for ViewsQuery.Hour.
func Hour(h int) *int {
	return &h
}

// GetViews returns the number of views a page received, optionally
// restricted to the window described by q.
func (c *Client) GetViews(ctx context.Context, path string, q ViewsQuery) (*PageViews, error) {
	if err := validatePath(path); err != nil {
		return nil, err
	}
	if err := validateViewsQuery(q); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("path", path)
	if q.Year != 0 {
		params.Set("year", strconv.Itoa(q.Year))
	}
	if q.Month != 0 {
		params.Set("month", strconv.Itoa(q.Month))
	}
	if q.Day != 0 {
		params.Set("day", strconv.Itoa(q.Day))
	}
	if q.Hour != nil {
		params.Set("hour", strconv.Itoa(*q.Hour))
	}

	raw, err := c.request(ctx, http.MethodGet, "getViews", params)
	if err != nil {
		return nil, err
	}
	return decodePageViews(raw)
}
