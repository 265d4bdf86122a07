package article

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	maxLimit  = 100
	maxOffset = 1_000_000
)

// listParams is the parsed query string of GET /articles.
type listParams struct {
	search     string
	categoryID *int64
	limit      int
	offset     int
}

// parseListParams reads search, category, limit, offset and page.
// A non-numeric category is ignored rather than rejected; page is only
// consulted when offset is absent.
func parseListParams(q url.Values, defaultLimit int) (listParams, error) {
	p := listParams{search: q.Get("search")}

	if raw := strings.TrimSpace(q.Get("category")); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			p.categoryID = &id
		}
	}

	limit, err := parseLimit(q, defaultLimit)
	if err != nil {
		return listParams{}, err
	}
	p.limit = limit

	if raw := q.Get("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 || n > maxOffset {
			return listParams{}, fmt.Errorf("offset must be an integer between 0 and %d, got %q", maxOffset, raw)
		}
		p.offset = n
	} else if raw := q.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		// checked before multiplying so a huge page cannot overflow
		if err != nil || n < 1 || n-1 > maxOffset/p.limit {
			return listParams{}, fmt.Errorf("page must be a positive integer within %d rows, got %q", maxOffset, raw)
		}
		p.offset = (n - 1) * p.limit
	}

	return p, nil
}

// parseLimit returns def when limit is absent, otherwise a value in
// [1, maxLimit].
func parseLimit(q url.Values, def int) (int, error) {
	raw := q.Get("limit")
	if raw == "" {
		return def, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > maxLimit {
		return 0, fmt.Errorf("limit must be an integer between 1 and %d, got %q", maxLimit, raw)
	}

	return n, nil
}

func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}

	return id, true
}
