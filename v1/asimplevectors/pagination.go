package asimplevectors

import (
	"net/url"
	"strconv"
)

// ListOptions controls paginated listings. Nil Start or Limit leaves the
// parameter out of the request so the server default applies; the client
// assumes no particular default.
//
// Listings are not guaranteed to be stable across calls while the listed
// version is being written to.
type ListOptions struct {
	Start  *int
	Limit  *int
	Filter string
}

// Int returns a pointer to v, for use in ListOptions.
func Int(v int) *int { return &v }

func (o *ListOptions) query(withFilter bool) url.Values {
	q := url.Values{}
	if o == nil {
		return q
	}
	if o.Start != nil {
		q.Set("start", strconv.Itoa(*o.Start))
	}
	if o.Limit != nil {
		q.Set("limit", strconv.Itoa(*o.Limit))
	}
	if withFilter && o.Filter != "" {
		q.Set("filter", o.Filter)
	}
	return q
}
