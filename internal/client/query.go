// ABOUTME: Query string builder for clinic API requests
// ABOUTME: Omits absent values so filters never serialize nil parameters

package client

import (
	"net/url"
	"time"
)

// dateLayout is the wire format for date-only query parameters
const dateLayout = "2006-01-02"

// Query accumulates URL query parameters. Absent (nil) values are
// skipped entirely rather than serialized as empty or literal null.
type Query struct {
	values url.Values
}

// NewQuery creates an empty query builder
func NewQuery() *Query {
	return &Query{values: url.Values{}}
}

// Set adds a parameter unconditionally
func (q *Query) Set(key, value string) *Query {
	q.values.Set(key, value)
	return q
}

// String adds a parameter when the value is present
func (q *Query) String(key string, value *string) *Query {
	if value != nil {
		q.values.Set(key, *value)
	}
	return q
}

// Bool adds a parameter when the value is present
func (q *Query) Bool(key string, value *bool) *Query {
	if value != nil {
		if *value {
			q.values.Set(key, "true")
		} else {
			q.values.Set(key, "false")
		}
	}
	return q
}

// Date adds a date-only parameter when the value is present
func (q *Query) Date(key string, value *time.Time) *Query {
	if value != nil {
		q.values.Set(key, value.Format(dateLayout))
	}
	return q
}

// Strings adds one parameter per value; an empty slice adds nothing
func (q *Query) Strings(key string, values []string) *Query {
	for _, v := range values {
		q.values.Add(key, v)
	}
	return q
}

// Encode returns the encoded query string without a leading "?"
func (q *Query) Encode() string {
	if q == nil {
		return ""
	}
	return q.values.Encode()
}
