package cache

import (
	"net/url"
	"strings"
)

// KeySeparator joins the URL and parameter pairs of a request key.
const KeySeparator = "_"

// Param is a single query parameter.
type Param struct {
	Key   string
	Value string
}

// Params is an ordered list of query parameters. Order matters: it is part of
// the request key.
type Params []Param

// Values converts the parameters to url.Values for encoding a query string.
func (p Params) Values() url.Values {
	values := make(url.Values, len(p))
	for _, param := range p {
		values.Add(param.Key, param.Value)
	}
	return values
}

// BuildKey returns the cache key for a request. With no params the key is the URL
// itself, otherwise it is the URL followed by each key and value, all joined by
// KeySeparator.
//
// A value containing the separator can collide with a different parameter split
// (url_a_b_c reads as a=b_c or a_b=c). The format is kept as is so existing
// cache files stay valid.
func BuildKey(rawURL string, params Params) string {
	if len(params) == 0 {
		return rawURL
	}

	parts := make([]string, 0, 1+2*len(params))
	parts = append(parts, rawURL)
	for _, param := range params {
		parts = append(parts, param.Key, param.Value)
	}
	return strings.Join(parts, KeySeparator)
}
