package wire

import (
	"net/url"
	"strings"

	"github.com/originhttp/core/request"
)

// SplitURI separates the raw request-URI into its path and its
// still-encoded query string, the way the teacher's parser hands the query
// portion off to a dedicated decoder.
func SplitURI(uri string) (path, rawQuery string) {
	if idx := strings.IndexByte(uri, '?'); idx >= 0 {
		return uri[:idx], uri[idx+1:]
	}

	return uri, ""
}

// ParseQuery decodes a query string into order-preserving pairs (spec §3
// "parsed GET parameters...preserving order"), unlike url.Values which is a
// map and loses both order and duplicate-key semantics beyond a slice.
func ParseQuery(rawQuery string) []request.QueryParam {
	if rawQuery == "" {
		return nil
	}

	pairs := strings.Split(rawQuery, "&")
	params := make([]request.QueryParam, 0, len(pairs))

	for _, pair := range pairs {
		if pair == "" {
			continue
		}

		var rawKey, rawValue string
		if idx := strings.IndexByte(pair, '='); idx >= 0 {
			rawKey, rawValue = pair[:idx], pair[idx+1:]
		} else {
			rawKey = pair
		}

		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			continue
		}

		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			continue
		}

		params = append(params, request.QueryParam{Key: key, Value: value})
	}

	return params
}
