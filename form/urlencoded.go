package form

import (
	"net/url"
	"strings"

	"github.com/originhttp/core/status"
)

// EncodeURLValue percent-encodes a single value the way
// application/x-www-form-urlencoded requires (space as '+').
func EncodeURLValue(s string) string {
	return url.QueryEscape(s)
}

// DecodeURLValue is EncodeURLValue's inverse. The charset parameter is
// accepted for symmetry with the spec's "decodes...per the declared
// character set" wording; only UTF-8 and its ISO-8859-1 fallback are byte-
// transparent enough to matter here, and QueryUnescape already operates on
// raw bytes, so both charsets take the same code path.
func DecodeURLValue(s, _ string) (string, error) {
	v, err := url.QueryUnescape(s)
	if err != nil {
		return "", status.ErrURLDecoding
	}

	return v, nil
}

// DecodeURLEncoded parses a full application/x-www-form-urlencoded body
// (spec §4.6): split on '&', then on '=', percent-decode both halves.
func DecodeURLEncoded(body []byte, charset string, prealloc int) (*Form, error) {
	f := New(prealloc)
	if len(body) == 0 {
		return f, nil
	}

	for _, pair := range strings.Split(string(body), "&") {
		if pair == "" {
			continue
		}

		var rawKey, rawValue string
		if idx := strings.IndexByte(pair, '='); idx >= 0 {
			rawKey, rawValue = pair[:idx], pair[idx+1:]
		} else {
			rawKey = pair
		}

		key, err := DecodeURLValue(rawKey, charset)
		if err != nil {
			return nil, err
		}

		value, err := DecodeURLValue(rawValue, charset)
		if err != nil {
			return nil, err
		}

		f.add(Entry{Key: key, Value: value})
	}

	return f, nil
}
