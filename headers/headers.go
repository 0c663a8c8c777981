// Package headers implements the case-insensitive, multi-valued header
// container shared by incoming requests and outgoing responses.
package headers

import (
	"strings"

	"github.com/indigo-web/utils/pool"
	"github.com/indigo-web/utils/strcomp"
	"github.com/indigo-web/utils/uf"
)

// Headers preserves insertion order for iteration (needed for deterministic
// response writing) while offering case-insensitive lookup, keyed by the
// same "Content-Type"-style canonical form net/http.CanonicalHeaderKey
// produces - it doubles as the wire-visible name, so "content-type" and
// "CONTENT-TYPE" collide on one bucket but still render conventionally.
type Headers struct {
	keys      []string // canonical keys, insertion order
	values    map[string][]string
	slicePool pool.ObjectPool[[]string]
}

func New() *Headers {
	return &Headers{
		values:    make(map[string][]string, 16),
		slicePool: pool.NewObjectPool[[]string](16),
	}
}

func NewSize(n int) *Headers {
	return &Headers{
		values:    make(map[string][]string, n),
		slicePool: pool.NewObjectPool[[]string](n),
	}
}

// Canonical renders name in the conventional "Content-Type" form: each
// hyphen-separated segment capitalized, everything else lowercased. Used
// both as the lookup key and, via Each, as the name written on the wire.
func Canonical(name string) string {
	b := []byte(name)
	upper := true

	for i, c := range b {
		switch {
		case upper && 'a' <= c && c <= 'z':
			b[i] = c - ('a' - 'A')
		case !upper && 'A' <= c && c <= 'Z':
			b[i] = c + ('a' - 'A')
		}
		upper = c == '-'
	}

	return string(b)
}

// Add appends value to name's value list. Repeated headers are joined with
// ", " only when materialized for wire output or Get; internally they're
// kept as a slice so multi-line folded continuations can be told apart from
// genuinely repeated headers if a caller cares. A fresh key's backing slice
// comes from slicePool rather than a nil literal, so a name that was Delete
// or Reset earlier in this Headers' life gets its old backing array back
// instead of triggering a new allocation.
func (h *Headers) Add(name, value string) {
	key := Canonical(name)
	existing, ok := h.values[key]
	if !ok {
		h.keys = append(h.keys, key)
		existing = h.slicePool.Acquire()[:0]
	}
	h.values[key] = append(existing, value)
}

// Set replaces any existing values for name with a single value. This is
// what response-header writes use: "later writes overwrite prior same-key"
// per spec §3.
func (h *Headers) Set(name, value string) {
	key := Canonical(name)
	existing, ok := h.values[key]
	if !ok {
		h.keys = append(h.keys, key)
		existing = h.slicePool.Acquire()
	}
	h.values[key] = append(existing[:0], value)
}

// Get returns the comma-joined value for name and whether it was present at
// all.
func (h *Headers) Get(name string) (string, bool) {
	vs, ok := h.values[Canonical(name)]
	if !ok {
		return "", false
	}

	return strings.Join(vs, ", "), true
}

// Value is Get without the presence boolean, returning "" when absent.
func (h *Headers) Value(name string) string {
	v, _ := h.Get(name)
	return v
}

func (h *Headers) Has(name string) bool {
	_, ok := h.values[Canonical(name)]
	return ok
}

func (h *Headers) Delete(name string) {
	key := Canonical(name)
	v, ok := h.values[key]
	if !ok {
		return
	}

	h.slicePool.Release(v[:0])
	delete(h.values, key)
	for i, k := range h.keys {
		if k == key {
			h.keys = append(h.keys[:i], h.keys[i+1:]...)
			break
		}
	}
}

// Each iterates headers in insertion order, calling fn once per name with
// its comma-joined value. Used by wire.WriteHeaders.
func (h *Headers) Each(fn func(name, value string)) {
	for _, key := range h.keys {
		fn(key, strings.Join(h.values[key], ", "))
	}
}

func (h *Headers) Reset() {
	h.keys = h.keys[:0]
	for k, v := range h.values {
		h.slicePool.Release(v[:0])
		delete(h.values, k)
	}
}

// Tokens splits a comma-separated header value (e.g. Connection, Expect,
// Transfer-Encoding) into trimmed tokens, left in their original case -
// callers compare with HasToken, which folds case itself.
func Tokens(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		tokens = append(tokens, p)
	}

	return tokens
}

// HasToken reports whether value's comma-separated token list contains
// token (ASCII case-insensitive), e.g. HasToken(connectionHeader, "close").
func HasToken(value, token string) bool {
	for _, t := range Tokens(value) {
		if strcomp.EqualFold(t, token) {
			return true
		}
	}

	return false
}

// B2S and S2B re-export the teacher's zero-copy conversions, used by the
// wire parser to avoid allocating a string per header/value while scanning
// the read buffer.
var (
	B2S = uf.B2S
	S2B = uf.S2B
)
