package status

import (
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
)

// reasonCache backs RegisterReason/ReasonPhrase for status codes outside the
// fixed table above. It's a cache rather than a plain map so that entries
// registered by short-lived embedders (e.g. a test harness spinning up many
// Acceptors with disposable custom codes) get evicted instead of leaking
// forever in a process that never restarts.
var reasonCache = cache.New(24*time.Hour, time.Hour)

func reasonCacheKey(code Code) string {
	return strconv.FormatUint(uint64(code), 10)
}
